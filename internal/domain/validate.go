package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator bundles the shared validator with its English translator.
type Validator struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vInst *Validator
)

// NewValidator returns the process-wide validator. Field names in messages
// follow the json tags so reasons read like the document itself.
func NewValidator() *Validator {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		vInst = &Validator{Validate: v, Translator: trans}
	})
	return vInst
}

// Struct validates s and flattens any field errors into one readable error.
func (v *Validator) Struct(s any) error {
	err := v.Validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", trimNamespace(fe.Namespace()), fe.Translate(v.Translator)))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// trimNamespace drops the root type name ("StatsData.timeline[0].date" -> "timeline[0].date").
func trimNamespace(ns string) string {
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

// Validate checks the document against the stats schema. The returned error
// wraps ErrDataUnavailable.
func (d *StatsData) Validate() error {
	if err := NewValidator().Struct(d); err != nil {
		return fmt.Errorf("%w: invalid stats document: %w", ErrDataUnavailable, err)
	}
	seen := make(map[string]int, len(d.Timeline))
	for i, entry := range d.Timeline {
		if prev, ok := seen[entry.Date]; ok {
			return fmt.Errorf("%w: invalid stats document: timeline[%d].date duplicates timeline[%d] (%s)",
				ErrDataUnavailable, i, prev, entry.Date)
		}
		seen[entry.Date] = i
	}
	return nil
}

// Warnings lists internal inconsistencies that do not make the document
// unusable. The dashboard trusts supplied values, so these are only reported.
func (d *StatsData) Warnings() []string {
	var warnings []string

	s := d.Summary
	if s.NetGrowth != s.TotalAdded-s.TotalDeleted {
		warnings = append(warnings, fmt.Sprintf("summary.netGrowth is %d, expected totalAdded - totalDeleted = %d",
			s.NetGrowth, s.TotalAdded-s.TotalDeleted))
	}

	if len(d.Arena) > 0 && d.Meta.Mode == ModePersonal {
		warnings = append(warnings, "arena is present in personal mode")
	}

	ranks := make(map[int]bool, len(d.Arena))
	for i, entry := range d.Arena {
		if entry.NetGrowth != entry.Added-entry.Deleted {
			warnings = append(warnings, fmt.Sprintf("arena[%d] (%s): netGrowth is %d, expected %d",
				i, entry.User, entry.NetGrowth, entry.Added-entry.Deleted))
		}
		if ranks[entry.Rank] {
			warnings = append(warnings, fmt.Sprintf("arena[%d] (%s): rank %d is not unique", i, entry.User, entry.Rank))
		}
		ranks[entry.Rank] = true
	}
	for rank := 1; rank <= len(d.Arena); rank++ {
		if !ranks[rank] {
			warnings = append(warnings, fmt.Sprintf("arena ranks are not contiguous: rank %d is missing", rank))
			break
		}
	}

	return warnings
}
