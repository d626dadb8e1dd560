// Package format holds the number, label and link formatting shared by the
// dashboard derivations and renderers.
package format

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// DefaultLinkHost is the host profile and repository links point to.
const DefaultLinkHost = "https://github.com"

// WeekdayNames are the weekday labels, Monday first.
var WeekdayNames = [7]string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}

// Count formats n with thousands separators ("5,000").
func Count(n int64) string {
	return humanize.Comma(n)
}

// Added formats an added-lines value with a leading plus ("+5,000").
func Added(n int64) string {
	return "+" + humanize.Comma(n)
}

// Deleted formats a deleted-lines value with a leading minus ("-1,200").
func Deleted(n int64) string {
	return "-" + humanize.Comma(n)
}

// Signed formats n with an explicit sign; zero is shown as "+0".
func Signed(n int64) string {
	if n >= 0 {
		return "+" + humanize.Comma(n)
	}
	return humanize.Comma(n)
}

// Percent formats a share that is already in percent with one decimal ("75.0%").
func Percent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}

// Decimal formats f with one decimal place.
func Decimal(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

// Days formats a day count the way the summary cards do ("30天").
func Days(n int) string {
	return strconv.Itoa(n) + "天"
}

// Repos formats a repository count ("4个").
func Repos(n int) string {
	return strconv.Itoa(n) + "个"
}

// Hour formats an hour of day as "9:00".
func Hour(h int) string {
	return strconv.Itoa(h) + ":00"
}

// ShortName returns the last path segment of an "owner/name" identifier.
func ShortName(name string) string {
	if idx := strings.LastIndex(name, "/"); idx >= 0 && idx < len(name)-1 {
		return name[idx+1:]
	}
	return name
}

// Weekday returns the label for a weekday index, or "" when out of range.
func Weekday(idx int) string {
	if idx < 0 || idx >= len(WeekdayNames) {
		return ""
	}
	return WeekdayNames[idx]
}

// Link builds an outbound link for a user or "owner/name" identifier.
// Every path segment is escaped on its own so the slash survives.
func Link(host, ident string) string {
	if host == "" {
		host = DefaultLinkHost
	}
	segments := strings.Split(ident, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.TrimRight(host, "/") + "/" + strings.Join(segments, "/")
}

// Tone is the colour class of a signed value.
type Tone string

const (
	Positive Tone = "positive"
	Negative Tone = "negative"
	Neutral  Tone = "neutral"
)

// ToneOf returns Positive for n >= 0 and Negative otherwise.
func ToneOf(n int64) Tone {
	if n >= 0 {
		return Positive
	}
	return Negative
}
