package render

import (
	"context"
	"encoding/json"
	"io"

	"github.com/naka-gawa/github-stats-dashboard/internal/usecase"
)

// JSON writes the derived dashboard as pretty-printed JSON.
type JSON struct {
	linkHost string
}

// NewJSON creates a JSON renderer.
func NewJSON(linkHost string) *JSON {
	return &JSON{linkHost: linkHost}
}

// StatusBody is written instead of a dashboard while loading or after a failure.
type StatusBody struct {
	State  string `json:"state"`
	Reason string `json:"reason,omitempty"`
}

// Render implements Renderer.
func (j *JSON) Render(_ context.Context, w io.Writer, state usecase.State) error {
	return dispatch(state, j.linkHost, stateHandlers{
		loading: func() error {
			return writeJSON(w, StatusBody{State: usecase.Loading{}.Name()})
		},
		failed: func(reason string) error {
			return writeJSON(w, StatusBody{State: usecase.Failed{}.Name(), Reason: reason})
		},
		loaded: func(d usecase.Dashboard) error {
			return writeJSON(w, d)
		},
	})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
