package stream

import (
	"stock-reconciler/core/reconcile"

	"github.com/goccy/go-json"
)

// Type discriminates stream events.
type Type string

const (
	TypeProgress Type = "progress"
	TypeResult   Type = "result"
	TypeSummary  Type = "summary"
	TypeError    Type = "error"
	TypeComplete Type = "complete"
)

// Event is one frame of a reconciliation stream. Only the fields belonging to
// Type are written on the wire; decoding accepts any of them.
type Event struct {
	Type    Type                      `json:"type"`
	Message string                    `json:"message,omitempty"`
	Current int                       `json:"current,omitempty"`
	Total   int                       `json:"total,omitempty"`
	Result  *reconcile.AnalysisResult `json:"result,omitempty"`
	Summary *reconcile.Summary        `json:"summary,omitempty"`
	Results int                       `json:"results,omitempty"`
	Errors  []string                  `json:"errors,omitempty"`
	Fatal   bool                      `json:"fatal,omitempty"`
}

// Terminal reports whether e ends a stream.
func (e Event) Terminal() bool {
	return e.Type == TypeComplete || (e.Type == TypeError && e.Fatal)
}

// MarshalJSON writes the payload shape of the event type, keeping zero
// counters that are meaningful for that type.
func (e Event) MarshalJSON() ([]byte, error) {
	switch e.Type {
	case TypeProgress:
		return json.Marshal(struct {
			Type    Type   `json:"type"`
			Message string `json:"message"`
			Current int    `json:"current"`
			Total   int    `json:"total"`
		}{e.Type, e.Message, e.Current, e.Total})
	case TypeResult:
		return json.Marshal(struct {
			Type   Type                      `json:"type"`
			Result *reconcile.AnalysisResult `json:"result"`
		}{e.Type, e.Result})
	case TypeSummary:
		return json.Marshal(struct {
			Type    Type               `json:"type"`
			Summary *reconcile.Summary `json:"summary"`
		}{e.Type, e.Summary})
	case TypeComplete:
		errs := e.Errors
		if errs == nil {
			errs = []string{}
		}
		return json.Marshal(struct {
			Type    Type     `json:"type"`
			Results int      `json:"results"`
			Errors  []string `json:"errors"`
			Total   int      `json:"total"`
		}{e.Type, e.Results, errs, e.Total})
	default:
		return json.Marshal(struct {
			Type    Type   `json:"type"`
			Message string `json:"message"`
			Fatal   bool   `json:"fatal,omitempty"`
		}{e.Type, e.Message, e.Fatal})
	}
}
