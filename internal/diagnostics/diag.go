package diagnostics

import (
	"errors"
	"strings"
)

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

type Diagnostic struct {
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
}

// FromError turns a run failure into a Diagnostic for the diag stream.
// Typed errors keep their kind in the code (e.g. "BINDING.DOMAIN").
func FromError(scope string, err error) Diagnostic {
	d := Diagnostic{
		Severity: Err,
		Code:     strings.ToUpper(scope) + ".FAILED",
		Summary:  err.Error(),
	}
	var e *Error
	if !errors.As(err, &e) {
		return d
	}
	d.Code = strings.ToUpper(scope) + "." + strings.ToUpper(string(e.Kind))
	d.Summary = e.Kind.summary()
	d.Detail = e.Error()
	d.Evidence = map[string]any{"op": e.Op}
	if e.Subject != "" {
		d.Evidence["subject"] = e.Subject
	}
	switch e.Kind {
	case Configuration:
		d.LikelyCauses = []string{"missing or invalid parameter in scene construction"}
		d.SuggestedFixes = []string{"check the scene params in config.yaml"}
	case StaleReference:
		d.LikelyCauses = []string{"base geometry disposed while a binding still referenced it"}
	case Domain:
		d.LikelyCauses = []string{"input outside the function's valid domain"}
	}
	return d
}
