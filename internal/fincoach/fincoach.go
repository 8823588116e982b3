// Package fincoach provides the core types shared by the fincoach client.
// It defines the conversation Message, the user modes understood by the advice
// service, and the ValidationError returned when local input is rejected
// before any network call is made.
package fincoach

import (
	"fmt"
	"strings"
)

// UserMode selects the register of the advice returned by the service.
type UserMode string

const (
	ModeStudent      UserMode = "student"
	ModeProfessional UserMode = "professional"
)

// DefaultMode is the mode used when none is configured.
const DefaultMode = ModeProfessional

// AnalysisType selects the fraud analysis performed by the service.
type AnalysisType string

const (
	AnalysisGeneral   AnalysisType = "general"
	AnalysisFinancial AnalysisType = "financial"
)

// ValidationError reports local input that was rejected before reaching the
// network layer.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid is a shorthand for building a *ValidationError.
func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ParseUserMode parses a user mode string.
// An empty string yields DefaultMode.
//
// Example:
//
//	mode, err := ParseUserMode("Student")
//	// mode = ModeStudent
func ParseUserMode(s string) (UserMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultMode, nil
	case string(ModeStudent):
		return ModeStudent, nil
	case string(ModeProfessional):
		return ModeProfessional, nil
	default:
		return "", Invalid("mode", "unknown user mode %q (expected student or professional)", s)
	}
}

// ParseAnalysisType parses a fraud analysis type.
// An empty string yields AnalysisGeneral.
func ParseAnalysisType(s string) (AnalysisType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(AnalysisGeneral):
		return AnalysisGeneral, nil
	case string(AnalysisFinancial):
		return AnalysisFinancial, nil
	default:
		return "", Invalid("analysis_type", "unknown analysis type %q (expected general or financial)", s)
	}
}
