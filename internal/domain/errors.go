package domain

import (
	"errors"
	"fmt"
)

var (
	ErrModuleNotFound        = errors.New("therapy module not found")
	ErrModuleVersionConflict = errors.New("therapy module version conflict")
	ErrAssessmentNotFound    = errors.New("assessment not found")
)

// InvalidIntakeError indica un campo de intake faltante o con formato invalido.
type InvalidIntakeError struct {
	Field  string
	Reason string
}

func (e *InvalidIntakeError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid intake field %q", e.Field)
	}
	return fmt.Sprintf("invalid intake field %q: %s", e.Field, e.Reason)
}

// InstructionNotFoundError indica que el modulo guardado no coincide con la estructura esperada.
type InstructionNotFoundError struct {
	SectionID     string
	InstructionID string
}

func (e *InstructionNotFoundError) Error() string {
	if e.InstructionID == "" {
		return fmt.Sprintf("section %q not found in module", e.SectionID)
	}
	return fmt.Sprintf("instruction %q not found in section %q", e.InstructionID, e.SectionID)
}
