// Package report locates the labeled fields of a SunCHECK dose-verification
// report inside its extracted text.
package report

import (
	"fmt"
	"regexp"
	"strconv"
)

// Field names as reported in MissingFieldError, in parse priority order.
const (
	FieldPatientID     = "Patient ID"
	FieldPatientName   = "Patient Name"
	FieldPlanName      = "Plan Name"
	FieldGammaCriteria = "Gamma criteria (Diff %/Dist mm)"
)

var (
	patientIDPattern   = regexp.MustCompile(`Patient ID:\s*([A-Za-z]*\d{5,9})`)
	patientNamePattern = regexp.MustCompile(`Patient Name:\s*([^\n\r]+)`)
	planNamePattern    = regexp.MustCompile(`Plan Name:\s*([^\n\r]+)`)
	gammaPattern       = regexp.MustCompile(`(?i)Diff\s*\(%\)\s*:\s*(\d+)\s*Dist\s*\(mm\)\s*:\s*(\d+)`)
)

// Fields holds the values extracted from one report. Values are raw as they
// appear in the document; filename sanitization happens downstream.
type Fields struct {
	PatientID   string
	PatientName string
	PlanName    string
	DiffPercent int
	DistanceMM  int
}

// MissingFieldError indicates that a required field's pattern was not found
// anywhere in the report text.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field not found in report text: %s", e.Field)
}

// Parser extracts report fields from document text.
type Parser struct{}

// NewParser creates a new report field parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse extracts the four required fields from the concatenated report text.
// Patterns are evaluated in priority order and the first missing field aborts
// parsing, so the reported field is always the highest-priority absent one.
func (p *Parser) Parse(text string) (Fields, error) {
	pidMatch := patientIDPattern.FindStringSubmatch(text)
	if pidMatch == nil {
		return Fields{}, &MissingFieldError{Field: FieldPatientID}
	}

	nameMatch := patientNamePattern.FindStringSubmatch(text)
	if nameMatch == nil {
		return Fields{}, &MissingFieldError{Field: FieldPatientName}
	}

	planMatch := planNamePattern.FindStringSubmatch(text)
	if planMatch == nil {
		return Fields{}, &MissingFieldError{Field: FieldPlanName}
	}

	gammaMatch := gammaPattern.FindStringSubmatch(text)
	if gammaMatch == nil {
		return Fields{}, &MissingFieldError{Field: FieldGammaCriteria}
	}

	// The gamma groups are digit-only by construction, so Atoi cannot fail
	// on the match itself; guard anyway against values that overflow int.
	diff, err := strconv.Atoi(gammaMatch[1])
	if err != nil {
		return Fields{}, &MissingFieldError{Field: FieldGammaCriteria}
	}
	dist, err := strconv.Atoi(gammaMatch[2])
	if err != nil {
		return Fields{}, &MissingFieldError{Field: FieldGammaCriteria}
	}

	return Fields{
		PatientID:   pidMatch[1],
		PatientName: nameMatch[1],
		PlanName:    planMatch[1],
		DiffPercent: diff,
		DistanceMM:  dist,
	}, nil
}
