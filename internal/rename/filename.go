package rename

import (
	"fmt"

	"github.com/medqa/suncheck-renamer/internal/report"
)

// Filename builds the canonical output filename for a parsed report:
//
//	{patientID}_{patientName}_{planName}_{diff}%{dist}mm.pdf
//
// The field order and separators are fixed; downstream tooling parses
// patient and plan identity back out of these names. Text fields are
// sanitized; an empty sanitized token keeps its position, producing
// adjacent underscores rather than shifting the remaining fields.
func Filename(fields report.Fields) string {
	return fmt.Sprintf("%s_%s_%s_%d%%%dmm.pdf",
		Sanitize(fields.PatientID),
		Sanitize(fields.PatientName),
		Sanitize(fields.PlanName),
		fields.DiffPercent,
		fields.DistanceMM,
	)
}
