package rename

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medqa/suncheck-renamer/internal/report"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		name     string
		fields   report.Fields
		expected string
	}{
		{
			name: "plain_fields",
			fields: report.Fields{
				PatientID:   "ABC12345",
				PatientName: "John Doe",
				PlanName:    "Plan A",
				DiffPercent: 3,
				DistanceMM:  2,
			},
			expected: "ABC12345_John Doe_Plan A_3%2mm.pdf",
		},
		{
			name: "fields_are_sanitized",
			fields: report.Fields{
				PatientID:   " 12345 ",
				PatientName: "Jo/hn*Doe",
				PlanName:    "VMAT: Boost",
				DiffPercent: 2,
				DistanceMM:  1,
			},
			expected: "12345_JohnDoe_VMAT Boost_2%1mm.pdf",
		},
		{
			name: "empty_token_keeps_position",
			fields: report.Fields{
				PatientID:   "12345",
				PatientName: `<>`,
				PlanName:    "Plan",
				DiffPercent: 3,
				DistanceMM:  3,
			},
			expected: "12345__Plan_3%3mm.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Filename(tt.fields))
		})
	}
}
