package pipeline

import "fmt"

// FailureKind classifies why processing a single file failed.
type FailureKind string

const (
	// KindNotAPDF means the file never reached extraction because its
	// extension is not .pdf.
	KindNotAPDF FailureKind = "not_a_pdf"

	// KindExtractionFailed means the file could not be opened or parsed
	// as a PDF document.
	KindExtractionFailed FailureKind = "extraction_failed"

	// KindFieldMissing means a required report field was absent from the
	// extracted text. Outcome.Field names the first missing field.
	KindFieldMissing FailureKind = "field_missing"

	// KindIOFailure means the output directory or file could not be written.
	KindIOFailure FailureKind = "io_failure"
)

// Outcome is the result of processing one input file. Exactly one of
// OutputPath (success) or Kind+Message (failure) is meaningful.
type Outcome struct {
	Source     string
	OutputPath string
	Kind       FailureKind
	Field      string
	Message    string
	Err        error
}

// OK reports whether the file was processed successfully.
func (o Outcome) OK() bool {
	return o.Kind == ""
}

// String renders the outcome as a one-line log entry.
func (o Outcome) String() string {
	if o.OK() {
		return fmt.Sprintf("OK   %s -> %s", o.Source, o.OutputPath)
	}
	if o.Kind == KindNotAPDF {
		return fmt.Sprintf("SKIP %s: %s", o.Source, o.Message)
	}
	return fmt.Sprintf("ERR  %s: %s", o.Source, o.Message)
}

func success(source, outputPath string) Outcome {
	return Outcome{Source: source, OutputPath: outputPath}
}

func failure(source string, kind FailureKind, err error) Outcome {
	return Outcome{
		Source:  source,
		Kind:    kind,
		Message: err.Error(),
		Err:     err,
	}
}
