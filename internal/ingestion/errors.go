package ingestion

import "fmt"

// InputFormatError reports an upload that is not an accepted document type.
type InputFormatError struct {
	FileName string
	Reason   string
}

func (e *InputFormatError) Error() string {
	if e.FileName == "" {
		return fmt.Sprintf("unsupported input: %s", e.Reason)
	}
	return fmt.Sprintf("unsupported input %q: %s", e.FileName, e.Reason)
}

// ExtractionError reports a document whose text could not be obtained,
// including documents that parse but contain no text.
type ExtractionError struct {
	Source string
	Reason string
	Cause  error
}

func (e *ExtractionError) Error() string {
	msg := e.Reason
	if e.Source != "" {
		msg = fmt.Sprintf("%s: %s", e.Source, e.Reason)
	}
	if e.Cause != nil {
		return fmt.Sprintf("text extraction failed for %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("text extraction failed for %s", msg)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
