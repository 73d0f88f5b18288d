package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-matcher/internal/ingestion"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// Error codes returned in the "error" field of error bodies.
const (
	codeValidation      = "validation_error"
	codeUnsupportedFile = "unsupported_file"
	codeTooLarge        = "payload_too_large"
	codeExtraction      = "extraction_failed"
	codeTimeout         = "timeout"
	codeRateLimited     = "rate_limit_exceeded"
	codeInternal        = "internal_error"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	status, _ := classify(err)
	return status
}

func classify(err error) (int, string) {
	var (
		validationErr *ErrValidation
		formatErr     *ingestion.InputFormatError
		extractionErr *ingestion.ExtractionError
		tooLargeErr   *http.MaxBytesError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, codeValidation
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge, codeTooLarge
	case errors.As(err, &formatErr):
		return http.StatusBadRequest, codeUnsupportedFile
	case errors.As(err, &extractionErr):
		return http.StatusUnprocessableEntity, codeExtraction
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

// validationError converts validator output into an *ErrValidation naming the
// first failing field.
func validationError(err error, fieldNames map[string]string) *ErrValidation {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := fe.Field()
		if name, ok := fieldNames[fe.StructField()]; ok {
			field = name
		}
		return &ErrValidation{Field: field, Message: validationMessage(fe.Tag())}
	}
	return &ErrValidation{Field: "request", Message: err.Error()}
}

func validationMessage(tag string) string {
	switch tag {
	case "required", "notblank":
		return "is required"
	case "min":
		return "must not be empty"
	default:
		return "failed " + tag + " check"
	}
}
