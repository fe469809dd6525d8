package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/ats-scanner/internal/fetch"
	"github.com/jonathan/ats-scanner/internal/keywords"
	"github.com/jonathan/ats-scanner/internal/types"
)

// maxTextLength bounds each text field of a JSON request, in characters.
const maxTextLength = 1 << 20

// ExtractRequest represents the request body for POST /extract
type ExtractRequest struct {
	Text    string            `json:"text" validate:"required,max=1048576"`
	Options *keywords.Options `json:"options,omitempty" validate:"-"`
}

// ScanRequest represents the request body for POST /scan. Exactly one of
// JobDescription and JobURL is required.
type ScanRequest struct {
	Document       string            `json:"document" validate:"required,max=1048576"`
	JobDescription string            `json:"job_description,omitempty" validate:"required_without=JobURL,excluded_with=JobURL,max=1048576"`
	JobURL         string            `json:"job_url,omitempty" validate:"omitempty,url"`
	Options        *keywords.Options `json:"options,omitempty" validate:"-"`
}

// ScanResponse represents the response for POST /scan and POST /scan/upload
type ScanResponse struct {
	ScanID    string                  `json:"scan_id"`
	JobSource string                  `json:"job_source,omitempty"`
	Result    *types.ComparisonResult `json:"result"`
	Targets   *types.KeywordTargets   `json:"targets"`
}

// TaxonomyResponse represents the response for GET /taxonomy
type TaxonomyResponse struct {
	Categories []TaxonomyCategory `json:"categories"`
}

// TaxonomyCategory is one category in a TaxonomyResponse
type TaxonomyCategory struct {
	Name     string   `json:"name"`
	Weight   float64  `json:"weight"`
	Keywords []string `json:"keywords"`
}

var validate = validator.New()

// Validate checks required fields and limits.
func (r *ExtractRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return requestError(err)
	}
	return nil
}

// Validate checks required fields, limits and the job URL scheme.
func (r *ScanRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return requestError(err)
	}
	if r.JobURL != "" {
		if err := fetch.ValidateURL(r.JobURL); err != nil {
			return &RequestError{Field: "job_url", Message: "must be an http or https URL"}
		}
	}
	return nil
}

// requestError converts the first validator failure into a RequestError
// naming the JSON field.
func requestError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &RequestError{Message: err.Error()}
	}

	fe := verrs[0]
	field := jsonFieldNames[fe.Field()]
	if field == "" {
		field = strings.ToLower(fe.Field())
	}

	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "required_without":
		msg = "job_description or job_url is required"
	case "excluded_with":
		msg = "job_description and job_url are mutually exclusive"
	case "max":
		msg = fmt.Sprintf("must be at most %d characters", maxTextLength)
	case "url":
		msg = "must be a valid URL"
	default:
		msg = fmt.Sprintf("failed %s check", fe.Tag())
	}
	return &RequestError{Field: field, Message: msg}
}

var jsonFieldNames = map[string]string{
	"Text":           "text",
	"Document":       "document",
	"JobDescription": "job_description",
	"JobURL":         "job_url",
}
