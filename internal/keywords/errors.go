package keywords

import "fmt"

// ConfigError reports invalid extraction options.
type ConfigError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid option %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid options: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// TaxonomyError reports a malformed taxonomy definition.
type TaxonomyError struct {
	Category string
	Keyword  string
	Message  string
}

func (e *TaxonomyError) Error() string {
	switch {
	case e.Keyword != "":
		return fmt.Sprintf("taxonomy category %q keyword %q: %s", e.Category, e.Keyword, e.Message)
	case e.Category != "":
		return fmt.Sprintf("taxonomy category %q: %s", e.Category, e.Message)
	default:
		return fmt.Sprintf("taxonomy: %s", e.Message)
	}
}
