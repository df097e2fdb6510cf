package config

import "fmt"

// Configuration error codes (E201-E209)
const (
	ErrCodeRead       = "E201" // config file could not be read
	ErrCodeCompile    = "E202" // config file is not valid CUE
	ErrCodeValidate   = "E203" // config does not satisfy the schema
	ErrCodeDecode     = "E204" // config could not be decoded
	ErrCodeDuration   = "E205" // duration field does not parse
	ErrCodeEnvOverlay = "E206" // environment value rejected
)

// LoadError reports a configuration failure.
type LoadError struct {
	Code    string
	Path    string // config file, empty for defaults or environment
	Message string
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
