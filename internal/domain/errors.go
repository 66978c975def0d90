package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownCategory = errors.New("unknown category")

// UpstreamError is a transport failure or a provider-reported error list.
type UpstreamError struct {
	Category Category
	Message  string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %s", e.Category, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ConfigurationError means a required setting (usually a credential) is missing.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing configuration: %s", e.Setting)
}
