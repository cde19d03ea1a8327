package models

import "fmt"

// ValidationError reports malformed or missing input. It is raised before any
// external call is attempted and maps to a 400 at the HTTP boundary.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConfigurationError reports a missing credential or endpoint. It maps to a
// 500: the request cannot succeed until the deployment is fixed.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// ExternalServiceError reports a failed downstream call. Detail carries the
// downstream service's own error body so callers can diagnose the failure;
// it maps to a 502 at the HTTP boundary.
type ExternalServiceError struct {
	Service string
	Message string
	Status  int
	Detail  any
}

func (e *ExternalServiceError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s request failed", e.Service)
}

func Invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func Misconfigured(format string, args ...any) error {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}
