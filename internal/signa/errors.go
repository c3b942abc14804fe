package signa

import (
	"fmt"
	"net/http"
	"time"
)

// Shape is the top-level JSON kind a call expects back.
type Shape int

const (
	shapeOther Shape = iota - 1
	ShapeObject
	ShapeArray
)

func (s Shape) String() string {
	switch s {
	case ShapeObject:
		return "object"
	case ShapeArray:
		return "array"
	}
	return "value"
}

// Condition classifies a non-2xx status.
type Condition string

const (
	ConditionInvalidInput      Condition = "invalid-input"
	ConditionUnauthorized      Condition = "unauthorized"
	ConditionForbidden         Condition = "forbidden"
	ConditionNotFound          Condition = "not-found"
	ConditionServerUnavailable Condition = "server-unavailable"
	ConditionServerError       Condition = "server-error"
)

// ConditionFor maps an HTTP status code to its condition. Any 5xx is
// server-unavailable; any other non-2xx falls back to server-error.
func ConditionFor(status int) Condition {
	switch {
	case status == http.StatusBadRequest:
		return ConditionInvalidInput
	case status == http.StatusUnauthorized:
		return ConditionUnauthorized
	case status == http.StatusForbidden:
		return ConditionForbidden
	case status == http.StatusNotFound:
		return ConditionNotFound
	case status >= 500 && status <= 599:
		return ConditionServerUnavailable
	}
	return ConditionServerError
}

// Rule names the constraint a ValidationError violated.
type Rule string

const (
	RuleRequired  Rule = "required"
	RuleMinLength Rule = "min_length"
	RuleEmail     Rule = "email"
	RuleRange     Rule = "range"
	RulePositive  Rule = "positive"
	RuleDate      Rule = "date"
	RuleTriage    Rule = "triage"
)

// ValidationError is raised before any request is issued.
type ValidationError struct {
	Entity string // "doctor", "patient", ...
	Field  string // wire field name, e.g. "cedula"
	Rule   Rule
	Min    int
	Max    int
}

func (e *ValidationError) Error() string {
	switch e.Rule {
	case RuleMinLength:
		return fmt.Sprintf("signa: invalid %s.%s: shorter than %d characters", e.Entity, e.Field, e.Min)
	case RuleRange:
		return fmt.Sprintf("signa: invalid %s.%s: outside [%d,%d]", e.Entity, e.Field, e.Min, e.Max)
	}
	return fmt.Sprintf("signa: invalid %s.%s: %s", e.Entity, e.Field, e.Rule)
}

// ConnectionError means the remote origin could not be reached.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("signa: cannot reach %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// TimeoutError means the per-call bound elapsed and the request was cancelled.
type TimeoutError struct {
	Path  string
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("signa: %s timed out after %s", e.Path, e.After)
}

// HTTPError carries a non-2xx response.
type HTTPError struct {
	Status     int
	StatusText string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("signa: server returned %d %s", e.Status, e.StatusText)
}

// Condition classifies the status code.
func (e *HTTPError) Condition() Condition { return ConditionFor(e.Status) }

// MalformedResponseError means a 2xx body did not have the expected shape.
type MalformedResponseError struct {
	Path   string
	Want   Shape
	Detail string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("signa: malformed response from %s (want %s): %s", e.Path, e.Want, e.Detail)
}

// NetworkError wraps any other failure, including caller cancellation.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("signa: network error: %v", e.Err) }

func (e *NetworkError) Unwrap() error { return e.Err }
