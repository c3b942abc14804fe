package signa

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var entityLabels = map[string]string{
	"doctor":       "doctor",
	"patient":      "patient",
	"history":      "clinical history",
	"visit":        "visit",
	"diagnosis":    "diagnosis",
	"registration": "doctor",
	"login":        "login",
	"rppg":         "rPPG clip",
}

var fieldLabels = map[string]string{
	"nombre":            "name",
	"email":             "email",
	"especialidad":      "specialty",
	"cedula":            "national ID",
	"edad":              "age",
	"paciente_id":       "patient",
	"fecha":             "date",
	"historia_id":       "clinical history",
	"hora_entrada":      "entry time",
	"evaluacion_triaje": "triage evaluation",
	"numero_visita":     "visit number",
	"visita_id":         "visit",
	"diagnostico":       "diagnosis",
	"password":          "password",
	"secret":            "registration secret",
	"file":              "video",
}

// Message renders the user-facing text for an error returned by Client.
// Unknown errors fall back to their Error() text.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var (
		validation *ValidationError
		conn       *ConnectionError
		timeout    *TimeoutError
		httpErr    *HTTPError
		malformed  *MalformedResponseError
		network    *NetworkError
	)
	switch {
	case errors.As(err, &validation):
		return validationMessage(validation)
	case errors.As(err, &conn):
		return "Connection error: the server could not be reached. Check that the API is running."
	case errors.As(err, &timeout):
		return "The request timed out."
	case errors.As(err, &httpErr):
		return httpMessage(httpErr)
	case errors.As(err, &malformed):
		if malformed.Want == ShapeArray {
			return "Invalid response format: an array was expected."
		}
		return "Invalid response format."
	case errors.As(err, &network):
		if errors.Is(network.Err, context.Canceled) {
			return "The request was cancelled."
		}
		return "Unknown network error."
	}
	return err.Error()
}

func httpMessage(e *HTTPError) string {
	switch e.Status {
	case http.StatusBadRequest:
		return "Invalid data sent to the server."
	case http.StatusUnauthorized:
		return "Unauthorized. Check your credentials."
	case http.StatusForbidden:
		return "Access forbidden."
	case http.StatusNotFound:
		return "Resource not found."
	case http.StatusInternalServerError:
		return "Internal server error."
	case http.StatusBadGateway:
		return "Server temporarily unavailable."
	case http.StatusServiceUnavailable:
		return "Service unavailable."
	}
	if e.Condition() == ConditionServerUnavailable {
		return "Server unavailable."
	}
	return fmt.Sprintf("Server error: %d %s", e.Status, e.StatusText)
}

func validationMessage(e *ValidationError) string {
	entity := entityLabels[e.Entity]
	if entity == "" {
		entity = e.Entity
	}
	field := fieldLabels[e.Field]
	if field == "" {
		field = e.Field
	}

	switch e.Rule {
	case RuleMinLength:
		return fmt.Sprintf("The %s %s must be at least %d characters.", entity, field, e.Min)
	case RuleEmail:
		return fmt.Sprintf("The %s email is not valid.", entity)
	case RuleRange:
		return fmt.Sprintf("The %s %s must be between %d and %d.", entity, field, e.Min, e.Max)
	case RulePositive:
		return fmt.Sprintf("The %s %s must be set.", entity, field)
	case RuleDate:
		return fmt.Sprintf("The %s %s must be a date in YYYY-MM-DD format.", entity, field)
	case RuleTriage:
		return fmt.Sprintf("The %s %s must be one of Rojo, Naranja, Amarillo, Verde or Azul.", entity, field)
	}
	return fmt.Sprintf("The %s %s is required.", entity, field)
}
