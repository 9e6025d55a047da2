package delivery

import "fmt"

// Outcome describes the result of a single attempt to deliver an authorization code
type Outcome int

const (
	// OutcomeDelivered indicates that the webhook accepted the code with a 200 response
	OutcomeDelivered Outcome = iota
	// OutcomeNotConfigured indicates that no webhook URL is configured, so no delivery
	// was attempted
	OutcomeNotConfigured
	// OutcomeFailed indicates that the webhook could not be reached, timed out, or
	// responded with a status other than 200
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDelivered:
		return "delivered"
	case OutcomeNotConfigured:
		return "not_configured"
	case OutcomeFailed:
		return "failed"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// StatusError is returned when the webhook responds with a non-200 status
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("got response %d from webhook", e.StatusCode)
}
