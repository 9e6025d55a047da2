package callback

import (
	"net/http"

	"github.com/anasi-bot/oauth"
	"github.com/anasi-bot/oauth/internal/delivery"
)

// ViewName identifies one of the pages we can render in response to a callback
type ViewName string

const (
	// ViewAutomaticSuccess is shown when the bot has already received the code
	ViewAutomaticSuccess ViewName = "automatic-success"
	// ViewManualFallback is shown when the user must give the code to the bot by hand
	ViewManualFallback ViewName = "manual-fallback"
	// ViewError is shown when the callback request itself was invalid
	ViewError ViewName = "error"
)

// View is everything needed to render a response to a callback request
type View struct {
	Name          ViewName
	Status        int
	Code          string
	DiscordUserId string
	Message       string
}

// presentOutcome chooses the view to show after a delivery attempt. Anything short of
// a confirmed delivery falls back to manual entry: the user has already authorized our
// app, so they should always come away with a usable code.
func presentOutcome(outcome delivery.Outcome, code, state string) View {
	if outcome == delivery.OutcomeDelivered {
		return View{
			Name:          ViewAutomaticSuccess,
			Status:        http.StatusOK,
			Code:          code,
			DiscordUserId: oauth.ParseDiscordUserId(state),
		}
	}
	return View{
		Name:   ViewManualFallback,
		Status: http.StatusOK,
		Code:   code,
	}
}

// presentError chooses the view to show for a request that failed validation
func presentError(err error) View {
	return View{
		Name:    ViewError,
		Status:  http.StatusBadRequest,
		Message: err.Error(),
	}
}
