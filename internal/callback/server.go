package callback

import (
	"bytes"
	"context"
	"net/http"

	"github.com/golden-vcr/server-common/entry"
	"github.com/gorilla/mux"

	"github.com/anasi-bot/oauth"
	"github.com/anasi-bot/oauth/internal/delivery"
	"github.com/anasi-bot/oauth/internal/telemetry"
)

// MountPath is the prefix under which this server handles all GET requests
const MountPath = "/api/auth"

// CallbackPath is the only path that Twitch's redirect_uri should point to
const CallbackPath = MountPath + "/twitch"

// DeliverFunc makes a single attempt to hand an authorization code off to the bot
type DeliverFunc func(ctx context.Context, code, state string) (delivery.Outcome, error)

type Server struct {
	deliver DeliverFunc
}

func NewServer(deliver DeliverFunc) *Server {
	return &Server{
		deliver: deliver,
	}
}

func (s *Server) RegisterRoutes(r *mux.Router) {
	r.PathPrefix(MountPath).Methods("GET").HandlerFunc(s.handleGetCallback)
}

// handleGetCallback (GET /api/auth/twitch) is the redirect_uri for our Twitch OAuth
// app: once the user grants access, Twitch sends their browser here with an
// authorization code, which we attempt to deliver to the bot before rendering a page
// that tells the user what to do next
func (s *Server) handleGetCallback(res http.ResponseWriter, req *http.Request) {
	logger := entry.Log(req)

	// Reject the request outright if Twitch reported an error, if we didn't get a code,
	// or if the request didn't come in on our one valid callback path
	q := req.URL.Query()
	code := q.Get("code")
	state := q.Get("state")
	if err := validateCallback(req.URL.Path, q.Get("error"), code); err != nil {
		logger.Warn("Rejected OAuth callback", "error", err, "path", req.URL.Path)
		if err := writeView(res, presentError(err)); err != nil {
			logger.Error("Failed to write error page", "error", err)
		}
		return
	}

	// Attempt to send the code to the bot: if that fails for any reason, we still
	// respond with 200, and the user can complete the process manually
	outcome, err := s.deliver(req.Context(), code, state)
	logger = logger.With(
		"outcome", outcome.String(),
		"discordUserId", oauth.ParseDiscordUserId(state),
	)
	if err != nil {
		logger.Error("Failed to deliver authorization code to webhook; falling back to manual entry", "error", err)
	} else {
		logger.Info("Handled OAuth callback")
	}

	if err := writeView(res, presentOutcome(outcome, code, state)); err != nil {
		logger.Error("Failed to write result page", "error", err)
	}
}

// writeView renders the given view as an HTML page and writes it to the response
// along with the view's status code
func writeView(res http.ResponseWriter, view View) error {
	telemetry.CallbacksHandled.WithLabelValues(string(view.Name)).Inc()

	var buf bytes.Buffer
	if err := renderView(&buf, view); err != nil {
		http.Error(res, view.Message, view.Status)
		return err
	}

	res.Header().Set("content-type", "text/html; charset=utf-8")
	res.WriteHeader(view.Status)
	_, err := buf.WriteTo(res)
	return err
}
