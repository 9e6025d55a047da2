package callback

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/anasi-bot/oauth/internal/delivery"
)

type deliveryCall struct {
	code  string
	state string
}

func Test_Server_handleGetCallback(t *testing.T) {
	tests := []struct {
		name            string
		url             string
		outcome         delivery.Outcome
		deliverErr      error
		wantStatus      int
		wantBodyContain []string
		wantDeliveries  []deliveryCall
	}{
		{
			"upstream error is reported with 400",
			"/api/auth/twitch?error=access_denied&state=12345_extra",
			delivery.OutcomeDelivered,
			nil,
			http.StatusBadRequest,
			[]string{"Authorization error: access_denied", "/connect"},
			nil,
		},
		{
			"upstream error takes precedence over a valid code",
			"/api/auth/twitch?error=server_error&code=abc123",
			delivery.OutcomeDelivered,
			nil,
			http.StatusBadRequest,
			[]string{"Authorization error: server_error"},
			nil,
		},
		{
			"upstream error takes precedence over an invalid path",
			"/api/auth/other?error=access_denied",
			delivery.OutcomeDelivered,
			nil,
			http.StatusBadRequest,
			[]string{"Authorization error: access_denied"},
			nil,
		},
		{
			"missing code is reported with 400",
			"/api/auth/twitch?state=12345_extra",
			delivery.OutcomeDelivered,
			nil,
			http.StatusBadRequest,
			[]string{"Missing authorization code"},
			nil,
		},
		{
			"empty code is reported with 400",
			"/api/auth/twitch?code=&state=12345_extra",
			delivery.OutcomeDelivered,
			nil,
			http.StatusBadRequest,
			[]string{"Missing authorization code"},
			nil,
		},
		{
			"empty error param is ignored",
			"/api/auth/twitch?error=&code=abc123&state=12345_extra",
			delivery.OutcomeDelivered,
			nil,
			http.StatusOK,
			[]string{"abc123", "12345"},
			[]deliveryCall{{"abc123", "12345_extra"}},
		},
		{
			"missing code takes precedence over an invalid path",
			"/api/auth/other",
			delivery.OutcomeDelivered,
			nil,
			http.StatusBadRequest,
			[]string{"Missing authorization code"},
			nil,
		},
		{
			"unrecognized path is reported with 400",
			"/api/auth/other?code=abc123",
			delivery.OutcomeDelivered,
			nil,
			http.StatusBadRequest,
			[]string{"Invalid callback endpoint: /api/auth/other"},
			nil,
		},
		{
			"delivered code renders automatic success page",
			"/api/auth/twitch?code=abc123&state=12345_extra",
			delivery.OutcomeDelivered,
			nil,
			http.StatusOK,
			[]string{"received your authorization automatically", "12345", "abc123"},
			[]deliveryCall{{"abc123", "12345_extra"}},
		},
		{
			"unconfigured webhook renders manual fallback page",
			"/api/auth/twitch?code=abc123&state=12345_extra",
			delivery.OutcomeNotConfigured,
			nil,
			http.StatusOK,
			[]string{"Copy Code", "abc123", "/complete abc123..."},
			[]deliveryCall{{"abc123", "12345_extra"}},
		},
		{
			"failed delivery renders manual fallback page with 200",
			"/api/auth/twitch?code=abc123&state=12345_extra",
			delivery.OutcomeFailed,
			errors.New("connection refused"),
			http.StatusOK,
			[]string{"Copy Code", "abc123"},
			[]deliveryCall{{"abc123", "12345_extra"}},
		},
		{
			"absent state is passed through as empty",
			"/api/auth/twitch?code=abc123",
			delivery.OutcomeDelivered,
			nil,
			http.StatusOK,
			[]string{"abc123", "unknown"},
			[]deliveryCall{{"abc123", ""}},
		},
		{
			"long code is truncated in /complete hint",
			"/api/auth/twitch?code=0123456789abcdefghijklmnop&state=12345_extra",
			delivery.OutcomeFailed,
			errors.New("timeout"),
			http.StatusOK,
			[]string{"0123456789abcdefghijklmnop", "/complete 0123456789abcdefghij..."},
			[]deliveryCall{{"0123456789abcdefghijklmnop", "12345_extra"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deliveries := make([]deliveryCall, 0)
			s := &Server{
				deliver: func(ctx context.Context, code, state string) (delivery.Outcome, error) {
					deliveries = append(deliveries, deliveryCall{code, state})
					return tt.outcome, tt.deliverErr
				},
			}
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			res := httptest.NewRecorder()
			s.handleGetCallback(res, req)

			b, err := io.ReadAll(res.Body)
			assert.NoError(t, err)
			body := string(b)
			assert.Equal(t, tt.wantStatus, res.Code)
			assert.Equal(t, "text/html; charset=utf-8", res.Header().Get("content-type"))
			for _, want := range tt.wantBodyContain {
				assert.Contains(t, body, want)
			}

			if tt.wantDeliveries == nil {
				assert.Empty(t, deliveries)
			} else {
				assert.Equal(t, tt.wantDeliveries, deliveries)
			}
		})
	}
}

func Test_Server_handleGetCallback_is_idempotent(t *testing.T) {
	// Use a real Forwarder pointed at a server that's no longer listening, so every
	// delivery attempt fails at the transport level
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()
	f := delivery.NewForwarder(url)
	s := NewServer(f.Forward)

	var firstBody string
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/twitch?code=abc123&state=12345_extra", nil)
		res := httptest.NewRecorder()
		s.handleGetCallback(res, req)

		assert.Equal(t, http.StatusOK, res.Code)
		body := res.Body.String()
		assert.Contains(t, body, "Copy Code")
		if i == 0 {
			firstBody = body
		} else {
			assert.Equal(t, firstBody, body)
		}
	}
}

func Test_Server_handleGetCallback_webhook(t *testing.T) {
	tests := []struct {
		name            string
		configured      bool
		webhookStatus   int
		wantRequests    int
		wantStatus      int
		wantBodyContain string
	}{
		{
			"no webhook configured: no request, manual fallback",
			false,
			http.StatusOK,
			0,
			http.StatusOK,
			"Copy Code",
		},
		{
			"webhook accepts code: one request, automatic success",
			true,
			http.StatusOK,
			1,
			http.StatusOK,
			"received your authorization automatically",
		},
		{
			"webhook rejects code: one request, manual fallback",
			true,
			http.StatusBadGateway,
			1,
			http.StatusOK,
			"Copy Code",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			numRequests := 0
			ts := httptest.NewServer(http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
				numRequests++
				res.WriteHeader(tt.webhookStatus)
			}))
			defer ts.Close()

			webhookUrl := ""
			if tt.configured {
				webhookUrl = ts.URL
			}
			s := NewServer(delivery.NewForwarder(webhookUrl).Forward)

			req := httptest.NewRequest(http.MethodGet, "/api/auth/twitch?code=abc123&state=12345_extra", nil)
			res := httptest.NewRecorder()
			s.handleGetCallback(res, req)

			assert.Equal(t, tt.wantRequests, numRequests)
			assert.Equal(t, tt.wantStatus, res.Code)
			assert.Contains(t, res.Body.String(), tt.wantBodyContain)
		})
	}
}

func Test_Server_RegisterRoutes(t *testing.T) {
	numDeliveries := 0
	s := NewServer(func(ctx context.Context, code, state string) (delivery.Outcome, error) {
		numDeliveries++
		return delivery.OutcomeNotConfigured, nil
	})
	r := mux.NewRouter()
	s.RegisterRoutes(r)

	// The callback path is routed to our handler
	res := httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/api/auth/twitch?code=abc123", nil))
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, 1, numDeliveries)

	// Other paths under the mount point reach the handler and are rejected by it
	res = httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/api/auth/discord?code=abc123", nil))
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.True(t, strings.Contains(res.Body.String(), "Invalid callback endpoint: /api/auth/discord"))
	assert.Equal(t, 1, numDeliveries)

	// Non-GET requests are not routed
	res = httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/api/auth/twitch?code=abc123", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, res.Code)
	assert.Equal(t, 1, numDeliveries)
}
