package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/anasi-bot/oauth"
	"github.com/anasi-bot/oauth/internal/callback"
)

var callbackCode string
var callbackDiscordUserId string
var callbackState string
var callbackError string
var callbackPath string
var callbackPrintBody bool

func initCallbackCommand(cmd *flag.FlagSet) {
	cmd.StringVar(&callbackCode, "code", "", "Authorization code to send (random if empty)")
	cmd.StringVar(&callbackDiscordUserId, "discord-user-id", "1337", "Discord user ID to encode in the state value")
	cmd.StringVar(&callbackState, "state", "", "Literal state value, overriding -discord-user-id")
	cmd.StringVar(&callbackError, "error", "", "Simulate an error reported by Twitch (e.g. access_denied)")
	cmd.StringVar(&callbackPath, "path", callback.CallbackPath, "Request path")
	cmd.BoolVar(&callbackPrintBody, "print-body", false, "Print the HTML response body")
}

func runCallbackCommand(config *Config) error {
	u, err := buildCallbackUrl(config.ServerUrl)
	if err != nil {
		return err
	}

	fmt.Printf("GET %s\n", u)
	res, err := http.Get(u)
	if err != nil {
		return fmt.Errorf("error sending HTTP request: %w", err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	fmt.Printf("< %d (%d bytes)\n", res.StatusCode, len(body))
	if callbackPrintBody {
		fmt.Printf("\n%s\n", body)
	}
	return nil
}

func buildCallbackUrl(serverUrl string) (string, error) {
	u, err := url.Parse(strings.TrimSuffix(serverUrl, "/") + callbackPath)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}

	code := callbackCode
	if code == "" {
		code = strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	state := callbackState
	if state == "" {
		state = oauth.FormatState(callbackDiscordUserId, strings.ReplaceAll(uuid.NewString(), "-", ""))
	}

	q := u.Query()
	if callbackError != "" {
		q.Add("error", callbackError)
	} else {
		q.Add("code", code)
	}
	q.Add("state", state)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
