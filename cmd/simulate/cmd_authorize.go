package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nicklaw5/helix/v2"

	"github.com/anasi-bot/oauth"
)

var authorizeDiscordUserId string
var authorizeScopes string

func initAuthorizeCommand(cmd *flag.FlagSet) {
	cmd.StringVar(&authorizeDiscordUserId, "discord-user-id", "1337", "Discord user ID to encode in the state value")
	cmd.StringVar(&authorizeScopes, "scopes", "user:read:email", "Space-separated list of Twitch scopes to request")
}

// runAuthorizeCommand prints the Twitch authorization URL that the bot's /connect
// command would send a user to, so the whole flow can be exercised by hand
func runAuthorizeCommand(config *Config) error {
	if config.TwitchClientId == "" {
		return fmt.Errorf("TWITCH_CLIENT_ID must be set")
	}

	c, err := helix.NewClient(&helix.Options{
		ClientID:    config.TwitchClientId,
		RedirectURI: config.TwitchRedirectUri,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize Twitch API client: %w", err)
	}

	nonce := strings.ReplaceAll(uuid.NewString(), "-", "")
	u := c.GetAuthorizationURL(&helix.AuthorizationURLParams{
		ResponseType: "code",
		Scopes:       strings.Fields(authorizeScopes),
		State:        oauth.FormatState(authorizeDiscordUserId, nonce),
	})
	fmt.Println(u)
	return nil
}
