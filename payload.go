package oauth

import "strings"

// PayloadSource identifies this service as the origin of a webhook notification
const PayloadSource = "anasi-oauth-server"

// UnknownDiscordUserId is used in place of a Discord user ID when the 'state' value
// that Twitch round-tripped back to us doesn't carry one
const UnknownDiscordUserId = "unknown"

// WebhookPayload is the JSON body we POST to the bot's webhook once a user has
// completed the Twitch authorization step, so that the bot can exchange the code for
// tokens without the user having to paste it into Discord themselves
type WebhookPayload struct {
	DiscordUserId string `json:"discord_user_id"`
	AuthCode      string `json:"auth_code"`
	State         string `json:"state"`
	Source        string `json:"source"`
}

// NewWebhookPayload builds the payload for a single authorization code
func NewWebhookPayload(code, state string) WebhookPayload {
	return WebhookPayload{
		DiscordUserId: ParseDiscordUserId(state),
		AuthCode:      code,
		State:         state,
		Source:        PayloadSource,
	}
}

// ParseDiscordUserId extracts the Discord user ID from a 'state' value of the form
// '<id>_<rest>', as generated by the bot's /connect command. Any state that doesn't
// follow that form yields UnknownDiscordUserId.
func ParseDiscordUserId(state string) string {
	id, _, found := strings.Cut(state, "_")
	if !found || id == "" {
		return UnknownDiscordUserId
	}
	return id
}

// FormatState produces a 'state' value that ParseDiscordUserId can decode
func FormatState(discordUserId, nonce string) string {
	return discordUserId + "_" + nonce
}
