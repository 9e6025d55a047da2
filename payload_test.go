package oauth

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseDiscordUserId(t *testing.T) {
	tests := []struct {
		name  string
		state string
		want  string
	}{
		{
			"id is taken from before the first underscore",
			"12345_extra",
			"12345",
		},
		{
			"only the first underscore is significant",
			"12345_abc_def",
			"12345",
		},
		{
			"state with no separator yields unknown",
			"noSeparator",
			"unknown",
		},
		{
			"empty state yields unknown",
			"",
			"unknown",
		},
		{
			"leading separator yields unknown",
			"_abc",
			"unknown",
		},
		{
			"trailing separator still yields id",
			"12345_",
			"12345",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDiscordUserId(tt.state)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_FormatState(t *testing.T) {
	state := FormatState("98765", "a1b2c3")
	assert.Equal(t, "98765_a1b2c3", state)
	assert.Equal(t, "98765", ParseDiscordUserId(state))
}

func Test_NewWebhookPayload(t *testing.T) {
	payload := NewWebhookPayload("my-code", "12345_extra")
	b, err := json.Marshal(payload)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"discord_user_id":"12345","auth_code":"my-code","state":"12345_extra","source":"anasi-oauth-server"}`, string(b))
}
