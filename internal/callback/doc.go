// Package callback implements the HTTP endpoint that Twitch redirects the user's
// browser to after they authorize our app, as described in
// https://dev.twitch.tv/docs/authentication/getting-tokens-oauth/#authorization-code-grant-flow
//
// The authorization code carried in that redirect is relayed to the Anasi bot via
// webhook if possible; otherwise the user is shown the code so they can hand it to the
// bot themselves with the /complete command.
package callback
