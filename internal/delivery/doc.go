// Package delivery relays an authorization code to the chat bot's webhook, so that the
// bot can complete the account link without the user copying the code by hand.
//
// Delivery is strictly best-effort: a single POST is attempted with a bounded timeout,
// and any failure is reported as OutcomeFailed rather than retried. The caller is
// expected to fall back to showing the user the code for manual entry.
package delivery
