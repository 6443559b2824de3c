// Package mmclient is a small Mattermost REST API (v4) client covering the
// integration objects the migration tool moves: incoming webhooks, outgoing
// webhooks, and bot accounts.
//
// Every call carries bearer-token authorization and a JSON content type.
// Idempotent requests are retried up to three times after the initial
// attempt, with exponential backoff, on transient statuses (429, 500, 502,
// 503, 504) and network errors; mutating requests are never retried
// automatically. Failures
// surface as *APIError values distinguishable by status code.
//
//	client := mmclient.New("https://chat.example.com", token)
//	hooks, err := client.ListIncomingWebhooks()
package mmclient
