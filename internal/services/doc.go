// Package services implements the outbound HTTP clients.
//
// # Relay Client
//
// [RelayClient] forwards user actions to the automation webhooks: playlist
// additions, checked/dismissed marks, album ratings, the quick-add forms, the
// download trigger, and the library search. Calls share a token-bucket rate
// limiter so a burst of dismissals cannot hammer the automation host.
//
// # Preview Resolver
//
// [PreviewResolver] resolves playable stream URLs and album track lists from
// the preview webhooks, and runs text search against an ordered list of
// mirror hosts, stopping at the first host that answers. Third-party catalog
// responses have drifted over time, so every shape is normalized
// field-by-field with candidate keys rather than decoded strictly.
//
// # Error Handling
//
// Typed errors from the shared package:
//   - [shared.ErrWebhookFailed] : a relay target answered non-2xx
//   - [shared.ErrStreamingDisabled] : previews are switched off in config
//   - [shared.ErrNoStreamURL] : a track resolved without a playable URL
//   - [shared.ErrAllHostsFailed] : every mirror host errored for a search
package services
