// Package server provides HTTP routing, middleware, and the web surface of the curation dashboard.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering,
// so route patterns may carry {id} wildcards resolved through [http.Request.PathValue].
//
// # Session Gate
//
// Authentication is a single passcode. A successful login mints an opaque session
// token (stored server side in [SessionStore]) and sets it as an HTTP-only cookie.
// The [Gate] middleware requires that cookie on every page route; API routes and
// static assets pass through so fetch calls fail with JSON errors instead of
// redirects.
//
// # API Surface
//
// [App] owns every API handler: the track and album inboxes (filtered, paginated
// views over the cached sheet snapshots), per-entry actions that relay to the
// automation webhooks before touching local state, the like history, preview
// resolution, and the library search and list submission relays.
//
// Webhook-backed actions are strict about ordering: the relay call happens first,
// and local stores only change after it succeeds. A failed relay leaves local
// state untouched and surfaces as a JSON error payload.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
