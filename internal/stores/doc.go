// Package stores keeps the dashboard's client state on top of the kv and
// like repositories.
//
// Each store hydrates once from its namespace when constructed and persists
// after every change. A missing or corrupt snapshot silently resets to the
// default so a bad write never locks the user out of their own dashboard.
// All stores are safe for concurrent use by the server handlers.
package stores
