// Package realtime maintains the websocket event stream an authenticated
// client holds open against the server for live updates.
package realtime
