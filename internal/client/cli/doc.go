// Package cli provides the interactive field agent command-line client.
//
// It wires configuration, the local offline queue, the backend API client,
// and an interactive REPL that supports online/offline operation. Typical
// flow: prompt for credentials, start a background connectivity watcher that
// triggers sync on reconnect, and execute user commands.
//
// Key features:
//   - Login with phone number and PIN
//   - Capture field reports (queued locally when offline)
//   - List reports / show the pending-sync count
//   - Manual sync with the remote store
//   - Time-boxed root escalation and privileged actions
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
