// Package app is the composition root for superlist.
//
// # Overview
//
// Run wires configuration, the credential store, the session, the API
// client, both caches and the UI into the running application:
//
//  1. Load config from ~/.config/superlist/config.toml
//  2. Open the BadgerDB credential store and restore the session from it
//  3. Build the API client with the session as its live token source
//  4. Create the collection and detail caches sharing one refresh signal
//  5. Start the background refresher that services the signal
//  6. Loop: auth flow while logged out, main TUI while logged in
//
// # Session Loop
//
// The TUI exits in one of two ways. A plain quit ends Run. A logout clears
// the session and loops back to the auth flow, so log-out/log-in cycles
// happen inside a single process with the same caches; the caches are gated
// on the session token, so they stop fetching the moment the token is gone.
//
// # Error Handling
//
// Fatal errors (unreadable config, credential store that cannot open,
// malformed server URL) abort startup. Everything that happens after the
// UI starts — fetch failures, rejected mutations — is handled at the cache
// boundary and shown on screen, never returned from Run.
package app
