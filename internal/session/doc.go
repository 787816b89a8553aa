// Package session holds the process-wide authentication state.
//
// # Overview
//
// A Session pairs the in-memory bearer token with its durable copy in the
// credential store and keeps the two consistent through exactly three
// mutators:
//
//   - Restore: durable → memory (silent; absence of a token is logged-out,
//     not an error)
//   - Login: durable first, then memory (a failed durable write leaves the
//     session logged out)
//   - Logout: durable removal first, then memory clear
//
// The ordering rules exist for crash safety. The only state a crash can
// leave behind is a durable token with no in-memory counterpart, which the
// next Restore repairs. The reverse — a session that believes it is logged
// in but has nothing on disk — cannot occur.
//
// # Concurrency
//
// Multiple screens may call Restore redundantly on mount. Calls serialize
// on an internal mutex and converge on the last durable read; readers use
// Token and Loading, which take the read lock only.
package session
