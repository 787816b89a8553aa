// Package cache keeps list data consistent across screens.
//
// # Overview
//
// Two caches share one discipline. Collection holds the user's lists (the
// overview screen); Detail holds one opened list and its products. Both are
// query-scoped state machines:
//
//	Empty → Loading → Ready
//	                → Error (previous data retained)
//	Ready → Loading   on refetch
//	Error → Loading   on retry
//
// Fetching is gated on the session token: no token, no request, no state
// change. Reads get a small bounded number of automatic retries; mutations
// are surfaced once and never retried automatically.
//
// # Server Authority
//
// A list's total value and product count are computed by the server. The
// caches never do that arithmetic locally: every mutation is followed by a
// reconciling refetch of its scope, wrapped up in the Mutate /
// mutate-then-reconcile primitive. A failed delete or update therefore
// converges back to server truth instead of leaving the view diverged.
//
// # Supersession
//
// Refetches may overlap. Each fetch is issued under a per-scope sequence
// number and applied only while that sequence is still the latest issued,
// so the final state always equals the result of the later-started refetch
// even when the earlier response arrives last.
//
// # Cross-Screen Refresh
//
// Product mutations on the detail screen change the totals the overview
// shows. Detail raises a RefreshSignal after each mutation; a background
// refresher consumes the flag at a fixed cadence and refetches the
// collection once.
//
// # Edit Buffers
//
// Entering edit mode on a product snapshots its fields into a string
// EditBuffer. Cancel discards the buffer; save parses it (lenient numeric
// sanitizing, zero defaults for empty input), sends the update, and
// reconciles. Buffers never outlive the screen that created them.
package cache
