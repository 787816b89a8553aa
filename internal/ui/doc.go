// Package ui provides the Bubble Tea terminal interface for superlist.
//
// The interface has an auth flow (huh forms for login/registration, run
// before the main program starts) and two screens: the list overview and
// the list detail. Screen data comes exclusively from the cache snapshots;
// key presses that mutate data dispatch tea.Cmds that call into the caches
// and report back as messages, so the render path never blocks on the
// network. A periodic tick picks up collection refreshes performed by the
// background refresher.
package ui
