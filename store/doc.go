// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the data-access layer for events, sign-ups, saved
classifications, and user stats.

	st := store.New(conn, broker)
	ev, err := st.CreateEvent(ctx, models.Event{Title: "Beach clean-up", ...})
	p, stats, err := st.JoinEvent(ctx, ev.ID, userID)

Every committed write is published to the Publisher (usually a
*realtime.Broker) as a realtime.Change on the matching table name.

# Gamification

Joining an event awards the event's points and increments events_joined;
leaving takes them back. Saving a classification awards
models.ClassificationPoints. Counters never go below zero.

# Errors

	ErrNotFound, ErrForbidden, ErrAlreadyJoined, ErrEventFull, ErrNotJoined,
	ErrInvalidClassification

Other errors are wrapped database errors.
*/
package store
