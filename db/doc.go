// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Connecting

Open accepts "sqlite" (modernc.org/sqlite, pure Go) or "postgres" (lib/pq):

	conn, err := db.Open("sqlite", "file:greenhand.db")
	conn, err := db.Open("postgres", "postgres://...")

SQLite connections are limited to one open connection and have foreign keys
enabled.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL is shared by both databases, and queries use $N placeholders which
both drivers accept.

# Tables

  - event: Volunteering events
  - event_participant: Sign-ups, one per user per event
  - waste_classification: Saved classifier results
  - user_stats: Points and activity counters per user

# Relationships

	event 1──* event_participant

user_id columns hold the identity from the bearer token; users live in the
hosted auth service, not in this database.
*/
package db
