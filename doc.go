// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Greenhand API server.

Greenhand backs a volunteering app for environmental clean-ups: volunteers
photograph litter, an AI model classifies it, and sign-ups and saved
classifications earn points on a leaderboard.

# Starting the Server

	JWT_SECRET=... AI_API_KEY=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." --jwt-secret ...

A .env file in the working directory is loaded first when present.

# Configuration

Required settings:

  - JWT_SECRET (--jwt-secret): HS256 secret shared with the auth service

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): connection string (default: file:greenhand.db)
  - AI_API_KEY (--ai-key): AI gateway key; classification fails without it
  - LOG_FORMAT: text or json

# Architecture

  - classify: AI gateway client, response parsing, and validation
  - store: events, sign-ups, classifications, and stats over database/sql
  - realtime: in-process change feed
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, recovery, bearer auth, JSON helpers
  - models: Request/response types
  - auth: Bearer token parsing and IDs
  - db: Connection and schema creation
  - cliparse: Configuration parsing

On SIGINT or SIGTERM the server stops accepting connections, closes
realtime streams, and waits up to 10 seconds for in-flight requests.
*/
package main
