// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Environment variables are read first (main loads a .env file beforehand
when one exists), then flags override them.

# Environment Variables

	PORT                  → -p           (default 3318)
	DATABASE_TYPE         → -t           (sqlite or postgres, default sqlite)
	DATABASE_URL          → -d           (default file:greenhand.db for sqlite)
	JWT_SECRET            → --jwt-secret (required)
	LOG_FORMAT                           (text or json, default picks by terminal)
	AI_API_KEY            → --ai-key
	AI_BASE_URL, AI_MODEL, AI_TEMPERATURE, AI_TIMEOUT
	AI_RATE_LIMIT_STATUS                 (default 429)
	AI_CREDITS_STATUS                    (default 402)

An empty AI_API_KEY is allowed; classification requests then fail with
"AI service is not configured".

# Validation

ParseFlags returns an error if:

  - JWT_SECRET is missing
  - DATABASE_TYPE is not sqlite or postgres
  - postgres is selected without DATABASE_URL
  - the port is out of range
*/
package cliparse
