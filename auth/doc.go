// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth verifies session tokens and generates record IDs.

# Session Tokens

Users sign in through the hosted auth service, which issues HS256 JWTs. The
subject claim is the user ID:

	token, err := auth.BearerToken(r.Header.Get("Authorization"))
	principal, err := auth.ParseToken(token, cfg.JWTSecret)

Only HS256 is accepted. Expired tokens and tokens without a subject are
rejected with ErrInvalidToken.

GenerateToken signs a token with the same claims, for tests and local use:

	token, err := auth.GenerateToken("user-123", secret, time.Hour)

# Request Context

	ctx = auth.WithPrincipal(ctx, principal)
	p, ok := auth.FromContext(ctx)

# ID Generation

Random UUIDs for database records:

	id := auth.NewID()
*/
package auth
