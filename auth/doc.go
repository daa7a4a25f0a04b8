// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth checks the shared secret on scheduled-trigger calls.

# Scheduled Triggers

The external scheduler (a cron service) sends the shared secret as a bearer
token:

	Authorization: Bearer <CRON_SECRET>

ValidateBearer compares it in constant time:

	if err := auth.ValidateBearer(r.Header.Get("Authorization"), secret); err != nil {
		// 401
	}

An empty configured secret rejects every call.

# Sessions

Voters are anonymous. The client generates an opaque session id and sends
it on every voting request. The server never issues or validates session
ids beyond rejecting blank ones. Ids are kept exactly as sent, so " s1" and
"s1" are different sessions.

# Errors

	ErrMissingToken  no "Bearer <token>" header
	ErrInvalidToken  token does not match the secret
	ErrNoSecret      server has no secret configured
*/
package auth
