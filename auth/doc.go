// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth identifies devices with signed cookie tokens.

# Device IDs

Each browser gets a random UUID the first time it visits:

	id := auth.NewDeviceID()

# Signed Tokens

The cookie carries the ID plus an HMAC-SHA256 signature:

	token := auth.SignDevice(id, salt)          // "<uuid>.<signature>"
	id, err := auth.VerifyDevice(token, salt)

The signature is URL-safe base64 without padding. Since it's deterministic,
the same ID and salt always produce the same token, so nothing has to be
stored to validate it. A tampered or malformed token yields
ErrInvalidDevice, and the caller issues a fresh device.
*/
package auth
