// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidDevice = errors.New("invalid device token")

// NewDeviceID creates a random device identifier
func NewDeviceID() string {
	return uuid.NewString()
}

// signature creates an HMAC-based signature for a device ID
// This is deterministic and verifiable
func signature(deviceID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(deviceID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cookie-safe values
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// SignDevice returns the cookie value "<deviceID>.<signature>"
func SignDevice(deviceID, salt string) string {
	return deviceID + "." + signature(deviceID, salt)
}

// VerifyDevice checks a signed cookie value and returns the device ID
func VerifyDevice(token, salt string) (string, error) {
	deviceID, sig, ok := strings.Cut(token, ".")
	if !ok || deviceID == "" || sig == "" {
		return "", ErrInvalidDevice
	}
	if _, err := uuid.Parse(deviceID); err != nil {
		return "", ErrInvalidDevice
	}

	expected := signature(deviceID, salt)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", ErrInvalidDevice
	}
	return deviceID, nil
}
