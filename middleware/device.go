// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/giftquiz/auth"
)

// DeviceCookie is the name of the signed device cookie
const DeviceCookie = "sgq_device"

const deviceCookieMaxAge = 365 * 24 * time.Hour

type deviceKey struct{}

// Toucher records device activity
type Toucher interface {
	Touch(ctx context.Context, device string) error
}

// Device identifies the browser by its signed cookie, issuing a new device
// when the cookie is missing or fails verification.
func Device(salt string, toucher Toucher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var deviceID string
			if c, err := r.Cookie(DeviceCookie); err == nil {
				deviceID, err = auth.VerifyDevice(c.Value, salt)
				if err != nil {
					slog.Warn("rejected device cookie", "error", err)
				}
			}

			if deviceID == "" {
				deviceID = auth.NewDeviceID()
				http.SetCookie(w, &http.Cookie{
					Name:     DeviceCookie,
					Value:    auth.SignDevice(deviceID, salt),
					Path:     "/",
					MaxAge:   int(deviceCookieMaxAge.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					Secure:   r.TLS != nil,
				})
				slog.Info("device registered (new)", "device_id", deviceID)
			}

			if toucher != nil {
				if err := toucher.Touch(r.Context(), deviceID); err != nil {
					slog.Error("failed to update device last_seen_at", "error", err)
				}
			}

			next.ServeHTTP(w, r.WithContext(WithDeviceID(r.Context(), deviceID)))
		})
	}
}

// WithDeviceID returns a context carrying the device ID
func WithDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, deviceKey{}, deviceID)
}

// DeviceID returns the device ID set by Device, or "" if none
func DeviceID(ctx context.Context) string {
	id, _ := ctx.Value(deviceKey{}).(string)
	return id
}
