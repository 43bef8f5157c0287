// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap a single handler:

	r.Get("/health", middleware.WithLogging(handler))

or a whole router:

	r.Use(middleware.Logging)

Logs request start (method, path, remote) at debug level and completion
(status, duration_ms, request_id) at info level.

# Device Identification

Device reads the signed sgq_device cookie and stores the device ID in the
request context. Missing or tampered cookies get a fresh ID and a new cookie:

	r.Use(middleware.Device(cfg.DeviceSalt, store))

	deviceID := middleware.DeviceID(r.Context())

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.RecordAnswerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
*/
package middleware
