// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP helpers shared by all handlers.

# Logging

WithLogging wraps a handler with start/complete request logging via slog:

	mux.HandleFunc("POST /surveys", middleware.WithLogging(h.CreateSurvey))

# Responses

JSONResponse and ErrorResponse write JSON bodies with the right headers;
DownloadResponse writes a file attachment with a percent-encoded filename
in the Content-Disposition header (used for CSV exports).

# Requests

ParseJSONBody decodes a request body; GetClientIP extracts the client IP
honoring X-Forwarded-For and X-Real-IP; CORS handles cross-origin and
preflight requests.
*/
package middleware
