// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Enquete API server.

Enquete is a survey-collection service: survey authoring, response
collection via share links, and CSV export of collected responses in three
analytical encodings (raw, min-max normalized, z-score standardized).

# Starting the Server

The server requires environment variables or CLI flags for configuration
(a .env file is loaded if present):

	DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 3418 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string or sqlite file path
  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC
  - SURVEY_SLUG_SALT (--slug-salt): Secret for share slug generation

Optional settings:

  - PORT (-p): Server port (default: 3418)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - BASE_URL (--base-url): Public base URL for share links

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (surveys, responses, export, accounts)
  - export: the response export engine (pure, no I/O)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON and download helpers
  - models: Request/response and domain types
  - auth: Token generation and validation
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
