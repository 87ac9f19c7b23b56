// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Enquete API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - SurveyHandler: Survey lifecycle (create, questions, publish, close)
  - ResponseHandler: Token claims and response submission
  - ExportHandler: CSV export of collected responses
  - AccountHandler: Account registration and survey history

Handlers are created via constructor functions that accept *sql.DB and Config:

	surveyHandler := handlers.NewSurveyHandler(db, cfg)

# Survey Lifecycle

Surveys progress through three states: draft → open → closed

	POST /surveys                → CreateSurvey (returns admin_key)
	POST /surveys/{id}/questions → AddQuestion (draft only)
	POST /surveys/{id}/publish   → PublishSurvey (generates share_slug)
	POST /surveys/{id}/close     → CloseSurvey (stops collection)

Admin operations require the X-Admin-Key header.

# Response Flow

Respondents interact via the share slug:

	POST /surveys/{slug}/claim-token → ClaimToken (returns respondent_token)
	POST /surveys/{slug}/responses   → SubmitResponse (create or update)

Respondent operations require the X-Respondent-Token header.

# Export

Exports run through the export package:

	GET /surveys/{id}/export?format=normalized&include_personal=false

The handler validates the admin key, gates the format on the caller's plan
tier (free: raw, standard: +normalized, premium: +standardized), loads a
survey snapshot, hands it to export.Export, and records the artifact size
in the usage log. The engine itself never touches the database.

# Accounts

Optional account tracking for creators, carrying the plan tier:

	POST /accounts/register → Register
	GET /accounts/me         → GetMe
	GET /accounts/my-surveys → GetMySurveys

Account operations require the X-Client-UUID header.
*/
package handlers
