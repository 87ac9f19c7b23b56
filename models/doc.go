// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateSurveyRequest: title, description, creator_name
  - AddQuestionRequest: title, kind, options, ordinal
  - ClaimTokenRequest: nickname
  - SubmitResponseRequest: answers (map[string]string)
  - RegisterAccountRequest: plan

# Response Types

Types for JSON responses:

  - CreateSurveyResponse: survey_id, admin_key
  - AddQuestionResponse: question_id, order
  - PublishSurveyResponse: share_slug, share_url
  - ClaimTokenResponse: respondent_token
  - SubmitResponseResponse: response_id, message
  - CloseSurveyResponse: closed_at, response_count
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Survey: survey metadata and lifecycle state
  - QuestionSpec: one question of a survey schema (kind, options, order)
  - ResponseRecord: one submitted response with its answers
  - SurveySnapshot: the read-only view consumed by the export engine

# Constants

Status values:

	StatusDraft  = "draft"
	StatusOpen   = "open"
	StatusClosed = "closed"

Question kinds (13): free_text, long_text, number, email, phone, date,
single_choice, multi_choice, dropdown, rating, prefecture, name,
age_bracket. The name/email/phone kinds collect personal data and are
subject to export redaction.

Export formats:

	FormatRaw          = "raw"
	FormatNormalized   = "normalized"
	FormatStandardized = "standardized"

Account plans:

	PlanFree     = "free"
	PlanStandard = "standard"
	PlanPremium  = "premium"
*/
package models
