// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL sticks to the portable subset accepted by both postgres and
// sqlite; handlers always pass timestamps explicitly.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Accounts (survey creators, with plan tier for export entitlements)
CREATE TABLE IF NOT EXISTS account (
    id TEXT PRIMARY KEY,
    client_uuid TEXT NOT NULL UNIQUE,
    plan TEXT NOT NULL DEFAULT 'free' CHECK (plan IN ('free', 'standard', 'premium')),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    last_seen_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_account_client_uuid ON account(client_uuid);

-- Surveys
CREATE TABLE IF NOT EXISTS survey (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    creator_name TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'open', 'closed')),
    share_slug TEXT UNIQUE,
    closed_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_survey_share_slug ON survey(share_slug);
CREATE INDEX IF NOT EXISTS idx_survey_status ON survey(status);

-- Questions. options is a JSON array of labels (or NULL); ord fixes the
-- display and export column order.
CREATE TABLE IF NOT EXISTS question (
    id TEXT PRIMARY KEY,
    survey_id TEXT NOT NULL REFERENCES survey(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    kind TEXT NOT NULL,
    options TEXT,
    ordinal BOOLEAN NOT NULL DEFAULT FALSE,
    ord INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_question_survey_id ON question(survey_id);

-- Respondent token claims
CREATE TABLE IF NOT EXISTS token_claim (
    survey_id TEXT NOT NULL REFERENCES survey(id) ON DELETE CASCADE,
    nickname TEXT NOT NULL,
    respondent_token TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (survey_id, respondent_token),
    UNIQUE (survey_id, nickname)
);

CREATE INDEX IF NOT EXISTS idx_token_claim_survey_id ON token_claim(survey_id);

-- Responses (one per respondent per survey, updatable while open)
CREATE TABLE IF NOT EXISTS response (
    id TEXT PRIMARY KEY,
    survey_id TEXT NOT NULL REFERENCES survey(id) ON DELETE CASCADE,
    respondent_token TEXT NOT NULL,
    submitted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    ip_hash TEXT,
    user_agent TEXT,
    UNIQUE (survey_id, respondent_token)
);

CREATE INDEX IF NOT EXISTS idx_response_survey_id ON response(survey_id);
CREATE INDEX IF NOT EXISTS idx_response_token ON response(survey_id, respondent_token);

-- Answers. value holds the persisted answer text; multi-choice selections
-- are comma-joined into one value.
CREATE TABLE IF NOT EXISTS answer (
    response_id TEXT NOT NULL REFERENCES response(id) ON DELETE CASCADE,
    question_id TEXT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    value TEXT NOT NULL,
    PRIMARY KEY (response_id, question_id)
);

CREATE INDEX IF NOT EXISTS idx_answer_question_id ON answer(question_id);

-- Account-survey links
CREATE TABLE IF NOT EXISTS account_survey (
    account_id TEXT NOT NULL REFERENCES account(id) ON DELETE CASCADE,
    survey_id TEXT NOT NULL REFERENCES survey(id) ON DELETE CASCADE,
    role TEXT NOT NULL DEFAULT 'owner',
    linked_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (account_id, survey_id)
);

CREATE INDEX IF NOT EXISTS idx_account_survey_account ON account_survey(account_id);

-- Export usage log (billing reads this; best-effort writes)
CREATE TABLE IF NOT EXISTS usage_log (
    id TEXT PRIMARY KEY,
    account_id TEXT,
    survey_id TEXT NOT NULL,
    size_bytes INTEGER NOT NULL,
    description TEXT NOT NULL,
    recorded_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_usage_log_survey ON usage_log(survey_id);
`
