// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db creates the database schema.

CreateSchema is idempotent (IF NOT EXISTS) and runs at startup:

	if err := db.CreateSchema(conn); err != nil { ... }

Tables: account, survey, question, token_claim, response, answer,
account_survey, usage_log. The DDL sticks to the portable subset accepted
by both postgres and sqlite so the same schema serves dev and production.
Question option lists persist as JSON arrays in a TEXT column and are
parsed into typed slices at load time.
*/
package db
