// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/enquete/auth"
	"github.com/danielhkuo/enquete/cliparse"
	"github.com/danielhkuo/enquete/middleware"
	"github.com/danielhkuo/enquete/models"
)

type AccountHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAccountHandler(db *sql.DB, cfg cliparse.Config) *AccountHandler {
	return &AccountHandler{db: db, cfg: cfg}
}

// Register handles POST /accounts/register
// Registers an account and returns its account_id (or finds existing).
// The plan tier gates which export formats the account may use.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	clientUUID := r.Header.Get("X-Client-UUID")
	if clientUUID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "X-Client-UUID header required")
		return
	}

	var req models.RegisterAccountRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Plan == "" {
		req.Plan = models.PlanFree
	}
	if !models.IsValidPlan(req.Plan) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "plan must be one of: free, standard, premium")
		return
	}

	// Check if account already exists
	var existingID, existingPlan string
	err := h.db.QueryRow(`
		SELECT id, plan FROM account WHERE client_uuid = $1
	`, clientUUID).Scan(&existingID, &existingPlan)

	if err == nil {
		// Account exists, update last_seen_at
		_, err = h.db.Exec(`
			UPDATE account SET last_seen_at = $1 WHERE id = $2
		`, time.Now(), existingID)
		if err != nil {
			slog.Error("failed to update account last_seen_at", "error", err)
		}

		slog.Info("account registered (existing)", "account_id", existingID)
		middleware.JSONResponse(w, http.StatusOK, models.RegisterAccountResponse{
			AccountID: existingID,
			Plan:      existingPlan,
			IsNew:     false,
		})
		return
	}

	if err != sql.ErrNoRows {
		slog.Error("failed to query account", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Create new account
	accountID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate account ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register account")
		return
	}

	now := time.Now()
	_, err = h.db.Exec(`
		INSERT INTO account (id, client_uuid, plan, created_at, last_seen_at)
		VALUES ($1, $2, $3, $4, $5)
	`, accountID, clientUUID, req.Plan, now, now)

	if err != nil {
		slog.Error("failed to insert account", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register account")
		return
	}

	slog.Info("account registered (new)", "account_id", accountID, "plan", req.Plan)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterAccountResponse{
		AccountID: accountID,
		Plan:      req.Plan,
		IsNew:     true,
	})
}

// GetMe handles GET /accounts/me
// Returns current account info
func (h *AccountHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	clientUUID := r.Header.Get("X-Client-UUID")
	if clientUUID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "X-Client-UUID header required")
		return
	}

	var account models.AccountInfo
	err := h.db.QueryRow(`
		SELECT id, plan, created_at, last_seen_at
		FROM account
		WHERE client_uuid = $1
	`, clientUUID).Scan(&account.ID, &account.Plan, &account.CreatedAt, &account.LastSeenAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Account not registered")
		return
	}
	if err != nil {
		slog.Error("failed to query account", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Update last_seen_at
	_, err = h.db.Exec(`
		UPDATE account SET last_seen_at = $1 WHERE id = $2
	`, time.Now(), account.ID)
	if err != nil {
		slog.Error("failed to update account last_seen_at", "error", err)
	}

	middleware.JSONResponse(w, http.StatusOK, account)
}

// GetMySurveys handles GET /accounts/my-surveys
// Returns surveys linked to this account
func (h *AccountHandler) GetMySurveys(w http.ResponseWriter, r *http.Request) {
	clientUUID := r.Header.Get("X-Client-UUID")
	if clientUUID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "X-Client-UUID header required")
		return
	}

	// Get account ID
	var accountID string
	err := h.db.QueryRow(`
		SELECT id FROM account WHERE client_uuid = $1
	`, clientUUID).Scan(&accountID)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Account not registered")
		return
	}
	if err != nil {
		slog.Error("failed to query account", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Update last_seen_at
	_, err = h.db.Exec(`
		UPDATE account SET last_seen_at = $1 WHERE id = $2
	`, time.Now(), accountID)
	if err != nil {
		slog.Error("failed to update account last_seen_at", "error", err)
	}

	// Get surveys linked to this account with metadata
	rows, err := h.db.Query(`
		SELECT
			s.id,
			s.title,
			s.status,
			s.share_slug,
			asv.role,
			asv.linked_at,
			(SELECT COUNT(*) FROM response r WHERE r.survey_id = s.id) as response_count
		FROM account_survey asv
		JOIN survey s ON asv.survey_id = s.id
		WHERE asv.account_id = $1
		ORDER BY asv.linked_at DESC
	`, accountID)

	if err != nil {
		slog.Error("failed to query account surveys", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	surveys := []models.AccountSurveySummary{}
	for rows.Next() {
		var summary models.AccountSurveySummary

		if err := rows.Scan(
			&summary.SurveyID,
			&summary.Title,
			&summary.Status,
			&summary.ShareSlug,
			&summary.Role,
			&summary.LinkedAt,
			&summary.ResponseCount,
		); err != nil {
			slog.Error("failed to scan survey", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		surveys = append(surveys, summary)
	}

	middleware.JSONResponse(w, http.StatusOK, models.GetMySurveysResponse{
		Surveys: surveys,
	})
}

// GetOrCreateAccount looks up or creates an account record from the
// X-Client-UUID header. Returns empty string if no header.
func GetOrCreateAccount(db *sql.DB, r *http.Request) (string, error) {
	clientUUID := r.Header.Get("X-Client-UUID")
	if clientUUID == "" {
		return "", nil
	}

	// Check if account exists
	var accountID string
	err := db.QueryRow(`
		SELECT id FROM account WHERE client_uuid = $1
	`, clientUUID).Scan(&accountID)

	if err == nil {
		// Update last_seen_at
		_, _ = db.Exec(`UPDATE account SET last_seen_at = $1 WHERE id = $2`, time.Now(), accountID)
		return accountID, nil
	}

	if err != sql.ErrNoRows {
		return "", err
	}

	// Create new account on the free tier
	// (plan upgrades go through /accounts/register)
	accountID, err = auth.GenerateID(16)
	if err != nil {
		return "", err
	}

	now := time.Now()
	_, err = db.Exec(`
		INSERT INTO account (id, client_uuid, plan, created_at, last_seen_at)
		VALUES ($1, $2, $3, $4, $5)
	`, accountID, clientUUID, models.PlanFree, now, now)

	if err != nil {
		return "", err
	}

	return accountID, nil
}

// LinkAccountToSurvey creates an association between an account and a survey
func LinkAccountToSurvey(db *sql.DB, accountID, surveyID, role string) error {
	if accountID == "" {
		return nil
	}

	// Use INSERT ... ON CONFLICT to handle re-linking
	_, err := db.Exec(`
		INSERT INTO account_survey (account_id, survey_id, role, linked_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_id, survey_id) DO UPDATE SET
			role = CASE WHEN account_survey.role = 'owner' THEN 'owner' ELSE EXCLUDED.role END
	`, accountID, surveyID, role, time.Now())

	return err
}
