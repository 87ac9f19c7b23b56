// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/enquete/auth"
	"github.com/danielhkuo/enquete/cliparse"
	"github.com/danielhkuo/enquete/middleware"
	"github.com/danielhkuo/enquete/models"
)

type ResponseHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResponseHandler(db *sql.DB, cfg cliparse.Config) *ResponseHandler {
	return &ResponseHandler{db: db, cfg: cfg}
}

// GetSurvey handles GET /surveys/:slug
// Returns survey details and questions for respondents
func (h *ResponseHandler) GetSurvey(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	survey, err := querySurvey(h.db, "share_slug", shareSlug)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
		return
	}
	if err != nil {
		slog.Error("failed to query survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	questions, err := queryQuestions(h.db, survey.ID)
	if err != nil {
		slog.Error("failed to query questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SurveyWithQuestions{
		Survey:    survey,
		Questions: questions,
	})
}

// ClaimToken handles POST /surveys/:slug/claim-token
func (h *ResponseHandler) ClaimToken(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	// Parse request
	var req models.ClaimTokenRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Nickname == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "nickname is required")
		return
	}

	if len(req.Nickname) < 2 || len(req.Nickname) > 50 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "nickname must be 2-50 characters")
		return
	}

	// Find survey by share slug
	var surveyID string
	var status string
	err := h.db.QueryRow(`
		SELECT id, status FROM survey WHERE share_slug = $1
	`, shareSlug).Scan(&surveyID, &status)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
		return
	}
	if err != nil {
		slog.Error("failed to query survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Can only claim a token for open surveys
	if status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Survey is not collecting responses")
		return
	}

	// Generate respondent token
	respondentToken, err := auth.GenerateRespondentToken()
	if err != nil {
		slog.Error("failed to generate respondent token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to claim token")
		return
	}

	// Insert token claim (UNIQUE constraint will prevent duplicates)
	_, err = h.db.Exec(`
		INSERT INTO token_claim (survey_id, nickname, respondent_token, created_at)
		VALUES ($1, $2, $3, $4)
	`, surveyID, req.Nickname, respondentToken, time.Now())

	if err != nil {
		// Check if it's a uniqueness violation
		if strings.Contains(err.Error(), "UNIQUE constraint failed") ||
			strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			middleware.ErrorResponse(w, http.StatusConflict, "Nickname already taken")
			return
		}
		slog.Error("failed to insert token claim", "error", err, "survey_id", surveyID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to claim token")
		return
	}

	slog.Info("token claimed", "survey_id", surveyID, "nickname", req.Nickname)

	middleware.JSONResponse(w, http.StatusCreated, models.ClaimTokenResponse{
		RespondentToken: respondentToken,
	})
}

// SubmitResponse handles POST /surveys/:slug/responses
// Creates or replaces the respondent's response while the survey is open
func (h *ResponseHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	// Get respondent token from header
	respondentToken := r.Header.Get("X-Respondent-Token")
	if respondentToken == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Respondent-Token header required")
		return
	}
	if err := auth.ValidateTokenFormat(respondentToken); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Malformed respondent token")
		return
	}

	// Parse request
	var req models.SubmitResponseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Answers) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "answers cannot be empty")
		return
	}

	// Find survey by share slug
	var surveyID string
	var status string
	err := h.db.QueryRow(`
		SELECT id, status FROM survey WHERE share_slug = $1
	`, shareSlug).Scan(&surveyID, &status)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
		return
	}
	if err != nil {
		slog.Error("failed to query survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Can only respond to open surveys
	if status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Survey is not collecting responses")
		return
	}

	// Verify respondent token is valid for this survey
	var exists bool
	err = h.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM token_claim
			WHERE survey_id = $1 AND respondent_token = $2
		)
	`, surveyID, respondentToken).Scan(&exists)

	if err != nil {
		slog.Error("failed to verify respondent token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !exists {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid respondent token for this survey")
		return
	}

	// Get all valid question IDs for this survey
	rows, err := h.db.Query(`
		SELECT id FROM question WHERE survey_id = $1
	`, surveyID)
	if err != nil {
		slog.Error("failed to query questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	validQuestions := make(map[string]bool)
	for rows.Next() {
		var questionID string
		if err := rows.Scan(&questionID); err != nil {
			slog.Error("failed to scan question", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		validQuestions[questionID] = true
	}

	// Verify all submitted answers are for valid questions
	for questionID := range req.Answers {
		if !validQuestions[questionID] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid question_id: "+questionID)
			return
		}
	}

	// Get IP hash for tracking
	clientIP := middleware.GetClientIP(r)
	ipHash := auth.HashIP(clientIP, h.cfg.AdminKeySalt) // Reuse admin salt for IP hashing
	userAgent := r.UserAgent()

	// Begin transaction for UPSERT
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	// Check if response already exists
	var existingResponseID string
	err = tx.QueryRow(`
		SELECT id FROM response WHERE survey_id = $1 AND respondent_token = $2
	`, surveyID, respondentToken).Scan(&existingResponseID)

	isUpdate := err != sql.ErrNoRows
	var responseID string

	if isUpdate {
		// Update existing response
		responseID = existingResponseID
		_, err = tx.Exec(`
			UPDATE response
			SET submitted_at = $1, ip_hash = $2, user_agent = $3
			WHERE id = $4
		`, time.Now(), ipHash, userAgent, responseID)

		if err != nil {
			slog.Error("failed to update response", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update response")
			return
		}

		// Delete old answers
		_, err = tx.Exec(`DELETE FROM answer WHERE response_id = $1`, responseID)
		if err != nil {
			slog.Error("failed to delete old answers", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update response")
			return
		}
	} else {
		// Create new response
		responseID = uuid.NewString()
		_, err = tx.Exec(`
			INSERT INTO response (id, survey_id, respondent_token, submitted_at, ip_hash, user_agent)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, responseID, surveyID, respondentToken, time.Now(), ipHash, userAgent)

		if err != nil {
			slog.Error("failed to insert response", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit response")
			return
		}
	}

	// Insert answers
	for questionID, value := range req.Answers {
		_, err = tx.Exec(`
			INSERT INTO answer (response_id, question_id, value)
			VALUES ($1, $2, $3)
		`, responseID, questionID, value)

		if err != nil {
			slog.Error("failed to insert answer", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save answers")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit response")
		return
	}

	message := "Response submitted successfully"
	if isUpdate {
		message = "Response updated successfully"
	}

	slog.Info("response submitted", "survey_id", surveyID, "response_id", responseID, "is_update", isUpdate)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitResponseResponse{
		ResponseID: responseID,
		Message:    message,
	})
}

// GetMyResponse handles GET /surveys/:slug/my-response
// Returns the respondent's current answers, if any
func (h *ResponseHandler) GetMyResponse(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	respondentToken := r.Header.Get("X-Respondent-Token")
	if respondentToken == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Respondent-Token header required")
		return
	}

	var surveyID string
	err := h.db.QueryRow(`
		SELECT id FROM survey WHERE share_slug = $1
	`, shareSlug).Scan(&surveyID)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
		return
	}
	if err != nil {
		slog.Error("failed to query survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var response models.ResponseRecord
	err = h.db.QueryRow(`
		SELECT id, survey_id, submitted_at
		FROM response
		WHERE survey_id = $1 AND respondent_token = $2
	`, surveyID, respondentToken).Scan(&response.ID, &response.SurveyID, &response.SubmittedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "No response submitted yet")
		return
	}
	if err != nil {
		slog.Error("failed to query response", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT question_id, value FROM answer WHERE response_id = $1
	`, response.ID)
	if err != nil {
		slog.Error("failed to query answers", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	response.Answers = make(map[string]string)
	for rows.Next() {
		var questionID, value string
		if err := rows.Scan(&questionID, &value); err != nil {
			slog.Error("failed to scan answer", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		response.Answers[questionID] = value
	}

	middleware.JSONResponse(w, http.StatusOK, response)
}

// GetResponseCount handles GET /surveys/:slug/response-count
// Returns the number of responses submitted (visible even while open)
func (h *ResponseHandler) GetResponseCount(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	// Get survey ID
	var surveyID string
	err := h.db.QueryRow(`
		SELECT id FROM survey WHERE share_slug = $1
	`, shareSlug).Scan(&surveyID)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
		return
	}
	if err != nil {
		slog.Error("failed to query survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Count responses
	var count int
	err = h.db.QueryRow(`
		SELECT COUNT(*) FROM response WHERE survey_id = $1
	`, surveyID).Scan(&count)

	if err != nil {
		slog.Error("failed to count responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]int{
		"response_count": count,
	})
}

// GetPreview handles GET /surveys/:slug/preview
// Returns compact survey data for link-preview display
func (h *ResponseHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	var surveyID, title, status string
	err := h.db.QueryRow(`
		SELECT id, title, status FROM survey WHERE share_slug = $1
	`, shareSlug).Scan(&surveyID, &title, &status)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
		return
	}
	if err != nil {
		slog.Error("failed to query survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var questionCount int
	err = h.db.QueryRow(`
		SELECT COUNT(*) FROM question WHERE survey_id = $1
	`, surveyID).Scan(&questionCount)
	if err != nil {
		slog.Error("failed to count questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var responseCount int
	err = h.db.QueryRow(`
		SELECT COUNT(*) FROM response WHERE survey_id = $1
	`, surveyID).Scan(&responseCount)
	if err != nil {
		slog.Error("failed to count responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SurveyPreviewResponse{
		Title:         title,
		Status:        status,
		QuestionCount: questionCount,
		ResponseCount: responseCount,
	})
}
