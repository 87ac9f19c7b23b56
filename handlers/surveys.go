// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/enquete/auth"
	"github.com/danielhkuo/enquete/cliparse"
	"github.com/danielhkuo/enquete/middleware"
	"github.com/danielhkuo/enquete/models"
)

type SurveyHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewSurveyHandler(db *sql.DB, cfg cliparse.Config) *SurveyHandler {
	return &SurveyHandler{db: db, cfg: cfg}
}

// CreateSurvey handles POST /surveys
func (h *SurveyHandler) CreateSurvey(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSurveyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.CreatorName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "creator_name is required")
		return
	}

	// Generate survey ID
	surveyID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate survey ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create survey")
		return
	}

	// Generate admin key
	adminKey := auth.GenerateAdminKey(surveyID, h.cfg.AdminKeySalt)

	// Insert survey into database
	_, err = h.db.Exec(`
		INSERT INTO survey (id, title, description, creator_name, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, surveyID, req.Title, req.Description, req.CreatorName, models.StatusDraft, time.Now())

	if err != nil {
		slog.Error("failed to insert survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create survey")
		return
	}

	// Link creating account as owner (if X-Client-UUID header present)
	accountID, err := GetOrCreateAccount(h.db, r)
	if err != nil {
		slog.Warn("failed to get/create account", "error", err)
		// Non-fatal: survey was created, just no account linking
	} else if accountID != "" {
		if err := LinkAccountToSurvey(h.db, accountID, surveyID, models.RoleOwner); err != nil {
			slog.Warn("failed to link account to survey", "error", err)
		}
	}

	slog.Info("survey created", "survey_id", surveyID, "creator", req.CreatorName)

	// Return response
	middleware.JSONResponse(w, http.StatusCreated, models.CreateSurveyResponse{
		SurveyID: surveyID,
		AdminKey: adminKey,
	})
}

// AddQuestion handles POST /surveys/:id/questions
func (h *SurveyHandler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	surveyID := r.PathValue("id")
	if surveyID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "survey_id is required")
		return
	}

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(surveyID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	// Parse request
	var req models.AddQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if !models.IsValidKind(req.Kind) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "unknown question kind: "+req.Kind)
		return
	}
	if requiresOptions(req.Kind) && len(req.Options) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "options are required for "+req.Kind+" questions")
		return
	}

	// Check survey exists and is in draft status
	var status string
	err := h.db.QueryRow("SELECT status FROM survey WHERE id = $1", surveyID).Scan(&status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
		return
	}
	if err != nil {
		slog.Error("failed to query survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.StatusDraft {
		middleware.ErrorResponse(w, http.StatusConflict, "Cannot add questions to non-draft survey")
		return
	}

	// Next display order slot
	var questionCount int
	err = h.db.QueryRow("SELECT COUNT(*) FROM question WHERE survey_id = $1", surveyID).Scan(&questionCount)
	if err != nil {
		slog.Error("failed to count questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	order := questionCount + 1

	// Generate question ID
	questionID, err := auth.GenerateID(12)
	if err != nil {
		slog.Error("failed to generate question ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
		return
	}

	// Options persist as a JSON array (or NULL for option-less kinds)
	var optionsJSON *string
	if len(req.Options) > 0 {
		encoded, err := json.Marshal(req.Options)
		if err != nil {
			slog.Error("failed to encode options", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
			return
		}
		s := string(encoded)
		optionsJSON = &s
	}

	_, err = h.db.Exec(`
		INSERT INTO question (id, survey_id, title, kind, options, ordinal, ord)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, questionID, surveyID, req.Title, req.Kind, optionsJSON, req.Ordinal, order)

	if err != nil {
		slog.Error("failed to insert question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
		return
	}

	slog.Info("question added", "survey_id", surveyID, "question_id", questionID, "kind", req.Kind)

	middleware.JSONResponse(w, http.StatusCreated, models.AddQuestionResponse{
		QuestionID: questionID,
		Order:      order,
	})
}

// PublishSurvey handles POST /surveys/:id/publish
func (h *SurveyHandler) PublishSurvey(w http.ResponseWriter, r *http.Request) {
	surveyID := r.PathValue("id")
	if surveyID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "survey_id is required")
		return
	}

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(surveyID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	// Check survey exists and is in draft status
	var status string
	var questionCount int
	err := h.db.QueryRow(`
		SELECT s.status, COUNT(q.id)
		FROM survey s
		LEFT JOIN question q ON s.id = q.survey_id
		WHERE s.id = $1
		GROUP BY s.status
	`, surveyID).Scan(&status, &questionCount)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
		return
	}
	if err != nil {
		slog.Error("failed to query survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.StatusDraft {
		middleware.ErrorResponse(w, http.StatusConflict, "Survey is not in draft status")
		return
	}

	if questionCount < 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Survey must have at least 1 question")
		return
	}

	// Generate share slug
	shareSlug := auth.GenerateShareSlug(surveyID, h.cfg.SurveySlugSalt)

	// Update survey to open status
	_, err = h.db.Exec(`
		UPDATE survey
		SET status = $1, share_slug = $2
		WHERE id = $3
	`, models.StatusOpen, shareSlug, surveyID)

	if err != nil {
		slog.Error("failed to publish survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to publish survey")
		return
	}

	slog.Info("survey published", "survey_id", surveyID, "share_slug", shareSlug)

	shareURL := h.cfg.BaseURL + "/surveys/" + shareSlug

	middleware.JSONResponse(w, http.StatusOK, models.PublishSurveyResponse{
		ShareSlug: shareSlug,
		ShareURL:  shareURL,
	})
}

// GetSurveyAdmin handles GET /surveys/:id/admin
// Returns survey details for admin access using survey ID and admin key
func (h *SurveyHandler) GetSurveyAdmin(w http.ResponseWriter, r *http.Request) {
	surveyID := r.PathValue("id")
	if surveyID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "survey_id is required")
		return
	}

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(surveyID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	survey, err := querySurvey(h.db, "id", surveyID)
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

// CloseSurvey handles POST /surveys/:id/close
func (h *SurveyHandler) CloseSurvey(w http.ResponseWriter, r *http.Request) {
	surveyID := r.PathValue("id")
	if surveyID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "survey_id is required")
		return
	}

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(surveyID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	// Check survey exists and is open
	var status string
	err := h.db.QueryRow("SELECT status FROM survey WHERE id = $1", surveyID).Scan(&status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
		return
	}
	if err != nil {
		slog.Error("failed to query survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Survey is not open")
		return
	}

	closedAt := time.Now()
	_, err = h.db.Exec(`
		UPDATE survey
		SET status = $1, closed_at = $2
		WHERE id = $3
	`, models.StatusClosed, closedAt, surveyID)

	if err != nil {
		slog.Error("failed to close survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to close survey")
		return
	}

	var responseCount int
	err = h.db.QueryRow("SELECT COUNT(*) FROM response WHERE survey_id = $1", surveyID).Scan(&responseCount)
	if err != nil {
		slog.Error("failed to count responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("survey closed", "survey_id", surveyID, "responses", responseCount)

	middleware.JSONResponse(w, http.StatusOK, models.CloseSurveyResponse{
		ClosedAt:      closedAt,
		ResponseCount: responseCount,
	})
}

// requiresOptions reports whether a question kind needs a fixed option list.
func requiresOptions(kind string) bool {
	switch kind {
	case models.KindSingleChoice, models.KindMultiChoice, models.KindDropdown:
		return true
	}
	return false
}

// querySurvey fetches one survey by the given column ("id" or "share_slug").
func querySurvey(db *sql.DB, column, value string) (models.Survey, error) {
	var survey models.Survey
	err := db.QueryRow(`
		SELECT id, title, description, creator_name, status, share_slug, closed_at, created_at
		FROM survey
		WHERE `+column+` = $1
	`, value).Scan(
		&survey.ID, &survey.Title, &survey.Description, &survey.CreatorName,
		&survey.Status, &survey.ShareSlug, &survey.ClosedAt, &survey.CreatedAt,
	)
	return survey, err
}

// queryQuestions fetches a survey's questions in display order. The options
// column holds a JSON array; a value that fails to parse yields an empty
// option list rather than an error, so a corrupted question degrades instead
// of blocking the whole survey.
func queryQuestions(db *sql.DB, surveyID string) ([]models.QuestionSpec, error) {
	rows, err := db.Query(`
		SELECT id, title, kind, options, ordinal, ord
		FROM question
		WHERE survey_id = $1
		ORDER BY ord
	`, surveyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := []models.QuestionSpec{}
	for rows.Next() {
		var q models.QuestionSpec
		var optionsJSON sql.NullString
		if err := rows.Scan(&q.ID, &q.Title, &q.Kind, &optionsJSON, &q.Ordinal, &q.Order); err != nil {
			return nil, err
		}
		if optionsJSON.Valid {
			if err := json.Unmarshal([]byte(optionsJSON.String), &q.Options); err != nil {
				slog.Warn("unparseable question options", "question_id", q.ID, "error", err)
				q.Options = nil
			}
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}
