// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/danielhkuo/enquete/auth"
	"github.com/danielhkuo/enquete/cliparse"
	"github.com/danielhkuo/enquete/export"
	"github.com/danielhkuo/enquete/middleware"
	"github.com/danielhkuo/enquete/models"
)

type ExportHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewExportHandler(db *sql.DB, cfg cliparse.Config) *ExportHandler {
	return &ExportHandler{db: db, cfg: cfg}
}

// ExportSurvey handles GET /surveys/:id/export?format=raw|normalized|standardized&include_personal=true
// Streams nothing: the artifact is materialized in full, then written as a
// CSV download. The export engine itself never touches the database; this
// handler loads the snapshot, gates on plan entitlement, and records usage.
func (h *ExportHandler) ExportSurvey(w http.ResponseWriter, r *http.Request) {
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

	format := r.URL.Query().Get("format")
	if format == "" {
		format = models.FormatRaw
	}
	if !models.IsValidFormat(format) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "format must be raw, normalized, or standardized")
		return
	}
	includePersonal := r.URL.Query().Get("include_personal") == "true"

	// Plan gating happens before the engine runs, never inside it
	accountID, plan, err := lookupAccountPlan(h.db, r)
	if err != nil {
		slog.Error("failed to look up account plan", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !planAllowsFormat(plan, format) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Plan "+plan+" does not include "+format+" exports")
		return
	}

	snapshot, err := loadSurveyForExport(h.db, surveyID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
		return
	}
	if err != nil {
		slog.Error("failed to load survey for export", "error", err, "survey_id", surveyID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	result, err := export.Export(snapshot, format, includePersonal)
	if errors.Is(err, export.ErrNoQuestions) {
		middleware.ErrorResponse(w, http.StatusConflict, "Survey has no questions to export")
		return
	}
	if err != nil {
		slog.Error("export failed", "error", err, "survey_id", surveyID, "format", format)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Export failed")
		return
	}

	body := []byte(result.Body)

	// Best-effort: the download must not fail because accounting did
	recordDataUsage(h.db, accountID, surveyID, len(body), format+" export")

	slog.Info("survey exported",
		"survey_id", surveyID,
		"format", format,
		"responses", len(snapshot.Responses),
		"size", humanize.Bytes(uint64(len(body))),
	)

	middleware.DownloadResponse(w, export.ContentType, export.EncodeFilename(result.Filename), body)
}

// loadSurveyForExport assembles the read-only snapshot the export engine
// consumes: title, questions in display order, and all responses with their
// answers. Answers referencing questions deleted from the schema are loaded
// as-is; the engine skips them.
func loadSurveyForExport(db *sql.DB, surveyID string) (models.SurveySnapshot, error) {
	var snapshot models.SurveySnapshot

	err := db.QueryRow(`SELECT title FROM survey WHERE id = $1`, surveyID).Scan(&snapshot.Title)
	if err != nil {
		return models.SurveySnapshot{}, err
	}

	snapshot.Questions, err = queryQuestions(db, surveyID)
	if err != nil {
		return models.SurveySnapshot{}, err
	}

	rows, err := db.Query(`
		SELECT id, survey_id, submitted_at
		FROM response
		WHERE survey_id = $1
		ORDER BY submitted_at, id
	`, surveyID)
	if err != nil {
		return models.SurveySnapshot{}, err
	}
	defer rows.Close()

	snapshot.Responses = []models.ResponseRecord{}
	for rows.Next() {
		var resp models.ResponseRecord
		if err := rows.Scan(&resp.ID, &resp.SurveyID, &resp.SubmittedAt); err != nil {
			return models.SurveySnapshot{}, err
		}
		resp.Answers = make(map[string]string)
		snapshot.Responses = append(snapshot.Responses, resp)
	}
	if err := rows.Err(); err != nil {
		return models.SurveySnapshot{}, err
	}

	answerRows, err := db.Query(`
		SELECT a.response_id, a.question_id, a.value
		FROM answer a
		JOIN response r ON a.response_id = r.id
		WHERE r.survey_id = $1
	`, surveyID)
	if err != nil {
		return models.SurveySnapshot{}, err
	}
	defer answerRows.Close()

	byID := make(map[string]int, len(snapshot.Responses))
	for i, resp := range snapshot.Responses {
		byID[resp.ID] = i
	}

	for answerRows.Next() {
		var responseID, questionID, value string
		if err := answerRows.Scan(&responseID, &questionID, &value); err != nil {
			return models.SurveySnapshot{}, err
		}
		if i, ok := byID[responseID]; ok {
			snapshot.Responses[i].Answers[questionID] = value
		}
	}

	return snapshot, answerRows.Err()
}

// lookupAccountPlan resolves the caller's plan tier from the X-Client-UUID
// header. Requests without a registered account export on the free tier.
func lookupAccountPlan(db *sql.DB, r *http.Request) (accountID, plan string, err error) {
	clientUUID := r.Header.Get("X-Client-UUID")
	if clientUUID == "" {
		return "", models.PlanFree, nil
	}

	err = db.QueryRow(`
		SELECT id, plan FROM account WHERE client_uuid = $1
	`, clientUUID).Scan(&accountID, &plan)

	if err == sql.ErrNoRows {
		return "", models.PlanFree, nil
	}
	if err != nil {
		return "", "", err
	}
	return accountID, plan, nil
}

// planAllowsFormat is the export entitlement matrix: free accounts get raw
// dumps, standard adds min-max normalization, premium adds z-scores.
func planAllowsFormat(plan, format string) bool {
	switch plan {
	case models.PlanPremium:
		return true
	case models.PlanStandard:
		return format != models.FormatStandardized
	default:
		return format == models.FormatRaw
	}
}

// recordDataUsage logs the byte size of a produced artifact for billing.
// Failures are logged and swallowed.
func recordDataUsage(db *sql.DB, accountID, surveyID string, sizeBytes int, description string) {
	var account sql.NullString
	if accountID != "" {
		account = sql.NullString{String: accountID, Valid: true}
	}

	_, err := db.Exec(`
		INSERT INTO usage_log (id, account_id, survey_id, size_bytes, description, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.NewString(), account, surveyID, sizeBytes, description, time.Now())

	if err != nil {
		slog.Warn("failed to record data usage", "error", err, "survey_id", surveyID)
	}
}
