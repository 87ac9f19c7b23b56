package models

import "time"

// Survey status constants
const (
	StatusDraft  = "draft"
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Question kind constants
const (
	KindFreeText     = "free_text"
	KindLongText     = "long_text"
	KindNumber       = "number"
	KindEmail        = "email"
	KindPhone        = "phone"
	KindDate         = "date"
	KindSingleChoice = "single_choice"
	KindMultiChoice  = "multi_choice"
	KindDropdown     = "dropdown"
	KindRating       = "rating"
	KindPrefecture   = "prefecture"
	KindName         = "name"
	KindAgeBracket   = "age_bracket"
)

// Export format constants
const (
	FormatRaw          = "raw"
	FormatNormalized   = "normalized"
	FormatStandardized = "standardized"
)

// Account plan tiers
const (
	PlanFree     = "free"
	PlanStandard = "standard"
	PlanPremium  = "premium"
)

// Account-survey roles
const (
	RoleOwner      = "owner"
	RoleRespondent = "respondent"
)

// IsValidKind reports whether kind is one of the supported question kinds.
func IsValidKind(kind string) bool {
	switch kind {
	case KindFreeText, KindLongText, KindNumber, KindEmail, KindPhone,
		KindDate, KindSingleChoice, KindMultiChoice, KindDropdown,
		KindRating, KindPrefecture, KindName, KindAgeBracket:
		return true
	}
	return false
}

// IsPersonalKind reports whether a question kind collects personal data.
// These columns are dropped from exports unless include_personal is set.
func IsPersonalKind(kind string) bool {
	switch kind {
	case KindName, KindEmail, KindPhone:
		return true
	}
	return false
}

// IsValidFormat reports whether format is a supported export format.
func IsValidFormat(format string) bool {
	switch format {
	case FormatRaw, FormatNormalized, FormatStandardized:
		return true
	}
	return false
}

// IsValidPlan reports whether plan is a supported account plan tier.
func IsValidPlan(plan string) bool {
	switch plan {
	case PlanFree, PlanStandard, PlanPremium:
		return true
	}
	return false
}

// Request types

type CreateSurveyRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatorName string `json:"creator_name"`
}

type AddQuestionRequest struct {
	Title   string   `json:"title"`
	Kind    string   `json:"kind"`
	Options []string `json:"options,omitempty"`
	Ordinal bool     `json:"ordinal"`
}

type ClaimTokenRequest struct {
	Nickname string `json:"nickname"`
}

// question_id -> answer text (multi-choice selections are comma-joined)
type SubmitResponseRequest struct {
	Answers map[string]string `json:"answers"`
}

type RegisterAccountRequest struct {
	Plan string `json:"plan"`
}

// Response types

type CreateSurveyResponse struct {
	SurveyID string `json:"survey_id"`
	AdminKey string `json:"admin_key"`
}

type AddQuestionResponse struct {
	QuestionID string `json:"question_id"`
	Order      int    `json:"order"`
}

type PublishSurveyResponse struct {
	ShareSlug string `json:"share_slug"`
	ShareURL  string `json:"share_url"`
}

type ClaimTokenResponse struct {
	RespondentToken string `json:"respondent_token"`
}

type SubmitResponseResponse struct {
	ResponseID string `json:"response_id"`
	Message    string `json:"message"`
}

type CloseSurveyResponse struct {
	ClosedAt      time.Time `json:"closed_at"`
	ResponseCount int       `json:"response_count"`
}

type SurveyPreviewResponse struct {
	Title         string `json:"title"`
	Status        string `json:"status"`
	QuestionCount int    `json:"question_count"`
	ResponseCount int    `json:"response_count"`
}

type RegisterAccountResponse struct {
	AccountID string `json:"account_id"`
	Plan      string `json:"plan"`
	IsNew     bool   `json:"is_new"`
}

type AccountInfo struct {
	ID         string    `json:"id"`
	Plan       string    `json:"plan"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

type AccountSurveySummary struct {
	SurveyID      string    `json:"survey_id"`
	Title         string    `json:"title"`
	Status        string    `json:"status"`
	ShareSlug     *string   `json:"share_slug,omitempty"`
	Role          string    `json:"role"`
	LinkedAt      time.Time `json:"linked_at"`
	ResponseCount int       `json:"response_count"`
}

type GetMySurveysResponse struct {
	Surveys []AccountSurveySummary `json:"surveys"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

type Survey struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatorName string     `json:"creator_name"`
	Status      string     `json:"status"`
	ShareSlug   *string    `json:"share_slug,omitempty"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// QuestionSpec is one question of a survey schema. Options is nil for kinds
// without a fixed choice list. Order is assigned at creation and fixes the
// export column order.
type QuestionSpec struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Kind    string   `json:"kind"`
	Options []string `json:"options,omitempty"`
	Ordinal bool     `json:"ordinal"`
	Order   int      `json:"order"`
}

type SurveyWithQuestions struct {
	Survey    Survey         `json:"survey"`
	Questions []QuestionSpec `json:"questions"`
}

// ResponseRecord is one submitted response. Answers maps question id to the
// persisted answer text; multi-choice selections are stored comma-joined in
// a single string.
type ResponseRecord struct {
	ID              string            `json:"id"`
	SurveyID        string            `json:"survey_id"`
	RespondentToken string            `json:"-"` // Never expose in JSON
	SubmittedAt     time.Time         `json:"submitted_at"`
	IPHash          *string           `json:"-"` // Never expose in JSON
	UserAgent       *string           `json:"-"` // Never expose in JSON
	Answers         map[string]string `json:"answers"`
}

// SurveySnapshot is the read-only view handed to the export engine: survey
// title, question schema in display order, and every collected response.
type SurveySnapshot struct {
	Title     string           `json:"title"`
	Questions []QuestionSpec   `json:"questions"`
	Responses []ResponseRecord `json:"responses"`
}
