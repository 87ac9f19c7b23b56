// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/danielhkuo/enquete/models"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrNoQuestions       = errors.New("survey has no questions")
)

// Timestamps are rendered in a fixed UTC+9 offset regardless of server
// timezone, truncated to minute precision.
var exportZone = time.FixedZone("JST", 9*60*60)

const timestampLayout = "2006-01-02 15:04"

// Column is one entry of the column plan: a single output column bound to
// the question (and, for one-hot columns, the option) it renders.
type Column struct {
	Question models.QuestionSpec
	Label    string
	Kind     ColumnKind
	Option   string // set only for one-hot columns
}

// Table is the assembled export artifact before serialization. Every row
// has exactly len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// PlanColumns computes the column plan for one export invocation: questions
// in display order, redaction applied, one-hot questions expanded to one
// column per option in option order. The plan is computed once and applied
// uniformly to every row so that a column means the same thing in all of
// them.
func PlanColumns(questions []models.QuestionSpec, format string, includePersonal bool) []Column {
	ordered := make([]models.QuestionSpec, len(questions))
	copy(ordered, questions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})

	var plan []Column
	for _, q := range ordered {
		if !includePersonal && models.IsPersonalKind(q.Kind) {
			continue
		}

		switch kind := ResolveColumnKind(q, format); kind {
		case ColumnOneHot:
			for _, opt := range q.Options {
				plan = append(plan, Column{
					Question: q,
					Label:    q.Title + "_" + opt,
					Kind:     kind,
					Option:   opt,
				})
			}
		case ColumnNumericOrdinal:
			plan = append(plan, Column{Question: q, Label: q.Title + "_numeric", Kind: kind})
		default:
			plan = append(plan, Column{Question: q, Label: q.Title, Kind: kind})
		}
	}
	return plan
}

// BuildTable assembles the header and one row per response. Statistics for
// ordinal columns are computed once per question across the full response
// set before any row is emitted, then reused for every row.
func BuildTable(snapshot models.SurveySnapshot, format string, includePersonal bool) (Table, error) {
	if !models.IsValidFormat(format) {
		return Table{}, ErrUnsupportedFormat
	}
	if len(snapshot.Questions) == 0 {
		return Table{}, ErrNoQuestions
	}

	plan := PlanColumns(snapshot.Questions, format, includePersonal)

	statsByQuestion := make(map[string]QuestionStats)
	for _, col := range plan {
		if col.Kind != ColumnNumericOrdinal {
			continue
		}
		if _, ok := statsByQuestion[col.Question.ID]; !ok {
			statsByQuestion[col.Question.ID] = ComputeStats(col.Question, snapshot.Responses)
		}
	}

	header := make([]string, 0, len(plan)+2)
	header = append(header, "responseId", "respondedAt")
	for _, col := range plan {
		header = append(header, col.Label)
	}

	rows := make([][]string, 0, len(snapshot.Responses))
	for _, resp := range snapshot.Responses {
		row := make([]string, 0, len(header))
		row = append(row, resp.ID, resp.SubmittedAt.In(exportZone).Format(timestampLayout))

		for _, col := range plan {
			answer := resp.Answers[col.Question.ID]

			switch col.Kind {
			case ColumnOneHot:
				row = append(row, renderOneHot(col, answer))
			case ColumnNumericOrdinal:
				row = append(row, renderOrdinal(col.Question, answer, statsByQuestion[col.Question.ID], format))
			default:
				row = append(row, answer)
			}
		}
		rows = append(rows, row)
	}

	return Table{Header: header, Rows: rows}, nil
}

// renderOneHot emits "1" when the column's option is selected, else "0".
// Multi-choice answers are membership-tested against the comma-split set;
// single-valued kinds require an exact match.
func renderOneHot(col Column, answer string) string {
	if col.Question.Kind == models.KindMultiChoice {
		for _, label := range SplitSelections(answer) {
			if label == col.Option {
				return "1"
			}
		}
		return "0"
	}
	if !isBlankAnswer(answer) && answer == col.Option {
		return "1"
	}
	return "0"
}

// renderOrdinal converts the answer to its numeric code, scales it, and
// renders the result. NA codes and non-finite results render as the literal
// "NA".
func renderOrdinal(q models.QuestionSpec, answer string, stats QuestionStats, format string) string {
	code := ToNumeric(q, answer)
	if code == NACode {
		return "NA"
	}
	scaled := Scale(code, stats, format)
	if math.IsNaN(scaled) || math.IsInf(scaled, 0) {
		return "NA"
	}
	return strconv.FormatFloat(scaled, 'g', -1, 64)
}
