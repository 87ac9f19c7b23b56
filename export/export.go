// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"time"

	"github.com/danielhkuo/enquete/models"
)

// ContentType of every produced artifact.
const ContentType = "text/csv; charset=utf-8"

// Result is a complete export artifact. Body already carries the UTF-8 BOM.
type Result struct {
	Filename string
	Body     string
}

// Export runs the full pipeline on a survey snapshot: column planning, row
// emission, and serialization. It is a pure function of its inputs, with no
// persistence and no caching across invocations, so it is safe to call from
// any number of goroutines. Callers must already have verified read access
// to the survey.
//
// Returns ErrUnsupportedFormat or ErrNoQuestions for caller-contract
// violations; all data-shape problems degrade to "NA", zero, or skipped
// cells instead of failing.
func Export(snapshot models.SurveySnapshot, format string, includePersonal bool) (Result, error) {
	table, err := BuildTable(snapshot, format, includePersonal)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Filename: BuildFilename(snapshot.Title, format, time.Now()),
		Body:     Serialize(table),
	}, nil
}
