// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import "github.com/danielhkuo/enquete/models"

// ColumnKind is the output encoding chosen for one question.
type ColumnKind int

const (
	// ColumnText passes the answer text through verbatim.
	ColumnText ColumnKind = iota
	// ColumnNumericOrdinal collapses the question to one numeric column.
	ColumnNumericOrdinal
	// ColumnOneHot expands the question to one 0/1 column per option.
	ColumnOneHot
)

func (k ColumnKind) String() string {
	switch k {
	case ColumnNumericOrdinal:
		return "numeric_ordinal"
	case ColumnOneHot:
		return "one_hot"
	default:
		return "text"
	}
}

// ResolveColumnKind decides how a question is rendered for a given export
// format. Raw exports always pass text through. In the scaled formats,
// choice-style questions collapse to a single ordinal column when their
// options carry a meaningful order, and expand to one-hot columns when they
// do not. Age bracket and prefecture questions are ordinal by nature and
// never one-hot.
func ResolveColumnKind(q models.QuestionSpec, format string) ColumnKind {
	if format == models.FormatRaw {
		return ColumnText
	}

	switch q.Kind {
	case models.KindAgeBracket, models.KindPrefecture:
		return ColumnNumericOrdinal
	case models.KindSingleChoice, models.KindDropdown, models.KindMultiChoice:
		if q.Ordinal {
			return ColumnNumericOrdinal
		}
		return ColumnOneHot
	}

	return ColumnText
}
