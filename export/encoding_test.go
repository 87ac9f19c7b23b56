// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"testing"

	"github.com/danielhkuo/enquete/models"
)

func TestResolveColumnKind(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		ordinal bool
		format  string
		want    ColumnKind
	}{
		// Raw exports always pass text through
		{"raw free text", models.KindFreeText, false, models.FormatRaw, ColumnText},
		{"raw single choice", models.KindSingleChoice, false, models.FormatRaw, ColumnText},
		{"raw ordinal single choice", models.KindSingleChoice, true, models.FormatRaw, ColumnText},
		{"raw multi choice", models.KindMultiChoice, false, models.FormatRaw, ColumnText},
		{"raw age bracket", models.KindAgeBracket, false, models.FormatRaw, ColumnText},
		{"raw prefecture", models.KindPrefecture, false, models.FormatRaw, ColumnText},

		// Implicitly ordinal kinds never one-hot in scaled formats
		{"normalized age bracket", models.KindAgeBracket, false, models.FormatNormalized, ColumnNumericOrdinal},
		{"standardized age bracket", models.KindAgeBracket, true, models.FormatStandardized, ColumnNumericOrdinal},
		{"normalized prefecture", models.KindPrefecture, false, models.FormatNormalized, ColumnNumericOrdinal},

		// Choice kinds follow the ordinal flag
		{"normalized ordinal single choice", models.KindSingleChoice, true, models.FormatNormalized, ColumnNumericOrdinal},
		{"normalized nominal single choice", models.KindSingleChoice, false, models.FormatNormalized, ColumnOneHot},
		{"standardized ordinal dropdown", models.KindDropdown, true, models.FormatStandardized, ColumnNumericOrdinal},
		{"standardized nominal dropdown", models.KindDropdown, false, models.FormatStandardized, ColumnOneHot},
		{"normalized ordinal multi choice", models.KindMultiChoice, true, models.FormatNormalized, ColumnNumericOrdinal},
		{"normalized nominal multi choice", models.KindMultiChoice, false, models.FormatNormalized, ColumnOneHot},

		// Everything else stays text even when scaled
		{"normalized free text", models.KindFreeText, false, models.FormatNormalized, ColumnText},
		{"normalized long text", models.KindLongText, false, models.FormatNormalized, ColumnText},
		{"normalized number", models.KindNumber, false, models.FormatNormalized, ColumnText},
		{"normalized rating", models.KindRating, false, models.FormatNormalized, ColumnText},
		{"normalized date", models.KindDate, false, models.FormatNormalized, ColumnText},
		{"standardized email", models.KindEmail, false, models.FormatStandardized, ColumnText},
		{"standardized name", models.KindName, false, models.FormatStandardized, ColumnText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := models.QuestionSpec{Kind: tt.kind, Ordinal: tt.ordinal}
			got := ResolveColumnKind(q, tt.format)
			if got != tt.want {
				t.Errorf("ResolveColumnKind(%s, ordinal=%v, %s) = %v, want %v",
					tt.kind, tt.ordinal, tt.format, got, tt.want)
			}
		})
	}
}

func TestColumnKindString(t *testing.T) {
	if ColumnText.String() != "text" {
		t.Errorf("ColumnText.String() = %q", ColumnText.String())
	}
	if ColumnNumericOrdinal.String() != "numeric_ordinal" {
		t.Errorf("ColumnNumericOrdinal.String() = %q", ColumnNumericOrdinal.String())
	}
	if ColumnOneHot.String() != "one_hot" {
		t.Errorf("ColumnOneHot.String() = %q", ColumnOneHot.String())
	}
}
