// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"strings"
	"testing"
	"time"
)

func TestEscapeField(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  string
	}{
		{"plain passes through", "hello", "hello"},
		{"empty passes through", "", ""},
		{"japanese passes through", "満足度", "満足度"},
		{"comma quoted", "a,b", `"a,b"`},
		{"quote doubled", `he said "hi"`, `"he said ""hi"""`},
		{"newline quoted", "line1\nline2", "\"line1\nline2\""},
		{"carriage return quoted", "line1\r\nline2", "\"line1\r\nline2\""},
		{"only a quote", `"`, `""""`},
		{"space alone not quoted", "a b", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeField(tt.field); got != tt.want {
				t.Errorf("EscapeField(%q) = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}

func TestSerialize(t *testing.T) {
	table := Table{
		Header: []string{"responseId", "respondedAt", "ご意見"},
		Rows: [][]string{
			{"r1", "2026-01-15 12:04", "コメント, あり"},
			{"r2", "2026-01-15 13:04", ""},
		},
	}

	got := Serialize(table)

	if !strings.HasPrefix(got, "\uFEFF") {
		t.Error("serialized output missing UTF-8 BOM")
	}

	want := "\uFEFF" +
		"responseId,respondedAt,ご意見\n" +
		"r1,2026-01-15 12:04,\"コメント, あり\"\n" +
		"r2,2026-01-15 13:04,\n"
	if got != want {
		t.Errorf("Serialize = %q, want %q", got, want)
	}
}

func TestSerializeEmptyTable(t *testing.T) {
	got := Serialize(Table{Header: []string{"responseId", "respondedAt"}})
	want := "\uFEFFresponseId,respondedAt\n"
	if got != want {
		t.Errorf("Serialize = %q, want %q", got, want)
	}
}

func TestBuildFilename(t *testing.T) {
	// 2026-01-15 23:30 UTC is already 2026-01-16 in UTC+9
	now := time.Date(2026, 1, 15, 23, 30, 0, 0, time.UTC)

	got := BuildFilename("顧客満足度調査", "normalized", now)
	want := "顧客満足度調査_normalized_2026-01-16.csv"
	if got != want {
		t.Errorf("BuildFilename = %q, want %q", got, want)
	}
}

func TestEncodeFilename(t *testing.T) {
	got := EncodeFilename("調査_raw_2026-01-15.csv")
	if strings.ContainsAny(got, "調査") {
		t.Errorf("EncodeFilename left non-ASCII intact: %q", got)
	}
	if !strings.HasSuffix(got, ".csv") {
		t.Errorf("EncodeFilename mangled the extension: %q", got)
	}

	// ASCII filenames survive unchanged
	plain := "survey_raw_2026-01-15.csv"
	if got := EncodeFilename(plain); got != plain {
		t.Errorf("EncodeFilename(%q) = %q, want unchanged", plain, got)
	}
}
