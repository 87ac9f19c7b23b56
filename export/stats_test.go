// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"math"
	"testing"

	"github.com/danielhkuo/enquete/models"
)

const statsEpsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < statsEpsilon
}

func responsesWithAnswers(questionID string, answers []string) []models.ResponseRecord {
	rs := make([]models.ResponseRecord, len(answers))
	for i, a := range answers {
		rs[i] = models.ResponseRecord{Answers: map[string]string{questionID: a}}
	}
	return rs
}

func TestComputeStatsExcludesMissing(t *testing.T) {
	q := models.QuestionSpec{
		ID:      "q1",
		Kind:    models.KindSingleChoice,
		Options: []string{"A", "B", "C"},
		Ordinal: true,
	}
	// A=1, B=2, C=3; blank and unknown answers are excluded entirely
	responses := responsesWithAnswers("q1", []string{"A", "B", "C", "", "null", "nonsense"})

	stats := ComputeStats(q, responses)

	if stats.Count != 3 {
		t.Errorf("Count = %d, want 3", stats.Count)
	}
	if !almostEqual(stats.Mean, 2.0) {
		t.Errorf("Mean = %f, want 2.0", stats.Mean)
	}
	// population variance of {1,2,3} is 2/3
	wantStd := math.Sqrt(2.0 / 3.0)
	if !almostEqual(stats.StdDev, wantStd) {
		t.Errorf("StdDev = %f, want %f", stats.StdDev, wantStd)
	}
	if stats.Min != 1 || stats.Max != 3 {
		t.Errorf("Min/Max = %f/%f, want 1/3", stats.Min, stats.Max)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	q := models.QuestionSpec{
		ID:      "q1",
		Kind:    models.KindSingleChoice,
		Options: []string{"A", "B"},
		Ordinal: true,
	}

	tests := []struct {
		name    string
		answers []string
	}{
		{"no responses", nil},
		{"only missing answers", []string{"", "null", "undefined"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := ComputeStats(q, responsesWithAnswers("q1", tt.answers))
			if stats.Count != 0 {
				t.Errorf("Count = %d, want 0", stats.Count)
			}
		})
	}
}

func TestScale(t *testing.T) {
	stats := QuestionStats{Count: 3, Mean: 2, StdDev: math.Sqrt(2.0 / 3.0), Min: 1, Max: 3}

	tests := []struct {
		name   string
		code   int
		stats  QuestionStats
		format string
		want   float64
	}{
		{"raw passes code through", 2, stats, models.FormatRaw, 2},
		{"normalized min", 1, stats, models.FormatNormalized, 0},
		{"normalized mid", 2, stats, models.FormatNormalized, 0.5},
		{"normalized max", 3, stats, models.FormatNormalized, 1},
		{"standardized mean", 2, stats, models.FormatStandardized, 0},
		{"degenerate range collapses to zero", 5,
			QuestionStats{Count: 2, Mean: 5, StdDev: 0, Min: 5, Max: 5}, models.FormatNormalized, 0},
		{"zero stddev collapses to zero", 5,
			QuestionStats{Count: 2, Mean: 5, StdDev: 0, Min: 5, Max: 5}, models.FormatStandardized, 0},
		{"no valid codes passes through", 4,
			QuestionStats{Count: 0}, models.FormatNormalized, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scale(tt.code, tt.stats, tt.format)
			if !almostEqual(got, tt.want) {
				t.Errorf("Scale(%d, %s) = %f, want %f", tt.code, tt.format, got, tt.want)
			}
		})
	}
}

func TestScaleStandardizedSymmetric(t *testing.T) {
	stats := QuestionStats{Count: 3, Mean: 2, StdDev: math.Sqrt(2.0 / 3.0), Min: 1, Max: 3}

	lo := Scale(1, stats, models.FormatStandardized)
	hi := Scale(3, stats, models.FormatStandardized)
	if !almostEqual(lo, -hi) {
		t.Errorf("standardized extremes not symmetric: %f vs %f", lo, hi)
	}

	// sum over all codes must be zero by construction
	sum := lo + Scale(2, stats, models.FormatStandardized) + hi
	if !almostEqual(sum, 0) {
		t.Errorf("standardized codes sum to %f, want 0", sum)
	}
}
