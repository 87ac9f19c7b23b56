// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"math"

	"github.com/danielhkuo/enquete/models"
)

// QuestionStats holds the per-question aggregates used by the scaled export
// formats. Count is the number of valid (non-NA) numeric codes; all other
// fields are NaN when Count is zero.
type QuestionStats struct {
	Count  int
	Mean   float64
	StdDev float64 // population standard deviation
	Min    float64
	Max    float64
}

// ComputeStats aggregates the valid numeric codes of one question across all
// responses. Codes equal to NACode are excluded so that missing answers do
// not drag the distribution toward zero. Variance is the population variance:
// this is a descriptive rescaling of the data at hand, not an estimator.
func ComputeStats(q models.QuestionSpec, responses []models.ResponseRecord) QuestionStats {
	var codes []float64
	for _, resp := range responses {
		code := ToNumeric(q, resp.Answers[q.ID])
		if code != NACode {
			codes = append(codes, float64(code))
		}
	}

	if len(codes) == 0 {
		nan := math.NaN()
		return QuestionStats{Count: 0, Mean: nan, StdDev: nan, Min: nan, Max: nan}
	}

	stats := QuestionStats{Count: len(codes), Min: codes[0], Max: codes[0]}

	sum := 0.0
	for _, c := range codes {
		sum += c
		if c < stats.Min {
			stats.Min = c
		}
		if c > stats.Max {
			stats.Max = c
		}
	}
	stats.Mean = sum / float64(len(codes))

	sumSq := 0.0
	for _, c := range codes {
		d := c - stats.Mean
		sumSq += d * d
	}
	stats.StdDev = math.Sqrt(sumSq / float64(len(codes)))

	return stats
}

// Scale applies the requested transform to one numeric code.
//
// NA codes are returned unchanged; they render as "NA" downstream and must
// never be scaled. Degenerate distributions (zero spread, zero variance)
// resolve to 0 rather than failing: a report should not error merely because
// a column lacks variance. When no valid codes existed at all the raw code
// passes through.
func Scale(code int, stats QuestionStats, format string) float64 {
	if code == NACode {
		return 0
	}
	if stats.Count == 0 {
		return float64(code)
	}

	switch format {
	case models.FormatNormalized:
		if stats.Max == stats.Min {
			return 0
		}
		return (float64(code) - stats.Min) / (stats.Max - stats.Min)
	case models.FormatStandardized:
		if stats.StdDev == 0 {
			return 0
		}
		return (float64(code) - stats.Mean) / stats.StdDev
	default:
		return float64(code)
	}
}
