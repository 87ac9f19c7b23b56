// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package export turns a survey snapshot into a CSV artifact in one of three
analytical encodings: raw, min-max normalized, or z-score standardized.

The package is pure: it performs no I/O, holds no state between invocations,
and every function is deterministic in its inputs. The HTTP layer loads the
snapshot, checks entitlements, and wraps the result into a download response.

# Pipeline

	result, err := export.Export(snapshot, models.FormatNormalized, false)

Export runs a fixed pipeline:

 1. PlanColumns: one column plan per invocation, questions in display
    order, personal-data questions dropped unless requested, one-hot
    questions expanded to one column per option.
 2. ComputeStats: per-question mean, population standard deviation, min,
    and max over the valid numeric codes, computed once and reused for
    every row.
 3. BuildTable: header plus one row per response, delegating to
    ResolveColumnKind, ToNumeric, and Scale.
 4. Serialize: BOM-prefixed, comma-delimited text with minimal quoting.

# Encodings

ResolveColumnKind picks one of three column kinds per question:

  - text: answer passed through verbatim (always, for raw exports)
  - numeric ordinal: a single numeric column for ordered choice questions,
    age brackets, and prefectures (mapped to region ranks)
  - one-hot: one 0/1 column per option for unordered choice questions

# NA handling

The numeric code 0 is reserved for missing or unmappable answers; option
indices are 1-based. NA codes are excluded from statistics, never scaled,
and render as the literal "NA" in scaled outputs. Degenerate columns (zero
variance, empty value set) resolve to defined constants instead of failing.
*/
package export
