// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"strings"

	"github.com/danielhkuo/enquete/models"
)

// NACode is the reserved numeric code for a missing or unmappable answer.
// Option indices are 1-based so 0 is never a legitimate mapped value.
const NACode = 0

// ageBracketRanks maps age bracket labels to ranks 1..7.
// "70代" is accepted as a legacy alias of "70代以上".
var ageBracketRanks = map[string]int{
	"10代":   1,
	"20代":   2,
	"30代":   3,
	"40代":   4,
	"50代":   5,
	"60代":   6,
	"70代以上": 7,
	"70代":   7,
}

// Region ranks 1..9, north to south.
const (
	regionHokkaido = 1
	regionTohoku   = 2
	regionKanto    = 3
	regionChubu    = 4
	regionKinki    = 5
	regionChugoku  = 6
	regionShikoku  = 7
	regionKyushu   = 8
	regionOkinawa  = 9
)

// prefectureRegions maps each of the 47 prefectures to its region rank.
var prefectureRegions = map[string]int{
	"北海道": regionHokkaido,

	"青森県": regionTohoku,
	"岩手県": regionTohoku,
	"宮城県": regionTohoku,
	"秋田県": regionTohoku,
	"山形県": regionTohoku,
	"福島県": regionTohoku,

	"茨城県":  regionKanto,
	"栃木県":  regionKanto,
	"群馬県":  regionKanto,
	"埼玉県":  regionKanto,
	"千葉県":  regionKanto,
	"東京都":  regionKanto,
	"神奈川県": regionKanto,

	"新潟県": regionChubu,
	"富山県": regionChubu,
	"石川県": regionChubu,
	"福井県": regionChubu,
	"山梨県": regionChubu,
	"長野県": regionChubu,
	"岐阜県": regionChubu,
	"静岡県": regionChubu,
	"愛知県": regionChubu,

	"三重県":  regionKinki,
	"滋賀県":  regionKinki,
	"京都府":  regionKinki,
	"大阪府":  regionKinki,
	"兵庫県":  regionKinki,
	"奈良県":  regionKinki,
	"和歌山県": regionKinki,

	"鳥取県": regionChugoku,
	"島根県": regionChugoku,
	"岡山県": regionChugoku,
	"広島県": regionChugoku,
	"山口県": regionChugoku,

	"徳島県": regionShikoku,
	"香川県": regionShikoku,
	"愛媛県": regionShikoku,
	"高知県": regionShikoku,

	"福岡県":  regionKyushu,
	"佐賀県":  regionKyushu,
	"長崎県":  regionKyushu,
	"熊本県":  regionKyushu,
	"大分県":  regionKyushu,
	"宮崎県":  regionKyushu,
	"鹿児島県": regionKyushu,

	"沖縄県": regionOkinawa,
}

// isBlankAnswer reports whether answer text counts as no answer. Besides
// empty and whitespace-only strings this covers the literal "null" and
// "undefined" that leak in from sloppy clients.
func isBlankAnswer(answer string) bool {
	trimmed := strings.TrimSpace(answer)
	return trimmed == "" || trimmed == "null" || trimmed == "undefined"
}

// ToNumeric maps an answer's raw text to its numeric code for a question.
// Returns NACode for blank or unmappable answers. For multi-choice questions
// the code is the sum of the 1-based option indices of every selected label;
// a selected label missing from the option list contributes 0 to the sum
// rather than failing, since stale selections survive option edits.
func ToNumeric(q models.QuestionSpec, answer string) int {
	if isBlankAnswer(answer) {
		return NACode
	}

	switch q.Kind {
	case models.KindAgeBracket:
		return ageBracketRanks[strings.TrimSpace(answer)]
	case models.KindPrefecture:
		return prefectureRegions[strings.TrimSpace(answer)]
	case models.KindMultiChoice:
		sum := 0
		for _, label := range SplitSelections(answer) {
			sum += optionIndex(q.Options, label)
		}
		return sum
	default:
		return optionIndex(q.Options, answer)
	}
}

// SplitSelections splits a persisted multi-choice answer into its selected
// labels. Blank fragments are dropped.
func SplitSelections(answer string) []string {
	if isBlankAnswer(answer) {
		return nil
	}
	var labels []string
	for _, part := range strings.Split(answer, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			labels = append(labels, trimmed)
		}
	}
	return labels
}

// optionIndex returns the 1-based index of label in options, or 0 if absent.
func optionIndex(options []string, label string) int {
	label = strings.TrimSpace(label)
	for i, opt := range options {
		if opt == label {
			return i + 1
		}
	}
	return NACode
}
