package models

import "testing"

func TestIsValidKind(t *testing.T) {
	valid := []string{
		KindFreeText, KindLongText, KindNumber, KindEmail, KindPhone,
		KindDate, KindSingleChoice, KindMultiChoice, KindDropdown,
		KindRating, KindPrefecture, KindName, KindAgeBracket,
	}
	for _, kind := range valid {
		if !IsValidKind(kind) {
			t.Errorf("IsValidKind(%q) = false, want true", kind)
		}
	}
	for _, kind := range []string{"", "checkbox", "FREE_TEXT", "text"} {
		if IsValidKind(kind) {
			t.Errorf("IsValidKind(%q) = true, want false", kind)
		}
	}
}

func TestIsPersonalKind(t *testing.T) {
	for _, kind := range []string{KindName, KindEmail, KindPhone} {
		if !IsPersonalKind(kind) {
			t.Errorf("IsPersonalKind(%q) = false, want true", kind)
		}
	}
	for _, kind := range []string{KindFreeText, KindAgeBracket, KindPrefecture, KindDate} {
		if IsPersonalKind(kind) {
			t.Errorf("IsPersonalKind(%q) = true, want false", kind)
		}
	}
}

func TestIsValidFormat(t *testing.T) {
	for _, format := range []string{FormatRaw, FormatNormalized, FormatStandardized} {
		if !IsValidFormat(format) {
			t.Errorf("IsValidFormat(%q) = false, want true", format)
		}
	}
	for _, format := range []string{"", "xlsx", "RAW", "zscore"} {
		if IsValidFormat(format) {
			t.Errorf("IsValidFormat(%q) = true, want false", format)
		}
	}
}

func TestIsValidPlan(t *testing.T) {
	for _, plan := range []string{PlanFree, PlanStandard, PlanPremium} {
		if !IsValidPlan(plan) {
			t.Errorf("IsValidPlan(%q) = false, want true", plan)
		}
	}
	for _, plan := range []string{"", "enterprise", "Free"} {
		if IsValidPlan(plan) {
			t.Errorf("IsValidPlan(%q) = true, want false", plan)
		}
	}
}
