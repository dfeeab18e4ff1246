package core

import (
	"testing"
)

func TestKeyFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same key",
			content: "Avery Collins|555-0142",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "This is a much longer piece of content that should still hash consistently",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key1 := KeyFromContent(tt.content)
			key2 := KeyFromContent(tt.content)

			if key1 != key2 {
				t.Errorf("KeyFromContent() produced different keys for same content: %s vs %s", key1, key2)
			}
			if len(key1) != 16 {
				t.Errorf("KeyFromContent() = %q, want 16 hex characters", key1)
			}
		})
	}
}

func TestKeyFromContent_Different(t *testing.T) {
	key1 := KeyFromContent("content1")
	key2 := KeyFromContent("content2")

	if key1 == key2 {
		t.Errorf("KeyFromContent() produced same key for different content")
	}
}

func TestCategory_String(t *testing.T) {
	if got := CategoryPhone.String(); got != "PHONE" {
		t.Errorf("CategoryPhone.String() = %q, want PHONE", got)
	}
	if got := CategorySSNLast4.String(); got != "SSN_LAST4" {
		t.Errorf("CategorySSNLast4.String() = %q, want SSN_LAST4", got)
	}
	if got := Category(99).String(); got != "Category(99)" {
		t.Errorf("Category(99).String() = %q", got)
	}
}

func TestCategorySet_Membership(t *testing.T) {
	s := NewCategorySet(CategoryPhone, CategoryEmail)

	if !s.Has(CategoryPhone) || !s.Has(CategoryEmail) {
		t.Errorf("set %v missing expected members", s)
	}
	if s.Has(CategoryZip) {
		t.Errorf("set %v should not contain ZIP", s)
	}
	if s.Count() != 2 {
		t.Errorf("Count() = %d, want 2", s.Count())
	}
}

func TestCategorySet_IgnoresUnknown(t *testing.T) {
	s := NewCategorySet(CategoryUnknown, CategoryCity)

	if s.Count() != 1 {
		t.Errorf("Count() = %d, want 1 (unknown must be ignored)", s.Count())
	}
	if s.Has(CategoryUnknown) {
		t.Errorf("set should never contain CategoryUnknown")
	}
}

func TestCategorySet_ContainsAll(t *testing.T) {
	coverage := NewCategorySet(CategoryPhone, CategorySSNLast4, CategoryZip)
	required := NewCategorySet(CategoryPhone, CategorySSNLast4)

	if !coverage.ContainsAll(required) {
		t.Errorf("%v should contain all of %v", coverage, required)
	}
	if required.ContainsAll(coverage) {
		t.Errorf("%v should not contain all of %v", required, coverage)
	}

	// Every set is a superset of the empty set.
	if !required.ContainsAll(NewCategorySet()) {
		t.Errorf("%v should contain the empty set", required)
	}

	// The empty set satisfies no non-empty required set.
	if NewCategorySet().ContainsAll(required) {
		t.Errorf("empty set should not contain %v", required)
	}
}

func TestHitGroup_Empty(t *testing.T) {
	g := NewHitGroup("CUST1")

	if g.HitCount() != 0 {
		t.Errorf("HitCount() = %d, want 0", g.HitCount())
	}
	if g.AverageScore() != 0.0 {
		t.Errorf("AverageScore() = %f, want 0.0", g.AverageScore())
	}
	if g.MinScore() != 0.0 || g.MaxScore() != 0.0 {
		t.Errorf("Min/MaxScore of empty group should be 0.0")
	}
	if g.Categories().Count() != 0 {
		t.Errorf("empty group has non-empty category set %v", g.Categories())
	}
	if g.Satisfies(NewCategorySet(CategoryPhone)) {
		t.Errorf("empty group should satisfy no non-empty required set")
	}
}

func TestHitGroup_AddHit(t *testing.T) {
	g := NewHitGroup("CUST1")

	g.AddHit(Hit{EntityKey: "CUST1", Field: "phoneNumber", Score: 90}, CategoryPhone)
	g.AddHit(Hit{EntityKey: "CUST1", Field: "ssnLast4", Score: 80}, CategorySSNLast4)

	if g.HitCount() != 2 {
		t.Errorf("HitCount() = %d, want 2", g.HitCount())
	}
	if g.TotalScore() != 170 {
		t.Errorf("TotalScore() = %f, want 170", g.TotalScore())
	}
	if g.AverageScore() != 85 {
		t.Errorf("AverageScore() = %f, want 85", g.AverageScore())
	}
	if g.MinScore() != 80 || g.MaxScore() != 90 {
		t.Errorf("MinScore/MaxScore = %f/%f, want 80/90", g.MinScore(), g.MaxScore())
	}
	if !g.Satisfies(NewCategorySet(CategoryPhone, CategorySSNLast4)) {
		t.Errorf("group coverage %v should satisfy {PHONE,SSN_LAST4}", g.Categories())
	}
}

func TestHitGroup_AddHit_Monotonic(t *testing.T) {
	g := NewHitGroup("CUST1")
	g.AddHit(Hit{EntityKey: "CUST1", Score: 50}, CategoryPhone)

	// Adding further hits never removes an already-matched category, and the
	// average always equals total/count after each addition.
	scores := []float64{10, 95, 0}
	for i, score := range scores {
		g.AddHit(Hit{EntityKey: "CUST1", Score: score}, CategoryUnknown)

		if !g.Categories().Has(CategoryPhone) {
			t.Fatalf("PHONE dropped from category set after addition %d", i)
		}
		want := g.TotalScore() / float64(g.HitCount())
		if g.AverageScore() != want {
			t.Errorf("after addition %d: AverageScore() = %f, want %f", i, g.AverageScore(), want)
		}
	}
}

func TestHitGroup_DuplicateCategoryCountsTwice(t *testing.T) {
	g := NewHitGroup("CUST1")
	g.AddHit(Hit{Score: 100}, CategoryPhone)
	g.AddHit(Hit{Score: 50}, CategoryPhone)

	if g.Categories().Count() != 1 {
		t.Errorf("Categories().Count() = %d, want 1", g.Categories().Count())
	}
	if g.AverageScore() != 75 {
		t.Errorf("AverageScore() = %f, want 75 (both phone hits count)", g.AverageScore())
	}
}
