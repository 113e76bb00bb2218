package domain

import "testing"

func TestRSVPStatisticsValidate(t *testing.T) {
	var stats RSVPStatistics
	for _, status := range []string{RSVPYes, RSVPYes, RSVPNo, RSVPMaybe, "garbage"} {
		stats.Count(status)
	}
	if err := stats.Validate(); err != nil {
		t.Fatalf("counted statistics should validate: %v", err)
	}
	if stats.Total != 4 || stats.Yes != 2 || stats.No != 1 || stats.Maybe != 1 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
}

func TestRSVPStatisticsValidateMismatch(t *testing.T) {
	bad := RSVPStatistics{Total: 5, Yes: 1, No: 1, Maybe: 1}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected mismatch error")
	}
	negative := RSVPStatistics{Total: -1}
	if err := negative.Validate(); err == nil {
		t.Fatal("expected negative count error")
	}
}

func TestValidRSVPStatus(t *testing.T) {
	for _, s := range []string{RSVPYes, RSVPNo, RSVPMaybe} {
		if !ValidRSVPStatus(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	if ValidRSVPStatus("attending") {
		t.Fatal("unexpected valid status")
	}
	if ValidRSVPStatus("") {
		t.Fatal("empty status should be invalid")
	}
}

func TestNormalizeGuestName(t *testing.T) {
	if got := NormalizeGuestName("  Ada Lovelace "); got != "ada lovelace" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}

func TestNormalizeRole(t *testing.T) {
	cases := map[string]string{
		"admin":     RoleAdmin,
		"editor":    RoleEditor,
		"edit":      RoleEditor,
		"viewer":    RoleViewer,
		"view-only": RoleViewer,
		"view":      RoleViewer,
		"owner":     "",
		"":          "",
	}
	for in, want := range cases {
		if got := NormalizeRole(in); got != want {
			t.Fatalf("NormalizeRole(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSummarizeBudget(t *testing.T) {
	items := []BudgetItem{
		{Category: "venue", Allocated: 1000, Spent: 1200},
		{Category: "catering", Allocated: 500, Spent: 100},
	}
	sum := SummarizeBudget(items)
	if sum.Allocated != 1500 || sum.Spent != 1300 {
		t.Fatalf("unexpected totals: %+v", sum)
	}
	if sum.Remaining != 200 {
		t.Fatalf("unexpected remaining: %v", sum.Remaining)
	}
}

func TestSummarizeBudgetNegativeRemaining(t *testing.T) {
	sum := SummarizeBudget([]BudgetItem{{Allocated: 100, Spent: 350}})
	if sum.Remaining != -250 {
		t.Fatalf("over-budget must not be clamped, got %v", sum.Remaining)
	}
}
