package document

import (
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/reqtrack/pkg/domain/requirement"
)

func withClock(t *testing.T, ts time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = prev })
}

func smartRequirement(id string, typ requirement.Type) *requirement.Requirement {
	return requirement.New(id, "Title "+id, "Description "+id, typ, 3, requirement.WithAllSMART())
}

func TestGenerateReport_Empty(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.Local)
	withClock(t, ts)

	doc := New("Empty Project")
	want := "Requirements Report - Empty Project\n" +
		"2024-05-06 07:08:09\n" +
		"\n" +
		"Total requirements: 0\n" +
		"Verified requirements: 0\n" +
		"Completion percentage: 0%\n"

	if got := doc.GenerateReport(); got != want {
		t.Errorf("GenerateReport() =\n%q\nwant\n%q", got, want)
	}
}

func TestGenerateReport_InventoryScenario(t *testing.T) {
	doc := New("Inventory Management System")

	req := requirement.New("REQ-001", "Product Registration",
		"The system must allow registering new products with code, name, price and quantity",
		requirement.TypeFunctional, 5, requirement.WithAllSMART())
	req.Verify("approved")
	doc.AddRequirement(req)

	report := doc.GenerateReport()
	lines := strings.Split(report, "\n")

	if lines[0] != "Requirements Report - Inventory Management System" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if _, err := time.Parse(TimestampLayout, lines[1]); err != nil {
		t.Errorf("timestamp line %q does not match layout: %v", lines[1], err)
	}
	if lines[2] != "" {
		t.Errorf("expected blank third line, got %q", lines[2])
	}
	for _, want := range []string{
		"Total requirements: 1",
		"Verified requirements: 1",
		"Completion percentage: 100.0%",
	} {
		if !strings.Contains(report, want+"\n") {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestGenerateReport_UsesGenerationTime(t *testing.T) {
	withClock(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.Local))
	doc := New("P")

	withClock(t, time.Date(2025, 12, 31, 23, 59, 58, 0, time.Local))
	report := doc.GenerateReport()

	if !strings.Contains(report, "2025-12-31 23:59:58\n") {
		t.Errorf("expected generation timestamp in report:\n%s", report)
	}
	if strings.Contains(report, "2020-01-01") {
		t.Error("report must not use document creation time")
	}
}

func TestGenerateReport_FractionalPercentage(t *testing.T) {
	doc := New("P")
	for i, id := range []string{"a", "b", "c"} {
		r := smartRequirement(id, requirement.TypeUser)
		if i == 0 {
			r.Verify("ok")
		}
		doc.AddRequirement(r)
	}

	report := doc.GenerateReport()
	if !strings.Contains(report, "Completion percentage: 33.33333333333333%\n") {
		t.Errorf("unexpected percentage line:\n%s", report)
	}
}

func TestFormatPercentage(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{100, "100.0"},
		{50, "50.0"},
		{62.5, "62.5"},
		{100.0 / 3, "33.33333333333333"},
	}
	for _, tt := range tests {
		if got := FormatPercentage(tt.in); got != tt.want {
			t.Errorf("FormatPercentage(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestGenerateReport_NothingVerified(t *testing.T) {
	doc := New("P")
	doc.AddRequirement(smartRequirement("a", requirement.TypeUser))

	report := doc.GenerateReport()
	if !strings.Contains(report, "Completion percentage: 0.0%\n") {
		t.Errorf("non-empty document should report a float percentage:\n%s", report)
	}
}

func TestSummary_CompletionText(t *testing.T) {
	tests := []struct {
		name string
		s    Summary
		want string
	}{
		{"empty", Summary{}, "0"},
		{"none verified", Summary{Total: 2}, "0.0"},
		{"all verified", Summary{Total: 1, CompletionPercentage: 100}, "100.0"},
		{"half", Summary{Total: 4, CompletionPercentage: 50}, "50.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.CompletionText(); got != tt.want {
				t.Errorf("CompletionText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequirements_AppendDoesNotAlias(t *testing.T) {
	doc := New("P")
	doc.AddRequirement(smartRequirement("a", requirement.TypeUser))
	doc.AddRequirement(smartRequirement("b", requirement.TypeUser))
	doc.AddRequirement(smartRequirement("c", requirement.TypeUser))

	outside := append(doc.Requirements(), smartRequirement("x", requirement.TypeUser))
	doc.AddRequirement(smartRequirement("d", requirement.TypeUser))

	if outside[3].ID != "x" {
		t.Errorf("caller's slice was overwritten: got %s", outside[3].ID)
	}
	if got := doc.Requirements()[3].ID; got != "d" {
		t.Errorf("document element = %s, want d", got)
	}
}

func TestAddRequirement_KeepsOrderAndDuplicates(t *testing.T) {
	doc := New("P")
	first := smartRequirement("REQ-1", requirement.TypeBusiness)
	dup := smartRequirement("REQ-1", requirement.TypeBusiness)
	invalid := requirement.New("REQ-2", "", "", requirement.TypeUser, 0)

	doc.AddRequirement(first)
	doc.AddRequirement(dup)
	doc.AddRequirement(invalid)

	got := doc.Requirements()
	if doc.Len() != 3 || len(got) != 3 {
		t.Fatalf("expected 3 requirements, got %d", doc.Len())
	}
	if got[0] != first || got[1] != dup || got[2] != invalid {
		t.Error("insertion order not preserved")
	}
	if invalid.VerificationStatus != requirement.StatusPending {
		t.Error("adding must not verify")
	}
}

func TestRequirementsByType(t *testing.T) {
	doc := New("P")
	f1 := smartRequirement("F1", requirement.TypeFunctional)
	n1 := smartRequirement("N1", requirement.TypeNonFunctional)
	f2 := smartRequirement("F2", requirement.TypeFunctional)
	doc.AddRequirement(f1)
	doc.AddRequirement(n1)
	doc.AddRequirement(f2)

	got := doc.RequirementsByType(requirement.TypeFunctional)
	if len(got) != 2 || got[0] != f1 || got[1] != f2 {
		t.Errorf("unexpected functional requirements: %v", got)
	}

	if got := doc.RequirementsByType(requirement.TypeTechnical); len(got) != 0 {
		t.Errorf("expected no technical requirements, got %d", len(got))
	}
	if got := New("empty").RequirementsByType(requirement.TypeUser); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestRequirementsByType_SharesRecords(t *testing.T) {
	doc := New("P")
	doc.AddRequirement(smartRequirement("F1", requirement.TypeFunctional))

	doc.RequirementsByType(requirement.TypeFunctional)[0].Verify("through the filter")

	if doc.CountByStatus(requirement.StatusVerified) != 1 {
		t.Error("mutation through returned pointer should affect the document")
	}
}

func TestSummary(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	withClock(t, ts)

	doc := New("P")
	verified := smartRequirement("V", requirement.TypeFunctional)
	verified.Verify("ok")
	rejected := smartRequirement("R", requirement.TypeFunctional)
	rejected.Priority = 0
	rejected.Verify("nope")
	pending := smartRequirement("P", requirement.TypeTechnical)

	doc.AddRequirement(verified)
	doc.AddRequirement(rejected)
	doc.AddRequirement(pending)

	s := doc.Summary()
	if s.Project != "P" || !s.GeneratedAt.Equal(ts) {
		t.Errorf("unexpected header fields: %+v", s)
	}
	if s.Total != 3 || s.Verified != 1 || s.Rejected != 1 || s.Pending != 1 {
		t.Errorf("unexpected counts: %+v", s)
	}
	if s.ByType["functional"] != 2 || s.ByType["technical"] != 1 {
		t.Errorf("unexpected type counts: %v", s.ByType)
	}
	if s.CompletionPercentage != doc.CompletionPercentage() {
		t.Errorf("summary and document disagree on completion")
	}
}
