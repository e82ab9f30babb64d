// Package document aggregates the requirements of one project and reports on
// their verification progress.
package document

import (
	"strconv"
	"strings"
	"time"

	"github.com/felixgeelhaar/reqtrack/pkg/domain/requirement"
)

// TimestampLayout is the layout of the generation time line in reports.
const TimestampLayout = "2006-01-02 15:04:05"

// now is the clock used for creation and report timestamps.
var now = time.Now

// Document owns the ordered requirements of a project.
// It performs no locking; callers sharing a Document across goroutines
// must serialize access themselves.
type Document struct {
	ProjectName  string                     `json:"project_name" yaml:"project_name"`
	CreatedDate  time.Time                  `json:"created_date" yaml:"created_date"`
	requirements []*requirement.Requirement
}

// New creates an empty document for a project.
func New(projectName string) *Document {
	return &Document{
		ProjectName: projectName,
		CreatedDate: now(),
	}
}

// AddRequirement appends r. No validation or id uniqueness check is done.
func (d *Document) AddRequirement(r *requirement.Requirement) {
	d.requirements = append(d.requirements, r)
}

// Requirements returns the owned requirements in insertion order. The slice
// is capped so appending to it never touches the document's storage.
func (d *Document) Requirements() []*requirement.Requirement {
	n := len(d.requirements)
	return d.requirements[:n:n]
}

// Len returns the number of requirements in the document.
func (d *Document) Len() int {
	return len(d.requirements)
}

// RequirementsByType returns the requirements of the given type in insertion
// order. The returned pointers are the document's own records.
func (d *Document) RequirementsByType(t requirement.Type) []*requirement.Requirement {
	matched := []*requirement.Requirement{}
	for _, r := range d.requirements {
		if r.Type == t {
			matched = append(matched, r)
		}
	}
	return matched
}

// CountByStatus returns the number of requirements with the given status.
func (d *Document) CountByStatus(status requirement.VerificationStatus) int {
	count := 0
	for _, r := range d.requirements {
		if r.VerificationStatus == status {
			count++
		}
	}
	return count
}

// CompletionPercentage returns verified/total*100, or 0 for an empty document.
func (d *Document) CompletionPercentage() float64 {
	total := len(d.requirements)
	if total == 0 {
		return 0
	}
	return float64(d.CountByStatus(requirement.StatusVerified)) / float64(total) * 100
}

// GenerateReport renders the plain-text progress report. The timestamp line
// reflects generation time, not document creation.
func (d *Document) GenerateReport() string {
	s := d.Summary()

	var b strings.Builder
	b.WriteString("Requirements Report - " + s.Project + "\n")
	b.WriteString(s.GeneratedAt.Format(TimestampLayout) + "\n")
	b.WriteString("\n")
	b.WriteString("Total requirements: " + strconv.Itoa(s.Total) + "\n")
	b.WriteString("Verified requirements: " + strconv.Itoa(s.Verified) + "\n")
	b.WriteString("Completion percentage: " + s.CompletionText() + "%\n")
	return b.String()
}

// FormatPercentage renders pct with the fewest digits that represent it
// exactly, keeping at least one decimal: 100 -> "100.0", 0 -> "0.0",
// 50.5 -> "50.5".
func FormatPercentage(pct float64) string {
	out := strconv.FormatFloat(pct, 'f', -1, 64)
	if !strings.Contains(out, ".") {
		out += ".0"
	}
	return out
}
