package document

import (
	"time"

	"github.com/felixgeelhaar/reqtrack/pkg/domain/requirement"
)

// Summary is the machine-readable form of a report.
type Summary struct {
	Project              string         `json:"project" yaml:"project"`
	GeneratedAt          time.Time      `json:"generated_at" yaml:"generated_at"`
	Total                int            `json:"total" yaml:"total"`
	Verified             int            `json:"verified" yaml:"verified"`
	Rejected             int            `json:"rejected" yaml:"rejected"`
	Pending              int            `json:"pending" yaml:"pending"`
	CompletionPercentage float64        `json:"completion_percentage" yaml:"completion_percentage"`
	ByType               map[string]int `json:"by_type" yaml:"by_type"`
}

// Summary computes the report figures at the current time.
func (d *Document) Summary() Summary {
	s := Summary{
		Project:              d.ProjectName,
		GeneratedAt:          now(),
		Total:                len(d.requirements),
		Verified:             d.CountByStatus(requirement.StatusVerified),
		Rejected:             d.CountByStatus(requirement.StatusRejected),
		CompletionPercentage: d.CompletionPercentage(),
		ByType:               make(map[string]int),
	}
	// Zero-value statuses count as pending.
	s.Pending = s.Total - s.Verified - s.Rejected

	for _, r := range d.requirements {
		s.ByType[r.Type.String()]++
	}
	return s
}

// CompletionText is the completion percentage as printed in reports: "0" for
// an empty document, otherwise FormatPercentage.
func (s Summary) CompletionText() string {
	if s.Total == 0 {
		return "0"
	}
	return FormatPercentage(s.CompletionPercentage)
}
