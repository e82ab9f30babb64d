package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/felixgeelhaar/reqtrack/pkg/domain/document"
	"github.com/felixgeelhaar/reqtrack/pkg/domain/requirement"
	"github.com/felixgeelhaar/reqtrack/pkg/storage"
)

// ManifestSource loads requirement manifests.
type ManifestSource interface {
	Load(ctx context.Context, path string) (*storage.Manifest, error)
}

// OpenOptions controls how a manifest becomes a document.
type OpenOptions struct {
	// VerifyAll verifies every requirement, not only those marked verify.
	VerifyAll bool
	// Notes are used for requirements verified through VerifyAll that carry
	// no notes of their own.
	Notes string
}

// RequirementIssues pairs a requirement with its validation errors.
type RequirementIssues struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Errors   []string `json:"errors" yaml:"errors"`
	Missing  []string `json:"missing_smart,omitempty" yaml:"missing_smart,omitempty"`
	Verified bool     `json:"verified" yaml:"verified"`
}

type DocumentService struct {
	source ManifestSource
	logger *slog.Logger
}

func NewDocumentService(source ManifestSource, logger *slog.Logger) *DocumentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentService{source: source, logger: logger}
}

// Open loads the manifest at path and builds a document from it.
func (s *DocumentService) Open(ctx context.Context, path string, opts OpenOptions) (*document.Document, error) {
	m, err := s.source.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return s.Build(m, opts)
}

// Build turns a manifest into a document, verifying requirements as asked.
// Entries without an id get a generated one.
func (s *DocumentService) Build(m *storage.Manifest, opts OpenOptions) (*document.Document, error) {
	doc := document.New(m.Project)

	for i, entry := range m.Requirements {
		typ, err := requirement.ParseType(entry.Type)
		if err != nil {
			return nil, fmt.Errorf("requirement %d (%s): %w", i+1, entry.Title, err)
		}

		id := entry.ID
		if id == "" {
			id = requirement.NewID()
			s.logger.Debug("generated requirement id", "index", i+1, "requirement_id", id)
		}

		r := requirement.New(id, entry.Title, entry.Description, typ, entry.Priority,
			requirement.WithSMART(
				entry.SMART.Specific,
				entry.SMART.Measurable,
				entry.SMART.Achievable,
				entry.SMART.Relevant,
				entry.SMART.TimeBound,
			))

		if entry.Verify || opts.VerifyAll {
			notes := entry.Notes
			if notes == "" {
				notes = opts.Notes
			}
			s.verify(r, notes)
		}

		doc.AddRequirement(r)
	}

	s.logger.Info("document built",
		"project", doc.ProjectName,
		"requirements", doc.Len(),
		"verified", doc.CountByStatus(requirement.StatusVerified))
	return doc, nil
}

func (s *DocumentService) verify(r *requirement.Requirement, notes string) {
	r.Verify(notes)

	if r.VerificationStatus.IsRejected() {
		s.logger.Warn("requirement rejected",
			"requirement_id", r.ID,
			"notes", r.VerificationNotes)
		return
	}
	s.logger.Debug("requirement verified", "requirement_id", r.ID)
}

// Issues returns the validation problems of every invalid requirement, in
// document order.
func (s *DocumentService) Issues(doc *document.Document) []RequirementIssues {
	var issues []RequirementIssues
	for _, r := range doc.Requirements() {
		errs := r.Validate()
		if len(errs) == 0 {
			continue
		}
		issues = append(issues, RequirementIssues{
			ID:       r.ID,
			Title:    r.Title,
			Errors:   errs,
			Missing:  r.MissingSMART(),
			Verified: r.VerificationStatus.IsVerified(),
		})
	}
	return issues
}

// Filter returns the requirements of the named type, or all of them when
// typeName is empty.
func (s *DocumentService) Filter(doc *document.Document, typeName string) ([]*requirement.Requirement, error) {
	if typeName == "" {
		return doc.Requirements(), nil
	}
	typ, err := requirement.ParseType(typeName)
	if err != nil {
		return nil, err
	}
	return doc.RequirementsByType(typ), nil
}

// FilterStatus keeps the requirements whose verification status matches
// statusName. An empty name keeps everything.
func (s *DocumentService) FilterStatus(reqs []*requirement.Requirement, statusName string) ([]*requirement.Requirement, error) {
	if statusName == "" {
		return reqs, nil
	}
	status, err := requirement.ParseVerificationStatus(strings.ToLower(strings.TrimSpace(statusName)))
	if err != nil {
		return nil, err
	}

	matched := []*requirement.Requirement{}
	for _, r := range reqs {
		if r.VerificationStatus == status {
			matched = append(matched, r)
		}
	}
	return matched, nil
}
