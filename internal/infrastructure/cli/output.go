package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/felixgeelhaar/reqtrack/pkg/application"
	"github.com/felixgeelhaar/reqtrack/pkg/domain/document"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// writeReport renders the document report in the requested format. Text is
// the plain report; json and yaml encode the report summary.
func writeReport(w io.Writer, doc *document.Document, format string) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		_, err := io.WriteString(w, doc.GenerateReport())
		return err
	case FormatJSON:
		return writeJSON(w, doc.Summary())
	case FormatYAML:
		return writeYAML(w, doc.Summary())
	default:
		return NewCLIError(fmt.Sprintf("unsupported format %q", format), "Use one of text, json, yaml", nil)
	}
}

// writeIssues lists validation problems per requirement.
func writeIssues(w io.Writer, issues []application.RequirementIssues) {
	for _, is := range issues {
		fmt.Fprintf(w, "%s %s\n", statusErr.Render("✗"), labelFor(is.ID, is.Title))
		for _, e := range is.Errors {
			fmt.Fprintf(w, "    - %s\n", e)
		}
		if len(is.Missing) > 0 {
			fmt.Fprintf(w, "    missing SMART: %s\n", strings.Join(is.Missing, ", "))
		}
	}
}

func labelFor(id, title string) string {
	if title == "" {
		return id
	}
	return fmt.Sprintf("%s (%s)", id, title)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
