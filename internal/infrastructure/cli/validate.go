package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/felixgeelhaar/reqtrack/pkg/application"
	"github.com/spf13/cobra"
)

var validateFormat string

var validateCmd = &cobra.Command{
	Use:   "validate [manifest]",
	Short: "Check every requirement for missing fields and SMART criteria",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices(cmd)
		if err != nil {
			return err
		}
		path, err := services.Loader.ResolvePath(manifestArg(args))
		if err != nil {
			return err
		}
		return runValidate(cmd.Context(), cmd.OutOrStdout(), services.Documents, path, validateFormat)
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateFormat, "format", "f", FormatText, "Output format: text, json")
	RootCmd.AddCommand(validateCmd)
}

func runValidate(ctx context.Context, w io.Writer, docs *application.DocumentService, path, format string) error {
	doc, err := docs.Open(ctx, path, application.OpenOptions{})
	if err != nil {
		return err
	}
	issues := docs.Issues(doc)

	switch format {
	case FormatJSON:
		if issues == nil {
			issues = []application.RequirementIssues{}
		}
		if err := writeJSON(w, issues); err != nil {
			return err
		}
	case "", FormatText:
		if len(issues) == 0 {
			fmt.Fprintf(w, "%s All %d requirements are valid.\n", statusDone.Render("✓"), doc.Len())
			return nil
		}
		writeIssues(w, issues)
		fmt.Fprintf(w, "\n%d of %d requirements are invalid.\n", len(issues), doc.Len())
	default:
		return NewCLIError(fmt.Sprintf("unsupported format %q", format), "Use one of text, json", nil)
	}

	if len(issues) > 0 {
		return fmt.Errorf("%d of %d: %w", len(issues), doc.Len(), ErrInvalidRequirements)
	}
	return nil
}
