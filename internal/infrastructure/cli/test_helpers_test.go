package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/reqtrack/internal/infrastructure/config"
	"github.com/felixgeelhaar/reqtrack/internal/infrastructure/wiring"
)

const validManifest = `project: Inventory Management System
requirements:
  - id: REQ-001
    title: Product Registration
    description: The system must allow registering new products with name, SKU and price
    type: functional
    priority: 5
    smart: {specific: true, measurable: true, achievable: true, relevant: true, time_bound: true}
    verify: true
    notes: Reviewed and approved by the technical team
  - id: REQ-002
    title: Response Time
    description: Product searches must answer within 2 seconds
    type: non_functional
    priority: 4
    smart: {specific: true, measurable: true, achievable: true, relevant: true, time_bound: true}
`

const invalidManifest = `project: Broken
requirements:
  - id: REQ-BAD
    title: ""
    description: Missing a title
    type: business
    priority: 9
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "requirements.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func testServices(t *testing.T) *wiring.AppServices {
	t.Helper()
	return wiring.BuildWithConfig(config.Default(), io.Discard)
}

// resetFlags restores package-level flag values after a test drives RootCmd.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		configDir, logLevel = ".", ""
		reportFormat, reportVerify, reportNotes, reportWatch = "", false, "", false
		validateFormat = FormatText
		listType, listStatus = "", ""
		RootCmd.SetArgs(nil)
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
	})
}
