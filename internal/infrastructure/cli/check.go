package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexguard/lexguard/internal/infrastructure/wiring"
	"github.com/lexguard/lexguard/pkg/domain/compliance"
)

var (
	checkDocID    string
	checkCategory string
	checkJSON     bool
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Run the compliance rule set against a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := getProjectRoot()
		if err != nil {
			return fmt.Errorf("resolve project path: %w", err)
		}
		ws, err := wiring.NewWorkspace(root)
		if err != nil {
			return err
		}
		if err := ws.Repo.Initialize(); err != nil {
			return err
		}

		path := args[0]
		// #nosec G304 -- The user names the document to check.
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}

		documentID := checkDocID
		if documentID == "" {
			documentID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		metadata := map[string]interface{}{}
		if checkCategory != "" {
			metadata["category"] = checkCategory
		}

		checks, err := ws.Compliance.CheckCompliance(cmd.Context(), documentID, string(content), metadata)
		if err != nil {
			return fmt.Errorf("compliance check failed: %w", err)
		}

		if checkJSON {
			out, err := json.MarshalIndent(checks, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
		} else {
			printChecks(checks)
		}

		for _, c := range checks {
			if c.Status == compliance.StatusNonCompliant {
				return fmt.Errorf("document is non-compliant with %s", c.RuleName)
			}
		}
		return nil
	},
}

func printChecks(checks []compliance.ComplianceCheck) {
	if len(checks) == 0 {
		fmt.Println("No compliance rules apply to this document.")
		return
	}

	for _, c := range checks {
		fmt.Printf("[%s] %s: %s\n", strings.ToUpper(string(c.Severity)), c.RuleName, c.Status)
		for _, f := range c.Findings {
			fmt.Printf("  - (%s/%s) %s\n", f.Type, f.Severity, f.Description)
			for _, e := range f.Evidence {
				fmt.Printf("      evidence: %q\n", e)
			}
		}
		for _, r := range c.Recommendations {
			fmt.Printf("  > %s (%s, %s)\n", r.Title, r.Priority, r.Timeline)
		}
		if c.ReviewRequired {
			fmt.Println("  ! human review required")
		}
	}
}

func init() {
	checkCmd.Flags().StringVar(&checkDocID, "doc-id", "", "Document ID (defaults to the file name)")
	checkCmd.Flags().StringVar(&checkCategory, "category", "", "Document category metadata (e.g. privacy, estate_planning)")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Emit results as JSON")
	RootCmd.AddCommand(checkCmd)
}
