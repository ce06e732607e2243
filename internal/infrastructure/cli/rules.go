package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexguard/lexguard/internal/infrastructure/wiring"
	"github.com/lexguard/lexguard/pkg/domain/compliance"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect the active compliance rule set",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := getProjectRoot()
		if err != nil {
			return fmt.Errorf("resolve project path: %w", err)
		}
		ws, err := wiring.NewWorkspace(root)
		if err != nil {
			return err
		}

		for _, rule := range ws.Registry.List() {
			fmt.Printf("%-22s %-10s %-16s %s (%s, %s)\n",
				rule.ID, rule.Severity, rule.Category, rule.Name, rule.Regulation, rule.Jurisdiction)
		}
		return nil
	},
}

var rulesLintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check the rule set for definitions that cannot work as intended",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := getProjectRoot()
		if err != nil {
			return fmt.Errorf("resolve project path: %w", err)
		}
		ws, err := wiring.NewWorkspace(root)
		if err != nil {
			// Registry construction already rejects unknown conditions
			// and bad patterns; surface that as the lint result.
			return fmt.Errorf("rule set failed to load: %w", err)
		}

		var problems []string
		for _, rule := range ws.Registry.List() {
			problems = append(problems, lintRule(rule)...)
		}

		if len(problems) == 0 {
			fmt.Printf("%d rules, no problems found.\n", ws.Registry.Len())
			return nil
		}
		for _, p := range problems {
			fmt.Printf("[WARN] %s\n", p)
		}
		return fmt.Errorf("%d rule problems found", len(problems))
	},
}

func lintRule(rule *compliance.ComplianceRule) []string {
	var problems []string

	if len(rule.ValidationLogic.Rules) == 0 {
		problems = append(problems, fmt.Sprintf("%s: no validation steps; the rule can never produce findings", rule.ID))
	}
	if c := rule.ValidationLogic.Confidence; c < 0 || c > 1 {
		problems = append(problems, fmt.Sprintf("%s: confidence %v outside [0,1]", rule.ID, c))
	}
	if len(rule.Keywords) == 0 && len(rule.Patterns) == 0 {
		problems = append(problems, fmt.Sprintf("%s: no keywords or patterns; the rule only applies via category metadata", rule.ID))
	}

	for _, req := range rule.Requirements {
		for _, crit := range req.ValidationCriteria {
			// Probe with a field present so operator and value problems
			// surface; a missing field short-circuits to false.
			probe := map[string]interface{}{crit.Field: sampleFor(crit)}
			if _, err := compliance.EvaluateCriteria(crit, probe); err != nil {
				problems = append(problems, fmt.Sprintf("%s/%s: criteria on %q: %v", rule.ID, req.ID, crit.Field, err))
			}
		}
	}
	return problems
}

// sampleFor fabricates a probe value matching the criterion's expected
// type so lint exercises the operator path, not the type guards.
func sampleFor(crit compliance.ValidationCriteria) interface{} {
	switch crit.Operator {
	case compliance.OperatorGreaterThan, compliance.OperatorLessThan, compliance.OperatorBetween:
		return 0
	default:
		if s, ok := crit.Value.(string); ok {
			return s
		}
		return ""
	}
}

var rulesConditionsCmd = &cobra.Command{
	Use:   "conditions",
	Short: "List registered validation conditions",
	RunE: func(cmd *cobra.Command, args []string) error {
		conditions := compliance.DefaultConditions()
		fmt.Println(strings.Join(conditions.Names(), "\n"))
		return nil
	},
}

func init() {
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesLintCmd)
	rulesCmd.AddCommand(rulesConditionsCmd)
	RootCmd.AddCommand(rulesCmd)
}
