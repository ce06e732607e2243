package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexguard/lexguard/internal/infrastructure/wiring"
	"github.com/lexguard/lexguard/pkg/domain/legal"
)

var (
	reviewType       string
	reviewUrgency    string
	reviewRequiredBy string
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Request and advance legal reviews",
}

var reviewRequestCmd = &cobra.Command{
	Use:   "request <file>",
	Short: "Request a legal review of a document",
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

		rt, err := legal.ParseReviewType(reviewType)
		if err != nil {
			return err
		}
		urgency := legal.UrgencyNormal
		if reviewUrgency != "" {
			if urgency, err = legal.ParseUrgency(reviewUrgency); err != nil {
				return err
			}
		}

		path := args[0]
		// #nosec G304 -- The user names the document to review.
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}
		documentID := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		ws.Documents.Put(documentID, string(content))

		// Compliance reviews are seeded from check results, so run the
		// rule set first.
		if rt == legal.ReviewComplianceCheck {
			if _, err := ws.Compliance.CheckCompliance(cmd.Context(), documentID, string(content), nil); err != nil {
				return fmt.Errorf("compliance check failed: %w", err)
			}
		}

		review, err := ws.Legal.RequestLegalReview(cmd.Context(), documentID, rt, urgency, reviewRequiredBy)
		if err != nil {
			return err
		}

		fmt.Printf("Review %s created (%s, urgency %s)\n", review.ID, review.ReviewType, review.Urgency)
		fmt.Printf("Due: %s\n", review.DueDate.Format("2006-01-02"))
		if len(review.Issues) == 0 {
			fmt.Println("No automated issues identified.")
		}
		for _, issue := range review.Issues {
			fmt.Printf("  - [%s] %s: %s\n", issue.Severity, issue.Title, issue.Description)
		}
		if review.FollowUpRequired {
			fmt.Println("Follow-up required: critical issues present.")
		}
		return nil
	},
}

var reviewTransitionCmd = &cobra.Command{
	Use:   "transition <review-id> <event>",
	Short: "Advance a review (begin, complete, escalate, flag_followup, resume)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := getProjectRoot()
		if err != nil {
			return fmt.Errorf("resolve project path: %w", err)
		}
		ws, err := wiring.NewWorkspace(root)
		if err != nil {
			return err
		}

		review, err := ws.Legal.TransitionReview(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Review %s is now %s\n", review.ID, review.Status)
		return nil
	},
}

var reviewListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored legal reviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := getProjectRoot()
		if err != nil {
			return fmt.Errorf("resolve project path: %w", err)
		}
		ws, err := wiring.NewWorkspace(root)
		if err != nil {
			return err
		}

		reviews, err := ws.Repo.LoadReviews()
		if err != nil {
			return err
		}
		if len(reviews) == 0 {
			fmt.Println("No reviews on record.")
			return nil
		}
		for _, r := range reviews {
			fmt.Printf("%s  %-18s %-10s %-18s due %s  issues=%d\n",
				r.ID, r.ReviewType, r.Urgency, r.Status, r.DueDate.Format("2006-01-02"), len(r.Issues))
		}
		return nil
	},
}

func init() {
	reviewRequestCmd.Flags().StringVar(&reviewType, "type", string(legal.ReviewComplianceCheck), "Review type (compliance_check, contract_review, estate_planning, ...)")
	reviewRequestCmd.Flags().StringVar(&reviewUrgency, "urgency", "", "Urgency (immediate, high, normal, low)")
	reviewRequestCmd.Flags().StringVar(&reviewRequiredBy, "required-by", "", "Who or what requires this review")
	reviewCmd.AddCommand(reviewRequestCmd)
	reviewCmd.AddCommand(reviewTransitionCmd)
	reviewCmd.AddCommand(reviewListCmd)
	RootCmd.AddCommand(reviewCmd)
}
