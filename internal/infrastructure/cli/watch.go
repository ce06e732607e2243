package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/lexguard/lexguard/internal/infrastructure/watch"
	"github.com/lexguard/lexguard/internal/infrastructure/wiring"
	"github.com/lexguard/lexguard/pkg/domain"
	"github.com/lexguard/lexguard/pkg/storage"
)

var watchDebounceMs int

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the workspace rule file and re-validate it on change",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := getProjectRoot()
		if err != nil {
			return fmt.Errorf("resolve project path: %w", err)
		}

		repo := storage.NewFilesystemRepository(root)
		if err := repo.Initialize(); err != nil {
			return err
		}

		ws, err := wiring.NewWorkspace(root)
		if err != nil {
			return err
		}
		fmt.Printf("Rule set loaded: %d rules. Watching for changes...\n", ws.Registry.Len())

		reload := func() {
			registry, err := wiring.BuildRegistry(repo, ws.Conditions, domain.SystemClock{})
			if err != nil {
				fmt.Printf("[ERROR] rule set rejected: %v\n", err)
				return
			}
			fmt.Printf("Rule set reloaded: %d rules.\n", registry.Len())
		}

		watcher, err := watch.NewRuleWatcher(
			filepath.Join(root, storage.LexguardDir),
			time.Duration(watchDebounceMs)*time.Millisecond,
			reload,
			slog.Default(),
		)
		if err != nil {
			return err
		}
		return watcher.Run(cmd.Context())
	},
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounceMs, "debounce", 500, "Debounce window in milliseconds")
	RootCmd.AddCommand(watchCmd)
}
