package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "lexguard",
	Version: Version,
	Short:   "Rule-based document compliance engine",
	Long: `Lexguard evaluates documents against a registry of regulatory and
legal compliance rules. It answers:
1. Which rules apply to this document?
2. Where does the document fall short?
3. What should happen next, and by when?`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func getProjectRoot() (string, error) {
	return os.Getwd()
}
