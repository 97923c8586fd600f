package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "somesy",
	Short: "Sync project metadata from one source of truth",
	Long: `somesy (sometimes you) keeps the software project metadata scattered
across CITATION.cff, pyproject.toml, package.json, codemeta.json and
friends in sync with a single canonical description.

Declare your project once, in somesy.toml or in [tool.somesy] of your
pyproject.toml, and somesy pushes names, versions, licenses, URLs and
contributor lists into every supported target file. Everything else in
those files, including comments and formatting, is left alone.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid project metadata
  11 - No somesy input file found
  12 - A target file is missing
  13 - A target file failed validation`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var (
	flagShowInfo bool
	flagVerbose  bool
	flagDebug    bool
)

func init() {
	// .env can carry SOMESY_* overrides, missing file is fine
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVarP(&flagShowInfo, "show-info", "s", false, "Show basic progress information")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "Enable debug output (implies verbose)")
}
