package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/internal/config"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/internal/scaffold"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/internal/tui"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter somesy input file",
	Long: `Create a somesy.toml starter file in the current directory.

On a terminal the command asks for the project name, description and
the first author; in scripts the same values can be passed as flags.
An existing input file is never overwritten.

Examples:
  somesy init                       # Interactive
  somesy init --name demo --description "A demo" \
      --author-given-names Jane --author-family-names Doe \
      --author-email jane@example.org`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var initConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Write sync settings into the somesy input file",
	Long: `Store synchronization settings in the somesy input file.

The input file is discovered like for sync. On a terminal each target
can be enabled or disabled and given a file path; in scripts the
currently effective settings are written as they are. The settings land
in the [config] section of somesy.toml, or [tool.somesy.config] of
pyproject.toml, without disturbing the rest of the file.

Examples:
  somesy init config
  somesy init config -i meta/somesy.toml`,
	Args: cobra.NoArgs,
	RunE: runInitConfig,
}

var (
	initParams      scaffold.Params
	initConfigInput string
)

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.AddCommand(initConfigCmd)

	initConfigCmd.Flags().StringVarP(&initConfigInput, "input-file", "i", "", "somesy input file (default: auto-discover)")

	f := initCmd.Flags()
	f.StringVar(&initParams.Name, "name", "", "Project name")
	f.StringVar(&initParams.Description, "description", "", "Project description")
	f.StringVar(&initParams.Version, "version", "", "Project version")
	f.StringVar(&initParams.License, "license", "", "SPDX license identifier")
	f.StringVar(&initParams.Repository, "repository", "", "Repository URL")
	f.StringVar(&initParams.Homepage, "homepage", "", "Homepage URL")
	f.StringVar(&initParams.AuthorGivenNames, "author-given-names", "", "Given names of the first author")
	f.StringVar(&initParams.AuthorFamilyNames, "author-family-names", "", "Family names of the first author")
	f.StringVar(&initParams.AuthorEmail, "author-email", "", "Email of the first author")
	f.StringVar(&initParams.AuthorOrcid, "author-orcid", "", "ORCID URL of the first author")
}

func runInit(cmd *cobra.Command, args []string) error {
	p := initParams

	if tui.IsInteractive() {
		fmt.Println(tui.TitleStyle.Render("somesy project setup"))
		prompter := tui.NewPrompter(os.Stdin, os.Stdout)
		ask := func(dst *string, question string) error {
			if *dst != "" {
				return nil
			}
			answer, err := prompter.Ask(question, *dst)
			if err != nil {
				return err
			}
			*dst = answer
			return nil
		}
		for _, q := range []struct {
			dst      *string
			question string
		}{
			{&p.Name, "Project name"},
			{&p.Description, "Project description"},
			{&p.Version, "Version (optional)"},
			{&p.License, "SPDX license (optional)"},
			{&p.Repository, "Repository URL (optional)"},
			{&p.AuthorGivenNames, "Author given names"},
			{&p.AuthorFamilyNames, "Author family names"},
			{&p.AuthorEmail, "Author email"},
			{&p.AuthorOrcid, "Author ORCID URL (optional)"},
		} {
			if err := ask(q.dst, q.question); err != nil {
				return err
			}
		}
	}

	if p.Name == "" || p.Description == "" ||
		p.AuthorGivenNames == "" || p.AuthorFamilyNames == "" || p.AuthorEmail == "" {
		return fmt.Errorf("%w: name, description and author name/email are required (pass them as flags in non-interactive mode)",
			somesy.ErrInvalidMetadata)
	}

	path := "somesy.toml"
	if err := scaffold.WriteInput(path, p); err != nil {
		return err
	}
	fmt.Println(tui.SuccessStyle.Render("created " + path))
	return nil
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	inputPath, err := config.Discover(".", initConfigInput)
	if err != nil {
		return err
	}
	_, opts, err := config.Load(inputPath)
	if err != nil {
		return err
	}

	if tui.IsInteractive() {
		fmt.Println(tui.TitleStyle.Render("somesy sync settings"))
		prompter := tui.NewPrompter(os.Stdin, os.Stdout)
		for _, t := range []struct {
			label string
			no    *bool
			file  *string
		}{
			{"CITATION.cff", &opts.NoSyncCFF, &opts.CFFFile},
			{"pyproject.toml", &opts.NoSyncPyproject, &opts.PyprojectFile},
			{"package.json", &opts.NoSyncPackageJSON, &opts.PackageJSONFile},
			{"codemeta.json", &opts.NoSyncCodemeta, &opts.CodemetaFile},
			{"mkdocs.yml", &opts.NoSyncMkDocs, &opts.MkDocsFile},
			{"Julia Project.toml", &opts.NoSyncJulia, &opts.JuliaFile},
			{"fpm.toml", &opts.NoSyncFortran, &opts.FortranFile},
			{"Cargo.toml", &opts.NoSyncRust, &opts.RustFile},
			{"pom.xml", &opts.NoSyncPomXML, &opts.PomXMLFile},
		} {
			enabled, err := prompter.Confirm("Sync "+t.label+"?", !*t.no)
			if err != nil {
				return err
			}
			*t.no = !enabled
			if !enabled {
				continue
			}
			answer, err := prompter.Ask(t.label+" path", *t.file)
			if err != nil {
				return err
			}
			*t.file = answer
		}
		if opts.ShowInfo, err = prompter.Confirm("Show a summary after each sync?", opts.ShowInfo); err != nil {
			return err
		}
		if opts.Verbose, err = prompter.Confirm("Verbose output?", opts.Verbose); err != nil {
			return err
		}
		if opts.Debug, err = prompter.Confirm("Debug output?", opts.Debug); err != nil {
			return err
		}
	}

	if err := config.WriteOptions(inputPath, opts); err != nil {
		return err
	}
	fmt.Println(tui.SuccessStyle.Render("updated " + inputPath))
	return nil
}
