package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/internal/config"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/internal/logging"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/internal/tui"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/internal/writers/cff"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/internal/writers/codemeta"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/internal/writers/fortran"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/internal/writers/julia"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/internal/writers/mkdocs"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/internal/writers/packagejson"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/internal/writers/pomxml"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/internal/writers/pyproject"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/internal/writers/rust"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync project metadata into the target files",
	Long: `Sync the canonical project metadata into all enabled target files.

The input file is discovered in the current directory (.somesy.toml,
somesy.toml, then pyproject.toml with a [tool.somesy] section) unless
-i is given. Target files that do not exist are skipped, except
CITATION.cff and codemeta.json, which are created.

Examples:
  somesy sync                      # Sync everything the input enables
  somesy sync -i meta/somesy.toml  # Explicit input file
  somesy sync --no-sync-cff        # Skip CITATION.cff this time`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

var (
	syncInputFile string

	syncNoCFF           bool
	syncCFFFile         string
	syncNoPyproject     bool
	syncPyprojectFile   string
	syncNoPackageJSON   bool
	syncPackageJSONFile string
	syncNoCodemeta      bool
	syncCodemetaFile    string
	syncNoMkDocs        bool
	syncMkDocsFile      string
	syncNoJulia         bool
	syncJuliaFile       string
	syncNoFortran       bool
	syncFortranFile     string
	syncNoRust          bool
	syncRustFile        string
	syncNoPomXML        bool
	syncPomXMLFile      string
)

func init() {
	rootCmd.AddCommand(syncCmd)

	f := syncCmd.Flags()
	f.StringVarP(&syncInputFile, "input-file", "i", "", "somesy input file (default: auto-discover)")

	f.BoolVar(&syncNoCFF, "no-sync-cff", false, "Do not sync CITATION.cff")
	f.StringVarP(&syncCFFFile, "cff-file", "c", "", "CITATION.cff file path")
	f.BoolVar(&syncNoPyproject, "no-sync-pyproject", false, "Do not sync pyproject.toml")
	f.StringVarP(&syncPyprojectFile, "pyproject-file", "p", "", "pyproject.toml file path")
	f.BoolVar(&syncNoPackageJSON, "no-sync-package-json", false, "Do not sync package.json")
	f.StringVar(&syncPackageJSONFile, "package-json-file", "", "package.json file path")
	f.BoolVar(&syncNoCodemeta, "no-sync-codemeta", false, "Do not sync codemeta.json")
	f.StringVar(&syncCodemetaFile, "codemeta-file", "", "codemeta.json file path")
	f.BoolVar(&syncNoMkDocs, "no-sync-mkdocs", false, "Do not sync mkdocs.yml")
	f.StringVar(&syncMkDocsFile, "mkdocs-file", "", "mkdocs.yml file path")
	f.BoolVar(&syncNoJulia, "no-sync-julia", false, "Do not sync Project.toml")
	f.StringVar(&syncJuliaFile, "julia-file", "", "Julia Project.toml file path")
	f.BoolVar(&syncNoFortran, "no-sync-fortran", false, "Do not sync fpm.toml")
	f.StringVar(&syncFortranFile, "fortran-file", "", "fpm.toml file path")
	f.BoolVar(&syncNoRust, "no-sync-rust", false, "Do not sync Cargo.toml")
	f.StringVar(&syncRustFile, "rust-file", "", "Cargo.toml file path")
	f.BoolVar(&syncNoPomXML, "no-sync-pom-xml", false, "Do not sync pom.xml")
	f.StringVar(&syncPomXMLFile, "pom-xml-file", "", "pom.xml file path")
}

func runSync(cmd *cobra.Command, args []string) error {
	inputPath, err := config.Discover(".", syncInputFile)
	if err != nil {
		return err
	}

	meta, opts, err := config.Load(inputPath)
	if err != nil {
		return err
	}
	syncOverride(cmd).Apply(&opts)

	if err := opts.Validate(); err != nil {
		return err
	}
	if err := meta.Validate(); err != nil {
		return err
	}

	log := logging.NewConsoleLogger(opts.ShowInfo, opts.Verbose, opts.Debug)
	log.Info("using input file %s", inputPath)

	type status struct {
		path string
		err  error
		skip bool
	}
	var results []status
	var failed error

	for _, t := range syncTargets(opts, log) {
		if t.disabled {
			continue
		}
		w, err := t.open()
		if errors.Is(err, somesy.ErrTargetNotFound) {
			log.Verbose("skipping %s, file not found", t.path)
			results = append(results, status{path: t.path, skip: true})
			continue
		}
		if err == nil {
			if err = w.Sync(meta); err == nil {
				err = w.Save("")
			}
		}
		if err != nil {
			log.Error("syncing %s failed: %v", t.path, err)
			if failed == nil {
				failed = err
			}
		} else {
			log.Verbose("synced %s", t.path)
		}
		results = append(results, status{path: t.path, err: err})
	}

	if opts.ShowInfo || opts.Verbose || opts.Debug {
		for _, r := range results {
			switch {
			case r.skip:
				fmt.Fprintln(os.Stdout, tui.SkippedStyle.Render("  - "+r.path+" (skipped)"))
			case r.err != nil:
				fmt.Fprintln(os.Stdout, tui.FailedStyle.Render("  ✗ "+r.path))
			default:
				fmt.Fprintln(os.Stdout, tui.SuccessStyle.Render("  ✓ "+r.path))
			}
		}
	}
	if failed != nil {
		return failed
	}
	log.Info("synchronization done")
	return nil
}

// syncOverride collects the CLI flags the user actually set.
func syncOverride(cmd *cobra.Command) config.Override {
	var ov config.Override
	boolFlag := func(name string, v *bool) *bool {
		if cmd.Flags().Changed(name) {
			return v
		}
		return nil
	}
	strFlag := func(name string, v *string) *string {
		if cmd.Flags().Changed(name) {
			return v
		}
		return nil
	}
	ov.NoSyncCFF = boolFlag("no-sync-cff", &syncNoCFF)
	ov.CFFFile = strFlag("cff-file", &syncCFFFile)
	ov.NoSyncPyproject = boolFlag("no-sync-pyproject", &syncNoPyproject)
	ov.PyprojectFile = strFlag("pyproject-file", &syncPyprojectFile)
	ov.NoSyncPackageJSON = boolFlag("no-sync-package-json", &syncNoPackageJSON)
	ov.PackageJSONFile = strFlag("package-json-file", &syncPackageJSONFile)
	ov.NoSyncCodemeta = boolFlag("no-sync-codemeta", &syncNoCodemeta)
	ov.CodemetaFile = strFlag("codemeta-file", &syncCodemetaFile)
	ov.NoSyncMkDocs = boolFlag("no-sync-mkdocs", &syncNoMkDocs)
	ov.MkDocsFile = strFlag("mkdocs-file", &syncMkDocsFile)
	ov.NoSyncJulia = boolFlag("no-sync-julia", &syncNoJulia)
	ov.JuliaFile = strFlag("julia-file", &syncJuliaFile)
	ov.NoSyncFortran = boolFlag("no-sync-fortran", &syncNoFortran)
	ov.FortranFile = strFlag("fortran-file", &syncFortranFile)
	ov.NoSyncRust = boolFlag("no-sync-rust", &syncNoRust)
	ov.RustFile = strFlag("rust-file", &syncRustFile)
	ov.NoSyncPomXML = boolFlag("no-sync-pom-xml", &syncNoPomXML)
	ov.PomXMLFile = strFlag("pom-xml-file", &syncPomXMLFile)
	if cmd.Flags().Changed("show-info") {
		ov.ShowInfo = &flagShowInfo
	}
	if cmd.Flags().Changed("verbose") {
		ov.Verbose = &flagVerbose
	}
	if cmd.Flags().Changed("debug") {
		ov.Debug = &flagDebug
	}
	return ov
}

type syncTarget struct {
	path     string
	disabled bool
	open     func() (somesy.Writer, error)
}

// syncTargets builds the target list from the effective options.
// CITATION.cff and codemeta.json are created when missing, every other
// target requires an existing file.
func syncTargets(opts config.Options, log somesy.Logger) []syncTarget {
	return []syncTarget{
		{opts.CFFFile, opts.NoSyncCFF, func() (somesy.Writer, error) {
			return cff.New(opts.CFFFile, true, log)
		}},
		{opts.PyprojectFile, opts.NoSyncPyproject, func() (somesy.Writer, error) {
			return pyproject.New(opts.PyprojectFile, log)
		}},
		{opts.PackageJSONFile, opts.NoSyncPackageJSON, func() (somesy.Writer, error) {
			return packagejson.New(opts.PackageJSONFile, log)
		}},
		{opts.CodemetaFile, opts.NoSyncCodemeta, func() (somesy.Writer, error) {
			return codemeta.New(opts.CodemetaFile, true, log)
		}},
		{opts.MkDocsFile, opts.NoSyncMkDocs, func() (somesy.Writer, error) {
			return mkdocs.New(opts.MkDocsFile, log)
		}},
		{opts.JuliaFile, opts.NoSyncJulia, func() (somesy.Writer, error) {
			return julia.New(opts.JuliaFile, log)
		}},
		{opts.FortranFile, opts.NoSyncFortran, func() (somesy.Writer, error) {
			return fortran.New(opts.FortranFile, log)
		}},
		{opts.RustFile, opts.NoSyncRust, func() (somesy.Writer, error) {
			return rust.New(opts.RustFile, log)
		}},
		{opts.PomXMLFile, opts.NoSyncPomXML, func() (somesy.Writer, error) {
			return pomxml.New(opts.PomXMLFile, log)
		}},
	}
}
