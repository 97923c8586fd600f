package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/internal/config"
)

var fillCmd = &cobra.Command{
	Use:   "fill [TEMPLATE_FILE]",
	Short: "Render a template with the project metadata",
	Long: `Render a Go text/template against the canonical project metadata.

The template is read from the given file, or from stdin when no file is
passed. The metadata fields are available directly, e.g. {{ .Name }},
{{ .Version }}, {{ range .Authors }}{{ .FullName }}{{ end }}.

Examples:
  somesy fill README.md.tmpl -o README.md
  echo '{{ .Name }} {{ .Version }}' | somesy fill`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFill,
}

var (
	fillInputFile  string
	fillOutputFile string
)

func init() {
	rootCmd.AddCommand(fillCmd)

	fillCmd.Flags().StringVarP(&fillInputFile, "input-file", "i", "", "somesy input file (default: auto-discover)")
	fillCmd.Flags().StringVarP(&fillOutputFile, "output-file", "o", "", "Write the result here instead of stdout")
}

func runFill(cmd *cobra.Command, args []string) error {
	inputPath, err := config.Discover(".", fillInputFile)
	if err != nil {
		return err
	}
	meta, _, err := config.Load(inputPath)
	if err != nil {
		return err
	}
	if err := meta.Validate(); err != nil {
		return err
	}

	var raw []byte
	name := "stdin"
	if len(args) == 1 {
		name = args[0]
		raw, err = os.ReadFile(name)
	} else {
		raw, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("reading template: %w", err)
	}

	tmpl, err := template.New(name).Parse(string(raw))
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, meta); err != nil {
		return fmt.Errorf("rendering template %s: %w", name, err)
	}

	if fillOutputFile != "" {
		return os.WriteFile(fillOutputFile, buf.Bytes(), 0o644)
	}
	_, err = io.Copy(cmd.OutOrStdout(), &buf)
	return err
}
