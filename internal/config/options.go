package config

import (
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy"
)

// Options holds the synchronization settings from the [config] section
// of the input file, after CLI overrides have been applied.
type Options struct {
	InputFile string

	NoSyncCFF         bool
	CFFFile           string
	NoSyncPyproject   bool
	PyprojectFile     string
	NoSyncPackageJSON bool
	PackageJSONFile   string
	NoSyncCodemeta    bool
	CodemetaFile      string
	NoSyncMkDocs      bool
	MkDocsFile        string
	NoSyncJulia       bool
	JuliaFile         string
	NoSyncFortran     bool
	FortranFile       string
	NoSyncRust        bool
	RustFile          string
	NoSyncPomXML      bool
	PomXMLFile        string

	ShowInfo bool
	Verbose  bool
	Debug    bool
}

// DefaultOptions returns the baseline settings: every target enabled
// at its conventional path, quiet output.
func DefaultOptions() Options {
	return Options{
		CFFFile:         somesy.DefaultCFFFile,
		PyprojectFile:   somesy.DefaultPyprojectFile,
		PackageJSONFile: somesy.DefaultPackageJSONFile,
		CodemetaFile:    somesy.DefaultCodemetaFile,
		MkDocsFile:      somesy.DefaultMkDocsFile,
		JuliaFile:       somesy.DefaultJuliaFile,
		FortranFile:     somesy.DefaultFortranFile,
		RustFile:        somesy.DefaultRustFile,
		PomXMLFile:      somesy.DefaultPomXMLFile,
	}
}

// Validate checks that the options leave something to do.
func (o Options) Validate() error {
	if o.NoSyncCFF && o.NoSyncPyproject && o.NoSyncPackageJSON &&
		o.NoSyncCodemeta && o.NoSyncMkDocs && o.NoSyncJulia &&
		o.NoSyncFortran && o.NoSyncRust && o.NoSyncPomXML {
		return somesy.ErrNoSyncTargets
	}
	return nil
}

// Override carries option values set on the command line. Nil fields
// were not given and keep the input file's value.
type Override struct {
	NoSyncCFF         *bool
	CFFFile           *string
	NoSyncPyproject   *bool
	PyprojectFile     *string
	NoSyncPackageJSON *bool
	PackageJSONFile   *string
	NoSyncCodemeta    *bool
	CodemetaFile      *string
	NoSyncMkDocs      *bool
	MkDocsFile        *string
	NoSyncJulia       *bool
	JuliaFile         *string
	NoSyncFortran     *bool
	FortranFile       *string
	NoSyncRust        *bool
	RustFile          *string
	NoSyncPomXML      *bool
	PomXMLFile        *string

	ShowInfo *bool
	Verbose  *bool
	Debug    *bool
}

// Apply merges the override into the options. CLI values win.
func (ov Override) Apply(o *Options) {
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setStr := func(dst *string, src *string) {
		if src != nil && *src != "" {
			*dst = *src
		}
	}
	setBool(&o.NoSyncCFF, ov.NoSyncCFF)
	setStr(&o.CFFFile, ov.CFFFile)
	setBool(&o.NoSyncPyproject, ov.NoSyncPyproject)
	setStr(&o.PyprojectFile, ov.PyprojectFile)
	setBool(&o.NoSyncPackageJSON, ov.NoSyncPackageJSON)
	setStr(&o.PackageJSONFile, ov.PackageJSONFile)
	setBool(&o.NoSyncCodemeta, ov.NoSyncCodemeta)
	setStr(&o.CodemetaFile, ov.CodemetaFile)
	setBool(&o.NoSyncMkDocs, ov.NoSyncMkDocs)
	setStr(&o.MkDocsFile, ov.MkDocsFile)
	setBool(&o.NoSyncJulia, ov.NoSyncJulia)
	setStr(&o.JuliaFile, ov.JuliaFile)
	setBool(&o.NoSyncFortran, ov.NoSyncFortran)
	setStr(&o.FortranFile, ov.FortranFile)
	setBool(&o.NoSyncRust, ov.NoSyncRust)
	setStr(&o.RustFile, ov.RustFile)
	setBool(&o.NoSyncPomXML, ov.NoSyncPomXML)
	setStr(&o.PomXMLFile, ov.PomXMLFile)
	setBool(&o.ShowInfo, ov.ShowInfo)
	setBool(&o.Verbose, ov.Verbose)
	setBool(&o.Debug, ov.Debug)
}
