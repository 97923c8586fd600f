package somesy

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess          = 0  // Synchronization completed successfully
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitInvalidMetadata  = 10 // Canonical project metadata failed validation
	ExitInputMissing     = 11 // No somesy input file found
	ExitTargetMissing    = 12 // A target file is absent and may not be created
	ExitValidationFailed = 13 // A target file failed format validation
)

// InputFilesOrdered lists the somesy input file candidates checked during
// discovery, in priority order.
var InputFilesOrdered = []string{".somesy.toml", "somesy.toml", "pyproject.toml"}

// Default paths of the supported synchronization targets.
const (
	DefaultCFFFile         = "CITATION.cff"
	DefaultPyprojectFile   = "pyproject.toml"
	DefaultPackageJSONFile = "package.json"
	DefaultCodemetaFile    = "codemeta.json"
	DefaultMkDocsFile      = "mkdocs.yml"
	DefaultJuliaFile       = "Project.toml"
	DefaultFortranFile     = "fpm.toml"
	DefaultRustFile        = "Cargo.toml"
	DefaultPomXMLFile      = "pom.xml"
)
