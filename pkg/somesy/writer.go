package somesy

import (
	"fmt"
	"os"

	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy/document"
)

// PersonBinding converts between canonical contributors and a target
// format's native person representation (a string, a mapping, etc.).
type PersonBinding interface {
	// FromContributor renders a contributor as a native document value.
	FromContributor(c Contributor) interface{}

	// ToContributor parses a native document value back into a
	// contributor. A value the format cannot interpret yields an error;
	// callers treat such records as opaque and skip them.
	ToContributor(v interface{}) (Contributor, error)
}

// Writer pushes canonical metadata into one target file format.
type Writer interface {
	// Sync updates the in-memory document from the canonical metadata.
	Sync(meta *ProjectMetadata) error

	// Save serializes the document to the given path, or to the
	// writer's own path when path is empty.
	Save(path string) error

	// Path returns the target file path the writer was opened with.
	Path() string
}

// BaseWriter implements the format-independent half of a Writer:
// mapped property access and the standard sync steps. Format packages
// embed it and configure it with their document, field mapping and
// person binding; steps a format handles differently are shadowed on
// the outer type.
type BaseWriter struct {
	path    string
	doc     document.Document
	mapping FieldMapping
	binding PersonBinding
	log     Logger

	// section is a path prefix applied to every mapped key, e.g.
	// ["tool", "poetry"] inside pyproject.toml.
	section []string

	// authorsSource selects which contributors the authors step syncs.
	// Defaults to ProjectMetadata.Authors.
	authorsSource func(meta *ProjectMetadata) []Contributor
}

// NewBaseWriter builds a BaseWriter around an open document.
func NewBaseWriter(path string, doc document.Document, mapping FieldMapping, binding PersonBinding, log Logger) *BaseWriter {
	if log == nil {
		log = nullLogger{}
	}
	return &BaseWriter{
		path:    path,
		doc:     doc,
		mapping: mapping,
		binding: binding,
		log:     log,
		authorsSource: func(meta *ProjectMetadata) []Contributor {
			return meta.Authors()
		},
	}
}

// Path implements Writer.
func (w *BaseWriter) Path() string { return w.path }

// Document returns the underlying document.
func (w *BaseWriter) Document() document.Document { return w.doc }

// Log returns the writer's logger.
func (w *BaseWriter) Log() Logger { return w.log }

// SetSection sets the path prefix applied to every mapped key.
func (w *BaseWriter) SetSection(path ...string) { w.section = path }

// SetAuthorsSource overrides the contributor set synced into the
// authors field.
func (w *BaseWriter) SetAuthorsSource(src func(meta *ProjectMetadata) []Contributor) {
	w.authorsSource = src
}

// Key resolves a canonical field name to its full document path,
// including the section prefix. The second return is false for fields
// the format ignores.
func (w *BaseWriter) Key(name string) ([]string, bool) {
	k := w.mapping.Resolve(name)
	if k.Ignored() {
		return nil, false
	}
	return append(append([]string{}, w.section...), k.Path()...), true
}

// GetProperty reads a mapped canonical field from the document.
func (w *BaseWriter) GetProperty(name string) (interface{}, bool) {
	path, ok := w.Key(name)
	if !ok {
		return nil, false
	}
	return w.doc.Get(path)
}

// SetProperty writes a mapped canonical field into the document. The
// call is a no-op for ignored fields and for empty values, so syncing
// never erases target content with canonical blanks.
func (w *BaseWriter) SetProperty(name string, value interface{}) {
	path, ok := w.Key(name)
	if !ok || isEmptyValue(value) {
		return
	}
	w.doc.Set(path, value)
}

func isEmptyValue(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []string:
		return len(t) == 0
	case []interface{}:
		return len(t) == 0
	case *document.Map:
		return t == nil || t.Len() == 0
	}
	return false
}

// ParsePeople converts a native person list into contributors,
// skipping records the binding cannot interpret. Skipped records are
// logged but otherwise left alone in the merge input, so the merge
// treats them as absent.
func (w *BaseWriter) ParsePeople(values []interface{}) []Contributor {
	out := make([]Contributor, 0, len(values))
	for _, v := range values {
		c, err := w.binding.ToContributor(v)
		if err != nil {
			w.log.Warn("skipping unparseable person record in %s: %v", w.path, err)
			continue
		}
		out = append(out, c)
	}
	return out
}

// SyncPersonList merges incoming contributors into the person list at
// a mapped field and writes the result back in native form.
func (w *BaseWriter) SyncPersonList(name string, incoming []Contributor) {
	path, ok := w.Key(name)
	if !ok || len(incoming) == 0 {
		return
	}
	var existing []Contributor
	if v, found := w.doc.Get(path); found {
		if list, isList := v.([]interface{}); isList {
			existing = w.ParsePeople(list)
		}
	}
	merged := MergeContributors(existing, incoming, w.log)
	native := make([]interface{}, 0, len(merged))
	for _, c := range merged {
		native = append(native, w.binding.FromContributor(c))
	}
	w.doc.Set(path, native)
}

// SyncAuthors updates the target's author list.
func (w *BaseWriter) SyncAuthors(meta *ProjectMetadata) {
	w.SyncPersonList("authors", w.authorsSource(meta))
}

// SyncMaintainers updates the target's maintainer list.
func (w *BaseWriter) SyncMaintainers(meta *ProjectMetadata) {
	w.SyncPersonList("maintainers", meta.Maintainers())
}

// Sync implements Writer with the standard step sequence. Formats with
// additional fields shadow this method and call it from their own.
func (w *BaseWriter) Sync(meta *ProjectMetadata) error {
	w.SetProperty("name", meta.Name)
	w.SetProperty("description", meta.Description)
	w.SetProperty("version", meta.Version)
	w.SetProperty("keywords", meta.Keywords)
	w.SyncAuthors(meta)
	w.SyncMaintainers(meta)
	w.SetProperty("license", meta.License)
	w.SetProperty("homepage", meta.Homepage)
	w.SetProperty("repository", meta.Repository)
	w.SetProperty("documentation", meta.Documentation)
	return nil
}

// Save implements Writer.
func (w *BaseWriter) Save(path string) error {
	if path == "" {
		path = w.path
	}
	data, err := w.doc.Encode()
	if err != nil {
		return fmt.Errorf("serializing %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// nullLogger discards all output.
type nullLogger struct{}

func (nullLogger) Debug(string, ...interface{})   {}
func (nullLogger) Verbose(string, ...interface{}) {}
func (nullLogger) Info(string, ...interface{})    {}
func (nullLogger) Warn(string, ...interface{})    {}
func (nullLogger) Error(string, ...interface{})   {}
