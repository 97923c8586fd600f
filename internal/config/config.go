// Package config locates and parses the somesy input file.
//
// Canonical metadata lives either in a dedicated .somesy.toml or
// somesy.toml, or inside [tool.somesy] of a pyproject.toml. The file
// carries a [project] section with the metadata and an optional
// [config] section with synchronization settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy"
	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy/document"
)

// Discover finds the somesy input file. An explicit path is used as
// given; otherwise the conventional candidates are checked in dir, in
// priority order. A pyproject.toml candidate counts only if it has a
// [tool.somesy] section.
func Discover(dir, explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("%w: %s", somesy.ErrInputNotFound, explicit)
		}
		return explicit, nil
	}
	for _, name := range somesy.InputFilesOrdered {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if name == somesy.DefaultPyprojectFile {
			doc, err := document.LoadTOML(data)
			if err != nil {
				continue
			}
			if _, ok := doc.Get([]string{"tool", "somesy"}); !ok {
				continue
			}
		}
		return path, nil
	}
	return "", somesy.ErrInputNotFound
}

// Load reads a somesy input file and returns the canonical metadata
// and synchronization options it declares.
func Load(path string) (*somesy.ProjectMetadata, Options, error) {
	opts := DefaultOptions()
	opts.InputFile = path

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, opts, fmt.Errorf("%w: %s", somesy.ErrInputNotFound, path)
	}
	doc, err := document.LoadTOML(data)
	if err != nil {
		return nil, opts, fmt.Errorf("parsing %s: %w", path, err)
	}

	section := []string{}
	if filepath.Base(path) == somesy.DefaultPyprojectFile {
		section = []string{"tool", "somesy"}
	}

	projectVal, ok := doc.Get(append(section, "project"))
	if !ok {
		return nil, opts, fmt.Errorf("%w: %s has no [project] section", somesy.ErrInvalidMetadata, path)
	}
	project, ok := projectVal.(*document.Map)
	if !ok {
		return nil, opts, fmt.Errorf("%w: %s: project is not a table", somesy.ErrInvalidMetadata, path)
	}
	meta := parseMetadata(project)

	if cfgVal, ok := doc.Get(append(section, "config")); ok {
		if cfg, ok := cfgVal.(*document.Map); ok {
			parseOptions(cfg, &opts)
		}
	}
	return meta, opts, nil
}

// WriteOptions stores opts in the config section of an existing input
// file, creating the section when absent. Everything else in the file,
// comments included, is left as it was.
func WriteOptions(path string, opts Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s", somesy.ErrInputNotFound, path)
	}
	doc, err := document.LoadTOML(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	section := []string{"config"}
	if filepath.Base(path) == somesy.DefaultPyprojectFile {
		section = []string{"tool", "somesy", "config"}
	}

	doc.Set(append(section, "show_info"), opts.ShowInfo)
	doc.Set(append(section, "verbose"), opts.Verbose)
	doc.Set(append(section, "debug"), opts.Debug)
	for _, t := range []struct {
		key  string
		no   bool
		file string
	}{
		{"cff", opts.NoSyncCFF, opts.CFFFile},
		{"pyproject", opts.NoSyncPyproject, opts.PyprojectFile},
		{"package_json", opts.NoSyncPackageJSON, opts.PackageJSONFile},
		{"codemeta", opts.NoSyncCodemeta, opts.CodemetaFile},
		{"mkdocs", opts.NoSyncMkDocs, opts.MkDocsFile},
		{"julia", opts.NoSyncJulia, opts.JuliaFile},
		{"fortran", opts.NoSyncFortran, opts.FortranFile},
		{"rust", opts.NoSyncRust, opts.RustFile},
		{"pom_xml", opts.NoSyncPomXML, opts.PomXMLFile},
	} {
		doc.Set(append(section, "no_sync_"+t.key), t.no)
		if t.file != "" {
			doc.Set(append(section, t.key+"_file"), t.file)
		}
	}

	out, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("updating %s: %w", path, err)
	}
	return os.WriteFile(path, out, 0o644)
}

func parseMetadata(project *document.Map) *somesy.ProjectMetadata {
	meta := &somesy.ProjectMetadata{
		Name:          document.GetString(project, "name"),
		Description:   document.GetString(project, "description"),
		Version:       document.GetString(project, "version"),
		License:       document.GetString(project, "license"),
		Homepage:      document.GetString(project, "homepage"),
		Repository:    document.GetString(project, "repository"),
		Documentation: document.GetString(project, "documentation"),
		Keywords:      stringList(project, "keywords"),
	}
	for _, m := range mapList(project, "people") {
		meta.People = append(meta.People, parsePerson(m))
	}
	for _, m := range mapList(project, "entities") {
		meta.Entities = append(meta.Entities, parseEntity(m))
	}
	return meta
}

func parsePerson(m *document.Map) *somesy.Person {
	p := somesy.PersonFromMap(m)
	p.Author = getBool(m, "author")
	p.Maintainer = getBool(m, "maintainer")
	p.PublicationAuthor = getBoolPtr(m, "publication_author")
	parseContribution(m, &p.Contribution, &p.ContributionTypes, &p.ContributionBegin, &p.ContributionEnd)
	return p
}

func parseEntity(m *document.Map) *somesy.Entity {
	e := somesy.EntityFromMap(m)
	e.Author = getBool(m, "author")
	e.Maintainer = getBool(m, "maintainer")
	e.PublicationAuthor = getBoolPtr(m, "publication_author")
	parseContribution(m, &e.Contribution, &e.ContributionTypes, &e.ContributionBegin, &e.ContributionEnd)
	return e
}

func parseContribution(m *document.Map, text *string, types *[]string, begin, end *string) {
	*text = document.GetString(m, "contribution")
	*types = stringList(m, "contribution_types")
	*begin = document.GetString(m, "contribution_begin")
	*end = document.GetString(m, "contribution_end")
}

func parseOptions(cfg *document.Map, opts *Options) {
	opts.ShowInfo = getBool(cfg, "show_info")
	opts.Verbose = getBool(cfg, "verbose")
	opts.Debug = getBool(cfg, "debug")

	for _, t := range []struct {
		key  string
		no   *bool
		file *string
	}{
		{"cff", &opts.NoSyncCFF, &opts.CFFFile},
		{"pyproject", &opts.NoSyncPyproject, &opts.PyprojectFile},
		{"package_json", &opts.NoSyncPackageJSON, &opts.PackageJSONFile},
		{"codemeta", &opts.NoSyncCodemeta, &opts.CodemetaFile},
		{"mkdocs", &opts.NoSyncMkDocs, &opts.MkDocsFile},
		{"julia", &opts.NoSyncJulia, &opts.JuliaFile},
		{"fortran", &opts.NoSyncFortran, &opts.FortranFile},
		{"rust", &opts.NoSyncRust, &opts.RustFile},
		{"pom_xml", &opts.NoSyncPomXML, &opts.PomXMLFile},
	} {
		*t.no = getBool(cfg, "no_sync_"+t.key)
		if f := document.GetString(cfg, t.key+"_file"); f != "" {
			*t.file = f
		}
	}
}

func getBool(m *document.Map, key string) bool {
	v, _ := document.MapGet(m, key)
	b, _ := v.(bool)
	return b
}

func getBoolPtr(m *document.Map, key string) *bool {
	v, ok := document.MapGet(m, key)
	if !ok {
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil
	}
	return &b
}

func stringList(m *document.Map, key string) []string {
	v, _ := document.MapGet(m, key)
	list, _ := v.([]interface{})
	var out []string
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func mapList(m *document.Map, key string) []*document.Map {
	v, _ := document.MapGet(m, key)
	list, _ := v.([]interface{})
	var out []*document.Map
	for _, item := range list {
		if mm, ok := item.(*document.Map); ok {
			out = append(out, mm)
		}
	}
	return out
}
