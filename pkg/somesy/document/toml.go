package document

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml"
)

// TOML is a format-preserving TOML document. The source text is kept
// line by line and mutations patch only the affected spans, so
// comments, blank lines and the order of unrelated keys survive a
// load/save round trip byte for byte. go-toml supplies the parsed
// tree used for lookups and for locating spans via key positions; its
// own encoder is never used because the go-toml lexer drops comments
// at parse time.
type TOML struct {
	lines []string
	tree  *toml.Tree
	err   error
}

// NewTOML returns an empty TOML document.
func NewTOML() *TOML {
	t, _ := toml.Load("")
	return &TOML{tree: t}
}

// LoadTOML parses data into a TOML document.
func LoadTOML(data []byte) (*TOML, error) {
	t, err := toml.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	var lines []string
	if text != "" || len(data) > 0 && data[0] == '\n' {
		lines = strings.Split(text, "\n")
	}
	return &TOML{lines: lines, tree: t}, nil
}

// Get implements Document. An empty path returns the whole tree as a Map.
func (d *TOML) Get(path []string) (interface{}, bool) {
	if len(path) == 0 {
		return treeToMap(d.tree), true
	}
	if !d.tree.HasPath(path) {
		return nil, false
	}
	return fromTomlValue(d.tree.GetPath(path)), true
}

// Set implements Document. Setting a key to the value it already holds
// leaves the source text untouched.
func (d *TOML) Set(path []string, value interface{}) {
	if len(path) == 0 {
		return
	}
	if d.tree.HasPath(path) {
		existing := fromTomlValue(d.tree.GetPath(path))
		if tomlValuesEqual(existing, value) {
			return
		}
		node := d.tree.GetPath(path)
		if isSectionNode(node) {
			// a real [section] cannot be swapped in place, rebuild it
			d.Delete(path)
			d.insert(path, value)
			return
		}
		d.replaceEntry(path, value)
		return
	}
	d.insert(path, value)
}

// Delete implements Document.
func (d *TOML) Delete(path []string) {
	if len(path) == 0 || !d.tree.HasPath(path) {
		return
	}
	var start, end int
	if isSectionNode(d.tree.GetPath(path)) {
		start = d.tree.GetPositionPath(path).Line - 1
		if start < 0 || start >= len(d.lines) {
			return
		}
		end = d.sectionEnd(start)
	} else {
		start = d.findEntryLine(path)
		if start < 0 {
			return
		}
		end = valueEnd(d.lines, start)
	}
	d.splice(start, end+1, nil)
	d.reparse()
}

// Encode implements Document.
func (d *TOML) Encode() ([]byte, error) {
	if d.err != nil {
		return nil, d.err
	}
	if len(d.lines) == 0 {
		return []byte{}, nil
	}
	return []byte(strings.Join(d.lines, "\n") + "\n"), nil
}

// replaceEntry rewrites the key = value span of an existing entry,
// keeping the original indentation and any comment trailing the value.
func (d *TOML) replaceEntry(path []string, value interface{}) {
	start := d.findEntryLine(path)
	if start < 0 {
		return
	}
	end, trailing := scanEntry(d.lines, start)
	old := d.lines[start]
	indent := old[:len(old)-len(strings.TrimLeft(old, " \t"))]
	entry := renderEntry(indent, path[len(path)-1], value)
	entry[len(entry)-1] += trailing
	d.splice(start, end+1, entry)
	d.reparse()
}

// findEntryLine locates the key = value line of the entry at path by
// walking the entries of its parent table. Entry positions cannot come
// from the tree alone because arrays of inline tables report the
// position of their elements, not of the key.
func (d *TOML) findEntryLine(path []string) int {
	parent := path[:len(path)-1]
	start := 0
	if len(parent) > 0 {
		header := d.tree.GetPositionPath(parent).Line - 1
		if header < 0 {
			return -1
		}
		start = header + 1
	}
	end := d.sectionEnd(start - 1)
	key := path[len(path)-1]
	for i := start; i <= end && i < len(d.lines); {
		trimmed := strings.TrimSpace(d.lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			i++
			continue
		}
		if entryKey(trimmed) == key {
			return i
		}
		next, _ := scanEntry(d.lines, i)
		i = next + 1
	}
	return -1
}

// entryKey extracts the key of a key = value line, tolerating quoted
// keys. Dotted keys return their first segment only, which is enough
// to step over them during a scan.
func entryKey(line string) string {
	if strings.HasPrefix(line, `"`) {
		if end := strings.Index(line[1:], `"`); end >= 0 {
			return line[1 : end+1]
		}
		return ""
	}
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '=' || c == ' ' || c == '\t' || c == '.' {
			return line[:i]
		}
	}
	return line
}

// insert adds a new entry, reusing the parent table when its section
// header already exists and appending a fresh section otherwise.
func (d *TOML) insert(path []string, value interface{}) {
	parent := path[:len(path)-1]
	if len(parent) == 0 || d.hasSection(parent) {
		at := d.insertionPoint(parent)
		d.splice(at, at, renderEntry("", path[len(path)-1], value))
		d.reparse()
		return
	}
	if t, ok := d.tree.GetPath(parent).(*toml.Tree); ok && t.Inline() {
		// parent is an inline table, rewrite the whole entry
		m := treeToMap(t)
		m.Set(path[len(path)-1], value)
		d.replaceEntry(parent, m)
		return
	}
	section := []string{"", "[" + joinKeys(parent) + "]"}
	section = append(section, renderEntry("", path[len(path)-1], value)...)
	if len(d.lines) == 0 {
		section = section[1:]
	}
	d.lines = append(d.lines, section...)
	d.reparse()
}

// hasSection reports whether path names an explicit [table] header.
func (d *TOML) hasSection(path []string) bool {
	if !d.tree.HasPath(path) {
		return false
	}
	t, ok := d.tree.GetPath(path).(*toml.Tree)
	return ok && !t.Inline()
}

// insertionPoint returns the line index right after the last entry of
// the table at path, skipping trailing blanks and comments that lead
// into the next section. An empty path addresses the root table.
func (d *TOML) insertionPoint(path []string) int {
	start := -1
	if len(path) > 0 {
		start = d.tree.GetPositionPath(path).Line - 1
	}
	end := d.sectionEnd(start)
	for end > start {
		trimmed := strings.TrimSpace(d.lines[end])
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			break
		}
		end--
	}
	return end + 1
}

// sectionEnd returns the index of the last line belonging to the
// section whose header sits at line index header (-1 for the root).
func (d *TOML) sectionEnd(header int) int {
	end := len(d.lines) - 1
	for _, h := range d.headerLines() {
		if h > header && h-1 < end {
			end = h - 1
		}
	}
	return end
}

// headerLines collects the zero-based line indexes of every [table]
// and [[table]] header in the document.
func (d *TOML) headerLines() []int {
	var out []int
	var walk func(t *toml.Tree)
	walk = func(t *toml.Tree) {
		for _, k := range t.Keys() {
			switch node := t.Get(k).(type) {
			case *toml.Tree:
				if !node.Inline() {
					out = append(out, node.Position().Line-1)
					walk(node)
				}
			case []*toml.Tree:
				for _, el := range node {
					if !el.Inline() {
						out = append(out, el.Position().Line-1)
						walk(el)
					}
				}
			}
		}
	}
	walk(d.tree)
	sort.Ints(out)
	return out
}

// splice replaces lines[from:to] with repl.
func (d *TOML) splice(from, to int, repl []string) {
	out := make([]string, 0, len(d.lines)-(to-from)+len(repl))
	out = append(out, d.lines[:from]...)
	out = append(out, repl...)
	out = append(out, d.lines[to:]...)
	d.lines = out
}

func (d *TOML) reparse() {
	t, err := toml.Load(strings.Join(d.lines, "\n"))
	if err != nil {
		if d.err == nil {
			d.err = fmt.Errorf("edit produced invalid TOML: %w", err)
		}
		return
	}
	d.tree = t
}

// isSectionNode reports whether v is backed by [table] or [[table]]
// headers in the source, as opposed to an inline key = value entry.
func isSectionNode(v interface{}) bool {
	switch node := v.(type) {
	case *toml.Tree:
		return !node.Inline()
	case []*toml.Tree:
		return len(node) == 0 || !node[0].Inline()
	}
	return false
}

// valueEnd returns the index of the last line of the entry starting at
// line index start.
func valueEnd(lines []string, start int) int {
	end, _ := scanEntry(lines, start)
	return end
}

// scanEntry finds the last line of the entry starting at line index
// start, along with any comment trailing the value on that line.
// Arrays and multi-line strings may span lines, so the scan tracks
// bracket depth and string state.
func scanEntry(lines []string, start int) (int, string) {
	depth := 0
	var inString bool // single-line basic or literal
	var stringDelim byte
	var multiDelim string // `"""` or `'''` while inside a multi-line string
	for i := start; i < len(lines); i++ {
		line := lines[i]
		commentIdx := -1
		j := 0
		for j < len(line) {
			c := line[j]
			switch {
			case multiDelim != "":
				if strings.HasPrefix(line[j:], multiDelim) {
					multiDelim = ""
					j += 3
					continue
				}
			case inString:
				if c == '\\' && stringDelim == '"' {
					j += 2
					continue
				}
				if c == stringDelim {
					inString = false
				}
			case c == '"' || c == '\'':
				delim := string(c)
				if strings.HasPrefix(line[j:], delim+delim+delim) {
					multiDelim = delim + delim + delim
					j += 3
					continue
				}
				inString = true
				stringDelim = c
			case c == '#':
				commentIdx = j
				j = len(line)
				continue
			case c == '[' || c == '{':
				depth++
			case c == ']' || c == '}':
				depth--
			}
			j++
		}
		inString = false
		if depth <= 0 && multiDelim == "" {
			trailing := ""
			if commentIdx >= 0 {
				ws := commentIdx
				for ws > 0 && (line[ws-1] == ' ' || line[ws-1] == '\t') {
					ws--
				}
				trailing = line[ws:]
			}
			return i, trailing
		}
	}
	return len(lines) - 1, ""
}

// renderEntry renders one key = value assignment, possibly spanning
// several lines for list values that hold tables.
func renderEntry(indent, key string, value interface{}) []string {
	rendered := renderValue(value)
	if strings.Contains(rendered, "\n") {
		parts := strings.Split(rendered, "\n")
		out := []string{indent + renderKey(key) + " = " + parts[0]}
		for _, p := range parts[1:] {
			out = append(out, indent+p)
		}
		return out
	}
	return []string{indent + renderKey(key) + " = " + rendered}
}

func renderKey(key string) string {
	for _, r := range key {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '-' {
			continue
		}
		return strconv.Quote(key)
	}
	if key == "" {
		return `""`
	}
	return key
}

func joinKeys(path []string) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = renderKey(p)
	}
	return strings.Join(parts, ".")
}

func renderValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return quoteTomlString(val)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case *Map:
		var parts []string
		for p := val.Oldest(); p != nil; p = p.Next() {
			parts = append(parts, renderKey(p.Key)+" = "+renderValue(p.Value))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case []string:
		seq := make([]interface{}, 0, len(val))
		for _, s := range val {
			seq = append(seq, s)
		}
		return renderValue(seq)
	case []interface{}:
		if len(val) == 0 {
			return "[]"
		}
		hasTables := false
		for _, item := range val {
			if _, ok := item.(*Map); ok {
				hasTables = true
				break
			}
		}
		items := make([]string, 0, len(val))
		for _, item := range val {
			items = append(items, renderValue(item))
		}
		if hasTables {
			out := "[\n"
			for _, item := range items {
				out += "    " + item + ",\n"
			}
			return out + "]"
		}
		return "[" + strings.Join(items, ", ") + "]"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// quoteTomlString renders s as a TOML basic string.
func quoteTomlString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// tomlValuesEqual compares a parsed value with an incoming one so that
// rewriting a key to its current value can be skipped.
func tomlValuesEqual(a, b interface{}) bool {
	switch bv := b.(type) {
	case []string:
		seq := make([]interface{}, 0, len(bv))
		for _, s := range bv {
			seq = append(seq, s)
		}
		return tomlValuesEqual(a, seq)
	case int:
		return tomlValuesEqual(a, int64(bv))
	case []interface{}:
		av, ok := a.([]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !tomlValuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Map:
		av, ok := a.(*Map)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		pa, pb := av.Oldest(), bv.Oldest()
		for pa != nil && pb != nil {
			if pa.Key != pb.Key || !tomlValuesEqual(pa.Value, pb.Value) {
				return false
			}
			pa, pb = pa.Next(), pb.Next()
		}
		return true
	default:
		return a == b
	}
}

// orderedTreeKeys returns the keys of t ordered by their position in the
// source file, so that converted mappings keep the on-disk key order.
func orderedTreeKeys(t *toml.Tree) []string {
	keys := t.Keys()
	sort.SliceStable(keys, func(i, j int) bool {
		pi := t.GetPositionPath([]string{keys[i]})
		pj := t.GetPositionPath([]string{keys[j]})
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		return pi.Col < pj.Col
	})
	return keys
}

func treeToMap(t *toml.Tree) *Map {
	m := NewMap()
	for _, k := range orderedTreeKeys(t) {
		m.Set(k, fromTomlValue(t.Get(k)))
	}
	return m
}

// fromTomlValue converts go-toml values into the generic vocabulary.
func fromTomlValue(v interface{}) interface{} {
	switch val := v.(type) {
	case *toml.Tree:
		return treeToMap(val)
	case []*toml.Tree:
		seq := make([]interface{}, 0, len(val))
		for _, t := range val {
			seq = append(seq, treeToMap(t))
		}
		return seq
	case []interface{}:
		seq := make([]interface{}, 0, len(val))
		for _, item := range val {
			seq = append(seq, fromTomlValue(item))
		}
		return seq
	default:
		return v
	}
}
