package somesy

// FieldKey locates a canonical field inside a target document, or
// marks it as not representable there.
type FieldKey struct {
	path   []string
	ignore bool
}

// Key builds a FieldKey addressing the given document path.
func Key(parts ...string) FieldKey {
	return FieldKey{path: parts}
}

// Ignore builds a FieldKey marking a field the target format cannot
// represent. Syncing an ignored field is a no-op.
func Ignore() FieldKey {
	return FieldKey{ignore: true}
}

// Ignored reports whether the field is not representable in the target.
func (k FieldKey) Ignored() bool { return k.ignore }

// Path returns the document path the key addresses.
func (k FieldKey) Path() []string { return k.path }

// FieldMapping maps canonical field names to their location in a
// target document. Fields absent from the mapping default to a
// single-segment path equal to the canonical name.
type FieldMapping map[string]FieldKey

// Resolve returns the key for a canonical field name, falling back to
// the identity mapping.
func (fm FieldMapping) Resolve(name string) FieldKey {
	if fm != nil {
		if k, ok := fm[name]; ok {
			return k
		}
	}
	return Key(name)
}
