// Package document provides order- and comment-preserving native trees
// for the file formats somesy synchronizes into.
//
// Every target file is held in memory as a Document: a nested
// mapping/sequence structure owned by exactly one writer instance.
// Documents are loaded once, mutated in place by path-based set
// operations and serialized explicitly. Because mutation happens
// in place on the backing syntax tree, keys, comments and structure
// that somesy does not manage survive a round trip.
package document

// Document is the generic get/set contract over a target file's
// native syntax tree.
//
// A path is an ordered list of keys identifying a (possibly nested)
// location in the tree. Get walks the tree key by key and reports
// absence as soon as an intermediate key is missing. Set walks the
// same way but creates intermediate mapping nodes on demand and
// replaces the leaf value in place.
//
// Values crossing this boundary use a small vocabulary: scalars
// (string, bool, int64, float64), []any for sequences and *Map for
// mappings (insertion-ordered).
type Document interface {
	// Get returns the value at path, or false if any key on the way
	// is missing.
	Get(path []string) (interface{}, bool)

	// Set stores value at path, creating intermediate mappings as
	// needed. Callers are expected to filter empty values themselves;
	// Set stores whatever it is given.
	Set(path []string, value interface{})

	// Delete removes the entry at path, if present.
	Delete(path []string)

	// Encode serializes the tree back to its on-disk syntax.
	Encode() ([]byte, error)
}
