package somesy

// MergeContributors merges an incoming contributor list into the list
// currently present in a target document.
//
// Every existing record that matches an incoming record (per
// SameContributor) is kept at its position and partially updated with
// the incoming record's set fields, preserving its key-order
// annotation. Incoming records matching nothing are appended at the
// end, in their incoming order. Existing records matching nothing are
// dropped. The operation is idempotent: merging the same incoming list
// twice yields the same result.
func MergeContributors(existing, incoming []Contributor, log Logger) []Contributor {
	stillExists := make([]bool, len(existing))
	modified := make([]Contributor, len(existing))
	for i, c := range existing {
		modified[i] = c.Clone()
	}

	var added []Contributor
	for _, in := range incoming {
		matched := false
		for i, old := range existing {
			if !SameContributor(old, in) {
				continue
			}
			matched = true
			stillExists[i] = true
			updated, changed := modified[i].updateFrom(in)
			if changed {
				if log != nil {
					log.Debug("updating contributor: %s", updated.FullName())
				}
				modified[i] = updated
			}
		}
		if !matched {
			if log != nil {
				log.Debug("adding contributor: %s", in.FullName())
			}
			added = append(added, in.Clone())
		}
	}

	result := make([]Contributor, 0, len(existing)+len(added))
	for i := range existing {
		if stillExists[i] {
			result = append(result, modified[i])
		} else if log != nil {
			log.Debug("removing contributor: %s", existing[i].FullName())
		}
	}
	return append(result, added...)
}
