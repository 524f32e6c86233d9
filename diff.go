package siteloc

// MapDiff represents the difference between two translation maps for the
// same page/locale, typically a cached map and a freshly built one. Used
// for incremental sync reporting: only changed pages need re-rendering.
type MapDiff struct {
	// Added contains pairs present only in the new map.
	Added []FragmentPair

	// Removed contains pairs present only in the old map.
	Removed []FragmentPair

	// Changed contains sources whose translation differs between the maps.
	Changed []ChangedPair

	// Unchanged counts pairs identical in both maps.
	Unchanged int
}

// ChangedPair records a source fragment whose translation changed.
type ChangedPair struct {
	Source    string
	OldTarget string
	NewTarget string
}

// HasChanges reports whether the two maps differ at all.
func (d *MapDiff) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Changed) > 0
}

// Stats returns summary statistics for the diff.
func (d *MapDiff) Stats() DiffStats {
	return DiffStats{
		Added:     len(d.Added),
		Removed:   len(d.Removed),
		Changed:   len(d.Changed),
		Unchanged: d.Unchanged,
	}
}

// DiffStats contains summary statistics for a map diff.
type DiffStats struct {
	Added     int
	Removed   int
	Changed   int
	Unchanged int
}

// DiffMaps compares two translation maps by source fragment. Order is
// ignored; only membership and targets are compared.
func DiffMaps(old, new *TranslationMap) *MapDiff {
	d := &MapDiff{}

	for _, pair := range old.Pairs() {
		newTarget, ok := new.Get(pair.Source)
		switch {
		case !ok:
			d.Removed = append(d.Removed, pair)
		case newTarget != pair.Target:
			d.Changed = append(d.Changed, ChangedPair{
				Source:    pair.Source,
				OldTarget: pair.Target,
				NewTarget: newTarget,
			})
		default:
			d.Unchanged++
		}
	}

	for _, pair := range new.Pairs() {
		if !old.Has(pair.Source) {
			d.Added = append(d.Added, pair)
		}
	}

	return d
}
