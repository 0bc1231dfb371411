// Package t2048 implements the 2048 merge engine: an immutable game state,
// the slide/merge rules, spawn policies, undo/redo and snapshots, plus the
// terminal Game adapter that drives it from input frames.
package t2048

// Variant is a named rule set offered in the menu.
type Variant struct {
	ID        string
	Name      string
	Size      int
	Target    int     // Win value
	StopOnWin bool    // False keeps playing after the target
	Spawn4    float64 // Probability of spawning 4 instead of 2 (0.0-1.0)
}

// Variants lists the built-in rule sets. The first entry is the default.
var Variants = []Variant{
	{ID: "2048", Name: "Classic", Size: 4, Target: 2048, StopOnWin: true, Spawn4: 0.10},
	{ID: "2048_endless", Name: "Endless", Size: 4, Target: 2048, StopOnWin: false, Spawn4: 0.10},
	{ID: "2048_mini", Name: "Mini 3x3", Size: 3, Target: 256, StopOnWin: true, Spawn4: 0.10},
	{ID: "2048_big", Name: "Big 5x5", Size: 5, Target: 4096, StopOnWin: true, Spawn4: 0.12},
	{ID: "2048_huge", Name: "Huge 6x6", Size: 6, Target: 8192, StopOnWin: false, Spawn4: 0.15},
}

// GetVariant returns the variant with the given ID, or nil.
func GetVariant(id string) *Variant {
	for i := range Variants {
		if Variants[i].ID == id {
			return &Variants[i]
		}
	}
	return nil
}

// Options converts the variant into engine options with the given number of
// initial spawns.
func (v Variant) Options(initialSpawns int) Options {
	return Options{
		Size:          v.Size,
		WinValue:      v.Target,
		StopOnWin:     v.StopOnWin,
		InitialSpawns: initialSpawns,
	}
}

// VariantIDs returns the IDs of all variants.
func VariantIDs() []string {
	ids := make([]string, len(Variants))
	for i, v := range Variants {
		ids[i] = v.ID
	}
	return ids
}
