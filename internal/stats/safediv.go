// Package stats computes the statistics battery over a parsed archive.
// Every function here is pure: it takes the owner's name and a read-only
// conversation slice and returns a plain result record. Rendering is the
// caller's concern. All ratio computations use SafeDiv, so degenerate
// (empty) input yields zeroed results instead of errors.
package stats

// SafeDiv divides a by b, returning 0 when b is zero.
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
