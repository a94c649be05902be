// Package decision produces the scripted credit decisions shown on the demo page.
//
// Everything here is a pure function of the company name: the same name always
// yields the same seed, timeline, fixtures and takeaway, in any process.
package decision

import "unicode/utf16"

// Seed is the non-negative integer derived from a company name
type Seed int64

// Hash folds s into a Seed with h = h*31 + unit over its UTF-16 code units,
// wrapping at 32 bits. Code units match what the browser demo hashes, so a
// name scores the same here as on the site.
func Hash(s string) Seed {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(u)
	}
	return seedFromInt32(h)
}

// seedFromInt32 takes the absolute value in 64 bits so MinInt32 stays positive.
func seedFromInt32(h int32) Seed {
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return Seed(v)
}

// Mode maps a seed onto its decision archetype
func (s Seed) Mode() Mode {
	return Mode(s % modeCount)
}
