// Package stats computes aggregates over byte sequences: mean, mode,
// threshold counts and percentages, and Hamming distance.
//
// Every aggregate that needs at least one element reports an empty slice as
// bioerr.ErrEmptyInput instead of dividing by zero.
package stats

import (
	"fmt"

	"github.com/vertti/seqcheck/internal/bioerr"
	"github.com/vertti/seqcheck/internal/value"
)

func emptyInput(op string) error {
	return fmt.Errorf("%s: %w", op, bioerr.ErrEmptyInput)
}

// Mean returns the arithmetic mean of the byte values of s, using floor
// division.
func Mean(s []byte) (int, error) {
	if len(s) == 0 {
		return 0, emptyInput("mean")
	}
	var sum uint64
	for _, b := range s {
		sum += uint64(b)
	}
	return int(sum / uint64(len(s))), nil //nolint:gosec // mean of bytes fits in a byte
}

// Mode returns the most frequent byte of s. Ties go to the byte that occurs
// first in s.
func Mode(s []byte) (byte, error) {
	if len(s) == 0 {
		return 0, emptyInput("mode")
	}
	counts := Counts(s)
	best := s[0]
	for _, b := range s[1:] {
		if counts[b] > counts[best] {
			best = b
		}
	}
	return best, nil
}

// Counts returns the number of occurrences of every byte value in s.
func Counts(s []byte) [256]int {
	var counts [256]int
	for _, b := range s {
		counts[b]++
	}
	return counts
}

// MinMax returns the smallest and largest byte of s.
func MinMax(s []byte) (lo, hi byte, err error) {
	if len(s) == 0 {
		return 0, 0, emptyInput("min/max")
	}
	lo, hi = s[0], s[0]
	for _, b := range s[1:] {
		if b < lo {
			lo = b
		}
		if b > hi {
			hi = b
		}
	}
	return lo, hi, nil
}

// CountAtLeast returns the number of bytes of s that are >= threshold.
func CountAtLeast(s []byte, threshold byte) int {
	n := 0
	for _, b := range s {
		if b >= threshold {
			n++
		}
	}
	return n
}

// PercentAtLeast returns the share of bytes of s that are >= threshold,
// rounded half up.
func PercentAtLeast(s []byte, threshold byte) (value.Percent, error) {
	if len(s) == 0 {
		return value.Percent{}, emptyInput("percent at least")
	}
	return value.PercentOf(CountAtLeast(s, threshold), len(s))
}

// RoundPercent returns count/total as a percentage, computed as
// (100*count + total/2) / total so halves round up.
func RoundPercent(count, total int) (value.Percent, error) {
	return value.PercentOf(count, total)
}

// GCPercent returns the share of G and C bases (either case) in s.
func GCPercent(s []byte) (value.Percent, error) {
	if len(s) == 0 {
		return value.Percent{}, emptyInput("gc percent")
	}
	gc := 0
	for _, b := range s {
		switch b {
		case 'G', 'C', 'g', 'c':
			gc++
		}
	}
	return value.PercentOf(gc, len(s))
}

// HammingDistance returns the number of positions at which a and b differ.
func HammingDistance(a, b []byte) (int, error) {
	if len(a) != len(b) {
		return 0, &bioerr.LengthMismatchError{Left: len(a), Right: len(b)}
	}
	d := 0
	for i := range a {
		if a[i] != b[i] {
			d++
		}
	}
	return d, nil
}
