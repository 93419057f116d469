// Package dice provides the random sources used by every resolver.
//
// All draws are uniform in [0,100) so probabilities can be written as
// percentages and compared directly against a roll.
package dice

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// Source yields uniform draws in [0,100).
type Source interface {
	Roll() float64
}

type cryptoSource struct{}

func (cryptoSource) Roll() float64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.Float64() * 100 //nolint: gosec // fallback only
	}

	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return float64(u) / (1 << 53) * 100
}

// Default returns a source backed by crypto/rand.
func Default() Source { return cryptoSource{} }

type seededSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeeded returns a reproducible source for simulations and tests.
// It is safe for concurrent use, though the order of draws then isn't.
func NewSeeded(seed uint64) Source {
	return &seededSource{r: rand.New(rand.NewPCG(seed, 0))} //nolint: gosec // simulation rolls
}

func (that *seededSource) Roll() float64 {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.r.Float64() * 100
}

// Chance reports whether a roll lands under pct. The comparison is strict,
// so pct <= 0 never succeeds and pct >= 100 always does.
func Chance(src Source, pct float64) bool {
	if pct <= 0 {
		return false
	}
	if pct >= 100 {
		return true
	}
	return src.Roll() < pct
}

// Pick returns the index selected by a weighted draw. Non-positive weights
// are never selected; -1 is returned when nothing can be picked.
func Pick(src Source, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}

	if total <= 0 {
		return -1
	}

	target := src.Roll() / 100 * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		if target < w {
			return i
		}
		target -= w
	}

	return last
}
