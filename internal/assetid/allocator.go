// Package assetid assigns numeric identifiers to new assets.
//
// Identifiers are sequential (highest existing id + 1). When the highest id
// cannot be read or parsed the allocator degrades to a timestamp-derived id
// instead of failing, so asset creation stays available. Such ids are flagged
// in the returned Allocation.
package assetid

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Allocation outcomes reported to an Observer.
const (
	OutcomeFirst          = "first"
	OutcomeSequential     = "sequential"
	OutcomeFallbackLookup = "fallback_lookup"
	OutcomeFallbackParse  = "fallback_corrupt"
	OutcomeFallbackFull   = "fallback_exhausted"
)

// LatestIDSource returns the textual form of the highest assigned id, or ""
// when no assets exist.
type LatestIDSource interface {
	LatestID(ctx context.Context) (string, error)
}

// Observer receives one call per allocation.
type Observer interface {
	ObserveAllocation(outcome string)
}

// Allocation is the result of Allocate. Fallback is true when ID was derived
// from the clock rather than from the stored sequence, meaning uniqueness is
// best-effort only.
type Allocation struct {
	ID       int64
	Fallback bool
}

// Next returns the id following current. A nil current means no asset exists
// yet. ok is false when current is already the largest representable id.
func Next(current *int64) (id int64, ok bool) {
	if current == nil || *current < 1 {
		return 1, true
	}
	if *current == math.MaxInt64 {
		return 0, false
	}
	return *current + 1, true
}

// ParseLatest converts the stored representation of the highest id. Empty
// input means no assets; integral floats such as "12.0" are accepted.
func ParseLatest(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return &n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt64 {
		return nil, fmt.Errorf("unparseable asset id %q", raw)
	}
	n := int64(f)
	return &n, nil
}

type Allocator struct {
	source   LatestIDSource
	logger   *slog.Logger
	observer Observer
	now      func() time.Time

	mu   sync.Mutex
	last int64
}

func NewAllocator(source LatestIDSource, logger *slog.Logger, observer Observer) *Allocator {
	return &Allocator{
		source:   source,
		logger:   logger,
		observer: observer,
		now:      time.Now,
	}
}

// Allocate returns the next id. It never fails: lookup and parse errors fall
// back to a millisecond timestamp. Within one Allocator, returned ids are
// strictly increasing, which also separates concurrent callers that read the
// same stored maximum.
func (a *Allocator) Allocate(ctx context.Context) Allocation {
	raw, err := a.source.LatestID(ctx)
	if err != nil {
		a.logger.Error("asset id lookup failed, using timestamp id", "error", err)
		return a.fallback(OutcomeFallbackLookup)
	}

	current, err := ParseLatest(raw)
	if err != nil {
		a.logger.Warn("stored asset id is corrupt, using timestamp id", "raw", raw, "error", err)
		return a.fallback(OutcomeFallbackParse)
	}

	next, ok := Next(current)
	if !ok {
		a.logger.Error("asset id sequence exhausted, using timestamp id", "raw", raw)
		return a.fallback(OutcomeFallbackFull)
	}

	outcome := OutcomeSequential
	if current == nil {
		outcome = OutcomeFirst
	}
	id := a.claim(next)
	a.observe(outcome)
	return Allocation{ID: id}
}

func (a *Allocator) fallback(outcome string) Allocation {
	id := a.claim(a.now().UnixMilli())
	a.observe(outcome)
	return Allocation{ID: id, Fallback: true}
}

// claim returns candidate, or last+1 when candidate does not exceed the last
// id handed out. Once last reaches math.MaxInt64 the candidate is returned
// unchanged and the primary key is left to reject a duplicate.
func (a *Allocator) claim(candidate int64) int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if candidate <= a.last {
		if a.last == math.MaxInt64 {
			return candidate
		}
		candidate = a.last + 1
	}
	a.last = candidate
	return candidate
}

func (a *Allocator) observe(outcome string) {
	if a.observer != nil {
		a.observer.ObserveAllocation(outcome)
	}
}
