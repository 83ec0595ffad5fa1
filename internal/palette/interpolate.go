package palette

import (
	"math"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/chromaset/internal/colour"
)

// CandidatePool is the vibrancy/hue filtered pool chosen for one palette.
type CandidatePool struct {
	Colours []colour.Info
	// Tier is the ladder rung that produced the pool; empty when the
	// unfiltered pool was used.
	Tier string
}

// SelectCandidates runs the vibrancy ladder over pool (anchors excluded) and
// returns the first tier result with at least size-len(anchors) colours, or
// the unfiltered pool when no tier is sufficient.
func SelectCandidates(anchors, pool []colour.Info, size int) CandidatePool {
	isAnchor := hexSet(anchors)
	available := make([]colour.Info, 0, len(pool))
	for _, c := range pool {
		if !isAnchor[c.Hex] {
			available = append(available, c)
		}
	}

	needed := size - len(anchors)
	for _, tier := range Tiers {
		candidates := LimitToHueFamilies(FilterVibrant(available, tier), anchors, tier.HueTolerance)
		if len(candidates) >= needed {
			return CandidatePool{Colours: candidates, Tier: tier.Name}
		}
	}

	return CandidatePool{Colours: available}
}

// builder holds the mutable state of a single Interpolate call.
type builder struct {
	size        int
	targets     []float64
	anchors     []colour.Info
	isAnchor    map[colour.Hex]bool
	pool        []colour.Info
	minDistance float64

	selected []colour.Info
	used     map[colour.Hex]bool

	logger hclog.Logger
}

// Interpolate assembles an unordered palette of up to size colours by
// assigning anchors and pool candidates to size evenly spaced hue slots.
// The result may be shorter than size only when the pool is exhausted.
func Interpolate(anchors, pool []colour.Info, size int, logger hclog.Logger) []colour.Info {
	if size <= len(anchors) {
		out := make([]colour.Info, size)
		copy(out, anchors[:size])
		return out
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	candidates := SelectCandidates(anchors, pool, size)
	if candidates.Tier == "" {
		logger.Debug("no vibrancy tier suffices, using unfiltered pool", "size", size, "pool", len(candidates.Colours))
	} else {
		logger.Debug("selected vibrancy tier", "size", size, "tier", candidates.Tier, "candidates", len(candidates.Colours))
	}

	b := &builder{
		size:        size,
		targets:     hueTargets(size),
		anchors:     anchors,
		isAnchor:    hexSet(anchors),
		pool:        candidates.Colours,
		minDistance: MinDistanceFor(size),
		selected:    make([]colour.Info, 0, size),
		used:        make(map[colour.Hex]bool, size),
		logger:      logger,
	}

	b.fillSlots(b.assignAnchors())
	b.backfillAnchors()
	b.backfillPool()

	return b.selected
}

// hueTargets returns size evenly spaced hue positions starting at 0.
func hueTargets(size int) []float64 {
	step := 360.0 / float64(size)
	targets := make([]float64, size)
	for i := range targets {
		targets[i] = float64(i) * step
	}
	return targets
}

// assignAnchors maps each anchor to its nearest slot. Earlier anchors win
// contested slots; losers are left for the slot search and backfill.
func (b *builder) assignAnchors() map[int]colour.Info {
	assignments := make(map[int]colour.Info, len(b.anchors))
	for _, a := range b.anchors {
		bestIdx, bestDist := 0, 360.0
		for idx, target := range b.targets {
			if d := colour.CircularHueDistance(target, a.HSV.H); d < bestDist {
				bestIdx, bestDist = idx, d
			}
		}
		if _, taken := assignments[bestIdx]; !taken {
			assignments[bestIdx] = a
		}
	}
	return assignments
}

func (b *builder) place(c colour.Info) {
	b.selected = append(b.selected, c)
	b.used[c.Hex] = true
}

func (b *builder) fillSlots(assignments map[int]colour.Info) {
	for idx, target := range b.targets {
		if a, ok := assignments[idx]; ok && !b.used[a.Hex] {
			if len(b.selected) == 0 {
				b.place(a)
				continue
			}
			if score, _ := Score(a, target, b.selected, b.minDistance); score >= 0 {
				b.place(a)
				continue
			}
		}

		// Unused anchors first; the pool is only searched when no anchor
		// scores non-negative.
		ch := newChoice()
		b.consider(&ch, b.anchors, target, b.minDistance)
		if !ch.accepted() {
			b.consider(&ch, b.pool, target, b.minDistance)
		}
		if ch.accepted() {
			b.place(ch.info)
			continue
		}

		relaxed := newChoice()
		b.consider(&relaxed, b.pool, target, b.minDistance*relaxFactor)
		if relaxed.accepted() {
			b.logger.Trace("slot filled at relaxed distance", "size", b.size, "slot", idx, "colour", relaxed.info.Hex)
			b.place(relaxed.info)
			continue
		}

		if c, ok := b.nearestHue(target); ok {
			b.logger.Trace("slot filled by nearest hue", "size", b.size, "slot", idx, "colour", c.Hex)
			b.place(c)
			continue
		}

		b.logger.Trace("slot left empty, pool exhausted", "size", b.size, "slot", idx)
	}
}

// choice tracks the best candidate seen by a slot search.
type choice struct {
	info  colour.Info
	score float64
	ok    bool
}

func newChoice() choice {
	return choice{score: math.Inf(-1)}
}

func (ch choice) accepted() bool {
	return ch.ok && ch.score >= 0
}

// consider scores every unused candidate against the current selection and
// keeps the strictly better ones, so the first candidate seen wins ties.
func (b *builder) consider(ch *choice, candidates []colour.Info, target, minDistance float64) {
	for _, c := range candidates {
		if b.used[c.Hex] {
			continue
		}
		if score, _ := Score(c, target, b.selected, minDistance); score > ch.score {
			ch.info, ch.score, ch.ok = c, score, true
		}
	}
}

// nearestHue ignores distance entirely and picks the unused pool colour with
// the closest hue to target.
func (b *builder) nearestHue(target float64) (colour.Info, bool) {
	var best colour.Info
	found := false
	bestDist := 360.0

	for _, c := range b.pool {
		if b.used[c.Hex] {
			continue
		}
		if d := colour.CircularHueDistance(target, c.HSV.H); d < bestDist {
			best, bestDist, found = c, d, true
		}
	}
	return best, found
}

// backfillAnchors appends anchors that never found a slot, or when the
// palette is full lets an anchor displace the non-anchor colour that sits
// furthest from its slot's hue, if the anchor fits that slot strictly better.
func (b *builder) backfillAnchors() {
	for _, a := range b.anchors {
		if b.used[a.Hex] {
			continue
		}
		if len(b.selected) < b.size {
			b.place(a)
			continue
		}

		worstIdx, worstDist := 0, 0.0
		for idx, c := range b.selected {
			if b.isAnchor[c.Hex] || idx >= len(b.targets) {
				continue
			}
			if d := colour.CircularHueDistance(b.targets[idx], c.HSV.H); d > worstDist {
				worstIdx, worstDist = idx, d
			}
		}

		if colour.CircularHueDistance(b.targets[worstIdx], a.HSV.H) < worstDist {
			b.logger.Trace("anchor displaced colour", "size", b.size, "anchor", a.Hex, "displaced", b.selected[worstIdx].Hex)
			b.selected[worstIdx] = a
			b.used[a.Hex] = true
		}
	}
}

// backfillPool tops the palette up with unused pool colours in pool order.
func (b *builder) backfillPool() {
	for _, c := range b.pool {
		if len(b.selected) >= b.size {
			return
		}
		if !b.used[c.Hex] {
			b.place(c)
		}
	}
}

func hexSet(infos []colour.Info) map[colour.Hex]bool {
	set := make(map[colour.Hex]bool, len(infos))
	for _, c := range infos {
		set[c.Hex] = true
	}
	return set
}
