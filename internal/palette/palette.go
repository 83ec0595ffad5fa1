package palette

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/chromaset/internal/colour"
)

// Options configures palette building.
type Options struct {
	Logger hclog.Logger
}

// DefaultOptions returns options with a discarding logger.
func DefaultOptions() Options {
	return Options{Logger: hclog.NewNullLogger()}
}

func (o Options) logger() hclog.Logger {
	if o.Logger == nil {
		return hclog.NewNullLogger()
	}
	return o.Logger
}

// Build returns an ordered palette of size colours built around anchors from
// the candidate pool.
//
// When the pool is too small the shorter palette is returned together with a
// *PartialPaletteWarning; any other error means no palette was produced.
func Build(anchors, pool []colour.Hex, size int, opts Options) ([]colour.Hex, error) {
	if len(anchors) != AnchorCount {
		return nil, fmt.Errorf("expected %d anchors, got %d", AnchorCount, len(anchors))
	}
	if size < 1 {
		return nil, fmt.Errorf("palette size must be at least 1, got %d", size)
	}

	anchorInfos, err := colour.DescribeAll(anchors)
	if err != nil {
		return nil, fmt.Errorf("invalid anchor: %w", err)
	}
	if err := checkUnique(anchorInfos, size); err != nil {
		return nil, fmt.Errorf("invalid anchors: %w", err)
	}

	poolInfos, err := describeUnique(pool)
	if err != nil {
		return nil, fmt.Errorf("invalid pool colour: %w", err)
	}

	return build(anchorInfos, poolInfos, size, opts.logger())
}

func build(anchors, pool []colour.Info, size int, logger hclog.Logger) ([]colour.Hex, error) {
	if size <= len(anchors) {
		return colour.Hexes(anchors[:size]), nil
	}

	selected := Interpolate(anchors, pool, size, logger)

	th := OrderThresholdsFor(size)
	ordered := Order(selected, th.MinHueGap, th.MinLabDistance)
	if len(ordered) > size {
		ordered = ordered[:size]
	}

	if err := checkUnique(ordered, size); err != nil {
		return nil, err
	}

	out := colour.Hexes(ordered)
	if len(out) < size {
		return out, &PartialPaletteWarning{Size: size, Achieved: len(out)}
	}
	return out, nil
}

// describeUnique describes pool colours, dropping repeated hex values so the
// first occurrence keeps its position.
func describeUnique(hexes []colour.Hex) ([]colour.Info, error) {
	seen := make(map[colour.Hex]bool, len(hexes))
	out := make([]colour.Info, 0, len(hexes))
	for _, h := range hexes {
		info, err := colour.Describe(h)
		if err != nil {
			return nil, err
		}
		if seen[info.Hex] {
			continue
		}
		seen[info.Hex] = true
		out = append(out, info)
	}
	return out, nil
}

func checkUnique(infos []colour.Info, size int) error {
	seen := make(map[colour.Hex]bool, len(infos))
	for _, c := range infos {
		if seen[c.Hex] {
			return &InvariantError{Size: size, Hex: c.Hex, Msg: "duplicate colour"}
		}
		seen[c.Hex] = true
	}
	return nil
}

// Set is a named palette produced by BuildSets.
type Set struct {
	Name    string       `json:"name"`
	Size    int          `json:"size"`
	Colours []colour.Hex `json:"colours"`
	// Partial is set when the pool could not fill the palette.
	Partial bool `json:"partial,omitempty"`
}

// SetName returns the export name of a palette, e.g. "ChineseSet16".
func SetName(prefix string, size int) string {
	return fmt.Sprintf("%s%d", prefix, size)
}

// BuildSets builds one palette per size concurrently. The anchors themselves
// are emitted first as the size-8 set, so a size of 8 in sizes is ignored.
// Results keep the order of sizes. Partial palettes are logged at warn
// level and flagged, not returned as errors.
func BuildSets(ctx context.Context, prefix string, anchors, pool []colour.Hex, sizes []int, opts Options) ([]Set, error) {
	logger := opts.logger()

	if len(anchors) != AnchorCount {
		return nil, fmt.Errorf("expected %d anchors, got %d", AnchorCount, len(anchors))
	}
	anchorInfos, err := colour.DescribeAll(anchors)
	if err != nil {
		return nil, fmt.Errorf("invalid anchor: %w", err)
	}
	if err := checkUnique(anchorInfos, AnchorCount); err != nil {
		return nil, fmt.Errorf("invalid anchors: %w", err)
	}
	poolInfos, err := describeUnique(pool)
	if err != nil {
		return nil, fmt.Errorf("invalid pool colour: %w", err)
	}

	// The anchor set already covers AnchorCount.
	sizes = slices.DeleteFunc(slices.Clone(sizes), func(n int) bool { return n == AnchorCount })

	sets := make([]Set, len(sizes)+1)
	sets[0] = Set{Name: SetName(prefix, AnchorCount), Size: AnchorCount, Colours: colour.Hexes(anchorInfos)}

	errs := make([]error, len(sizes))
	var wg sync.WaitGroup
	for i, size := range sizes {
		i, size := i, size
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}

			name := SetName(prefix, size)
			colours, err := build(anchorInfos, poolInfos, size, logger.Named(name))

			var partial *PartialPaletteWarning
			switch {
			case errors.As(err, &partial):
				logger.Warn("palette is partial", "name", name, "size", size, "achieved", partial.Achieved)
			case err != nil:
				errs[i] = fmt.Errorf("failed to build %s: %w", name, err)
				return
			}

			sets[i+1] = Set{Name: name, Size: size, Colours: colours, Partial: partial != nil}
			logger.Debug("built palette", "name", name, "colours", len(colours))
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return sets, nil
}
