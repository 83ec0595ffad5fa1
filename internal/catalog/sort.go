package catalog

import (
	"fmt"
	"slices"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/chromaset/internal/colour"
)

// sortKey is the perceptual ordering key of one record.
type sortKey struct {
	l, chroma, hue float64
}

func keyOf(r Record) (sortKey, error) {
	info, err := colour.Describe(r.Hex)
	if err != nil {
		return sortKey{}, err
	}
	return sortKey{l: info.Lab.L, chroma: info.Lab.Chroma(), hue: info.Lab.HueAngle()}, nil
}

// less orders keys by lightness ascending, then chroma descending, then
// LAB hue angle ascending.
func (k sortKey) less(o sortKey) bool {
	if k.l != o.l {
		return k.l < o.l
	}
	if k.chroma != o.chroma {
		return k.chroma > o.chroma
	}
	return k.hue < o.hue
}

// sortPerceptual stable-sorts records by their LAB sort key.
func sortPerceptual(records []Record) ([]Record, error) {
	return sortByKey(records, keyOf)
}

func sortByKey(records []Record, key func(Record) (sortKey, error)) ([]Record, error) {
	type keyed struct {
		key sortKey
		rec Record
	}

	items := make([]keyed, len(records))
	for i, r := range records {
		k, err := key(r)
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", r.NameNative, err)
		}
		items[i] = keyed{key: k, rec: r}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].key.less(items[j].key)
	})

	out := make([]Record, len(items))
	for i, it := range items {
		out[i] = it.rec
	}
	return out, nil
}

// SortByCategory groups records by category in canonical order, with
// unknown categories after the known ones in lexical order, and sorts each
// group perceptually.
func SortByCategory(records []Record) ([]Record, error) {
	groups := make(map[Category][]Record)
	for _, r := range records {
		groups[r.Category] = append(groups[r.Category], r)
	}

	order := slices.Clone(CategoryOrder)
	var others []Category
	for cat := range groups {
		if !slices.Contains(CategoryOrder, cat) {
			others = append(others, cat)
		}
	}
	slices.Sort(others)
	order = append(order, others...)

	out := make([]Record, 0, len(records))
	for _, cat := range order {
		group, ok := groups[cat]
		if !ok {
			continue
		}
		sorted, err := sortPerceptual(group)
		if err != nil {
			return nil, fmt.Errorf("failed to sort category %s: %w", cat, err)
		}
		out = append(out, sorted...)
	}
	return out, nil
}

// Dedup drops records whose (hex, category) pair has been seen before.
// It returns the kept records and the dropped ones, both in input order.
func Dedup(records []Record) (kept, dropped []Record) {
	type pair struct {
		hex colour.Hex
		cat Category
	}

	seen := make(map[pair]bool, len(records))
	kept = make([]Record, 0, len(records))
	for _, r := range records {
		p := pair{hex: r.Hex, cat: r.Category}
		if seen[p] {
			dropped = append(dropped, r)
			continue
		}
		seen[p] = true
		kept = append(kept, r)
	}
	return kept, dropped
}

// UniqueHex keeps the first record for each hex value across categories.
func UniqueHex(records []Record) []Record {
	seen := make(map[colour.Hex]bool, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if seen[r.Hex] {
			continue
		}
		seen[r.Hex] = true
		out = append(out, r)
	}
	return out
}

// Number assigns 1-based ordinals in slice order, in place.
func Number(records []Record) {
	for i := range records {
		records[i].Num = i + 1
	}
}

// PoolOptions controls BuildCandidatePool.
type PoolOptions struct {
	// Thin enables the catalog-wide quality and distance thinning pass.
	Thin     bool
	Thinning ThinOptions
	Logger   hclog.Logger
}

// DefaultPoolOptions returns options with thinning disabled.
func DefaultPoolOptions() PoolOptions {
	return PoolOptions{
		Thinning: DefaultThinOptions(),
		Logger:   hclog.NewNullLogger(),
	}
}

// BuildCandidatePool sorts the raw catalog by category, removes duplicates,
// optionally thins it, and numbers the result. The returned records are
// unique by hex, and their hex list is the palette candidate pool.
func BuildCandidatePool(records []Record, opts PoolOptions) ([]Record, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	sorted, err := SortByCategory(records)
	if err != nil {
		return nil, err
	}

	kept, dropped := Dedup(sorted)
	if len(dropped) > 0 {
		logger.Info("removed duplicate colours", "count", len(dropped))
		for _, d := range dropped {
			logger.Debug("duplicate colour", "name", d.NameNative, "hex", d.Hex, "category", d.Category)
		}
	}

	unique := UniqueHex(kept)
	logger.Debug("unique colours", "count", len(unique))

	out := unique
	if opts.Thin {
		out, err = Thin(unique, opts.Thinning)
		if err != nil {
			return nil, err
		}
		logger.Info("thinned catalog", "before", len(unique), "after", len(out))
	}

	Number(out)
	return out, nil
}

// SortForExport returns the deterministic, numbered ordering handed to
// serialisers: category sort, (hex, category) de-duplication, then one
// record per hex. No thinning is applied.
func SortForExport(records []Record) ([]Record, error) {
	return BuildCandidatePool(records, PoolOptions{})
}
