package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmylchreest/chromaset/internal/colour"
	"github.com/jmylchreest/chromaset/internal/palette"
)

// ErrPaletteNotFound is returned by LoadPalette for an unknown name.
var ErrPaletteNotFound = errors.New("palette not found")

// SavePalettes stores sets, replacing any palettes with the same names.
func (s *Store) SavePalettes(ctx context.Context, sets []palette.Set) error {
	err := s.tx(ctx, func(tx *sql.Tx) error {
		for _, set := range sets {
			if _, err := tx.ExecContext(ctx, "DELETE FROM palette_colours WHERE palette = ?", set.Name); err != nil {
				return fmt.Errorf("failed to clear palette %s: %w", set.Name, err)
			}
			if _, err := tx.ExecContext(ctx, "DELETE FROM palettes WHERE name = ?", set.Name); err != nil {
				return fmt.Errorf("failed to replace palette %s: %w", set.Name, err)
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO palettes(name, size, partial) VALUES (?, ?, ?)",
				set.Name, set.Size, set.Partial,
			); err != nil {
				return fmt.Errorf("failed to insert palette %s: %w", set.Name, err)
			}
			for i, hex := range set.Colours {
				if _, err := tx.ExecContext(ctx,
					"INSERT INTO palette_colours(palette, position, hex) VALUES (?, ?, ?)",
					set.Name, i, string(hex),
				); err != nil {
					return fmt.Errorf("failed to insert colour %d of %s: %w", i, set.Name, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("saved palettes", "count", len(sets))
	return nil
}

// LoadPalette returns the stored palette called name.
func (s *Store) LoadPalette(ctx context.Context, name string) (palette.Set, error) {
	set := palette.Set{Name: name}
	err := s.db.QueryRowContext(ctx,
		"SELECT size, partial FROM palettes WHERE name = ?", name,
	).Scan(&set.Size, &set.Partial)
	if errors.Is(err, sql.ErrNoRows) {
		return palette.Set{}, fmt.Errorf("%w: %s", ErrPaletteNotFound, name)
	}
	if err != nil {
		return palette.Set{}, fmt.Errorf("failed to query palette %s: %w", name, err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT hex FROM palette_colours WHERE palette = ? ORDER BY position", name)
	if err != nil {
		return palette.Set{}, fmt.Errorf("failed to query colours of %s: %w", name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var hex string
		if err := rows.Scan(&hex); err != nil {
			return palette.Set{}, fmt.Errorf("failed to scan colour of %s: %w", name, err)
		}
		set.Colours = append(set.Colours, colour.Hex(hex))
	}
	if err := rows.Err(); err != nil {
		return palette.Set{}, fmt.Errorf("failed to read colours of %s: %w", name, err)
	}
	return set, nil
}

// PaletteNames lists stored palettes by size, then name.
func (s *Store) PaletteNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM palettes ORDER BY size, name")
	if err != nil {
		return nil, fmt.Errorf("failed to query palettes: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan palette name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read palettes: %w", err)
	}
	return names, nil
}
