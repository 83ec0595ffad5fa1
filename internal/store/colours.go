package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmylchreest/chromaset/internal/catalog"
	"github.com/jmylchreest/chromaset/internal/colour"
)

// SaveCatalog replaces the stored catalog with records. Records must be
// numbered and unique by hex.
func (s *Store) SaveCatalog(ctx context.Context, records []catalog.Record) error {
	err := s.tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM colours"); err != nil {
			return fmt.Errorf("failed to clear colours: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO colours(num, hex, name, name_ch, r, g, b, category, category_ch)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare colour insert: %w", err)
		}
		defer stmt.Close()

		for _, r := range records {
			rgb, err := r.Hex.RGB()
			if err != nil {
				return fmt.Errorf("record %d: %w", r.Num, err)
			}
			if _, err := stmt.ExecContext(ctx,
				r.Num, string(r.Hex), r.NamePhonetic, r.NameNative,
				rgb.R, rgb.G, rgb.B,
				string(r.Category), r.CategoryNative,
			); err != nil {
				return fmt.Errorf("failed to insert colour %s: %w", r.Hex, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("saved catalog", "colours", len(records))
	return nil
}

// LoadCatalog returns the stored catalog ordered by num.
func (s *Store) LoadCatalog(ctx context.Context) ([]catalog.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT num, hex, name, name_ch, category, category_ch
		FROM colours ORDER BY num`)
	if err != nil {
		return nil, fmt.Errorf("failed to query colours: %w", err)
	}
	defer rows.Close()

	var out []catalog.Record
	for rows.Next() {
		var (
			r        catalog.Record
			hex, cat string
		)
		if err := rows.Scan(&r.Num, &hex, &r.NamePhonetic, &r.NameNative, &cat, &r.CategoryNative); err != nil {
			return nil, fmt.Errorf("failed to scan colour: %w", err)
		}
		r.Hex = colour.Hex(hex)
		r.Category = catalog.Category(cat)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read colours: %w", err)
	}
	return out, nil
}
