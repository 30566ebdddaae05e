package db

import (
	"context"

	"exlookup/internal/models"
)

// IncrementLookupTally upserts the count for one outcome label.
// Search terms are never stored.
func (d *DB) IncrementLookupTally(ctx context.Context, outcome string) error {
	if d == nil || d.Pool == nil {
		return ErrNotConfigured
	}
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO lookup_tallies (outcome, count, last_seen_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (outcome) DO UPDATE
		SET count = lookup_tallies.count + 1, last_seen_at = NOW()
	`, outcome)
	return err
}

// GetLookupTallies returns all outcome tallies for metrics export.
func (d *DB) GetLookupTallies(ctx context.Context) ([]models.LookupTally, error) {
	if d == nil || d.Pool == nil {
		return nil, ErrNotConfigured
	}
	rows, err := d.Pool.Query(ctx, `SELECT outcome, count, last_seen_at FROM lookup_tallies ORDER BY outcome`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tallies []models.LookupTally
	for rows.Next() {
		var l models.LookupTally
		if err := rows.Scan(&l.Outcome, &l.Count, &l.LastSeenAt); err != nil {
			return nil, err
		}
		tallies = append(tallies, l)
	}
	return tallies, rows.Err()
}
