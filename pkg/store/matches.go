package store

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/richard-senior/footstats/internal/logger"
	"github.com/richard-senior/footstats/pkg/footballdata"
)

var _ Persistable = (*footballdata.Match)(nil)

// Migrate creates the match archive table
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.CreateTable(ctx, &footballdata.Match{}); err != nil {
		return fmt.Errorf("failed to create match table: %w", err)
	}
	return nil
}

// SaveMatches upserts matches in a single transaction
func (s *Store) SaveMatches(ctx context.Context, matches []footballdata.Match) error {
	objects := make([]Persistable, len(matches))
	for i := range matches {
		objects[i] = &matches[i]
	}
	return s.BulkSave(ctx, objects)
}

// LoadSeason returns the archived matches of one league season
func (s *Store) LoadSeason(ctx context.Context, league, season string) ([]footballdata.Match, error) {
	results, err := s.FindWhere(ctx, &footballdata.Match{}, "league = ? AND season = ? ORDER BY rowid", league, season)
	if err != nil {
		return nil, err
	}
	return lo.Map(results, func(r any, _ int) footballdata.Match {
		return *r.(*footballdata.Match)
	}), nil
}

// ImportDatasets archives the scores of every season file under datasetsDir that
// passes the filter. Files without the score columns are skipped. Returns the
// number of matches saved.
func (s *Store) ImportDatasets(ctx context.Context, datasetsDir string, filter footballdata.YearFilter) (int, error) {
	dirs, err := footballdata.LeagueDirs(datasetsDir)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, dir := range dirs {
		seasons, err := footballdata.DiscoverSeasons(dir, filter)
		if err != nil {
			logger.Warn("Skipping league directory", dir, err)
			continue
		}
		for _, season := range seasons {
			if err := ctx.Err(); err != nil {
				return total, err
			}
			matches, err := footballdata.LoadScores(season.File)
			if err != nil {
				logger.Warn("Skipping season file", season.File, err)
				continue
			}
			if err := s.SaveMatches(ctx, matches); err != nil {
				return total, fmt.Errorf("failed to archive %s: %w", season.File, err)
			}
			logger.Info("Archived", len(matches), "matches from", season.File)
			total += len(matches)
		}
	}
	return total, nil
}
