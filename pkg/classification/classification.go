package classification

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/richard-senior/footstats/internal/logger"
	"github.com/richard-senior/footstats/pkg/footballdata"
)

// ErrNoClassificationData is returned when a league directory yields no team for the requested seasons
var ErrNoClassificationData = errors.New("no classification data")

// SeasonSummary describes what happened to one season file during aggregation
type SeasonSummary struct {
	Season  footballdata.Season
	Applied int
	Skipped int
}

// AccumulateSeason feeds every usable row of a season file into the table.
// A file lacking any of the FTHG, FTAG or FTR columns is an error wrapping
// footballdata.ErrMissingColumns and leaves the table untouched.
func AccumulateSeason(t *Table, season footballdata.Season) (SeasonSummary, error) {
	summary := SeasonSummary{Season: season}

	data, err := footballdata.ReadTableFile(season.File)
	if err != nil {
		return summary, err
	}
	if missing := data.MissingColumns(footballdata.ResultColumns...); len(missing) > 0 {
		return summary, errors.Wrapf(footballdata.ErrMissingColumns, "%s lacks %s", season.File, strings.Join(missing, ", "))
	}

	for i, row := range data.Rows {
		m, err := data.ParseResultRow(row)
		if err != nil {
			logger.Debug("Skipping row", i+2, "of", season.File, err)
			summary.Skipped++
			continue
		}
		if !t.ApplyMatch(m) {
			logger.Debug("Skipping row", i+2, "of", season.File, "with result", string(m.Result))
			summary.Skipped++
			continue
		}
		summary.Applied++
	}
	return summary, nil
}

// BuildTable aggregates every season of a league directory that passes the filter
// without finalizing it. Unusable season files are skipped.
func BuildTable(leagueDir string, filter footballdata.YearFilter) (*Table, error) {
	seasons, err := footballdata.DiscoverSeasons(leagueDir, filter)
	if err != nil {
		return nil, err
	}

	t := NewTable(footballdata.LeagueLabel(filepath.Base(filepath.Clean(leagueDir))))
	for _, season := range seasons {
		summary, err := AccumulateSeason(t, season)
		if err != nil {
			logger.Warn("Skipping season file", season.File, err)
			continue
		}
		logger.Debug("Season", season, "applied", summary.Applied, "skipped", summary.Skipped)
	}
	return t, nil
}

// GetClassification builds the sorted classification of one league over the filtered seasons.
// It is an error, wrapping ErrNoClassificationData, if no team results.
func GetClassification(leagueDir string, filter footballdata.YearFilter) ([]*TeamRecord, error) {
	t, err := BuildTable(leagueDir, filter)
	if err != nil {
		return nil, err
	}
	if t.Len() == 0 {
		return nil, errors.Wrapf(ErrNoClassificationData, "%s (%s)", leagueDir, filter)
	}
	return t.Finalize(), nil
}
