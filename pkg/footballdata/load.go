package footballdata

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/richard-senior/footstats/internal/logger"
)

// LoadScores reads the teams and full-time score of every usable row of one season file.
// A file missing any of ScoreColumns is an error; rows with blank cells are skipped.
func LoadScores(path string) ([]Match, error) {
	t, err := ReadTableFile(path)
	if err != nil {
		return nil, err
	}
	if missing := t.MissingColumns(ScoreColumns...); len(missing) > 0 {
		return nil, errors.Wrapf(ErrMissingColumns, "%s lacks %s", path, strings.Join(missing, ", "))
	}

	league := LeagueLabel(filepath.Base(filepath.Dir(path)))
	season, _ := ParseSeasonFilename(path)

	matches := make([]Match, 0, len(t.Rows))
	for i, row := range t.Rows {
		m, err := t.ParseScoreRow(row)
		if err != nil {
			logger.Debug("Skipping row", i+2, "of", path, err)
			continue
		}
		m.League = league
		m.Season = season.Code
		matches = append(matches, *m)
	}
	return matches, nil
}
