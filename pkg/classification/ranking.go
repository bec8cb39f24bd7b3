package classification

import (
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"github.com/richard-senior/footstats/internal/logger"
	"github.com/richard-senior/footstats/pkg/footballdata"
)

// ErrNoLeagueData is returned by GlobalRanking when no league produced a classification
var ErrNoLeagueData = errors.New("no league data found")

// GlobalRanking classifies every league under datasetsDir with the same filter and
// ranks all teams together. A league that fails is reported and left out.
func GlobalRanking(datasetsDir string, filter footballdata.YearFilter) ([]*TeamRecord, error) {
	dirs, err := footballdata.LeagueDirs(datasetsDir)
	if err != nil {
		return nil, err
	}

	var all []*TeamRecord
	for _, dir := range dirs {
		records, err := GetClassification(dir, filter)
		if err != nil {
			logger.Warn("Error processing", footballdata.LeagueLabel(filepath.Base(dir)), err)
			continue
		}
		all = append(all, records...)
	}

	if len(all) == 0 {
		logger.Error("No league data found in", datasetsDir, "for", filter.String())
		return nil, errors.Wrap(ErrNoLeagueData, datasetsDir)
	}

	RankGlobal(all)
	return all, nil
}

// RankGlobal sorts records from several leagues by profit, then fewest favourite
// first-half collapses, fewest 3+ half-time concessions, lowest half-time conceded
// per match and highest points per match, and assigns 1-based ranks
func RankGlobal(records []*TeamRecord) {
	for _, r := range records {
		r.finalize()
	}
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if c := a.Profit.Cmp(b.Profit); c != 0 {
			return c > 0
		}
		if a.FavouriteConceded2FirstHalf != b.FavouriteConceded2FirstHalf {
			return a.FavouriteConceded2FirstHalf < b.FavouriteConceded2FirstHalf
		}
		if a.HalfTimeConceded3Plus != b.HalfTimeConceded3Plus {
			return a.HalfTimeConceded3Plus < b.HalfTimeConceded3Plus
		}
		if a.HalfTimeConcededPerMatch != b.HalfTimeConcededPerMatch {
			return a.HalfTimeConcededPerMatch < b.HalfTimeConcededPerMatch
		}
		return a.PointsPerMatch > b.PointsPerMatch
	})
	for i, r := range records {
		r.Rank = i + 1
	}
}
