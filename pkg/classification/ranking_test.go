package classification

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richard-senior/footstats/pkg/footballdata"
)

func record(team, league string, played, points, htConceded int, profit int64) *TeamRecord {
	r := newTeamRecord(team)
	r.League = league
	r.Played, r.Wins, r.Points = played, points/3, points
	r.Losses = played - r.Wins
	r.HalfTimeConceded = htConceded
	r.Profit = decimal.NewFromInt(profit)
	return r
}

func TestRankGlobalByProfit(t *testing.T) {
	low := record("Celtic", "Premiership", 10, 21, 5, -300)
	high := record("Porto", "Liga Portugal", 10, 21, 5, 150)
	records := []*TeamRecord{low, high}

	RankGlobal(records)
	assert.Equal(t, "Porto", records[0].Team)
	assert.Equal(t, 1, records[0].Rank)
	assert.Equal(t, "Celtic", records[1].Team)
	assert.Equal(t, 2, records[1].Rank)
	assert.InDelta(t, 2.1, records[0].PointsPerMatch, 1e-9)
	assert.InDelta(t, 0.5, records[0].HalfTimeConcededPerMatch, 1e-9)
}

func TestRankGlobalTieBreaks(t *testing.T) {
	// all on equal profit
	a := record("A", "L1", 10, 20, 5, 0)
	a.FavouriteConceded2FirstHalf = 2
	b := record("B", "L1", 10, 20, 5, 0)
	b.HalfTimeConceded3Plus = 1
	c := record("C", "L2", 10, 20, 8, 0)
	d := record("D", "L2", 10, 10, 4, 0)
	e := record("E", "L2", 10, 25, 4, 0)

	records := []*TeamRecord{a, b, c, d, e}
	RankGlobal(records)

	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Team
	}
	// E and D lowest half-time conceded per match, E on points per match; then C, then B on the 3+ bucket, then A
	assert.Equal(t, []string{"E", "D", "C", "B", "A"}, names)
}

func TestGlobalRanking(t *testing.T) {
	root := t.TempDir()
	// one match per league, the winners differ only in payout
	writeSeason(t, filepath.Join(root, "liga-portugal"), "season-2324.csv",
		row("Porto", "Braga", 1, 0, "H", 0, 0, "3", "3", "3"),
	)
	writeSeason(t, filepath.Join(root, "serie-a"), "season-2324.csv",
		row("Inter", "Milan", 1, 0, "H", 0, 0, "2", "3", "3"),
	)
	// nothing usable in the window, skipped with a warning
	writeSeason(t, filepath.Join(root, "la-liga"), "season-1011.csv",
		row("Real Madrid", "Barcelona", 1, 0, "H", 0, 0, "2", "3", "3"),
	)
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.csv"), []byte("x"), 0644))

	filter := footballdata.YearFilter{StartYear: 2020}
	records, err := GlobalRanking(root, filter)
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "Porto", records[0].Team)
	assert.Equal(t, "Liga Portugal", records[0].League)
	assert.Equal(t, "200", records[0].Profit.String())
	assert.Equal(t, "Inter", records[1].Team)
	assert.Equal(t, "Serie A", records[1].League)
	for i, r := range records {
		assert.Equal(t, i+1, r.Rank)
	}

	var buf bytes.Buffer
	require.NoError(t, PrintRanking(&buf, filter, records, 1))
	out := buf.String()
	assert.Contains(t, out, "GLOBAL FOOTBALL RANKING (2020 - Present)")
	assert.Contains(t, out, "Top 1 Teams Across All Leagues")
	assert.Contains(t, out, "Porto")
	assert.NotContains(t, out, "Inter")
	assert.Contains(t, out, "200.00")
}

func TestGlobalRankingNoData(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "empty-league"), 0755))

	records, err := GlobalRanking(root, footballdata.YearFilter{})
	assert.Nil(t, records)
	assert.True(t, errors.Is(err, ErrNoLeagueData))

	_, err = GlobalRanking(filepath.Join(root, "missing"), footballdata.YearFilter{})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoLeagueData))
}
