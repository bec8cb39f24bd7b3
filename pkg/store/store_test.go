package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richard-senior/footstats/pkg/footballdata"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err, "Failed to initialize test database")
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()), "Failed to create match table")
	return s
}

func testMatch(home, away string, hg, ag int) footballdata.Match {
	return footballdata.Match{
		League: "Liga Portugal", Season: "2425", Date: "10/08/2024",
		HomeTeam: home, AwayTeam: away, HomeGoals: hg, AwayGoals: ag,
		Result:   footballdata.HomeWin,
		HomeOdds: decimal.RequireFromString("1.2"),
		DrawOdds: decimal.RequireFromString("6.5"),
		AwayOdds: decimal.RequireFromString("13"),
	}
}

func TestGenerateCreateTableSQL(t *testing.T) {
	query := generateCreateTableSQL(&footballdata.Match{}, "matches")
	assert.Contains(t, query, "CREATE TABLE IF NOT EXISTS matches (")
	assert.Contains(t, query, "home_team TEXT NOT NULL")
	assert.Contains(t, query, "b365h TEXT DEFAULT '0'")
	assert.Contains(t, query, "PRIMARY KEY (league, season, home_team, away_team, match_date)")

	indexes := generateIndexSQL(&footballdata.Match{}, "matches")
	assert.Contains(t, indexes, "CREATE INDEX IF NOT EXISTS idx_matches_league ON matches(league)")
	assert.Len(t, indexes, 4)
}

func TestSaveAndFind(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	m := testMatch("Porto", "Gil Vicente", 3, 0)
	require.NoError(t, s.Save(ctx, &m))

	exists, err := s.Exists(ctx, &m)
	require.NoError(t, err)
	assert.True(t, exists)

	var found footballdata.Match
	require.NoError(t, s.FindByPrimaryKey(ctx, &found, m.GetPrimaryKey()))
	assert.Equal(t, "Porto", found.HomeTeam)
	assert.Equal(t, 3, found.HomeGoals)
	assert.Equal(t, footballdata.HomeWin, found.Result)
	assert.True(t, found.HomeOdds.Equal(decimal.RequireFromString("1.2")))

	// saving again updates in place
	m.HomeGoals = 4
	require.NoError(t, s.Save(ctx, &m))
	require.NoError(t, s.FindByPrimaryKey(ctx, &found, m.GetPrimaryKey()))
	assert.Equal(t, 4, found.HomeGoals)

	require.NoError(t, s.Delete(ctx, &m))
	exists, err = s.Exists(ctx, &m)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Error(t, s.FindByPrimaryKey(ctx, &found, m.GetPrimaryKey()))
}

func TestSaveRejectsUnkeyedMatch(t *testing.T) {
	s := openTestStore(t)
	m := testMatch("Porto", "Braga", 1, 0)
	m.League = ""
	assert.Error(t, s.Save(context.Background(), &m))
}

func TestSaveMatchesAndLoadSeason(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	matches := []footballdata.Match{
		testMatch("Sporting", "Porto", 3, 1),
		testMatch("Porto", "Benfica", 2, 2),
		testMatch("Benfica", "Sporting", 1, 0),
	}
	other := testMatch("Inter", "Milan", 1, 0)
	other.League = "Serie A"
	matches = append(matches, other)
	require.NoError(t, s.SaveMatches(ctx, matches))

	season, err := s.LoadSeason(ctx, "Liga Portugal", "2425")
	require.NoError(t, err)
	require.Len(t, season, 3)
	assert.Equal(t, "Sporting", season[0].HomeTeam)
	assert.Equal(t, "Benfica", season[2].HomeTeam)

	season, err = s.LoadSeason(ctx, "Liga Portugal", "2324")
	require.NoError(t, err)
	assert.Empty(t, season)

	// a failing object rolls the whole batch back
	bad := testMatch("Arouca", "Estoril", 0, 0)
	bad.Season = ""
	assert.Error(t, s.SaveMatches(ctx, []footballdata.Match{testMatch("Arouca", "Boavista", 1, 1), bad}))
	season, err = s.LoadSeason(ctx, "Liga Portugal", "2425")
	require.NoError(t, err)
	assert.Len(t, season, 3)
}

func TestImportDatasets(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	root := t.TempDir()
	league := filepath.Join(root, "liga-portugal")
	require.NoError(t, os.Mkdir(league, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(league, "season-2425.csv"),
		[]byte("Date,HomeTeam,AwayTeam,FTHG,FTAG,FTR\n09/08/24,Porto,Gil Vicente,3,0,H\n10/08/24,Sporting,Rio Ave,1,1,D\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(league, "season-2324.csv"),
		[]byte("HomeTeam,AwayTeam\nPorto,Braga\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(league, "season-1011.csv"),
		[]byte("HomeTeam,AwayTeam,FTHG,FTAG\nPorto,Braga,1,0\n"), 0644))

	n, err := s.ImportDatasets(ctx, root, footballdata.YearFilter{StartYear: 2020})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	season, err := s.LoadSeason(ctx, "Liga Portugal", "2425")
	require.NoError(t, err)
	require.Len(t, season, 2)
	assert.Equal(t, footballdata.Draw, season[1].Result)
	assert.Equal(t, "10/08/24", season[1].Date)

	// importing twice does not duplicate
	n, err = s.ImportDatasets(ctx, root, footballdata.YearFilter{StartYear: 2020})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	season, err = s.LoadSeason(ctx, "Liga Portugal", "2425")
	require.NoError(t, err)
	assert.Len(t, season, 2)
}
