package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsRegistered(t *testing.T) {
	app := newApp()
	for _, name := range []string{"classify", "rank", "predict", "fetch", "import"} {
		assert.NotNil(t, app.Command(name), name)
	}
}

func TestImportThenPredictFromArchive(t *testing.T) {
	root := t.TempDir()
	league := filepath.Join(root, "liga-portugal")
	require.NoError(t, os.Mkdir(league, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(league, "season-2425.csv"), []byte(
		"Date,HomeTeam,AwayTeam,FTHG,FTAG,FTR,HTHG,HTAG,B365H,B365D,B365A\n"+
			"09/08/24,Porto,Sporting,2,1,H,1,0,2.1,3.4,3.2\n"+
			"16/08/24,Sporting,Porto,3,0,H,2,0,1.9,3.5,3.9\n"+
			"23/08/24,Benfica,Porto,1,1,D,0,1,2.0,3.4,3.6\n"+
			"30/08/24,Porto,Benfica,0,2,A,0,1,2.2,3.3,3.1\n"), 0644))
	db := filepath.Join(t.TempDir(), "archive.db")

	require.NoError(t, newApp().Run([]string{"footstats", "import", "--datasets", root, "--db", db}))
	require.NoError(t, newApp().Run([]string{"footstats", "predict", "--db", db,
		"--league", "Liga Portugal", "--season-code", "2425", "--home", "Porto", "--away", "Sporting"}))
	require.NoError(t, newApp().Run([]string{"footstats", "classify", "--league", league}))
	require.NoError(t, newApp().Run([]string{"footstats", "rank", "--datasets", root, "--top", "2"}))
}

func TestPredictNeedsASeason(t *testing.T) {
	err := newApp().Run([]string{"footstats", "predict", "--home", "Porto", "--away", "Sporting"})
	assert.Error(t, err)
}
