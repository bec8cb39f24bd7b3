package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/richard-senior/footstats/internal/logger"
	"github.com/richard-senior/footstats/pkg/classification"
	"github.com/richard-senior/footstats/pkg/footballdata"
	"github.com/richard-senior/footstats/pkg/poisson"
	"github.com/richard-senior/footstats/pkg/store"
	"github.com/richard-senior/footstats/pkg/transport"
)

func yearFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "start-year", Usage: "first season start year to include (0 for no limit)"},
		&cli.IntFlag{Name: "end-year", Usage: "last season start year to include (0 for no limit)"},
	}
}

func yearFilter(c *cli.Context) footballdata.YearFilter {
	return footballdata.YearFilter{StartYear: c.Int("start-year"), EndYear: c.Int("end-year")}
}

// stringOr returns the flag when given on the command line, otherwise the configured value
func stringOr(c *cli.Context, name, configured string) string {
	if c.IsSet(name) {
		return c.String(name)
	}
	return configured
}

func intOr(c *cli.Context, name string, configured int) int {
	if c.IsSet(name) {
		return c.Int(name)
	}
	return configured
}

func classifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "classify",
		Usage: "classification of one league over a range of seasons",
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: "league", Usage: "league directory, ie datasets/premier-league", Required: true},
			&cli.IntFlag{Name: "top", Usage: "rows to print (0 for all)"},
		}, yearFlags()...),
		Action: func(c *cli.Context) error {
			leagueDir := c.String("league")
			filter := yearFilter(c)
			records, err := classification.GetClassification(leagueDir, filter)
			if err != nil {
				return err
			}
			label := footballdata.LeagueLabel(filepath.Base(filepath.Clean(leagueDir)))
			return classification.PrintClassification(os.Stdout, label, filter, records, intOr(c, "top", cfg.TopN))
		},
	}
}

func rankCommand() *cli.Command {
	return &cli.Command{
		Name:  "rank",
		Usage: "rank the teams of every league together",
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: "datasets", Usage: "datasets root with one directory per league"},
			&cli.IntFlag{Name: "top", Usage: "rows to print (0 for all)"},
		}, yearFlags()...),
		Action: func(c *cli.Context) error {
			filter := yearFilter(c)
			records, err := classification.GlobalRanking(stringOr(c, "datasets", cfg.DatasetsDir), filter)
			if err != nil {
				return err
			}
			return classification.PrintRanking(os.Stdout, filter, records, intOr(c, "top", cfg.TopN))
		},
	}
}

func predictCommand() *cli.Command {
	return &cli.Command{
		Name:  "predict",
		Usage: "Poisson scoreline prediction for a fixture from one season's results",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "season", Usage: "season file, ie datasets/liga-portugal/season-2425.csv"},
			&cli.StringFlag{Name: "db", Usage: "read the season from this match archive instead of a file"},
			&cli.StringFlag{Name: "league", Usage: "league label in the archive, ie \"Liga Portugal\""},
			&cli.StringFlag{Name: "season-code", Usage: "four digit season code in the archive, ie 2425"},
			&cli.StringFlag{Name: "home", Usage: "home team", Required: true},
			&cli.StringFlag{Name: "away", Usage: "away team", Required: true},
			&cli.IntFlag{Name: "max-goals", Usage: "highest goal count per side in the score matrix"},
		},
		Action: func(c *cli.Context) error {
			var (
				model *poisson.Model
				err   error
			)
			switch {
			case c.IsSet("season"):
				model, err = poisson.LoadSeason(c.String("season"))
			case c.IsSet("league") && c.IsSet("season-code"):
				model, err = modelFromArchive(c)
			default:
				return fmt.Errorf("predict needs --season, or --league and --season-code")
			}
			if err != nil {
				return err
			}

			p, err := model.Predict(c.String("home"), c.String("away"), intOr(c, "max-goals", cfg.MaxGoals))
			if err != nil {
				return err
			}
			return poisson.PrintPrediction(os.Stdout, p)
		},
	}
}

func modelFromArchive(c *cli.Context) (*poisson.Model, error) {
	s, err := store.Open(c.Context, stringOr(c, "db", cfg.DbPath))
	if err != nil {
		return nil, err
	}
	defer s.Close()

	if err := s.Migrate(c.Context); err != nil {
		return nil, err
	}
	matches, err := s.LoadSeason(c.Context, c.String("league"), c.String("season-code"))
	if err != nil {
		return nil, err
	}
	return poisson.NewModel(matches)
}

func fetchCommand() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "download a league's season files from football-data.co.uk",
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: "league-slug", Usage: "directory to create under the datasets root, ie premier-league", Required: true},
			&cli.StringFlag{Name: "division", Usage: "football-data.co.uk division code, ie E0", Required: true},
			&cli.StringFlag{Name: "page", Usage: "league page listing the season files"},
			&cli.StringFlag{Name: "datasets", Usage: "datasets root"},
		}, yearFlags()...),
		Action: func(c *cli.Context) error {
			client, err := transport.NewClient(cfg.CABundle, cfg.HTTPTimeout)
			if err != nil {
				return err
			}
			d := footballdata.NewDownloader(stringOr(c, "datasets", cfg.DatasetsDir), client)
			written, err := d.FetchLeague(c.Context, stringOr(c, "page", cfg.FootballDataURL),
				c.String("division"), c.String("league-slug"), yearFilter(c))
			if err != nil {
				return err
			}
			logger.Info("Downloaded", len(written), "season files")
			return nil
		},
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "archive the season files under the datasets root into SQLite",
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: "datasets", Usage: "datasets root"},
			&cli.StringFlag{Name: "db", Usage: "SQLite match archive"},
		}, yearFlags()...),
		Action: func(c *cli.Context) error {
			s, err := store.Open(c.Context, stringOr(c, "db", cfg.DbPath))
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Migrate(c.Context); err != nil {
				return err
			}
			n, err := s.ImportDatasets(c.Context, stringOr(c, "datasets", cfg.DatasetsDir), yearFilter(c))
			if err != nil {
				return err
			}
			logger.Info("Archived", n, "matches")
			return nil
		},
	}
}
