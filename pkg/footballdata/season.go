package footballdata

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// season files are named like season-0001.csv (2000/2001) or season-2425.csv (2024/2025)
var seasonFilePattern = regexp.MustCompile(`^season-(\d{2})(\d{2})\.csv$`)

// Season is one season file of a league directory
type Season struct {
	File      string // absolute or directory-relative path of the file
	Code      string // four digit code, ie "2425"
	StartYear int
	EndYear   int
}

func (s Season) String() string {
	return fmt.Sprintf("%d/%d", s.StartYear, s.EndYear)
}

// ParseSeasonFilename extracts the season bounds encoded in a season file name.
// Both years are taken to be in the 21st century. ok is false for any name not
// matching the season-YYZZ.csv pattern.
func ParseSeasonFilename(name string) (Season, bool) {
	m := seasonFilePattern.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return Season{}, false
	}
	start, _ := strconv.Atoi("20" + m[1])
	end, _ := strconv.Atoi("20" + m[2])
	return Season{File: name, Code: m[1] + m[2], StartYear: start, EndYear: end}, true
}

// SeasonFilename is the inverse of ParseSeasonFilename
func SeasonFilename(code string) string {
	return "season-" + code + ".csv"
}

// YearFilter restricts seasons by their start year. Zero means unbounded on that side.
type YearFilter struct {
	StartYear int
	EndYear   int
}

// Includes reports whether a season starting in startYear passes the filter (bounds are inclusive)
func (f YearFilter) Includes(startYear int) bool {
	if f.StartYear != 0 && startYear < f.StartYear {
		return false
	}
	if f.EndYear != 0 && startYear > f.EndYear {
		return false
	}
	return true
}

func (f YearFilter) String() string {
	from, to := "All Seasons", "Present"
	if f.StartYear != 0 {
		from = strconv.Itoa(f.StartYear)
	}
	if f.EndYear != 0 {
		to = strconv.Itoa(f.EndYear)
	}
	return from + " - " + to
}

// DiscoverSeasons lists the season files of a league directory that pass the filter,
// ordered by file name
func DiscoverSeasons(leagueDir string, filter YearFilter) ([]Season, error) {
	entries, err := os.ReadDir(leagueDir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read league directory %s", leagueDir)
	}

	// os.ReadDir already sorts by file name
	csvs := lo.Filter(entries, func(e os.DirEntry, _ int) bool {
		return !e.IsDir() && strings.HasSuffix(e.Name(), ".csv")
	})

	var seasons []Season
	for _, e := range csvs {
		season, ok := ParseSeasonFilename(e.Name())
		if !ok {
			continue
		}
		if !filter.Includes(season.StartYear) {
			continue
		}
		season.File = filepath.Join(leagueDir, e.Name())
		seasons = append(seasons, season)
	}
	return seasons, nil
}
