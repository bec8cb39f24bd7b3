package footballdata

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Result is the full-time result code of a match as written in the FTR column
type Result string

const (
	HomeWin Result = "H"
	AwayWin Result = "A"
	Draw    Result = "D"
)

// Column names used by football-data.co.uk season files
const (
	ColDate     = "Date"
	ColHomeTeam = "HomeTeam"
	ColAwayTeam = "AwayTeam"
	ColFTHG     = "FTHG"
	ColFTAG     = "FTAG"
	ColFTR      = "FTR"
	ColHTHG     = "HTHG"
	ColHTAG     = "HTAG"
	ColHomeOdds = "B365H"
	ColDrawOdds = "B365D"
	ColAwayOdds = "B365A"
)

// ResultColumns must all be present in a season file for it to be used by the classification
var ResultColumns = []string{ColFTHG, ColFTAG, ColFTR}

// ClassificationFields are the per-row fields a match needs to count towards a classification
var ClassificationFields = []string{
	ColHomeTeam, ColAwayTeam, ColFTHG, ColFTAG, ColFTR,
	ColHTHG, ColHTAG, ColHomeOdds, ColDrawOdds, ColAwayOdds,
}

// ScoreColumns are required by the goal-rate model
var ScoreColumns = []string{ColHomeTeam, ColAwayTeam, ColFTHG, ColFTAG}

// Match represents one row of a season file with database persistence annotations.
// League and Season are filled in by whoever read the file.
type Match struct {
	League   string `json:"league" column:"league" dbtype:"TEXT NOT NULL" primary:"true" index:"true"`
	Season   string `json:"season" column:"season" dbtype:"TEXT NOT NULL" primary:"true" index:"true"`
	HomeTeam string `json:"homeTeam" column:"home_team" dbtype:"TEXT NOT NULL" primary:"true" index:"true"`
	AwayTeam string `json:"awayTeam" column:"away_team" dbtype:"TEXT NOT NULL" primary:"true" index:"true"`
	// as written in the file (dd/mm/yy or dd/mm/yyyy); some leagues meet twice at the same ground
	Date     string `json:"date" column:"match_date" dbtype:"TEXT NOT NULL DEFAULT ''" primary:"true"`

	HomeGoals         int    `json:"fthg" column:"fthg" dbtype:"INTEGER NOT NULL"`
	AwayGoals         int    `json:"ftag" column:"ftag" dbtype:"INTEGER NOT NULL"`
	HalfTimeHomeGoals int    `json:"hthg" column:"hthg" dbtype:"INTEGER DEFAULT 0"`
	HalfTimeAwayGoals int    `json:"htag" column:"htag" dbtype:"INTEGER DEFAULT 0"`
	Result            Result `json:"ftr" column:"ftr" dbtype:"TEXT DEFAULT ''"`

	// Bet365 decimal odds, kept exact so that stake payouts do not drift
	HomeOdds decimal.Decimal `json:"b365h" column:"b365h" dbtype:"TEXT DEFAULT '0'"`
	DrawOdds decimal.Decimal `json:"b365d" column:"b365d" dbtype:"TEXT DEFAULT '0'"`
	AwayOdds decimal.Decimal `json:"b365a" column:"b365a" dbtype:"TEXT DEFAULT '0'"`
}

// SecondHalfConcededByHome is the number of goals the away side scored after the break
func (m *Match) SecondHalfConcededByHome() int {
	return m.AwayGoals - m.HalfTimeAwayGoals
}

// SecondHalfConcededByAway is the number of goals the home side scored after the break
func (m *Match) SecondHalfConcededByAway() int {
	return m.HomeGoals - m.HalfTimeHomeGoals
}

func (m *Match) String() string {
	return fmt.Sprintf("%s %d-%d %s", m.HomeTeam, m.HomeGoals, m.AwayGoals, m.AwayTeam)
}

/////////////////////////////////////////////////////////////////////////
////// Persistable Interface Implementation
/////////////////////////////////////////////////////////////////////////

// GetTableName returns the table name for archived matches
func (m *Match) GetTableName() string {
	return "matches"
}

// GetPrimaryKey returns the compound primary key as a map
func (m *Match) GetPrimaryKey() map[string]any {
	return map[string]any{
		"league":     m.League,
		"season":     m.Season,
		"home_team":  m.HomeTeam,
		"away_team":  m.AwayTeam,
		"match_date": m.Date,
	}
}

// SetPrimaryKey sets the compound primary key from a map
func (m *Match) SetPrimaryKey(pk map[string]any) error {
	targets := map[string]*string{
		"league":     &m.League,
		"season":     &m.Season,
		"home_team":  &m.HomeTeam,
		"away_team":  &m.AwayTeam,
		"match_date": &m.Date,
	}
	for column, field := range targets {
		v, ok := pk[column]
		if !ok {
			return fmt.Errorf("primary key '%s' not found", column)
		}
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("primary key '%s' must be a string", column)
		}
		*field = s
	}
	return nil
}

// BeforeSave refuses matches that cannot be keyed
func (m *Match) BeforeSave() error {
	if m.League == "" || m.Season == "" {
		return fmt.Errorf("match %s has no league/season", m)
	}
	return nil
}

func (m *Match) AfterSave() error {
	return nil
}

func (m *Match) BeforeDelete() error {
	return nil
}

func (m *Match) AfterDelete() error {
	return nil
}
