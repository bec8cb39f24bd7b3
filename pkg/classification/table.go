package classification

import (
	"sort"

	"github.com/richard-senior/footstats/pkg/footballdata"
)

// Table maps team names to their accumulators for one aggregation run,
// remembering the order in which teams first appeared
type Table struct {
	League  string
	Matches int

	teams map[string]*TeamRecord
	order []string
}

func NewTable(league string) *Table {
	return &Table{
		League: league,
		teams:  make(map[string]*TeamRecord),
	}
}

// Team returns the accumulator for a team, inserting an empty one if it is not yet in the table
func (t *Table) Team(name string) *TeamRecord {
	if r, ok := t.teams[name]; ok {
		return r
	}
	r := newTeamRecord(name)
	r.League = t.League
	t.teams[name] = r
	t.order = append(t.order, name)
	return r
}

// Lookup returns a team's accumulator without inserting
func (t *Table) Lookup(name string) (*TeamRecord, bool) {
	r, ok := t.teams[name]
	return r, ok
}

// Len is the number of teams in the table
func (t *Table) Len() int {
	return len(t.order)
}

// ApplyMatch routes a match to both teams, each with its own odds.
// Returns false, leaving the table untouched, for a result code other than H, A or D.
func (t *Table) ApplyMatch(m *footballdata.Match) bool {
	var home, away Outcome
	switch m.Result {
	case footballdata.HomeWin:
		home, away = Win, Loss
	case footballdata.AwayWin:
		home, away = Loss, Win
	case footballdata.Draw:
		home, away = Draw, Draw
	default:
		return false
	}

	t.Team(m.HomeTeam).Apply(m.HomeGoals, m.AwayGoals, m.HalfTimeAwayGoals, m.SecondHalfConcededByHome(), home, m.HomeOdds)
	t.Team(m.AwayTeam).Apply(m.AwayGoals, m.HomeGoals, m.HalfTimeHomeGoals, m.SecondHalfConcededByAway(), away, m.AwayOdds)
	t.Matches++
	return true
}

// Records returns the accumulators in first-appearance order
func (t *Table) Records() []*TeamRecord {
	records := make([]*TeamRecord, 0, len(t.order))
	for _, name := range t.order {
		records = append(records, t.teams[name])
	}
	return records
}

// Finalize computes derived columns and returns the records sorted by
// fewest 3+ half-time concessions, then points, goal difference and goals for.
// Remaining ties keep first-appearance order.
func (t *Table) Finalize() []*TeamRecord {
	records := t.Records()
	for _, r := range records {
		r.finalize()
	}
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.HalfTimeConceded3Plus != b.HalfTimeConceded3Plus {
			return a.HalfTimeConceded3Plus < b.HalfTimeConceded3Plus
		}
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		return a.GoalsFor > b.GoalsFor
	})
	for i, r := range records {
		r.Rank = i + 1
	}
	return records
}
