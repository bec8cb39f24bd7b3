package poisson

import (
	"math"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/richard-senior/footstats/pkg/footballdata"
)

// ErrNoMatches is returned when a model is built from a season without usable matches
var ErrNoMatches = errors.New("no matches to build a model from")

// TeamRates are a team's mean goals per match, split by venue.
// A rate is NaN when the team played no match at that venue.
type TeamRates struct {
	AttackHome  float64 // scored at home
	DefenseHome float64 // conceded at home
	AttackAway  float64 // scored away
	DefenseAway float64 // conceded away
}

// Model holds the league averages and per-team rates of one season
type Model struct {
	AvgHomeGoals float64
	AvgAwayGoals float64
	Matches      int

	rates map[string]TeamRates
	teams []string
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return stat.Mean(values, nil)
}

func homeGoals(ms []footballdata.Match) []float64 {
	return lo.Map(ms, func(m footballdata.Match, _ int) float64 { return float64(m.HomeGoals) })
}

func awayGoals(ms []footballdata.Match) []float64 {
	return lo.Map(ms, func(m footballdata.Match, _ int) float64 { return float64(m.AwayGoals) })
}

// NewModel derives league averages and team rates from a season's matches
func NewModel(matches []footballdata.Match) (*Model, error) {
	if len(matches) == 0 {
		return nil, ErrNoMatches
	}

	m := &Model{
		AvgHomeGoals: mean(homeGoals(matches)),
		AvgAwayGoals: mean(awayGoals(matches)),
		Matches:      len(matches),
		rates:        make(map[string]TeamRates),
	}

	names := append(
		lo.Map(matches, func(x footballdata.Match, _ int) string { return x.HomeTeam }),
		lo.Map(matches, func(x footballdata.Match, _ int) string { return x.AwayTeam })...,
	)
	m.teams = lo.Uniq(names)

	for _, team := range m.teams {
		home := lo.Filter(matches, func(x footballdata.Match, _ int) bool { return x.HomeTeam == team })
		away := lo.Filter(matches, func(x footballdata.Match, _ int) bool { return x.AwayTeam == team })
		m.rates[team] = TeamRates{
			AttackHome:  mean(homeGoals(home)),
			DefenseHome: mean(awayGoals(home)),
			AttackAway:  mean(awayGoals(away)),
			DefenseAway: mean(homeGoals(away)),
		}
	}
	return m, nil
}

// Rates returns the rates of a team and whether the team played in the season
func (m *Model) Rates(team string) (TeamRates, bool) {
	r, ok := m.rates[team]
	return r, ok
}

// Teams lists every team of the season in order of first appearance
func (m *Model) Teams() []string {
	return m.teams
}

// ExpectedGoals returns the goal expectations of a fixture.
//
// A team unknown to the model takes league averages: attack at home and defence
// away both default to the home average, attack away and defence at home to the
// away average. Known teams with a NaN rate are not substituted.
func (m *Model) ExpectedGoals(home, away string) (float64, float64) {
	homeAttack, homeDefense := m.AvgHomeGoals, m.AvgAwayGoals
	if r, ok := m.rates[home]; ok {
		homeAttack, homeDefense = r.AttackHome, r.DefenseHome
	}
	awayAttack, awayDefense := m.AvgAwayGoals, m.AvgHomeGoals
	if r, ok := m.rates[away]; ok {
		awayAttack, awayDefense = r.AttackAway, r.DefenseAway
	}

	homeExp := homeAttack * awayDefense / m.AvgHomeGoals
	awayExp := awayAttack * homeDefense / m.AvgAwayGoals
	return homeExp, awayExp
}
