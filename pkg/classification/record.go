package classification

import (
	"github.com/shopspring/decimal"
)

// Outcome is a match result seen from one team's side
type Outcome int

const (
	Win Outcome = iota
	Draw
	Loss
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "W"
	case Draw:
		return "D"
	case Loss:
		return "L"
	}
	return "?"
}

var (
	stake         = decimal.NewFromInt(100)
	minPayoutOdds = decimal.RequireFromString("1.2")
	favouriteProb = decimal.RequireFromString("0.5")
)

// TeamRecord accumulates one team's statistics over every match of an aggregation run
type TeamRecord struct {
	Team   string `json:"team"`
	League string `json:"league,omitempty"`
	Rank   int    `json:"rank,omitempty"`

	Played       int `json:"mp"`
	Wins         int `json:"w"`
	Draws        int `json:"d"`
	Losses       int `json:"l"`
	GoalsFor     int `json:"gf"`
	GoalsAgainst int `json:"ga"`
	Points       int `json:"pts"`

	// goals conceded before the break, summed over all matches
	HalfTimeConceded int `json:"htgc"`
	// matches in which the team conceded 2+ (3+) goals before the break
	HalfTimeConceded2Plus int `json:"htga2Plus"`
	HalfTimeConceded3Plus int `json:"htga3Plus"`
	// matches in which the team conceded 3+ goals after the break
	SecondHalfConceded3Plus int `json:"secondHalf3Plus"`

	FavouriteGames              int `json:"gamesAsFavourite"`
	FavouriteConceded2FirstHalf int `json:"favourite2FirstHalf"`

	// flat 100 unit stake on the team in every match it played
	Profit decimal.Decimal `json:"profit"`

	// Filled in by Finalize / GlobalRanking
	GoalDifference           int     `json:"gd"`
	PointsPerMatch           float64 `json:"ptsPerMatch,omitempty"`
	HalfTimeConcededPerMatch float64 `json:"hgcPerMatch,omitempty"`
}

func newTeamRecord(team string) *TeamRecord {
	return &TeamRecord{Team: team, Profit: decimal.Zero}
}

// ImpliedProbability is the bookmaker's win probability for decimal odds, 0 when odds are not positive
func ImpliedProbability(odds decimal.Decimal) decimal.Decimal {
	if !odds.IsPositive() {
		return decimal.Zero
	}
	return decimal.NewFromInt(1).Div(odds)
}

// IsFavourite reports whether the odds make the team the bookmaker's favourite
func IsFavourite(odds decimal.Decimal) bool {
	return ImpliedProbability(odds).GreaterThanOrEqual(favouriteProb)
}

// Payout is the profit of a winning 100 unit stake. Wins below odds of 1.2 are not counted.
func Payout(odds decimal.Decimal) decimal.Decimal {
	if odds.LessThan(minPayoutOdds) {
		return decimal.Zero
	}
	return odds.Mul(stake).Sub(stake)
}

// Apply records one match for the team.
// gf and ga are full-time goals, htConceded and shConceded the goals conceded
// in each half, odds the team's own pre-match odds.
func (r *TeamRecord) Apply(gf, ga, htConceded, shConceded int, outcome Outcome, odds decimal.Decimal) {
	r.Played++
	r.GoalsFor += gf
	r.GoalsAgainst += ga
	r.HalfTimeConceded += htConceded

	switch outcome {
	case Win:
		r.Wins++
		r.Points += 3
		r.Profit = r.Profit.Add(Payout(odds))
	case Draw:
		r.Draws++
		r.Points++
		r.Profit = r.Profit.Sub(stake)
	default:
		r.Losses++
		r.Profit = r.Profit.Sub(stake)
	}

	if htConceded >= 2 {
		r.HalfTimeConceded2Plus++
	}
	if htConceded >= 3 {
		r.HalfTimeConceded3Plus++
	}
	if shConceded >= 3 {
		r.SecondHalfConceded3Plus++
	}

	if IsFavourite(odds) {
		r.FavouriteGames++
		if htConceded >= 2 {
			r.FavouriteConceded2FirstHalf++
		}
	}

	r.observeOver2p5(gf+ga > 2)
}

// observeOver2p5 receives whether the match went over 2.5 total goals.
// Nothing is accumulated from it yet; see DESIGN.md.
func (r *TeamRecord) observeOver2p5(over bool) {}

// finalize computes the derived columns
func (r *TeamRecord) finalize() {
	r.GoalDifference = r.GoalsFor - r.GoalsAgainst
	if r.Played > 0 {
		r.PointsPerMatch = float64(r.Points) / float64(r.Played)
		r.HalfTimeConcededPerMatch = float64(r.HalfTimeConceded) / float64(r.Played)
	}
}
