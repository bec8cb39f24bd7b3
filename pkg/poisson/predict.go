package poisson

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/richard-senior/footstats/internal/logger"
	"github.com/richard-senior/footstats/pkg/util"
)

// DefaultMaxGoals is the highest goal count per side in the score matrix
const DefaultMaxGoals = 5

// TopScorelines is how many of the most likely scorelines a prediction keeps
const TopScorelines = 5

// Scoreline is one cell of the score matrix
type Scoreline struct {
	HomeGoals   int     `json:"homeGoals"`
	AwayGoals   int     `json:"awayGoals"`
	Probability float64 `json:"probability"`
}

func (s Scoreline) String() string {
	return fmt.Sprintf("%d-%d", s.HomeGoals, s.AwayGoals)
}

// Prediction holds the complete Poisson analysis of a fixture
type Prediction struct {
	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`
	MaxGoals int    `json:"maxGoals"`

	HomeExpectedGoals float64 `json:"homeExpectedGoals"`
	AwayExpectedGoals float64 `json:"awayExpectedGoals"`

	// ScoreMatrix[i][j] is the probability of i home goals and j away goals
	ScoreMatrix [][]float64 `json:"scoreMatrix"`

	HomeWinProbability float64 `json:"homeWinProbability"`
	DrawProbability    float64 `json:"drawProbability"`
	// 1 - home - draw so that the three outcomes sum to 1 despite truncation
	AwayWinProbability float64 `json:"awayWinProbability"`

	TopScorelines []Scoreline `json:"topScorelines"`

	// most likely goal count of each side taken on its own
	PredictedHomeGoals int `json:"predictedHomeGoals"`
	PredictedAwayGoals int `json:"predictedAwayGoals"`

	Over1p5GoalsProbability float64 `json:"over1p5"`
	Over2p5GoalsProbability float64 `json:"over2p5"`
}

// pmf is the Poisson probability of k goals at expectation lambda.
// lambda 0 puts all the mass on k = 0; NaN propagates.
func pmf(k int, lambda float64) float64 {
	if math.IsNaN(lambda) {
		return math.NaN()
	}
	if lambda == 0 {
		if k == 0 {
			return 1
		}
		return 0
	}
	return distuv.Poisson{Lambda: lambda}.Prob(float64(k))
}

func pmfs(maxGoals int, lambda float64) []float64 {
	probs := make([]float64, maxGoals+1)
	for k := range probs {
		probs[k] = pmf(k, lambda)
	}
	return probs
}

// Predict computes the score distribution of home against away with goal counts 0..maxGoals.
// Unknown teams are warned about and fall back to league averages.
func (m *Model) Predict(home, away string, maxGoals int) (*Prediction, error) {
	if maxGoals < 0 {
		return nil, fmt.Errorf("max goals must not be negative, got %d", maxGoals)
	}
	for _, team := range []string{home, away} {
		if _, ok := m.rates[team]; !ok {
			if suggestion := util.ClosestMatch(team, m.teams); suggestion != "" {
				logger.Warn("Unknown team", team, "using league averages, did you mean", suggestion)
			} else {
				logger.Warn("Unknown team", team, "using league averages")
			}
		}
	}

	homeExp, awayExp := m.ExpectedGoals(home, away)
	homeProbs := pmfs(maxGoals, homeExp)
	awayProbs := pmfs(maxGoals, awayExp)

	p := &Prediction{
		HomeTeam:          home,
		AwayTeam:          away,
		MaxGoals:          maxGoals,
		HomeExpectedGoals: homeExp,
		AwayExpectedGoals: awayExp,
		ScoreMatrix:       make([][]float64, maxGoals+1),
	}

	// home goals major so that equal probabilities keep that order
	scorelines := make([]Scoreline, 0, (maxGoals+1)*(maxGoals+1))
	for i, ph := range homeProbs {
		p.ScoreMatrix[i] = make([]float64, maxGoals+1)
		for j, pa := range awayProbs {
			joint := ph * pa
			p.ScoreMatrix[i][j] = joint
			scorelines = append(scorelines, Scoreline{HomeGoals: i, AwayGoals: j, Probability: joint})

			switch {
			case i > j:
				p.HomeWinProbability += joint
			case i == j:
				p.DrawProbability += joint
			}
			if i+j > 1 {
				p.Over1p5GoalsProbability += joint
			}
			if i+j > 2 {
				p.Over2p5GoalsProbability += joint
			}
		}
	}
	p.AwayWinProbability = 1 - p.HomeWinProbability - p.DrawProbability

	sort.SliceStable(scorelines, func(a, b int) bool {
		return scorelines[a].Probability > scorelines[b].Probability
	})
	p.TopScorelines = scorelines[:min(TopScorelines, len(scorelines))]

	p.PredictedHomeGoals = floats.MaxIdx(homeProbs)
	p.PredictedAwayGoals = floats.MaxIdx(awayProbs)

	logger.Debug("Predicted", home, "v", away, "expected goals", homeExp, awayExp)
	return p, nil
}

// GridSum is the total probability held by the truncated score matrix
func (p *Prediction) GridSum() float64 {
	var total float64
	for _, row := range p.ScoreMatrix {
		total += floats.Sum(row)
	}
	return total
}
