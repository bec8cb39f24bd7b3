package poisson

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/richard-senior/footstats/pkg/footballdata"
)

// LoadSeason builds a model from one season file
func LoadSeason(path string) (*Model, error) {
	matches, err := footballdata.LoadScores(path)
	if err != nil {
		return nil, err
	}
	m, err := NewModel(matches)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return m, nil
}

// PrintPrediction writes the human readable report of a prediction
func PrintPrediction(w io.Writer, p *Prediction) error {
	_, err := fmt.Fprintf(w, "\nPrediction for %s vs %s:\n", p.HomeTeam, p.AwayTeam)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Expected goals: %.2f-%.2f\n", p.HomeExpectedGoals, p.AwayExpectedGoals)
	fmt.Fprintf(w, "Most likely goals: %d-%d\n", p.PredictedHomeGoals, p.PredictedAwayGoals)

	fmt.Fprintln(w, "\nOutcome probabilities:")
	fmt.Fprintf(w, "  %s win: %.1f%%\n", p.HomeTeam, p.HomeWinProbability*100)
	fmt.Fprintf(w, "  Draw: %.1f%%\n", p.DrawProbability*100)
	fmt.Fprintf(w, "  %s win: %.1f%%\n", p.AwayTeam, p.AwayWinProbability*100)

	fmt.Fprintf(w, "\nOver 1.5 goals: %.1f%%\n", p.Over1p5GoalsProbability*100)
	fmt.Fprintf(w, "Over 2.5 goals: %.1f%%\n", p.Over2p5GoalsProbability*100)

	fmt.Fprintln(w, "\nMost likely scorelines:")
	for _, s := range p.TopScorelines {
		fmt.Fprintf(w, "  %s: %.1f%%\n", s, s.Probability*100)
	}
	return nil
}
