package classification

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/richard-senior/footstats/pkg/footballdata"
)

func head(records []*TeamRecord, topN int) []*TeamRecord {
	if topN <= 0 || topN >= len(records) {
		return records
	}
	return records[:topN]
}

// PrintClassification writes the first topN rows of a league classification (all rows when topN <= 0)
func PrintClassification(w io.Writer, league string, filter footballdata.YearFilter, records []*TeamRecord, topN int) error {
	fmt.Fprintf(w, "\nLeague Classification: %s (%s)\n\n", league, filter)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tTeam\tMP\tW\tD\tL\tGF\tGA\tGD\tPts\tHTGA_3plus\t")
	for _, r := range head(records, topN) {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t\n",
			r.Rank, r.Team, r.Played, r.Wins, r.Draws, r.Losses,
			r.GoalsFor, r.GoalsAgainst, r.GoalDifference, r.Points, r.HalfTimeConceded3Plus)
	}
	return tw.Flush()
}

// PrintRanking writes the first topN rows of a global ranking (all rows when topN <= 0)
func PrintRanking(w io.Writer, filter footballdata.YearFilter, records []*TeamRecord, topN int) error {
	rule := strings.Repeat("=", 80)
	shown := len(head(records, topN))
	fmt.Fprintf(w, "\n%s\nGLOBAL FOOTBALL RANKING (%s)\nTop %d Teams Across All Leagues\n%s\n\n", rule, filter, shown, rule)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tLeague\tTeam\tMP\tW\tD\tL\tGF\tGA\tGD\tPts\tHTGA_3plus\t2NDHALF_3PLUS\tPts_Per_Match\tHGC_Per_Match\tFAVOURITE_2_1stHalf\tGamesAsFavourites\t%\t")
	for _, r := range head(records, topN) {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%.3f\t%.3f\t%d\t%d\t%s\t\n",
			r.Rank, r.League, r.Team, r.Played, r.Wins, r.Draws, r.Losses,
			r.GoalsFor, r.GoalsAgainst, r.GoalDifference, r.Points,
			r.HalfTimeConceded3Plus, r.SecondHalfConceded3Plus,
			r.PointsPerMatch, r.HalfTimeConcededPerMatch,
			r.FavouriteConceded2FirstHalf, r.FavouriteGames, r.Profit.StringFixed(2))
	}
	return tw.Flush()
}
