package export

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/DiversioTeam/ClassQuiz/internal/domain"
)

// FormatReport renders the scoreboard table for already-loaded data. It is
// pure: no I/O, and identical inputs produce identical text. The row set is
// the union of names in the score table and the answer stats, so a player
// with points but no logged answers (or vice versa) still gets a row.
func FormatReport(game domain.GameRecord, scores domain.ScoreTable, stats domain.PlayerStats) string {
	title := game.Title
	if title == "" {
		title = "<unknown quiz>"
	}

	var b strings.Builder
	plural := "s"
	if game.NumQuestions == 1 {
		plural = ""
	}
	fmt.Fprintf(&b, "Game PIN %s - %s (%d question%s)\n", game.PIN, title, game.NumQuestions, plural)

	header := fmt.Sprintf("%-20s %8s %8s %9s", "Player", "Points", "Correct", "Answered")
	b.WriteString(header)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", len(header)))
	b.WriteByte('\n')

	names := make([]string, 0, len(scores)+len(stats))
	seen := make(map[string]struct{}, len(scores)+len(stats))
	for name := range scores {
		names = append(names, name)
		seen[name] = struct{}{}
	}
	for name := range stats {
		if _, ok := seen[name]; !ok {
			names = append(names, name)
		}
	}

	// Points descending; ties break on name ascending so reruns against
	// unchanged cache state render byte-identical output.
	sort.Slice(names, func(i, j int) bool {
		pi, pj := pointsFor(scores, names[i]), pointsFor(scores, names[j])
		if pi != pj {
			return pi > pj
		}
		return names[i] < names[j]
	})

	incomplete := false
	for _, name := range names {
		tally := stats[name]
		if tally == nil {
			tally = &domain.AnswerTally{}
		}
		fmt.Fprintf(&b, "%-20s %8d %8d %9d\n", name, pointsFor(scores, name), tally.Right, tally.Answered)
		if tally.Answered < game.NumQuestions {
			incomplete = true
		}
	}

	if game.NumQuestions > 0 && incomplete {
		b.WriteByte('\n')
		fmt.Fprintf(&b,
			"Note: some players have fewer answers recorded than the %d questions in this game.\n",
			game.NumQuestions)
	}

	return strings.TrimRight(b.String(), "\n")
}

// pointsFor parses the stored point total, defaulting to 0 for missing or
// unparseable values.
func pointsFor(scores domain.ScoreTable, name string) int {
	points, err := strconv.Atoi(scores[name])
	if err != nil {
		return 0
	}
	return points
}
