package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type styles struct {
	header lipgloss.Style
	card   lipgloss.Style
	wins   lipgloss.Style
	prob   lipgloss.Style
	muted  lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	renderer := lipgloss.NewRenderer(w)
	if !color {
		renderer.SetColorProfile(termenv.Ascii)
	}

	return styles{
		header: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		card:   renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		wins:   renderer.NewStyle().Foreground(lipgloss.Color("10")),
		prob:   renderer.NewStyle().Foreground(lipgloss.Color("11")),
		muted:  renderer.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Render writes the human-readable summary
func (r *Report) Render(w io.Writer, color bool) error {
	st := newStyles(w, color)

	fmt.Fprintf(w, "%s\n", st.header.Render(fmt.Sprintf(
		"after playing %d hands in %v - %.0f hands per second:",
		r.HandsPlayed, r.Elapsed.Truncate(time.Millisecond), r.HandsPerSecond)))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		st.header.Render("card"),
		st.header.Render("wins"),
		st.header.Render("probability"),
		st.header.Render("approx"),
		st.header.Render("95% ci"))

	for _, row := range r.Rows {
		approx, ci := "-", "-"
		if row.Approx != nil {
			approx = fmt.Sprintf("%06.4f", *row.Approx)
		}
		if row.CILow != nil && row.CIHigh != nil {
			ci = fmt.Sprintf("[%.4f, %.4f]", *row.CILow, *row.CIHigh)
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			st.card.Render(row.Card),
			st.wins.Render(fmt.Sprintf("%d", row.Wins)),
			st.prob.Render(row.Probability),
			st.prob.Render(approx),
			st.muted.Render(ci))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s\n", st.muted.Render(fmt.Sprintf(
		"seed %d, %d worker(s), stopped on %s, least wins %d/%d, winnerless hands %d",
		r.Seed, r.Workers, r.StopReason, r.LeastWins, r.MinWins, r.NoWinnerHands)))
	return nil
}
