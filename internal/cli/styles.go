package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/volt/internal/toast"
)

// styles render text output for one writer. Colours are dropped when the
// writer is not a terminal.
type styles struct {
	header lipgloss.Style
	ok     lipgloss.Style
	fail   lipgloss.Style
	muted  lipgloss.Style
	toast  map[toast.Kind]lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		header: r.NewStyle().Bold(true),
		ok:     r.NewStyle().Foreground(lipgloss.Color("2")),
		fail:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		muted:  r.NewStyle().Foreground(lipgloss.Color("8")),
		toast: map[toast.Kind]lipgloss.Style{
			toast.KindSuccess: r.NewStyle().Foreground(lipgloss.Color("2")),
			toast.KindError:   r.NewStyle().Foreground(lipgloss.Color("1")),
			toast.KindInfo:    r.NewStyle().Foreground(lipgloss.Color("4")),
		},
	}
}

// table writes tab-aligned rows under a bold header.
func table(w io.Writer, header []string, rows [][]string) {
	st := newStyles(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	cells := make([]string, len(header))
	for i, h := range header {
		cells[i] = st.header.Render(h)
	}
	fmt.Fprintln(tw, strings.Join(cells, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

// printToasts writes queued notifications, one per line.
func printToasts(w io.Writer, toasts []toast.Toast) {
	st := newStyles(w)
	for _, t := range toasts {
		fmt.Fprintf(w, "%s %s\n", st.toast[t.Kind].Render("["+string(t.Kind)+"]"), t.Message)
	}
}
