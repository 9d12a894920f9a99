package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"pantry/internal/freshness"
	"pantry/internal/query"
)

const (
	emptyCollectionText = "No items yet. Add your first grocery item!"
	emptyViewText       = "No items match your search or filter."
)

// badgeColors follow the web UI: red expired, amber near, green safe.
var badgeColors = map[freshness.Class]lipgloss.Color{
	freshness.Expired:  lipgloss.Color("9"),
	freshness.Near:     lipgloss.Color("11"),
	freshness.Safe:     lipgloss.Color("10"),
	freshness.Consumed: lipgloss.Color("8"),
	freshness.Unknown:  lipgloss.Color("7"),
}

// renderView prints the counts line followed by the item table or an empty
// state. Colors are only emitted when w is a terminal.
func renderView(w io.Writer, res query.Result) error {
	r := lipgloss.NewRenderer(w)
	bold := r.NewStyle().Bold(true)

	fmt.Fprintf(w, "%s %d  %s %d  %s %d  %s %d\n",
		bold.Render("Total"), res.Counts.Total,
		bold.Render("Near"), res.Counts.Near,
		bold.Render("Expired"), res.Counts.Expired,
		bold.Render("Consumed"), res.Counts.Consumed,
	)

	switch {
	case res.CollectionEmpty:
		_, err := fmt.Fprintln(w, emptyCollectionText)
		return err
	case res.Empty:
		_, err := fmt.Fprintln(w, emptyViewText)
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "QTY", "CATEGORY", "EXPIRES", "STATUS", "")
	for _, it := range res.Items {
		badge := r.NewStyle().Foreground(badgeColors[it.Class]).Render(it.Label)
		name := it.Name
		if it.Consumed {
			name = r.NewStyle().Strikethrough(true).Render(name)
		}
		t.Row(it.ID, name, strconv.Itoa(it.Qty), it.Category, it.ExpiryDate, badge, it.DaysLeft)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
