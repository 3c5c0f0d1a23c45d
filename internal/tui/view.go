package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/artbrowse/internal/artic"
)

const appName = "artbrowse"

const (
	checkWidth = 3
	dateWidth  = 10
	minFlex    = 48
)

func columnsFor(width int) []table.Column {
	// border, padding and per-cell padding
	flex := width - 4 - checkWidth - 2*dateWidth - 7*2
	if flex < minFlex {
		flex = minFlex
	}
	title := flex * 30 / 100
	place := flex * 15 / 100
	artist := flex * 30 / 100
	inscriptions := flex - title - place - artist
	return []table.Column{
		{Title: "", Width: checkWidth},
		{Title: "Title", Width: title},
		{Title: "Place of Origin", Width: place},
		{Title: "Artist", Width: artist},
		{Title: "Inscriptions", Width: inscriptions},
		{Title: "Date Start", Width: dateWidth},
		{Title: "Date End", Width: dateWidth},
	}
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorSurface1).
		BorderBottom(true).
		Foreground(colorSubtext0).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(colorText).
		Background(colorSurface0).
		Bold(true)
	return s
}

func formatYear(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func (a *App) rowFor(art artic.Artwork) table.Row {
	check := "[ ]"
	if a.state.Selection.Contains(art.ID) {
		check = "[x]"
	}
	return table.Row{
		check,
		art.Title,
		art.PlaceOfOrigin,
		art.ArtistDisplay,
		art.Inscriptions,
		formatYear(art.DateStart),
		formatYear(art.DateEnd),
	}
}

// syncWidgets copies the view state into the bubbles widgets.
func (a *App) syncWidgets() {
	rows := make([]table.Row, 0, len(a.state.Artworks))
	for _, art := range a.state.Artworks {
		rows = append(rows, a.rowFor(art))
	}
	a.table.SetRows(rows)
	if c := a.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		a.table.SetCursor(len(rows) - 1)
	}

	a.pager.PerPage = a.state.Rows
	a.pager.SetTotalPages(a.state.TotalRecords)
	a.pager.Page = a.state.Page
}

// layout sizes the table for the terminal.
func (a *App) layout() {
	a.table.SetColumns(columnsFor(a.width))
	h := a.state.Rows + 2
	if a.height > 0 {
		// header, info line, status, footer and the box border
		if avail := a.height - 8; avail < h {
			h = max(avail, 3)
		}
	}
	a.table.SetHeight(h)
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	main := a.renderHeader() + "\n" + listBoxStyle.Render(a.table.View()) + "\n" + a.renderInfo()
	if a.prompt != promptNone {
		main = overlayCenter(main, a.renderPrompt(), a.width, lipgloss.Height(main))
	}
	return main + "\n" + a.renderStatus() + "\n" + a.renderFooter()
}

func (a *App) renderHeader() string {
	content := headerAppStyle.Render(appName) + headerInfoStyle.Render("  Art Institute of Chicago collection")
	if a.width <= 0 {
		return headerBarStyle.Render(content)
	}
	return headerBarStyle.Width(a.width).Render(content)
}

func (a *App) renderInfo() string {
	s := a.state
	from, to := 0, 0
	if len(s.Artworks) > 0 {
		from, to = s.First+1, s.First+len(s.Artworks)
	}
	mode := "checkbox"
	if s.RowClick {
		mode = "row-click"
	}
	parts := []string{
		pagerStyle.Render("Page " + a.pager.View()),
		infoStyle.Render(fmt.Sprintf("%d-%d of %d", from, to, s.TotalRecords)),
		infoStyle.Render(fmt.Sprintf("%d rows", s.Rows)),
		selectedStyle.Render(fmt.Sprintf("%d selected", s.Selection.Len())),
		modeStyle.Render(mode),
	}
	return " " + strings.Join(parts, "  ")
}

func (a *App) renderStatus() string {
	var text string
	style := statusBarStyle
	switch {
	case a.state.Loading:
		text = a.spinner.View() + fmt.Sprintf(" loading page %d", a.state.Page+1)
	case a.state.Accumulating:
		text = a.spinner.View() + fmt.Sprintf(" selecting first %d", a.target)
	case a.statusErr:
		text, style = a.status, statusErrStyle
	case a.state.Err != nil:
		text, style = a.state.Err.Error(), statusErrStyle
	default:
		text = a.status
	}
	text = strings.ReplaceAll(text, "\n", " ")
	if a.width <= 0 {
		return style.Render(text)
	}
	return style.Width(a.width).Render(text)
}

func (a *App) renderFooter() string {
	if a.prompt != promptNone {
		return footerStyle.Render(a.help.View(a.promptKeys))
	}
	return footerStyle.Render(a.help.View(a.keys))
}

func (a *App) renderPrompt() string {
	title := "Select first N rows"
	hint := "Replaces the current selection"
	if a.prompt == promptFind {
		title = "Find on this page"
		hint = "Closest title wins"
	}
	body := modalTitleStyle.Render(title) + "\n\n" + a.input.View() + "\n\n" + modalHintStyle.Render(hint)
	return modalStyle.Width(36).Render(body)
}
