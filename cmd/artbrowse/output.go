package main

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/jask/artbrowse/internal/artic"
	"github.com/jask/artbrowse/internal/database/repository"
)

var (
	colorBrand   = lipgloss.Color("#f5c2e7")
	colorBorder  = lipgloss.Color("#45475a")
	colorSubtext = lipgloss.Color("#a6adc8")

	titleStyle  = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(colorSubtext)
	headerStyle = lipgloss.NewStyle().Foreground(colorBrand).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// cell limits keep wide records from wrapping the terminal.
const (
	titleWidth  = 40
	placeWidth  = 18
	artistWidth = 36
	inscrWidth  = 28
)

func clip(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

func year(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func renderArtworks(items []artic.Artwork) string {
	t := newTable("ID", "Title", "Place of Origin", "Artist", "Inscriptions", "Start", "End")
	for _, a := range items {
		t.Row(
			strconv.Itoa(a.ID),
			clip(a.Title, titleWidth),
			clip(a.PlaceOfOrigin, placeWidth),
			clip(a.ArtistDisplay, artistWidth),
			clip(a.Inscriptions, inscrWidth),
			year(a.DateStart),
			year(a.DateEnd),
		)
	}
	return t.String()
}

func renderSnapshots(items []repository.Snapshot) string {
	t := newTable("ID", "Name", "Artworks", "Page size", "Saved")
	for _, s := range items {
		t.Row(
			s.ID,
			clip(s.Name, titleWidth),
			strconv.Itoa(s.Count),
			strconv.Itoa(s.PageSize),
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	return t.String()
}
