// Package tui renders the catalog as an interactive sortable table.
package tui

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wh33les/HusbandsGames/internal/catalog"
	"github.com/wh33les/HusbandsGames/internal/client"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	statusStyle = lipgloss.NewStyle().Faint(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	adminStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	tableStyle  = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
)

type gamesLoadedMsg struct{ games []catalog.Game }
type fetchFailedMsg struct{ err error }
type deletedMsg struct{ id int64 }
type mutationFailedMsg struct{ err error }
type exportedMsg struct{ filename string }
type exportFailedMsg struct{ err error }

// Model is the bubbletea model of the catalog table.
type Model struct {
	client *client.Client

	games []catalog.Game
	order catalog.Order
	cols  []string

	table    table.Model
	selected int // index into cols

	loading   bool
	fetchErr  string
	banner    string
	confirmID int64 // pending delete confirmation; 0 means none
	width     int
}

// NewModel creates the model; the first fetch starts from Init.
func NewModel(c *client.Client) Model {
	return Model{
		client:  c,
		loading: true,
		table:   table.New(table.WithFocused(true), table.WithHeight(20)),
	}
}

func (m Model) Init() tea.Cmd {
	return m.fetchCmd()
}

func (m Model) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		games, err := m.client.FetchAll(ctx)
		if err != nil {
			return fetchFailedMsg{err: err}
		}
		return gamesLoadedMsg{games: games}
	}
}

func (m Model) deleteCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if err := m.client.Delete(ctx, id); err != nil {
			return mutationFailedMsg{err: err}
		}
		return deletedMsg{id: id}
	}
}

func (m Model) exportCmd() tea.Cmd {
	games := catalog.Apply(m.games, m.order)
	return func() tea.Msg {
		filename := catalog.ExportFilename(time.Now())
		if err := os.WriteFile(filename, []byte(catalog.ToCSV(games)+"\n"), 0o644); err != nil {
			return exportFailedMsg{err: err}
		}
		return exportedMsg{filename: filename}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetHeight(msg.Height - 6)
		return m, nil

	case gamesLoadedMsg:
		m.loading = false
		m.fetchErr = ""
		// Full replacement, never a merge.
		m.games = msg.games
		m.rebuildTable()
		return m, nil

	case fetchFailedMsg:
		m.loading = false
		m.fetchErr = msg.err.Error()
		return m, nil

	case deletedMsg:
		m.games = catalog.RemoveByID(m.games, msg.id)
		m.banner = fmt.Sprintf("Deleted game %d", msg.id)
		m.rebuildTable()
		return m, nil

	case mutationFailedMsg:
		// Keep the current view; the failure is a dismissible banner.
		m.banner = msg.err.Error()
		return m, nil

	case exportedMsg:
		m.banner = "Exported to " + msg.filename
		return m, nil

	case exportFailedMsg:
		m.banner = "Export failed: " + msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A pending delete confirmation swallows every key.
	if m.confirmID != 0 {
		switch msg.String() {
		case "y", "Y":
			id := m.confirmID
			m.confirmID = 0
			return m, m.deleteCmd(id)
		default:
			m.confirmID = 0
			m.banner = ""
			return m, nil
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "r":
		m.loading = true
		m.fetchErr = ""
		return m, m.fetchCmd()

	case "esc":
		m.banner = ""
		return m, nil

	case "left", "h":
		if m.selected > 0 {
			m.selected--
			m.rebuildTable()
		}
		return m, nil

	case "right", "l":
		if m.selected < len(m.cols)-1 {
			m.selected++
			m.rebuildTable()
		}
		return m, nil

	case "enter", "s":
		if len(m.cols) > 0 {
			m.order = m.order.Next(m.cols[m.selected])
			m.rebuildTable()
		}
		return m, nil

	case "e":
		return m, m.exportCmd()

	case "d":
		if !m.client.IsAdmin() {
			m.banner = "Admin login required to delete"
			return m, nil
		}
		if id, ok := m.selectedGameID(); ok {
			m.confirmID = id
			m.banner = fmt.Sprintf("Delete game %d? (y/N)", id)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) selectedGameID() (int64, bool) {
	row := m.table.SelectedRow()
	if row == nil || len(m.cols) == 0 {
		return 0, false
	}
	// The id column is part of the schema whenever any record is loaded.
	for i, key := range m.cols {
		if key == "id" && i < len(row) {
			id, err := strconv.ParseInt(row[i], 10, 64)
			if err != nil {
				return 0, false
			}
			return id, true
		}
	}
	return 0, false
}

// rebuildTable rederives the schema and the sorted view from the current
// record set.
func (m *Model) rebuildTable() {
	m.cols = catalog.Columns(m.games)
	if m.selected >= len(m.cols) {
		m.selected = 0
	}

	view := catalog.Apply(m.games, m.order)

	widths := make([]int, len(m.cols))
	rows := make([]table.Row, len(view))
	for i, key := range m.cols {
		widths[i] = len(m.headerLabel(i, key))
	}
	for r, g := range view {
		row := make(table.Row, len(m.cols))
		for i, key := range m.cols {
			row[i] = cellValue(g, key)
			if len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
		rows[r] = row
	}

	columns := make([]table.Column, len(m.cols))
	for i, key := range m.cols {
		columns[i] = table.Column{Title: m.headerLabel(i, key), Width: widths[i]}
	}

	m.table.SetColumns(columns)
	m.table.SetRows(rows)
}

// headerLabel marks the selected column and the active sort direction.
func (m *Model) headerLabel(i int, key string) string {
	label := key
	if m.order.Key == key {
		if m.order.Direction == catalog.Desc {
			label += " ▼"
		} else {
			label += " ▲"
		}
	}
	if i == m.selected {
		label = "[" + label + "]"
	}
	return label
}

func cellValue(g catalog.Game, key string) string {
	if key == "price" && g.Price != nil {
		dollars, cents := catalog.SplitPrice(*g.Price)
		return dollars + "." + cents
	}
	return g.Value(key)
}

func (m Model) View() string {
	header := titleStyle.Render("Game Catalog")
	if m.client.IsAdmin() {
		header += "  " + adminStyle.Render("admin: "+m.client.Session().User.Username)
	}

	if m.loading {
		return header + "\n\n" + statusStyle.Render("Loading games...") + "\n"
	}
	if m.fetchErr != "" {
		return header + "\n\n" +
			errStyle.Render("Failed to load the catalog: "+m.fetchErr) + "\n\n" +
			statusStyle.Render("press r to retry, q to quit") + "\n"
	}

	out := header + "\n" + tableStyle.Render(m.table.View()) + "\n"
	if m.banner != "" {
		out += bannerStyle.Render(m.banner) + "\n"
	}
	help := "←/→ column · enter sort · r refresh · e export · q quit"
	if m.client.IsAdmin() {
		help += " · d delete"
	}
	out += statusStyle.Render(help) + "\n"
	return out
}
