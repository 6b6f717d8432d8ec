// Package tui is the interactive terminal view of a match. It owns no game
// rules: every key press calls one Match operation and redraws from the
// match's state.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tyoon11/holdem/internal/deck"
	"github.com/tyoon11/holdem/internal/game"
)

// Model is the Bubble Tea model driving one match
type Model struct {
	match  *game.Match
	logger *log.Logger
	faces  *CardFaces
	trials int

	ctx    context.Context
	cancel context.CancelFunc

	// UI components
	keys        keyMap
	help        help.Model
	logViewport viewport.Model

	// State
	gameLog   []string
	status    string
	statusErr bool
	equity    *game.Equity
	seq       int // bumped on every change; stale estimates are dropped
	quitting  bool

	// Dimensions
	width  int
	height int
}

// equityMsg carries a finished estimate back to Update
type equityMsg struct {
	seq    int
	equity game.Equity
	err    error
}

// NewModel creates a model for a match whose hole cards are usually already
// dealt. trials is the equity sample size used after every change.
func NewModel(match *game.Match, faces *CardFaces, trials int, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ctx, cancel := context.WithCancel(context.Background())
	return &Model{
		match:       match,
		logger:      logger.WithPrefix("tui"),
		faces:       faces,
		trials:      trials,
		ctx:         ctx,
		cancel:      cancel,
		keys:        defaultKeyMap(),
		help:        help.New(),
		logViewport: vp,
		gameLog:     []string{},
	}
}

// Init starts the first equity estimate
func (m *Model) Init() tea.Cmd {
	m.addLog("Hole cards dealt")
	return m.estimateCmd()
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case equityMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			if !errors.Is(msg.err, context.Canceled) {
				m.setError(msg.err)
			}
			return m, nil
		}
		m.equity = &msg.equity
		m.logger.Debug("Equity updated", "trials", msg.equity.Trials, "elapsed", msg.equity.Elapsed)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Flop):
			return m, m.apply(m.match.RevealFlop, "Flop")
		case key.Matches(msg, m.keys.Turn):
			return m, m.apply(m.match.RevealTurn, "Turn")
		case key.Matches(msg, m.keys.River):
			return m, m.apply(m.match.RevealRiver, "River")
		case key.Matches(msg, m.keys.Undo):
			return m, m.apply(m.match.Undo, "Undo")
		case key.Matches(msg, m.keys.New):
			return m, m.apply(func() error {
				m.match.Reset()
				return m.match.Start()
			}, "New round")
		case key.Matches(msg, m.keys.Winner):
			m.showdown()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// apply runs one match operation. On success the log and status are
// refreshed and a new estimate is started; on failure only the status
// line changes.
func (m *Model) apply(op func() error, label string) tea.Cmd {
	if err := op(); err != nil {
		m.setError(err)
		return nil
	}

	entry := label
	if table := m.match.TableCards(); len(table) > 0 {
		entry = fmt.Sprintf("%s: %s", label, deck.Format(table))
	}
	m.addLog(entry)
	m.setStatus(fmt.Sprintf("%s done", label))

	m.equity = nil
	m.seq++
	return m.estimateCmd()
}

func (m *Model) showdown() {
	sd, err := m.match.DetermineWinner()
	if err != nil {
		m.setError(err)
		return
	}

	var entry string
	if len(sd.Tied) > 1 {
		entry = fmt.Sprintf("Split between %s with %s", strings.Join(sd.Tied, ", "), sd.Description)
	} else {
		entry = fmt.Sprintf("%s wins with %s (%s)", sd.Winner, sd.Description, deck.Format(sd.BestHand))
	}
	m.addLog(entry)
	m.setStatus(entry)
}

func (m *Model) estimateCmd() tea.Cmd {
	seq, ctx, match, trials := m.seq, m.ctx, m.match, m.trials
	return func() tea.Msg {
		eq, err := match.EstimateEquity(ctx, trials)
		return equityMsg{seq: seq, equity: eq, err: err}
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
	m.logger.Debug("Action rejected", "error", err)
}

// addLog appends an entry to the game log and scrolls to it
func (m *Model) addLog(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := HeaderStyle.Render(fmt.Sprintf("Texas Hold'em - %s", m.match.Phase()))
	table := TableStyle.Width(max(m.width-4, 1)).Render(m.renderTable())
	status := m.renderStatus()
	footer := m.help.View(m.keys)

	used := lipgloss.Height(header) + lipgloss.Height(table) + lipgloss.Height(status) + lipgloss.Height(footer)
	m.logViewport.Width = max(m.width-2, 1)
	m.logViewport.Height = max(m.height-used-2, 1)
	logPane := LogStyle.Render(m.logViewport.View())

	return lipgloss.JoinVertical(lipgloss.Left, header, table, logPane, status, footer)
}

// renderTable draws the community cards and one row per player
func (m *Model) renderTable() string {
	var b strings.Builder

	b.WriteString("Table: ")
	if table := m.match.TableCards(); len(table) > 0 {
		b.WriteString(m.faces.Render(table))
	} else {
		b.WriteString(InfoStyle.Render(game.NoTableCards))
	}
	b.WriteString("\n\n")

	for _, p := range m.match.Players() {
		b.WriteString(PlayerNameStyle.Render(p.Name))
		b.WriteString(m.faces.Render(p.Hand))

		if desc, err := m.match.DescribeBestHand(p.Name); err == nil && p.HasCards() {
			b.WriteString("  ")
			b.WriteString(HandInfoStyle.Render(desc))
		}

		b.WriteString("  ")
		if m.equity != nil {
			b.WriteString(EquityStyle.Render(fmt.Sprintf("%5.1f%%", m.equity.Shares[p.Name])))
		} else {
			b.WriteString(InfoStyle.Render("..."))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderStatus() string {
	switch {
	case m.status == "":
		return InfoStyle.Render("Ready")
	case m.statusErr:
		return ErrorStyle.Render(m.status)
	default:
		return SuccessStyle.Render(m.status)
	}
}
