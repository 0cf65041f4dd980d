package cli

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/parcoords/pkg/chart"
	"github.com/matzehuels/parcoords/pkg/dimension"
)

// Brush steps as fractions of the axis height.
const (
	brushNudge   = 0.05
	brushInitial = 0.5
	maxListedIDs = 12
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	statusStyle       = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Selection Feed
// =============================================================================

// selectionMsg carries the selected IDs delivered by the chart.
type selectionMsg []int

// selectionFeed hands the latest selection from chart callbacks, which
// may run on timer goroutines, to the bubbletea loop.
type selectionFeed struct {
	mu    sync.Mutex
	ids   []int
	ready chan struct{}
}

func newSelectionFeed() *selectionFeed {
	return &selectionFeed{ready: make(chan struct{}, 1)}
}

func (f *selectionFeed) push(ids []int) {
	f.mu.Lock()
	f.ids = ids
	f.mu.Unlock()
	select {
	case f.ready <- struct{}{}:
	default:
	}
}

func (f *selectionFeed) wait() tea.Cmd {
	return func() tea.Msg {
		<-f.ready
		f.mu.Lock()
		defer f.mu.Unlock()
		return selectionMsg(f.ids)
	}
}

// =============================================================================
// ExploreModel - Interactive brushing
// =============================================================================

// ExploreModel is the bubbletea model of the explore command. It drives a
// chart with the keyboard: one axis is focused at a time, its range brush
// can be created, nudged, resized and cleared, and the axis can be moved
// along the order.
type ExploreModel struct {
	chart    *chart.Chart
	feed     *selectionFeed
	title    string
	cursor   int
	snap     chart.Snapshot
	selected []int
	status   string
}

// NewExploreModel creates an explore model over c. It subscribes to the
// chart's selection notifications.
func NewExploreModel(title string, c *chart.Chart) ExploreModel {
	feed := newSelectionFeed()
	c.OnSelectionChanged(feed.push)
	return ExploreModel{
		chart:    c,
		feed:     feed,
		title:    title,
		snap:     c.Snapshot(),
		selected: c.SelectedIDs(),
	}
}

func (m ExploreModel) Init() tea.Cmd {
	return m.feed.wait()
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case selectionMsg:
		m.selected = msg
		return m, m.feed.wait()
	case tea.KeyMsg:
		m.status = ""
		if err := m.handleKey(msg.String()); err != nil {
			if errors.Is(err, errQuit) {
				return m, tea.Quit
			}
			m.status = err.Error()
		}
		m.snap = m.chart.Snapshot()
		m.cursor = min(m.cursor, max(0, len(m.snap.Axes)-1))
	}
	return m, nil
}

var errQuit = errors.New("quit")

func (m *ExploreModel) handleKey(key string) error {
	axes := m.snap.Axes
	if len(axes) == 0 {
		if key == "q" || key == "ctrl+c" {
			return errQuit
		}
		return nil
	}
	ax := axes[m.cursor]

	switch key {
	case "q", "ctrl+c":
		return errQuit
	case "left", "h":
		m.cursor = max(0, m.cursor-1)
	case "right", "l":
		m.cursor = min(len(axes)-1, m.cursor+1)
	case "shift+left", "H":
		return m.moveAxis(-1)
	case "shift+right", "L":
		return m.moveAxis(1)
	case "b":
		if ax.Brush != nil {
			_, err := m.chart.ClearRangeBrush(ax.Name)
			return err
		}
		lo, hi := axisSpan(ax)
		pad := (hi - lo) * (1 - brushInitial) / 2
		_, err := m.chart.SetRangeBrush(ax.Name, lo+pad, hi-pad)
		return err
	case "x":
		_, err := m.chart.ClearRangeBrush(ax.Name)
		return err
	case "up", "k":
		return m.adjustBrush(ax, -1, -1)
	case "down", "j":
		return m.adjustBrush(ax, 1, 1)
	case "+", "=":
		return m.adjustBrush(ax, -1, 1)
	case "-":
		return m.adjustBrush(ax, 1, -1)
	case "esc":
		m.chart.ClearAllBrushes()
	}
	return nil
}

// adjustBrush moves the brush ends on ax by one nudge each, in the
// directions given for the low and high pixel end. The brush stays inside
// the axis.
func (m *ExploreModel) adjustBrush(ax chart.Axis, dLo, dHi float64) error {
	if ax.Brush == nil {
		return nil
	}
	lo, hi := axisSpan(ax)
	step := (hi - lo) * brushNudge
	nlo := ax.Brush.Lo + dLo*step
	nhi := ax.Brush.Hi + dHi*step
	if nlo < lo {
		nhi += lo - nlo
		nlo = lo
	}
	if nhi > hi {
		nlo -= nhi - hi
		nhi = hi
	}
	nlo = max(nlo, lo)
	if nhi-nlo < step {
		return nil
	}
	_, err := m.chart.SetRangeBrush(ax.Name, nlo, nhi)
	return err
}

// moveAxis drags the focused axis just past its neighbour in direction dir.
func (m *ExploreModel) moveAxis(dir int) error {
	axes := m.snap.Axes
	to := m.cursor + dir
	if to < 0 || to >= len(axes) {
		return nil
	}
	name := axes[m.cursor].Name
	x := axes[to].X + float64(dir)
	if err := m.chart.DragStart(name); err != nil {
		return err
	}
	if err := m.chart.DragMove(name, x); err != nil {
		return err
	}
	if err := m.chart.DragEnd(name); err != nil {
		return err
	}
	m.cursor = to
	return nil
}

// axisSpan returns the pixel extent of ax, low to high.
func axisSpan(ax chart.Axis) (lo, hi float64) {
	return min(ax.Y0, ax.Y1), max(ax.Y0, ax.Y1)
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(statsLine(len(m.snap.Lines), len(m.snap.Axes), len(m.selected)))
	b.WriteString("\n\n")

	rows := make([][]string, len(m.snap.Axes))
	for i, ax := range m.snap.Axes {
		cursor := "  "
		if i == m.cursor {
			cursor = iconCursor + " "
		}
		rows[i] = []string{cursor, ax.Title, ax.Kind, ax.Role, m.brushLabel(ax)}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Axis", "Kind", "Role", "Brush").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			ax := m.snap.Axes[row]
			switch {
			case col == 4 && ax.Brush != nil:
				return styleBrush
			case col == 3 && ax.Role == dimension.RoleCriterion.String():
				return styleCriterion
			case row == m.cursor:
				return listSelectedStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render("selected: " + listIDs(m.selected)))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render("←/→ axis  ⇧←/⇧→ move  b brush  ↑/↓ nudge  +/- resize  x clear  esc clear all  q quit"))
	return b.String()
}

// brushLabel describes the brush on ax in domain terms.
func (m ExploreModel) brushLabel(ax chart.Axis) string {
	if ax.Brush == nil {
		return "—"
	}
	if lo, hi, ok := m.chart.RangeBrushLabels(ax.Name); ok {
		return lo + " to " + hi
	}
	var cats []string
	for _, tk := range ax.Ticks {
		if tk.Y >= ax.Brush.Lo && tk.Y <= ax.Brush.Hi {
			cats = append(cats, tk.Label)
		}
	}
	if len(cats) == 0 {
		return "(none)"
	}
	return strings.Join(cats, ", ")
}

func listIDs(ids []int) string {
	if len(ids) == 0 {
		return "none"
	}
	shown := ids[:min(len(ids), maxListedIDs)]
	parts := make([]string, len(shown))
	for i, id := range shown {
		parts[i] = fmt.Sprint(id)
	}
	s := strings.Join(parts, ", ")
	if rest := len(ids) - len(shown); rest > 0 {
		s += fmt.Sprintf(" … (+%d)", rest)
	}
	return s
}
