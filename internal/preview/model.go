// Package preview renders a show's scroll-driven sections in the terminal so
// content can be checked without a browser.
package preview

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/whiterosearts/petalsite/internal/content"
	"github.com/whiterosearts/petalsite/internal/media"
	"github.com/whiterosearts/petalsite/internal/scroll"
)

// Rows above the tracked region, and how many viewports tall it is.
const (
	headerRows     = 3
	regionScreens  = 3
	wheelStep      = 3
	petalMapWidth  = 48
	petalMapHeight = 12
)

// Options configures the preview.
type Options struct {
	Slug      string // show to preview; empty means the newest
	FrameRate int
	Travel    float64
	// OpenLink is called when a linked petal is activated.
	OpenLink func(url string)
	Logger   *zap.Logger
}

type tickMsg time.Time

// Model is the bubbletea model for the preview.
type Model struct {
	content  *content.Content
	show     content.Show
	hasShow  bool
	driver   *scroll.Driver
	player   *media.Player
	travel   float64
	interval time.Duration
	openLink func(string)

	width, height int
	regionTop     float64
	regionHeight  float64
	offset        float64
	progress      float64
	focus         int
	status        string
}

// New builds a preview for c. Close must be called once the program exits.
func New(c *content.Content, opts Options) (Model, error) {
	if c == nil {
		return Model{}, fmt.Errorf("preview: no content")
	}
	if opts.FrameRate <= 0 {
		opts.FrameRate = scroll.DefaultFrameRate
	}
	if opts.Travel <= 0 {
		opts.Travel = scroll.DefaultTravel
	}
	if opts.OpenLink == nil {
		opts.OpenLink = func(string) {}
	}

	m := Model{
		content:  c,
		travel:   opts.Travel,
		interval: time.Second / time.Duration(opts.FrameRate),
		openLink: opts.OpenLink,
		focus:    -1,
	}
	if opts.Slug != "" {
		show, ok := c.FindShow(opts.Slug)
		if !ok {
			return Model{}, fmt.Errorf("preview: unknown show %q", opts.Slug)
		}
		m.show, m.hasShow = show, true
	} else {
		m.show, m.hasShow = c.Newest()
	}
	if len(c.Soundtracks) > 0 {
		m.player = media.NewPlayer(c.Soundtracks[0])
	}

	m.driver = scroll.NewDriver(
		scroll.WithFrameRate(opts.FrameRate),
		scroll.WithLogger(opts.Logger),
	)
	return m, nil
}

// Close releases the scroll driver.
func (m Model) Close() error {
	if m.driver == nil {
		return nil
	}
	return m.driver.Close()
}

// Progress returns the progress read on the last frame.
func (m Model) Progress() float64 { return m.progress }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.regionTop = headerRows
		m.regionHeight = float64(msg.Height * regionScreens)
		m.driver.Measure(m.regionTop, m.regionHeight)
		m.driver.Resize(float64(msg.Height))
		m.scrollTo(m.offset)
		return m, nil

	case tickMsg:
		m.progress = m.driver.Progress()
		if m.focus >= 0 && !m.petalVisible(m.focus) {
			m.focus = -1
		}
		return m, m.tick()

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollTo(m.offset - wheelStep)
		case tea.MouseButtonWheelDown:
			m.scrollTo(m.offset + wheelStep)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			m.scrollTo(m.offset - 1)
		case "down", "j":
			m.scrollTo(m.offset + 1)
		case "pgup":
			m.scrollTo(m.offset - float64(m.height))
		case "pgdown", " ":
			m.scrollTo(m.offset + float64(m.height))
		case "home", "g":
			m.scrollTo(0)
		case "end", "G":
			m.scrollTo(m.maxOffset())
		case "tab":
			m.cycleFocus(1)
		case "shift+tab":
			m.cycleFocus(-1)
		case "enter":
			m.activatePetal()
		case "p":
			m.togglePlayer()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) maxOffset() float64 {
	return m.regionTop + math.Max(1, m.regionHeight-float64(m.height))
}

func (m *Model) scrollTo(offset float64) {
	m.offset = math.Min(math.Max(offset, 0), m.maxOffset())
	m.driver.Scroll(m.offset)
}

func (m Model) petalVisible(i int) bool {
	return scroll.RevealPetal(m.progress, i, len(m.show.PetalPositions)).Visible
}

// cycleFocus moves the selection to the next visible petal in dir.
func (m *Model) cycleFocus(dir int) {
	n := len(m.show.PetalPositions)
	if n == 0 {
		return
	}
	start := m.focus
	if start < 0 && dir < 0 {
		start = 0
	}
	for step := 1; step <= n; step++ {
		i := ((start+dir*step)%n + n) % n
		if m.petalVisible(i) {
			m.focus = i
			return
		}
	}
	m.focus = -1
}

func (m *Model) activatePetal() {
	if m.focus < 0 {
		return
	}
	link, ok := m.show.PetalLink(m.focus)
	if !ok {
		m.status = fmt.Sprintf("petal %d has no link", m.focus+1)
		return
	}
	m.status = "opening " + link.Label
	m.openLink(link.URL)
}

func (m *Model) togglePlayer() {
	if m.player == nil {
		m.status = "no soundtrack configured"
		return
	}
	playing, err := m.player.Toggle()
	switch {
	case err != nil:
		m.status = fmt.Sprintf("cannot play %q: %v", m.player.Track().Label, err)
	case playing:
		m.status = "playing " + m.player.Track().Label
	default:
		m.status = "paused"
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	petalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("218")).Bold(true)
	focusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("218"))
	deadStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("218"))
)

// shade maps an opacity onto the 256-colour grey ramp.
func shade(opacity float64) lipgloss.Style {
	level := 235 + int(math.Round(scroll.Clamp01(opacity)*20))
	return lipgloss.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(level)))
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.content.Site.Title))
	if m.hasShow {
		b.WriteString(subtleStyle.Render("  ·  " + m.show.Title))
	}
	b.WriteString("\n")
	b.WriteString(m.progressBar())
	b.WriteString("\n\n")

	for _, line := range scroll.RevealAll(m.progress, len(m.content.Site.Quote), m.travel) {
		// Travel shows up as indentation: one column per 4px still to go.
		indent := strings.Repeat(" ", int(math.Round(line.OffsetY/4)))
		text := m.content.Site.Quote[line.Index]
		if line.Hidden() {
			text = strings.Repeat(" ", len([]rune(text)))
		}
		b.WriteString(indent + shade(line.Opacity).Render(text) + "\n")
	}
	b.WriteString("\n")

	if m.hasShow && len(m.show.PetalPositions) > 0 {
		b.WriteString(m.petalMap())
		b.WriteString("\n")
	}

	b.WriteString(subtleStyle.Render(m.playerLine()))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString(subtleStyle.Render("↑/↓ scroll · tab select petal · enter open · p play/pause · q quit"))
	return b.String()
}

func (m Model) progressBar() string {
	width := 30
	filled := int(math.Round(m.progress * float64(width)))
	return barStyle.Render(strings.Repeat("█", filled)) +
		subtleStyle.Render(strings.Repeat("░", width-filled)) +
		fmt.Sprintf(" %3.0f%%", m.progress*100)
}

func (m Model) petalMap() string {
	grid := make([][]string, petalMapHeight)
	for r := range grid {
		grid[r] = make([]string, petalMapWidth)
		for c := range grid[r] {
			grid[r][c] = " "
		}
	}

	total := len(m.show.PetalPositions)
	for i, p := range m.show.PetalPositions {
		col := int(math.Round(p.X / 100 * (petalMapWidth - 1)))
		row := int(math.Round(p.Y / 100 * (petalMapHeight - 1)))
		col = min(max(col, 0), petalMapWidth-1)
		row = min(max(row, 0), petalMapHeight-1)

		st := scroll.RevealPetal(m.progress, i, total)
		_, linked := m.show.PetalLink(i)
		switch {
		case !st.Visible:
			grid[row][col] = deadStyle.Render("·")
		case i == m.focus:
			grid[row][col] = focusStyle.Render("✿")
		case !linked:
			grid[row][col] = deadStyle.Render("✿")
		default:
			grid[row][col] = petalStyle.Render("✿")
		}
	}

	var b strings.Builder
	border := subtleStyle.Render("+" + strings.Repeat("-", petalMapWidth) + "+")
	b.WriteString(border + "\n")
	for _, row := range grid {
		b.WriteString(subtleStyle.Render("|") + strings.Join(row, "") + subtleStyle.Render("|") + "\n")
	}
	b.WriteString(border)
	if m.focus >= 0 {
		if link, ok := m.show.PetalLink(m.focus); ok {
			b.WriteString("\n" + link.Label)
		}
	}
	return b.String()
}

func (m Model) playerLine() string {
	if m.player == nil {
		return "♪ no soundtrack"
	}
	state := "paused"
	if m.player.Playing() {
		state = "playing"
	}
	return fmt.Sprintf("♪ %s (%s)", m.player.Track().Label, state)
}
