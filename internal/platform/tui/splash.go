package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const splashFrame = 50 * time.Millisecond

// splashTickMsg advances the splash progress bar.
type splashTickMsg time.Time

func splashTick() tea.Cmd {
	return tea.Tick(splashFrame, func(t time.Time) tea.Msg {
		return splashTickMsg(t)
	})
}

var (
	splashTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	splashHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// SplashModel fills a progress bar linearly over a fixed duration, then waits
// for the user to start.
type SplashModel struct {
	bar      progress.Model
	duration time.Duration
	start    time.Time
	percent  float64
	width    int
	height   int
	started  bool
	back     bool
	quitting bool
}

// NewSplashModel creates a splash that fills over d. A zero d is done at once.
func NewSplashModel(d time.Duration, width, height int) SplashModel {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = splashBarWidth(width)
	m := SplashModel{
		bar:      bar,
		duration: d,
		width:    width,
		height:   height,
	}
	if d <= 0 {
		m.percent = 1
	}
	return m
}

func splashBarWidth(width int) int {
	return max(10, min(60, width-10))
}

// Init starts the animation.
func (m SplashModel) Init() tea.Cmd {
	if m.Done() {
		return nil
	}
	return splashTick()
}

// Update handles messages for the splash.
func (m SplashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case splashTickMsg:
		now := time.Time(msg)
		if m.start.IsZero() {
			m.start = now
		}
		m.percent = min(1, float64(now.Sub(m.start))/float64(m.duration))
		if m.Done() {
			return m, nil
		}
		return m, splashTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "esc", "b":
			m.back = true
		case "enter", " ":
			if m.Done() {
				m.started = true
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = splashBarWidth(msg.Width)
	}
	return m, nil
}

// View renders the splash.
func (m SplashModel) View() string {
	var b strings.Builder
	b.WriteString(strings.Repeat("\n", max(1, m.height/3)))
	b.WriteString(centerText(splashTitleStyle.Render("JIGSAW PUZZLE FETCHER"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.bar.ViewAs(m.percent), m.width))
	b.WriteString("\n\n")
	if m.Done() {
		b.WriteString(centerText("[ Start ]", m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(splashHintStyle.Render("Enter: Start  |  Esc: Menu  |  Q: Quit"), m.width))
	} else {
		b.WriteString(centerText(splashHintStyle.Render("Loading..."), m.width))
	}
	b.WriteString("\n")
	return b.String()
}

// Percent returns the fill level in [0, 1].
func (m SplashModel) Percent() float64 {
	return m.percent
}

// Done reports whether the bar is full.
func (m SplashModel) Done() bool {
	return m.percent >= 1
}

// Started reports whether the user pressed Start.
func (m SplashModel) Started() bool {
	return m.started
}
