package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/termfolio/internal/clock"
	"github.com/san-kum/termfolio/internal/config"
	"github.com/san-kum/termfolio/internal/page"
	"github.com/san-kum/termfolio/internal/prefs"
	"github.com/san-kum/termfolio/internal/reveal"
	"github.com/san-kum/termfolio/internal/typewriter"
	"github.com/san-kum/termfolio/internal/viewport"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	headerLines   = 3
	footerLines   = 2
	gutter        = 2
	clockLayout   = "2006-01-02 15:04:05"
	scrollFrame   = time.Second / 60
	lineRepeat    = 25 * time.Millisecond
)

type (
	heroTickMsg        struct{}
	clockMsg           time.Time
	scrollStepMsg      struct{}
	visibilityCheckMsg struct{}
	fadeDoneMsg        struct{}
)

// scrollState is shared by every copy of the Model so the viewport tracker
// always measures against the current position.
type scrollState struct {
	offset, target int
	viewHeight     int
	docHeight      int
}

func (s *scrollState) maxOffset() int { return max(0, s.docHeight-s.viewHeight) }

func (s *scrollState) clamp(line int) int { return min(max(line, 0), s.maxOffset()) }

func (s *scrollState) rect() viewport.Rect {
	return viewport.Rect{Top: s.offset, Height: s.viewHeight}
}

// Options wire the model to its surroundings.
type Options struct {
	Config  *config.Config
	Content *page.Content
	Prefs   *prefs.Store
	Logger  *slog.Logger
	// Scheduler is the time source for fade tracking. Defaults to the real
	// clock.
	Scheduler clock.Scheduler
}

// Model is the portfolio page: a typed hero line over a scrolling document
// whose sections reveal themselves the first time they come into view.
type Model struct {
	content    *page.Content
	blocks     []*page.Block
	observer   *reveal.Observer
	tracker    *viewport.Tracker
	scroll     *scrollState
	revealedAt map[*page.Block]time.Time
	sched      clock.Scheduler
	checks     *clock.Debouncer
	lines      *clock.Throttler

	hero     typewriter.State
	heroText string
	timing   typewriter.Timing

	theme  Theme
	styles styles
	prefs  *prefs.Store
	logger *slog.Logger

	width, height int
	now           time.Time
}

func NewModel(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	content := opts.Content
	if content == nil {
		content = page.Default()
	}
	if err := content.Validate(); err != nil {
		return Model{}, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = clock.Real()
	}
	store := opts.Prefs
	if store == nil {
		store = prefs.New(nil, logger)
	}

	hero, err := typewriter.NewState(content.Phrases)
	if err != nil {
		return Model{}, err
	}
	revealOpts, err := cfg.RevealOptions()
	if err != nil {
		return Model{}, err
	}

	theme := ResolveTheme(cfg.Theme, store.Theme())
	m := Model{
		content:    content,
		scroll:     &scrollState{target: -1},
		revealedAt: make(map[*page.Block]time.Time),
		sched:      sched,
		lines:      clock.NewThrottler(sched, lineRepeat),
		hero:       hero,
		timing:     cfg.Timing(),
		theme:      theme,
		styles:     newStyles(theme),
		prefs:      store,
		logger:     logger,
		width:      defaultWidth,
		height:     defaultHeight,
		now:        sched.Now(),
	}
	m.blocks = page.Layout(content, m.contentWidth())
	m.resize(m.width, m.height)

	revealedAt, scroll := m.revealedAt, m.scroll
	action := reveal.Chain(reveal.LoadAndAnimate(), reveal.ActionFunc(func(el reveal.Element) {
		b := el.(*page.Block)
		revealedAt[b] = sched.Now()
		logger.Info("section revealed", "section", b.Section.ID, "offset", scroll.offset)
	}))
	factory := viewport.Factory(scroll.rect, func(t *viewport.Tracker) { m.tracker = t })
	m.observer, err = reveal.New(factory, action, revealOpts, logger)
	if err != nil {
		return Model{}, err
	}
	elems := make([]reveal.Element, len(m.blocks))
	for i, b := range m.blocks {
		elems[i] = b
	}
	m.observer.Observe(elems...)
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		heroTick(0),
		clockTick(),
		func() tea.Msg { return visibilityCheckMsg{} },
	)
}

func heroTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return heroTickMsg{} })
}

func clockTick() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg { return clockMsg(t) })
}

func scrollTick() tea.Cmd {
	return tea.Tick(scrollFrame, func(time.Time) tea.Msg { return scrollStepMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, m.requestCheck()
	case heroTickMsg:
		next, frame := typewriter.Step(m.hero, m.timing)
		m.hero, m.heroText = next, frame.Text
		return m, heroTick(frame.Delay)
	case clockMsg:
		m.now = time.Time(msg)
		return m, clockTick()
	case scrollStepMsg:
		return m, m.stepScroll()
	case visibilityCheckMsg:
		return m, m.checkNow()
	case fadeDoneMsg:
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c", "esc":
		m.shutdown()
		return m, tea.Quit
	case "down", "j", "up", "k":
		// held keys repeat faster than the page redraws
		if !m.lines.Allow() {
			return m, nil
		}
		if key == "down" || key == "j" {
			return m, m.scrollBy(1)
		}
		return m, m.scrollBy(-1)
	case "pgdown", " ", "ctrl+d":
		return m, m.scrollBy(max(1, m.scroll.viewHeight-1))
	case "pgup", "ctrl+u":
		return m, m.scrollBy(-max(1, m.scroll.viewHeight-1))
	case "g", "home":
		return m, m.jumpTo(0)
	case "G", "end":
		return m, m.jumpTo(m.scroll.maxOffset())
	case "t":
		m.toggleTheme()
		return m, nil
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			idx := int(key[0] - '1')
			if idx < len(m.blocks) {
				return m, m.jumpTo(m.blocks[idx].Box().Top)
			}
		}
	}
	return m, nil
}

func (m *Model) shutdown() {
	if m.checks != nil {
		m.checks.Cancel()
	}
	m.observer.DisconnectAll()
	m.logger.Info("page closed", "revealed", m.observer.Revealed(), "sections", len(m.blocks))
}

func (m *Model) toggleTheme() {
	m.theme = NextTheme(m.theme.Name)
	m.styles = newStyles(m.theme)
	if err := m.prefs.SetTheme(m.theme.Name); err != nil {
		m.logger.Warn("failed to save theme", "theme", m.theme.Name, "error", err)
	}
}

func (m *Model) contentWidth() int { return max(m.width-2*gutter, 1) }

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	page.Relayout(m.blocks, m.contentWidth())
	m.scroll.viewHeight = max(height-headerLines-footerLines, 1)
	m.scroll.docHeight = page.DocHeight(m.blocks)
	m.scroll.offset = m.scroll.clamp(m.scroll.offset)
	if m.scroll.target >= 0 {
		m.scroll.target = m.scroll.clamp(m.scroll.target)
	}
}

func (m *Model) scrollBy(n int) tea.Cmd {
	m.scroll.target = -1
	next := m.scroll.clamp(m.scroll.offset + n)
	if next == m.scroll.offset {
		return nil
	}
	m.scroll.offset = next
	return m.requestCheck()
}

// jumpTo starts a smooth scroll toward line.
func (m *Model) jumpTo(line int) tea.Cmd {
	m.scroll.target = m.scroll.clamp(line)
	if m.scroll.target == m.scroll.offset {
		m.scroll.target = -1
		return nil
	}
	return scrollTick()
}

func (m *Model) stepScroll() tea.Cmd {
	s := m.scroll
	if s.target < 0 {
		return nil
	}
	dist := s.target - s.offset
	step := dist / 4
	if step == 0 {
		step = dist
		if dist > 0 {
			step = 1
		} else if dist < 0 {
			step = -1
		}
	}
	s.offset += step
	check := m.requestCheck()
	if s.offset == s.target {
		s.target = -1
		return check
	}
	return tea.Batch(check, scrollTick())
}

// requestCheck runs a visibility check now, or debounced when the model
// is attached to a running program.
func (m *Model) requestCheck() tea.Cmd {
	if m.checks != nil {
		m.checks.Trigger()
		return nil
	}
	return m.checkNow()
}

func (m *Model) checkNow() tea.Cmd {
	if m.tracker == nil {
		return nil
	}
	before := m.observer.Revealed()
	m.tracker.Check()
	if m.observer.Revealed() == before {
		return nil
	}
	return tea.Tick(reveal.AnimationDuration, func(time.Time) tea.Msg { return fadeDoneMsg{} })
}

func (m Model) fading(b *page.Block) bool {
	at, ok := m.revealedAt[b]
	return ok && m.sched.Now().Sub(at) < reveal.AnimationDuration
}

func (m Model) View() string {
	var b strings.Builder
	w := m.width

	name := GradientText(m.content.Name, m.theme.Primary, m.theme.Secondary)
	b.WriteString(strings.Repeat(" ", gutter) + name + "  " + m.styles.tagline.Render(m.content.Tagline) + "\n")
	b.WriteString(strings.Repeat(" ", gutter) + m.styles.prompt.Render("> ") + m.styles.hero.Render(m.heroText) + m.styles.cursor.Render("▌") + "\n")
	b.WriteString(m.styles.rule(w) + "\n")

	lines := m.documentLines()
	start := m.scroll.offset
	for i := 0; i < m.scroll.viewHeight; i++ {
		if idx := start + i; idx < len(lines) {
			b.WriteString(lines[idx])
		}
		b.WriteString("\n")
	}

	b.WriteString(m.menuLine() + "\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m Model) documentLines() []string {
	lines := make([]string, m.scroll.docHeight)
	pad := strings.Repeat(" ", gutter)
	for _, blk := range m.blocks {
		box := blk.Box()
		rows := m.renderBlock(blk)
		for i, row := range rows {
			if idx := box.Top + i; idx < len(lines) {
				lines[idx] = pad + row
			}
		}
	}
	return lines
}

func (m Model) renderBlock(blk *page.Block) []string {
	rows := make([]string, 0, blk.Box().Height)
	if !blk.Revealed() {
		rows = append(rows, m.styles.pending.Render(strings.Repeat("░", lipgloss.Width(blk.Title()))))
		for _, l := range blk.Body() {
			rows = append(rows, m.styles.pending.Render(strings.Repeat("·", lipgloss.Width(l))))
		}
		if blk.Section.Image != "" {
			rows = append(rows, m.styles.pending.Render("▢"))
		}
		return rows
	}

	heading, body, image := m.styles.heading, m.styles.body, m.styles.image
	indent := ""
	if m.fading(blk) {
		heading, body, image = m.styles.fading, m.styles.fading, m.styles.fading
		if strings.HasPrefix(blk.Style("transform"), "translate") {
			indent = "  "
		}
	}
	rows = append(rows, indent+heading.Render(blk.Title()))
	for _, l := range blk.Body() {
		rows = append(rows, indent+body.Render(l))
	}
	if blk.Section.Image != "" {
		src := blk.Image()
		if src == "" {
			src = "loading…"
		}
		rows = append(rows, indent+image.Render("▣ "+src))
	}
	return rows
}

func (m Model) menuLine() string {
	parts := make([]string, 0, len(m.blocks))
	for i, blk := range m.blocks {
		if i >= 9 {
			break
		}
		parts = append(parts, m.styles.key.Render(fmt.Sprintf("%d", i+1))+" "+m.styles.hint.Render(blk.Title()))
	}
	return strings.Repeat(" ", gutter) + strings.Join(parts, "  ")
}

func (m Model) statusLine() string {
	total := len(m.blocks)
	done := m.observer.Revealed()
	frac := 0.0
	if total > 0 {
		frac = float64(done) / float64(total)
	}
	left := strings.Repeat(" ", gutter) +
		m.styles.key.Render("j/k") + m.styles.hint.Render(" scroll  ") +
		m.styles.key.Render("t") + m.styles.hint.Render(" theme:"+m.theme.Name+"  ") +
		m.styles.key.Render("q") + m.styles.hint.Render(" quit  ") +
		m.styles.progressBar(frac, 10) + m.styles.hint.Render(fmt.Sprintf(" %d/%d", done, total))
	right := m.styles.hint.Render(m.now.Format(clockLayout))
	space := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right)-gutter)
	return left + strings.Repeat(" ", space) + right
}

// Offset is the first document line on screen.
func (m Model) Offset() int { return m.scroll.offset }

func (m Model) HeroText() string { return m.heroText }

func (m Model) ThemeName() string { return m.theme.Name }

func (m Model) Blocks() []*page.Block { return m.blocks }

func (m Model) Observer() *reveal.Observer { return m.observer }
