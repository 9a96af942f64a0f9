package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-frameloop/frameloop/backend"
	"github.com/valerio/go-frameloop/frameloop/backend/terminal/render"
	"github.com/valerio/go-frameloop/frameloop/input"
	"github.com/valerio/go-frameloop/frameloop/input/action"
)

const (
	statusHeight = 7
	logCapacity  = 100
)

var (
	styleDefault = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleTitle   = styleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleRate    = styleDefault.Foreground(tcell.ColorGreen)
	styleMuted   = styleDefault.Foreground(tcell.ColorGray)
)

// Backend implements the Backend interface using tcell for terminal rendering
type Backend struct {
	screen    tcell.Screen
	config    backend.Config
	logBuffer *render.LogBuffer
	logLevel  *slog.LevelVar
	signals   chan os.Signal
	actions   []action.Action

	// prevLogger is the default logger Init replaced, restored on Cleanup
	prevLogger *slog.Logger
}

// New creates a terminal backend on the process terminal.
func New() *Backend {
	return &Backend{logLevel: new(slog.LevelVar)}
}

// NewWithScreen creates a terminal backend drawing to the given screen,
// e.g. a tcell.SimulationScreen.
func NewWithScreen(screen tcell.Screen) *Backend {
	b := New()
	b.screen = screen
	return b
}

// Init initializes the terminal backend
func (t *Backend) Init(config backend.Config) error {
	t.config = config

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		t.screen = screen
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	// Logs go to an on-screen panel instead of the terminal itself
	t.logBuffer = render.NewLogBuffer(logCapacity)
	handler := render.NewLogBufferHandler(t.logBuffer, t.logLevel)
	t.prevLogger = slog.Default()
	slog.SetDefault(slog.New(handler).With("run_id", config.RunID))

	t.screen.SetStyle(styleDefault)
	t.screen.Clear()

	t.signals = make(chan os.Signal, 1)
	signal.Notify(t.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	slog.Info("Terminal backend initialized")
	return nil
}

// SetLogLevel changes the minimum level shown in the log panel
func (t *Backend) SetLogLevel(level slog.Level) {
	t.logLevel.Set(level)
}

// PollInput drains pending key events and signals without drawing.
func (t *Backend) PollInput() ([]action.Action, error) {
	t.pollEvents()

	select {
	case sig := <-t.signals:
		slog.Info("Received signal, stopping", "signal", sig.String())
		t.actions = append(t.actions, action.Quit)
	default:
	}

	actions := t.actions
	t.actions = nil
	return actions, nil
}

// Update draws the status and returns the actions gathered from key presses
func (t *Backend) Update(status backend.Status) ([]action.Action, error) {
	actions, err := t.PollInput()
	if err != nil {
		return nil, err
	}

	t.render(status)
	t.screen.Show()
	return actions, nil
}

// Cleanup cleans up terminal resources
func (t *Backend) Cleanup() error {
	if t.signals != nil {
		signal.Stop(t.signals)
	}
	if t.screen != nil {
		slog.Info("Cleaning up terminal backend")
		t.screen.Fini()
	}
	if t.prevLogger != nil {
		slog.SetDefault(t.prevLogger)
		t.prevLogger = nil
	}
	return nil
}

func (t *Backend) pollEvents() {
	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if act, ok := keyAction(ev); ok {
				t.actions = append(t.actions, act)
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func keyAction(ev *tcell.EventKey) (action.Action, bool) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return action.Quit, true
	case tcell.KeyEscape:
		return input.GetDefaultMapping("Escape")
	case tcell.KeyRune:
		return input.GetDefaultMapping(string(ev.Rune()))
	}
	return 0, false
}

func (t *Backend) render(status backend.Status) {
	t.screen.Clear()
	width, height := t.screen.Size()

	title := "frameloop"
	if t.config.Title != "" {
		title = t.config.Title
	}
	t.drawText(0, 0, styleTitle, title)
	t.drawText(0, 1, styleDefault, fmt.Sprintf("time   %10.1f ms   ticks %d", status.TimestampMillis, status.Ticks))
	t.drawText(0, 2, styleDefault, fmt.Sprintf("policy %-8s period %.2f ms (%.1f fps nominal)",
		status.Policy, status.PeriodMillis, status.NominalRate()))
	if status.RateDisplay {
		t.drawText(0, 3, styleRate, fmt.Sprintf("rate   %.1f fps", status.RateEstimate))
	} else {
		t.drawText(0, 3, styleMuted, "rate   off")
	}
	t.drawText(0, 5, styleMuted, "[f] rate display  [r] reset  [+/-] period  [q] quit")

	if height <= statusHeight {
		return
	}
	for x := 0; x < width; x++ {
		t.screen.SetContent(x, statusHeight-1, tcell.RuneHLine, nil, styleMuted)
	}
	t.drawText(2, statusHeight-1, styleMuted, fmt.Sprintf(" log (%d) ", t.logBuffer.Len()))
	for i, entry := range t.logBuffer.GetRecent(height - statusHeight) {
		t.drawText(0, statusHeight+i, styleMuted, render.FormatLogEntry(entry))
	}
}

func (t *Backend) drawText(x, y int, style tcell.Style, text string) {
	width, _ := t.screen.Size()
	for _, r := range text {
		if x >= width {
			return
		}
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
