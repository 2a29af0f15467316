package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/raycastview/internal/platform"
	"github.com/san-kum/raycastview/internal/viewer"
)

type tickMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

var keyNames = map[string]platform.Key{
	"w":      platform.KeyW,
	"a":      platform.KeyA,
	"s":      platform.KeyS,
	"d":      platform.KeyD,
	"q":      platform.KeyQ,
	"e":      platform.KeyE,
	"r":      platform.KeyR,
	" ":      platform.KeySpace,
	"left":   platform.KeyLeft,
	"right":  platform.KeyRight,
	"up":     platform.KeyUp,
	"down":   platform.KeyDown,
	"pgup":   platform.KeyPageUp,
	"pgdown": platform.KeyPageDown,
	"esc":    platform.KeyEscape,
}

// model runs one viewer frame per tick. The viewer does its own input
// handling; key messages only feed the window's input queue.
type model struct {
	win    *Window
	frame  func() error
	period time.Duration
	err    error
	done   bool
}

func newModel(win *Window, frame func() error, period time.Duration) model {
	return model{win: win, frame: frame, period: period}
}

func (m model) Init() tea.Cmd { return tick(m.period) }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		s := msg.String()
		if s == "ctrl+c" {
			m.win.RequestClose()
			m.done = true
			return m, tea.Quit
		}
		if k, ok := keyNames[s]; ok {
			m.win.press(k, false)
		} else if len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z' {
			if k, ok := keyNames[string(s[0]+'a'-'A')]; ok {
				m.win.press(k, true)
			}
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.win.width, m.win.height = msg.Width, msg.Height
		return m, nil
	case tickMsg:
		if m.done {
			return m, nil
		}
		if err := m.frame(); err != nil {
			if !errors.Is(err, viewer.ErrStopped) {
				m.err = err
			}
			m.done = true
			return m, tea.Quit
		}
		if m.win.ShouldClose() {
			m.done = true
			return m, tea.Quit
		}
		return m, tick(m.period)
	}
	return m, nil
}

func (m model) View() string {
	return m.win.View()
}

// Run drives v from a bubbletea program until the user quits, a frame
// fails or the step hook stops the viewer. ctx cancellation also quits.
func Run(ctx context.Context, v *viewer.Viewer, win *Window, h viewer.Hooks, opts ...tea.ProgramOption) error {
	period := time.Second / 30
	if rate := v.Config().TickRate; rate > 0 {
		period = time.Duration(float64(time.Second) / rate)
	}

	frame := func() error {
		if err := v.Frame(h); err != nil {
			return err
		}
		if v.State() == viewer.Stopped {
			return viewer.ErrStopped
		}
		return nil
	}

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(newModel(win, frame, period), opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return final.(model).err
}
