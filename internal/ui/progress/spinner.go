// Package progress shows a spinner while a long-running step runs.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-isatty"
)

// Spinner wraps a Bubbletea spinner for non-interactive use. A Spinner
// whose output is not a terminal does nothing.
type Spinner struct {
	out     io.Writer
	enabled bool
	message string

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

type spinnerModel struct {
	spinner spinner.Model
	message string
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m spinnerModel) View() tea.View {
	return tea.NewView(fmt.Sprintf("%s %s", m.spinner.View(), m.message))
}

// NewSpinner creates a spinner with the given message drawn on out.
func NewSpinner(out *os.File, message string) *Spinner {
	fd := out.Fd()
	return &Spinner{
		out:     out,
		enabled: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		message: message,
	}
}

// Enabled reports whether the spinner draws anything.
func (s *Spinner) Enabled() bool {
	return s.enabled
}

// Start begins the animation. Calling Start twice is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.program != nil {
		return
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	// Input is not read: the command running underneath may prompt for
	// credentials on the same terminal.
	s.program = tea.NewProgram(spinnerModel{spinner: sp, message: s.message},
		tea.WithOutput(s.out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	s.done = make(chan struct{})

	go func(p *tea.Program, done chan struct{}) {
		_, _ = p.Run()
		close(done)
	}(s.program, s.done)
}

// Stop stops the spinner and clears its line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	p, done := s.program, s.done
	s.program = nil
	s.mu.Unlock()

	if p == nil {
		return
	}
	p.Quit()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
	}
	fmt.Fprint(s.out, "\r\033[K")
}
