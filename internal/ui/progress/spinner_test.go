package progress

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"charm.land/bubbles/v2/spinner"
	"github.com/charmbracelet/x/ansi"
)

func TestSpinner_DisabledOffTerminal(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	s := NewSpinner(f, "Cloning")
	if s.Enabled() {
		t.Fatal("Enabled() = true for a regular file")
	}
	s.Start()
	s.Stop()
	s.Stop()

	data, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Errorf("disabled spinner wrote %q", data)
	}
}

func TestSpinnerModel_View(t *testing.T) {
	t.Parallel()

	m := spinnerModel{spinner: spinner.New(), message: "Cloning github.com/d6e/git-org"}
	view := ansi.Strip(m.View().Content)
	if !strings.HasSuffix(view, " Cloning github.com/d6e/git-org") {
		t.Errorf("View() = %q, want message after the spinner frame", view)
	}
}
