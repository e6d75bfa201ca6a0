package log

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"
)

// TestLogger_Modes verifies which messages each verbosity mode lets through.
//
// Scenario: The same organize diagnostics are written in default, verbose and quiet mode
// Expected: Default shows output and warnings, verbose adds debug and command lines, quiet shows nothing
func TestLogger_Modes(t *testing.T) {
	t.Parallel()

	write := func(l *Logger) {
		l.Println("Nothing was moved.")
		l.Printf("Dry run, %s\n", "nothing was moved.")
		l.Warnf("No origin found for '%s'", "/src/no-origin")
		l.Debug("staging", "source", "/src/myrepo")
		l.Command("/src", "git", "clone", "--", "git@host:o/r.git")(1500 * time.Microsecond)
	}

	tests := []struct {
		name    string
		verbose bool
		quiet   bool
		want    string
	}{
		{
			name: "default",
			want: "Nothing was moved.\n" +
				"Dry run, nothing was moved.\n" +
				"Warning: No origin found for '/src/no-origin'\n",
		},
		{
			name:    "verbose",
			verbose: true,
			want: "Nothing was moved.\n" +
				"Dry run, nothing was moved.\n" +
				"Warning: No origin found for '/src/no-origin'\n" +
				"staging source=/src/myrepo\n" +
				"[/src] $ git clone -- git@host:o/r.git (2ms)\n",
		},
		{name: "quiet", quiet: true},
		{name: "quiet wins over verbose", verbose: true, quiet: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			l := New(&buf, tt.verbose, tt.quiet)
			write(l)
			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
			if l.IsVerbose() != (tt.verbose && !tt.quiet) {
				t.Errorf("IsVerbose() = %v", l.IsVerbose())
			}
		})
	}
}

func TestWarnf_SingleNewline(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	New(&buf, false, false).Warnf("Git repo '%s' already exists, not moving...\n", "/src/github.com/o/r")
	want := "Warning: Git repo '/src/github.com/o/r' already exists, not moving...\n"
	if got := buf.String(); got != want {
		t.Errorf("Warnf output = %q, want %q", got, want)
	}
}

func TestDebug_DropsOrphanKey(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	New(&buf, true, false).Debug("moved", "source", "/a", "destination")
	if got := buf.String(); got != "moved source=/a\n" {
		t.Errorf("Debug output = %q", got)
	}
}

func TestCommand_WithoutDir(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	New(&buf, true, false).Command("", "git", "--version")(0)
	if got := buf.String(); got != "$ git --version (0s)\n" {
		t.Errorf("Command output = %q", got)
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, false, false)
	if got := FromContext(WithLogger(context.Background(), l)); got != l {
		t.Error("FromContext did not return the stored logger")
	}
	if l.Writer() != &buf {
		t.Error("Writer() did not return the underlying writer")
	}

	fallback := FromContext(context.Background())
	if fallback.Writer() != io.Discard {
		t.Error("fallback logger should write to io.Discard")
	}
}
