package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Question is asked before a plan is executed.
const Question = "Accept?"

// Approval asks the user to accept a proposed plan.
//
// On a terminal it shows a single-key prompt. Otherwise it prints
// "Accept? [y/N]" to Out and reads one line from In; "y" or "yes" in any
// case accepts, anything else including end of input declines.
type Approval struct {
	In          io.Reader
	Out         io.Writer
	Interactive bool
}

// NewApproval returns an Approval reading from in. The interactive prompt is
// used when in is a terminal.
func NewApproval(in *os.File, out io.Writer) *Approval {
	fd := in.Fd()
	return &Approval{
		In:          in,
		Out:         out,
		Interactive: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}

// Approve asks the question and reports the answer.
func (a *Approval) Approve(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if a.Interactive {
		fmt.Fprintln(a.Out)
		res, err := Confirm(ctx, Question, a.In)
		if err != nil {
			return false, err
		}
		return res.Confirmed && !res.Cancelled, nil
	}

	fmt.Fprintf(a.Out, "\n%s [y/N] ", Question)
	line, err := bufio.NewReader(a.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	return Accepts(line), nil
}

// Accepts reports whether answer is a yes.
func Accepts(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
