package oracle

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ExternalOracle decides satisfiability by spawning a DIMACS-speaking SAT
// solver as a child process, writing the formula to its standard input,
// and parsing the verdict line from its standard output. This is the
// reference oracle implementation described by the knowledge base's
// contract: process, stdin, and stdout handles are released on every exit
// path.
type ExternalOracle struct {
	// Path is the solver binary to invoke, e.g. "picosat" or "minisat".
	Path string
	// Args are extra arguments passed to the solver before it reads
	// DIMACS from stdin.
	Args []string
}

// NewExternalOracle returns an ExternalOracle that invokes path with args.
func NewExternalOracle(path string, args ...string) *ExternalOracle {
	return &ExternalOracle{Path: path, Args: args}
}

func (o *ExternalOracle) Decide(ctx context.Context, dimacs string, nvars int) (Verdict, error) {
	cmd := exec.CommandContext(ctx, o.Path, o.Args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return Unknown, errors.Wrap(err, "failed to open solver stdin")
	}
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Start(); err != nil {
		return Unknown, errors.Wrapf(err, "failed to spawn solver %q", o.Path)
	}

	writeErr := writeAndClose(stdin, dimacs)
	// Many solvers exit non-zero on UNSAT (e.g. the SAT competition exit
	// code 20); the verdict lives in stdout, not the exit status, so a
	// non-nil Wait error is not itself fatal here.
	_ = cmd.Wait()

	if writeErr != nil {
		return Unknown, errors.Wrap(writeErr, "failed to write DIMACS to solver stdin")
	}

	verdict, _, err := parseSolverOutput(stdout.String())
	if err != nil {
		return Unknown, errors.Wrapf(err, "failed to read output of solver %q", o.Path)
	}
	return verdict, nil
}

func writeAndClose(w io.WriteCloser, dimacs string) error {
	_, err := io.WriteString(w, dimacs)
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	return err
}

// parseSolverOutput implements the contract in §4.2/§6: a line equal to
// "s SATISFIABLE" anywhere in the output means SAT (any other verdict
// line, or no verdict line at all, means UNSAT), and "v " lines optionally
// carry a model. Completely empty output is a fatal read error, not a
// verdict.
func parseSolverOutput(output string) (Verdict, map[int]bool, error) {
	if len(output) == 0 {
		return Unknown, nil, errors.New("solver produced no output")
	}

	verdict := UNSAT
	model := make(map[int]bool)

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "s SATISFIABLE":
			verdict = SAT
		case strings.HasPrefix(line, "v "):
			for _, tok := range strings.Fields(line[2:]) {
				n, convErr := strconv.Atoi(tok)
				if convErr != nil || n == 0 {
					continue
				}
				if n < 0 {
					model[-n] = false
				} else {
					model[n] = true
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Unknown, nil, err
	}
	return verdict, model, nil
}
