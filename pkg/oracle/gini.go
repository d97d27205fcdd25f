package oracle

import (
	"bufio"
	"context"
	"strconv"
	"strings"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
)

// GiniOracle decides satisfiability in-process using go-air/gini, with no
// subprocess involved. It exists so the knowledge base's own test suite
// (and any caller that would rather not depend on an external binary) can
// substitute a fast, hermetic solver behind the same Oracle interface the
// production ExternalOracle satisfies.
type GiniOracle struct{}

func (GiniOracle) Decide(ctx context.Context, dimacs string, nvars int) (Verdict, error) {
	if err := ctx.Err(); err != nil {
		return Unknown, err
	}

	g := gini.New()
	if err := feedDIMACS(g, dimacs); err != nil {
		return Unknown, errors.Wrap(err, "failed to load DIMACS into gini")
	}

	switch g.Solve() {
	case 1:
		return SAT, nil
	case -1:
		return UNSAT, nil
	default:
		return Unknown, errors.New("gini returned an indeterminate result")
	}
}

// feedDIMACS parses DIMACS CNF text and adds its clauses to g, translating
// signed integer literals via z.Dimacs2Lit. Comment ("c") and problem
// ("p") lines are skipped; every other line is a whitespace-separated,
// 0-terminated clause.
func feedDIMACS(g *gini.Gini, dimacs string) error {
	scanner := bufio.NewScanner(strings.NewReader(dimacs))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "c") || strings.HasPrefix(line, "p") {
			continue
		}
		for _, tok := range strings.Fields(line) {
			n, err := strconv.Atoi(tok)
			if err != nil {
				return errors.Wrapf(err, "malformed DIMACS token %q", tok)
			}
			if n == 0 {
				g.Add(0)
				continue
			}
			g.Add(z.Dimacs2Lit(n))
		}
	}
	return scanner.Err()
}
