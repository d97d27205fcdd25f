package main

import (
	"context"
	"math/rand/v2"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/LucaSforza/Wumpus-World/pkg/agent"
	"github.com/LucaSforza/Wumpus-World/pkg/kb"
	"github.com/LucaSforza/Wumpus-World/pkg/oracle"
	"github.com/LucaSforza/Wumpus-World/pkg/world"
)

var (
	seedArg       int64
	boardSizeArg  int
	pitsArg       int
	oracleArg     string
	solverPathArg string
)

// newRunCmd returns a command that generates a dungeon and drives the
// hero through it turn by turn until it exits, dies, or reaches an
// impasse.
func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the hero against a freshly generated dungeon",
		Long: `The hero run command generates a square dungeon, seeds a knowledge
base with the fixed Wumpus-World theory, and lets the hero reason its
way to the gold and back one turn at a time.

For example:

  $ hero run --board-size 4 --pits 3 --seed 7 --oracle gini`,
		RunE: runFunc,
	}

	runCmd.Flags().Int64Var(&seedArg, "seed", 1, "RNG seed for dungeon generation and tie-breaking")
	runCmd.Flags().IntVar(&boardSizeArg, "board-size", 4, "side length of the square dungeon")
	runCmd.Flags().IntVar(&pitsArg, "pits", 3, "number of pits to scatter in the dungeon")
	runCmd.Flags().StringVar(&oracleArg, "oracle", "gini", "SAT oracle to use: gini or external")
	runCmd.Flags().StringVar(&solverPathArg, "solver", "minisat", "path to the external DIMACS solver binary, used when --oracle=external")

	return runCmd
}

func buildOracle(name, solverPath string) (oracle.Oracle, error) {
	switch name {
	case "gini":
		return oracle.GiniOracle{}, nil
	case "external":
		return oracle.NewExternalOracle(solverPath), nil
	default:
		return nil, errors.Errorf("unknown oracle %q, want one of: gini, external", name)
	}
}

func runFunc(cmd *cobra.Command, args []string) error {
	o, err := buildOracle(oracleArg, solverPathArg)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewPCG(uint64(seedArg), uint64(seedArg)))

	w, err := world.New(boardSizeArg, pitsArg, rng)
	if err != nil {
		return errors.Wrap(err, "failed to generate dungeon")
	}

	k := kb.New(o)
	k.SetLogger(log.WithField("component", "kb"))
	kb.BuildTheory(k, boardSizeArg)

	h := agent.New(k, boardSizeArg, rng)
	h.SetLogger(log.WithField("component", "agent"))

	ctx := context.Background()
	for turn := 1; ; turn++ {
		perception := w.Perceive()
		action, err := h.NextAction(ctx, perception)
		if err != nil {
			log.WithField("turn", turn).WithError(err).Fatal("hero reached an impasse")
		}

		actErr := w.Act(action)
		switch e := actErr.(type) {
		case nil:
			continue
		case *world.Exited:
			log.WithField("turn", turn).WithField("with_gold", e.WithGold).Info("hero exited the dungeon")
			return nil
		case *world.DeathError:
			log.WithField("turn", turn).WithField("position", e.Pos.String()).Fatal("hero died")
		case *world.ContractViolationError:
			log.WithField("turn", turn).WithError(e).Fatal("world contract violated")
		default:
			log.WithField("turn", turn).WithError(actErr).Fatal("unexpected world error")
		}
	}
}
