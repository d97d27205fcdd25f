package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LucaSforza/Wumpus-World/pkg/kb"
	"github.com/LucaSforza/Wumpus-World/pkg/oracle"
)

var theoryBoardSizeArg int

// newTheoryDumpCmd returns a command that builds the fixed world theory
// for the given board size and prints its DIMACS encoding, a debugging
// aid for inspecting the axioms independent of any particular dungeon.
func newTheoryDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theory-dump",
		Short: "Print the DIMACS encoding of the world theory for a board size",
		RunE:  theoryDumpFunc,
	}

	cmd.Flags().IntVar(&theoryBoardSizeArg, "board-size", 4, "side length of the square dungeon")

	return cmd
}

func theoryDumpFunc(cmd *cobra.Command, args []string) error {
	k := kb.New(oracle.GiniOracle{})
	kb.BuildTheory(k, theoryBoardSizeArg)
	dimacs, names := k.DumpDIMACS()
	fmt.Print(dimacs)
	for id, name := range names {
		fmt.Printf("c %d = %v\n", id+1, name)
	}
	return nil
}
