package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/behrlich/euchre-solver/pkg/euchre"
	"github.com/behrlich/euchre-solver/pkg/game"
)

func newSizeCmd() *cobra.Command {
	var (
		gameName string
		deal     string
		maxNodes int
		seed     int64
	)

	cmd := &cobra.Command{
		Use:   "size",
		Short: "Estimate the decision-tree node count for a starting deal",
		RunE: func(cmd *cobra.Command, args []string) error {
			var root game.Game
			if deal != "" {
				if gameName != "euchre" {
					return fmt.Errorf("euchre-solver size: --deal is only supported for --game=euchre")
				}
				s, err := euchre.Parse(deal)
				if err != nil {
					return fmt.Errorf("euchre-solver size: %w", err)
				}
				root = s
			} else {
				r, err := dealRoot(gameName, rand.New(rand.NewSource(seed)))
				if err != nil {
					return err
				}
				root = r
			}

			count := 0
			truncated := !countNodes(root, maxNodes, &count)

			if truncated {
				fmt.Fprintf(cmd.OutOrStdout(), "tree truncated at %d nodes (exceeds --max-nodes=%d)\n", count, maxNodes)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "tree has %d nodes\n", count)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&gameName, "game", "euchre", "game to size: euchre or kuhn")
	flags.StringVar(&deal, "deal", "", "canonical Euchre deal text (euchre.Parse format); random deal if empty")
	flags.IntVar(&maxNodes, "max-nodes", 2_000_000, "stop counting once this many nodes have been visited")
	flags.Int64Var(&seed, "seed", 1, "seed for the random deal when --deal is empty")
	return cmd
}

// countNodes walks every node reachable from g via LegalActions/Apply,
// depth first, incrementing count for each one visited (including g
// itself) and returning false as soon as count exceeds cap, at which
// point the caller's count is a lower bound rather than the exact size.
func countNodes(g game.Game, cap int, count *int) bool {
	*count++
	if *count > cap {
		return false
	}
	if g.IsTerminal() {
		return true
	}
	for _, a := range g.LegalActions(nil) {
		g.Apply(a)
		ok := countNodes(g, cap, count)
		g.Undo()
		if !ok {
			return false
		}
	}
	return true
}
