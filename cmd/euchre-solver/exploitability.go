package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/behrlich/euchre-solver/pkg/bestresponse"
	"github.com/behrlich/euchre-solver/pkg/cfr"
	"github.com/behrlich/euchre-solver/pkg/game"
	"github.com/behrlich/euchre-solver/pkg/istate"
)

// bestResponseNashConv loads nothing itself; it wraps
// bestresponse.Exploitability for a policy already in hand, shared by
// both the train command's post-training checkpoint (Kuhn only, see
// train.go) and the exploitability command's file-loaded policies.
func bestResponseNashConv(newRoot func() game.Game, p bestresponse.Policy, normalize func(g game.Game, player int, key istate.Key) istate.Key) (float64, []float64) {
	return bestresponse.Exploitability(newRoot, p, normalize, 0)
}

func newExploitabilityCmd(ctx *cliContext) *cobra.Command {
	var (
		gameName     string
		policyFiles  []string
		cutThreshold float64
	)

	cmd := &cobra.Command{
		Use:   "exploitability",
		Short: "Report NashConv for one or more saved policy checkpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(policyFiles) == 0 {
				return fmt.Errorf("euchre-solver exploitability: at least one --policy is required")
			}
			newRoot, err := newRootFunc(gameName)
			if err != nil {
				return err
			}
			normalize := keyNormalizer(gameName, ctx.cfg.NormalizeSuit)

			if gameName == "euchre" {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: exploitability enumerates every decision node in the game tree; Euchre's tree is far larger than Kuhn's and this may not finish")
			}

			for _, path := range policyFiles {
				f, err := os.Open(path)
				if err != nil {
					return wrapRuntime(errors.Wrapf(err, "euchre-solver exploitability: opening %s", path))
				}
				profile, err := cfr.LoadProfile(f)
				f.Close()
				if err != nil {
					return wrapRuntime(errors.Wrapf(err, "euchre-solver exploitability: loading %s", path))
				}

				p := cfr.NewPolicy(profile, normalize)
				nashConv, perPlayer := bestresponse.Exploitability(newRoot, p, normalize, cutThreshold)
				fmt.Fprintf(cmd.OutOrStdout(), "%s: NashConv=%.6f per-player=%v (%d info-sets)\n",
					path, nashConv, perPlayer, profile.NumInfoSets())
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&gameName, "game", "kuhn", "game the policy was trained for: euchre or kuhn")
	flags.StringArrayVar(&policyFiles, "policy", nil, "trained policy file; repeat for multiple checkpoints")
	flags.Float64Var(&cutThreshold, "cut-threshold", 0, "prune best-response transitions at or below this probability")
	return cmd
}
