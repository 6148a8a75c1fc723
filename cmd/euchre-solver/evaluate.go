package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/behrlich/euchre-solver/pkg/cfr"
	"github.com/behrlich/euchre-solver/pkg/game"
	"github.com/behrlich/euchre-solver/pkg/istate"
	"github.com/behrlich/euchre-solver/pkg/pimcts"
	"github.com/behrlich/euchre-solver/pkg/search"
)

func newEvaluateCmd(ctx *cliContext) *cobra.Command {
	var (
		gameName     string
		agentKind    string
		agentFile    string
		baselineKind string
		baselineFile string
		rollouts     int
		games        int
		seed         int64
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Play an agent against a baseline over N games and report win rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			newRoot, err := newRootFunc(gameName)
			if err != nil {
				return err
			}
			normalize := keyNormalizer(gameName, ctx.cfg.NormalizeSuit)

			agent, err := buildPolicy(ctx, agentKind, agentFile, rollouts, seed, normalize)
			if err != nil {
				return err
			}
			baseline, err := buildPolicy(ctx, baselineKind, baselineFile, rollouts, seed+1, normalize)
			if err != nil {
				return err
			}

			rng := rand.New(rand.NewSource(seed))
			var agentTotal, baselineTotal float64
			var agentWins int
			for i := 0; i < games; i++ {
				seats := map[int]policy{0: agent, 1: baseline}
				agentTeam := 0
				if i%2 == 1 {
					seats[0], seats[1] = baseline, agent
					agentTeam = 1
				}

				vals := playGame(newRoot(), seats, rng)
				agentScore := teamScore(vals, agentTeam)
				baselineScore := teamScore(vals, 1-agentTeam)
				agentTotal += agentScore
				baselineTotal += baselineScore
				if agentScore > baselineScore {
					agentWins++
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"%s vs %s over %d games: agent won %d (%.1f%%), mean score %.3f vs %.3f\n",
				agentKind, baselineKind, games, agentWins, 100*float64(agentWins)/float64(games),
				agentTotal/float64(games), baselineTotal/float64(games))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&gameName, "game", "kuhn", "game to evaluate: euchre or kuhn")
	flags.StringVar(&agentKind, "agent", "pimcts", "agent under test: random, open-hand, pimcts, or cfr")
	flags.StringVar(&agentFile, "agent-policy", "", "policy file for --agent=cfr")
	flags.StringVar(&baselineKind, "baseline", "random", "baseline opponent: random, open-hand, pimcts, or cfr")
	flags.StringVar(&baselineFile, "baseline-policy", "", "policy file for --baseline=cfr")
	flags.IntVar(&rollouts, "rollouts", 200, "PIMCTS rollouts per decision, for agent/baseline kind pimcts")
	flags.IntVar(&games, "games", 100, "number of games to play")
	flags.Int64Var(&seed, "seed", 1, "seed for deals and any sampling policy")
	return cmd
}

// teamScore averages the terminal value over every player on team,
// since game.Game.Evaluate is per-player but playGame's seats are
// assigned per-team (teamOf collapses Euchre's two seats per team to
// one policy).
func teamScore(vals []float64, team int) float64 {
	var sum float64
	var n int
	for p, v := range vals {
		if teamOf(p) == team {
			sum += v
			n++
		}
	}
	return sum / float64(n)
}

// buildPolicy constructs the policy implementation named by kind. file
// is only consulted for kind "cfr"; rollouts and seed only for
// "pimcts".
func buildPolicy(ctx *cliContext, kind, file string, rollouts int, seed int64, normalize func(g game.Game, player int, key istate.Key) istate.Key) (policy, error) {
	switch kind {
	case "random":
		return randomPolicy{}, nil
	case "open-hand":
		return openHandPolicy{solver: search.NewSolver(ctx.cfg, zerolog.Nop())}, nil
	case "pimcts":
		return pimcts.NewEvaluator(ctx.cfg, rollouts, seed), nil
	case "cfr":
		if file == "" {
			return nil, fmt.Errorf("euchre-solver evaluate: a policy file is required for kind cfr")
		}
		f, err := os.Open(file)
		if err != nil {
			return nil, wrapRuntime(errors.Wrapf(err, "euchre-solver evaluate: opening %s", file))
		}
		defer f.Close()
		profile, err := cfr.LoadProfile(f)
		if err != nil {
			return nil, wrapRuntime(errors.Wrapf(err, "euchre-solver evaluate: loading %s", file))
		}
		return cfr.NewPolicy(profile, normalize), nil
	default:
		return nil, fmt.Errorf("euchre-solver evaluate: unknown policy kind %q (want random, open-hand, pimcts, or cfr)", kind)
	}
}
