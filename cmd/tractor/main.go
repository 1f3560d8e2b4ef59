// Command tractor is a small inspection CLI over the rules engine and
// rule-based AI: it prints static rules references and can synthesize
// a random round to show what the AI would decide at each of the
// three entry points. It carries no TUI — the teacher's
// bubbletea/lipgloss rendering has no equivalent here, since driving a
// screen is out of scope.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"github.com/bran/tractor/internal/ai/rulebased"
	"github.com/bran/tractor/internal/card"
	"github.com/bran/tractor/internal/state"
)

func main() {
	cliApp := &cli.App{
		Name:  "tractor",
		Usage: "Inspect Tractor/Shengji rules and rule-based AI decisions",
		Commands: []*cli.Command{
			{
				Name:    "rules",
				Aliases: []string{"r"},
				Usage:   "Display Tractor rules references",
				Subcommands: []*cli.Command{
					{
						Name:   "trump",
						Usage:  "Show trump precedence",
						Action: showTrumpRules,
					},
					{
						Name:   "scoring",
						Usage:  "Show point-card values and kitty multipliers",
						Action: showScoring,
					},
				},
			},
			{
				Name:   "decide",
				Usage:  "Deal a random round and show what the AI would decide",
				Action: runDecide,
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "seed", Usage: "deal with a fixed RNG seed instead of the current time"},
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func showTrumpRules(c *cli.Context) error {
	fmt.Print(`
TRUMP PRECEDENCE
=================

The trump group consists of, highest to lowest:

1. Big Joker
2. Small Joker
3. Trump rank in the declared trump suit  (e.g. 2♠ when Spades is trump and rank is 2)
4. Trump rank in every other suit          (e.g. 2♥, 2♦, 2♣ — these tie with each other)
5. Every other card of the trump suit, by natural rank (A high, 3 low)

Before a suit is declared, only the jokers and the trump-rank cards of
every suit are trump; every other card follows its natural suit.

Once a suit is declared, that suit's non-rank cards join the trump
group and are pulled out of their natural suit's follow-suit ladder.

Use 'tractor rules scoring' for point values and the kitty bonus.
`)
	return nil
}

func showScoring(c *cli.Context) error {
	fmt.Print(`
SCORING
=======

POINT CARDS
-----------
  5  -> 5 points
  10 -> 10 points
  K  -> 10 points
  everything else (2-4, 6-9, J, Q, A, jokers) -> 0 points

A round holds 200 points total across its 108 cards (including the
8-card kitty), conserved every round.

GOAL
----
The attacking team must reach 80 points across the round's tricks to
keep attacking next round; falling short hands the attacking role to
the defenders.

KITTY BONUS
-----------
Whichever team wins the final trick of the round, if attacking,
harvests the kitty's point value multiplied by:
  2x  if the winning play was a single card
  4x  if the winning play was a pair or tractor

A defending-team win on the final trick leaves the kitty unscored.
`)
	return nil
}

func runDecide(c *cli.Context) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Level: log.DebugLevel})

	seed := c.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	g := state.NewRound(1, rng, card.Two, 0, "B")
	logger = logger.With("round", g.RoundID)
	logger.Info("dealt round", "seed", seed)

	engine := rulebased.New(rulebased.DefaultConfig(), logger)
	actingSeat := g.RoundStartingPlayerIndex

	g.Phase = state.Declaring
	suit, declare, err := engine.EvaluateDeclaration(g, actingSeat)
	if err != nil {
		return err
	}
	if declare {
		g.ConsiderDeclaration(actingSeat, suit, state.DeclarationStrength(1))
		fmt.Printf("seat %d declares trump: %s\n", actingSeat, suit)
	} else {
		fmt.Printf("seat %d has no strong declaration; trump rank %s stands alone\n", actingSeat, card.Two)
	}

	player, err := g.Seat(actingSeat)
	if err != nil {
		return err
	}
	player.Hand.AddAll(g.Kitty)
	g.Phase = state.KittySwap
	discards, err := engine.ChooseKittySwap(g, actingSeat)
	if err != nil {
		return err
	}
	player.Hand.RemoveAll(discards)
	fmt.Printf("seat %d buries: %v\n", actingSeat, discards)

	g.Phase = state.Playing
	g.CurrentTrick = nil
	lead, err := engine.ChoosePlay(g, actingSeat)
	if err != nil {
		return err
	}
	fmt.Printf("seat %d leads: %v\n", actingSeat, lead)

	return nil
}
