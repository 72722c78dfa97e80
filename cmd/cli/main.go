package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"sleepy-game/internal/config"
	"sleepy-game/internal/game"
	"sleepy-game/internal/logger"

	"github.com/rs/zerolog/log"
)

const botStepLimit = 2000

func main() {
	cfg := config.Get()
	seats := flag.Int("seats", 2, "number of seats (2-4)")
	seed := flag.Int64("seed", cfg.RNGSeed, "rng seed, 0 for time based")
	flag.Parse()
	logger.Init(cfg.LogLevel, cfg.LogPretty)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	eng, err := game.NewEngine(game.Rules{
		MaxHandSize:       cfg.MaxHandSize,
		CharactersPerSeat: cfg.CharactersPerSeat,
		Variant:           game.Variant(cfg.CardCatalog),
	}, *seed)
	if err != nil {
		log.Fatal().Err(err).Msg("engine")
	}

	specs := []game.SeatSpec{{Name: "You"}}
	for i := 1; i < *seats; i++ {
		specs = append(specs, game.SeatSpec{Name: fmt.Sprintf("CPU %d", i), IsBot: true})
	}
	g, err := eng.NewGame(specs)
	if err != nil {
		log.Fatal().Err(err).Msg("new game")
	}
	g, notice, err := eng.Start(g)
	if err != nil {
		log.Fatal().Err(err).Msg("start")
	}
	fmt.Println(notice.Message)

	reader := bufio.NewReader(os.Stdin)
	for steps := 0; !g.Over && steps < botStepLimit; steps++ {
		if seat, a, ok := botTurn(g); ok {
			next, n, err := eng.Resolve(g, seat, a)
			if err != nil {
				next, n, err = eng.Resolve(g, seat, game.EndTurn())
				if err != nil {
					log.Error().Err(err).Int("seat", seat).Msg("bot stuck")
					return
				}
			}
			g = next
			fmt.Println(n.Message)
			continue
		}

		printSnapshot(game.Project(g, 0, 0))
		for {
			fmt.Print("> ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			a, err := parseAction(strings.Fields(line))
			if err != nil {
				fmt.Println(err)
				continue
			}
			next, n, err := eng.Resolve(g, 0, a)
			if err != nil {
				fmt.Println("Not allowed:", err)
				continue
			}
			g = next
			fmt.Println(n.Message)
			break
		}
	}

	fmt.Println("\nGame over:", g.WinStatus())
	js, _ := json.MarshalIndent(game.Project(g, 0, 5), "", "  ")
	fmt.Println(string(js))
}

// botTurn returns the next bot decision, preferring the seat whose turn it is.
func botTurn(g *game.Game) (int, game.Action, bool) {
	for i := range g.Seats {
		seat := (g.CurrentTurn + i) % len(g.Seats)
		if !g.Seats[seat].IsBot {
			continue
		}
		if a, ok := game.ChooseAction(game.Project(g, seat, 0)); ok {
			return seat, a, true
		}
	}
	return 0, game.Action{}, false
}

var errUsage = errors.New(help)

const help = `commands:
  play <card> <character_id>   play a card on a character
  play <card> seat <n>         play swap or theft against seat n
  end                          end your turn
  defend yes|no [card]         answer a defense window
  swap select|deselect <i>     offer or withdraw a card
  swap confirm|cancel          settle the negotiation
  theft counter|decline        answer a theft attempt
  theft select|deselect <i>    pick a victim card
  theft confirm                take the selected cards`

func parseAction(f []string) (game.Action, error) {
	if len(f) == 0 {
		return game.Action{}, errUsage
	}
	num := func(i int) (int, error) {
		if i >= len(f) {
			return 0, fmt.Errorf("missing argument\n%s", help)
		}
		return strconv.Atoi(f[i])
	}

	switch f[0] {
	case "play":
		idx, err := num(1)
		if err != nil {
			return game.Action{}, err
		}
		if len(f) == 4 && f[2] == "seat" {
			seat, err := num(3)
			if err != nil {
				return game.Action{}, err
			}
			return game.PlayOnSeat(idx, seat), nil
		}
		if len(f) != 3 {
			return game.Action{}, errUsage
		}
		return game.PlayOnCharacter(idx, f[2]), nil
	case "end":
		return game.EndTurn(), nil
	case "defend":
		if len(f) < 2 {
			return game.Action{}, errUsage
		}
		a := game.Defend(f[1] == "yes")
		if len(f) == 3 {
			idx, err := num(2)
			if err != nil {
				return game.Action{}, err
			}
			a.DefenseCardIndex = &idx
		}
		return a, nil
	case "swap", "theft":
		if len(f) < 2 {
			return game.Action{}, errUsage
		}
		if f[0] == "theft" && (f[1] == "counter" || f[1] == "decline") {
			return game.TheftCounter(f[1] == "counter"), nil
		}
		step := game.Step(f[1])
		idx := 0
		if step == game.StepSelect || step == game.StepDeselect {
			var err error
			if idx, err = num(2); err != nil {
				return game.Action{}, err
			}
		}
		if f[0] == "swap" {
			return game.SwapStep(step, idx), nil
		}
		return game.TheftStep(step, idx), nil
	}
	return game.Action{}, errUsage
}

func printSnapshot(s game.Snapshot) {
	fmt.Printf("\nTurn: seat %d  phase: %s\n", s.CurrentTurn, s.Phase)
	for _, seat := range s.Seats {
		mark := ""
		if seat.HasLost {
			mark = " (out)"
		}
		fmt.Printf("seat %d %s%s  hand=%d\n", seat.ID, seat.Name, mark, seat.HandSize)
		for _, c := range seat.Characters {
			state := ""
			if c.IsAsleep() {
				state = " asleep"
			}
			if c.Protected {
				state += " protected"
			}
			fmt.Printf("    %-14s %-10s %2d/%d%s\n", c.ID, c.Name, c.CurrentSleep, c.MaxSleep, state)
		}
	}
	if own := s.Own(); own != nil {
		fmt.Println("Your hand:")
		for i, c := range own.Hand {
			fmt.Printf("  [%d] %-14s %-10s %+d\n", i, c.Name, c.Type, c.Effect.Value)
		}
	}
	if p := s.Pending; p != nil {
		fmt.Printf("Pending %s, you are %s\n", p.Kind, p.Role)
	}
}
