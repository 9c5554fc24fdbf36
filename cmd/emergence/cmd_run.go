package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/neurogrid/emergence/internal/host"
	"github.com/neurogrid/emergence/internal/logging"
	"github.com/neurogrid/emergence/internal/models"
	"github.com/neurogrid/emergence/internal/strategy"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// scenarioFile is the YAML shape consumed by the run command.
type scenarioFile struct {
	Name    string           `yaml:"name"`
	Players []scenarioPlayer `yaml:"players"`
	Moves   []scenarioMove   `yaml:"moves"`
}

type scenarioPlayer struct {
	ID   string `yaml:"id"`
	Kind string `yaml:"kind"`
}

type scenarioMove struct {
	Player      string `yaml:"player"`
	models.Move `yaml:",inline"`
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a scripted scenario, optionally finished by the advisor committee",
		Long: `Play a YAML scenario file against a fresh session.

The file lists players and scripted moves; moves without a player go to
the first listed player. After the script, --auto hands the board to the
strategy committee for up to N more turns. The run stops at the first
win or game over.

Example scenario:
  name: clique
  players:
    - id: solo
      kind: single
  moves:
    - {x: 0, y: 0, type: processor}
    - {x: 1, y: 0, type: processor}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			autoTurns, _ := cmd.Flags().GetInt("auto")
			autoPlayer, _ := cmd.Flags().GetString("auto-player")
			stateOut, _ := cmd.Flags().GetString("state-out")
			traceDir, _ := cmd.Flags().GetString("trace-dir")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newSessionLogger(cfg)

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read scenario: %w", err)
			}
			var scenario scenarioFile
			if err := yaml.Unmarshal(data, &scenario); err != nil {
				return fmt.Errorf("parse scenario: %w", err)
			}
			if len(scenario.Players) == 0 {
				scenario.Players = []scenarioPlayer{{ID: "solo", Kind: "single"}}
			}
			if autoPlayer == "" {
				autoPlayer = scenario.Players[0].ID
			}
			if autoTurns > 0 {
				registered := false
				for _, p := range scenario.Players {
					if p.ID == autoPlayer {
						registered = true
						break
					}
				}
				if !registered {
					return fmt.Errorf("auto player %q is not in the scenario's player list", autoPlayer)
				}
			}

			var trace *logging.TraceLogger
			if traceDir != "" {
				// Forced to debug so an explicit --trace-dir always writes.
				trace = logging.NewTraceLogger(traceDir, "debug")
				defer trace.Close()
			}

			mgr := host.NewManager(logger)
			id := mgr.Create(cfg.GameConfig())

			for _, p := range scenario.Players {
				kind := models.PlayerKind(p.Kind)
				if p.Kind == "" {
					kind = models.PlayerSingle
				}
				if !kind.IsValid() {
					return fmt.Errorf("player %s: invalid kind %q (must be single or collective)", p.ID, p.Kind)
				}
				if err := mgr.AddPlayer(id, p.ID, kind); err != nil {
					return fmt.Errorf("register player %s: %w", p.ID, err)
				}
			}

			out := cmd.OutOrStdout()
			enc := json.NewEncoder(out)
			report := func(player, advisor string, move models.Move, res models.TurnResult) error {
				if trace != nil {
					trace.Log(map[string]any{
						"event":    "turn",
						"scenario": scenario.Name,
						"player":   player,
						"advisor":  advisor,
						"move":     move,
						"status":   string(res.Status),
						"level":    res.ConsciousnessLevel,
					})
				}
				if jsonOut {
					entry := map[string]any{
						"player": player,
						"move":   move,
						"result": res,
					}
					if advisor != "" {
						entry["advisor"] = advisor
					}
					return enc.Encode(entry)
				}
				if advisor != "" {
					fmt.Fprintf(out, "[%s] %s\n", advisor, formatTurn(player, res))
				} else {
					fmt.Fprintln(out, formatTurn(player, res))
				}
				return nil
			}

			done := false
			for i, sm := range scenario.Moves {
				player := sm.Player
				if player == "" {
					player = scenario.Players[0].ID
				}
				res, err := mgr.Play(id, player, sm.Move)
				if err != nil {
					return fmt.Errorf("move %d: %w", i, err)
				}
				if err := report(player, "", sm.Move, res); err != nil {
					return err
				}
				if res.Status == models.TurnWin || res.Status == models.TurnGameOver {
					done = true
					break
				}
			}

			if !done && autoTurns > 0 {
				committee := strategy.NewCommittee(cfg.GameConfig().Grid)
				for i := 0; i < autoTurns; i++ {
					snap, err := mgr.Export(id)
					if err != nil {
						return err
					}
					if snap.Winner != "" || snap.Drawn {
						break
					}
					move, advisor, ok := committee.Decide(snap)
					if !ok {
						logger.Debug("committee has no playable move", "turn", snap.Turn)
						break
					}
					res, err := mgr.Play(id, autoPlayer, move)
					if err != nil {
						return err
					}
					if err := report(autoPlayer, advisor, move, res); err != nil {
						return err
					}
					if res.Status == models.TurnWin || res.Status == models.TurnGameOver {
						break
					}
				}
			}

			snap, err := mgr.Export(id)
			if err != nil {
				return err
			}
			if stateOut != "" {
				if err := writeSnapshot(stateOut, snap); err != nil {
					return err
				}
			}
			if !jsonOut {
				fmt.Fprintln(out)
				printSummary(out, snap)
			}
			return nil
		},
	}

	cmd.Flags().Int("auto", 0, "After the scripted moves, let the advisor committee play up to N turns")
	cmd.Flags().String("auto-player", "", "Player the committee plays for (default: first scenario player)")
	cmd.Flags().String("state-out", "", "Write the final state snapshot to this file")
	cmd.Flags().String("trace-dir", "", "Write per-turn JSONL trace events to this directory")

	return cmd
}
