package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/neurogrid/emergence/internal/host"
	"github.com/neurogrid/emergence/internal/models"
	"github.com/spf13/cobra"
)

// streamMove is one line of the play input: a move plus an optional
// player routing field.
type streamMove struct {
	Player string `json:"player,omitempty"`
	models.Move
}

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a JSON move stream against one session",
		Long: `Read newline-delimited JSON moves and apply each one to a fresh session.

Each line is a move object {"x": 9, "y": 9, "type": "processor",
"processing_power": 5}. An optional "player" field routes the move to a
registered player; it defaults to the first --player. One turn result is
reported per move, including moves submitted after the game has ended
(those come back as game_over without mutating the session).

Example:
  echo '{"x": 9, "y": 9, "type": "processor"}' | emergence play --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			players, _ := cmd.Flags().GetStringArray("player")
			movesPath, _ := cmd.Flags().GetString("moves")
			stateOut, _ := cmd.Flags().GetString("state-out")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newSessionLogger(cfg)

			mgr := host.NewManager(logger)
			id := mgr.Create(cfg.GameConfig())

			defaultPlayer := ""
			for _, spec := range players {
				name, kind, err := parsePlayerSpec(spec)
				if err != nil {
					return err
				}
				if err := mgr.AddPlayer(id, name, kind); err != nil {
					return fmt.Errorf("register player %s: %w", name, err)
				}
				if defaultPlayer == "" {
					defaultPlayer = name
				}
			}

			in := cmd.InOrStdin()
			if movesPath != "" {
				f, err := os.Open(movesPath)
				if err != nil {
					return fmt.Errorf("open moves file: %w", err)
				}
				defer f.Close()
				in = f
			}

			out := cmd.OutOrStdout()
			enc := json.NewEncoder(out)
			scanner := bufio.NewScanner(in)
			lineNo := 0
			for scanner.Scan() {
				lineNo++
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				var sm streamMove
				if err := json.Unmarshal([]byte(line), &sm); err != nil {
					return fmt.Errorf("line %d: parse move: %w", lineNo, err)
				}
				player := sm.Player
				if player == "" {
					player = defaultPlayer
				}
				res, err := mgr.Play(id, player, sm.Move)
				if err != nil {
					return fmt.Errorf("line %d: %w", lineNo, err)
				}
				if jsonOut {
					if err := enc.Encode(res); err != nil {
						return fmt.Errorf("encode result: %w", err)
					}
				} else {
					fmt.Fprintln(out, formatTurn(player, res))
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read moves: %w", err)
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

	cmd.Flags().StringArray("player", []string{"solo"}, "Player to register, as name or name:kind (single or collective)")
	cmd.Flags().String("moves", "", "Read moves from this file instead of stdin")
	cmd.Flags().String("state-out", "", "Write the final state snapshot to this file")

	return cmd
}

// parsePlayerSpec splits "name" or "name:kind" into a player id and kind.
func parsePlayerSpec(spec string) (string, models.PlayerKind, error) {
	name, kindStr, found := strings.Cut(spec, ":")
	if name == "" {
		return "", "", fmt.Errorf("empty player name in %q", spec)
	}
	if !found || kindStr == "" {
		return name, models.PlayerSingle, nil
	}
	kind := models.PlayerKind(kindStr)
	if !kind.IsValid() {
		return "", "", fmt.Errorf("invalid player kind %q (must be single or collective)", kindStr)
	}
	return name, kind, nil
}
