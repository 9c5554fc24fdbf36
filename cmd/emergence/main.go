package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/neurogrid/emergence/internal/config"
	"github.com/neurogrid/emergence/internal/logging"
	"github.com/neurogrid/emergence/internal/models"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "emergence",
		Short: "Consciousness emergence game engine",
		Long: `emergence hosts turn-based consciousness emergence games.

Players place typed neurons on a shared grid. The engine wires nearby
neurons together, settles activation through the network, detects
emergent patterns (loops, synchronization, hierarchies and strange
attractors) and folds them into a consciousness score. The first
player to push the score past the win threshold wins the game.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for machine consumption)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log verbosity: info, debug, or trace")

	rootCmd.AddCommand(
		newVersionCmd(),
		newPlayCmd(),
		newRunCmd(),
		newInspectCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves defaults, the optional --config file, environment
// overrides and the --log-level flag into a validated configuration.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newSessionLogger builds the logger handed to the hosting layer. It
// writes to stderr so stdout stays a clean result stream.
func newSessionLogger(cfg *config.Config) *slog.Logger {
	return logging.NewLogger(cfg.Logging.Level, os.Stderr)
}

// formatTurn renders one turn result as a human-readable line.
func formatTurn(player string, res models.TurnResult) string {
	switch res.Status {
	case models.TurnContinue:
		return fmt.Sprintf("%s: continue (turn %d, level %.4f, %d patterns)",
			player, res.Turn, res.ConsciousnessLevel, len(res.Patterns))
	case models.TurnWin:
		return fmt.Sprintf("%s: WIN (level %.4f, %d patterns)",
			player, res.ConsciousnessLevel, len(res.Patterns))
	case models.TurnInvalidMove:
		return fmt.Sprintf("%s: invalid move (%s)", player, res.Reason)
	case models.TurnGameOver:
		if res.Winner != "" {
			return fmt.Sprintf("%s: game over (winner %s)", player, res.Winner)
		}
		return fmt.Sprintf("%s: game over (%s)", player, res.Reason)
	default:
		return fmt.Sprintf("%s: %s", player, res.Status)
	}
}

// printSummary writes the end-of-stream state block for human output.
func printSummary(w io.Writer, snap models.StateSnapshot) {
	fmt.Fprintf(w, "Neurons: %d (%d connections)\n", snap.Network.NodeCount, snap.Network.EdgeCount)
	fmt.Fprintf(w, "Consciousness: %.4f\n", snap.ConsciousnessLevel)
	fmt.Fprintf(w, "Turn: %d\n", snap.Turn)
	switch {
	case snap.Winner != "":
		fmt.Fprintf(w, "Winner: %s\n", snap.Winner)
	case snap.Drawn:
		fmt.Fprintln(w, "Result: draw (turn limit reached)")
	}
}

// writeSnapshot marshals a state snapshot to an indented JSON file.
func writeSnapshot(path string, snap models.StateSnapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
