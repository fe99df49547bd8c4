package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"arbiter-hq/arbiter/pkg/audit"
	"arbiter-hq/arbiter/pkg/config"
	"arbiter-hq/arbiter/pkg/decision/scoring"
)

var (
	replayPayloadFile string
	replayRecordID    string
	replayStrict      bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay and verify a decision from its audit payload",
	Long: `Replay reconstructs a decision purely from its persisted audit payload,
re-runs the recorded scoring strategy, and verifies the outcome and the
deterministic hash. With --strict any divergence is an error; otherwise
divergence is reported and the replayed decision is printed.`,
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&replayPayloadFile, "payload", "", "audit payload file (JSON)")
	replayCmd.Flags().StringVar(&replayRecordID, "id", "", "decision record ID in the configured store")
	replayCmd.Flags().BoolVar(&replayStrict, "strict", false, "fail on any divergence")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := buildLogger(cfg)
	if err != nil {
		return err
	}

	payload, err := loadPayload(cmd, cfg, logger)
	if err != nil {
		return err
	}

	engine := audit.NewReplayEngine(buildRegistry(cfg.Scoring), logger)

	verified, err := engine.Verify(payload)
	if err != nil {
		return err
	}

	replayed, err := engine.Replay(payload, replayStrict)
	if err != nil {
		return err
	}

	storedHash, _ := payload["deterministic_hash"].(string)
	out := map[string]interface{}{
		"decision":          replayed.Decision(),
		"confidence":        replayed.Confidence(),
		"because":           replayed.Because(),
		"failed_conditions": replayed.FailedConditions(),
		"stored_hash":       storedHash,
		"replayed_hash":     replayed.DeterministicHash(),
		"hash_verified":     verified,
		"hash_matches":      storedHash == replayed.DeterministicHash(),
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func loadPayload(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) (map[string]interface{}, error) {
	switch {
	case replayPayloadFile != "":
		raw, err := os.ReadFile(replayPayloadFile)
		if err != nil {
			return nil, fmt.Errorf("reading payload %s: %w", replayPayloadFile, err)
		}
		payload := map[string]interface{}{}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, fmt.Errorf("parsing payload %s: %w", replayPayloadFile, err)
		}
		return payload, nil

	case replayRecordID != "":
		storage, err := buildStorage(cfg)
		if err != nil {
			return nil, err
		}
		defer storage.Close()
		record, err := storage.Get(cmd.Context(), replayRecordID)
		if err != nil {
			return nil, err
		}
		logger.Debug("record loaded", "id", record.ID, "hash", record.Hash)
		return record.Payload, nil

	default:
		return nil, fmt.Errorf("either --payload or --id is required")
	}
}

// buildRegistry builds a strategy registry with the configured parameters
// so replay resolves parameterized strategies the way production ran them.
func buildRegistry(cfg config.ScoringConfig) *scoring.Registry {
	registry := scoring.NewRegistry()
	registry.Register(scoring.NewConsensus(cfg.MinimumAgreement))
	registry.Register(scoring.NewThreshold(cfg.Threshold, cfg.FallbackDecision))
	return registry
}
