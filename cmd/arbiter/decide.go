package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"arbiter-hq/arbiter/pkg/config"
	"arbiter-hq/arbiter/pkg/decision"
	"arbiter-hq/arbiter/pkg/decision/agent"
	"arbiter-hq/arbiter/pkg/decision/scoring"
	"arbiter-hq/arbiter/pkg/ruleset"
	"arbiter-hq/arbiter/pkg/store"
)

var (
	decideContextFile  string
	decideFeedbackFile string
	decideRulesetsDir  string
	decideStrategy     string
	decideShowPayload  bool
	decideStore        bool
)

var decideCmd = &cobra.Command{
	Use:   "decide",
	Short: "Evaluate a decision context against the configured rulesets",
	Long: `Decide loads the rulesets, evaluates the given context document (JSON or
YAML), and prints the resulting decision with its confidence, explainability
lists, and deterministic hash.`,
	RunE: runDecide,
}

func init() {
	decideCmd.Flags().StringVar(&decideContextFile, "context", "", "context document (JSON or YAML, required)")
	decideCmd.Flags().StringVar(&decideFeedbackFile, "feedback", "", "optional feedback document (JSON or YAML)")
	decideCmd.Flags().StringVar(&decideRulesetsDir, "rulesets", "", "ruleset directory (overrides config)")
	decideCmd.Flags().StringVar(&decideStrategy, "strategy", "", "scoring strategy (overrides config)")
	decideCmd.Flags().BoolVar(&decideShowPayload, "payload", false, "print the full audit payload")
	decideCmd.Flags().BoolVar(&decideStore, "store", false, "persist the decision record to the configured store")
	decideCmd.MarkFlagRequired("context")
	rootCmd.AddCommand(decideCmd)
}

func runDecide(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if decideRulesetsDir != "" {
		cfg.Rulesets.Dir = decideRulesetsDir
	}
	if decideStrategy != "" {
		cfg.Scoring.Strategy = decideStrategy
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		return err
	}

	contextData, err := loadDocument(decideContextFile)
	if err != nil {
		return err
	}
	var feedback map[string]interface{}
	if decideFeedbackFile != "" {
		if feedback, err = loadDocument(decideFeedbackFile); err != nil {
			return err
		}
	}

	manager, err := ruleset.NewManager(cfg.Rulesets.Dir, logger)
	if err != nil {
		return err
	}

	strategy, err := buildStrategy(cfg.Scoring)
	if err != nil {
		return err
	}

	a := agent.New(manager.Evaluators(), strategy,
		agent.WithLogger(logger),
		agent.WithVersion(Version))

	result, err := a.Decide(cmd.Context(), decision.NewContext(contextData), feedback)
	if err != nil {
		return err
	}

	if decideStore {
		if err := storeDecision(cmd, cfg, logger, result); err != nil {
			return err
		}
	}

	return printDecision(result)
}

func printDecision(result *decision.Decision) error {
	var out interface{}
	if decideShowPayload {
		out = result.AuditPayload()
	} else {
		out = map[string]interface{}{
			"decision":           result.Decision(),
			"confidence":         result.Confidence(),
			"because":            result.Because(),
			"failed_conditions":  result.FailedConditions(),
			"explanations":       result.Explanations(),
			"deterministic_hash": result.DeterministicHash(),
		}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func storeDecision(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, result *decision.Decision) error {
	storage, err := buildStorage(cfg)
	if err != nil {
		return err
	}
	defer storage.Close()

	record, err := store.NewRecord(result)
	if err != nil {
		return err
	}
	if err := storage.Store(cmd.Context(), record); err != nil {
		return err
	}
	logger.Info("decision stored", "id", record.ID, "hash", record.Hash)
	return nil
}

// buildStrategy maps the scoring configuration to a Strategy instance.
func buildStrategy(cfg config.ScoringConfig) (scoring.Strategy, error) {
	switch cfg.Strategy {
	case scoring.NameWeightedAverage, "":
		return scoring.NewWeightedAverage(), nil
	case scoring.NameMaxWeight:
		return scoring.NewMaxWeight(), nil
	case scoring.NameConsensus:
		return scoring.NewConsensus(cfg.MinimumAgreement), nil
	case scoring.NameThreshold:
		return scoring.NewThreshold(cfg.Threshold, cfg.FallbackDecision), nil
	default:
		return nil, fmt.Errorf("unknown scoring strategy %q", cfg.Strategy)
	}
}

// buildStorage opens the configured decision store.
func buildStorage(cfg *config.Config) (store.Storage, error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		sc := store.DefaultSQLiteConfig()
		sc.Path = cfg.Storage.Path
		return store.NewSQLiteStorage(sc, nil)
	default:
		return store.NewMemoryStorage(), nil
	}
}

// loadDocument reads a JSON or YAML mapping document.
func loadDocument(path string) (map[string]interface{}, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	out := map[string]interface{}{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	return out, nil
}
