// Command sreagent runs the autonomous SRE agent: it loads the injected
// scenario, fetches the firing alerts, and drives the agent loop until
// the model submits its diagnosis or a resource limit is reached.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/lumynops/sreagent/internal/agent"
	"github.com/lumynops/sreagent/internal/alerts"
	"github.com/lumynops/sreagent/internal/artifacts"
	"github.com/lumynops/sreagent/internal/config"
	"github.com/lumynops/sreagent/internal/model"
	"github.com/lumynops/sreagent/internal/prompts"
	"github.com/lumynops/sreagent/internal/runstore"
	"github.com/lumynops/sreagent/internal/sandbox"
	"github.com/lumynops/sreagent/internal/scenario"
)

func main() {
	// Load .env if present (same precedence as the shell environment).
	_ = godotenv.Load()

	fs := flag.NewFlagSet("sreagent", flag.ExitOnError)
	workDir := fs.String("workdir", "", "Working directory for the run (default: current directory)")
	scenarioPath := fs.String("scenario", scenario.DefaultDataPath, "Path to scenario_data.json")
	storePath := fs.String("store", "", "Path to the run history database (default: <config dir>/sreagent/runs.db)")
	stepLimit := fs.Int("step-limit", 0, "Maximum model calls per run (0 = unlimited)")
	costLimit := fs.Float64("cost-limit", 3.0, "Maximum model spend in USD (0 = unlimited)")
	history := fs.Int("history", 0, "Print the last N recorded runs and exit")
	configure := fs.Bool("configure", false, "Save the settings below to the user config file and exit")
	cfgFlags := configFlags{}
	fs.StringVar(&cfgFlags.Provider, "provider", "", "LLM provider to save with -configure (openai, anthropic, deepseek, groq, ollama)")
	fs.StringVar(&cfgFlags.APIKey, "api-key", "", "API key to save with -configure")
	fs.StringVar(&cfgFlags.Model, "model", "", "Model name to save with -configure")
	fs.StringVar(&cfgFlags.BaseURL, "base-url", "", "OpenAI-compatible base URL to save with -configure")
	fs.StringVar(&cfgFlags.ObsURL, "obs-url", "", "Observability stack URL to save with -configure")
	fs.StringVar(&cfgFlags.ObsToken, "obs-token", "", "Observability service account token to save with -configure")

	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	if *configure {
		if err := saveOperatorConfig(cfgFlags); err != nil {
			log.Fatalf("failed to save configuration: %v", err)
		}
		return
	}
	if *history > 0 {
		if err := runHistory(context.Background(), *storePath, *history, os.Stdout); err != nil {
			log.Fatalf("failed to read run history: %v", err)
		}
		return
	}

	if *workDir != "" {
		if err := os.Chdir(*workDir); err != nil {
			log.Fatalf("failed to change working directory: %v", err)
		}
		log.Printf("Changed working directory to %s", *workDir)
	}

	if err := run(context.Background(), *scenarioPath, *storePath, *stepLimit, *costLimit); err != nil {
		log.Fatalf("sreagent failed: %v", err)
	}
}

func run(ctx context.Context, scenarioPath, storePath string, stepLimit int, costLimit float64) error {
	log.Println("Starting SRE agent runner...")
	globalStart := time.Now()

	// Saved operator config feeds the environment before anything reads it.
	if manager, err := config.NewManager(); err == nil {
		if cfg, err := manager.Load(); err == nil {
			cfg.ExportToEnv()
		} else {
			log.Printf("WARNING: failed to load user config: %v", err)
		}
	}

	scen, err := scenario.Load(scenarioPath)
	if err != nil {
		return err
	}

	token := os.Getenv("OBSERVABILITY_STACK_SERVICE_ACCOUNT_TOKEN")
	firing, err := alerts.NewClient(scen.ObservabilityURL(), token).Firing(ctx)
	if err != nil {
		log.Printf("WARNING: failed to fetch alerts: %v", err)
	}
	log.Printf("Refreshed alerts: %d found.", len(firing))

	taskPrompt, err := prompts.BuildTaskPrompt(firing)
	if err != nil {
		return err
	}

	llm, modelName, err := model.NewFromEnv()
	if err != nil {
		return err
	}
	log.Printf("Using model: %s", modelName)
	instrumented := model.NewInstrumented(llm)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	sandboxConfig := sandbox.DefaultConfig()
	sandboxConfig.WorkDir = cwd
	env := sandbox.New(ctx, sandboxConfig)

	watcher, err := artifacts.NewWatcher(cwd)
	if err != nil {
		log.Printf("WARNING: artifact watcher disabled: %v", err)
	} else {
		defer watcher.Close()
	}

	agentConfig := agent.DefaultConfig()
	agentConfig.SystemTemplate = prompts.SRESystemPrompt
	agentConfig.StepLimit = stepLimit
	agentConfig.CostLimit = costLimit

	runner := agent.New(instrumented, env, agentConfig)
	runner.SetHook(newConsoleHook(log.Default()))

	result, runErr := runner.Run(ctx, taskPrompt)
	if runErr != nil {
		// Uncontrolled faults are outside the loop's contract; the
		// driver owns the failure artifact.
		log.Printf("Agent execution failed: %v", runErr)
		writeFailureArtifact(runErr)
	} else {
		log.Printf("Agent finished: %s", result.Status)
	}

	report := buildReport(time.Since(globalStart), result, instrumented, runner.Metrics())
	report.Print(os.Stdout)
	if err := report.WriteFile("metrics.json"); err != nil {
		log.Printf("WARNING: failed to write metrics.json: %v", err)
	} else {
		log.Println("Metrics saved to metrics.json")
	}

	logArtifacts(cwd, watcher)
	saveRun(ctx, storePath, taskPrompt, result, report)

	return runErr
}

// writeFailureArtifact emits the failure record expected by the harness
// when the run dies outside the agent's modeled conditions.
func writeFailureArtifact(runErr error) {
	payload, err := json.Marshal(map[string]string{
		"error":  runErr.Error(),
		"status": "failed",
	})
	if err != nil {
		return
	}
	if err := os.WriteFile(artifacts.OutputFile, payload, 0644); err != nil {
		log.Printf("WARNING: failed to write failure artifact: %v", err)
	}
}

func logArtifacts(dir string, watcher *artifacts.Watcher) {
	for _, check := range artifacts.Verify(dir) {
		switch {
		case !check.Exists:
			log.Printf("WARNING: expected artifact missing: %s", check.Name)
		case !check.Valid:
			log.Printf("WARNING: artifact %s is invalid: %v", check.Name, check.Issues)
		default:
			log.Printf("Artifact verified: %s", check.Name)
		}
	}
	if watcher != nil {
		for name, at := range watcher.Seen() {
			log.Printf("Artifact %s first appeared at %s", name, at.Format(time.RFC3339))
		}
	}
}

func saveRun(ctx context.Context, storePath, task string, result agent.Result, report Report) {
	storePath, err := resolveStorePath(storePath)
	if err != nil {
		log.Printf("WARNING: run history disabled: %v", err)
		return
	}

	store, err := runstore.New(ctx, storePath)
	if err != nil {
		log.Printf("WARNING: run history disabled: %v", err)
		return
	}
	defer store.Close()

	id, err := store.Save(ctx, runstore.RunRecord{
		Task:            task,
		Status:          string(result.Status),
		Message:         result.Message,
		DurationSeconds: report.DurationSeconds,
		LLMCalls:        report.LLMCalls,
		Cost:            report.TotalCost,
		InputTokens:     report.InputTokens,
		OutputTokens:    report.OutputTokens,
		ReasoningTokens: report.ReasoningTokens,
		ToolCalls:       report.ToolCalls,
		ToolErrors:      report.ToolFailures,
		AvgToolLatency:  report.AvgToolLatencySeconds,
	})
	if err != nil {
		log.Printf("WARNING: failed to save run record: %v", err)
		return
	}
	log.Printf("Run recorded: %s", id)
}
