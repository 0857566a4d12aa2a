package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lsatarcade/internal/drill"
	"github.com/abhisek/lsatarcade/internal/llm"
)

func newLLMCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "llm",
		Short: "Inspect the model configuration",
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved provider, model and mode",
		RunE:  runLLMConfig,
	}

	probeCmd := &cobra.Command{
		Use:   "probe",
		Short: "Make one drill request and show how the reply was parsed",
		Long: `Send a single question-generation request to the configured provider and
print the raw reply, its parse classification, whether it matches the drill
schema as sent, the resulting drill, token usage and estimated cost. Nothing
is saved.`,
		RunE: runLLMProbe,
	}
	probeCmd.Flags().String("topic", "", "Question topic (default logical_reasoning)")

	cmd.AddCommand(configCmd, probeCmd)
	return cmd
}

func runLLMConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg := resolveLLMConfig(cmd)

	model, baseURL := selectedModel(cfg)
	fmt.Fprintf(out, "Provider:   %s\n", cfg.Provider)
	fmt.Fprintf(out, "Mode:       %s\n", cfg.Mode())
	fmt.Fprintf(out, "Model:      %s\n", model)
	if baseURL != "" {
		fmt.Fprintf(out, "Base URL:   %s\n", baseURL)
	}
	fmt.Fprintf(out, "Credential: %v\n", cfg.HasCredential())
	if cost := llm.LookupCost(model); cost != nil {
		fmt.Fprintf(out, "Pricing:    $%.2f in / $%.2f out per 1M tokens\n", cost.InputPerMTok, cost.OutputPerMTok)
	}
	if cfg.Mode() == llm.ModeLive {
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func runLLMProbe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	topic, _ := cmd.Flags().GetString("topic")

	cfg := resolveLLMConfig(cmd)
	if cfg.Mode() != llm.ModeLive {
		return fmt.Errorf("no credential for provider %q; set LSAT_%s_API_KEY", cfg.Provider, strings.ToUpper(cfg.Provider))
	}
	provider, err := llm.NewProvider(ctx, cfg, slog.Default())
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeDrill)
	resp, err := provider.Generate(ctx, drill.BuildRequest(topicOrDefault(topic), drill.DefaultConfig()))
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	sep := strings.Repeat("─", 60)
	fmt.Fprintln(out, sep)
	fmt.Fprintln(out, "RAW REPLY")
	fmt.Fprintln(out, sep)
	fmt.Fprintln(out, resp.Text())

	parsed := drill.Parse(resp.Text())
	fmt.Fprintln(out, sep)
	fmt.Fprintf(out, "PARSED: %s\n", parsed.Kind)
	if parsed.Err != nil {
		fmt.Fprintf(out, "Error: %v\n", parsed.Err)
	}
	if err := llm.ValidateText(drill.Schema, resp.Text()); err != nil {
		fmt.Fprintf(out, "Schema: %v\n", err)
	} else {
		fmt.Fprintln(out, "Schema: ok")
	}
	fmt.Fprintln(out, sep)

	b, err := json.MarshalIndent(drill.Resolve(parsed, drill.NewNormalizer(nil)), "", "  ")
	if err != nil {
		return fmt.Errorf("encode drill: %w", err)
	}
	fmt.Fprintln(out, string(b))

	fmt.Fprintln(out, sep)
	fmt.Fprintf(out, "Model:  %s (stop: %s)\n", resp.Model, resp.Stop)
	fmt.Fprintf(out, "Tokens: %d in / %d out\n", resp.Usage.InputTokens, resp.Usage.OutputTokens)
	if cost := llm.LookupCost(resp.Model); cost != nil {
		fmt.Fprintf(out, "Cost:   %s\n", formatCost(cost.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens)))
	} else {
		fmt.Fprintln(out, "Cost:   ?")
	}
	return nil
}

// selectedModel returns the effective model and base URL for the chosen
// provider.
func selectedModel(cfg llm.Config) (model, baseURL string) {
	switch cfg.Provider {
	case "anthropic":
		model = cfg.Anthropic.Model
	case "openai":
		model, baseURL = cfg.OpenAI.Model, cfg.OpenAI.BaseURL
	case "gemini":
		model = cfg.Gemini.Model
	case "openrouter":
		model, baseURL = cfg.OpenRouter.Model, cfg.OpenRouter.BaseURL
	case "mock":
		model = "mock"
	}
	if cfg.Model != "" {
		model = cfg.Model
	}
	return model, baseURL
}

// truncate keeps at most max runes of s.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
