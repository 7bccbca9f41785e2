package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/veridict/veridict/internal/history"
	"github.com/veridict/veridict/internal/jobs"
	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/pipeline"
	"github.com/veridict/veridict/internal/transcript"
)

var (
	outJSON     string
	outMD       string
	sourceLabel string
	maxClaims   int
	jobTimeout  time.Duration
	noCache     bool
	noFooter    bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <transcript-file>",
	Short: "Fact-check a single transcript and generate a report",
	Long: `Check analyzes one transcript (plain text, .srt, .vtt, or saved HTML) to:
- Extract checkable factual claims with speaker attribution
- Verify each claim against fact-check databases, reference data, and news
- Aggregate per-claim verdicts with confidence and explanation
- Compute an overall 0-100 credibility score

Example:
  veridict check speech.txt
  veridict check debate.srt --json report.json --md report.md
  veridict check rally.txt --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Output flags
	checkCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	checkCmd.Flags().StringVar(&sourceLabel, "source", "", "source label for the report (default: file name)")

	// Pipeline flags
	checkCmd.Flags().IntVar(&maxClaims, "max-claims", 30, "maximum claims to verify")
	checkCmd.Flags().DurationVar(&jobTimeout, "timeout", 15*time.Minute, "overall job timeout")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the claim-result cache")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// LLM flags
	checkCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM-backed extraction, checking, and summary")
	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	text, err := transcript.LoadFile(path)
	if err != nil {
		return err
	}

	label := sourceLabel
	if label == "" {
		label = path
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Pipeline.JobTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n", path)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n\n", cfg.Pipeline.JobTimeout)
	}

	store := jobs.NewStore(24 * time.Hour)
	tracker := history.NewTracker(cfg.History.MaxSpeakers, cfg.History.MaxChecksPerClaim)
	p := pipeline.New(cfg, tracker, store)

	report, err := p.Analyze(ctx, path, text, label)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d claims (%d checkable)\n", report.TotalClaims, report.CheckedClaims)
		fmt.Fprintf(os.Stderr, "✓ Credibility score: %.1f/100\n\n", report.CredibilityScore.Score)
	}

	renderer := pipeline.NewRenderer(!noFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}

	renderer.RenderSummary(report)
	return nil
}

// buildConfig assembles the runtime configuration from defaults, the
// config file/environment (viper), provider credentials, and CLI flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg.Pipeline.MaxClaims = maxClaims
	cfg.Pipeline.JobTimeout = jobTimeout
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	// Provider credentials come from the environment when not set in the
	// config file. Missing credentials are not an error: the affected
	// checker is skipped and the report labels the degradation.
	if cfg.Providers.GoogleFactCheckAPIKey == "" {
		cfg.Providers.GoogleFactCheckAPIKey = os.Getenv("GOOGLE_FACTCHECK_API_KEY")
	}
	if cfg.Providers.FREDAPIKey == "" {
		cfg.Providers.FREDAPIKey = os.Getenv("FRED_API_KEY")
	}
	if cfg.Providers.NewsAPIKey == "" {
		cfg.Providers.NewsAPIKey = os.Getenv("NEWS_API_KEY")
	}

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		if llmModel != "" {
			cfg.LLM.Model = llmModel
		}

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}
