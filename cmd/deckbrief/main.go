// Package main provides the deckbrief CLI: it extracts speaker notes
// from a PowerPoint file, summarizes them with the selected AI
// provider, and writes the results as a Word, Markdown, PDF, or plain
// text document.
// Usage: deckbrief [flags] <presentation.pptx> <output-file>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"deckbrief/internal/config"
	"deckbrief/internal/infra/extractor"
	"deckbrief/internal/infra/summarizer"
	"deckbrief/internal/infra/writer"
	"deckbrief/internal/observability/logging"
	"deckbrief/internal/ratelimit"
	"deckbrief/internal/resilience/retry"
	"deckbrief/internal/usecase/summarize"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: deckbrief [flags] <presentation.pptx> <output-file>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Examples:")
	fmt.Fprintln(os.Stderr, "  deckbrief talk.pptx notes.docx")
	fmt.Fprintln(os.Stderr, "  deckbrief --ai claude --summarization-level 7 talk.pptx notes.md")
	fmt.Fprintln(os.Stderr, "  deckbrief --extract-only talk.pptx notes.txt")
}

func main() {
	var (
		aiProvider  string
		configPath  string
		format      string
		level       int
		extractOnly bool
		summaryOnly bool
		verbose     bool
	)

	flag.StringVar(&aiProvider, "ai", config.ProviderOpenAI, "AI provider: openai, claude, or watson")
	flag.StringVar(&configPath, "config", "config.json", "Path to the configuration file")
	flag.StringVar(&format, "format", "", "Output format: docx, md, pdf, or txt (default: inferred from output file extension)")
	flag.IntVar(&level, "summarization-level", 0, "Target bullet points per slide, 3 to 10 (default: from configuration)")
	flag.BoolVar(&extractOnly, "extract-only", false, "Extract notes without summarizing")
	flag.BoolVar(&summaryOnly, "summary-only", false, "Write summaries without the original notes")
	flag.BoolVar(&verbose, "verbose", false, "Enable debug logging")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		os.Exit(1)
	}
	presentationPath := flag.Arg(0)
	outputPath := flag.Arg(1)

	logger := logging.NewLogger(verbose)
	slog.SetDefault(logger)

	outputFormat, err := resolveFormat(format, outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Extract-only runs never call a provider, so credentials are not
	// required for them.
	if !extractOnly {
		if err := cfg.Validate(aiProvider); err != nil {
			logger.Error("invalid configuration", slog.Any("error", err))
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if level == 0 {
		level = cfg.DefaultSummarizationLevel
	}
	if level < 3 || level > 10 {
		fmt.Fprintf(os.Stderr, "Error: summarization level must be between 3 and 10, got %d\n", level)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, cfg, runParams{
		presentationPath: presentationPath,
		outputPath:       outputPath,
		format:           outputFormat,
		provider:         aiProvider,
		level:            level,
		extractOnly:      extractOnly,
		summaryOnly:      summaryOnly,
	}); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("run canceled")
			fmt.Fprintln(os.Stderr, "Canceled.")
			os.Exit(130)
		}
		logger.Error("run failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type runParams struct {
	presentationPath string
	outputPath       string
	format           writer.Format
	provider         string
	level            int
	extractOnly      bool
	summaryOnly      bool
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, p runParams) error {
	logger.Info("extracting notes",
		slog.String("presentation", p.presentationPath))

	units, err := extractor.Notes(p.presentationPath)
	if err != nil {
		return fmt.Errorf("extract notes: %w", err)
	}
	logger.Info("notes extracted", slog.Int("slides", len(units)))

	provider, err := buildProvider(cfg, p)
	if err != nil {
		return err
	}

	service := summarize.NewService(
		provider,
		ratelimit.New(cfg.RateLimit, 1),
		retry.DefaultConfig(cfg.MaxRetries),
	)

	outcomes, err := service.SummarizeAll(ctx, units, summarize.Options{
		Level:       p.level,
		MinChars:    cfg.MinCharacters,
		MaxRetries:  cfg.MaxRetries,
		ExtractOnly: p.extractOnly,
		SummaryOnly: p.summaryOnly,
	})
	if err != nil {
		return err
	}

	if err := writer.Write(p.outputPath, p.format, outcomes); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("output written",
		slog.String("path", p.outputPath),
		slog.String("format", string(p.format)),
		slog.Int("slides", len(outcomes)))
	return nil
}

func buildProvider(cfg *config.Config, p runParams) (summarizer.Provider, error) {
	if p.extractOnly {
		return summarizer.NewNoOp(), nil
	}

	switch p.provider {
	case config.ProviderOpenAI:
		return summarizer.NewOpenAI(summarizer.OpenAIConfig{
			APIKey:      cfg.OpenAIAPIKey,
			Model:       cfg.OpenAIModel,
			MaxTokens:   cfg.OpenAIMaxTokens,
			Temperature: cfg.OpenAITemperature,
			Timeout:     cfg.RequestTimeout,
		}), nil
	case config.ProviderClaude:
		return summarizer.NewClaude(summarizer.ClaudeConfig{
			APIKey:    cfg.AnthropicAPIKey,
			Model:     cfg.AnthropicModel,
			MaxTokens: cfg.AnthropicMaxTokens,
			Timeout:   cfg.RequestTimeout,
		}), nil
	case config.ProviderWatson:
		return summarizer.NewWatson(summarizer.WatsonConfig{
			APIKey:     cfg.WatsonAPIKey,
			ServiceURL: cfg.WatsonServiceURL,
			Timeout:    cfg.RequestTimeout,
		}), nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %s (must be openai, claude, or watson)", p.provider)
	}
}

// resolveFormat picks the output format from the flag when given,
// otherwise from the output file extension.
func resolveFormat(flagValue, outputPath string) (writer.Format, error) {
	if flagValue != "" {
		return writer.ParseFormat(flagValue)
	}
	ext := strings.TrimPrefix(filepath.Ext(outputPath), ".")
	if ext == "" {
		return writer.FormatWord, nil
	}
	f, err := writer.ParseFormat(ext)
	if err != nil {
		return "", fmt.Errorf("cannot infer format from %s; pass --format", outputPath)
	}
	return f, nil
}
