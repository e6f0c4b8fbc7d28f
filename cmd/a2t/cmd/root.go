package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"a2t/cmd/a2t/cmd/version"
	"a2t/internal/app"
	"a2t/internal/app/audio"
	"a2t/internal/app/converter"
	apperrors "a2t/internal/app/errors"
	"a2t/internal/app/logging"
	"a2t/internal/config"
)

const usageLine = "a2t <audio-file> [sk-API_KEY] [LANGUAGE] [flags]"

type options struct {
	configFile   string
	apiKey       string
	language     string
	strategy     string
	decoder      string
	model        string
	baseURL      string
	prompt       string
	outputDir    string
	metricsFile  string
	maxChunkMB   float64
	safetyMargin float64
	timeout      time.Duration
	quiet        bool
	verbose      bool
}

// NewRootCmd builds the a2t command. The root command is the transcribe
// action itself.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{})
}

func newRootCmd(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   usageLine,
		Short: "Transcribe an audio file of any size with the OpenAI Whisper API",
		Long: `Transcribe an audio file of any size with the OpenAI Whisper API.

- Files above the upload limit are split into chunks, transcribed in order
  and joined with a blank line
- The transcript is written next to the input as <name>_transcript.txt
- A positional argument starting with sk- is the API key, any other is the
  language (ISO-639-1 code or name, default en)`,
		Example: `  a2t interview.mp3
  a2t interview.mp3 sk-YOUR_KEY_HERE
  a2t interview.mp3 danish
  a2t huge_recording.m4a --language de --max-chunk-mb 20`,
		Args:          checkArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "YAML config file")
	flags.StringVar(&opts.apiKey, "api-key", "", "OpenAI API key (default $OPENAI_API_KEY)")
	flags.StringVarP(&opts.language, "language", "l", "", "spoken language, ISO-639-1 code or name (default en)")
	flags.StringVar(&opts.strategy, "strategy", config.DefaultStrategy, "chunking strategy: auto, bytes or duration")
	flags.StringVar(&opts.decoder, "decoder", config.DefaultDecoder, "audio decoder for duration chunking: auto, ffmpeg or mp3")
	flags.Float64Var(&opts.maxChunkMB, "max-chunk-mb", config.DefaultMaxChunkMB, "largest upload in MiB (at most 25)")
	flags.Float64Var(&opts.safetyMargin, "safety-margin", config.DefaultSafetyMargin, "fraction of the limit duration chunks aim for")
	flags.StringVar(&opts.model, "model", config.DefaultModel, "transcription model")
	flags.StringVar(&opts.baseURL, "base-url", "", "OpenAI-compatible API base URL")
	flags.StringVar(&opts.prompt, "prompt", "", "prompt sent with every chunk")
	flags.StringVar(&opts.outputDir, "output-dir", "", "directory for the transcript (default: next to the input)")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write run metrics in Prometheus textfile format")
	flags.DurationVar(&opts.timeout, "timeout", config.DefaultTimeout, "per request timeout")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "do not echo the transcript")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "V", false, "verbose output")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(version.Cmd)
	return rootCmd
}

func checkArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.RangeArgs(1, 3)(cmd, args); err != nil {
		return usageError(err)
	}
	return nil
}

func usageError(err error) error {
	return apperrors.UserInput("%v", err).WithGuidance("Usage: " + usageLine)
}

// Execute runs the command line and exits non-zero on any failure.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	logger, err := logging.NewLogger(opts.verbose)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	runID := logging.NewRunID()
	logger = logging.ForRun(logger, runID)

	positional, err := parsePositional(args[1:])
	if err != nil {
		return err
	}

	// A missing input is reported before any credential problem.
	if _, err := audio.Inspect(args[0]); err != nil {
		return err
	}

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return err
	}
	languageToken := applyOverrides(cmd.Flags(), opts, positional, cfg)

	choice := config.ResolveLanguage(languageToken, cfg.LanguageAliases, config.DefaultLanguage)
	if choice.Warning != "" {
		logger.Warn(choice.Warning)
	}
	cfg.Language = choice.Code

	if err := cfg.Validate(); err != nil {
		return err
	}
	logger.Debug("configuration", zap.Stringer("config", cfg))

	conv, err := app.InitializeConverter(cfg, logger, runID)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := conv.Do(ctx, args[0])
	if metricsErr := conv.Metrics().WriteFile(cfg.MetricsFile); metricsErr != nil {
		logger.Warn("metrics not written", zap.Error(metricsErr))
	}
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), result, opts.quiet)
	return nil
}

type positionalArgs struct {
	apiKey   string
	language string
}

// parsePositional sorts the tokens after the input file into credential
// and language.
func parsePositional(tokens []string) (positionalArgs, error) {
	var p positionalArgs
	for _, token := range tokens {
		if config.LooksLikeAPIKey(token) {
			if p.apiKey != "" {
				return p, usageError(fmt.Errorf("API key given twice"))
			}
			p.apiKey = token
			continue
		}
		if p.language != "" {
			return p, usageError(fmt.Errorf("unexpected argument %q", token))
		}
		p.language = token
	}
	return p, nil
}

// applyOverrides lays command line values over cfg: an explicit flag beats
// a positional argument, which beats the environment and the config file.
// It returns the language token to resolve.
func applyOverrides(flags *pflag.FlagSet, opts *options, positional positionalArgs, cfg *config.Config) string {
	switch {
	case flags.Changed("api-key"):
		cfg.APIKey = opts.apiKey
	case positional.apiKey != "":
		cfg.APIKey = positional.apiKey
	}

	language := cfg.Language
	switch {
	case flags.Changed("language"):
		language = opts.language
	case positional.language != "":
		language = positional.language
	}

	if flags.Changed("strategy") {
		cfg.Strategy = opts.strategy
	}
	if flags.Changed("decoder") {
		cfg.Decoder = opts.decoder
	}
	if flags.Changed("max-chunk-mb") {
		cfg.MaxChunkMB = opts.maxChunkMB
	}
	if flags.Changed("safety-margin") {
		cfg.SafetyMargin = opts.safetyMargin
	}
	if flags.Changed("model") {
		cfg.Model = opts.model
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = opts.baseURL
	}
	if flags.Changed("prompt") {
		cfg.Prompt = opts.prompt
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = opts.outputDir
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = opts.metricsFile
	}
	if flags.Changed("timeout") {
		cfg.Timeout = opts.timeout
	}
	return language
}

func printResult(w io.Writer, result *converter.Result, quiet bool) {
	fmt.Fprintln(w, "✅ Transcription complete!")
	fmt.Fprintf(w, "📄 Text saved to: %s\n", result.OutputPath)
	fmt.Fprintf(w, "📊 Length: %d characters, ~%d words\n", result.Stats.Characters, result.Stats.Words)
	if quiet {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "--- TRANSCRIPT ---")
	fmt.Fprintln(w)
	fmt.Fprintln(w, result.Text)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "--- END ---")
}

// printError prints a one line diagnosis followed by any guidance.
func printError(w io.Writer, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.KindInterrupted:
		fmt.Fprintln(w, "\n⚠️  Interrupted by user.")
		return
	case apperrors.KindUnknown:
		fmt.Fprintf(w, "❌ Unexpected error: %v\n", err)
	default:
		fmt.Fprintf(w, "❌ Error: %v\n", err)
	}

	for _, line := range apperrors.GuidanceOf(err) {
		fmt.Fprintf(w, "   💡 %s\n", line)
	}
}
