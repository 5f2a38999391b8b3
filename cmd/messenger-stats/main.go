package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dobrakmato/messenger-stats/internal/app"
	"github.com/dobrakmato/messenger-stats/internal/model"
	"github.com/dobrakmato/messenger-stats/internal/report"
	"github.com/dobrakmato/messenger-stats/internal/store"
)

var version = "dev"

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// A .env next to the binary may carry MESSENGER_STATS_* settings.
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cfg := app.DefaultConfig()
	var configPath string

	cmd := &cobra.Command{
		Use:     "messenger-stats [export-root]",
		Short:   "Compute statistics over a Messenger data export",
		Long:    "Parses an unzipped Messenger export archive (HTML or JSON based)\nand prints message, latency and word statistics over your conversations.",
		Args:    cobra.MaximumNArgs(1),
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Precedence: flags > env > config file > defaults. Flags
			// are applied by cobra already, so overlay only what the
			// user did not set.
			if configPath != "" {
				fc, err := app.LoadConfigFile(configPath)
				if err != nil {
					return err
				}
				base := app.DefaultConfig()
				fc.Apply(&base)
				app.ApplyEnv(&base)
				overlayUnset(cmd, &cfg, base)
			} else {
				base := app.DefaultConfig()
				app.ApplyEnv(&base)
				overlayUnset(cmd, &cfg, base)
			}
			if len(args) == 1 && args[0] != "" {
				cfg.RootPath = args[0]
			}

			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if cfg.Verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}

			return run(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.OwnerName, "owner", cfg.OwnerName, "Your display name, exactly as in the export (skips profile parsing)")
	cmd.Flags().StringVar(&cfg.Encoding, "encoding", cfg.Encoding, "Declared charset of markup documents (default UTF-8)")
	cmd.Flags().BoolVar(&cfg.ExcludeGroupChats, "exclude-groups", cfg.ExcludeGroupChats, "Exclude group conversations")
	cmd.Flags().BoolVar(&cfg.ExhaustiveLists, "exhaustive", cfg.ExhaustiveLists, "Do not truncate ranked lists")
	cmd.Flags().BoolVar(&cfg.IgnorePlaceholderSender, "ignore-placeholder", cfg.IgnorePlaceholderSender, "Drop messages from deactivated/anonymized accounts")
	cmd.Flags().BoolVar(&cfg.CrossConversationReplies, "cross-conversation-replies", cfg.CrossConversationReplies, "Track reply counts across conversation boundaries (historical behavior)")
	cmd.Flags().IntVar(&cfg.MinMessagesPerConversation, "min-messages", cfg.MinMessagesPerConversation, "Minimum messages for the per-conversation breakdown")
	cmd.Flags().StringVar(&cfg.PDFPath, "pdf", cfg.PDFPath, "Also write a PDF summary to this path")
	cmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose logging")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML or JSON config file")

	return cmd
}

// overlayUnset copies base values into cfg for every field whose flag
// the user did not pass, preserving flag precedence over env and file.
func overlayUnset(cmd *cobra.Command, cfg *app.Config, base app.Config) {
	if !cmd.Flags().Changed("owner") {
		cfg.OwnerName = base.OwnerName
	}
	if !cmd.Flags().Changed("encoding") {
		cfg.Encoding = base.Encoding
	}
	if !cmd.Flags().Changed("exclude-groups") {
		cfg.ExcludeGroupChats = base.ExcludeGroupChats
	}
	if !cmd.Flags().Changed("exhaustive") {
		cfg.ExhaustiveLists = base.ExhaustiveLists
	}
	if !cmd.Flags().Changed("ignore-placeholder") {
		cfg.IgnorePlaceholderSender = base.IgnorePlaceholderSender
	}
	if !cmd.Flags().Changed("cross-conversation-replies") {
		cfg.CrossConversationReplies = base.CrossConversationReplies
	}
	if !cmd.Flags().Changed("min-messages") {
		cfg.MinMessagesPerConversation = base.MinMessagesPerConversation
	}
	if !cmd.Flags().Changed("pdf") {
		cfg.PDFPath = base.PDFPath
	}
	if !cmd.Flags().Changed("verbose") {
		cfg.Verbose = base.Verbose
	}
	if cfg.RootPath == "" {
		cfg.RootPath = base.RootPath
	}
}

func run(cmd *cobra.Command, cfg app.Config) error {
	out := cmd.OutOrStdout()
	stdin := bufio.NewReader(cmd.InOrStdin())

	if cfg.RootPath == "" {
		fmt.Fprintln(out, "Please enter path to the unzipped export directory (the one which contains the messages subfolder).")
		fmt.Fprint(out, "Export root: ")
		line, _ := stdin.ReadString('\n')
		cfg.RootPath = strings.TrimSpace(line)
	}
	if app.DetectLayout(cfg.RootPath) == app.LayoutUnknown {
		return fmt.Errorf("provided path does not contain the required messages sub-folder: %s", cfg.RootPath)
	}

	fmt.Fprintln(out, "Setting: Exclude Group Chats:", cfg.ExcludeGroupChats)
	fmt.Fprintln(out, "Setting: Ignore Placeholder Sender:", cfg.IgnorePlaceholderSender)
	fmt.Fprintln(out, "Setting: Exhaustive lists:", cfg.ExhaustiveLists)

	a := app.New(cfg)
	a.PromptOwnerName = func() string {
		report.Separator(out)
		fmt.Fprintln(out, "Profile Information section is not included in this export!")
		fmt.Fprintln(out, "Please provide your name (exactly as in the export) so we can")
		fmt.Fprintln(out, "differentiate your messages from messages of your friends.")
		fmt.Fprint(out, "Your name: ")
		line, _ := stdin.ReadString('\n')
		report.Separator(out)
		return strings.TrimSpace(line)
	}
	a.Diagnostic = func(cleaned string) {
		if err := os.WriteFile("error_file.json", []byte(cleaned), 0o644); err != nil {
			log.Error().Err(err).Msg("cannot write diagnostic file")
		} else {
			log.Info().Msg("unparseable document written to error_file.json")
		}
	}

	ownerName, err := a.ResolveOwnerName()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Person name:", ownerName)

	started := time.Now()
	archive, err := a.BuildArchive(cmd.Context(), ownerName)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Parsed %d conversations in %s.\n", len(archive.Conversations), time.Since(started).Round(time.Millisecond))

	// Global battery over the whole archive.
	results := a.Stats(archive.OwnerName, archive.Conversations)
	report.Console(out, results)

	if cfg.PDFPath != "" {
		if err := report.WritePDF(cfg.PDFPath, archive.OwnerName, results); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		log.Info().Str("path", cfg.PDFPath).Msg("PDF summary written")
	}

	// Per-conversation breakdown for the busy threads.
	busy := store.MinMessages(archive, cfg.MinMessagesPerConversation)
	if len(busy.Conversations) > 0 {
		fmt.Fprintf(out, "\n\nPrinting statistics for each conversation with at least %d messages.\n\n", cfg.MinMessagesPerConversation)
	}
	for _, conversation := range busy.Conversations {
		fmt.Fprint(out, "\n\n")
		report.Banner(out, conversation.Title)
		report.Console(out, a.Stats(archive.OwnerName, []model.Conversation{conversation}))
	}

	return nil
}
