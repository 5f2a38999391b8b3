package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/dobrakmato/messenger-stats/internal/decode"
	"github.com/dobrakmato/messenger-stats/internal/extract"
	"github.com/dobrakmato/messenger-stats/internal/model"
	"github.com/dobrakmato/messenger-stats/internal/stats"
	"github.com/dobrakmato/messenger-stats/internal/store"
)

// ErrUnknownLayout means the root path holds neither archive shape.
var ErrUnknownLayout = errors.New("path does not contain the messages folder of an export archive")

// ErrNoOwnerName means the owner's name could not be resolved from
// configuration, the profile document, or the interactive fallback.
var ErrNoOwnerName = errors.New("owner name could not be resolved")

// App runs the extraction pipeline for one archive.
type App struct {
	cfg Config

	// PromptOwnerName is the interactive fallback for exports without a
	// profile section. Nil disables prompting.
	PromptOwnerName func() string

	// Diagnostic receives cleaned-but-unparseable document text when
	// structured decoding fails, for external persistence. Nil drops it.
	Diagnostic func(cleaned string)
}

func New(cfg Config) *App {
	return &App{cfg: cfg}
}

// ResolveOwnerName picks the owner's display name: explicit
// configuration wins, then the profile metadata document, then the
// interactive callback.
func (a *App) ResolveOwnerName() (string, error) {
	if a.cfg.OwnerName != "" {
		return a.cfg.OwnerName, nil
	}
	if p, ok := ProfilePath(a.cfg.RootPath); ok {
		raw, err := os.ReadFile(p)
		if err != nil {
			return "", fmt.Errorf("read profile document: %w", err)
		}
		name, err := extract.ProfileName(raw)
		if err != nil {
			return "", err
		}
		return name, nil
	}
	if a.PromptOwnerName != nil {
		if name := a.PromptOwnerName(); name != "" {
			return name, nil
		}
	}
	return "", ErrNoOwnerName
}

// BuildArchive extracts every conversation under the configured root
// into a normalized archive. Per-document failures are logged and
// skipped; only a completely unreadable root is an error.
func (a *App) BuildArchive(ctx context.Context, ownerName string) (model.Archive, error) {
	st := store.New()

	switch DetectLayout(a.cfg.RootPath) {
	case LayoutJSON:
		if err := a.extractJSON(ctx, st); err != nil {
			return model.Archive{}, err
		}
	case LayoutHTML:
		if err := a.extractHTML(ctx, st); err != nil {
			return model.Archive{}, err
		}
	default:
		return model.Archive{}, ErrUnknownLayout
	}

	archive := st.Archive(ownerName)
	log.Info().Int("conversations", len(archive.Conversations)).Msg("archive built")

	if a.cfg.ExcludeGroupChats {
		archive = store.WithoutGroupChats(archive)
	}
	return archive, nil
}

func (a *App) extractJSON(ctx context.Context, st *store.Store) error {
	refs, err := JSONThreads(a.cfg.RootPath)
	if err != nil {
		return err
	}
	parser := extract.ThreadFileParser{
		IgnorePlaceholderSender: a.cfg.IgnorePlaceholderSender,
		DiagnosticSink:          a.Diagnostic,
	}

	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Debug().Str("thread", ref.ID).Int("fragments", len(ref.Fragments)).Msg("parsing thread")
		for _, fragment := range ref.Fragments {
			raw, err := os.ReadFile(fragment)
			if err != nil {
				log.Warn().Err(err).Str("file", fragment).Msg("cannot read fragment, skipping")
				continue
			}
			if conv, ok := parser.TryExtract(raw); ok {
				st.AddOrMerge(ref.ID, conv)
			}
		}
	}
	return nil
}

func (a *App) extractHTML(ctx context.Context, st *store.Store) error {
	raw, err := os.ReadFile(HTMLIndexPath(a.cfg.RootPath))
	if err != nil {
		return fmt.Errorf("read index page: %w", err)
	}
	raw, err = decode.Charset(raw, a.cfg.Encoding)
	if err != nil {
		return err
	}

	index := extract.IndexParser{IncludePlaceholder: !a.cfg.IgnorePlaceholderSender}
	entries := index.Parse(raw)
	log.Debug().Int("threads", len(entries)).Msg("index page parsed")

	parser := extract.ThreadPageParser{}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		page, err := os.ReadFile(HTMLThreadPath(a.cfg.RootPath, entry.Link))
		if err != nil {
			log.Warn().Err(err).Str("thread", entry.Link).Msg("cannot read thread page, skipping")
			continue
		}
		page, err = decode.Charset(page, a.cfg.Encoding)
		if err != nil {
			log.Warn().Err(err).Str("thread", entry.Link).Msg("cannot decode thread page, skipping")
			continue
		}
		if conv, ok := parser.TryExtract(page); ok {
			// The index carries the conversation's display name; the
			// page itself only knows participants.
			conv.Title = entry.Name
			st.AddOrMerge(entry.Link, conv)
		}
	}
	return nil
}

// Results is the full statistics battery over one conversation set.
type Results struct {
	General             stats.GeneralStats
	TopByCharacters     stats.Ranking
	TopByMessages       stats.MessageRanking
	Concentration       stats.ConcentrationCurve
	Hourly              [24]int
	Yearly              stats.YearlyStats
	Weekday             [7]int
	Lengths             stats.LengthStats
	MessagesBeforeReply stats.MessagesBeforeReplyStats
	TimeBeforeReply     stats.TimeBeforeReplyStats
	Starts              stats.ConversationStartsStats
	Words               stats.WordStats
}

// Stats computes every statistic over the given conversations.
func (a *App) Stats(ownerName string, conversations []model.Conversation) Results {
	return Results{
		General:             stats.General(ownerName, conversations),
		TopByCharacters:     stats.TopByCharacters(ownerName, conversations, a.cfg.ExhaustiveLists),
		TopByMessages:       stats.TopByMessages(ownerName, conversations, a.cfg.ExhaustiveLists),
		Concentration:       stats.Concentration(ownerName, conversations),
		Hourly:              stats.HourlyHistogram(conversations),
		Yearly:              stats.YearlyHistogram(conversations),
		Weekday:             stats.WeekdayHistogram(conversations),
		Lengths:             stats.MessageLengths(ownerName, conversations),
		MessagesBeforeReply: stats.MessagesBeforeReply(ownerName, conversations, a.cfg.CrossConversationReplies),
		TimeBeforeReply:     stats.TimeBeforeReply(ownerName, conversations),
		Starts:              stats.ConversationStarts(ownerName, conversations),
		Words:               stats.MostUsedWords(ownerName, conversations, a.cfg.ExhaustiveLists),
	}
}

// Config returns a copy of the app's configuration.
func (a *App) Config() Config {
	return a.cfg
}
