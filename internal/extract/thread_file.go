package extract

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dobrakmato/messenger-stats/internal/decode"
	"github.com/dobrakmato/messenger-stats/internal/model"
)

type threadDoc struct {
	Title        string            `json:"title"`
	Participants []threadParty     `json:"participants"`
	Messages     []threadDocRecord `json:"messages"`
}

type threadParty struct {
	Name string `json:"name"`
}

type threadDocRecord struct {
	SenderName  string  `json:"sender_name"`
	Content     *string `json:"content"`
	TimestampMS *int64  `json:"timestamp_ms"`
}

// ThreadFileParser extracts one conversation fragment from a structured
// thread file. The file stores messages newest-first; the returned
// conversation is chronological ascending.
//
// IgnorePlaceholderSender drops messages whose sender name is the empty
// string, an artifact the export tool produces for deleted or anonymized
// accounts. DiagnosticSink, when set, receives the cleaned text of
// documents that stayed unparseable after cleanup so the caller can
// persist them for offline diagnosis.
type ThreadFileParser struct {
	IgnorePlaceholderSender bool
	DiagnosticSink          func(cleaned string)
}

func (p ThreadFileParser) TryExtract(raw []byte) (*model.Conversation, bool) {
	cleaned, err := decode.CleanJSON(raw)
	if err != nil {
		log.Error().Err(err).Msg("thread file: JSON decode error")
		if p.DiagnosticSink != nil {
			p.DiagnosticSink(cleaned)
		}
		return nil, false
	}

	var doc threadDoc
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		log.Error().Err(err).Msg("thread file: unexpected document structure")
		if p.DiagnosticSink != nil {
			p.DiagnosticSink(cleaned)
		}
		return nil, false
	}

	participants := make([]string, 0, len(doc.Participants))
	for _, party := range doc.Participants {
		participants = append(participants, party.Name)
	}
	inferParticipants := len(participants) == 0
	seen := map[string]bool{}

	messages := make([]model.Message, 0, len(doc.Messages))
	for i := len(doc.Messages) - 1; i >= 0; i-- {
		rec := doc.Messages[i]

		// Build the participant list from distinct senders when the
		// document does not carry one.
		if inferParticipants && rec.SenderName != "" && !seen[rec.SenderName] {
			seen[rec.SenderName] = true
			participants = append(participants, rec.SenderName)
		}

		if rec.SenderName == "" && p.IgnorePlaceholderSender {
			continue
		}
		if rec.TimestampMS == nil {
			log.Warn().Str("sender", rec.SenderName).Msg("thread file: message without timestamp, skipping message")
			continue
		}

		messages = append(messages, model.Message{
			Sender: rec.SenderName,
			Text:   rec.Content,
			SentAt: time.UnixMilli(*rec.TimestampMS),
		})
	}

	if len(messages) == 0 {
		return nil, false
	}

	title := doc.Title
	if title == "" {
		title = strings.Join(participants, " ")
	}
	return &model.Conversation{
		Title:        title,
		Participants: participants,
		Messages:     messages,
	}, true
}
