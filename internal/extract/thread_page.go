package extract

import (
	"bytes"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"github.com/dobrakmato/messenger-stats/internal/model"
)

// pageState is the explicit state value of the thread-page machine. The
// page interleaves per-message metadata and body text, so the machine
// loops meta -> metaUser -> meta -> metaDate -> message -> meta for each
// message once the thread header has been consumed.
type pageState int

const (
	stateHeader pageState = iota
	stateMeta
	stateMetaUser
	stateMetaDate
	stateMessage
)

// Layouts the export tool has used for thread-page dates. The numeric
// zone covers the "UTC+02" suffix form.
var pageDateLayouts = []string{
	"Monday, January 2, 2006 at 3:04pm UTC-07",
	"Monday, 2 January 2006 at 15:04 UTC-07",
	"Monday, January 2, 2006 at 3:04 PM",
	"2006-01-02 15:04:05",
}

// ThreadPageParser extracts a single conversation from a markup thread
// page. Pages store messages newest-first; the returned conversation is
// chronological ascending.
type ThreadPageParser struct{}

func (ThreadPageParser) TryExtract(doc []byte) (*model.Conversation, bool) {
	z := html.NewTokenizer(bytes.NewReader(doc))

	state := stateHeader
	started := false
	var participants []string
	var messages []model.Message
	var pendingSender, pendingDate string

	emit := func(text *string) {
		sentAt, ok := parsePageDate(pendingDate)
		if ok {
			messages = append(messages, model.Message{
				Sender: pendingSender,
				Text:   text,
				SentAt: sentAt,
			})
		} else {
			// Ordering depends on the timestamp, so a message without a
			// usable one cannot be kept.
			log.Warn().Str("date", pendingDate).Msg("thread page: unparseable message date, skipping message")
		}
		pendingSender, pendingDate = "", ""
		state = stateMeta
	}

loop:
	for {
		switch z.Next() {
		case html.ErrorToken:
			break loop
		case html.StartTagToken:
			t := z.Token()
			if t.Data == "div" && attrValue(t, "class") == "thread" {
				started = true
				continue
			}
			if started && state == stateMeta {
				switch attrValue(t, "class") {
				case "user":
					state = stateMetaUser
				case "meta":
					state = stateMetaDate
				}
			}
		case html.TextToken:
			if !started {
				continue
			}
			text := string(z.Text())
			trimmed := strings.TrimSpace(text)
			switch state {
			case stateHeader:
				if i := strings.Index(text, ":"); i >= 0 {
					participants = splitParticipants(text[i+1:])
					state = stateMeta
				}
			case stateMetaUser:
				if trimmed == "" {
					continue
				}
				pendingSender = trimmed
				state = stateMeta
			case stateMetaDate:
				if trimmed == "" {
					continue
				}
				pendingDate = trimmed
				state = stateMessage
			case stateMessage:
				if trimmed == "" {
					continue
				}
				emit(model.Ptr(text))
			}
		case html.EndTagToken:
			t := z.Token()
			// A message container closed with no body text at all is an
			// attachment-only message, recorded with an absent body.
			if started && state == stateMessage && t.Data == "p" {
				emit(nil)
			}
		}
	}

	if len(participants) == 0 || len(messages) == 0 {
		return nil, false
	}

	// Newest-first on the page, chronological ascending in the model.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return &model.Conversation{
		Title:        strings.Join(participants, ", "),
		Participants: participants,
		Messages:     messages,
	}, true
}

func attrValue(t html.Token, key string) string {
	for _, a := range t.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func parsePageDate(s string) (time.Time, bool) {
	for _, layout := range pageDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
