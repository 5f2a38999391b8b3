// Package extract turns decoded export documents into normalized
// conversations. Three strategies cover the source shapes that appear in
// the wild: markup thread pages, the markup index page, and structured
// thread fragment files. All of them are best-effort; a document that
// cannot be recovered is skipped, never fatal to the batch.
package extract

import (
	"strings"

	"github.com/dobrakmato/messenger-stats/internal/model"
)

// Extractor is the capability shared by the thread-shaped strategies:
// try to pull one conversation out of a source document. ok is false
// when the document yielded nothing usable.
type Extractor interface {
	TryExtract(doc []byte) (conv *model.Conversation, ok bool)
}

// splitParticipants turns a comma-separated participant list into
// trimmed names, dropping empties.
func splitParticipants(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
