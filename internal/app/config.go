// Package app wires the extraction pipeline together: configuration,
// archive layout discovery, document decoding and extraction, and the
// statistics battery over the resulting archive.
package app

// Config holds every runtime setting. It is passed explicitly into the
// pipeline; there is no ambient mutable state.
type Config struct {
	// RootPath is the unzipped export directory, the one containing the
	// messages subfolder.
	RootPath string
	// Encoding optionally declares the source charset of markup
	// documents; empty means UTF-8.
	Encoding string

	// OwnerName, when set, bypasses profile-document parsing.
	OwnerName string

	ExcludeGroupChats       bool
	ExhaustiveLists         bool
	IgnorePlaceholderSender bool
	// CrossConversationReplies restores the historical behavior of
	// running reply-count tracking across conversation boundaries as
	// one continuous stream.
	CrossConversationReplies bool

	// MinMessagesPerConversation gates the per-conversation breakdown.
	MinMessagesPerConversation int

	// PDFPath, when set, is where the cmd layer writes a PDF summary.
	PDFPath string

	Verbose bool
}

// DefaultConfig mirrors the historical defaults of the tool.
func DefaultConfig() Config {
	return Config{
		ExcludeGroupChats:          true,
		IgnorePlaceholderSender:    true,
		MinMessagesPerConversation: 100,
	}
}
