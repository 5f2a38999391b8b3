package extract

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// hrefPrefixLen is the fixed length of the relative-path marker every
// index anchor carries in front of the thread file name.
const hrefPrefixLen = 9

// deactivatedPlaceholder is the synthetic display name the export tool
// substitutes for deactivated or deleted accounts.
const deactivatedPlaceholder = "Facebook User"

// IndexEntry is one thread link from the index page: the thread file
// reference (prefix already trimmed) and the conversation's display name.
type IndexEntry struct {
	Link string
	Name string
}

// IndexParser extracts the thread list from a markup index page: the
// contents container, its first heading, then every anchor with text
// inside it. When IncludePlaceholder is false (the default), entries
// named after the deactivated-account placeholder are dropped.
type IndexParser struct {
	IncludePlaceholder bool
}

func (p IndexParser) Parse(doc []byte) []IndexEntry {
	z := html.NewTokenizer(bytes.NewReader(doc))

	// 0 = before contents, 1 = inside contents, 2 = inside heading,
	// 3 = inside an anchor, waiting for its text.
	state := 0
	var pendingLink string
	var entries []IndexEntry

	for {
		switch z.Next() {
		case html.ErrorToken:
			return entries
		case html.StartTagToken:
			t := z.Token()
			if state == 0 && t.Data == "div" && attrValue(t, "class") == "contents" {
				state = 1
			}
			if state == 1 && t.Data == "h1" {
				state = 2
			}
			if state == 2 && t.Data == "a" {
				href := attrValue(t, "href")
				if len(href) >= hrefPrefixLen {
					href = href[hrefPrefixLen:]
				}
				pendingLink = href
				state = 3
			}
		case html.TextToken:
			if state != 3 {
				continue
			}
			name := strings.TrimSpace(string(z.Text()))
			if name == "" {
				continue
			}
			if p.IncludePlaceholder || name != deactivatedPlaceholder {
				entries = append(entries, IndexEntry{Link: pendingLink, Name: name})
			}
			pendingLink = ""
			state = 2
		}
	}
}
