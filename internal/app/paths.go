package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Layout is the on-disk shape of an export archive.
type Layout int

const (
	LayoutUnknown Layout = iota
	// LayoutJSON: messages/<bucket>/<thread>/message_N.json fragments.
	LayoutJSON
	// LayoutHTML: html/messages.htm index plus messages/<id>.html pages.
	LayoutHTML
)

// ThreadRef points at one thread directory and its fragment files,
// sorted oldest-first by their numeric suffix. Directory enumeration
// order is never relied on.
type ThreadRef struct {
	ID        string
	Fragments []string
}

// DetectLayout inspects the archive root. The HTML index is checked
// first since older exports carry an empty messages folder next to it.
func DetectLayout(root string) Layout {
	if fileExists(filepath.Join(root, "html", "messages.htm")) {
		return LayoutHTML
	}
	if dirExists(filepath.Join(root, "messages")) {
		return LayoutJSON
	}
	return LayoutUnknown
}

// JSONThreads enumerates thread directories across every bucket
// (inbox, archived threads, ...) of a JSON-layout archive. Threads
// without a message_1.json are skipped with a warning, matching the
// fault-containment rule: one bad thread never aborts the run.
func JSONThreads(root string) ([]ThreadRef, error) {
	messagesDir := filepath.Join(root, "messages")
	buckets, err := os.ReadDir(messagesDir)
	if err != nil {
		return nil, fmt.Errorf("list messages folder: %w", err)
	}

	var refs []ThreadRef
	for _, bucket := range buckets {
		if !bucket.IsDir() {
			continue
		}
		bucketDir := filepath.Join(messagesDir, bucket.Name())
		threads, err := os.ReadDir(bucketDir)
		if err != nil {
			log.Warn().Err(err).Str("bucket", bucket.Name()).Msg("cannot list bucket, skipping")
			continue
		}
		log.Debug().Int("threads", len(threads)).Str("bucket", bucket.Name()).Msg("found threads")

		for _, thread := range threads {
			if !thread.IsDir() {
				continue
			}
			threadDir := filepath.Join(bucketDir, thread.Name())
			fragments := threadFragments(threadDir)
			if len(fragments) == 0 {
				log.Warn().Str("thread", thread.Name()).Msg("no message file for thread, skipping")
				continue
			}
			refs = append(refs, ThreadRef{
				ID:        bucket.Name() + "/" + thread.Name(),
				Fragments: fragments,
			})
		}
	}
	return refs, nil
}

// threadFragments lists message_N.json files of one thread directory in
// explicit numeric order, so paginated fragments always merge
// oldest-first regardless of enumeration order.
func threadFragments(threadDir string) []string {
	entries, err := os.ReadDir(threadDir)
	if err != nil {
		return nil
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "message_") && strings.HasSuffix(name, ".json") {
			files = append(files, name)
		}
	}
	sort.Slice(files, func(i, j int) bool {
		ni, oki := fragmentNumber(files[i])
		nj, okj := fragmentNumber(files[j])
		if oki && okj && ni != nj {
			return ni < nj
		}
		return files[i] < files[j]
	})
	for i, name := range files {
		files[i] = filepath.Join(threadDir, name)
	}
	return files
}

func fragmentNumber(name string) (int, bool) {
	n := strings.TrimSuffix(strings.TrimPrefix(name, "message_"), ".json")
	v, err := strconv.Atoi(n)
	if err != nil {
		return 0, false
	}
	return v, true
}

// HTMLIndexPath and HTMLThreadPath resolve documents of an HTML-layout
// archive. link comes from the index page with its relative prefix
// already trimmed.
func HTMLIndexPath(root string) string {
	return filepath.Join(root, "html", "messages.htm")
}

func HTMLThreadPath(root, link string) string {
	return filepath.Join(root, "messages", filepath.FromSlash(link))
}

// ProfilePath resolves the profile metadata document of a JSON-layout
// archive; ok is false when the export does not include that section.
func ProfilePath(root string) (string, bool) {
	p := filepath.Join(root, "profile_information", "profile_information.json")
	return p, fileExists(p)
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func dirExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
