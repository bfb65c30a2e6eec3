// Package corpus loads Kaldi-style reference/hypothesis text files and
// writes the scored result file of spec.md §6.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Utterance is one (uid, text) pair of spec.md §3.
type Utterance struct {
	UID  string
	Text string
}

// Set is spec.md §3's UtteranceSet: a uid-keyed map, insertion order
// irrelevant, always iterated in sorted uid order.
type Set struct {
	byUID map[string]Utterance
}

// NewSet returns an empty utterance set.
func NewSet() *Set {
	return &Set{byUID: make(map[string]Utterance)}
}

// Add inserts u, returning an error if its uid is already present
// (spec.md §6: "duplicate UIDs within a file are a fatal error").
func (s *Set) Add(u Utterance) error {
	if _, exists := s.byUID[u.UID]; exists {
		return fmt.Errorf("corpus: duplicate uid %q", u.UID)
	}
	s.byUID[u.UID] = u
	return nil
}

// Get looks up an utterance by uid.
func (s *Set) Get(uid string) (Utterance, bool) {
	u, ok := s.byUID[uid]
	return u, ok
}

// Len is the number of utterances.
func (s *Set) Len() int {
	return len(s.byUID)
}

// SortedUIDs returns every uid in sorted order, for the deterministic
// iteration spec.md §3 requires.
func (s *Set) SortedUIDs() []string {
	uids := make([]string, 0, len(s.byUID))
	for uid := range s.byUID {
		uids = append(uids, uid)
	}
	sort.Strings(uids)
	return uids
}

// LoadKaldiText parses one record per line, `UID<whitespace>TEXT`; TEXT
// may be empty. Duplicate uids are a fatal error, per spec.md §6.
func LoadKaldiText(r io.Reader) (*Set, error) {
	set := NewSet()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		trimmed := strings.TrimSpace(line)
		uid := strings.Fields(trimmed)[0]
		text := strings.TrimSpace(trimmed[len(uid):])
		if err := set.Add(Utterance{UID: uid, Text: text}); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("corpus: reading text: %w", err)
	}
	return set, nil
}

// LoadKaldiFile reads a Kaldi text file from disk, transparently
// gunzipping it when the path ends in .gz.
func LoadKaldiFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: cannot open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("corpus: %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}
	return LoadKaldiText(r)
}
