// Package dictionary loads and indexes word lists for the crossword
// constructor: an ordered list of words encoded as small-integer arrays,
// sorted by descending length, plus a set of fingerprints for O(1)
// membership tests.
package dictionary

import (
	"bufio"
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"sort"
)

// Store is a read-only, once-loaded dictionary.
type Store struct {
	// Words holds every loaded word, encoded to letter indices, sorted
	// by descending length (ties keep file order).
	Words [][]byte

	// fingerprints indexes Fingerprint(word) -> true for every word in
	// Words, for O(1) membership tests.
	fingerprints map[uint32]bool
}

// New builds a Store from already-encoded words. Words shorter than two
// letters are dropped, matching the dictionary-entry length invariant in
// spec.md §3.
func New(words [][]byte) *Store {
	s := &Store{
		fingerprints: make(map[uint32]bool, len(words)),
	}
	for _, w := range words {
		if len(w) < 2 {
			continue
		}
		s.Words = append(s.Words, w)
		s.fingerprints[Fingerprint(w)] = true
	}
	sort.SliceStable(s.Words, func(i, j int) bool {
		return len(s.Words[i]) > len(s.Words[j])
	})
	return s
}

// Load reads a UTF-8 text dictionary, one word per line. Blank lines are
// ignored, words shorter than two letters are ignored, and every
// character must be A-Z after upper-casing (surrounding whitespace is
// trimmed first). This matches the external dictionary format in
// spec.md §6.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: open %s: %w", path, err)
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader is Load, reading from an already-open io.Reader so callers
// (e.g. a Redis-backed cache warm path) can supply any source.
func LoadReader(r io.Reader) (*Store, error) {
	var words [][]byte
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := trimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if len(line) < 2 {
			continue
		}
		encoded, err := EncodeWord(line)
		if err != nil {
			continue
		}
		words = append(words, encoded)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dictionary: scan: %w", err)
	}
	return New(words), nil
}

// trimSpace trims ASCII whitespace without pulling in strings.TrimSpace's
// unicode table for this hot load path; dictionaries are ASCII by contract.
func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// Contains reports whether word's fingerprint is a member of the store.
// Per spec.md §9, this is fingerprint-quality only: a collision between
// two equal-length dictionary words would register as a false positive.
// The supplied dictionaries are collision-free in practice.
func (s *Store) Contains(word []byte) bool {
	return s.fingerprints[Fingerprint(word)]
}

// Makeable filters Words down to those buildable from hand alone
// (spec.md §4.1's IsMakeable), preserving the descending-length order.
func (s *Store) Makeable(isMakeable func([]byte) bool) [][]byte {
	var out [][]byte
	for _, w := range s.Words {
		if isMakeable(w) {
			out = append(out, w)
		}
	}
	return out
}

// Size returns the number of words held in the store.
func (s *Store) Size() int {
	return len(s.Words)
}

// gobStore is the on-wire shape a Store gob-encodes to: only Words is
// carried across, since the fingerprint index is cheap to rebuild and
// keeping it out of the cache keeps the cache format stable across any
// future change to Fingerprint.
type gobStore struct {
	Words [][]byte
}

// GobEncode implements gob.GobEncoder, so a *Store can be cached directly
// (internal/db's Redis-backed dict:{version} cache).
func (s *Store) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(gobStore{Words: s.Words}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder, rebuilding the fingerprint index
// via New rather than trusting a cached one.
func (s *Store) GobDecode(data []byte) error {
	var g gobStore
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&g); err != nil {
		return err
	}
	*s = *New(g.Words)
	return nil
}
