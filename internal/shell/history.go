package shell

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
)

// EntryKind records whether a HistoryEntry has been persisted to the
// history file at least once.
type EntryKind int

const (
	KindNew   EntryKind = iota // entered this session, not yet persisted
	KindSaved                  // already persisted at least once
)

// HistoryEntry is one line of shell history with its provenance.
type HistoryEntry struct {
	Text string
	Kind EntryKind
}

// History is the in-memory, ordered command history, optionally backed
// by a file path taken from HISTFILE at startup. The Saved/New
// distinction exists so that repeated "-a" persistence never
// duplicates lines already written to disk.
type History struct {
	entries     []HistoryEntry
	path        string
	startupDone bool
	limit       int
}

// NewHistory returns a History backed by path (the empty string means
// no history file is configured — startup load and exit persistence
// both become no-ops). The in-memory entry count is unbounded until
// SetLimit is called.
func NewHistory(path string) *History {
	return &History{path: path}
}

// HasFile reports whether a history file path is configured.
func (h *History) HasFile() bool {
	return h.path != ""
}

// SetLimit caps the number of entries kept in memory to n, trimming
// the oldest entries immediately if the history already exceeds it. A
// limit of 0 or less means unbounded.
func (h *History) SetLimit(n int) {
	h.limit = n
	h.trim()
}

// trim drops the oldest entries until the history is at or under the
// configured limit.
func (h *History) trim() {
	if h.limit <= 0 || len(h.entries) <= h.limit {
		return
	}
	h.entries = h.entries[len(h.entries)-h.limit:]
}

// LoadStartup loads the configured history file, if any, as Saved
// entries in file order. A missing file is not an error — there is
// simply nothing to load yet. It is idempotent: a caller (such as the
// entrypoint, seeding a line editor's recall buffer before Run starts)
// may call it ahead of time without Run loading the file a second
// time.
func (h *History) LoadStartup() error {
	if h.startupDone {
		return nil
	}
	h.startupDone = true

	if h.path == "" {
		return nil
	}
	if _, err := os.Stat(h.path); os.IsNotExist(err) {
		return nil
	}
	return h.Load(h.path)
}

// Load reads path and appends each line as a Saved entry.
func (h *History) Load(path string) error {
	lines, err := readLines(path)
	if err != nil {
		return err
	}
	for _, line := range lines {
		h.entries = append(h.entries, HistoryEntry{Text: line, Kind: KindSaved})
	}
	h.trim()
	return nil
}

// AppendNew records text as a New entry — called once per non-empty
// input line, before dispatch. Once the history is over its configured
// limit this also drops the oldest entry, Saved or New alike, the same
// way a real shell's HISTSIZE does.
func (h *History) AppendNew(text string) {
	h.entries = append(h.entries, HistoryEntry{Text: text, Kind: KindNew})
	h.trim()
}

// All returns every entry in insertion order.
func (h *History) All() []HistoryEntry {
	return h.entries
}

// Tail returns the last n entries, or every entry if n is out of
// range. The entries are still in insertion order; callers number
// them starting from their true 1-based position.
func (h *History) Tail(n int) []HistoryEntry {
	if n < 0 || n >= len(h.entries) {
		return h.entries
	}
	return h.entries[len(h.entries)-n:]
}

// WriteFile truncates path and writes every entry, Saved and New
// alike, one per line.
func (h *History) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range h.entries {
		fmt.Fprintln(w, e.Text)
	}
	return w.Flush()
}

// AppendFile opens path for append, writes only the New entries, and
// on success promotes each of them to Saved in place. Repeated calls
// are idempotent: once an entry is Saved it is never written again.
func (h *History) AppendFile(path string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range h.entries {
		if e.Kind == KindNew {
			fmt.Fprintln(w, e.Text)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for i := range h.entries {
		if h.entries[i].Kind == KindNew {
			h.entries[i].Kind = KindSaved
		}
	}
	return nil
}

// PersistOnExit runs the "-a" persistence flow against the configured
// history file, if any. It is a no-op when HISTFILE was never set.
func (h *History) PersistOnExit() error {
	if h.path == "" {
		return nil
	}
	return h.AppendFile(h.path)
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// FormatEntry renders one history line exactly as the "history"
// builtin prints it: four spaces, the 1-based position, two spaces,
// the text.
func FormatEntry(position int, text string) string {
	return fmt.Sprintf("    %d  %s", position, text)
}

// parseCount parses the "history N" argument; a non-numeric or
// negative argument is treated as "show everything".
func parseCount(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
