package batch

import (
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/aidanlsb/vaultmend/internal/pattern"
	"github.com/aidanlsb/vaultmend/internal/textenc"
	"github.com/aidanlsb/vaultmend/internal/walker"
)

// Aggregator counts pattern occurrences across a vault without writing
// anything. Used by the tag inventory.
type Aggregator struct {
	Root    string
	Walk    walker.Options
	Pattern *pattern.Pattern

	Progress func(done, total int)
	Log      zerolog.Logger
}

// Entry is one distinct matched text with its occurrence count.
type Entry struct {
	Text  string
	Count int
}

// Inventory is the result of an aggregation run.
type Inventory struct {
	TotalFiles int
	Counts     map[string]int
	Errored    []FileOutcome
	Elapsed    time.Duration
}

// Entries returns the counts ordered by descending count, then ascending
// text, so reports are deterministic.
func (inv *Inventory) Entries() []Entry {
	entries := make([]Entry, 0, len(inv.Counts))
	for text, count := range inv.Counts {
		entries = append(entries, Entry{Text: text, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Text < entries[j].Text
	})
	return entries
}

// Run scans every candidate file and tallies matches.
func (a *Aggregator) Run() (*Inventory, error) {
	start := time.Now()

	paths, err := walker.Collect(a.Root, a.Walk)
	if err != nil {
		return nil, err
	}

	inv := &Inventory{
		TotalFiles: len(paths),
		Counts:     make(map[string]int),
	}

	for i, path := range paths {
		if a.Progress != nil {
			a.Progress(i+1, len(paths))
		}

		data, err := os.ReadFile(path)
		if err != nil {
			rel := (&Runner{Root: a.Root}).relPath(path)
			a.Log.Debug().Str("path", rel).Err(err).Msg("file errored")
			inv.Errored = append(inv.Errored, FileOutcome{
				Path:   rel,
				Status: StatusErrored,
				Kind:   ErrKindRead,
				Err:    err,
			})
			continue
		}

		text, _ := textenc.Decode(data)
		for _, m := range a.Pattern.FindAll(text) {
			inv.Counts[m.Text]++
		}
	}

	inv.Elapsed = time.Since(start)
	return inv, nil
}
