// Package migrate imports NotePlan calendar backups into a vault's calendar
// folders, normalizing filenames and merging into existing notes.
package migrate

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Kind classifies a calendar note by its filename shape.
type Kind int

const (
	KindDaily Kind = iota
	KindWeekly
	KindMonthly
	KindQuarterly
	KindYearly
)

func (k Kind) String() string {
	switch k {
	case KindDaily:
		return "daily"
	case KindWeekly:
		return "weekly"
	case KindMonthly:
		return "monthly"
	case KindQuarterly:
		return "quarterly"
	case KindYearly:
		return "yearly"
	}
	return "unknown"
}

// Kinds lists all calendar kinds in reporting order.
var Kinds = []Kind{KindDaily, KindWeekly, KindMonthly, KindQuarterly, KindYearly}

var (
	dailyRe     = regexp.MustCompile(`^(\d{8})\.md$`)
	monthlyRe   = regexp.MustCompile(`^(\d{4})[-.](\d{2})\.md$`)
	weeklyRe    = regexp.MustCompile(`^(\d{4})[-.]?W(\d{1,2})\.md$`)
	quarterlyRe = regexp.MustCompile(`^(\d{4})[-.]?Q([1-4])\.md$`)
	yearlyRe    = regexp.MustCompile(`^(\d{4})\.md$`)
)

// Classify identifies the calendar kind of a NotePlan filename. The second
// return is false for filenames that are not calendar notes.
func Classify(name string) (Kind, bool) {
	switch {
	case dailyRe.MatchString(name):
		return KindDaily, true
	case monthlyRe.MatchString(name):
		return KindMonthly, true
	case weeklyRe.MatchString(name):
		return KindWeekly, true
	case quarterlyRe.MatchString(name):
		return KindQuarterly, true
	case yearlyRe.MatchString(name):
		return KindYearly, true
	}
	return 0, false
}

// Normalize converts a NotePlan calendar filename to the vault's naming:
// daily 20220325.md becomes 2022-03-25.md, weekly 2023W7.md becomes
// 2023-W07.md, and so on. Yearly names pass through unchanged.
func Normalize(name string, kind Kind) string {
	switch kind {
	case KindDaily:
		if m := dailyRe.FindStringSubmatch(name); m != nil {
			d := m[1]
			return d[:4] + "-" + d[4:6] + "-" + d[6:8] + ".md"
		}
	case KindMonthly:
		if m := monthlyRe.FindStringSubmatch(name); m != nil {
			return m[1] + "-" + m[2] + ".md"
		}
	case KindWeekly:
		if m := weeklyRe.FindStringSubmatch(name); m != nil {
			week := m[2]
			if len(week) == 1 {
				week = "0" + week
			}
			return m[1] + "-W" + week + ".md"
		}
	case KindQuarterly:
		if m := quarterlyRe.FindStringSubmatch(name); m != nil {
			return m[1] + "-Q" + m[2] + ".md"
		}
	}
	return name
}

// Category buckets attachments by media type.
type Category int

const (
	CategoryAudio Category = iota
	CategoryImage
	CategoryDocument
	CategoryVideo
)

func (c Category) String() string {
	switch c {
	case CategoryAudio:
		return "audio"
	case CategoryImage:
		return "image"
	case CategoryDocument:
		return "document"
	case CategoryVideo:
		return "video"
	}
	return "unknown"
}

var categoryExts = map[string]Category{
	".mp3": CategoryAudio, ".wav": CategoryAudio, ".m4a": CategoryAudio,
	".ogg": CategoryAudio, ".flac": CategoryAudio, ".aac": CategoryAudio,

	".jpg": CategoryImage, ".jpeg": CategoryImage, ".png": CategoryImage,
	".gif": CategoryImage, ".webp": CategoryImage, ".svg": CategoryImage,
	".heic": CategoryImage, ".heif": CategoryImage, ".bmp": CategoryImage,
	".tiff": CategoryImage, ".tif": CategoryImage,

	".pdf": CategoryDocument, ".doc": CategoryDocument, ".docx": CategoryDocument,
	".xls": CategoryDocument, ".xlsx": CategoryDocument, ".ppt": CategoryDocument,
	".pptx": CategoryDocument, ".txt": CategoryDocument, ".rtf": CategoryDocument,
	".csv": CategoryDocument, ".epub": CategoryDocument,

	".mp4": CategoryVideo, ".mov": CategoryVideo, ".avi": CategoryVideo,
	".mkv": CategoryVideo, ".wmv": CategoryVideo, ".flv": CategoryVideo,
	".webm": CategoryVideo, ".m4v": CategoryVideo,
}

// Categorize routes an attachment by its extension. Unrecognized extensions
// fall back to the document bucket.
func Categorize(name string) Category {
	ext := strings.ToLower(filepath.Ext(name))
	if cat, ok := categoryExts[ext]; ok {
		return cat
	}
	return CategoryDocument
}

// KindStats counts outcomes for one calendar kind.
type KindStats struct {
	Processed int
	Errors    int
}

// Stats summarizes a migration run.
type Stats struct {
	Notes       map[Kind]*KindStats
	Attachments KindStats
	Skipped     int

	Created          []string
	Merged           []string
	AttachmentsMoved []string
}

func newStats() *Stats {
	s := &Stats{Notes: make(map[Kind]*KindStats)}
	for _, k := range Kinds {
		s.Notes[k] = &KindStats{}
	}
	return s
}

// Migrator copies NotePlan calendar notes and attachments into a vault.
// Sources stay untouched; existing destinations are merged, never replaced.
type Migrator struct {
	// Source is the NotePlan backup directory to read.
	Source string

	// CalendarDirs maps each calendar kind to its destination directory.
	CalendarDirs map[Kind]string

	// AttachmentDirs maps each media category to its destination directory.
	AttachmentDirs map[Category]string

	// DryRun reports planned actions without touching the filesystem.
	DryRun bool

	// SkipAttachments leaves *_attachments folders alone.
	SkipAttachments bool

	// Now stamps merge separators; defaults to time.Now.
	Now func() time.Time

	Log zerolog.Logger
}

// Run migrates every recognized note and attachment under Source. A missing
// source directory is the only fatal error; per-file failures are counted
// and the run continues.
func (m *Migrator) Run() (*Stats, error) {
	if _, err := os.Stat(m.Source); err != nil {
		return nil, fmt.Errorf("source directory: %w", err)
	}

	entries, err := os.ReadDir(m.Source)
	if err != nil {
		return nil, fmt.Errorf("read source directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	stats := newStats()
	for _, entry := range entries {
		name := entry.Name()
		full := filepath.Join(m.Source, name)

		if entry.IsDir() {
			if !strings.Contains(name, "_attachments") {
				continue
			}
			if m.SkipAttachments {
				m.Log.Debug().Str("dir", name).Msg("skipping attachment folder")
				continue
			}
			m.migrateAttachmentFolder(full, stats)
			continue
		}

		if !strings.HasSuffix(name, ".md") {
			stats.Skipped++
			continue
		}
		kind, ok := Classify(name)
		if !ok {
			m.Log.Debug().Str("file", name).Msg("unrecognized calendar format")
			stats.Skipped++
			continue
		}

		if err := m.migrateNote(full, name, kind, stats); err != nil {
			m.Log.Error().Err(err).Str("file", name).Msg("note migration failed")
			stats.Notes[kind].Errors++
		} else {
			stats.Notes[kind].Processed++
		}
	}
	return stats, nil
}

func (m *Migrator) migrateNote(src, name string, kind Kind, stats *Stats) error {
	destDir, ok := m.CalendarDirs[kind]
	if !ok || destDir == "" {
		return fmt.Errorf("no destination configured for %s notes", kind)
	}
	dest := filepath.Join(destDir, Normalize(name, kind))

	if err := m.ensureDir(destDir); err != nil {
		return err
	}

	if _, err := os.Stat(dest); err == nil {
		if m.DryRun {
			m.Log.Info().Str("from", src).Str("to", dest).Msg("would merge")
			return nil
		}
		if err := m.mergeInto(src, name, dest); err != nil {
			return err
		}
		stats.Merged = append(stats.Merged, dest)
		return nil
	}

	if m.DryRun {
		m.Log.Info().Str("from", src).Str("to", dest).Msg("would copy")
		return nil
	}
	if err := copyFile(src, dest); err != nil {
		return err
	}
	stats.Created = append(stats.Created, dest)
	return nil
}

// mergeInto appends the source note to an existing destination under a
// separator naming the imported file and the import date.
func (m *Migrator) mergeInto(src, name, dest string) error {
	srcData, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	destData, err := os.ReadFile(dest)
	if err != nil {
		return fmt.Errorf("read %s: %w", dest, err)
	}

	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	separator := fmt.Sprintf("\n\n---\n\n**Content imported from NotePlan (%s) on %s:**\n\n",
		name, now().Format("2006-01-02"))

	merged := append(destData, []byte(separator)...)
	merged = append(merged, srcData...)
	if err := os.WriteFile(dest, merged, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}

func (m *Migrator) migrateAttachmentFolder(dir string, stats *Stats) {
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			stats.Attachments.Errors++
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if err := m.migrateAttachment(path, stats); err != nil {
			m.Log.Error().Err(err).Str("file", path).Msg("attachment migration failed")
			stats.Attachments.Errors++
		} else {
			stats.Attachments.Processed++
		}
		return nil
	})
	if walkErr != nil {
		m.Log.Error().Err(walkErr).Str("dir", dir).Msg("attachment folder walk failed")
	}
}

func (m *Migrator) migrateAttachment(src string, stats *Stats) error {
	cat := Categorize(src)
	destDir, ok := m.AttachmentDirs[cat]
	if !ok || destDir == "" {
		return fmt.Errorf("no destination configured for %s attachments", cat)
	}
	if err := m.ensureDir(destDir); err != nil {
		return err
	}

	name := filepath.Base(src)
	dest := filepath.Join(destDir, name)

	// Never overwrite an existing attachment; suffix a counter instead.
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for counter := 1; !m.DryRun; counter++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			break
		}
		dest = filepath.Join(destDir, fmt.Sprintf("%s_%d%s", stem, counter, ext))
	}

	if m.DryRun {
		m.Log.Info().Str("from", src).Str("to", dest).Msg("would move attachment")
		return nil
	}
	if err := copyFile(src, dest); err != nil {
		return err
	}
	stats.AttachmentsMoved = append(stats.AttachmentsMoved, dest)
	return nil
}

func (m *Migrator) ensureDir(dir string) error {
	if m.DryRun {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy to %s: %w", dest, err)
	}
	return out.Close()
}
