package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	apperrors "a2t/internal/app/errors"
)

const (
	// Separator joins the transcripts of consecutive units.
	Separator = "\n\n"
	// Suffix replaces the input extension in the output file name.
	Suffix = "_transcript.txt"
)

// Transcript collects the text of each unit in upload order.
type Transcript struct {
	parts []string
}

func (t *Transcript) Add(text string) {
	t.parts = append(t.parts, text)
}

func (t *Transcript) Len() int {
	return len(t.parts)
}

func (t *Transcript) String() string {
	return Join(t.parts)
}

// Join concatenates unit transcripts in order.
func Join(parts []string) string {
	return strings.Join(parts, Separator)
}

// OutputPath is "<dir>/<stem>_transcript.txt" for input. An empty dir means
// the input's own directory.
func OutputPath(input, dir string) string {
	if dir == "" {
		dir = filepath.Dir(input)
	}
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+Suffix)
}

// Write stores text at path, replacing any existing file.
func Write(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return apperrors.Environment(err, "cannot write transcript to '%s'", path)
	}
	return nil
}

// Stats summarises a transcript for the console.
type Stats struct {
	Characters int
	Words      int
}

func StatsOf(text string) Stats {
	return Stats{
		Characters: utf8.RuneCountInString(text),
		Words:      len(strings.Fields(text)),
	}
}
