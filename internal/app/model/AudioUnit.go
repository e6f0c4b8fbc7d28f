package model

import (
	"fmt"
	"io"
	"os"
	"time"
)

// TimeSpan is a half-open interval [Start, End) of the source audio.
type TimeSpan struct {
	Start time.Duration
	End   time.Duration
}

func (s TimeSpan) Duration() time.Duration {
	return s.End - s.Start
}

func (s TimeSpan) String() string {
	return fmt.Sprintf("%s-%s", s.Start.Round(time.Millisecond), s.End.Round(time.Millisecond))
}

// AudioUnit is one upload: either the whole input file or a chunk derived
// from it. The payload is the byte range [Offset, Offset+Length) of Path.
//
// For byte-sliced units Path is the source file and the range is the slice
// of the source it covers. For duration-sliced units Path is a temporary
// file holding the re-cut audio and Span is the source time range.
type AudioUnit struct {
	Index  int
	Name   string
	Path   string
	Offset int64
	Length int64
	Span   *TimeSpan
}

// Size is the number of bytes uploaded for the unit.
func (u AudioUnit) Size() int64 {
	return u.Length
}

// Open returns a reader over the unit payload. The caller closes it.
func (u AudioUnit) Open() (io.ReadCloser, error) {
	f, err := os.Open(u.Path)
	if err != nil {
		return nil, err
	}
	return &sectionReadCloser{
		SectionReader: io.NewSectionReader(f, u.Offset, u.Length),
		closer:        f,
	}, nil
}

type sectionReadCloser struct {
	*io.SectionReader
	closer io.Closer
}

func (s *sectionReadCloser) Close() error {
	return s.closer.Close()
}
