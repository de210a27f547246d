package feed

import (
	"bufio"
	"io"
	"strings"

	"book-pricer/domain"

	"github.com/pkg/errors"
)

// Source supplies parsed events; Next returns io.EOF at end of stream
type Source interface {
	Next() (domain.Event, error)
}

// Reader parses events line by line from an io.Reader
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// Ensure Reader implements Source
var _ Source = (*Reader)(nil)

// NewReader wraps r
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Next returns the next event, skipping blank lines
func (r *Reader) Next() (domain.Event, error) {
	for r.scanner.Scan() {
		r.line++
		text := strings.TrimSpace(r.scanner.Text())
		if text == "" {
			continue
		}
		event, err := ParseEvent(text)
		if err != nil {
			return event, errors.WithMessagef(err, "line %d", r.line)
		}
		return event, nil
	}
	if err := r.scanner.Err(); err != nil {
		return domain.Event{}, errors.Wrap(err, "read events")
	}
	return domain.Event{}, io.EOF
}

// Line returns the number of lines consumed so far
func (r *Reader) Line() int {
	return r.line
}

// SliceSource replays a fixed list of events
type SliceSource struct {
	events []domain.Event
	pos    int
}

// Ensure SliceSource implements Source
var _ Source = (*SliceSource)(nil)

// NewSliceSource replays events in order
func NewSliceSource(events []domain.Event) *SliceSource {
	return &SliceSource{events: events}
}

func (s *SliceSource) Next() (domain.Event, error) {
	if s.pos >= len(s.events) {
		return domain.Event{}, io.EOF
	}
	event := s.events[s.pos]
	s.pos++
	return event, nil
}

// LimitSource ends another source after n events
type LimitSource struct {
	src       Source
	remaining int
}

// Ensure LimitSource implements Source
var _ Source = (*LimitSource)(nil)

// Limit caps src at n events, which bounds an endless Generator
func Limit(src Source, n int) *LimitSource {
	return &LimitSource{src: src, remaining: n}
}

func (l *LimitSource) Next() (domain.Event, error) {
	if l.remaining <= 0 {
		return domain.Event{}, io.EOF
	}
	l.remaining--
	return l.src.Next()
}
