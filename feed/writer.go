package feed

import (
	"bufio"
	"io"
	"strconv"

	"book-pricer/domain"
)

// Sink consumes price-change notifications
type Sink interface {
	Publish(quote domain.Quote) error
}

// Writer prints one line per quote: "<timestamp> <S|B> <cost|NA>"
type Writer struct {
	w *bufio.Writer
}

// Ensure Writer implements Sink
var _ Sink = (*Writer)(nil)

// NewWriter buffers output to w; call Flush when done
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (w *Writer) Publish(quote domain.Quote) error {
	buf := make([]byte, 0, 32)
	buf = strconv.AppendUint(buf, quote.Timestamp, 10)
	buf = append(buf, ' ', byte(quote.Direction), ' ')
	buf = append(buf, quote.CostString()...)
	buf = append(buf, '\n')
	_, err := w.w.Write(buf)
	return err
}

// Flush writes any buffered output
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Collector keeps quotes in memory
type Collector struct {
	Quotes []domain.Quote
}

// Ensure Collector implements Sink
var _ Sink = (*Collector)(nil)

func (c *Collector) Publish(quote domain.Quote) error {
	c.Quotes = append(c.Quotes, quote)
	return nil
}
