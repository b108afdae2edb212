// Package capture records raw sensor samples to disk as JSON lines and
// replays them later. Paths ending in ".xz" are transparently compressed.
package capture

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/colorsense/internal/colour"
)

// ErrClosed is returned when writing to a closed Writer.
var ErrClosed = errors.New("capture closed")

// Record is one recorded reading.
type Record struct {
	Time time.Time `json:"time"`
	colour.RawSample
	Proximity uint32 `json:"proximity"`
}

// String returns the record's time, channels and proximity.
func (r Record) String() string {
	return fmt.Sprintf("%s %s prox=%d", r.Time.Format(time.RFC3339Nano), r.RawSample, r.Proximity)
}

func isCompressed(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".xz")
}

// Writer appends records to a capture file.
type Writer struct {
	file   *os.File
	buf    *bufio.Writer
	xzw    *xz.Writer
	enc    *json.Encoder
	count  int
	logger hclog.Logger
}

// Create creates or truncates the capture file at path.
func Create(path string, logger hclog.Logger) (*Writer, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	f, err := os.Create(path) // #nosec G304 - capture path supplied by the user
	if err != nil {
		return nil, fmt.Errorf("failed to create capture file: %w", err)
	}

	w := &Writer{file: f, buf: bufio.NewWriter(f), logger: logger}
	var out io.Writer = w.buf
	if isCompressed(path) {
		w.xzw, err = xz.NewWriter(w.buf)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create xz writer: %w", err)
		}
		out = w.xzw
	}
	w.enc = json.NewEncoder(out)

	logger.Debug("recording samples", "path", path, "compressed", w.xzw != nil)
	return w, nil
}

// Write appends one record.
func (w *Writer) Write(r Record) error {
	if w.enc == nil {
		return ErrClosed
	}
	if err := w.enc.Encode(r); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	w.count++
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	return w.count
}

// Close flushes buffered data and closes the file.
func (w *Writer) Close() error {
	if w.enc == nil {
		return nil
	}
	w.enc = nil

	var errs []error
	if w.xzw != nil {
		errs = append(errs, w.xzw.Close())
	}
	errs = append(errs, w.buf.Flush(), w.file.Close())
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to close capture: %w", err)
	}

	w.logger.Debug("capture closed", "records", w.count)
	return nil
}

// Reader replays a capture file.
type Reader struct {
	file *os.File
	dec  *json.Decoder
	last Record
}

// Open opens the capture file at path.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path) // #nosec G304 - capture path supplied by the user
	if err != nil {
		return nil, fmt.Errorf("failed to open capture file: %w", err)
	}

	var in io.Reader = bufio.NewReader(f)
	if isCompressed(path) {
		xzr, err := xz.NewReader(in)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		in = xzr
	}

	return &Reader{file: f, dec: json.NewDecoder(in)}, nil
}

// Next returns the next record, or io.EOF after the last one.
func (r *Reader) Next() (Record, error) {
	var rec Record
	if err := r.dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, fmt.Errorf("failed to read record: %w", err)
	}
	r.last = rec
	return rec, nil
}

// Last returns the record most recently returned by Next or RawSample.
func (r *Reader) Last() Record {
	return r.last
}

// RawSample returns the colour channels of the next record, or io.EOF
// after the last one.
func (r *Reader) RawSample() (colour.RawSample, error) {
	rec, err := r.Next()
	if err != nil {
		return colour.RawSample{}, err
	}
	return rec.RawSample, nil
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}
