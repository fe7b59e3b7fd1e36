package normalizer

import (
	"bufio"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/bikeshare-loader/internal/domain"
)

func newCSVReader(r io.Reader) *csv.Reader {
	br := stripUTF8BOM(bufio.NewReaderSize(r, 1<<16))
	cr := csv.NewReader(br)
	// Width is checked per row against the variant layout to report a format error
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	return cr
}

func stripUTF8BOM(r *bufio.Reader) *bufio.Reader {
	b, err := r.Peek(3)
	if err == nil && len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = r.Discard(3)
	}
	return r
}

// Writer emits the bulk-load text format: comma separated, header first, and
// an unquoted null token for null cells. A non-null value is quoted whenever it
// could be mistaken for the token or needs escaping; quoted values never load as NULL.
type Writer struct {
	w    *bufio.Writer
	null string
	buf  []byte
}

// NewWriter creates a Writer using domain.NullToken
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:    bufio.NewWriterSize(w, 1<<16),
		null: domain.NullToken,
	}
}

// WriteHeader writes the column names
func (w *Writer) WriteHeader(columns []string) error {
	cells := make([]*string, len(columns))
	for i := range columns {
		cells[i] = &columns[i]
	}
	return w.Write(cells)
}

// Write writes one record; nil cells become the null token
func (w *Writer) Write(cells []*string) error {
	w.buf = w.buf[:0]
	for i, c := range cells {
		if i > 0 {
			w.buf = append(w.buf, ',')
		}
		if c == nil {
			w.buf = append(w.buf, w.null...)
			continue
		}
		w.buf = w.appendField(w.buf, *c)
	}
	w.buf = append(w.buf, '\n')
	_, err := w.w.Write(w.buf)
	return err
}

// Flush writes buffered data to the underlying writer
func (w *Writer) Flush() error {
	return w.w.Flush()
}

func (w *Writer) appendField(dst []byte, s string) []byte {
	if !w.needsQuotes(s) {
		return append(dst, s...)
	}
	dst = append(dst, '"')
	dst = append(dst, strings.ReplaceAll(s, `"`, `""`)...)
	return append(dst, '"')
}

func (w *Writer) needsQuotes(s string) bool {
	if s == "" || s == w.null {
		return true
	}
	return strings.ContainsAny(s, ",\"\r\n")
}

// rideCells renders a ride in domain.RideColumns order
func rideCells(r *domain.Ride) []*string {
	started := FormatTimestamp(r.StartedAt)
	city := r.DataSourceCity
	rideID := r.RideID

	var ended *string
	if r.EndedAt != nil {
		s := FormatTimestamp(*r.EndedAt)
		ended = &s
	}

	return []*string{
		&rideID,
		r.RideableType,
		&started,
		ended,
		r.StartStationName,
		r.StartStationID,
		r.EndStationName,
		r.EndStationID,
		floatCell(r.StartLat),
		floatCell(r.StartLng),
		floatCell(r.EndLat),
		floatCell(r.EndLng),
		r.MemberCasual,
		intCell(r.TripDurationSeconds),
		r.BikeID,
		intCell(r.Gender),
		intCell(r.BirthYear),
		&city,
	}
}

func floatCell(f *float64) *string {
	if f == nil {
		return nil
	}
	s := strconv.FormatFloat(*f, 'f', -1, 64)
	return &s
}

func intCell(i *int64) *string {
	if i == nil {
		return nil
	}
	s := strconv.FormatInt(*i, 10)
	return &s
}
