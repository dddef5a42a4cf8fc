package backend

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"git.sr.ht/~whereswaldon/statcharts/bar"
	"git.sr.ht/~whereswaldon/statcharts/chart"
	"git.sr.ht/~whereswaldon/statcharts/line"
	"git.sr.ht/~whereswaldon/statcharts/pie"
)

// Kind identifies which chart a dataset feeds.
type Kind uint8

const (
	KindNone Kind = iota
	KindPie
	KindBar
	KindLine
)

func (k Kind) String() string {
	switch k {
	case KindPie:
		return "pie"
	case KindBar:
		return "bar"
	case KindLine:
		return "line"
	default:
		return "none"
	}
}

func parseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pie":
		return KindPie, nil
	case "bar":
		return KindBar, nil
	case "line":
		return KindLine, nil
	}
	return KindNone, fmt.Errorf("%w %q", ErrUnknownKind, s)
}

var (
	// ErrUnknownKind is returned when the first heading cell does not name
	// a chart kind.
	ErrUnknownKind = errors.New("unknown dataset kind")
	// ErrNoHeading is returned by Parse for input without a heading row.
	ErrNoHeading = errors.New("missing dataset heading")
)

// Dataset is the decoded content of one dataset file. Only the slice that
// matches Kind is populated.
type Dataset struct {
	Kind  Kind
	Title string

	Pie []pie.Segment
	// CenterText is drawn in the cutout of a pie chart.
	CenterText string

	Bars []bar.Datum
	// Cap raises the bar axis maximum to at least its value.
	Cap *float64

	Lines []line.Series
	// Unit is appended to formatted line values.
	Unit string
}

// Len returns the number of data rows decoded so far.
func (d Dataset) Len() int {
	switch d.Kind {
	case KindPie:
		return len(d.Pie)
	case KindBar:
		return len(d.Bars)
	case KindLine:
		if len(d.Lines) == 0 {
			return 0
		}
		return len(d.Lines[0].Points)
	}
	return 0
}

// Clone returns a copy of d that shares no mutable memory with it.
func (d Dataset) Clone() Dataset {
	d.Pie = slices.Clone(d.Pie)
	d.Bars = slices.Clone(d.Bars)
	lines := make([]line.Series, len(d.Lines))
	for i, s := range d.Lines {
		s.Points = slices.Clone(s.Points)
		lines[i] = s
	}
	if d.Lines == nil {
		lines = nil
	}
	d.Lines = lines
	return d
}

// RowError describes a data row that could not be decoded. The decoder
// skips the row and can keep reading.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Decoder incrementally decodes a dataset from a CSV stream that may still
// be growing. The first row is the heading; its first cell names the kind
// and may carry ";key=value" options.
type Decoder struct {
	lines  *lineReader
	csv    *csv.Reader
	data   Dataset
	headed bool
	err    error
}

// NewDecoder returns a decoder reading from r. Only complete lines are
// consumed, so r may be a file that another process is appending to.
func NewDecoder(r io.Reader) *Decoder {
	lines := newLineReader(r)
	return &Decoder{lines: lines, csv: newCSVReader(lines)}
}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	return cr
}

// ReadAvailable decodes every complete row currently available. It reports
// whether the dataset changed. A *RowError leaves the decoder usable; any
// other error is fatal and returned again by later calls.
func (d *Decoder) ReadAvailable() (changed bool, err error) {
	if d.err != nil {
		return false, d.err
	}
	for {
		rec, err := d.csv.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return changed, nil
			}
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return changed, &RowError{Line: pe.Line, Err: pe.Err}
			}
			d.err = fmt.Errorf("failed reading dataset: %w", err)
			return changed, d.err
		}
		row, _ := d.csv.FieldPos(0)
		if !d.headed {
			if err := d.heading(rec); err != nil {
				d.err = fmt.Errorf("line %d: invalid heading: %w", row, err)
				return changed, d.err
			}
			d.headed = true
			changed = true
			continue
		}
		if err := d.row(rec); err != nil {
			return changed, &RowError{Line: row, Err: err}
		}
		changed = true
	}
}

// Headed reports whether the heading row has been decoded.
func (d *Decoder) Headed() bool {
	return d.headed
}

// Dataset returns a copy of everything decoded so far.
func (d *Decoder) Dataset() Dataset {
	return d.data.Clone()
}

// Preview is like Dataset, but also includes the last row if it is still
// waiting for its line break. That row is not consumed: it is decoded for
// good once the line is complete. A held row that does not decode is left
// out.
func (d *Decoder) Preview() Dataset {
	held := d.lines.held()
	if d.err != nil || len(bytes.TrimSpace(held)) == 0 {
		return d.Dataset()
	}
	rec, err := newCSVReader(bytes.NewReader(held)).Read()
	if err != nil {
		return d.Dataset()
	}
	tmp := &Decoder{data: d.Dataset(), headed: d.headed}
	if !tmp.headed {
		err = tmp.heading(rec)
	} else {
		err = tmp.row(rec)
	}
	if err != nil {
		return d.Dataset()
	}
	return tmp.data
}

func (d *Decoder) heading(rec []string) error {
	kindCell, options, _ := strings.Cut(rec[0], ";")
	kind, err := parseKind(kindCell)
	if err != nil {
		return err
	}
	d.data.Kind = kind
	for _, opt := range strings.Split(options, ";") {
		if strings.TrimSpace(opt) == "" {
			continue
		}
		key, value, ok := strings.Cut(opt, "=")
		if !ok {
			return fmt.Errorf("option %q is not key=value", opt)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		switch {
		case key == "title":
			d.data.Title = value
		case key == "center" && kind == KindPie:
			d.data.CenterText = value
		case key == "cap" && kind == KindBar:
			c, err := parseValue(value)
			if err != nil {
				return fmt.Errorf("cap: %w", err)
			}
			if c < 0 {
				return fmt.Errorf("cap %v is negative", c)
			}
			d.data.Cap = &c
		case key == "unit" && kind == KindLine:
			d.data.Unit = value
		default:
			return fmt.Errorf("unsupported %s option %q", kind, key)
		}
	}
	if kind == KindLine {
		if len(rec) < 2 {
			return fmt.Errorf("line dataset has no series columns")
		}
		for i, cell := range rec[1:] {
			label, c, err := seriesHeading(cell, chart.PaletteColor(i))
			if err != nil {
				return err
			}
			d.data.Lines = append(d.data.Lines, line.Series{
				Label: label,
				Color: c,
			})
		}
	}
	return nil
}

func (d *Decoder) row(rec []string) error {
	switch d.data.Kind {
	case KindPie:
		return d.pieRow(rec)
	case KindBar:
		return d.barRow(rec)
	case KindLine:
		return d.lineRow(rec)
	}
	return ErrUnknownKind
}

func (d *Decoder) pieRow(rec []string) error {
	if len(rec) < 2 {
		return fmt.Errorf("expected label and value, got %d cells", len(rec))
	}
	v, err := parseValue(rec[1])
	if err != nil {
		return err
	}
	if v <= 0 {
		return fmt.Errorf("pie value %v must be positive", v)
	}
	c, err := optionalColor(rec, 2, chart.PaletteColor(len(d.data.Pie)))
	if err != nil {
		return err
	}
	d.data.Pie = append(d.data.Pie, pie.Segment{
		Label: strings.TrimSpace(rec[0]),
		Value: v,
		Color: c,
	})
	return nil
}

func (d *Decoder) barRow(rec []string) error {
	if len(rec) < 2 {
		return fmt.Errorf("expected label and value, got %d cells", len(rec))
	}
	v, err := parseValue(rec[1])
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("bar value %v is negative", v)
	}
	c, err := optionalColor(rec, 2, chart.PaletteColor(len(d.data.Bars)))
	if err != nil {
		return err
	}
	datum := bar.Datum{
		Label: strings.TrimSpace(rec[0]),
		Value: v,
		Color: c,
	}
	if len(rec) > 3 && strings.TrimSpace(rec[3]) != "" {
		tc, err := chart.ParseHex(rec[3])
		if err != nil {
			return err
		}
		datum.TextColor = &tc
	}
	d.data.Bars = append(d.data.Bars, datum)
	return nil
}

func (d *Decoder) lineRow(rec []string) error {
	if want := len(d.data.Lines) + 1; len(rec) != want {
		return fmt.Errorf("expected %d cells, got %d", want, len(rec))
	}
	x := float64(d.data.Len())
	label := strings.TrimSpace(rec[0])
	ys := make([]float64, len(d.data.Lines))
	for i, cell := range rec[1:] {
		if strings.TrimSpace(cell) == "" {
			return fmt.Errorf("series %q has no value", d.data.Lines[i].Label)
		}
		y, err := parseValue(cell)
		if err != nil {
			return fmt.Errorf("series %q: %w", d.data.Lines[i].Label, err)
		}
		ys[i] = y
	}
	for i, y := range ys {
		d.data.Lines[i].Points = append(d.data.Lines[i].Points, line.DataPoint{
			X:     x,
			Y:     y,
			Label: label,
		})
	}
	return nil
}

// seriesHeading splits a line series heading of the form "label" or
// "label #rrggbb".
func seriesHeading(cell string, fallback color.NRGBA) (string, color.NRGBA, error) {
	cell = strings.TrimSpace(cell)
	i := strings.LastIndexByte(cell, '#')
	if i < 1 || cell[i-1] != ' ' {
		return cell, fallback, nil
	}
	c, err := chart.ParseHex(cell[i:])
	if err != nil {
		return "", fallback, fmt.Errorf("series %q: %w", cell, err)
	}
	return strings.TrimSpace(cell[:i]), c, nil
}

func parseValue(cell string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, fmt.Errorf("failed parsing value: %w", err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("value %v is not finite", v)
	}
	return v, nil
}

func optionalColor(rec []string, i int, fallback color.NRGBA) (color.NRGBA, error) {
	if i >= len(rec) || strings.TrimSpace(rec[i]) == "" {
		return fallback, nil
	}
	return chart.ParseHex(rec[i])
}

// Parse decodes a complete dataset, failing on the first bad row. The last
// row needs no trailing newline.
func Parse(r io.Reader) (Dataset, error) {
	dec := NewDecoder(io.MultiReader(r, strings.NewReader("\n")))
	if _, err := dec.ReadAvailable(); err != nil {
		return Dataset{}, err
	}
	if !dec.Headed() {
		return Dataset{}, ErrNoHeading
	}
	return dec.Dataset(), nil
}
