package backend

import (
	"bufio"
	"io"
)

// lineReader is a specialized reader that ensures only entire newline-delimited lines are
// read at a time. Dataset files may be appended to while they are being charted, and this
// keeps the CSV decoder from ever seeing half of a row.
type lineReader struct {
	r *bufio.Reader
	// partial is an unterminated line waiting for the rest of its bytes.
	partial []byte
	// pending is the unread tail of a complete line longer than the last read buffer.
	pending []byte
}

var _ io.Reader = (*lineReader)(nil)

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{
		r: bufio.NewReader(r),
	}
}

// Read returns bytes from at most one complete line per call. An unterminated line is held
// back and io.EOF returned until the rest of it arrives. A line longer than b is returned
// across several calls.
func (l *lineReader) Read(b []byte) (int, error) {
	if len(l.pending) == 0 {
		data, err := l.r.ReadBytes('\n')
		if err != nil {
			l.partial = append(l.partial, data...)
			return 0, io.EOF
		}
		if len(l.partial) > 0 {
			data = append(l.partial, data...)
			l.partial = nil
		}
		l.pending = data
	}
	n := copy(b, l.pending)
	l.pending = l.pending[n:]
	return n, nil
}

// held returns the unterminated line currently held back.
func (l *lineReader) held() []byte {
	return l.partial
}
