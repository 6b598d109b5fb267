package stream

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// ErrTruncatedFrame is returned when the stream ends inside a frame.
var ErrTruncatedFrame = errors.New("stream ended inside a frame")

var frameDelimiter = []byte("\n\n")

// Reader decodes events from a framed stream. Frames may arrive split across
// any number of reads; nothing is decoded until its delimiter has been seen.
type Reader struct {
	src   io.Reader
	buf   []byte
	chunk []byte
	eof   bool
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{src: r, chunk: make([]byte, 4096)}
}

// Next returns the next event. Comment-only frames are skipped. It returns
// io.EOF after the last complete frame and ErrTruncatedFrame when the stream
// stops mid-frame.
func (r *Reader) Next() (*Event, error) {
	for {
		if i := bytes.Index(r.buf, frameDelimiter); i >= 0 {
			frame := r.buf[:i]
			r.buf = r.buf[i+len(frameDelimiter):]

			e, ok, err := Decode(frame)
			if err != nil {
				return nil, err
			}
			if ok {
				return e, nil
			}
			continue
		}

		if r.eof {
			if len(bytes.TrimSpace(r.buf)) > 0 {
				return nil, ErrTruncatedFrame
			}
			return nil, io.EOF
		}

		// A read may return data together with io.EOF; frames completed by
		// that data are drained before the end is reported.
		n, err := r.src.Read(r.chunk)
		if n > 0 {
			r.buf = append(r.buf, bytes.ReplaceAll(r.chunk[:n], []byte("\r"), nil)...)
		}
		if err == io.EOF {
			r.eof = true
			continue
		}
		if err != nil {
			return nil, err
		}
	}
}

// Decode parses one frame without its delimiter. ok is false for frames that
// carry no data lines, such as heartbeats.
func Decode(frame []byte) (*Event, bool, error) {
	var data [][]byte
	for _, line := range bytes.Split(frame, []byte("\n")) {
		rest, found := bytes.CutPrefix(line, []byte("data:"))
		if !found {
			continue
		}
		data = append(data, bytes.TrimPrefix(rest, []byte(" ")))
	}
	if len(data) == 0 {
		return nil, false, nil
	}

	var e Event
	if err := json.Unmarshal(bytes.Join(data, []byte("\n")), &e); err != nil {
		return nil, false, fmt.Errorf("decode frame: %w", err)
	}
	return &e, true, nil
}
