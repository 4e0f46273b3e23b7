// Package recordio reads and writes length-prefixed UTF-8 text records.
//
// A record is a big-endian uint16 byte count followed by that many bytes of
// UTF-8 text, so a single record holds at most 65535 encoded bytes.
package recordio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// MaxLen is the largest payload a record can carry.
const MaxLen = 0xFFFF

var (
	ErrTooLong     = errors.New("recordio: record exceeds 65535 bytes")
	ErrInvalidUTF8 = errors.New("recordio: record is not valid UTF-8")
)

// Encode returns the framed bytes of s.
func Encode(s string) ([]byte, error) {
	if len(s) > MaxLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLong, len(s))
	}
	if !utf8.ValidString(s) {
		return nil, ErrInvalidUTF8
	}
	buf := make([]byte, 2+len(s))
	binary.BigEndian.PutUint16(buf, uint16(len(s)))
	copy(buf[2:], s)
	return buf, nil
}

// Append writes s as one record using a single Write call.
func Append(w io.Writer, s string) error {
	buf, err := Encode(s)
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

// Reader decodes records sequentially.
type Reader struct {
	r *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next returns the next record. It returns io.EOF only when the stream ends
// exactly on a record boundary; a cut-off record yields io.ErrUnexpectedEOF.
func (r *Reader) Next() (string, error) {
	var hdr [2]byte
	if _, err := io.ReadFull(r.r, hdr[:]); err != nil {
		return "", err
	}
	n := binary.BigEndian.Uint16(hdr[:])
	payload := make([]byte, n)
	if _, err := io.ReadFull(r.r, payload); err != nil {
		if errors.Is(err, io.EOF) {
			return "", io.ErrUnexpectedEOF
		}
		return "", err
	}
	if !utf8.Valid(payload) {
		return "", ErrInvalidUTF8
	}
	return string(payload), nil
}

// ReadAll decodes records until a clean end of stream. On a decode error
// it returns the records read so far together with the error.
func ReadAll(r io.Reader) ([]string, error) {
	rd := NewReader(r)
	out := []string{}
	for {
		s, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, s)
	}
}
