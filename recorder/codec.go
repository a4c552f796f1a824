package recorder

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

// magic is the 4-byte file header identifying a .ggr recording.
var magic = [4]byte{'M', 'M', 'G', 'R'}

// fileVersion is the current (and, so far, only) on-disk format version.
const fileVersion uint32 = 0x00000001

// writeHeader writes the 4-byte magic followed by the 4-byte big-endian
// version.
func writeHeader(w io.Writer) error {
	if _, err := w.Write(magic[:]); err != nil {
		return fmt.Errorf("write magic: %w", err)
	}
	var v [4]byte
	binary.BigEndian.PutUint32(v[:], fileVersion)
	if _, err := w.Write(v[:]); err != nil {
		return fmt.Errorf("write version: %w", err)
	}
	return nil
}

// readHeader reads and validates the magic; the version is returned but not
// itself validated here — spec tolerates any version as long as the magic
// matches and every opcode in the stream is known.
func readHeader(r io.Reader) (version uint32, err error) {
	var got [4]byte
	if _, err := io.ReadFull(r, got[:]); err != nil {
		return 0, fmt.Errorf("read magic: %w", err)
	}
	if got != magic {
		return 0, ErrBadMagic
	}
	var v [4]byte
	if _, err := io.ReadFull(r, v[:]); err != nil {
		return 0, fmt.Errorf("read version: %w", err)
	}
	return binary.BigEndian.Uint32(v[:]), nil
}

// writeFrame appends one length-prefixed JSON-encoded Event: a 4-byte
// big-endian length followed by the JSON body. The corpus carries no binary
// object-notation library (ubjson/msgpack/cbor), so JSON is the payload
// encoding; the length prefix alone gives self-delimited records without one.
func writeFrame(w io.Writer, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(body)))
	if _, err := w.Write(length[:]); err != nil {
		return fmt.Errorf("write frame length: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("write frame body: %w", err)
	}
	return nil
}

// readFrame reads one length-prefixed JSON frame. io.EOF (unwrapped) signals
// a clean end of stream at a frame boundary.
func readFrame(r *bufio.Reader) (Event, error) {
	var length [4]byte
	if _, err := io.ReadFull(r, length[:]); err != nil {
		if err == io.EOF {
			return Event{}, io.EOF
		}
		return Event{}, fmt.Errorf("read frame length: %w", err)
	}
	n := binary.BigEndian.Uint32(length[:])
	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return Event{}, fmt.Errorf("read frame body: %w", err)
	}
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return Event{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return ev, nil
}
