package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Magic is the fixed 3-byte file prefix every tpl file starts with.
var Magic = [3]byte{'t', 'p', 'l'}

// Flag bits for the FLAGS byte following MAGIC.
const (
	FlagBigEndian        byte = 1 << 0
	FlagNulStringsSupport byte = 1 << 1
)

// nativeFlags is the FLAGS byte this process writes: little-endian, and
// always advertising nul-string support since Go strings may contain any
// byte including '\0' and the length-prefixed encoding never relies on a
// terminator.
const nativeFlags = FlagNulStringsSupport

// writer accumulates a tpl file body after the header.
type writer struct {
	buf *bytes.Buffer
}

func newWriter() *writer { return &writer{buf: new(bytes.Buffer)} }

func (w *writer) u8(v uint8)   { w.buf.WriteByte(v) }
func (w *writer) u16(v uint16) { var b [2]byte; binary.LittleEndian.PutUint16(b[:], v); w.buf.Write(b[:]) }
func (w *writer) u32(v uint32) { var b [4]byte; binary.LittleEndian.PutUint32(b[:], v); w.buf.Write(b[:]) }
func (w *writer) u64(v uint64) { var b [8]byte; binary.LittleEndian.PutUint64(b[:], v); w.buf.Write(b[:]) }
func (w *writer) str(s string) {
	w.u32(uint32(len(s)))
	w.buf.WriteString(s)
}

// Bytes returns the accumulated body.
func (w *writer) Bytes() []byte { return w.buf.Bytes() }

// reader walks a tpl file body, swapping byte order if the producer's
// endianness (recorded in FLAGS) differs from this reader's native order.
// Go only targets little-endian-or-big-endian CPUs uniformly per build, and
// every platform logcore ships on is little-endian, so swap is driven
// entirely by the FLAGS byte read from the file.
type reader struct {
	r    *bytes.Reader
	swap bool
}

func newReader(body []byte, flags byte) *reader {
	return &reader{r: bytes.NewReader(body), swap: flags&FlagBigEndian != 0}
}

func (r *reader) u8() (uint8, error) {
	b, err := r.r.ReadByte()
	return b, err
}

func (r *reader) u16() (uint16, error) {
	var b [2]byte
	if _, err := r.r.Read(b[:]); err != nil {
		return 0, err
	}
	if r.swap {
		b[0], b[1] = b[1], b[0]
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

func (r *reader) u32() (uint32, error) {
	var b [4]byte
	if _, err := r.r.Read(b[:]); err != nil {
		return 0, err
	}
	if r.swap {
		b[0], b[1], b[2], b[3] = b[3], b[2], b[1], b[0]
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func (r *reader) u64() (uint64, error) {
	var b [8]byte
	if _, err := r.r.Read(b[:]); err != nil {
		return 0, err
	}
	if r.swap {
		for i, j := 0, 7; i < j; i, j = i+1, j-1 {
			b[i], b[j] = b[j], b[i]
		}
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func (r *reader) str() (string, error) {
	n, err := r.u32()
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := r.r.Read(buf); err != nil {
		return "", fmt.Errorf("codec: truncated string: %w", err)
	}
	return string(buf), nil
}

// encodeFile assembles a complete tpl file: header plus body.
func encodeFile(formatStr string, body []byte) []byte {
	out := new(bytes.Buffer)
	out.Write(Magic[:])
	out.WriteByte(nativeFlags)

	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(formatStr)))
	out.Write(lenBuf[:])
	out.WriteString(formatStr)
	out.WriteByte(0)

	out.Write(body)
	return out.Bytes()
}

// decodeFile splits a tpl file into its format string, flags, and body.
func decodeFile(data []byte) (formatStr string, flags byte, body []byte, err error) {
	if len(data) < 3+1+4 {
		return "", 0, nil, fmt.Errorf("codec: file too short")
	}
	if !bytes.Equal(data[0:3], Magic[:]) {
		return "", 0, nil, fmt.Errorf("codec: bad magic %q", data[0:3])
	}
	flags = data[3]
	length := binary.LittleEndian.Uint32(data[4:8])
	offset := 8
	if offset+int(length)+1 > len(data) {
		return "", 0, nil, fmt.Errorf("codec: truncated format string")
	}
	formatStr = string(data[offset : offset+int(length)])
	offset += int(length) + 1 // skip the '\0' terminator
	return formatStr, flags, data[offset:], nil
}
