package codec

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/arith/vm"
)

// Version is the version of the binary format written by Encode.
const Version = 1

var magic = [3]byte{'A', 'V', 'M'}

// MaxInstructions limits the size of programs accepted by Decode.
const MaxInstructions = 1 << 24

// ErrCorrupt is returned (wrapped) by Decode for malformed input.
var ErrCorrupt = errors.New("corrupt program file")

// Encode writes a program in binary format.
func Encode(w io.Writer, prog vm.Program) error {
	if len(prog) > MaxInstructions {
		return fmt.Errorf("codec: program too large (%d instructions)", len(prog))
	}
	fp, err := Fingerprint(prog)
	if err != nil {
		return fmt.Errorf("codec: fingerprint: %w", err)
	}
	bw := bufio.NewWriter(w)
	bw.Write(magic[:])
	bw.WriteByte(Version)
	var buf [8]byte
	binary.BigEndian.PutUint32(buf[:4], uint32(len(prog)))
	bw.Write(buf[:4])
	for _, rec := range Records(prog) {
		bw.WriteByte(rec.Code)
		binary.BigEndian.PutUint64(buf[:], rec.Operand)
		bw.Write(buf[:])
	}
	binary.BigEndian.PutUint16(buf[:2], uint16(len(fp)))
	bw.Write(buf[:2])
	bw.WriteString(fp)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("codec: write: %w", err)
	}
	tracer().Debugf("encoded %d instructions, fingerprint %s", len(prog), fp)
	return nil
}

// Decode reads a program in binary format. It checks the file header, every
// record and the fingerprint.
func Decode(r io.Reader) (vm.Program, error) {
	br := bufio.NewReader(r)
	var header [8]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return nil, corrupt("header", err)
	}
	if header[0] != magic[0] || header[1] != magic[1] || header[2] != magic[2] {
		return nil, fmt.Errorf("codec: not a program file: %w", ErrCorrupt)
	}
	if header[3] != Version {
		return nil, fmt.Errorf("codec: unsupported format version %d", header[3])
	}
	count := binary.BigEndian.Uint32(header[4:])
	if count > MaxInstructions {
		return nil, fmt.Errorf("codec: instruction count %d: %w", count, ErrCorrupt)
	}
	// the header count is not trusted for allocation; records grow as they are read
	recs := make([]Record, 0, minInt(int(count), preallocRecords))
	var buf [9]byte
	for i := 0; i < int(count); i++ {
		if _, err := io.ReadFull(br, buf[:]); err != nil {
			return nil, corrupt(fmt.Sprintf("record #%d", i), err)
		}
		recs = append(recs, Record{Code: buf[0], Operand: binary.BigEndian.Uint64(buf[1:])})
	}
	if _, err := io.ReadFull(br, buf[:2]); err != nil {
		return nil, corrupt("fingerprint", err)
	}
	fp := make([]byte, binary.BigEndian.Uint16(buf[:2]))
	if _, err := io.ReadFull(br, fp); err != nil {
		return nil, corrupt("fingerprint", err)
	}
	prog, err := FromRecords(recs)
	if err != nil {
		return nil, fmt.Errorf("codec: %w", err)
	}
	expected, err := Fingerprint(prog)
	if err != nil {
		return nil, fmt.Errorf("codec: fingerprint: %w", err)
	}
	if expected != string(fp) {
		tracer().Errorf("fingerprint mismatch: file has %q, computed %q", fp, expected)
		return nil, fmt.Errorf("codec: fingerprint mismatch: %w", ErrCorrupt)
	}
	tracer().Debugf("decoded %d instructions", len(prog))
	return prog, nil
}

// preallocRecords caps the record slice allocated before any record has been read.
const preallocRecords = 4096

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func corrupt(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("codec: truncated %s: %w", what, ErrCorrupt)
	}
	return fmt.Errorf("codec: read %s: %w", what, err)
}
