package dsc

import (
	"bytes"
	"encoding/binary"
	"io"
)

const wordSize = 4

// Decoder walks a DSC buffer and yields instructions one at a time. It is a
// forward-only cursor; create a new Decoder to decode the buffer again.
type Decoder struct {
	buf   []byte
	pos   int
	done  bool
	short bool

	// streamEnd marks the byte just past the END instruction, which is where
	// the string table begins. When no END is reachable it covers the whole
	// buffer and any structural error surfaces during iteration instead.
	streamEnd int
	strings   [][]byte

	text *TextDecoder
}

// NewDecoder prepares a decoder over buf. The text decoder handles string
// table entries; pass nil for UTF-8 only.
func NewDecoder(buf []byte, text *TextDecoder) *Decoder {
	if text == nil {
		text = &TextDecoder{}
	}
	d := &Decoder{buf: buf, pos: wordSize, streamEnd: len(buf), text: text}
	if len(buf) < wordSize {
		// Too short for the magic word; Next reports the truncation.
		d.pos = 0
		d.streamEnd = 0
		d.short = true
		return d
	}
	d.locateStringTable()
	return d
}

// locateStringTable scans instruction widths to find the END opcode. The scan
// only fixes the stream/table boundary; malformed streams are left for Next
// to report at the precise offset.
func (d *Decoder) locateStringTable() {
	pos := d.pos
	for pos+wordSize <= len(d.buf) {
		op := binary.LittleEndian.Uint32(d.buf[pos:])
		info, ok := LookupOpcode(op)
		if !ok {
			return
		}
		pos += wordSize * (1 + info.ArgCount)
		if pos > len(d.buf) {
			return
		}
		if op == OpEnd {
			d.streamEnd = pos
			d.parseStringTable(d.buf[pos:])
			return
		}
	}
}

func (d *Decoder) parseStringTable(tail []byte) {
	for len(tail) > 0 {
		i := bytes.IndexByte(tail, 0)
		if i < 0 {
			// Unterminated trailing entry, keep what is there.
			d.strings = append(d.strings, tail)
			return
		}
		d.strings = append(d.strings, tail[:i])
		tail = tail[i+1:]
	}
}

// Next returns the next instruction, io.EOF once the stream is exhausted or
// the END instruction has been yielded, or a decode error. After an error or
// io.EOF every subsequent call returns io.EOF.
func (d *Decoder) Next() (Instruction, error) {
	if d.short && !d.done {
		d.done = true
		return Instruction{}, &TruncatedStreamError{Offset: 0, Need: wordSize, Have: len(d.buf)}
	}
	if d.done || d.pos >= d.streamEnd {
		d.done = true
		return Instruction{}, io.EOF
	}

	start := d.pos
	if remaining := d.streamEnd - d.pos; remaining < wordSize {
		d.done = true
		return Instruction{}, &TruncatedStreamError{Offset: start, Need: wordSize, Have: remaining}
	}

	op := binary.LittleEndian.Uint32(d.buf[d.pos:])
	info, ok := LookupOpcode(op)
	if !ok {
		d.done = true
		return Instruction{}, &UnknownOpcodeError{Opcode: op, Offset: start}
	}
	d.pos += wordSize

	need := info.ArgCount * wordSize
	if remaining := d.streamEnd - d.pos; remaining < need {
		d.done = true
		return Instruction{}, &TruncatedStreamError{Offset: start, Need: wordSize + need, Have: wordSize + remaining}
	}

	ins := Instruction{Opcode: op, Name: info.Name, Offset: start}
	if info.ArgCount > 0 {
		ins.Args = make([]uint32, info.ArgCount)
		for i := range ins.Args {
			ins.Args[i] = binary.LittleEndian.Uint32(d.buf[d.pos:])
			d.pos += wordSize
		}
	}

	for i := range ins.Args {
		if info.Kind(i) != ArgStringIndex {
			continue
		}
		text, err := d.resolveString(int(ins.Args[i]), start)
		if err != nil {
			d.done = true
			return Instruction{}, err
		}
		ins.Text = text
		break
	}

	if op == OpEnd {
		d.done = true
	}
	return ins, nil
}

func (d *Decoder) resolveString(index, offset int) (string, error) {
	if index < 0 || index >= len(d.strings) {
		return "", &StringIndexError{Index: index, Count: len(d.strings), Offset: offset}
	}
	text, ok := d.text.Decode(d.strings[index])
	if !ok {
		return "", &EncodingError{Index: index, Offset: offset}
	}
	return text, nil
}

// StringCount reports how many entries the trailing string table holds.
func (d *Decoder) StringCount() int { return len(d.strings) }
