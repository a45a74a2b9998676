package dsc

import "fmt"

// TruncatedStreamError reports a buffer that ends in the middle of a claimed
// instruction. Instructions yielded before the failure remain valid.
type TruncatedStreamError struct {
	Offset int // byte offset where the read would have started
	Need   int // bytes required to complete the instruction
	Have   int // bytes actually remaining
}

func (e *TruncatedStreamError) Error() string {
	return fmt.Sprintf("truncated stream at offset %d: need %d bytes, have %d", e.Offset, e.Need, e.Have)
}

// UnknownOpcodeError reports an opcode id with no argument-width entry in the
// dispatch table. The stream cannot be advanced past it.
type UnknownOpcodeError struct {
	Opcode uint32
	Offset int
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode %d at offset %d", e.Opcode, e.Offset)
}

// EncodingError reports string-table bytes that decode under none of the
// configured encodings.
type EncodingError struct {
	Index  int // string table index
	Offset int // byte offset of the referencing instruction
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("string %d referenced at offset %d decodes under no configured encoding", e.Index, e.Offset)
}

// StringIndexError reports a string-table reference past the end of the table.
type StringIndexError struct {
	Index  int
	Count  int // entries actually present
	Offset int
}

func (e *StringIndexError) Error() string {
	return fmt.Sprintf("string index %d out of range (table holds %d) at offset %d", e.Index, e.Count, e.Offset)
}
