// Package dsc decodes DSC binary script files into instruction streams.
//
// A DSC file is a single 4-byte magic/version word followed by a packed
// sequence of little-endian 32-bit words: one opcode id, then a fixed number
// of argument words determined by a static opcode table. The instruction
// stream is terminated by the END opcode; any bytes after it form a side
// table of null-terminated strings that lyric opcodes reference by index.
//
// Decoding is a pure function of the input buffer. The Decoder is a
// forward-only cursor over the buffer; re-decoding requires a fresh Decoder.
package dsc
