package dsc

// Instruction is one decoded entry of the opcode stream.
type Instruction struct {
	Opcode uint32
	Name   string
	Offset int // byte offset of the opcode word within the buffer
	Args   []uint32
	Text   string // resolved text when the opcode carries a string index
}

// IsTime reports whether the instruction advances the playback clock.
func (in Instruction) IsTime() bool { return in.Opcode == OpTime }

// IsLyric reports whether the instruction displays lyric text.
func (in Instruction) IsLyric() bool { return in.Opcode == OpLyric }

// IsEnd reports whether the instruction terminates playback.
func (in Instruction) IsEnd() bool { return in.Opcode == OpEnd || in.Opcode == OpPVEnd }

// TimeTicks returns the absolute time argument of a TIME instruction.
func (in Instruction) TimeTicks() uint32 {
	if len(in.Args) == 0 {
		return 0
	}
	return in.Args[0]
}
