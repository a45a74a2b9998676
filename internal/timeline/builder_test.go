package timeline

import (
	"errors"
	"io"
	"reflect"
	"testing"

	"dscsub/internal/dsc"
)

type sliceSource struct {
	ins []dsc.Instruction
	pos int
}

func (s *sliceSource) Next() (dsc.Instruction, error) {
	if s.pos >= len(s.ins) {
		return dsc.Instruction{}, io.EOF
	}
	ins := s.ins[s.pos]
	s.pos++
	return ins, nil
}

// Ticks use the default 100 ticks/ms time base.
func timeIns(ms uint64) dsc.Instruction {
	return dsc.Instruction{Opcode: dsc.OpTime, Name: "TIME", Args: []uint32{uint32(ms * 100)}}
}

func lyricIns(text string) dsc.Instruction {
	return dsc.Instruction{Opcode: dsc.OpLyric, Name: "LYRIC", Args: []uint32{0, 0}, Text: text}
}

func endIns() dsc.Instruction {
	return dsc.Instruction{Opcode: dsc.OpEnd, Name: "END"}
}

func build(t *testing.T, ins ...dsc.Instruction) []Cue {
	t.Helper()
	cues, err := Build(&sliceSource{ins: ins}, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return cues
}

func TestTwoLyricsWithExplicitEnds(t *testing.T) {
	cues := build(t,
		timeIns(0), lyricIns("Hello"),
		timeIns(2000), lyricIns("World"),
		timeIns(4000), endIns(),
	)
	want := []Cue{
		{StartMS: 0, EndMS: 2000, Text: "Hello"},
		{StartMS: 2000, EndMS: 4000, Text: "World"},
	}
	if !reflect.DeepEqual(cues, want) {
		t.Errorf("cues = %+v, want %+v", cues, want)
	}
}

func TestTrailingLyricUsesDefaultDuration(t *testing.T) {
	cues := build(t, timeIns(1000), lyricIns("Last line"), endIns())
	want := []Cue{{StartMS: 1000, EndMS: 4000, Text: "Last line"}}
	if !reflect.DeepEqual(cues, want) {
		t.Errorf("cues = %+v, want %+v", cues, want)
	}
}

func TestTrailingLyricOnStreamExhaustion(t *testing.T) {
	// No END instruction at all.
	cues := build(t, timeIns(500), lyricIns("tail"))
	want := []Cue{{StartMS: 500, EndMS: 3500, Text: "tail"}}
	if !reflect.DeepEqual(cues, want) {
		t.Errorf("cues = %+v, want %+v", cues, want)
	}
}

func TestBackToBackLyricsMerge(t *testing.T) {
	// Two lyrics at the same clock value become one multi-line cue.
	cues := build(t, timeIns(0), lyricIns("A"), lyricIns("B"), timeIns(500))
	want := []Cue{{StartMS: 0, EndMS: 500, Text: "A\nB"}}
	if !reflect.DeepEqual(cues, want) {
		t.Errorf("cues = %+v, want %+v", cues, want)
	}
}

func TestLyricAtLaterClockClosesPrevious(t *testing.T) {
	cues := build(t,
		timeIns(0), lyricIns("first"),
		timeIns(1000), lyricIns("second"),
		timeIns(2500), endIns(),
	)
	want := []Cue{
		{StartMS: 0, EndMS: 1000, Text: "first"},
		{StartMS: 1000, EndMS: 2500, Text: "second"},
	}
	if !reflect.DeepEqual(cues, want) {
		t.Errorf("cues = %+v, want %+v", cues, want)
	}
}

func TestClockRegressionFails(t *testing.T) {
	_, err := Build(&sliceSource{ins: []dsc.Instruction{
		timeIns(5000), timeIns(1000),
	}}, Options{})
	var regression *ClockRegressionError
	if !errors.As(err, &regression) {
		t.Fatalf("error = %v, want ClockRegressionError", err)
	}
	if regression.ClockMS != 5000 || regression.ToMS != 1000 {
		t.Errorf("error = %+v, want 5000 -> 1000", regression)
	}
}

func TestClockRegressionEmitsNoPartialCue(t *testing.T) {
	cues, err := Build(&sliceSource{ins: []dsc.Instruction{
		timeIns(0), lyricIns("open"),
		timeIns(5000), timeIns(1000),
	}}, Options{})
	if err == nil {
		t.Fatal("Build succeeded, want clock regression")
	}
	// The cue closed before the regression stays; nothing after it.
	want := []Cue{{StartMS: 0, EndMS: 5000, Text: "open"}}
	if !reflect.DeepEqual(cues, want) {
		t.Errorf("cues = %+v, want %+v", cues, want)
	}
}

func TestZeroDurationCueDropped(t *testing.T) {
	// The repeated TIME closes "gone" with zero duration, which is dropped.
	cues := build(t,
		timeIns(1000), lyricIns("gone"),
		timeIns(1000), lyricIns("kept"),
		timeIns(2000), endIns(),
	)
	want := []Cue{{StartMS: 1000, EndMS: 2000, Text: "kept"}}
	if !reflect.DeepEqual(cues, want) {
		t.Errorf("cues = %+v, want %+v", cues, want)
	}
}

func TestEmptyLyricSkipped(t *testing.T) {
	cues := build(t,
		timeIns(0), lyricIns(""), lyricIns("real"),
		timeIns(1000), endIns(),
	)
	want := []Cue{{StartMS: 0, EndMS: 1000, Text: "real"}}
	if !reflect.DeepEqual(cues, want) {
		t.Errorf("cues = %+v, want %+v", cues, want)
	}
}

func TestMonotonicStarts(t *testing.T) {
	cues := build(t,
		timeIns(0), lyricIns("a"),
		timeIns(100), lyricIns("b"),
		timeIns(100), lyricIns("c"),
		timeIns(3000), endIns(),
	)
	for i := 1; i < len(cues); i++ {
		if cues[i].StartMS < cues[i-1].StartMS {
			t.Errorf("cue %d starts at %d, before cue %d at %d", i, cues[i].StartMS, i-1, cues[i-1].StartMS)
		}
	}
	for i, cue := range cues {
		if cue.StartMS > cue.EndMS {
			t.Errorf("cue %d has start %d > end %d", i, cue.StartMS, cue.EndMS)
		}
	}
}

func TestCustomTickScale(t *testing.T) {
	cues, err := Build(&sliceSource{ins: []dsc.Instruction{
		{Opcode: dsc.OpTime, Args: []uint32{5000}},
		lyricIns("scaled"),
		{Opcode: dsc.OpTime, Args: []uint32{10000}},
		endIns(),
	}}, Options{TicksPerMS: 10})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []Cue{{StartMS: 500, EndMS: 1000, Text: "scaled"}}
	if !reflect.DeepEqual(cues, want) {
		t.Errorf("cues = %+v, want %+v", cues, want)
	}
}
