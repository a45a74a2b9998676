package dsc

// ArgKind describes how a single argument word should be interpreted.
type ArgKind int

const (
	// ArgInt is a verbatim 32-bit integer with no further meaning here.
	ArgInt ArgKind = iota
	// ArgTime is an absolute playback time in engine ticks.
	ArgTime
	// ArgStringIndex references an entry in the trailing string table.
	ArgStringIndex
)

// Opcode ids the converter dispatches on. Everything else in the table is
// carried through verbatim so scripts can be inspected without loss.
const (
	OpEnd       uint32 = 0
	OpTime      uint32 = 1
	OpLyric     uint32 = 24
	OpPVEnd     uint32 = 32
	OpEditLyric uint32 = 34
)

// OpcodeInfo is one row of the static dispatch table: the mnemonic, the fixed
// number of 32-bit argument words, and per-argument interpretation. A nil
// Kinds slice means every argument is a plain integer.
type OpcodeInfo struct {
	Name     string
	ArgCount int
	Kinds    []ArgKind
}

// Kind returns the interpretation of argument i.
func (o OpcodeInfo) Kind(i int) ArgKind {
	if i < len(o.Kinds) {
		return o.Kinds[i]
	}
	return ArgInt
}

// opcodeTable maps opcode id to its argument shape. Argument counts follow
// the production script format; ids without an entry have no defined width
// and make the stream undecodable from that point on.
var opcodeTable = map[uint32]OpcodeInfo{
	0:  {Name: "END", ArgCount: 0},
	1:  {Name: "TIME", ArgCount: 1, Kinds: []ArgKind{ArgTime}},
	2:  {Name: "MIKU_MOVE", ArgCount: 3},
	3:  {Name: "MIKU_ROT", ArgCount: 1},
	4:  {Name: "MIKU_DISP", ArgCount: 1},
	5:  {Name: "MIKU_SHADOW", ArgCount: 1},
	6:  {Name: "TARGET", ArgCount: 7},
	7:  {Name: "SET_MOTION", ArgCount: 4},
	8:  {Name: "SET_PLAYDATA", ArgCount: 1},
	9:  {Name: "EFFECT", ArgCount: 6},
	10: {Name: "FADEIN_FIELD", ArgCount: 2},
	11: {Name: "EFFECT_OFF", ArgCount: 1},
	12: {Name: "SET_CAMERA", ArgCount: 6},
	13: {Name: "DATA_CAMERA", ArgCount: 2},
	14: {Name: "CHANGE_FIELD", ArgCount: 1},
	15: {Name: "HIDE_FIELD", ArgCount: 1},
	16: {Name: "MOVE_FIELD", ArgCount: 3},
	17: {Name: "FADEOUT_FIELD", ArgCount: 2},
	18: {Name: "EYE_ANIM", ArgCount: 3},
	19: {Name: "MOUTH_ANIM", ArgCount: 5},
	20: {Name: "HAND_ANIM", ArgCount: 5},
	21: {Name: "LOOK_ANIM", ArgCount: 4},
	22: {Name: "EXPRESSION", ArgCount: 4},
	23: {Name: "LOOK_CAMERA", ArgCount: 5},
	24: {Name: "LYRIC", ArgCount: 2, Kinds: []ArgKind{ArgStringIndex, ArgInt}},
	25: {Name: "MUSIC_PLAY", ArgCount: 0},
	26: {Name: "MODE_SELECT", ArgCount: 2},
	27: {Name: "EDIT_MOTION", ArgCount: 4},
	28: {Name: "BAR_TIME_SET", ArgCount: 2},
	29: {Name: "SHADOWHEIGHT", ArgCount: 2},
	30: {Name: "EDIT_FACE", ArgCount: 1},
	31: {Name: "MOVE_CAMERA", ArgCount: 21},
	32: {Name: "PV_END", ArgCount: 0},
	33: {Name: "SHADOWPOS", ArgCount: 3},
	34: {Name: "EDIT_LYRIC", ArgCount: 2, Kinds: []ArgKind{ArgStringIndex, ArgInt}},
	35: {Name: "EDIT_TARGET", ArgCount: 5},
	36: {Name: "EDIT_MOUTH", ArgCount: 1},
	37: {Name: "SET_CHARA", ArgCount: 1},
	38: {Name: "EDIT_MOVE", ArgCount: 7},
	39: {Name: "EDIT_SHADOW", ArgCount: 1},
	40: {Name: "EDIT_EYELID", ArgCount: 1},
	41: {Name: "EDIT_EYE", ArgCount: 2},
	42: {Name: "EDIT_ITEM", ArgCount: 1},
	43: {Name: "EDIT_EFFECT", ArgCount: 2},
	44: {Name: "EDIT_DISP", ArgCount: 1},
	45: {Name: "EDIT_HAND_ANIM", ArgCount: 2},
	46: {Name: "AIM", ArgCount: 3},
	47: {Name: "HAND_ITEM", ArgCount: 3},
	48: {Name: "EDIT_BLUSH", ArgCount: 1},
	49: {Name: "NEAR_CLIP", ArgCount: 2},
	50: {Name: "CLOTH_WET", ArgCount: 2},
	51: {Name: "LIGHT_ROT", ArgCount: 3},
	52: {Name: "SCENE_FADE", ArgCount: 6},
	53: {Name: "TONE_TRANS", ArgCount: 6},
	54: {Name: "SATURATE", ArgCount: 1},
	55: {Name: "FADE_MODE", ArgCount: 1},
	56: {Name: "AUTO_BLINK", ArgCount: 2},
	57: {Name: "PARTS_DISP", ArgCount: 3},
	58: {Name: "TARGET_FLYING_TIME", ArgCount: 1},
	59: {Name: "CHARA_SIZE", ArgCount: 2},
	60: {Name: "CHARA_HEIGHT_ADJUST", ArgCount: 2},
	61: {Name: "ITEM_ANIM", ArgCount: 4},
	62: {Name: "CHARA_POS_ADJUST", ArgCount: 4},
	63: {Name: "SCENE_ROT", ArgCount: 1},
	64: {Name: "EDIT_MOT_SMOOTH_LEN", ArgCount: 2},
	65: {Name: "PV_BRANCH_MODE", ArgCount: 1},
	66: {Name: "DATA_CAMERA_START", ArgCount: 2},
	67: {Name: "MOVIE_PLAY", ArgCount: 1},
	68: {Name: "MOVIE_DISP", ArgCount: 1},
	69: {Name: "WIND", ArgCount: 3},
	70: {Name: "OSAGE_STEP", ArgCount: 3},
	71: {Name: "OSAGE_MV_CCL", ArgCount: 3},
	72: {Name: "CHARA_COLOR", ArgCount: 2},
	73: {Name: "SE_EFFECT", ArgCount: 1},
}

// LookupOpcode returns the table row for an opcode id.
func LookupOpcode(id uint32) (OpcodeInfo, bool) {
	info, ok := opcodeTable[id]
	return info, ok
}
