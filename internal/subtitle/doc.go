// Package subtitle serializes cue sequences into WebVTT or TOML documents.
// Output is deterministic: the same cues always produce identical bytes.
package subtitle
