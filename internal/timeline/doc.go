// Package timeline turns a DSC instruction stream into ordered subtitle cues.
//
// A single playback clock is threaded through one Build call; nothing is
// shared between files, so concurrent conversions need no locking.
package timeline
