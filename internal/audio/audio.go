// Package audio provides the pure amplitude lookup the compositor uses to
// inject audio-reactive state into frame snapshots.
//
// The core does not decode or analyze audio. It receives an
// already-analyzed sample buffer from the host (the stem-separation
// collaborator upstream) and performs deterministic read-only lookups.
package audio

import "math"

// Buffer is an amplitude-over-time sample buffer with enough shape
// information to map a logical frame onto a sample window.
type Buffer struct {
	Samples    []float64
	SampleRate float64 // samples per second
	FPS        float64 // composition frames per second
}

// Empty reports whether the buffer carries no usable audio.
func (b *Buffer) Empty() bool {
	return b == nil || len(b.Samples) == 0 || b.SampleRate <= 0 || b.FPS <= 0
}

// Amplitude returns the mean absolute sample value over the frame's
// window of samples, clamped to the buffer. Frames before the buffer or
// past its end read as silence. Pure: the buffer is never mutated and the
// same (buffer, frame) pair always yields the same result.
func (b *Buffer) Amplitude(frame int) float64 {
	if b.Empty() || frame < 0 {
		return 0
	}

	perFrame := b.SampleRate / b.FPS
	start := int(math.Floor(float64(frame) * perFrame))
	end := int(math.Floor(float64(frame+1) * perFrame))
	if start >= len(b.Samples) {
		return 0
	}
	if end > len(b.Samples) {
		end = len(b.Samples)
	}
	if end <= start {
		end = start + 1
	}

	sum := 0.0
	for _, s := range b.Samples[start:end] {
		sum += math.Abs(s)
	}
	return sum / float64(end-start)
}
