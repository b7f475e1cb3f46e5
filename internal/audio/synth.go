package audio

import (
	"fmt"
	"io"
	"math"
)

// Tone is a synthesized PCM audio stream.
// It generates a sine burst with an optional linear frequency sweep and a
// decay envelope, rendered once into memory as 16-bit stereo PCM so it can
// be replayed through Ebitengine's audio system without re-synthesis.
type Tone struct {
	data       []byte // Rendered PCM data (16-bit signed, interleaved stereo)
	sampleRate int64  // Sample rate in Hz
	offset     int64  // Current read position
}

// Attack time applied to every tone to avoid clicks at the start.
const toneAttack = 0.005

// NewTone synthesizes a sine burst.
// The frequency sweeps linearly from startFreq to endFreq over the given
// duration, and an exponential decay envelope is applied so the tone fades
// out naturally. Equal start and end frequencies produce a plain beep.
//
// Parameters:
//   - sampleRate: Output sample rate in Hz (must match the audio context)
//   - startFreq: Frequency at the start of the burst in Hz
//   - endFreq: Frequency at the end of the burst in Hz
//   - duration: Burst length in seconds
//   - volume: Peak amplitude in [0, 1]
//
// Returns:
//   - *Tone: Rendered audio stream positioned at the start
//   - error: Error if any parameter is out of range
func NewTone(sampleRate int, startFreq, endFreq, duration, volume float64) (*Tone, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	if startFreq <= 0 || endFreq <= 0 {
		return nil, fmt.Errorf("invalid frequency range: %.1f -> %.1f", startFreq, endFreq)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("invalid duration: %.3f", duration)
	}
	if volume < 0 || volume > 1 {
		return nil, fmt.Errorf("invalid volume: %.3f (expected 0..1)", volume)
	}

	sampleCount := int(float64(sampleRate) * duration)
	if sampleCount < 1 {
		sampleCount = 1
	}

	// 16-bit stereo: 4 bytes per sample frame
	data := make([]byte, sampleCount*4)

	for i := 0; i < sampleCount; i++ {
		t := float64(i) / float64(sampleRate)

		// Phase of a linear sweep: integral of f(t) = f0 + (f1-f0)*t/d
		phase := 2 * math.Pi * (startFreq*t + (endFreq-startFreq)*t*t/(2*duration))

		// Short linear attack followed by exponential decay
		envelope := math.Exp(-5 * t / duration)
		if t < toneAttack {
			envelope *= t / toneAttack
		}

		sample := int16(volume * envelope * math.Sin(phase) * math.MaxInt16)

		// Same signal on both channels (little-endian)
		data[i*4] = byte(sample)
		data[i*4+1] = byte(sample >> 8)
		data[i*4+2] = byte(sample)
		data[i*4+3] = byte(sample >> 8)
	}

	return &Tone{
		data:       data,
		sampleRate: int64(sampleRate),
		offset:     0,
	}, nil
}

// Read reads rendered PCM data into p.
// Implements io.Reader interface.
func (t *Tone) Read(p []byte) (n int, err error) {
	if t.offset >= int64(len(t.data)) {
		return 0, io.EOF
	}

	n = copy(p, t.data[t.offset:])
	t.offset += int64(n)
	return n, nil
}

// Seek sets the offset for the next Read.
// Implements io.Seeker interface.
func (t *Tone) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64

	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = t.offset + offset
	case io.SeekEnd:
		newOffset = int64(len(t.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if newOffset < 0 {
		return 0, fmt.Errorf("negative position: %d", newOffset)
	}

	t.offset = newOffset
	return newOffset, nil
}

// Length returns the total length of the rendered audio data in bytes.
// Required by Ebitengine's audio.Player.
func (t *Tone) Length() int64 {
	return int64(len(t.data))
}

// SampleRate returns the sample rate of the audio in Hz.
func (t *Tone) SampleRate() int64 {
	return t.sampleRate
}

// Channels returns the number of audio channels (always 2, stereo).
func (t *Tone) Channels() int {
	return 2
}
