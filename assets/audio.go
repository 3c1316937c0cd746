package assets

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/leo110047/ODANGO/config"
)

// ChirpLoader synthesizes the short sine-sweep chirps used for interaction
// feedback. There are no audio files to ship; each chirp is rendered once as
// a WAV and run through the normal decode path, then cached decoded.
type ChirpLoader struct {
	sfxCache map[config.SoundID][]byte // Cache decoded audio bytes per chirp
	context  *audio.Context
}

// NewChirpLoader creates a new chirp loader with the given context
func NewChirpLoader(ctx *audio.Context) *ChirpLoader {
	return &ChirpLoader{
		sfxCache: make(map[config.SoundID][]byte),
		context:  ctx,
	}
}

// Preload renders and decodes every configured chirp. Call this at startup
// to avoid synth lag on first play.
func (l *ChirpLoader) Preload() error {
	for id := range config.Audio.Chirps {
		if _, err := l.decoded(id); err != nil {
			return err
		}
	}
	return nil
}

// Player returns a fresh one-shot player for the chirp. Unknown sounds
// return nil; callers treat that as "no sound configured".
func (l *ChirpLoader) Player(id config.SoundID) (*audio.Player, error) {
	decoded, err := l.decoded(id)
	if err != nil || decoded == nil {
		return nil, err
	}
	return l.context.NewPlayer(bytes.NewReader(decoded))
}

func (l *ChirpLoader) decoded(id config.SoundID) ([]byte, error) {
	if cachedBytes, ok := l.sfxCache[id]; ok {
		return cachedBytes, nil
	}

	def, ok := config.Audio.Chirps[id]
	if !ok {
		return nil, nil
	}

	data := wavBytes(synthesizeChirp(def, l.context.SampleRate()), l.context.SampleRate())

	stream, err := wav.DecodeWithSampleRate(l.context.SampleRate(), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode chirp %d: %w", id, err)
	}
	decoded, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read decoded chirp %d: %w", id, err)
	}

	l.sfxCache[id] = decoded
	return decoded, nil
}

// wavBytes wraps raw 16-bit stereo PCM in a canonical RIFF header so the
// result is a valid WAV stream.
func wavBytes(pcm []byte, sampleRate int) []byte {
	const (
		channels      = 2
		bitsPerSample = 16
	)
	blockAlign := channels * bitsPerSample / 8

	out := make([]byte, 44+len(pcm))
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+len(pcm)))
	copy(out[8:12], "WAVE")
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], 1) // uncompressed PCM
	binary.LittleEndian.PutUint16(out[22:24], channels)
	binary.LittleEndian.PutUint32(out[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:32], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(out[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:36], bitsPerSample)
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(len(pcm)))
	copy(out[44:], pcm)
	return out
}

// synthesizeChirp renders a sine sweep with a linear attack/release envelope
// so the tone does not pop at its edges.
func synthesizeChirp(def config.ChirpDef, sampleRate int) []byte {
	n := int(def.Duration * float64(sampleRate))
	if n <= 0 {
		return nil
	}
	edge := n / 8 // envelope ramp length

	buf := make([]byte, n*4) // stereo, 2 bytes per channel
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n)
		hz := def.StartHz + (def.EndHz-def.StartHz)*t
		phase += 2 * math.Pi * hz / float64(sampleRate)

		env := 1.0
		if i < edge {
			env = float64(i) / float64(edge)
		} else if n-i < edge {
			env = float64(n-i) / float64(edge)
		}

		s := int16(math.Sin(phase) * def.Volume * env * math.MaxInt16)
		buf[i*4] = byte(s)
		buf[i*4+1] = byte(s >> 8)
		buf[i*4+2] = byte(s)
		buf[i*4+3] = byte(s >> 8)
	}
	return buf
}
