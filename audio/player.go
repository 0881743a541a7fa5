// Package audio plays pre-loaded zone description cues through the system
// speaker. All decoding happens at startup; playback is fire-and-forget.
package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"go.viam.com/rdk/logging"
)

// Player holds one decoded audio buffer per zone. Missing or undecodable
// files leave their slot silent; the pipeline keeps running without them.
type Player struct {
	logger      logging.Logger
	buffers     []*beep.Buffer
	sampleRate  beep.SampleRate
	initialized bool
}

// NewPlayer decodes the given audio files (in zone-ID order) and initializes
// the speaker. Per-file failures are logged and tolerated; a player with no
// playable cues is still valid and simply fails every Play call.
func NewPlayer(paths []string, logger logging.Logger) (*Player, error) {
	p := &Player{
		logger:  logger,
		buffers: make([]*beep.Buffer, len(paths)),
	}

	for i, path := range paths {
		if _, err := os.Stat(path); err != nil {
			logger.Warnf("Audio file not found: %s", path)
			continue
		}
		buf, err := decodeFile(path)
		if err != nil {
			logger.Warnf("Cannot decode %s: %v", path, err)
			continue
		}
		p.buffers[i] = buf
	}

	// Initialize the speaker at the first decoded cue's sample rate; other
	// cues are resampled at play time.
	for _, buf := range p.buffers {
		if buf == nil {
			continue
		}
		p.sampleRate = buf.Format().SampleRate
		if err := speaker.Init(p.sampleRate, p.sampleRate.N(time.Second/10)); err != nil {
			return nil, fmt.Errorf("initializing speaker: %w", err)
		}
		p.initialized = true
		break
	}
	if !p.initialized {
		logger.Warn("No playable audio cues loaded; running silent")
	}

	return p, nil
}

// Close shuts down the speaker and releases the audio device. A player that
// never initialized the speaker has nothing to release. The player must not
// be used after Close.
func (p *Player) Close() {
	if !p.initialized {
		return
	}
	speaker.Close()
	p.initialized = false
}

// Play starts non-blocking playback of the zone's cue.
func (p *Player) Play(zone int) error {
	if !p.initialized {
		return fmt.Errorf("audio backend not initialized")
	}
	if zone < 0 || zone >= len(p.buffers) || p.buffers[zone] == nil {
		return fmt.Errorf("no audio loaded for zone %d", zone)
	}

	buf := p.buffers[zone]
	var streamer beep.Streamer = buf.Streamer(0, buf.Len())
	if buf.Format().SampleRate != p.sampleRate {
		streamer = beep.Resample(4, buf.Format().SampleRate, p.sampleRate, streamer)
	}
	speaker.Play(streamer)
	return nil
}

// decodeFile decodes a WAV or MP3 file fully into memory.
func decodeFile(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		return nil, fmt.Errorf("unsupported audio format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	return buf, nil
}
