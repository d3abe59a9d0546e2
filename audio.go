package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
)

const sampleRate = 44100

// music is the startup track. It is played once and never touched again.
type music struct {
	player *audio.Player
}

// newMusic decodes an ogg/vorbis file into memory. An empty path means no
// music and returns nil.
func newMusic(path string) (*music, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	stream, err := vorbis.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	player, err := audio.NewContext(sampleRate).NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("creating player for %s: %w", path, err)
	}
	return &music{player: player}, nil
}

// Play starts the track; safe on a nil music
func (m *music) Play() {
	if m == nil {
		return
	}
	m.player.Play()
}
