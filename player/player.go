// This file is part of Gophertape.
//
// Gophertape is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gophertape is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gophertape.  If not, see <https://www.gnu.org/licenses/>.

package player

import (
	"context"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/jetsetilly/gophertape/cassette"
	"github.com/jetsetilly/gophertape/curated"
	"github.com/jetsetilly/gophertape/logger"
)

// how often Play() checks whether playback has finished
const pollInterval = 50 * time.Millisecond

// Player wraps an oto context for a single sample rate.
type Player struct {
	ctx  *oto.Context
	rate int
}

// NewPlayer is the preferred method of initialisation for the Player type.
// The function blocks until the audio device is ready.
func NewPlayer(rate int) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, curated.Errorf("player: %v", err)
	}
	<-ready

	logger.Logf(logger.Allow, "player", "audio initialised: %dHz", rate)

	return &Player{
		ctx:  ctx,
		rate: rate,
	}, nil
}

// Play the first channel of the cassette at the specified volume (0 to 100).
// The function returns when playback has finished or when the context is
// cancelled.
func (pl *Player) Play(ctx context.Context, cas *cassette.Cassette, volume int) error {
	if cas.Options().SampleRate != pl.rate {
		return curated.Errorf("player: cassette rate (%d) does not match player rate (%d)",
			cas.Options().SampleRate, pl.rate)
	}

	src := newPCM(cas.Samples(0), volume)
	p := pl.ctx.NewPlayer(src)
	defer p.Close()

	cas.Logf("player", "playing %s at volume %d", cas, src.volume)
	p.Play()

	tick := time.NewTicker(pollInterval)
	defer tick.Stop()

	for p.IsPlaying() {
		select {
		case <-ctx.Done():
			p.Pause()
			cas.Log("player", "stopped")
			return nil
		case <-tick.C:
		}
	}

	if err := p.Err(); err != nil {
		return curated.Errorf("player: %v", err)
	}

	return nil
}
