// Package player models the audio preview playback state machine.
//
// The server exposes resolved stream URLs and the TUI drives this state
// machine to track what is playing. States move idle → loading → ready →
// playing ⇄ paused → ended; a finished track auto-advances through the
// loaded queue. Seeking and volume changes are only valid once a stream is
// bound (ready, playing, or paused).
package player

import (
	"fmt"
	"sync"

	"github.com/niprobin/digging/internal/models"
	"github.com/niprobin/digging/internal/shared"
)

// State is a playback lifecycle phase.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StatePlaying State = "playing"
	StatePaused  State = "paused"
	StateEnded   State = "ended"
)

// Player tracks the current stream, queue position, and playback controls.
// It is safe for concurrent use.
type Player struct {
	mu sync.Mutex

	state    State
	stream   string
	current  int
	queue    []models.PreviewTrack
	position float64
	duration float64
	volume   float64
	autoPlay bool
}

// New creates an idle player with full volume and auto-play on.
func New() *Player {
	return &Player{state: StateIdle, current: -1, volume: 1, autoPlay: true}
}

// SetAutoPlay controls whether a loaded stream starts playing immediately
// and whether a finished track advances to the next queued one.
func (p *Player) SetAutoPlay(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.autoPlay = enabled
}

// State returns the current phase.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Current returns the queued track being played, if any.
func (p *Player) Current() (models.PreviewTrack, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current < 0 || p.current >= len(p.queue) {
		return models.PreviewTrack{}, false
	}
	return p.queue[p.current], true
}

// LoadQueue replaces the queue, stopping whatever was playing.
func (p *Player) LoadQueue(tracks []models.PreviewTrack) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.queue = append([]models.PreviewTrack(nil), tracks...)
	p.current = -1
	p.stream = ""
	p.position = 0
	p.duration = 0
	p.state = StateIdle
}

// StartLoading marks queue index as the loading track. Loading a new track
// implicitly stops the previous one.
func (p *Player) StartLoading(index int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if index < 0 || index >= len(p.queue) {
		return fmt.Errorf("queue index %d: %w", index, shared.ErrInvalidArgument)
	}

	p.current = index
	p.stream = ""
	p.position = 0
	p.duration = 0
	p.state = StateLoading
	return nil
}

// Bind attaches a resolved stream to the loading track. With auto-play on the
// player goes straight to playing, matching how a resolved preview starts
// immediately.
func (p *Player) Bind(streamURL string, durationSeconds float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateLoading {
		return fmt.Errorf("cannot bind a stream while %s: %w", p.state, shared.ErrInvalidInput)
	}
	if streamURL == "" {
		p.state = StateIdle
		return fmt.Errorf("bind: %w", shared.ErrNoStreamURL)
	}

	p.stream = streamURL
	p.duration = durationSeconds
	p.position = 0
	if p.autoPlay {
		p.state = StatePlaying
	} else {
		p.state = StateReady
	}
	return nil
}

// FailLoad abandons an in-flight load, returning to idle. The preview
// degrades without blocking anything else.
func (p *Player) FailLoad() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StateLoading {
		p.state = StateIdle
		p.current = -1
	}
}

// Play starts or resumes playback.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case StateReady, StatePaused:
		p.state = StatePlaying
		return nil
	case StatePlaying:
		return nil
	default:
		return fmt.Errorf("cannot play while %s: %w", p.state, shared.ErrInvalidInput)
	}
}

// Pause suspends playback.
func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StatePlaying {
		return fmt.Errorf("cannot pause while %s: %w", p.state, shared.ErrInvalidInput)
	}
	p.state = StatePaused
	return nil
}

// TogglePlay flips between playing and paused.
func (p *Player) TogglePlay() error {
	p.mu.Lock()
	state := p.state
	p.mu.Unlock()

	if state == StatePlaying {
		return p.Pause()
	}
	return p.Play()
}

// Seek moves the playhead, clamped to [0, duration]. Only valid with a bound
// stream.
func (p *Player) Seek(seconds float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case StateReady, StatePlaying, StatePaused:
	default:
		return fmt.Errorf("cannot seek while %s: %w", p.state, shared.ErrInvalidInput)
	}

	if seconds < 0 {
		seconds = 0
	}
	if p.duration > 0 && seconds > p.duration {
		seconds = p.duration
	}
	p.position = seconds
	return nil
}

// SetVolume sets the volume, clamped to [0, 1]. Only valid with a bound
// stream.
func (p *Player) SetVolume(volume float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case StateReady, StatePlaying, StatePaused:
	default:
		return fmt.Errorf("cannot set volume while %s: %w", p.state, shared.ErrInvalidInput)
	}

	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	p.volume = volume
	return nil
}

// Volume returns the current volume.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Position returns the playhead in seconds.
func (p *Player) Position() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position
}

// TrackEnded marks the current track finished. With auto-play on and another
// queued track remaining, the player moves to loading the next track and its
// index is returned; otherwise the player ends.
func (p *Player) TrackEnded() (next int, advanced bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StatePlaying {
		return -1, false
	}

	if p.autoPlay && p.current+1 < len(p.queue) {
		p.current++
		p.stream = ""
		p.position = 0
		p.duration = 0
		p.state = StateLoading
		return p.current, true
	}

	p.state = StateEnded
	p.position = p.duration
	return -1, false
}

// Stop clears the bound stream and returns to idle.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stream = ""
	p.current = -1
	p.position = 0
	p.duration = 0
	p.state = StateIdle
}
