package feed

import (
	"net/url"
	"strings"
	"time"
)

// PlaybackState is the lifecycle of the single mounted clip.
type PlaybackState int

const (
	StateStopped PlaybackState = iota
	StatePlaying
	StatePaused
)

func (s PlaybackState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "stopped"
	}
}

// Playback drives one dish clip. A controller is created when its item
// becomes active and discarded when the user navigates away; a revisited
// item always re-enters at Playing, previous pause state is not remembered.
type Playback struct {
	state    PlaybackState
	position time.Duration
	length   time.Duration
	fallback bool
}

// NewPlayback builds a controller for a clip of the given length. An
// unusable video source puts the controller into still-image fallback mode
// for its whole lifetime; there is no retry.
func NewPlayback(videoURL string, length time.Duration) *Playback {
	if length <= 0 {
		length = time.Second
	}
	return &Playback{
		length:   length,
		fallback: !playableSource(videoURL),
	}
}

// OnBecomeActive starts autoplay. Fallback-mode controllers stay stopped and
// show the poster instead.
func (p *Playback) OnBecomeActive() {
	if p.fallback {
		p.state = StateStopped
		return
	}
	p.state = StatePlaying
	p.position = 0
}

// OnBecomeInactive stops playback. The engine discards the controller right
// after, so no state survives navigation away.
func (p *Playback) OnBecomeInactive() {
	p.state = StateStopped
}

// Toggle is the strict play/pause flip for a tap on the media surface. It is
// the only manual control; stopped and fallback controllers ignore it.
func (p *Playback) Toggle() {
	switch p.state {
	case StatePlaying:
		p.state = StatePaused
	case StatePaused:
		p.state = StatePlaying
	}
}

// Advance moves the play position while Playing, wrapping at the clip length
// so the clip loops without touching the feed index.
func (p *Playback) Advance(dt time.Duration) {
	if p.state != StatePlaying || dt <= 0 {
		return
	}
	p.position = (p.position + dt) % p.length
}

func (p *Playback) State() PlaybackState { return p.state }

func (p *Playback) Fallback() bool { return p.fallback }

func (p *Playback) Position() time.Duration { return p.position }

func (p *Playback) Length() time.Duration { return p.length }

// Progress is the fraction of the clip played, in [0, 1).
func (p *Playback) Progress() float64 {
	if p.length <= 0 {
		return 0
	}
	return float64(p.position) / float64(p.length)
}

func playableSource(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}
