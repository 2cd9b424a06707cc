package intro

import (
	"context"
	_ "embed"
	"errors"
	"strings"
	"sync"
	"time"
)

//go:embed frames.txt
var bundledFrames string

const (
	frameSeparator    = "%%"
	defaultFrameDelay = 120 * time.Millisecond
)

// Player plays an animation asset. It calls finished when the asset reports
// that playback is over; a cancelled ctx stops playback without calling it.
type Player interface {
	Play(ctx context.Context, finished func())
}

// ParseFrames splits an animation asset into frames. Frames are separated by
// lines containing only "%%".
func ParseFrames(data string) ([]string, error) {
	var frames []string
	var current []string
	flush := func() {
		frames = append(frames, strings.Join(current, "\n"))
		current = nil
	}
	for _, line := range strings.Split(strings.TrimRight(data, "\n"), "\n") {
		if strings.TrimSpace(line) == frameSeparator {
			flush()
			continue
		}
		current = append(current, strings.TrimRight(line, "\r"))
	}
	flush()

	if len(frames) == 1 && strings.TrimSpace(frames[0]) == "" {
		return nil, errors.New("animation has no frames")
	}
	return frames, nil
}

// FramePlayer plays text frames at a fixed rate, once, without looping.
type FramePlayer struct {
	frames []string
	delay  time.Duration

	mu      sync.Mutex
	index   int
	changed chan struct{}
}

var _ Player = (*FramePlayer)(nil)

// NewFramePlayer builds a player for the given frames.
func NewFramePlayer(frames []string, delay time.Duration) *FramePlayer {
	if delay <= 0 {
		delay = defaultFrameDelay
	}
	return &FramePlayer{
		frames:  frames,
		delay:   delay,
		changed: make(chan struct{}, 1),
	}
}

// Bundled returns a player for the animation shipped with lantern.
func Bundled() *FramePlayer {
	frames, err := ParseFrames(bundledFrames)
	if err != nil {
		panic("intro: bundled animation: " + err.Error())
	}
	return NewFramePlayer(frames, defaultFrameDelay)
}

// Duration is the nominal playback length.
func (p *FramePlayer) Duration() time.Duration {
	return time.Duration(len(p.frames)) * p.delay
}

// Frame returns the frame currently on screen.
func (p *FramePlayer) Frame() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.frames) == 0 {
		return ""
	}
	return p.frames[p.index]
}

// Changed receives a value whenever the visible frame changes.
func (p *FramePlayer) Changed() <-chan struct{} {
	return p.changed
}

// Play implements Player.
func (p *FramePlayer) Play(ctx context.Context, finished func()) {
	go func() {
		ticker := time.NewTicker(p.delay)
		defer ticker.Stop()

		for i := 1; i <= len(p.frames); i++ {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			if i < len(p.frames) {
				p.show(i)
			}
		}
		finished()
	}()
}

func (p *FramePlayer) show(i int) {
	p.mu.Lock()
	p.index = i
	p.mu.Unlock()

	select {
	case p.changed <- struct{}{}:
	default:
	}
}
