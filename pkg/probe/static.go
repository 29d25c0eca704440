package probe

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

// AudioProfile describes the audio subsystem of a profiled device.
type AudioProfile struct {
	SampleRate   float64 `yaml:"sample_rate"`
	ChannelCount int     `yaml:"channel_count"`
}

// Profile is a fixed device description. A nil section means the
// capability is unavailable on the profiled device.
type Profile struct {
	Navigator *Navigator          `yaml:"navigator"`
	Display   *Display            `yaml:"display"`
	Audio     *AudioProfile       `yaml:"audio"`
	Graphics  *GraphicsParameters `yaml:"graphics"`
}

// Validate rejects values no real device could report.
func (p Profile) Validate() error {
	if n := p.Navigator; n != nil {
		if n.MaxTouchPoints < 0 || n.HardwareConcurrency < 0 {
			return fmt.Errorf("%w: navigator counters must not be negative", ErrInvalidProfile)
		}
		if m := n.DeviceMemory; m != nil && (!finite(*m) || *m <= 0) {
			return fmt.Errorf("%w: device memory must be a positive finite number", ErrInvalidProfile)
		}
	}
	if d := p.Display; d != nil && (d.Width <= 0 || d.Height <= 0) {
		return fmt.Errorf("%w: display geometry must be positive", ErrInvalidProfile)
	}
	if a := p.Audio; a != nil && (!finite(a.SampleRate) || a.SampleRate <= 0 || a.ChannelCount <= 0) {
		return fmt.Errorf("%w: audio sample rate and channel count must be positive and finite", ErrInvalidProfile)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ParseProfile decodes a YAML device profile.
func ParseProfile(data []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, errors.Join(ErrFailedToParseProfile, err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// LoadProfile reads and decodes a YAML device profile from disk.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, errors.Join(ErrFailedToReadProfile, err)
	}
	return ParseProfile(data)
}

// Static is a Probe answering from a fixed Profile.
// It counts acquired and released transient resources so callers can
// assert nothing leaks.
type Static struct {
	profile Profile

	audioOpened      atomic.Int64
	audioClosed      atomic.Int64
	graphicsOpened   atomic.Int64
	graphicsReleased atomic.Int64
}

// NewStatic returns a Probe backed by the given profile.
func NewStatic(p Profile) *Static {
	return &Static{profile: p}
}

func (s *Static) Navigator(ctx context.Context) (Navigator, error) {
	if s.profile.Navigator == nil {
		return Navigator{}, ErrUnsupported
	}
	return *s.profile.Navigator, nil
}

func (s *Static) Display(ctx context.Context) (Display, error) {
	if s.profile.Display == nil {
		return Display{}, ErrUnsupported
	}
	return *s.profile.Display, nil
}

func (s *Static) OpenAudio(ctx context.Context) (AudioContext, error) {
	if s.profile.Audio == nil {
		return nil, ErrUnsupported
	}
	s.audioOpened.Add(1)
	return &staticAudio{profile: *s.profile.Audio, owner: s}, nil
}

func (s *Static) OpenGraphics(ctx context.Context) (GraphicsContext, error) {
	if s.profile.Graphics == nil {
		return nil, ErrUnsupported
	}
	s.graphicsOpened.Add(1)
	return &staticGraphics{params: *s.profile.Graphics, owner: s}, nil
}

// OpenResources reports how many audio and graphics contexts are
// currently acquired and not yet released.
func (s *Static) OpenResources() (audio, graphics int64) {
	return s.audioOpened.Load() - s.audioClosed.Load(),
		s.graphicsOpened.Load() - s.graphicsReleased.Load()
}

type staticAudio struct {
	profile AudioProfile
	owner   *Static
	closed  atomic.Bool
}

func (a *staticAudio) SampleRate() (float64, error)  { return a.profile.SampleRate, nil }
func (a *staticAudio) MaxChannelCount() (int, error) { return a.profile.ChannelCount, nil }

func (a *staticAudio) Close() error {
	if a.closed.CompareAndSwap(false, true) {
		a.owner.audioClosed.Add(1)
	}
	return nil
}

type staticGraphics struct {
	params   GraphicsParameters
	owner    *Static
	released atomic.Bool
}

func (g *staticGraphics) Parameters() (GraphicsParameters, error) { return g.params, nil }

func (g *staticGraphics) Release() error {
	if g.released.CompareAndSwap(false, true) {
		g.owner.graphicsReleased.Add(1)
	}
	return nil
}
