package probe

import "context"

// Navigator holds the identification values a browser exposes on its
// navigator object, or their closest equivalents on other runtimes.
type Navigator struct {
	Language            string   `yaml:"language"`
	Platform            string   `yaml:"platform"`
	UserAgent           string   `yaml:"user_agent"`
	Vendor              string   `yaml:"vendor"`
	MaxTouchPoints      int      `yaml:"max_touch_points"`
	HardwareConcurrency int      `yaml:"hardware_concurrency"`
	DeviceMemory        *float64 `yaml:"device_memory"`
}

// Display describes the primary screen geometry.
type Display struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	ColorDepth int `yaml:"color_depth"`
}

// GraphicsParameters are the identification strings of a rendering context.
type GraphicsParameters struct {
	Vendor                 string `yaml:"vendor"`
	Renderer               string `yaml:"renderer"`
	Version                string `yaml:"version"`
	ShadingLanguageVersion string `yaml:"shading_language_version"`
}

// AudioContext is a transient audio-processing resource.
// Callers must Close it once done, whether or not reads succeeded.
type AudioContext interface {
	SampleRate() (float64, error)
	MaxChannelCount() (int, error)
	Close() error
}

// GraphicsContext is a throwaway rendering surface.
// Callers must Release it once the parameters are read.
type GraphicsContext interface {
	Parameters() (GraphicsParameters, error)
	Release() error
}

// Probe reads ambient capabilities of the environment the beacon runs in.
// Every method may return ErrUnsupported when the capability is not
// available on the current runtime.
type Probe interface {
	Navigator(ctx context.Context) (Navigator, error)
	Display(ctx context.Context) (Display, error)
	OpenAudio(ctx context.Context) (AudioContext, error)
	OpenGraphics(ctx context.Context) (GraphicsContext, error)
}
