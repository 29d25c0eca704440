// Package probe abstracts the ambient environment a fingerprint is read from.
//
// Instead of reaching for process-wide singletons, the fingerprint collector
// depends on the Probe interface, which groups capabilities the same way a
// browser exposes them: navigator identification, display geometry, an
// audio-processing context and a throwaway graphics context.
//
// Two implementations ship with the package:
//
//   - Static answers from a fixed Profile. Profiles can be written as YAML
//     and loaded with LoadProfile, which makes them suitable for replaying a
//     known device or for deterministic tests. Static also counts the
//     transient contexts it hands out so leaks are observable.
//   - Host reads the machine the process runs on: locale from LC_ALL,
//     LC_MESSAGES or LANG, a navigator-style platform label, CPU count and a
//     coarse memory hint from /proc/meminfo. A host has no audio or graphics
//     context, and a display only when declared with WithDisplay.
//
// # Usage
//
//	p, err := probe.LoadProfile("device.yaml")
//	if err != nil {
//	    return err
//	}
//	static := probe.NewStatic(p)
//
//	host := probe.NewHost(probe.WithDisplay(probe.Display{Width: 1920, Height: 1080, ColorDepth: 24}))
//
// A profile looks like:
//
//	navigator:
//	  language: en-US
//	  platform: MacIntel
//	  user_agent: Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)
//	  vendor: Apple Computer, Inc.
//	  max_touch_points: 0
//	  hardware_concurrency: 8
//	  device_memory: 8
//	display:
//	  width: 1440
//	  height: 900
//	  color_depth: 30
//	audio:
//	  sample_rate: 44100
//	  channel_count: 2
//
// # Error Handling
//
// Capabilities that cannot be obtained report ErrUnsupported. Profile
// loading wraps its failures with ErrFailedToReadProfile,
// ErrFailedToParseProfile or ErrInvalidProfile.
package probe
