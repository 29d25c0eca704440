package probe

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

const defaultMeminfoPath = "/proc/meminfo"

// HostOption configures a Host probe.
type HostOption func(*Host)

// WithUserAgent overrides the generated user agent string.
func WithUserAgent(ua string) HostOption {
	return func(h *Host) {
		if ua != "" {
			h.userAgent = ua
		}
	}
}

// WithVendor sets the vendor label; hosts report none by default.
func WithVendor(vendor string) HostOption {
	return func(h *Host) { h.vendor = vendor }
}

// WithDisplay declares the display geometry, which a headless host cannot discover.
func WithDisplay(d Display) HostOption {
	return func(h *Host) {
		if d.Width > 0 && d.Height > 0 {
			h.display = &d
		}
	}
}

// WithMeminfoPath points the memory hint at a different meminfo file.
func WithMeminfoPath(path string) HostOption {
	return func(h *Host) { h.meminfoPath = path }
}

// WithLookupEnv replaces os.LookupEnv for locale resolution.
func WithLookupEnv(fn func(string) (string, bool)) HostOption {
	return func(h *Host) {
		if fn != nil {
			h.lookupEnv = fn
		}
	}
}

// Host probes the machine the process runs on. Audio and graphics
// contexts are never available on a host.
type Host struct {
	userAgent   string
	vendor      string
	display     *Display
	meminfoPath string
	lookupEnv   func(string) (string, bool)
}

// NewHost returns a Probe reading the local machine.
func NewHost(opts ...HostOption) *Host {
	h := &Host{
		userAgent:   fmt.Sprintf("beacon/1.0 (%s; %s) %s", runtime.GOOS, runtime.GOARCH, runtime.Version()),
		meminfoPath: defaultMeminfoPath,
		lookupEnv:   os.LookupEnv,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Host) Navigator(ctx context.Context) (Navigator, error) {
	return Navigator{
		Language:            h.locale(),
		Platform:            Platform(runtime.GOOS, runtime.GOARCH),
		UserAgent:           h.userAgent,
		Vendor:              h.vendor,
		HardwareConcurrency: runtime.NumCPU(),
		DeviceMemory:        h.deviceMemory(),
	}, nil
}

func (h *Host) Display(ctx context.Context) (Display, error) {
	if h.display == nil {
		return Display{}, ErrUnsupported
	}
	return *h.display, nil
}

func (h *Host) OpenAudio(ctx context.Context) (AudioContext, error) {
	return nil, ErrUnsupported
}

func (h *Host) OpenGraphics(ctx context.Context) (GraphicsContext, error) {
	return nil, ErrUnsupported
}

// locale follows POSIX precedence: LC_ALL, then LC_MESSAGES, then LANG.
func (h *Host) locale() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v, ok := h.lookupEnv(key); ok && v != "" {
			return NormalizeLocale(v)
		}
	}
	return ""
}

func (h *Host) deviceMemory() *float64 {
	f, err := os.Open(h.meminfoPath)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || fields[0] != "MemTotal:" {
			continue
		}
		kb, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || kb <= 0 {
			return nil
		}
		v := MemoryBucket(kb / (1024 * 1024))
		return &v
	}
	return nil
}

// NormalizeLocale converts a POSIX locale such as "en_US.UTF-8" into a
// BCP 47 tag ("en-US"). "C", "POSIX" and unparsable values yield "".
func NormalizeLocale(v string) string {
	if i := strings.IndexAny(v, ".@"); i >= 0 {
		v = v[:i]
	}
	if v == "" || v == "C" || v == "POSIX" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(v, "_", "-"))
	if err != nil {
		return ""
	}
	return tag.String()
}

// Platform renders GOOS/GOARCH the way browsers fill navigator.platform.
func Platform(goos, goarch string) string {
	switch goos {
	case "darwin":
		return "MacIntel"
	case "windows":
		return "Win32"
	case "linux":
		switch goarch {
		case "amd64":
			return "Linux x86_64"
		case "arm64":
			return "Linux aarch64"
		case "386":
			return "Linux i686"
		}
		return "Linux " + goarch
	}
	return goos + " " + goarch
}

// MemoryBucket coarsens a memory size in GiB to a power of two between
// 0.25 and 8, rounding down, matching the browser device memory hint.
func MemoryBucket(gib float64) float64 {
	v := 0.25
	for v < 8 && v*2 <= gib {
		v *= 2
	}
	return v
}
