package loaders

import (
	"io"
	"os"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for render configs that parse but make no sense
var ErrInvalidConfig = xerrors.New("invalid render config")

// RenderConfig holds camera and scheduling overrides read from YAML.
// Unset fields keep the scene's own values.
type RenderConfig struct {
	Width           int         `yaml:"width"`
	AspectRatio     float64     `yaml:"aspect_ratio"`
	SamplesPerPixel int         `yaml:"samples_per_pixel"`
	MaxDepth        int         `yaml:"max_depth"`
	VFov            float64     `yaml:"vfov"`
	Background      *[3]float64 `yaml:"background"`
	LookFrom        *[3]float64 `yaml:"look_from"`
	LookAt          *[3]float64 `yaml:"look_at"`
	Up              *[3]float64 `yaml:"up"`
	DefocusAngle    *float64    `yaml:"defocus_angle"`
	FocusDistance   float64     `yaml:"focus_distance"`

	Seed    *int64 `yaml:"seed"`
	Workers int    `yaml:"workers"`
}

// LoadRenderConfig reads and validates a YAML render config file
func LoadRenderConfig(path string) (*RenderConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("while opening render config: %w", err)
	}
	defer f.Close()

	cfg, err := ParseRenderConfig(f)
	if err != nil {
		return nil, xerrors.Errorf("while loading %q: %w", path, err)
	}
	return cfg, nil
}

// ParseRenderConfig decodes a YAML render config. Unknown keys are rejected.
func ParseRenderConfig(r io.Reader) (*RenderConfig, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	cfg := &RenderConfig{}
	if err := dec.Decode(cfg); err != nil && !xerrors.Is(err, io.EOF) {
		return nil, xerrors.Errorf("while decoding render config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects negative sizes, sample counts and depths
func (c *RenderConfig) Validate() error {
	switch {
	case c.Width < 0:
		return xerrors.Errorf("width %d must be positive: %w", c.Width, ErrInvalidConfig)
	case c.AspectRatio < 0:
		return xerrors.Errorf("aspect_ratio %g must be positive: %w", c.AspectRatio, ErrInvalidConfig)
	case c.SamplesPerPixel < 0:
		return xerrors.Errorf("samples_per_pixel %d must not be negative: %w", c.SamplesPerPixel, ErrInvalidConfig)
	case c.MaxDepth < 0:
		return xerrors.Errorf("max_depth %d must not be negative: %w", c.MaxDepth, ErrInvalidConfig)
	case c.VFov < 0 || c.VFov >= 180:
		return xerrors.Errorf("vfov %g must be in (0, 180): %w", c.VFov, ErrInvalidConfig)
	case c.DefocusAngle != nil && *c.DefocusAngle < 0:
		return xerrors.Errorf("defocus_angle %g must not be negative: %w", *c.DefocusAngle, ErrInvalidConfig)
	case c.FocusDistance < 0:
		return xerrors.Errorf("focus_distance %g must be positive: %w", c.FocusDistance, ErrInvalidConfig)
	case c.Workers < 0:
		return xerrors.Errorf("workers %d must not be negative: %w", c.Workers, ErrInvalidConfig)
	}
	return nil
}

// Apply overlays the set fields of c onto a scene's camera config
func (c *RenderConfig) Apply(camera renderer.CameraConfig) renderer.CameraConfig {
	if c.Width > 0 {
		camera.ImageWidth = c.Width
	}
	if c.AspectRatio > 0 {
		camera.AspectRatio = c.AspectRatio
	}
	if c.SamplesPerPixel > 0 {
		camera.SamplesPerPixel = c.SamplesPerPixel
	}
	if c.MaxDepth > 0 {
		camera.MaxDepth = c.MaxDepth
	}
	if c.VFov > 0 {
		camera.VFov = c.VFov
	}
	if c.Background != nil {
		camera.Background = vec(*c.Background)
	}
	if c.LookFrom != nil {
		camera.LookFrom = vec(*c.LookFrom)
	}
	if c.LookAt != nil {
		camera.LookAt = vec(*c.LookAt)
	}
	if c.Up != nil {
		camera.Up = vec(*c.Up)
	}
	if c.DefocusAngle != nil {
		camera.DefocusAngle = *c.DefocusAngle
	}
	if c.FocusDistance > 0 {
		camera.FocusDistance = c.FocusDistance
	}
	return camera
}

func vec(a [3]float64) core.Vec3 {
	return core.NewVec3(a[0], a[1], a[2])
}
