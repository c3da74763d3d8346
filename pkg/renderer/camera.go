package renderer

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// defaultSamplesPerPixel replaces a zero sample count
const defaultSamplesPerPixel = 100

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	AspectRatio     float64   // Image width divided by image height
	ImageWidth      int       // Rendered image width in pixels
	SamplesPerPixel int       // Number of random samples per pixel (0 means the default)
	MaxDepth        int       // Maximum number of ray bounces
	Background      core.Vec3 // Scene background color
	VFov            float64   // Vertical field of view in degrees
	LookFrom        core.Vec3 // Point the camera is looking from
	LookAt          core.Vec3 // Point the camera is looking at
	Up              core.Vec3 // Camera-relative "up" direction
	DefocusAngle    float64   // Variation angle of rays through each pixel, in degrees
	FocusDistance   float64   // Distance from LookFrom to the plane of perfect focus
}

// DefaultCameraConfig returns the settings a camera uses when a scene sets nothing
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:     1.0,
		ImageWidth:      100,
		SamplesPerPixel: 10,
		MaxDepth:        10,
		VFov:            90,
		LookFrom:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
		FocusDistance:   10,
	}
}

// Camera generates rays for rendering with configurable position, orientation and depth of field
type Camera struct {
	config CameraConfig

	imageWidth        int
	imageHeight       int
	samplesPerPixel   int
	pixelSamplesScale float64
	center            core.Vec3
	pixel00Loc        core.Vec3
	pixelDeltaU       core.Vec3
	pixelDeltaV       core.Vec3
	u, v, w           core.Vec3 // Camera frame basis vectors
	defocusDiskU      core.Vec3
	defocusDiskV      core.Vec3
}

// NewCamera derives the viewport geometry from config
func NewCamera(config CameraConfig) *Camera {
	imageWidth := config.ImageWidth
	if imageWidth < 1 {
		imageWidth = 1
	}
	imageHeight := int(float64(imageWidth) / config.AspectRatio)
	if imageHeight < 1 {
		imageHeight = 1
	}

	samples := config.SamplesPerPixel
	if samples <= 0 {
		samples = defaultSamplesPerPixel
	}

	center := config.LookFrom

	theta := core.DegreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * config.FocusDistance
	viewportWidth := viewportHeight * (float64(imageWidth) / float64(imageHeight))

	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Negate().Multiply(viewportHeight)

	pixelDeltaU := viewportU.Multiply(1 / float64(imageWidth))
	pixelDeltaV := viewportV.Multiply(1 / float64(imageHeight))

	viewportUpperLeft := center.
		Subtract(w.Multiply(config.FocusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00Loc := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	defocusRadius := config.FocusDistance * math.Tan(core.DegreesToRadians(config.DefocusAngle/2))

	return &Camera{
		config:            config,
		imageWidth:        imageWidth,
		imageHeight:       imageHeight,
		samplesPerPixel:   samples,
		pixelSamplesScale: 1 / float64(samples),
		center:            center,
		pixel00Loc:        pixel00Loc,
		pixelDeltaU:       pixelDeltaU,
		pixelDeltaV:       pixelDeltaV,
		u:                 u,
		v:                 v,
		w:                 w,
		defocusDiskU:      u.Multiply(defocusRadius),
		defocusDiskV:      v.Multiply(defocusRadius),
	}
}

// GetRay returns a randomly sampled ray through pixel (i, j), where j=0 is the top row.
// The ray originates on the defocus disk when depth of field is enabled.
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offsetX := sampler.Get1D() - 0.5
	offsetY := sampler.Get1D() - 0.5
	pixelSample := c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i) + offsetX)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offsetY))

	origin := c.center
	if c.config.DefocusAngle > 0 {
		origin = c.defocusDiskSample(sampler)
	}

	return core.NewRayAtTime(origin, pixelSample.Subtract(origin), sampler.Get1D())
}

func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.RandomInUnitDisk(sampler)
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.imageWidth }

// Height returns the image height in pixels
func (c *Camera) Height() int { return c.imageHeight }

// SamplesPerPixel returns the effective number of samples per pixel
func (c *Camera) SamplesPerPixel() int { return c.samplesPerPixel }

// PixelSamplesScale returns the factor that averages a pixel's accumulated samples
func (c *Camera) PixelSamplesScale() float64 { return c.pixelSamplesScale }

// MaxDepth returns the configured bounce limit
func (c *Camera) MaxDepth() int { return c.config.MaxDepth }

// Background returns the color returned for rays that escape the scene
func (c *Camera) Background() core.Vec3 { return c.config.Background }

// Forward returns the unit viewing direction
func (c *Camera) Forward() core.Vec3 { return c.w.Negate() }

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig { return c.config }
