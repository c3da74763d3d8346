package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name   string
	World  geometry.Hittable     // Root of the scene, normally a BVH
	Camera renderer.CameraConfig // Camera settings the scene was designed for
	Stats  geometry.BVHStats     // Shape of the top-level BVH
}

// Options controls scene construction
type Options struct {
	Seed int64 // Seed for the scene's random placement and noise
}

// DefaultSeed is used when the caller does not pick one
const DefaultSeed = 42

// sampler returns the deterministic random source a scene is built from
func (o Options) sampler() core.Sampler {
	return core.NewSeededSampler(o.Seed)
}

// finish wraps world's objects in a BVH and records its statistics
func finish(name string, world *geometry.HittableList, camera renderer.CameraConfig) *Scene {
	bvh := geometry.NewBVHFromList(world)
	stats := bvh.Stats()
	glog.Infof("Built scene %q: %s BVH leaves, %s interior nodes, depth %d",
		name, humanize.Comma(int64(stats.Primitives)), humanize.Comma(int64(stats.InteriorNodes)), stats.MaxDepth)

	return &Scene{
		Name:   name,
		World:  bvh,
		Camera: camera,
		Stats:  stats,
	}
}

// skyBlue is the background of the daylight scenes
var skyBlue = core.NewVec3(0.7, 0.8, 1.0)

// wideCamera returns the 16:9 camera shared by the outdoor sphere scenes
func wideCamera(lookFrom, lookAt core.Vec3) renderer.CameraConfig {
	return renderer.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      1200,
		SamplesPerPixel: 10,
		MaxDepth:        5,
		Background:      skyBlue,
		VFov:            20,
		LookFrom:        lookFrom,
		LookAt:          lookAt,
		Up:              core.NewVec3(0, 1, 0),
		FocusDistance:   10,
	}
}

// cornellCamera returns the square camera looking into the 555-unit Cornell box
func cornellCamera(lookFrom core.Vec3, width, samples, depth int) renderer.CameraConfig {
	return renderer.CameraConfig{
		AspectRatio:     1.0,
		ImageWidth:      width,
		SamplesPerPixel: samples,
		MaxDepth:        depth,
		VFov:            40,
		LookFrom:        lookFrom,
		LookAt:          core.NewVec3(278, 278, 0),
		Up:              core.NewVec3(0, 1, 0),
		FocusDistance:   10,
	}
}
