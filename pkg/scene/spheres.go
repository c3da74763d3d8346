package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"golang.org/x/xerrors"
)

// EarthImage is the texture file used for the globe in the earth and final scenes
const EarthImage = "earthmap.jpg"

func groundChecker() material.Texture {
	return material.NewCheckerColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
}

// NewBouncingSpheresScene creates the random sphere field: small diffuse
// spheres that bounce during the exposure, metal and glass spheres, and
// three large feature spheres on a checkered ground.
func NewBouncingSpheresScene(opts Options) (*Scene, error) {
	sampler := opts.sampler()
	world := geometry.NewHittableList()

	ground := material.NewTexturedLambertian(groundChecker())
	world.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	keepClear := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(float64(a)+0.9*sampler.Get1D(), 0.2, float64(b)+0.9*sampler.Get1D())

			if center.Subtract(keepClear).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := core.RandomVec3(sampler).MultiplyVec(core.RandomVec3(sampler))
				center2 := center.Add(core.NewVec3(0, sampler.Get1D(), 0))
				world.Add(geometry.NewMovingSphere(center, center2, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := core.RandomVec3Range(sampler, 0.5, 1)
				fuzz := sampler.GetRange(0, 0.5)
				world.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				world.Add(geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	world.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)))
	world.Add(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))))
	world.Add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)))

	camera := wideCamera(core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0))
	camera.DefocusAngle = 0.6
	return finish("bouncing-spheres", world, camera), nil
}

// NewCheckeredSpheresScene creates two huge checkered spheres touching at the origin
func NewCheckeredSpheresScene(opts Options) (*Scene, error) {
	checker := material.NewTexturedLambertian(groundChecker())
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
	)

	camera := wideCamera(core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0))
	return finish("checkered-spheres", world, camera), nil
}

// earthMaterial loads the globe texture; a missing image fails the scene
func earthMaterial() (material.Material, error) {
	img, err := loaders.FindImage(EarthImage)
	if err != nil {
		return nil, xerrors.Errorf("while loading earth texture: %w", err)
	}
	return material.NewTexturedLambertian(img.Texture()), nil
}

// NewEarthScene creates a single image-textured globe
func NewEarthScene(opts Options) (*Scene, error) {
	earth, err := earthMaterial()
	if err != nil {
		return nil, err
	}
	world := geometry.NewHittableList(geometry.NewSphere(core.NewVec3(0, 0, 0), 2, earth))

	camera := renderer.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Background:      skyBlue,
		VFov:            20,
		LookFrom:        core.NewVec3(0, 0, 12),
		LookAt:          core.NewVec3(0, 0, 0),
		Up:              core.NewVec3(0, 1, 0),
		FocusDistance:   10,
	}
	return finish("earth", world, camera), nil
}

// NewPerlinSpheresScene creates a marbled sphere resting on a marbled ground sphere
func NewPerlinSpheresScene(opts Options) (*Scene, error) {
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, opts.sampler()))
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	)

	camera := wideCamera(core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0))
	return finish("perlin-spheres", world, camera), nil
}
