package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewQuadsScene creates five colored quads arranged around the camera's view axis
func NewQuadsScene(opts Options) (*Scene, error) {
	leftRed := material.NewLambertian(core.NewVec3(1.0, 0.2, 0.2))
	backGreen := material.NewLambertian(core.NewVec3(0.2, 1.0, 0.2))
	rightBlue := material.NewLambertian(core.NewVec3(0.2, 0.2, 1.0))
	upperOrange := material.NewLambertian(core.NewVec3(1.0, 0.5, 0.0))
	lowerTeal := material.NewLambertian(core.NewVec3(0.2, 0.8, 0.8))

	world := geometry.NewHittableList(
		geometry.NewQuad(core.NewVec3(-3, -2, 5), core.NewVec3(0, 0, -4), core.NewVec3(0, 4, 0), leftRed),
		geometry.NewQuad(core.NewVec3(-2, -2, 0), core.NewVec3(4, 0, 0), core.NewVec3(0, 4, 0), backGreen),
		geometry.NewQuad(core.NewVec3(3, -2, 1), core.NewVec3(0, 0, 4), core.NewVec3(0, 4, 0), rightBlue),
		geometry.NewQuad(core.NewVec3(-2, 3, 1), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, 4), upperOrange),
		geometry.NewQuad(core.NewVec3(-2, -3, 5), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, -4), lowerTeal),
	)

	camera := wideCamera(core.NewVec3(0, 0, 9), core.NewVec3(0, 0, 0))
	camera.AspectRatio = 1.0
	camera.VFov = 80
	return finish("quads", world, camera), nil
}

// NewSimpleLightScene creates the Perlin spheres lit only by a glowing sphere and a quad light
func NewSimpleLightScene(opts Options) (*Scene, error) {
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, opts.sampler()))
	light := material.NewDiffuseLight(core.NewVec3(4, 4, 4))

	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
		geometry.NewSphere(core.NewVec3(0, 7, 0), 2, light),
		geometry.NewQuad(core.NewVec3(3, 1, -2), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), light),
	)

	camera := wideCamera(core.NewVec3(26, 3, 6), core.NewVec3(0, 2, 0))
	camera.Background = core.Vec3{}
	return finish("simple-light", world, camera), nil
}
