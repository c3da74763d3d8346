package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

const (
	finalBoxesPerSide = 20
	finalSphereCount  = 1000
)

// NewFinalScene creates the showcase scene: a field of boxes, a moving sphere,
// glass, metal and subsurface spheres, global fog, the earth, a noise sphere
// and a rotated cluster of small spheres under a single ceiling light.
func NewFinalScene(opts Options) (*Scene, error) {
	sampler := opts.sampler()

	earth, err := earthMaterial()
	if err != nil {
		return nil, err
	}

	groundGreen := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	boxes := geometry.NewHittableList()
	for i := 0; i < finalBoxesPerSide; i++ {
		for j := 0; j < finalBoxesPerSide; j++ {
			const w = 100.0
			x0 := -1000.0 + float64(i)*w
			z0 := -1000.0 + float64(j)*w
			y1 := sampler.GetRange(1, 101)
			boxes.Add(geometry.NewBox(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), groundGreen))
		}
	}

	world := geometry.NewHittableList(geometry.NewBVHFromList(boxes))

	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))
	world.Add(geometry.NewQuad(core.NewVec3(123, 554, 147), core.NewVec3(300, 0, 0), core.NewVec3(0, 0, 265), light))

	center1 := core.NewVec3(400, 400, 200)
	center2 := center1.Add(core.NewVec3(30, 0, 0))
	world.Add(geometry.NewMovingSphere(center1, center2, 50, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))))

	glass := material.NewDielectric(1.5)
	world.Add(geometry.NewSphere(core.NewVec3(260, 150, 45), 50, glass))
	world.Add(geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)))

	// Glass shell filled with dense white fog
	boundary := geometry.NewSphere(core.NewVec3(360, 150, 145), 75, glass)
	world.Add(boundary)
	world.Add(geometry.NewConstantMediumColor(boundary, 0.2, core.NewVec3(1, 1, 1)))

	mist := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, glass)
	world.Add(geometry.NewConstantMediumColor(mist, 0.0001, core.NewVec3(1, 1, 1)))

	world.Add(geometry.NewSphere(core.NewVec3(400, 200, 400), 100, earth))

	marble := material.NewTexturedLambertian(material.NewNoiseTexture(0.2, sampler))
	world.Add(geometry.NewSphere(core.NewVec3(220, 280, 300), 80, marble))

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	cluster := geometry.NewHittableList()
	for n := 0; n < finalSphereCount; n++ {
		cluster.Add(geometry.NewSphere(core.RandomVec3Range(sampler, 0, 165), 10, white))
	}
	world.Add(geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBVHFromList(cluster), 15),
		core.NewVec3(-100, 270, 395),
	))

	camera := cornellCamera(core.NewVec3(478, 278, -600), 400, 250, 4)
	return finish("final-scene", world, camera), nil
}
