package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// cornellBoxSize is the edge length of the Cornell box in world units
const cornellBoxSize = 555.0

type cornellMaterials struct {
	red, white, green material.Material
}

func newCornellMaterials() cornellMaterials {
	return cornellMaterials{
		red:   material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05)),
		white: material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73)),
		green: material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15)),
	}
}

// cornellWalls returns the colored side walls, floor and back wall
func cornellWalls(m cornellMaterials) []geometry.Hittable {
	s := cornellBoxSize
	return []geometry.Hittable{
		geometry.NewQuad(core.NewVec3(s, 0, 0), core.NewVec3(0, s, 0), core.NewVec3(0, 0, s), m.green),
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, s, 0), core.NewVec3(0, 0, s), m.red),
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(s, 0, 0), core.NewVec3(0, 0, s), m.white),
		geometry.NewQuad(core.NewVec3(0, 0, s), core.NewVec3(s, 0, 0), core.NewVec3(0, s, 0), m.white),
	}
}

// cornellBlocks returns the tall and short boxes, rotated and placed on the floor
func cornellBlocks(white material.Material) (tall, short geometry.Hittable) {
	tallBox := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white)
	tall = geometry.NewTranslate(geometry.NewRotateY(tallBox, 15), core.NewVec3(265, 0, 295))

	shortBox := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white)
	short = geometry.NewTranslate(geometry.NewRotateY(shortBox, -18), core.NewVec3(130, 0, 65))
	return tall, short
}

// NewCornellBoxScene creates the classic Cornell box with two rotated blocks
func NewCornellBoxScene(opts Options) (*Scene, error) {
	m := newCornellMaterials()
	light := material.NewDiffuseLight(core.NewVec3(15, 15, 15))

	world := geometry.NewHittableList(cornellWalls(m)...)
	world.Add(geometry.NewQuad(core.NewVec3(343, 554, 332), core.NewVec3(-130, 0, 0), core.NewVec3(0, 0, -105), light))
	world.Add(geometry.NewQuad(
		core.NewVec3(cornellBoxSize, cornellBoxSize, cornellBoxSize),
		core.NewVec3(-cornellBoxSize, 0, 0),
		core.NewVec3(0, 0, -cornellBoxSize),
		m.white,
	))

	tall, short := cornellBlocks(m.white)
	world.Add(tall)
	world.Add(short)

	camera := cornellCamera(core.NewVec3(278, 278, -800), 600, 100, 5)
	return finish("cornell-box", world, camera), nil
}

// NewCornellSmokeScene replaces the Cornell blocks with black and white smoke
func NewCornellSmokeScene(opts Options) (*Scene, error) {
	m := newCornellMaterials()
	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))

	world := geometry.NewHittableList(cornellWalls(m)...)
	world.Add(geometry.NewQuad(core.NewVec3(113, 554, 127), core.NewVec3(330, 0, 0), core.NewVec3(0, 0, 305), light))
	world.Add(geometry.NewQuad(core.NewVec3(0, cornellBoxSize, 0), core.NewVec3(cornellBoxSize, 0, 0), core.NewVec3(0, 0, cornellBoxSize), m.white))

	tall, short := cornellBlocks(m.white)
	world.Add(geometry.NewConstantMediumColor(tall, 0.01, core.NewVec3(0, 0, 0)))
	world.Add(geometry.NewConstantMediumColor(short, 0.01, core.NewVec3(1, 1, 1)))

	camera := cornellCamera(core.NewVec3(278, 278, -800), 600, 200, 50)
	return finish("cornell-smoke", world, camera), nil
}
