package geometry

import (
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// BVHNode is an interior node of a Bounding Volume Hierarchy. Leaves are the
// primitives themselves; a single-object range stores it in both children.
type BVHNode struct {
	Left  Hittable
	Right Hittable
	bbox  core.AABB
}

// NewBVHNode constructs a BVH over objects. The input slice is not modified.
func NewBVHNode(objects []Hittable) *BVHNode {
	if len(objects) == 0 {
		empty := NewHittableList()
		return &BVHNode{Left: empty, Right: empty, bbox: core.EmptyAABB()}
	}

	// Work on a copy so callers can keep using their slice concurrently
	objectsCopy := make([]Hittable, len(objects))
	copy(objectsCopy, objects)

	return buildBVH(objectsCopy, 0, len(objectsCopy))
}

// NewBVHFromList constructs a BVH over the objects of a list
func NewBVHFromList(list *HittableList) *BVHNode {
	return NewBVHNode(list.Objects)
}

// buildBVH recursively splits objects[start:end] at the median along the
// longest axis of the range's bounding box
func buildBVH(objects []Hittable, start, end int) *BVHNode {
	// The box is computed over the whole range before any reordering
	bbox := objects[start].BoundingBox()
	for i := start + 1; i < end; i++ {
		bbox = core.CombineAABB(bbox, objects[i].BoundingBox())
	}

	axis := bbox.LongestAxis()
	node := &BVHNode{bbox: bbox}

	switch span := end - start; span {
	case 1:
		node.Left = objects[start]
		node.Right = objects[start]
	case 2:
		node.Left = objects[start]
		node.Right = objects[start+1]
	default:
		sortByAxis(objects[start:end], axis)
		mid := start + span/2
		node.Left = buildBVH(objects, start, mid)
		node.Right = buildBVH(objects, mid, end)
	}

	return node
}

// sortByAxis orders objects by the minimum of their bounding box along axis
func sortByAxis(objects []Hittable, axis int) {
	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].BoundingBox().AxisInterval(axis).Min <
			objects[j].BoundingBox().AxisInterval(axis).Min
	})
}

// Hit tests the node box, then the left child over the full interval and the
// right child over the interval shortened to the left hit. When the right
// child reports a hit it is returned, otherwise the left hit.
func (n *BVHNode) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	if !n.bbox.Hit(ray, rayT) {
		return nil, false
	}

	hitLeft, okLeft := n.Left.Hit(ray, rayT, sampler)

	rightMax := rayT.Max
	if okLeft {
		rightMax = hitLeft.T
	}
	if hitRight, okRight := n.Right.Hit(ray, core.NewInterval(rayT.Min, rightMax), sampler); okRight {
		return hitRight, true
	}

	return hitLeft, okLeft
}

// BoundingBox returns the box enclosing every object below this node
func (n *BVHNode) BoundingBox() core.AABB {
	return n.bbox
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	InteriorNodes int
	Primitives    int // Leaf references, counting single-object nodes twice
	MaxDepth      int
}

// Stats walks the hierarchy and collects structural statistics
func (n *BVHNode) Stats() BVHStats {
	var stats BVHStats
	n.collectStats(0, &stats)
	return stats
}

// collectStats recursively collects statistics about the BVH
func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.InteriorNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	for _, child := range []Hittable{n.Left, n.Right} {
		if node, ok := child.(*BVHNode); ok {
			node.collectStats(depth+1, stats)
		} else {
			stats.Primitives++
		}
	}
}
