package scene

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/xerrors"
)

// ErrUnknownScene is returned by Build for IDs that are not registered
var ErrUnknownScene = xerrors.New("unknown scene")

// BuildFunc constructs a scene
type BuildFunc func(opts Options) (*Scene, error)

// SceneInfo describes a registered scene
type SceneInfo struct {
	ID          string // Unique identifier, e.g. "cornell-box"
	DisplayName string // Human-readable name
	Description string // One-line summary
	Group       string // Grouping category
	NeedsImages bool   // Whether the scene loads texture images
}

type entry struct {
	info  SceneInfo
	build BuildFunc
}

var registry = map[string]entry{}

// Register adds a scene under info.ID, deriving a display name when none is given
func Register(info SceneInfo, build BuildFunc) {
	if info.ID == "" {
		panic("scene: Register with empty ID")
	}
	if _, dup := registry[info.ID]; dup {
		panic(fmt.Sprintf("scene: Register called twice for %q", info.ID))
	}
	if info.DisplayName == "" {
		info.DisplayName = titleCase(info.ID)
	}
	registry[info.ID] = entry{info: info, build: build}
}

func init() {
	Register(SceneInfo{ID: "bouncing-spheres", Group: "Spheres",
		Description: "Random field of moving, metal and glass spheres on a checkered ground"}, NewBouncingSpheresScene)
	Register(SceneInfo{ID: "checkered-spheres", Group: "Spheres",
		Description: "Two large checker-textured spheres"}, NewCheckeredSpheresScene)
	Register(SceneInfo{ID: "earth", Group: "Spheres", NeedsImages: true,
		Description: "Image-textured globe"}, NewEarthScene)
	Register(SceneInfo{ID: "perlin-spheres", Group: "Spheres",
		Description: "Marble Perlin noise spheres"}, NewPerlinSpheresScene)
	Register(SceneInfo{ID: "quads", Group: "Quads",
		Description: "Five colored quads facing the camera"}, NewQuadsScene)
	Register(SceneInfo{ID: "simple-light", Group: "Lights",
		Description: "Perlin spheres lit by an emissive sphere and quad"}, NewSimpleLightScene)
	Register(SceneInfo{ID: "cornell-box", Group: "Lights",
		Description: "Cornell box with two rotated blocks"}, NewCornellBoxScene)
	Register(SceneInfo{ID: "cornell-smoke", Group: "Lights",
		Description: "Cornell box with blocks of black and white smoke"}, NewCornellSmokeScene)
	Register(SceneInfo{ID: "final-scene", Group: "Showcase", NeedsImages: true,
		Description: "Every feature at once: boxes, fog, glass, noise, textures and instancing"}, NewFinalScene)
}

// ListScenes returns every registered scene sorted by group, then ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(registry))
	for _, e := range registry {
		scenes = append(scenes, e.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		if scenes[i].Group != scenes[j].Group {
			return scenes[i].Group < scenes[j].Group
		}
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Lookup returns the registered description of id
func Lookup(id string) (SceneInfo, bool) {
	e, ok := registry[id]
	return e.info, ok
}

// Build constructs the scene registered as id. Underscores are accepted in
// place of hyphens, so "cornell_box" finds "cornell-box".
func Build(id string, opts Options) (*Scene, error) {
	e, ok := registry[strings.ReplaceAll(id, "_", "-")]
	if !ok {
		return nil, xerrors.Errorf("scene %q: %w", id, ErrUnknownScene)
	}
	s, err := e.build(opts)
	if err != nil {
		return nil, xerrors.Errorf("while building scene %q: %w", e.info.ID, err)
	}
	return s, nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-smoke" -> "Cornell Smoke"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
