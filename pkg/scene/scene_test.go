package scene

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"golang.org/x/xerrors"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-smoke", "Cornell Smoke"},
		{"bouncing_spheres", "Bouncing Spheres"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestListScenes(t *testing.T) {
	scenes := ListScenes()
	if len(scenes) != 9 {
		t.Fatalf("Expected 9 registered scenes, got %d", len(scenes))
	}
	for i := 1; i < len(scenes); i++ {
		a, b := scenes[i-1], scenes[i]
		if a.Group > b.Group || (a.Group == b.Group && a.ID >= b.ID) {
			t.Errorf("Scenes not sorted: %q/%q before %q/%q", a.Group, a.ID, b.Group, b.ID)
		}
	}

	info, ok := Lookup("cornell-box")
	if !ok {
		t.Fatal("Expected cornell-box to be registered")
	}
	if info.DisplayName != "Cornell Box" {
		t.Errorf("Expected derived display name \"Cornell Box\", got %q", info.DisplayName)
	}
}

func TestBuild_UnknownScene(t *testing.T) {
	_, err := Build("no-such-scene", Options{})
	if !xerrors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

// TestBuild_ViewRayHits checks every scene that needs no images produces a world
// the camera's central ray actually hits
func TestBuild_ViewRayHits(t *testing.T) {
	for _, info := range ListScenes() {
		if info.NeedsImages {
			continue
		}
		t.Run(info.ID, func(t *testing.T) {
			s, err := Build(info.ID, Options{Seed: DefaultSeed})
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if s.Name != info.ID {
				t.Errorf("Expected scene name %q, got %q", info.ID, s.Name)
			}
			if s.Camera.ImageWidth <= 0 || s.Camera.AspectRatio <= 0 || s.Camera.MaxDepth <= 0 {
				t.Errorf("Implausible camera %+v", s.Camera)
			}

			cam := s.Camera
			ray := core.NewRay(cam.LookFrom, cam.LookAt.Subtract(cam.LookFrom))
			sampler := core.NewSeededSampler(3)
			if _, hit := s.World.Hit(ray, core.NewInterval(0.001, math.Inf(1)), sampler); !hit {
				t.Errorf("Central view ray misses the scene")
			}
		})
	}
}

func TestBuild_AcceptsUnderscores(t *testing.T) {
	s, err := Build("cornell_box", Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if s.Name != "cornell-box" {
		t.Errorf("Expected cornell-box, got %q", s.Name)
	}
}

func TestBouncingSpheres_SeedIsReproducible(t *testing.T) {
	a, err := NewBouncingSpheresScene(Options{Seed: 5})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	b, err := NewBouncingSpheresScene(Options{Seed: 5})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if a.Stats != b.Stats {
		t.Errorf("Same seed built different worlds: %+v vs %+v", a.Stats, b.Stats)
	}
	if a.World.BoundingBox() != b.World.BoundingBox() {
		t.Errorf("Same seed built different bounds")
	}
	// Ground, three feature spheres, and most of the 22x22 grid
	if a.Stats.Primitives < 400 {
		t.Errorf("Expected a dense sphere field, got %d primitives", a.Stats.Primitives)
	}
}

func TestCornellBox_Bounds(t *testing.T) {
	s, err := NewCornellBoxScene(Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	bbox := s.World.BoundingBox()
	if bbox.X.Min > 0 || bbox.X.Max < cornellBoxSize || bbox.Y.Max < cornellBoxSize || bbox.Z.Max < cornellBoxSize {
		t.Errorf("Cornell box bounds %v do not enclose the room", bbox)
	}
	if bbox.X.Min < -0.01 || bbox.X.Max > cornellBoxSize+0.01 {
		t.Errorf("Cornell box bounds %v larger than the room", bbox)
	}
}

func TestImageScenes_MissingTexture(t *testing.T) {
	t.Setenv(loaders.ImagesEnv, t.TempDir())
	for _, id := range []string{"earth", "final-scene"} {
		t.Run(id, func(t *testing.T) {
			_, err := Build(id, Options{})
			if !xerrors.Is(err, loaders.ErrImageNotFound) {
				t.Errorf("Expected ErrImageNotFound, got %v", err)
			}
		})
	}
}

func TestImageScenes_WithTexture(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		img.Set(x, 0, color.RGBA{R: 20, G: 60, B: 200, A: 255})
		img.Set(x, 1, color.RGBA{R: 40, G: 160, B: 40, A: 255})
	}
	// The decoder sniffs the format, so PNG data under the .jpg name is fine
	f, err := os.Create(filepath.Join(dir, EarthImage))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	f.Close()
	t.Setenv(loaders.ImagesEnv, dir)

	s, err := Build("earth", Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	ray := core.NewRay(s.Camera.LookFrom, s.Camera.LookAt.Subtract(s.Camera.LookFrom))
	rec, hit := s.World.Hit(ray, core.NewInterval(0.001, math.Inf(1)), core.NewSeededSampler(1))
	if !hit {
		t.Fatal("Expected to hit the globe")
	}
	if math.Abs(rec.Point.Z-2) > 1e-9 {
		t.Errorf("Expected hit on the near pole at z=2, got %v", rec.Point)
	}

	final, err := Build("final-scene", Options{Seed: DefaultSeed})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if final.Camera.ImageWidth != 400 {
		t.Errorf("Unexpected final scene width %d", final.Camera.ImageWidth)
	}
}
