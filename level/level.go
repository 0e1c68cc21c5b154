// Package level describes a playable scene in YAML: camera tuning, terrain,
// scene nodes and the behaviours attached to them.
package level

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Vec3 [3]float32

func (v Vec3) Mgl() mgl32.Vec3 {
	return mgl32.Vec3(v)
}

type Vec2 [2]float32

type Definition struct {
	Name        string           `yaml:"name"`
	Camera      CameraSpec       `yaml:"camera"`
	Terrain     TerrainSpec      `yaml:"terrain"`
	Nodes       []NodeSpec       `yaml:"nodes"`
	Paths       []PathSpec       `yaml:"paths"`
	Selectables []SelectableSpec `yaml:"selectables"`
	Actors      []ActorSpec      `yaml:"actors"`
}

type CameraSpec struct {
	Position        Vec3     `yaml:"position"`
	LookAt          Vec3     `yaml:"look_at"`
	FieldOfView     float32  `yaml:"field_of_view"`
	ScreenWidth     int      `yaml:"screen_width"`
	ScreenHeight    int      `yaml:"screen_height"`
	Mask            []string `yaml:"mask"`
	BoundsRoot      Vec3     `yaml:"bounds_root"`
	BoundsSize      Vec2     `yaml:"bounds_size"`
	// Zoom speeds multiply the scroll delta, which is a tenth of a unit
	// per wheel notch in the windowed app.
	ZoomSpeed       float32  `yaml:"zoom_speed"`
	ZoomTargetSpeed float32  `yaml:"zoom_target_speed"`
	ZoomLimits      Vec2     `yaml:"zoom_limits"`
	RotationSpeed   float32  `yaml:"rotation_speed"`
	DebugViewport   bool     `yaml:"debug_viewport"`
	DebugBounds     bool     `yaml:"debug_bounds"`
}

const (
	TerrainPlane     = "plane"
	TerrainGLTF      = "gltf"
	TerrainHeightmap = "heightmap"
)

type TerrainSpec struct {
	Kind   string  `yaml:"kind"`
	Height float32 `yaml:"height"`
	File   string  `yaml:"file"`
	Origin Vec3    `yaml:"origin"`
}

type NodeSpec struct {
	Name     string `yaml:"name"`
	Position Vec3   `yaml:"position"`
	// Pickable nodes get a box collider on the selectable layer.
	PickExtents Vec3 `yaml:"pick_extents"`
	PickOffset  Vec3 `yaml:"pick_offset"`
}

type PathSpec struct {
	Node   string  `yaml:"node"`
	Speed  float32 `yaml:"speed"`
	Points []Vec3  `yaml:"points"`
	Debug  bool    `yaml:"debug"`
}

type SelectableSpec struct {
	Node      string  `yaml:"node"`
	ClickTime float64 `yaml:"click_time"`
}

type ActorSpec struct {
	Node     string  `yaml:"node"`
	WaitTime float64 `yaml:"wait_time"`
}

// Load reads, defaults and validates a level file.
func Load(filename string) (*Definition, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "level: read %s", filename)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "level: %s", filename)
	}
	return def, nil
}

func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, errors.Wrap(err, "unmarshal")
	}
	def.applyDefaults()
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

func (d *Definition) applyDefaults() {
	c := &d.Camera
	if c.FieldOfView == 0 {
		c.FieldOfView = 60
	}
	if c.ScreenWidth == 0 {
		c.ScreenWidth = 1280
	}
	if c.ScreenHeight == 0 {
		c.ScreenHeight = 720
	}
	if c.ZoomSpeed == 0 {
		c.ZoomSpeed = 1
	}
	if c.ZoomTargetSpeed == 0 {
		c.ZoomTargetSpeed = 10
	}
	if c.RotationSpeed == 0 {
		c.RotationSpeed = 1
	}
	if len(c.Mask) == 0 {
		c.Mask = []string{"terrain"}
	}
	if d.Terrain.Kind == "" {
		d.Terrain.Kind = TerrainPlane
	}
	for i := range d.Paths {
		if d.Paths[i].Speed == 0 {
			d.Paths[i].Speed = 1
		}
	}
	for i := range d.Selectables {
		if d.Selectables[i].ClickTime == 0 {
			d.Selectables[i].ClickTime = 0.1
		}
	}
	for i := range d.Actors {
		if d.Actors[i].WaitTime == 0 {
			d.Actors[i].WaitTime = 5
		}
	}
}

func (d *Definition) Validate() error {
	var problems []string
	c := d.Camera
	if c.ZoomLimits[0] <= 0 || c.ZoomLimits[1] <= c.ZoomLimits[0] {
		problems = append(problems, fmt.Sprintf("camera.zoom_limits must satisfy 0 < min < max, got %v", c.ZoomLimits))
	}
	if c.BoundsSize[0] <= 0 || c.BoundsSize[1] <= 0 {
		problems = append(problems, fmt.Sprintf("camera.bounds_size must be positive, got %v", c.BoundsSize))
	}
	if c.FieldOfView <= 0 || c.FieldOfView >= 180 {
		problems = append(problems, fmt.Sprintf("camera.field_of_view out of range: %v", c.FieldOfView))
	}
	if c.Position == c.LookAt {
		problems = append(problems, "camera.look_at must differ from camera.position")
	}
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		problems = append(problems, fmt.Sprintf("camera.screen_width and camera.screen_height must be positive, got %dx%d", c.ScreenWidth, c.ScreenHeight))
	}
	switch d.Terrain.Kind {
	case TerrainPlane:
	case TerrainGLTF, TerrainHeightmap:
		if d.Terrain.File == "" {
			problems = append(problems, fmt.Sprintf("terrain kind %s needs a file", d.Terrain.Kind))
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown terrain kind %q", d.Terrain.Kind))
	}

	names := make(map[string]bool)
	for _, n := range d.Nodes {
		if n.Name == "" {
			problems = append(problems, "node without name")
			continue
		}
		if names[n.Name] {
			problems = append(problems, fmt.Sprintf("duplicate node %q", n.Name))
		}
		names[n.Name] = true
	}
	pathNodes := make(map[string]bool)
	for _, p := range d.Paths {
		if !names[p.Node] {
			problems = append(problems, fmt.Sprintf("path refers to unknown node %q", p.Node))
		}
		if len(p.Points) == 0 {
			problems = append(problems, fmt.Sprintf("path of %q has no waypoints", p.Node))
		}
		if p.Speed <= 0 {
			problems = append(problems, fmt.Sprintf("path speed of %q must be positive, got %v", p.Node, p.Speed))
		}
		pathNodes[p.Node] = true
	}
	for _, s := range d.Selectables {
		if !names[s.Node] {
			problems = append(problems, fmt.Sprintf("selectable refers to unknown node %q", s.Node))
		}
		if s.ClickTime <= 0 {
			problems = append(problems, fmt.Sprintf("click_time of %q must be positive, got %v", s.Node, s.ClickTime))
		}
	}
	for _, a := range d.Actors {
		if !pathNodes[a.Node] {
			problems = append(problems, fmt.Sprintf("actor %q needs a path on the same node", a.Node))
		}
		if a.WaitTime <= 0 {
			problems = append(problems, fmt.Sprintf("wait_time of %q must be positive, got %v", a.Node, a.WaitTime))
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func (d *Definition) Node(name string) (NodeSpec, bool) {
	for _, n := range d.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return NodeSpec{}, false
}
