package game

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/rtsrig/engine/assets"
	"github.com/memmaker/rtsrig/engine/debugdraw"
	"github.com/memmaker/rtsrig/engine/input"
	"github.com/memmaker/rtsrig/engine/loop"
	"github.com/memmaker/rtsrig/engine/physics"
	"github.com/memmaker/rtsrig/engine/scene"
	"github.com/memmaker/rtsrig/engine/util"
	"github.com/memmaker/rtsrig/level"
	"github.com/pkg/errors"
)

const (
	dispatcherName = "pointer"
	cameraName     = "camera"
)

type pathEntry struct {
	follower *PathFollower
	debug    bool
}

// Session is one running level: the scene, its colliders, the input state
// and every behaviour, ticked in a fixed order by one loop.
type Session struct {
	Name       string
	Registry   *scene.Registry
	World      *physics.World
	Input      *input.State
	Loop       *loop.Loop
	Camera     *RTSCamera
	Dispatcher *PointerDispatcher

	paths       map[string]pathEntry
	selectables map[string]*SelectableTarget
	actors      map[string]*ScriptedActor
	animators   map[string]*FlagAnimator
}

// NewSession builds a level. Terrain files are resolved relative to baseDir.
func NewSession(def *level.Definition, baseDir string) (*Session, error) {
	s := &Session{
		Name:        def.Name,
		Registry:    scene.NewRegistry(),
		World:       physics.NewWorld(),
		Input:       input.NewState(),
		Loop:        loop.NewLoop(),
		paths:       make(map[string]pathEntry),
		selectables: make(map[string]*SelectableTarget),
		actors:      make(map[string]*ScriptedActor),
		animators:   make(map[string]*FlagAnimator),
	}

	terrain, err := loadTerrain(def.Terrain, baseDir)
	if err != nil {
		return nil, err
	}
	s.World.Add(terrain, physics.LayerTerrain, scene.NoHandle)

	for _, spec := range def.Nodes {
		transform := util.NewTransform(spec.Position.Mgl(), mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1})
		node := s.Registry.Spawn(spec.Name, transform)
		if spec.PickExtents != (level.Vec3{}) {
			s.World.Add(physics.NewTrackingBox(transform, spec.PickOffset.Mgl(), spec.PickExtents.Mgl()), physics.LayerSelectable, node.Handle)
		}
	}

	settings, err := CameraSettingsFromSpec(def.Camera)
	if err != nil {
		return nil, err
	}
	cameraTransform := util.NewTransformFromLookAt(def.Camera.Position.Mgl(), def.Camera.LookAt.Mgl(), util.WorldUp)
	cameraTransform.SetName(cameraName)
	lens := NewLens(def.Camera.FieldOfView, def.Camera.ScreenWidth, def.Camera.ScreenHeight)
	s.Camera = NewRTSCamera(cameraTransform, lens, settings, s.World, s.Input, s.Registry)
	s.Registry.OnRemove(s.Camera.OnNodeRemoved)

	s.Dispatcher = NewPointerDispatcher(s.Camera, s.World)
	for _, spec := range def.Selectables {
		node, ok := s.Registry.Find(spec.Node)
		if !ok {
			return nil, errors.Errorf("selectable: unknown node %q", spec.Node)
		}
		selectable := NewSelectableTarget(node, spec.ClickTime, s.Input, s.Camera)
		s.Dispatcher.Register(node.Handle, selectable)
		s.selectables[spec.Node] = selectable
	}

	for _, spec := range def.Paths {
		node, ok := s.Registry.Find(spec.Node)
		if !ok {
			return nil, errors.Errorf("path: unknown node %q", spec.Node)
		}
		points := make([]mgl32.Vec3, len(spec.Points))
		for i, p := range spec.Points {
			points[i] = p.Mgl()
		}
		follower, err := NewPathFollower(node.Transform, points, spec.Speed)
		if err != nil {
			return nil, err
		}
		s.paths[spec.Node] = pathEntry{follower: follower, debug: spec.Debug}
	}

	for _, spec := range def.Actors {
		path, ok := s.paths[spec.Node]
		if !ok {
			return nil, errors.Errorf("actor %q has no path", spec.Node)
		}
		animator := NewFlagAnimator(spec.Node)
		s.animators[spec.Node] = animator
		s.actors[spec.Node] = NewScriptedActor(actorName(spec.Node), path.follower, animator, s.Loop, spec.WaitTime)
	}

	// pointer first so clicks land before anything moves, camera last so it
	// sees the final positions of the frame
	s.Loop.Add(dispatcherName, s.Dispatcher)
	for _, spec := range def.Actors {
		s.Loop.Add(actorName(spec.Node), s.actors[spec.Node])
	}
	for _, spec := range def.Paths {
		s.Loop.Add(pathName(spec.Node), s.paths[spec.Node].follower)
	}
	s.Loop.Add(cameraName, s.Camera)

	util.LogSceneInfo(fmt.Sprintf("[Session] %s ready: %d nodes, %d paths, %d selectables, %d actors", def.Name, s.Registry.Len(), len(s.paths), len(s.selectables), len(s.actors)))
	return s, nil
}

func actorName(node string) string {
	return node + ".actor"
}

func pathName(node string) string {
	return node + ".path"
}

func loadTerrain(spec level.TerrainSpec, baseDir string) (physics.Collider, error) {
	file := spec.File
	if file != "" && !filepath.IsAbs(file) {
		file = filepath.Join(baseDir, file)
	}
	switch spec.Kind {
	case level.TerrainPlane:
		return physics.NewGroundPlane(spec.Height), nil
	case level.TerrainGLTF:
		mesh, err := assets.LoadTerrainGLTF(file)
		if err != nil {
			return nil, errors.Wrap(err, "terrain")
		}
		return mesh, nil
	case level.TerrainHeightmap:
		heightmap, err := assets.LoadHeightmap(file)
		if err != nil {
			return nil, errors.Wrap(err, "terrain")
		}
		return heightmap.Mesh(filepath.Base(file), spec.Origin.Mgl()), nil
	}
	return nil, errors.Errorf("unknown terrain kind %q", spec.Kind)
}

// CameraSettingsFromSpec converts the level's camera block.
func CameraSettingsFromSpec(spec level.CameraSpec) (RTSCameraSettings, error) {
	mask, err := physics.ParseLayerMask(spec.Mask)
	if err != nil {
		return RTSCameraSettings{}, errors.Wrap(err, "camera mask")
	}
	return RTSCameraSettings{
		Mask:            mask,
		BoundsRoot:      spec.BoundsRoot.Mgl(),
		BoundsSize:      mgl32.Vec2(spec.BoundsSize),
		ZoomSpeed:       spec.ZoomSpeed,
		ZoomTargetSpeed: spec.ZoomTargetSpeed,
		ZoomLimits:      mgl32.Vec2(spec.ZoomLimits),
		RotationSpeed:   spec.RotationSpeed,
		DebugViewport:   spec.DebugViewport,
		DebugBounds:     spec.DebugBounds,
	}, nil
}

// ApplyCameraSettings retunes the running camera without moving it.
func (s *Session) ApplyCameraSettings(spec level.CameraSpec) error {
	settings, err := CameraSettingsFromSpec(spec)
	if err != nil {
		return err
	}
	s.Camera.ApplySettings(settings)
	util.LogCameraInfo("[Session] camera settings reloaded")
	return nil
}

// Tick advances one frame. Pointer and button changes made on Input before
// the call are visible to every behaviour during the frame.
func (s *Session) Tick(deltaTime float64) {
	s.Input.BeginFrame(deltaTime)
	s.Loop.Tick(deltaTime)
	s.Input.EndFrame()
}

// Follow points the camera at the named node. An empty name stops following.
func (s *Session) Follow(name string) error {
	if name == "" {
		s.Camera.SetTarget(scene.NoHandle)
		return nil
	}
	node, ok := s.Registry.Find(name)
	if !ok {
		return errors.Errorf("no node named %q", name)
	}
	s.Camera.SetTarget(node.Handle)
	return nil
}

// RemoveNode deletes a node with its colliders and behaviours.
func (s *Session) RemoveNode(name string) bool {
	node, ok := s.Registry.Find(name)
	if !ok {
		return false
	}
	s.Loop.Remove(actorName(name))
	s.Loop.Remove(pathName(name))
	s.Dispatcher.Unregister(node.Handle)
	s.World.RemoveOwner(node.Handle)
	delete(s.actors, name)
	delete(s.paths, name)
	delete(s.selectables, name)
	delete(s.animators, name)
	s.Registry.Remove(node.Handle)
	return true
}

func (s *Session) Path(node string) (*PathFollower, bool) {
	entry, ok := s.paths[node]
	return entry.follower, ok
}

func (s *Session) Selectable(node string) (*SelectableTarget, bool) {
	selectable, ok := s.selectables[node]
	return selectable, ok
}

func (s *Session) Actor(node string) (*ScriptedActor, bool) {
	actor, ok := s.actors[node]
	return actor, ok
}

func (s *Session) Animator(node string) (*FlagAnimator, bool) {
	animator, ok := s.animators[node]
	return animator, ok
}

func (s *Session) DrawGizmos(d debugdraw.Drawer) {
	for _, node := range s.Registry.Nodes() {
		if entry, ok := s.paths[node.Name]; ok && entry.debug {
			entry.follower.DrawGizmos(d)
		}
		if s.Dispatcher.Hovered() == node.Handle {
			d.Sphere(node.Transform.GetPosition(), 1, debugdraw.Red)
		}
	}
	s.Camera.DrawGizmos(d)
}

// Snapshot renders the gizmos of the current frame top-down over the
// camera bounds.
func (s *Session) Snapshot(pixelsPerUnit float32) *image.RGBA {
	recorder := debugdraw.NewRecorder()
	s.DrawGizmos(recorder)
	bounds := s.Camera.Bounds()
	area := debugdraw.Area{MinX: bounds.X, MinZ: bounds.Z, Width: bounds.Width, Depth: bounds.Depth}
	return debugdraw.RenderTopDown(recorder.Commands(), area, pixelsPerUnit)
}

func (s *Session) Status() string {
	status := fmt.Sprintf("%s t=%0.2fs frame=%d %v zoom=%0.1f", s.Name, s.Loop.Clock(), s.Loop.Ticks(), s.Camera.Viewport(), s.Camera.ZoomDistance())
	if s.Camera.HasTarget() {
		if node, ok := s.Registry.Get(s.Camera.Target()); ok {
			status += " following " + node.Name
		}
	}
	return status
}
