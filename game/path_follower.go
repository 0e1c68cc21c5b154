package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/rtsrig/engine/debugdraw"
	"github.com/memmaker/rtsrig/engine/util"
	"github.com/pkg/errors"
)

// waypointTolerance is how close the follower must get before it moves on.
const waypointTolerance = 0.1

// PathFollower walks a transform around a closed loop of waypoints at
// constant speed, facing the waypoint it is heading to.
type PathFollower struct {
	transform *util.Transform
	points    []mgl32.Vec3
	speed     float32
	enabled   bool

	start    mgl32.Vec3
	end      mgl32.Vec3
	index    int
	progress float64
}

func NewPathFollower(transform *util.Transform, points []mgl32.Vec3, speed float32) (*PathFollower, error) {
	if transform == nil {
		return nil, errors.New("path follower needs a transform")
	}
	if len(points) == 0 {
		return nil, errors.Errorf("path for %s has no waypoints", transform.GetName())
	}
	return &PathFollower{
		transform: transform,
		points:    append([]mgl32.Vec3(nil), points...),
		speed:     speed,
		enabled:   true,
	}, nil
}

func (p *PathFollower) SetEnabled(enabled bool) {
	p.enabled = enabled
}

func (p *PathFollower) Enabled() bool {
	return p.enabled
}

func (p *PathFollower) Start() {
	p.index = 0
	p.progress = 0
	p.start = p.transform.GetPosition()
	p.end = p.points[0]
	p.transform.SetLookAt(p.end, util.WorldUp)
	util.LogPathDebug(fmt.Sprintf("[PathFollower] %s starts towards %v", p.transform.GetName(), p.end))
}

func (p *PathFollower) Update(deltaTime float64) {
	p.progress += deltaTime * float64(p.speed)

	length := float64(p.end.Sub(p.start).Len())
	if length <= waypointTolerance {
		p.transform.SetPosition(p.end)
	} else {
		factor := util.Clamp(p.progress/length, 0, 1)
		p.transform.SetPosition(util.Lerp3(p.start, p.end, factor))
		p.transform.SetLookAt(p.end, util.WorldUp)
	}

	if p.transform.GetPosition().Sub(p.end).Len() < waypointTolerance {
		p.advance()
	}
}

func (p *PathFollower) advance() {
	p.start = p.end
	p.index = (p.index + 1) % len(p.points)
	p.end = p.points[p.index]
	p.progress = 0
	util.LogPathDebug(fmt.Sprintf("[PathFollower] %s heads to waypoint %d %v", p.transform.GetName(), p.index, p.end))
}

// Target is the index of the waypoint currently heading to.
func (p *PathFollower) Target() int {
	return p.index
}

func (p *PathFollower) Points() []mgl32.Vec3 {
	return p.points
}

func (p *PathFollower) DrawGizmos(d debugdraw.Drawer) {
	for i, point := range p.points {
		d.Sphere(point, 0.4, debugdraw.White)
		if i > 0 {
			d.Line(p.points[i-1], point, debugdraw.Green)
		}
	}
	if len(p.points) > 1 {
		d.Line(p.points[len(p.points)-1], p.points[0], debugdraw.Blue)
	}
}
