package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/rtsrig/engine/loop"
	"github.com/memmaker/rtsrig/engine/util"
)

func newActorRig(t *testing.T, waitTime float64) (*loop.Loop, *ScriptedActor, *PathFollower, *FlagAnimator, *util.Transform) {
	t.Helper()
	transform := util.NewDefaultTransform("robot")
	path, err := NewPathFollower(transform, []mgl32.Vec3{{10, 0, 0}, {0, 0, 0}}, 1)
	if err != nil {
		t.Fatal(err)
	}
	animator := NewFlagAnimator("robot")
	l := loop.NewLoop()
	actor := NewScriptedActor("robot.actor", path, animator, l, waitTime)
	l.Add("robot.actor", actor)
	l.Add("robot.path", path)
	return l, actor, path, animator, transform
}

func TestActorWaitsThenWalks(t *testing.T) {
	l, actor, path, animator, transform := newActorRig(t, 1)

	for i := 0; i < 9; i++ {
		l.Tick(0.1)
	}
	if path.Enabled() || animator.Bool(WalkAnimFlag) {
		t.Fatalf("actor started walking before the wait was over")
	}
	if transform.GetPosition() != (mgl32.Vec3{}) {
		t.Fatalf("robot moved while waiting: %v", transform.GetPosition())
	}
	if !actor.Waiting() {
		t.Errorf("actor should report waiting")
	}

	l.Tick(0.1)
	l.Tick(0.2)
	if !path.Enabled() || !animator.Bool(WalkAnimFlag) {
		t.Fatalf("actor should walk after the wait")
	}
	l.Tick(0.5)
	if transform.GetPosition().X() <= 0 {
		t.Errorf("robot did not move after the wait: %v", transform.GetPosition())
	}
	if l.PendingTasks() != 0 {
		t.Errorf("the start task must run once, %d pending", l.PendingTasks())
	}
}

func TestDestroyedActorNeverFires(t *testing.T) {
	l, _, path, animator, _ := newActorRig(t, 1)
	l.Tick(0.1)
	l.Remove("robot.actor")

	for i := 0; i < 20; i++ {
		l.Tick(0.1)
	}
	if path.Enabled() || animator.Bool(WalkAnimFlag) {
		t.Errorf("task of a destroyed actor still ran")
	}
}
