package game

import (
	"fmt"

	"github.com/memmaker/rtsrig/engine/loop"
	"github.com/memmaker/rtsrig/engine/util"
)

// PathToggle is the part of a PathFollower the actor controls.
type PathToggle interface {
	SetEnabled(enabled bool)
}

// ScriptedActor holds its path still for waitTime seconds after start,
// then starts the walk animation and lets the path run.
type ScriptedActor struct {
	name      string
	path      PathToggle
	animator  Animator
	scheduler loop.Scheduler
	waitTime  float64
	task      *loop.Task
}

func NewScriptedActor(name string, path PathToggle, animator Animator, scheduler loop.Scheduler, waitTime float64) *ScriptedActor {
	return &ScriptedActor{
		name:      name,
		path:      path,
		animator:  animator,
		scheduler: scheduler,
		waitTime:  waitTime,
	}
}

func (a *ScriptedActor) Start() {
	a.path.SetEnabled(false)
	a.task = a.scheduler.After(a.name, a.waitTime, a.startWalking)
	util.LogActorInfo(fmt.Sprintf("[Actor] %s waits %0.1fs", a.name, a.waitTime))
}

func (a *ScriptedActor) startWalking() {
	a.animator.SetBool(WalkAnimFlag, true)
	a.path.SetEnabled(true)
	util.LogActorInfo(fmt.Sprintf("[Actor] %s starts walking", a.name))
}

func (a *ScriptedActor) Update(deltaTime float64) {}

// Destroy cancels the pending start so it never touches a dead actor.
func (a *ScriptedActor) Destroy() {
	a.task.Cancel()
}

func (a *ScriptedActor) Waiting() bool {
	return a.task != nil && !a.task.Done() && !a.task.Cancelled()
}
