// Package loop drives behaviours one tick at a time in a fixed order and
// runs one-shot delayed tasks on the same clock.
package loop

import (
	"fmt"

	"github.com/memmaker/rtsrig/engine/util"
)

type Component interface {
	Update(deltaTime float64)
}

type Starter interface {
	Start()
}

type Toggler interface {
	Enabled() bool
}

type Destroyer interface {
	Destroy()
}

type entry struct {
	name      string
	component Component
	started   bool
}

// Loop updates components in registration order. Each Tick:
// pending Start calls, Update of every enabled component, then due tasks.
type Loop struct {
	entries []*entry
	tasks   []*Task
	clock   float64
	ticks   uint64
	timer   *util.Timer
}

func NewLoop() *Loop {
	return &Loop{timer: util.NewTimer()}
}

func (l *Loop) Add(name string, component Component) {
	for _, e := range l.entries {
		if e.name == name {
			util.LogLoopWarning(fmt.Sprintf("[Loop] component %s registered twice", name))
		}
	}
	l.entries = append(l.entries, &entry{name: name, component: component})
}

// Remove destroys the component and cancels every task it scheduled.
func (l *Loop) Remove(name string) {
	for i, e := range l.entries {
		if e.name != name {
			continue
		}
		l.entries = append(l.entries[:i], l.entries[i+1:]...)
		l.CancelOwner(name)
		if d, ok := e.component.(Destroyer); ok {
			d.Destroy()
		}
		return
	}
}

func (l *Loop) Names() []string {
	names := make([]string, len(l.entries))
	for i, e := range l.entries {
		names[i] = e.name
	}
	return names
}

func (l *Loop) Clock() float64 {
	return l.clock
}

func (l *Loop) Ticks() uint64 {
	return l.ticks
}

func (l *Loop) Tick(deltaTime float64) {
	l.clock += deltaTime
	l.ticks++

	for _, e := range l.entries {
		if e.started {
			continue
		}
		e.started = true
		if s, ok := e.component.(Starter); ok {
			s.Start()
		}
	}

	for _, e := range l.entries {
		if t, ok := e.component.(Toggler); ok && !t.Enabled() {
			continue
		}
		stop := l.timer.Start(e.name)
		e.component.Update(deltaTime)
		stop()
	}

	l.runDueTasks()
}

// Stats reports the update durations of every component.
func (l *Loop) Stats() string {
	return l.timer.String()
}
