package loop

import (
	"fmt"

	"github.com/memmaker/rtsrig/engine/util"
)

// Task is a one-shot callback due at a point on the loop clock.
type Task struct {
	owner     string
	due       float64
	fn        func()
	cancelled bool
	done      bool
}

func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.cancelled = true
}

func (t *Task) Cancelled() bool {
	return t.cancelled
}

func (t *Task) Done() bool {
	return t.done
}

// Scheduler is what components use to defer work.
type Scheduler interface {
	After(owner string, delay float64, fn func()) *Task
}

// After runs fn once, on the first tick whose clock reaches now + delay.
func (l *Loop) After(owner string, delay float64, fn func()) *Task {
	task := &Task{owner: owner, due: l.clock + delay, fn: fn}
	l.tasks = append(l.tasks, task)
	util.LogLoopDebug(fmt.Sprintf("[Loop] %s scheduled a task in %0.2fs", owner, delay))
	return task
}

func (l *Loop) CancelOwner(owner string) {
	for _, task := range l.tasks {
		if task.owner == owner {
			task.Cancel()
		}
	}
}

func (l *Loop) PendingTasks() int {
	count := 0
	for _, task := range l.tasks {
		if !task.cancelled && !task.done {
			count++
		}
	}
	return count
}

func (l *Loop) runDueTasks() {
	// tasks scheduled by a running task wait for the next tick
	count := len(l.tasks)
	for i := 0; i < count; i++ {
		task := l.tasks[i]
		if task.cancelled || task.done || task.due > l.clock {
			continue
		}
		task.done = true
		task.fn()
	}
	kept := l.tasks[:0]
	for _, task := range l.tasks {
		if !task.cancelled && !task.done {
			kept = append(kept, task)
		}
	}
	for i := len(kept); i < len(l.tasks); i++ {
		l.tasks[i] = nil
	}
	l.tasks = kept
}
