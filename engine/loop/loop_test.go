package loop

import (
	"strings"
	"testing"
)

type recorder struct {
	name    string
	log     *[]string
	enabled bool
	starts  int
	killed  bool
}

func (r *recorder) Start()         { r.starts++ }
func (r *recorder) Enabled() bool  { return r.enabled }
func (r *recorder) Destroy()       { r.killed = true }
func (r *recorder) Update(float64) { *r.log = append(*r.log, r.name) }

func TestTickOrderAndToggling(t *testing.T) {
	var log []string
	a := &recorder{name: "a", log: &log, enabled: true}
	b := &recorder{name: "b", log: &log, enabled: false}
	c := &recorder{name: "c", log: &log, enabled: true}

	l := NewLoop()
	l.Add("a", a)
	l.Add("b", b)
	l.Add("c", c)

	l.Tick(0.1)
	b.enabled = true
	l.Tick(0.1)

	if got := strings.Join(log, ","); got != "a,c,a,b,c" {
		t.Fatalf("update order = %s", got)
	}
	if a.starts != 1 || b.starts != 1 {
		t.Errorf("Start must run exactly once, got %d and %d", a.starts, b.starts)
	}
	if !strings.Contains(l.Stats(), "a last:") {
		t.Errorf("stats missing component timings:\n%s", l.Stats())
	}
}

func TestTaskFiresOnceAfterDelay(t *testing.T) {
	l := NewLoop()
	fired := 0
	task := l.After("actor", 1.0, func() { fired++ })

	for i := 0; i < 9; i++ {
		l.Tick(0.1)
	}
	if fired != 0 {
		t.Fatalf("task fired early at clock %v", l.Clock())
	}
	l.Tick(0.15)
	l.Tick(0.1)
	if fired != 1 || !task.Done() {
		t.Fatalf("fired = %d, done = %v", fired, task.Done())
	}
	if l.PendingTasks() != 0 {
		t.Errorf("pending tasks = %d", l.PendingTasks())
	}
}

func TestRemovingOwnerCancelsItsTasks(t *testing.T) {
	var log []string
	actor := &recorder{name: "actor", log: &log, enabled: true}
	l := NewLoop()
	l.Add("actor", actor)

	fired := false
	other := false
	l.After("actor", 0.5, func() { fired = true })
	l.After("someone else", 0.5, func() { other = true })

	l.Tick(0.1)
	l.Remove("actor")
	l.Tick(1)

	if fired {
		t.Errorf("task of a destroyed owner must not fire")
	}
	if !other {
		t.Errorf("unrelated task should still fire")
	}
	if !actor.killed {
		t.Errorf("Destroy was not called")
	}
	if len(l.Names()) != 0 {
		t.Errorf("names = %v", l.Names())
	}
}
