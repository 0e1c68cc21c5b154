package game

import (
	"fmt"

	"github.com/memmaker/rtsrig/engine/util"
)

const WalkAnimFlag = "Walk_Anim"

type Animator interface {
	SetBool(name string, value bool)
}

// FlagAnimator only remembers the flags. Rendering backends read them back.
type FlagAnimator struct {
	owner string
	flags map[string]bool
}

func NewFlagAnimator(owner string) *FlagAnimator {
	return &FlagAnimator{owner: owner, flags: make(map[string]bool)}
}

func (a *FlagAnimator) SetBool(name string, value bool) {
	if a.flags[name] == value {
		return
	}
	a.flags[name] = value
	util.LogActorInfo(fmt.Sprintf("[Animator] %s: %s = %v", a.owner, name, value))
}

func (a *FlagAnimator) Bool(name string) bool {
	return a.flags[name]
}
