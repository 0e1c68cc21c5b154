package main

import (
	"fmt"
	"os"

	"github.com/memmaker/rtsrig/engine/debugdraw"
	"github.com/memmaker/rtsrig/engine/util"
	"github.com/memmaker/rtsrig/game"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

const (
	fixedStep        = 1.0 / 60.0
	snapshotPixels   = 4
	statusEveryTicks = 30
)

// runHeadless simulates the level at a fixed 60 Hz without a window.
func runHeadless(session *game.Session, opts options) error {
	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	for i := 0; i < opts.frames; i++ {
		session.Tick(fixedStep)
		if interactive && i%statusEveryTicks == 0 {
			fmt.Printf("\r\033[K%s", session.Status())
		}
	}
	if interactive {
		fmt.Println()
	}
	fmt.Println(session.Status())
	util.LogLoopDebug(session.Loop.Stats())

	if opts.snapshot == "" {
		return nil
	}
	if err := debugdraw.SaveWebP(opts.snapshot, session.Snapshot(snapshotPixels)); err != nil {
		return errors.Wrap(err, "snapshot")
	}
	util.LogSceneInfo(fmt.Sprintf("[App] snapshot written to %s", opts.snapshot))
	return nil
}
