package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/faiface/mainthread"
	"github.com/memmaker/rtsrig/engine/util"
	"github.com/memmaker/rtsrig/game"
	"github.com/memmaker/rtsrig/level"
)

type options struct {
	levelFile string
	headless  bool
	frames    int
	snapshot  string
	follow    string
	watch     bool
	verbose   bool
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.levelFile, "level", "levels/demo.yaml", "level file to load")
	flag.BoolVar(&opts.headless, "headless", false, "run without a window")
	flag.IntVar(&opts.frames, "frames", 600, "frames to simulate in headless mode")
	flag.StringVar(&opts.snapshot, "snapshot", "", "write a top-down webp of the debug gizmos after the run")
	flag.StringVar(&opts.follow, "follow", "", "node the camera follows from the start")
	flag.BoolVar(&opts.watch, "watch", false, "reload camera settings when the level file changes")
	flag.BoolVar(&opts.verbose, "v", false, "log debug messages of every category")
	flag.Parse()
	return opts
}

func main() {
	opts := parseFlags()
	if opts.verbose {
		util.GLOBAL_LOG_LEVEL = util.LogLevelDebug
		util.GLOBAL_LOG_CATEGORIES = ^util.LogCategory(0)
	}

	def, err := level.Load(opts.levelFile)
	if err != nil {
		util.LogSceneError(err.Error())
		os.Exit(1)
	}
	session, err := game.NewSession(def, filepath.Dir(opts.levelFile))
	if err != nil {
		util.LogSceneError(err.Error())
		os.Exit(1)
	}
	if err := session.Follow(opts.follow); err != nil {
		util.LogSceneError(err.Error())
		os.Exit(1)
	}

	if opts.headless {
		if err := runHeadless(session, opts); err != nil {
			util.LogSceneError(err.Error())
			os.Exit(1)
		}
		return
	}
	mainthread.Run(func() {
		if err := runWindowed(session, opts); err != nil {
			util.LogSceneError(err.Error())
			os.Exit(1)
		}
	})
}
