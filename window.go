package main

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/rtsrig/engine/debugdraw"
	"github.com/memmaker/rtsrig/engine/glapp"
	"github.com/memmaker/rtsrig/engine/input"
	"github.com/memmaker/rtsrig/engine/util"
	"github.com/memmaker/rtsrig/game"
	"github.com/memmaker/rtsrig/level"
)

// glfw reports one unit per wheel notch, the camera expects a tenth of that.
const scrollScale = 0.1

var mouseButtons = map[glfw.MouseButton]input.Button{
	glfw.MouseButtonLeft:   input.ButtonPrimary,
	glfw.MouseButtonRight:  input.ButtonSecondary,
	glfw.MouseButtonMiddle: input.ButtonMiddle,
}

func runWindowed(session *game.Session, opts options) error {
	lens := session.Camera.Lens()
	app, err := glapp.NewGlApplication("rtsrig - "+session.Name, lens.ScreenWidth, lens.ScreenHeight)
	if err != nil {
		return err
	}

	var watcher *level.Watcher
	if opts.watch {
		watcher, err = level.NewWatcher(opts.levelFile)
		if err != nil {
			return err
		}
		defer watcher.Close()
	}

	in := session.Input
	app.MousePosHandler = in.MoveTo
	app.ScrollHandler = func(xoff, yoff float64) {
		in.Scroll(float32(yoff) * scrollScale)
	}
	app.MouseButtonHandler = func(button glfw.MouseButton, action glfw.Action) {
		b, ok := mouseButtons[button]
		if !ok {
			return
		}
		switch action {
		case glfw.Press:
			in.Press(b)
		case glfw.Release:
			in.Release(b)
		}
	}
	app.KeyHandler = func(key glfw.Key, action glfw.Action) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			app.Window.SetShouldClose(true)
		case glfw.KeyF:
			// drop the follow target
			_ = session.Follow("")
		case glfw.KeyP:
			println(session.Loop.Stats())
		}
	}

	app.UpdateFunc = func(elapsed float64) {
		if watcher != nil {
			reloadCamera(session, watcher)
		}
		session.Tick(elapsed)
	}

	recorder := debugdraw.NewRecorder()
	lines := glapp.NewLineRenderer()
	app.DrawFunc = func(elapsed float64) {
		recorder.Reset()
		session.DrawGizmos(recorder)
		for _, node := range session.Registry.Nodes() {
			recorder.WireBox(node.Transform.GetPosition().Add(mgl32.Vec3{0, 0.5, 0}), mgl32.Vec3{1, 1, 1}, debugdraw.White)
		}
		camera := session.Camera
		lines.SetCamera(camera.Lens().GetProjectionMatrix(), camera.Transform().GetViewMatrix())
		lines.Draw(recorder.Commands())
	}

	app.Run()
	return nil
}

func reloadCamera(session *game.Session, watcher *level.Watcher) {
	name, changed := watcher.Poll()
	if !changed {
		return
	}
	def, err := level.Load(name)
	if err != nil {
		util.LogSceneError(fmt.Sprintf("[App] reload of %s failed: %v", name, err))
		return
	}
	if err := session.ApplyCameraSettings(def.Camera); err != nil {
		util.LogSceneError(fmt.Sprintf("[App] camera settings of %s rejected: %v", name, err))
	}
}
