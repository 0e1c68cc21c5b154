// Package glapp hosts the frame loop in a glfw window with a legacy GL 2.1
// context, enough to draw diagnostic wireframes.
package glapp

import (
	"fmt"
	"math"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
)

type GlApplication struct {
	Window             *glfw.Window
	TerminateFunc      func()
	UpdateFunc         func(elapsed float64)
	DrawFunc           func(elapsed float64)
	KeyHandler         func(key glfw.Key, action glfw.Action)
	MousePosHandler    func(xpos float64, ypos float64)
	MouseButtonHandler func(button glfw.MouseButton, action glfw.Action)
	ScrollHandler      func(xoff float64, yoff float64)
	Title              string
	WindowWidth        int
	WindowHeight       int
	ticks              uint64
	FramesPerSecond    float64
	FPSRunningAvg      float64
	FPSMin             float64
	FPSMax             float64
}

func (a *GlApplication) KeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if a.KeyHandler != nil {
		a.KeyHandler(key, action)
	}
}

func (a *GlApplication) MousePosCallback(w *glfw.Window, xpos float64, ypos float64) {
	if a.MousePosHandler != nil {
		a.MousePosHandler(xpos, ypos)
	}
}

func (a *GlApplication) ScrollCallback(w *glfw.Window, xoff float64, yoff float64) {
	if a.ScrollHandler != nil {
		a.ScrollHandler(xoff, yoff)
	}
}

func (a *GlApplication) MouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if a.MouseButtonHandler != nil {
		a.MouseButtonHandler(button, action)
	}
}

// NewGlApplication opens the window and registers the input callbacks.
// It must be called from inside mainthread.Run.
func NewGlApplication(title string, width, height int) (*GlApplication, error) {
	app := &GlApplication{Title: title, WindowWidth: width, WindowHeight: height, FPSMin: math.MaxFloat64}
	var err error
	mainthread.Call(func() {
		app.Window, app.TerminateFunc, err = InitOpenGL(title, width, height)
		if err != nil {
			return
		}
		app.Window.SetKeyCallback(app.KeyCallback)
		app.Window.SetCursorPosCallback(app.MousePosCallback)
		app.Window.SetMouseButtonCallback(app.MouseButtonCallback)
		app.Window.SetScrollCallback(app.ScrollCallback)
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

// Run drives update and draw until the window closes. Every GL and glfw call
// happens on the main thread.
func (a *GlApplication) Run() {
	defer mainthread.Call(a.TerminateFunc)
	var previousTime float64
	mainthread.Call(func() { previousTime = glfw.GetTime() })

	shouldQuit := false
	for !shouldQuit {
		var elapsed float64
		mainthread.Call(func() {
			shouldQuit = a.Window.ShouldClose()
			now := glfw.GetTime()
			elapsed = now - previousTime
			previousTime = now
		})

		a.UpdateFunc(elapsed)

		mainthread.Call(func() {
			gl.ClearColor(0.09, 0.09, 0.11, 1)
			gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
			a.DrawFunc(elapsed)
			a.updateFPS(elapsed)
			a.Window.SwapBuffers()
			glfw.PollEvents()
		})
		a.ticks++
	}
}

func (a *GlApplication) updateFPS(elapsed float64) {
	if elapsed <= 0 {
		return
	}
	a.FramesPerSecond = 1.0 / elapsed
	if a.ticks%60 == 0 {
		sixtyTicksAverage := a.FPSRunningAvg
		a.Window.SetTitle(fmt.Sprintf("%s - FPS: %.0f (Avg: %.0f, Min: %.0f, Max: %.0f)", a.Title, a.FramesPerSecond, sixtyTicksAverage, a.FPSMin, a.FPSMax))
		a.FPSRunningAvg = a.FramesPerSecond * (1.0 / 60.0)
		a.FPSMin = math.MaxFloat64
		a.FPSMax = 0
		return
	}
	a.FPSRunningAvg += a.FramesPerSecond * (1.0 / 60.0)
	a.FPSMin = math.Min(a.FPSMin, a.FramesPerSecond)
	a.FPSMax = math.Max(a.FPSMax, a.FramesPerSecond)
}

func InitOpenGL(title string, width, height int) (*glfw.Window, func(), error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, errors.Wrap(err, "glfw init")
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, errors.Wrap(err, "create window")
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1) // enable (1) vsync

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, nil, errors.Wrap(err, "gl init")
	}
	println("OpenGL version", gl.GoStr(gl.GetString(gl.VERSION)))

	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.DEPTH_TEST)
	gl.LineWidth(1.5)

	return win, func() {
		glfw.Terminate()
	}, nil
}
