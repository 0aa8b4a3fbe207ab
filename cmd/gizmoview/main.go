package main

import (
	"flag"
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gekko3d/gizmo"
	"github.com/gekko3d/gizmo/rt/core"
	"github.com/gekko3d/gizmo/rt/input"
	"github.com/gekko3d/gizmo/rt/preview"
	"github.com/gekko3d/gizmo/rt/scene"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "gizmo.yaml", "YAML file with handle sizes and colours")
	debug := flag.Bool("debug", false, "Enable debug logging")
	snapshot := flag.String("snapshot", "gizmo.png", "PNG of the gizmo, written on S, at the end of each drag and on exit. The window itself only collects input and draws nothing")
	width := flag.Int("width", 1280, "Window width")
	height := flag.Int("height", 720, "Window height")
	frame := flag.String("frame", "flat", "Handle frame: flat or globe")
	flag.Parse()

	log := gizmo.NewDefaultLogger("gizmoview", *debug)

	cfg, err := gizmo.LoadConfig(*configPath)
	if err != nil {
		log.Errorf("%v", err)
		return
	}
	mode, err := scene.ParseFrameMode(*frame)
	if err != nil {
		log.Errorf("%v", err)
		return
	}

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(*width, *height, "gizmoview", nil, nil)
	if err != nil {
		panic(err)
	}
	defer window.Destroy()

	target := newTarget(mode)
	cam := core.NewCameraState(*width, *height)
	cam.Position = core.Translation(target.Model.Mul4(mgl64.Translate3D(0, -25, 10)))
	cam.LookAt(target.Position())

	world := scene.New(cam, mode)
	tracker := input.NewTracker()
	ctrl, err := gizmo.NewController(gizmo.Host{
		Scene:            world,
		Camera:           cam,
		CameraController: world,
		Frames:           world,
		Input:            tracker,
	}, gizmo.WithConfig(cfg), gizmo.WithLogger(log))
	if err != nil {
		log.Errorf("%v", err)
		return
	}
	if err := ctrl.Attach(target); err != nil {
		log.Errorf("attach: %v", err)
		return
	}
	defer ctrl.Detach()

	renderer := preview.New(cam)
	writeSnapshot := func() {
		img := renderer.Render(world.Visuals(), preview.Marker{
			Position: target.Position(),
			Radius:   5,
			Color:    [4]float32{1, 1, 1, 1},
			Text:     target.Name,
		})
		if err := preview.WritePNG(*snapshot, img); err != nil {
			log.Errorf("%v", err)
			return
		}
		log.Infof("snapshot written to %s", *snapshot)
	}
	defer writeSnapshot()

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyS:
			writeSnapshot()
		case glfw.KeyR:
			target.Model = newTarget(mode).Model
			if err := ctrl.Attach(target); err != nil {
				log.Errorf("attach: %v", err)
			}
		}
	})

	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		cam.Width, cam.Height = fbWidth, fbHeight
	})

	lastState := ctrl.State()
	for !window.ShouldClose() {
		glfw.PollEvents()

		mx, my := window.GetCursorPos()
		tracker.Update(mx, my, window.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press)

		// left drags on empty space orbit the camera
		if tracker.Pressed && !tracker.JustPressed && world.RotationEnabled() {
			cam.Orbit(target.Position(), tracker.MouseDeltaX, tracker.MouseDeltaY)
		}

		if state := ctrl.State(); state != lastState {
			if lastState == gizmo.Dragging {
				writeSnapshot()
			}
			lastState = state
			window.SetTitle(fmt.Sprintf("gizmoview - %s - %v", state, target.Position()))
		}
		glfw.WaitEventsTimeout(1.0 / 60)
	}
}

func newTarget(mode scene.FrameMode) *scene.Object {
	if mode == scene.FrameGlobe {
		p := core.CartesianFromCartographic(core.Cartographic{Longitude: 8.5417, Latitude: 47.3769, Height: 400})
		return &scene.Object{
			Name:   "pin",
			Model:  core.WithTranslation(core.EastNorthUpFrame(p), p),
			Radius: 1,
		}
	}
	t := core.NewTransform()
	return scene.NewObjectFromTransform("box", t, 1)
}
