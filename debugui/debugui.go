// Package debugui provides Dear ImGui panels for a running stage. The panels
// are Actors, so they draw during the frame's update pass; the Overlay brackets
// that pass with an ImGui frame on the Ebiten host.
package debugui

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
)

// Overlay wraps the Ebiten-specific Dear ImGui backend so it can be installed
// on an Ebiten stage window with SetOverlay.
type Overlay struct {
	backend *ebitenbackend.EbitenBackend
}

// NewOverlay creates the ImGui backend and its window. Create it before the
// stage window runs; imgui.ini persistence is disabled.
func NewOverlay(title string, width, height int) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &Overlay{backend: backend}
}

func (o *Overlay) BeginFrame() {
	o.backend.BeginFrame()
}

func (o *Overlay) EndFrame() {
	o.backend.EndFrame()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *Overlay) Layout(width, height int) {
	o.backend.Layout(width, height)
}

// WantsInput reports whether ImGui is consuming mouse or keyboard input this frame.
func WantsInput() (mouse, keyboard bool) {
	io := imgui.CurrentIO()
	return io.WantCaptureMouse(), io.WantCaptureKeyboard()
}
