package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/stagehand/stage"
	"github.com/plus3/stagehand/stage/scene"
)

type objectRow struct {
	Id    scene.ObjectId
	Name  string
	Depth int
	Edges int
}

func sceneRows(s *scene.Scene) []objectRow {
	if s == nil {
		return nil
	}
	var rows []objectRow
	var walk func(o *scene.Object, depth int)
	walk = func(o *scene.Object, depth int) {
		row := objectRow{Id: o.Id(), Name: o.Name, Depth: depth}
		if o.Geometry != nil {
			row.Edges = len(o.Geometry.Edges)
		}
		rows = append(rows, row)
		for _, c := range o.Children() {
			walk(c, depth+1)
		}
	}
	for _, o := range s.Objects() {
		walk(o, 0)
	}
	return rows
}

// SceneInspector is an actor that lists the scene's objects and edits the
// selected object's transform and the camera projection.
type SceneInspector struct {
	stage.BaseActor
	selected scene.ObjectId
}

func NewSceneInspector() *SceneInspector {
	return &SceneInspector{}
}

func (si *SceneInspector) Update(delta float64) {
	if !imgui.BeginV("Scene Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	s := si.Scene()
	if s == nil {
		imgui.Text("No scene")
		imgui.End()
		return
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("SceneTable", 3, tableFlags, imgui.NewVec2(0, 200), 0) {
		imgui.TableSetupColumn("Object")
		imgui.TableSetupColumn("Id")
		imgui.TableSetupColumn("Edges")
		imgui.TableHeadersRow()

		for _, row := range sceneRows(s) {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			label := fmt.Sprintf("%s%s##%d", strings.Repeat("  ", row.Depth), row.Name, row.Id)
			if imgui.SelectableBoolV(label, si.selected == row.Id, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				si.selected = row.Id
			}
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Id))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Edges))
		}

		imgui.EndTable()
	}

	if o, ok := s.Get(si.selected); ok {
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Selected: %s", o.Name))
		imgui.Checkbox("Visible", &o.Visible)
		vecInput("Position", o.Position[:])
		vecInput("Rotation", o.Rotation[:])
		vecInput("Scale", o.Scale[:])
	}

	imgui.Separator()
	switch camera := si.Camera().(type) {
	case *scene.PerspectiveCamera:
		imgui.Text(fmt.Sprintf("Perspective camera, aspect %.3f", camera.Aspect))
		vecInput("Eye", camera.Position[:])
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat("FOV", &camera.FOV) {
			camera.UpdateProjectionMatrix()
		}
	case *scene.OrthographicCamera:
		imgui.Text(fmt.Sprintf("Orthographic camera, aspect %.3f", camera.Aspect))
		vecInput("Eye", camera.Position[:])
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat("Height", &camera.Height) {
			camera.UpdateProjectionMatrix()
		}
	case nil:
		imgui.Text("No camera")
	default:
		imgui.Text(fmt.Sprintf("Camera: %T", camera))
	}

	imgui.End()
}

func vecInput(name string, v []float32) {
	imgui.Text(fmt.Sprintf("%s:", name))
	for i, axis := range []string{"x", "y", "z"} {
		imgui.SameLine()
		imgui.SetNextItemWidth(80)
		imgui.InputFloat(fmt.Sprintf("##%s.%s", name, axis), &v[i])
	}
}
