package scene

import "github.com/go-gl/mathgl/mgl32"

// Geometry is a wireframe: vertices in object space and the edges joining them.
type Geometry struct {
	Vertices []mgl32.Vec3
	Edges    [][2]int
}

// NewBox creates an axis aligned box centred on the origin.
func NewBox(width, height, depth float32) *Geometry {
	x, y, z := width/2, height/2, depth/2
	return &Geometry{
		Vertices: []mgl32.Vec3{
			{-x, -y, -z}, {x, -y, -z}, {x, y, -z}, {-x, y, -z},
			{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z},
		},
		Edges: [][2]int{
			{0, 1}, {1, 2}, {2, 3}, {3, 0},
			{4, 5}, {5, 6}, {6, 7}, {7, 4},
			{0, 4}, {1, 5}, {2, 6}, {3, 7},
		},
	}
}

// NewTetrahedron creates a regular tetrahedron inscribed in a sphere of the given radius.
func NewTetrahedron(radius float32) *Geometry {
	r := radius / 1.7320508 // sqrt(3)
	return &Geometry{
		Vertices: []mgl32.Vec3{
			{r, r, r}, {-r, -r, r}, {-r, r, -r}, {r, -r, -r},
		},
		Edges: [][2]int{
			{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3},
		},
	}
}

// NewGrid creates a square grid on the XZ plane with the given number of divisions per side.
func NewGrid(size float32, divisions int) *Geometry {
	if divisions < 1 {
		divisions = 1
	}
	g := &Geometry{}
	half := size / 2
	step := size / float32(divisions)
	for i := 0; i <= divisions; i++ {
		k := -half + float32(i)*step
		n := len(g.Vertices)
		g.Vertices = append(g.Vertices,
			mgl32.Vec3{-half, 0, k}, mgl32.Vec3{half, 0, k},
			mgl32.Vec3{k, 0, -half}, mgl32.Vec3{k, 0, half},
		)
		g.Edges = append(g.Edges, [2]int{n, n + 1}, [2]int{n + 2, n + 3})
	}
	return g
}
