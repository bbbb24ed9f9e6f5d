package render3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vertex3D is a mesh vertex before any transform
type Vertex3D struct {
	Pos    mgl64.Vec3
	Normal mgl64.Vec3
	Tex    mgl64.Vec3
}

// Triangle3D is three vertices
type Triangle3D struct {
	V [3]Vertex3D
}

// Mesh3D is a collection of triangles
type Mesh3D struct {
	Triangles []Triangle3D
}

func NewMesh() *Mesh3D { return &Mesh3D{} }

func (m *Mesh3D) AddTriangle(v0, v1, v2 Vertex3D) {
	m.Triangles = append(m.Triangles, Triangle3D{V: [3]Vertex3D{v0, v1, v2}})
}

func (m *Mesh3D) AddQuad(v0, v1, v2, v3 Vertex3D) {
	m.AddTriangle(v0, v1, v2)
	m.AddTriangle(v0, v2, v3)
}

// VBO flattens the mesh into (position, normal, texcoord) triples, three
// vertices per triangle.
func (m *Mesh3D) VBO() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, 0, len(m.Triangles)*9)
	for _, tri := range m.Triangles {
		for _, v := range tri.V {
			out = append(out, v.Pos, v.Normal, v.Tex)
		}
	}
	return out
}

// MakeSphere builds a unit UV sphere centred on the origin
func MakeSphere(stacks, slices int) *Mesh3D {
	if stacks < 2 {
		stacks = 2
	}
	if slices < 3 {
		slices = 3
	}
	m := NewMesh()

	at := func(i, j int) Vertex3D {
		theta := float64(i) / float64(stacks) * math.Pi
		phi := float64(j) / float64(slices) * 2 * math.Pi
		p := V3(math.Sin(theta)*math.Cos(phi), math.Cos(theta), math.Sin(theta)*math.Sin(phi))
		return Vertex3D{
			Pos:    p,
			Normal: p,
			Tex:    V3(float64(j)/float64(slices), float64(i)/float64(stacks), 0),
		}
	}

	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			v00 := at(i, j)
			v01 := at(i, j+1)
			v10 := at(i+1, j)
			v11 := at(i+1, j+1)
			switch i {
			case 0:
				m.AddTriangle(v00, v11, v10)
			case stacks - 1:
				m.AddTriangle(v00, v01, v10)
			default:
				m.AddQuad(v00, v01, v11, v10)
			}
		}
	}
	return m
}
