package render3d

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrMalformedMesh is returned when a vertex stream cannot be grouped into
// whole vertices or whole triangles.
var ErrMalformedMesh = errors.New("render3d: malformed mesh")

// ObjectType tags which fragment shader applies to an object
type ObjectType uint8

const (
	ObjectStar ObjectType = iota
	ObjectRockyRed
	ObjectPaleYellow
	ObjectRingedGiant
	ObjectWaterLand
	ObjectMolten
	ObjectBanded
)

var objectTypeNames = map[ObjectType]string{
	ObjectStar:        "star",
	ObjectRockyRed:    "rocky-red",
	ObjectPaleYellow:  "pale-yellow",
	ObjectRingedGiant: "ringed-giant",
	ObjectWaterLand:   "water-land",
	ObjectMolten:      "molten",
	ObjectBanded:      "banded",
}

func (t ObjectType) String() string {
	if n, ok := objectTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("object(%d)", uint8(t))
}

// ParseObjectType is the inverse of ObjectType.String
func ParseObjectType(s string) (ObjectType, error) {
	for t, n := range objectTypeNames {
		if n == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown object type %q", s)
}

// Vertex carries per-vertex attributes through the pipeline. After
// TransformVertex, Position holds screen coordinates (x, y in pixels, z for
// depth) and Normal is in world space.
type Vertex struct {
	Position         mgl64.Vec3
	Normal           mgl64.Vec3
	TexCoord         mgl64.Vec3
	WorldPosition    mgl64.Vec3
	OriginalPosition mgl64.Vec3
}

// Uniforms is the per-object transform set
type Uniforms struct {
	Model      mgl64.Mat4
	View       mgl64.Mat4
	Projection mgl64.Mat4
	Viewport   mgl64.Mat4
	ObjectType ObjectType
}

// TransformVertex takes a model-space vertex to screen space.
//
// The normal goes through the upper 3x3 of the model matrix rather than its
// inverse-transpose, which is only exact for uniform scale. Scene objects
// are scaled uniformly. A zero clip-space w is not guarded.
func TransformVertex(v Vertex, u Uniforms) Vertex {
	pos := v.Position.Vec4(1)
	clip := u.Projection.Mul4(u.View).Mul4(u.Model).Mul4x1(pos)
	ndc := clip.Vec3().Mul(1 / clip.W())
	screen := TransformPoint(u.Viewport, ndc)

	return Vertex{
		Position:         screen,
		Normal:           Normalize(u.Model.Mat3().Mul3x1(v.Normal)),
		TexCoord:         v.TexCoord,
		WorldPosition:    TransformPoint(u.Model, v.Position),
		OriginalPosition: v.Position,
	}
}

// VerticesFromBuffer groups a flat (position, normal, texcoord) stream into
// vertices.
func VerticesFromBuffer(vbo []mgl64.Vec3) ([]Vertex, error) {
	if len(vbo)%3 != 0 {
		return nil, fmt.Errorf("%w: vertex buffer length %d is not a multiple of 3", ErrMalformedMesh, len(vbo))
	}
	out := make([]Vertex, len(vbo)/3)
	for i := range out {
		out[i] = Vertex{
			Position: vbo[i*3],
			Normal:   vbo[i*3+1],
			TexCoord: vbo[i*3+2],
		}
	}
	return out, nil
}

// AssembleTriangles groups a vertex stream in order, three at a time
func AssembleTriangles(vs []Vertex) ([][3]Vertex, error) {
	if len(vs)%3 != 0 {
		return nil, fmt.Errorf("%w: %d vertices do not form whole triangles", ErrMalformedMesh, len(vs))
	}
	tris := make([][3]Vertex, len(vs)/3)
	for i := range tris {
		tris[i] = [3]Vertex{vs[i*3], vs[i*3+1], vs[i*3+2]}
	}
	return tris, nil
}
