package render3d

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

type objIndex struct{ v, vt, vn int }

// LoadOBJ reads a Wavefront OBJ stream (v, vt, vn and f records) and resolves
// its faces into a mesh. Polygons are fan-triangulated. Faces without
// normals or texcoords get zero vectors.
func LoadOBJ(r io.Reader) (*Mesh3D, error) {
	var (
		positions []mgl64.Vec3
		texcoords []mgl64.Vec3
		normals   []mgl64.Vec3
	)
	m := NewMesh()

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v", "vn", "vt":
			vec, err := parseVec(fields[1:], fields[0] == "vt")
			if err != nil {
				return nil, fmt.Errorf("obj line %d: %w", line, err)
			}
			switch fields[0] {
			case "v":
				positions = append(positions, vec)
			case "vn":
				normals = append(normals, vec)
			default:
				texcoords = append(texcoords, vec)
			}
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: %w: face needs at least 3 vertices", line, ErrMalformedMesh)
			}
			verts := make([]Vertex3D, 0, len(fields)-1)
			for _, f := range fields[1:] {
				idx, err := parseFaceIndex(f, len(positions), len(texcoords), len(normals))
				if err != nil {
					return nil, fmt.Errorf("obj line %d: %w", line, err)
				}
				v := Vertex3D{Pos: positions[idx.v]}
				if idx.vt >= 0 {
					v.Tex = texcoords[idx.vt]
				}
				if idx.vn >= 0 {
					v.Normal = normals[idx.vn]
				}
				verts = append(verts, v)
			}
			for i := 1; i+1 < len(verts); i++ {
				m.AddTriangle(verts[0], verts[i], verts[i+1])
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}
	return m, nil
}

func parseVec(fields []string, optionalZ bool) (mgl64.Vec3, error) {
	need := 3
	if optionalZ {
		need = 2
	}
	if len(fields) < need {
		return mgl64.Vec3{}, fmt.Errorf("%w: expected %d components, got %d", ErrMalformedMesh, need, len(fields))
	}
	var v mgl64.Vec3
	for i := 0; i < 3 && i < len(fields); i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return mgl64.Vec3{}, fmt.Errorf("%w: %v", ErrMalformedMesh, err)
		}
		v[i] = f
	}
	return v, nil
}

// parseFaceIndex handles v, v/vt, v//vn and v/vt/vn, including negative
// (relative) indices. Missing parts come back as -1.
func parseFaceIndex(s string, nv, nvt, nvn int) (objIndex, error) {
	parts := strings.Split(s, "/")
	idx := objIndex{-1, -1, -1}
	resolve := func(p string, n int) (int, error) {
		i, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("%w: bad index %q", ErrMalformedMesh, p)
		}
		if i < 0 {
			i = n + i
		} else {
			i--
		}
		if i < 0 || i >= n {
			return 0, fmt.Errorf("%w: index %q out of range", ErrMalformedMesh, p)
		}
		return i, nil
	}

	var err error
	if idx.v, err = resolve(parts[0], nv); err != nil {
		return idx, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if idx.vt, err = resolve(parts[1], nvt); err != nil {
			return idx, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if idx.vn, err = resolve(parts[2], nvn); err != nil {
			return idx, err
		}
	}
	return idx, nil
}
