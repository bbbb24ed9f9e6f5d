package noise

import "math"

var (
	f2 = 0.5 * (math.Sqrt(3) - 1)
	g2 = (3 - math.Sqrt(3)) / 6
)

const (
	f3 = 1.0 / 3
	g3 = 1.0 / 6
)

// 12 edge midpoints of a cube
var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

func (g *Generator) simplex2(x, y float64) float64 {
	s := (x + y) * f2
	i, j := fastFloor(x+s), fastFloor(y+s)
	t := float64(i+j) * g2
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)

	i1, j1 := 0, 1
	if x0 > y0 {
		i1, j1 = 1, 0
	}

	x1 := x0 - float64(i1) + g2
	y1 := y0 - float64(j1) + g2
	x2 := x0 - 1 + 2*g2
	y2 := y0 - 1 + 2*g2

	corner := func(h int, dx, dy float64) float64 {
		t := 0.5 - dx*dx - dy*dy
		if t < 0 {
			return 0
		}
		gr := grad3[h%12]
		t *= t
		return t * t * (gr[0]*dx + gr[1]*dy)
	}

	n := corner(g.hash2(i, j), x0, y0) +
		corner(g.hash2(i+i1, j+j1), x1, y1) +
		corner(g.hash2(i+1, j+1), x2, y2)
	return 70 * n
}

func (g *Generator) simplex3(x, y, z float64) float64 {
	s := (x + y + z) * f3
	i, j, k := fastFloor(x+s), fastFloor(y+s), fastFloor(z+s)
	t := float64(i+j+k) * g3
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)
	z0 := z - (float64(k) - t)

	var i1, j1, k1, i2, j2, k2 int
	if x0 >= y0 {
		switch {
		case y0 >= z0:
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 1, 0
		case x0 >= z0:
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 0, 1
		default:
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 1, 0, 1
		}
	} else {
		switch {
		case y0 < z0:
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 0, 1, 1
		case x0 < z0:
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 0, 1, 1
		default:
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 1, 1, 0
		}
	}

	x1 := x0 - float64(i1) + g3
	y1 := y0 - float64(j1) + g3
	z1 := z0 - float64(k1) + g3
	x2 := x0 - float64(i2) + 2*g3
	y2 := y0 - float64(j2) + 2*g3
	z2 := z0 - float64(k2) + 2*g3
	x3 := x0 - 1 + 3*g3
	y3 := y0 - 1 + 3*g3
	z3 := z0 - 1 + 3*g3

	corner := func(h int, dx, dy, dz float64) float64 {
		t := 0.6 - dx*dx - dy*dy - dz*dz
		if t < 0 {
			return 0
		}
		gr := grad3[h%12]
		t *= t
		return t * t * (gr[0]*dx + gr[1]*dy + gr[2]*dz)
	}

	n := corner(g.hash3(i, j, k), x0, y0, z0) +
		corner(g.hash3(i+i1, j+j1, k+k1), x1, y1, z1) +
		corner(g.hash3(i+i2, j+j2, k+k2), x2, y2, z2) +
		corner(g.hash3(i+1, j+1, k+1), x3, y3, z3)
	return 32 * n
}
