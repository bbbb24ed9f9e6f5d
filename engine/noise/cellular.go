package noise

import "math"

// cellJitter keeps feature points inside their own cell
const cellJitter = 0.9

// cellOffset turns a lattice hash into a feature-point offset in [0,1)
func (g *Generator) cellOffset(h, salt int) float64 {
	return float64(g.perm[(h+salt)&511]) / 256
}

// cellular2 returns the distance to the nearest feature point (F1) mapped
// from [0,1] onto [-1,1].
func (g *Generator) cellular2(x, y float64) float64 {
	xi, yi := fastFloor(x), fastFloor(y)
	best := math.MaxFloat64
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			cx, cy := xi+dx, yi+dy
			h := g.hash2(cx, cy)
			fx := float64(cx) + 0.5 + (g.cellOffset(h, 0)-0.5)*cellJitter
			fy := float64(cy) + 0.5 + (g.cellOffset(h, 101)-0.5)*cellJitter
			d := (fx-x)*(fx-x) + (fy-y)*(fy-y)
			if d < best {
				best = d
			}
		}
	}
	return math.Sqrt(best)*2 - 1
}

func (g *Generator) cellular3(x, y, z float64) float64 {
	xi, yi, zi := fastFloor(x), fastFloor(y), fastFloor(z)
	best := math.MaxFloat64
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				cx, cy, cz := xi+dx, yi+dy, zi+dz
				h := g.hash3(cx, cy, cz)
				fx := float64(cx) + 0.5 + (g.cellOffset(h, 0)-0.5)*cellJitter
				fy := float64(cy) + 0.5 + (g.cellOffset(h, 101)-0.5)*cellJitter
				fz := float64(cz) + 0.5 + (g.cellOffset(h, 211)-0.5)*cellJitter
				d := (fx-x)*(fx-x) + (fy-y)*(fy-y) + (fz-z)*(fz-z)
				if d < best {
					best = d
				}
			}
		}
	}
	return math.Sqrt(best)*2 - 1
}
