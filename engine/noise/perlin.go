package noise

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// 2D gradients: axes and diagonals, normalized so the result spans [-1,1]
var grad2 = [8][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

func gradDot2(h int, x, y float64) float64 {
	g := grad2[h&7]
	return g[0]*x + g[1]*y
}

func gradDot3(h int, x, y, z float64) float64 {
	h &= 15
	u := y
	if h < 8 {
		u = x
	}
	var v float64
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	default:
		v = z
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

func (g *Generator) perlin2(x, y float64) float64 {
	x0, y0 := fastFloor(x), fastFloor(y)
	xf, yf := x-float64(x0), y-float64(y0)
	u, v := fade(xf), fade(yf)

	n00 := gradDot2(g.hash2(x0, y0), xf, yf)
	n10 := gradDot2(g.hash2(x0+1, y0), xf-1, yf)
	n01 := gradDot2(g.hash2(x0, y0+1), xf, yf-1)
	n11 := gradDot2(g.hash2(x0+1, y0+1), xf-1, yf-1)

	return lerp(lerp(n00, n10, u), lerp(n01, n11, u), v)
}

func (g *Generator) perlin3(x, y, z float64) float64 {
	x0, y0, z0 := fastFloor(x), fastFloor(y), fastFloor(z)
	xf, yf, zf := x-float64(x0), y-float64(y0), z-float64(z0)
	u, v, w := fade(xf), fade(yf), fade(zf)

	n000 := gradDot3(g.hash3(x0, y0, z0), xf, yf, zf)
	n100 := gradDot3(g.hash3(x0+1, y0, z0), xf-1, yf, zf)
	n010 := gradDot3(g.hash3(x0, y0+1, z0), xf, yf-1, zf)
	n110 := gradDot3(g.hash3(x0+1, y0+1, z0), xf-1, yf-1, zf)
	n001 := gradDot3(g.hash3(x0, y0, z0+1), xf, yf, zf-1)
	n101 := gradDot3(g.hash3(x0+1, y0, z0+1), xf-1, yf, zf-1)
	n011 := gradDot3(g.hash3(x0, y0+1, z0+1), xf, yf-1, zf-1)
	n111 := gradDot3(g.hash3(x0+1, y0+1, z0+1), xf-1, yf-1, zf-1)

	x00 := lerp(n000, n100, u)
	x10 := lerp(n010, n110, u)
	x01 := lerp(n001, n101, u)
	x11 := lerp(n011, n111, u)
	return lerp(lerp(x00, x10, v), lerp(x01, x11, v), w)
}
