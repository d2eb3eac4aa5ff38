package mesh

import (
	"math"

	"smartcourt/internal/mathutil"
)

// Box returns an axis-aligned box centered on the origin.
func Box(w, h, d float64) *Mesh {
	x, y, z := w/2, h/2, d/2
	m := &Mesh{
		Verts: []mathutil.Vec3{
			{-x, -y, -z}, {x, -y, -z}, {x, y, -z}, {-x, y, -z},
			{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z},
		},
	}
	quads := [6][4]int{
		{4, 5, 6, 7}, // +z
		{1, 0, 3, 2}, // -z
		{5, 1, 2, 6}, // +x
		{0, 4, 7, 3}, // -x
		{7, 6, 2, 3}, // +y
		{0, 1, 5, 4}, // -y
	}
	for _, q := range quads {
		m.Tris = append(m.Tris, [3]int{q[0], q[1], q[2]}, [3]int{q[0], q[2], q[3]})
	}
	return m
}

// Lathe revolves a (radius, y) profile around the Y axis. Profile points
// with radius 0 close the surface at that height.
func Lathe(profile [][2]float64, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	m := &Mesh{}
	for _, p := range profile {
		for j := 0; j < segments; j++ {
			phi := 2 * math.Pi * float64(j) / float64(segments)
			m.Verts = append(m.Verts, mathutil.Vec3{p[0] * math.Sin(phi), p[1], p[0] * math.Cos(phi)})
		}
	}
	for i := 0; i+1 < len(profile); i++ {
		row, next := i*segments, (i+1)*segments
		for j := 0; j < segments; j++ {
			j1 := (j + 1) % segments
			a, b, c, d := row+j, row+j1, next+j1, next+j
			if profile[i][0] > 0 {
				m.Tris = append(m.Tris, [3]int{a, d, b})
			}
			if profile[i+1][0] > 0 {
				m.Tris = append(m.Tris, [3]int{b, d, c})
			}
		}
	}
	return m
}

// Cylinder returns a closed frustum along Y centered on the origin.
func Cylinder(rTop, rBottom, h float64, segments int) *Mesh {
	return Lathe([][2]float64{
		{0, h / 2},
		{rTop, h / 2},
		{rBottom, -h / 2},
		{0, -h / 2},
	}, segments)
}

// SphereCap returns a sphere slice from the north pole down to polar angle
// thetaLength. thetaLength = π yields a full sphere.
func SphereCap(r float64, widthSegments, heightSegments int, thetaLength float64) *Mesh {
	if heightSegments < 2 {
		heightSegments = 2
	}
	profile := make([][2]float64, 0, heightSegments+1)
	for i := 0; i <= heightSegments; i++ {
		theta := thetaLength * float64(i) / float64(heightSegments)
		radius := r * math.Sin(theta)
		if i == 0 || (i == heightSegments && thetaLength >= math.Pi) {
			radius = 0
		}
		profile = append(profile, [2]float64{radius, r * math.Cos(theta)})
	}
	return Lathe(profile, widthSegments)
}

// Sphere returns a full UV sphere.
func Sphere(r float64, widthSegments, heightSegments int) *Mesh {
	return SphereCap(r, widthSegments, heightSegments, math.Pi)
}

// Capsule returns a cylinder of the given length capped by hemispheres;
// total height is length + 2r.
func Capsule(r, length float64, capSegments, radialSegments int) *Mesh {
	if capSegments < 2 {
		capSegments = 2
	}
	half := length / 2
	var profile [][2]float64
	for i := 0; i <= capSegments; i++ {
		theta := (math.Pi / 2) * float64(i) / float64(capSegments)
		profile = append(profile, [2]float64{r * math.Sin(theta), half + r*math.Cos(theta)})
	}
	for i := 0; i <= capSegments; i++ {
		theta := math.Pi/2 + (math.Pi/2)*float64(i)/float64(capSegments)
		profile = append(profile, [2]float64{r * math.Sin(theta), -half + r*math.Cos(theta)})
	}
	profile[0][0] = 0
	profile[len(profile)-1][0] = 0
	return Lathe(profile, radialSegments)
}

// Torus returns a ring of major radius R and tube radius r lying in the XY
// plane, axis along Z.
func Torus(R, r float64, radialSegments, tubularSegments int) *Mesh {
	m := &Mesh{}
	for j := 0; j < radialSegments; j++ {
		v := 2 * math.Pi * float64(j) / float64(radialSegments)
		for i := 0; i < tubularSegments; i++ {
			u := 2 * math.Pi * float64(i) / float64(tubularSegments)
			m.Verts = append(m.Verts, mathutil.Vec3{
				(R + r*math.Cos(v)) * math.Cos(u),
				(R + r*math.Cos(v)) * math.Sin(u),
				r * math.Sin(v),
			})
		}
	}
	for j := 0; j < radialSegments; j++ {
		j1 := (j + 1) % radialSegments
		for i := 0; i < tubularSegments; i++ {
			i1 := (i + 1) % tubularSegments
			a := j*tubularSegments + i
			b := j1*tubularSegments + i
			c := j1*tubularSegments + i1
			d := j*tubularSegments + i1
			m.Tris = append(m.Tris, [3]int{a, b, d}, [3]int{b, c, d})
		}
	}
	return m
}

// Plane returns a w×d grid on the XZ plane at y=0. UV (0,0) is the -X,-Z
// corner; u grows with X and v grows with Z.
func Plane(w, d float64, segW, segD int) *Mesh {
	if segW < 1 {
		segW = 1
	}
	if segD < 1 {
		segD = 1
	}
	m := &Mesh{}
	for iz := 0; iz <= segD; iz++ {
		v := float64(iz) / float64(segD)
		for ix := 0; ix <= segW; ix++ {
			u := float64(ix) / float64(segW)
			m.Verts = append(m.Verts, mathutil.Vec3{-w/2 + u*w, 0, -d/2 + v*d})
			m.UVs = append(m.UVs, [2]float64{u, v})
		}
	}
	stride := segW + 1
	for iz := 0; iz < segD; iz++ {
		for ix := 0; ix < segW; ix++ {
			a := iz*stride + ix
			b := a + 1
			c := a + stride + 1
			d := a + stride
			m.Tris = append(m.Tris, [3]int{a, d, c}, [3]int{a, c, b})
		}
	}
	return m
}
