package raster

import (
	"smartcourt/internal/camera"
	"smartcourt/internal/mathutil"
	"smartcourt/internal/mesh"
	"smartcourt/internal/scene"
	"smartcourt/internal/texture"
	"smartcourt/internal/viewmatrix"
)

// Renderer draws a scene through a camera into a frame buffer. Scratch
// buffers are reused between frames; a Renderer is not safe for
// concurrent use.
type Renderer struct {
	textures texture.Resolver

	drawables []scene.Drawable
	world     []mathutil.Vec3
	clip      [][4]float64
	poly      []clipVert
	clipped   []clipVert
}

// NewRenderer returns a renderer resolving material textures through
// textures, which may be nil.
func NewRenderer(textures texture.Resolver) *Renderer {
	return &Renderer{textures: textures}
}

// Render clears fb and draws every mesh of sc and then the trail markers.
// The camera's aspect should match fb.
func (r *Renderer) Render(fb *FrameBuffer, sc *scene.Scene, cam *camera.Camera) {
	fb.Clear(sc.Background)
	lc := NewLightConfig(sc.Lights, sc.Fog)
	vp := cam.ViewProj()

	r.drawables = sc.Drawables(r.drawables[:0])
	for _, d := range r.drawables {
		r.drawMesh(fb, d.Mesh, d.World, vp, cam.Near, &lc)
	}
	r.drawTrail(fb, sc, cam, vp)
}

func (r *Renderer) drawMesh(fb *FrameBuffer, m *mesh.Mesh, world, vp mathutil.Mat4, near float64, lc *LightConfig) {
	if len(m.Verts) == 0 {
		return
	}
	r.world = r.world[:0]
	r.clip = r.clip[:0]
	for _, v := range m.Verts {
		wp := world.MulPoint(v)
		r.world = append(r.world, wp)
		r.clip = append(r.clip, vp.MulVec4(wp))
	}

	face := Face{
		Base:     linear(m.Material.Color),
		Tint:     linear(m.Material.Color),
		Emissive: linear(m.Material.Emissive),
	}
	if m.Material.Texture != "" && r.textures != nil && m.UVs != nil {
		face.Tex = r.textures.Resolve(m.Material.Texture)
	}

	for _, tri := range m.Tris {
		// Trivially reject triangles entirely behind the near plane
		if r.clip[tri[0]][3] < near && r.clip[tri[1]][3] < near && r.clip[tri[2]][3] < near {
			continue
		}

		// Face normal for flat shading
		a, b, c := r.world[tri[0]], r.world[tri[1]], r.world[tri[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Len() < 1e-12 {
			continue
		}
		face.Shade = lc.ComputeShade(n.Normalize())

		r.poly = r.poly[:0]
		for _, vi := range tri {
			cv := clipVert{P: r.clip[vi]}
			if face.Tex != nil {
				cv.U, cv.V = m.UVs[vi][0], m.UVs[vi][1]
			}
			r.poly = append(r.poly, cv)
		}
		r.clipped = clipNear(r.poly, near, r.clipped[:0])
		if len(r.clipped) < 3 {
			continue
		}

		var fan [3]Vertex
		fan[0] = project(r.clipped[0], fb)
		for i := 1; i+1 < len(r.clipped); i++ {
			fan[1] = project(r.clipped[i], fb)
			fan[2] = project(r.clipped[i+1], fb)
			RasterizeTriangle(fb, fan, &face, lc)
		}
	}
}

func project(cv clipVert, fb *FrameBuffer) Vertex {
	w := cv.P[3]
	x, y := viewmatrix.Viewport(cv.P[0]/w, cv.P[1]/w, fb.Width, fb.Height)
	return Vertex{X: x, Y: y, W: w, U: cv.U, V: cv.V}
}

// TrailRadius converts a marker scale to a world radius.
const TrailRadius = 0.5

func (r *Renderer) drawTrail(fb *FrameBuffer, sc *scene.Scene, cam *camera.Camera, vp mathutil.Mat4) {
	// projected radius in pixels = world radius × focal × H/2 / w
	focal := cam.Projection[5] * float64(fb.Height) / 2
	for _, m := range sc.Trail.Markers() {
		x, y, w, ok := viewmatrix.ProjectPoint(vp, m.Pos, fb.Width, fb.Height, cam.Near)
		if !ok {
			continue
		}
		DrawSprite(fb, x, y, m.Scale*TrailRadius*focal/w, 1/w, scene.BallColor, m.Opacity)
	}
}
