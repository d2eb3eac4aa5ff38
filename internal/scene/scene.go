// Package scene assembles the static rally world: court surface, floor,
// net, both player rigs, the ball, the trail pool and the lighting.
package scene

import (
	"image/color"
	"math"

	"smartcourt/internal/court"
	"smartcourt/internal/mathutil"
	"smartcourt/internal/mesh"
	"smartcourt/internal/skeleton"
	"smartcourt/internal/trail"
	"smartcourt/internal/trajectory"
)

// CourtTexture is the texture name the court surface material refers to.
const CourtTexture = "court"

const (
	BallRadius = 0.12
	// MarkInset is how far inside the baseline players start.
	MarkInset = 2.5
	floorSize = 400
	floorY    = -0.02
)

var (
	BallColor    = mesh.Hex(0xfff65a)
	BallEmissive = mesh.Hex(0x282600)
	Background   = mesh.Hex(0x04070c)
)

// Player kits.
var (
	KitA    = mesh.Hex(0xffffff)
	AccentA = mesh.Hex(0x19c8ff)
	KitB    = mesh.Hex(0x222222)
	AccentB = mesh.Hex(0xffe47a)
)

// Lights is a hemisphere sky/ground fill plus one directional sun.
type Lights struct {
	Sky, Ground  color.NRGBA
	Hemisphere   float64
	SunDir       mathutil.Vec3 // unit vector pointing toward the sun
	SunIntensity float64
}

// Fog blends distant fragments linearly into Color between Near and Far.
type Fog struct {
	Color     color.NRGBA
	Near, Far float64
}

// Object is a static mesh placed in the world.
type Object struct {
	Name  string
	Mesh  *mesh.Mesh
	World mathutil.Mat4
}

// Drawable is any mesh with its world transform for this frame.
type Drawable struct {
	Mesh  *mesh.Mesh
	World mathutil.Mat4
}

// Options configures Build.
type Options struct {
	Court     court.Court
	Script    trajectory.Script
	TrailSize int
}

// Scene is the full rally world. Rigs, ball and trail mutate every tick;
// everything else is fixed after Build.
type Scene struct {
	Court   court.Court
	Static  []Object
	PlayerA *skeleton.Rig
	PlayerB *skeleton.Rig

	Ball     mathutil.Vec3
	BallMesh *mesh.Mesh
	Trail    *trail.Pool

	Lights     Lights
	Fog        Fog
	Background color.NRGBA
}

// Build constructs the scene. It is deterministic.
func Build(opts Options) *Scene {
	c := opts.Court
	sw, sl := c.SurfaceSize()

	surface := mesh.Plane(sw, sl, 1, 1).WithMaterial(mesh.Material{
		Color:   mesh.Hex(0xffffff),
		Texture: CourtTexture,
	})
	floor := mesh.Plane(floorSize, floorSize, 8, 8).WithMaterial(mesh.Material{Color: mesh.Hex(0x0a0e15)})
	net := mesh.Box(c.W(), c.NetH(), 0.05).WithMaterial(mesh.Material{
		Color:    mesh.Hex(0x1c2430),
		Emissive: mesh.Hex(0x05080c),
	})
	tape := mesh.Box(c.W(), 0.08, 0.075).WithMaterial(mesh.Material{Color: mesh.Hex(0xf4f7fb)})

	s := &Scene{
		Court: c,
		Static: []Object{
			{Name: "floor", Mesh: floor, World: translate(0, floorY, 0)},
			{Name: "surface", Mesh: surface, World: mathutil.Mat4Identity()},
			{Name: "net", Mesh: net, World: translate(0, c.NetH()/2, 0)},
			{Name: "net_tape", Mesh: tape, World: translate(0, c.NetH()+0.04, 0.02)},
		},
		PlayerA:  skeleton.Build("A", KitA, AccentA),
		PlayerB:  skeleton.Build("B", KitB, AccentB),
		Ball:     opts.Script.Start(),
		BallMesh: mesh.Sphere(BallRadius, 12, 8).WithMaterial(mesh.Material{Color: BallColor, Emissive: BallEmissive}),
		Trail:    trail.New(opts.TrailSize),
		Lights: Lights{
			Sky:          mesh.Hex(0xbfd8ff),
			Ground:       mesh.Hex(0x223344),
			Hemisphere:   0.6,
			SunDir:       mathutil.Vec3{-40, 60, 20}.Normalize(),
			SunIntensity: 1.15,
		},
		Fog:        Fog{Color: Background, Near: 90, Far: 220},
		Background: Background,
	}
	s.ResetPlayers()
	return s
}

// Marks returns the starting positions of players A and B.
func (s *Scene) Marks() (a, b mathutil.Vec3) {
	z := s.Court.L()/2 - MarkInset
	return mathutil.Vec3{0, 0, z}, mathutil.Vec3{0, 0, -z}
}

// ResetPlayers returns both rigs to their marks, facing each other, in
// their rest pose.
func (s *Scene) ResetPlayers() {
	a, b := s.Marks()
	s.PlayerA.Place(a, math.Pi)
	s.PlayerB.Place(b, 0)
	s.PlayerA.ResetPose()
	s.PlayerB.ResetPose()
}

// Drawables appends every mesh in the scene with its current world
// transform to dst. Trail markers are not meshes and are not included.
func (s *Scene) Drawables(dst []Drawable) []Drawable {
	for _, o := range s.Static {
		dst = append(dst, Drawable{Mesh: o.Mesh, World: o.World})
	}
	for _, r := range []*skeleton.Rig{s.PlayerA, s.PlayerB} {
		world := r.WorldMatrices(nil)
		for i, n := range r.Nodes {
			if n.Mesh != nil {
				dst = append(dst, Drawable{Mesh: n.Mesh, World: world[i]})
			}
		}
	}
	dst = append(dst, Drawable{Mesh: s.BallMesh, World: translate(s.Ball.X(), s.Ball.Y(), s.Ball.Z())})
	return dst
}

func translate(x, y, z float64) mathutil.Mat4 {
	return mathutil.FromMat3Translation(mathutil.Mat3Identity(), mathutil.Vec3{x, y, z})
}
