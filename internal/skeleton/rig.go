package skeleton

import (
	"image/color"
	"math"

	"smartcourt/internal/mathutil"
	"smartcourt/internal/mesh"
)

// Node is one rigid segment or pivot of a rig. Parents always precede
// their children in Rig.Nodes, so a single forward pass composes transforms.
type Node struct {
	Name   string
	Parent int           // -1 = rig root
	Offset mathutil.Vec3 // local position relative to parent
	Rest   mathutil.Vec3 // rest pose, Euler XYZ radians
	Rot    mathutil.Vec3 // current pose, Euler XYZ radians
	Mesh   *mesh.Mesh    // nil for pivot-only nodes
}

// Handles indexes the nodes the agent controller animates.
type Handles struct {
	Torso, Head              int
	Shoulder, Hip            int
	ArmLead, ArmTrail        int
	ElbowLead, ElbowTrail    int
	HandLead, HandTrail      int
	LegL, LegR, KneeL, KneeR int
	Racket                   int
}

// Rig is one articulated player: an arena of nodes plus a world placement.
type Rig struct {
	Name     string
	Nodes    []Node
	Handles  Handles
	Position mathutil.Vec3
	Yaw      float64 // rotation about +Y; 0 faces +Z
}

// Body proportions, roughly human at 1.75 m.
const (
	shoulderW = 0.58
	hipW      = 0.38
	torsoH    = 1.05
	legH      = 0.95 // thigh + shin
	armH      = 0.8  // upper arm + forearm

	limbSegments = 10
)

var (
	skinColor  = mesh.Hex(0xead1bd)
	hairColor  = mesh.Hex(0x30343b)
	gripColor  = mesh.Hex(0x222222)
	stringsCol = mesh.Hex(0xdddddd)
)

// Build assembles a player rig with the given kit and accent colors.
// The rig stands at the origin facing +Z in its rest pose.
func Build(name string, kit, accent color.NRGBA) *Rig {
	r := &Rig{Name: name}
	kitMat := mesh.Material{Color: kit}
	accentMat := mesh.Material{Color: accent}
	skinMat := mesh.Material{Color: skinColor}
	deg := mathutil.Deg2Rad

	r.add("pelvis", -1, v(0, 1.15, 0), v(0, 0, 0), mesh.Box(hipW, 0.25, 0.3).WithMaterial(kitMat))
	r.Handles.Torso = r.add("torso", -1, v(0, 1.65, 0), v(deg(-2), 0, 0),
		mesh.Capsule(0.26, torsoH*0.45, 4, 12).WithMaterial(kitMat))
	r.add("neck", -1, v(0, 2.22, 0.02), v(0, 0, 0), mesh.Cylinder(0.06, 0.07, 0.1, 8).WithMaterial(skinMat))
	r.Handles.Head = r.add("head", -1, v(0, 2.4, 0.04), v(deg(-3), 0, 0), mesh.Sphere(0.2, 14, 10).WithMaterial(skinMat))
	r.add("hair", r.Handles.Head, v(0, 0, 0), v(0, 0, 0),
		mesh.SphereCap(0.205, 14, 6, math.Pi*0.55).WithMaterial(mesh.Material{Color: hairColor}))

	r.Handles.Shoulder = r.add("shoulder", -1, v(0, 2.03, 0), v(0, 0, deg(2)), nil)
	r.Handles.Hip = r.add("hip", -1, v(0, 1.2, 0), v(0, 0, 0), nil)

	r.Handles.ArmLead, r.Handles.ElbowLead, r.Handles.HandLead = r.addArm("lead", +shoulderW/2, deg(-10), kitMat, skinMat)
	r.Handles.ArmTrail, r.Handles.ElbowTrail, r.Handles.HandTrail = r.addArm("trail", -shoulderW/2, deg(-6), kitMat, skinMat)

	r.Handles.LegL, r.Handles.KneeL = r.addLeg("l", +hipW/2, deg(4), kitMat, accentMat)
	r.Handles.LegR, r.Handles.KneeR = r.addLeg("r", -hipW/2, deg(-2), kitMat, accentMat)

	r.add("shorts", -1, v(0, 1.33, 0.01), v(0, 0, 0), mesh.Box(hipW*0.95, 0.26, 0.32).WithMaterial(accentMat))

	r.Handles.Racket = r.add("racket", r.Handles.HandLead, v(0, 0, 0), v(0, 0, 0), nil)
	r.add("racket_grip", r.Handles.Racket, v(0.18, -0.02, 0), v(0, 0, math.Pi/2),
		mesh.Cylinder(0.04, 0.05, 0.35, 8).WithMaterial(mesh.Material{Color: gripColor}))
	r.add("racket_hoop", r.Handles.Racket, v(0.42, 0.06, 0), v(0, math.Pi/2, 0),
		mesh.Torus(0.22, 0.03, 6, 20).WithMaterial(mesh.Material{Color: stringsCol}))

	return r
}

func (r *Rig) addArm(side string, x, restX float64, kitMat, skinMat mesh.Material) (arm, elbow, hand int) {
	arm = r.add("arm_"+side, r.Handles.Shoulder, v(x, 0, 0), v(restX, 0, 0), nil)
	r.add("upper_arm_"+side, arm, v(0, -armH*0.25, 0), v(0, 0, 0),
		mesh.Cylinder(0.085, 0.095, armH*0.5, limbSegments).WithMaterial(kitMat))
	elbow = r.add("elbow_"+side, arm, v(0, -armH*0.5, 0), v(0, 0, 0), nil)
	r.add("forearm_"+side, elbow, v(0, -armH*0.25, 0), v(0, 0, 0),
		mesh.Cylinder(0.07, 0.085, armH*0.5, limbSegments).WithMaterial(skinMat))
	hand = r.add("hand_"+side, arm, v(0, -armH*0.52, 0.02), v(0, 0, 0),
		mesh.Box(0.11, 0.1, 0.05).WithMaterial(skinMat))
	return arm, elbow, hand
}

func (r *Rig) addLeg(side string, x, restX float64, kitMat, accentMat mesh.Material) (leg, knee int) {
	leg = r.add("leg_"+side, r.Handles.Hip, v(x, 0, 0), v(restX, 0, 0), nil)
	r.add("thigh_"+side, leg, v(0, -legH*0.25, 0), v(0, 0, 0),
		mesh.Cylinder(0.11, 0.12, legH*0.5, limbSegments).WithMaterial(kitMat))
	knee = r.add("knee_"+side, leg, v(0, -legH*0.5, 0), v(0, 0, 0), nil)
	r.add("shin_"+side, knee, v(0, -legH*0.25, 0), v(0, 0, 0),
		mesh.Cylinder(0.09, 0.105, legH*0.5, limbSegments).WithMaterial(kitMat))
	r.add("foot_"+side, leg, v(0.06, -legH*0.52, 0.04), v(mathutil.Deg2Rad(8), 0, 0),
		mesh.Box(0.28, 0.11, 0.15).WithMaterial(accentMat))
	return leg, knee
}

func (r *Rig) add(name string, parent int, offset, rest mathutil.Vec3, m *mesh.Mesh) int {
	r.Nodes = append(r.Nodes, Node{
		Name:   name,
		Parent: parent,
		Offset: offset,
		Rest:   rest,
		Rot:    rest,
		Mesh:   m,
	})
	return len(r.Nodes) - 1
}

// Find returns the index of the named node, or -1.
func (r *Rig) Find(name string) int {
	for i := range r.Nodes {
		if r.Nodes[i].Name == name {
			return i
		}
	}
	return -1
}

// ResetPose restores every node to its rest rotation.
func (r *Rig) ResetPose() {
	for i := range r.Nodes {
		r.Nodes[i].Rot = r.Nodes[i].Rest
	}
}

// Place moves the rig to pos with the given yaw.
func (r *Rig) Place(pos mathutil.Vec3, yaw float64) {
	r.Position = pos
	r.Yaw = yaw
}

func v(x, y, z float64) mathutil.Vec3 {
	return mathutil.Vec3{x, y, z}
}
