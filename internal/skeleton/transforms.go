package skeleton

import (
	"smartcourt/internal/mathutil"
)

// RootMatrix returns the rig placement: translation × yaw.
func (r *Rig) RootMatrix() mathutil.Mat4 {
	return mathutil.FromMat3Translation(mathutil.RotY(r.Yaw), r.Position)
}

// LocalMatrix returns a node's transform relative to its parent.
func (n *Node) LocalMatrix() mathutil.Mat4 {
	return mathutil.FromMat3Translation(mathutil.EulerXYZ(n.Rot), n.Offset)
}

// BuildWorldMatrices computes the world transform of every node in one
// forward pass. Returns a slice of 4×4 matrices indexed by node index.
func BuildWorldMatrices(r *Rig) []mathutil.Mat4 {
	return r.WorldMatrices(nil)
}

// WorldMatrices is BuildWorldMatrices writing into dst when it has room.
func (r *Rig) WorldMatrices(dst []mathutil.Mat4) []mathutil.Mat4 {
	if cap(dst) < len(r.Nodes) {
		dst = make([]mathutil.Mat4, len(r.Nodes))
	}
	dst = dst[:len(r.Nodes)]

	root := r.RootMatrix()
	for i := range r.Nodes {
		n := &r.Nodes[i]
		local := n.LocalMatrix()

		// Chain with parent
		if n.Parent >= 0 && n.Parent < i {
			dst[i] = mathutil.Mat4Mul(dst[n.Parent], local)
		} else {
			dst[i] = mathutil.Mat4Mul(root, local)
		}
	}
	return dst
}

// WorldPosition returns the world-space origin of node i.
func (r *Rig) WorldPosition(i int) mathutil.Vec3 {
	return r.WorldMatrices(nil)[i].Translation()
}
