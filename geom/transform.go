package geom

// Basis is a 3x3 rotation/scale matrix stored as its three column axes,
// matching how scene hosts expose a node's global transform.
type Basis struct {
	X, Y, Z V3 // columns: local right, up, back axes in world space.
}

// Identity returns the unrotated, unscaled basis.
func Identity() Basis {
	return Basis{
		X: V3{1, 0, 0},
		Y: V3{0, 1, 0},
		Z: V3{0, 0, 1},
	}
}

// Xform transforms a local-space vector v into the space described by b,
// i.e. treats v's components as coordinates along b's axes.
func (b Basis) Xform(v V3) V3 {
	return V3{
		b.X.X*v.X + b.Y.X*v.Y + b.Z.X*v.Z,
		b.X.Y*v.X + b.Y.Y*v.Y + b.Z.Y*v.Z,
		b.X.Z*v.X + b.Y.Z*v.Y + b.Z.Z*v.Z,
	}
}

// Transform is a rigid(ish) placement in world space: a basis plus an
// origin, as reported by a scene host for any node's global transform.
type Transform struct {
	Basis  Basis
	Origin V3
}

// IdentityTransform returns the transform with no rotation/scale and the
// origin at zero.
func IdentityTransform() Transform {
	return Transform{Basis: Identity()}
}

// Xform maps a point from the local space described by t into world space.
func (t Transform) Xform(p V3) V3 {
	return t.Basis.Xform(p).Add(t.Origin)
}

// XformNormal maps a direction vector, ignoring translation.
func (t Transform) XformNormal(v V3) V3 {
	return t.Basis.Xform(v)
}

// Forward returns the transform's world-space facing direction: the
// negative of its Z basis axis, matching the convention used to derive a
// light's direction from its node orientation.
func (t Transform) Forward() V3 {
	return t.Basis.Z.Neg()
}
