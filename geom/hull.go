package geom

// HullFace is one triangular face of a built hull: the indices of its three
// vertices (into the point set given to the builder) and the plane of the
// face, with the normal pointing outward.
type HullFace struct {
	A, B, C int
	Plane   Plane
}

// Hull is the result of building a convex hull over a point set: every face
// is a triangle with an outward-facing plane. Bound meshes are harvested by
// walking Faces and deduplicating planes, not by walking Points directly.
type Hull struct {
	Points []V3
	Faces  []HullFace
}

// HullBuilder builds convex hulls from point clouds. It is kept as an
// interface so the reference incremental builder here can be swapped for a
// more robust third-party implementation without touching callers.
type HullBuilder interface {
	Build(points []V3) (Hull, bool)
}

// QuickHull is the default HullBuilder: a simple incremental hull
// construction. It is not the fastest available algorithm, but bound
// volumes are small hand-authored meshes, not arbitrary point clouds, so
// raw throughput is not a concern.
type QuickHull struct{}

// Build constructs the convex hull of points. It returns false if fewer
// than 4 non-coplanar points are given, since no bound volume makes sense
// as a degenerate shape.
func (QuickHull) Build(points []V3) (Hull, bool) {
	n := len(points)
	if n < 4 {
		return Hull{}, false
	}

	// Seed the hull with a non-degenerate tetrahedron.
	i0, i1, i2, i3, ok := seedTetrahedron(points)
	if !ok {
		return Hull{}, false
	}

	centroid := points[i0].Add(points[i1]).Add(points[i2]).Add(points[i3]).Scale(0.25)

	faces := []HullFace{
		newOutwardFace(points, i0, i1, i2, centroid),
		newOutwardFace(points, i0, i2, i3, centroid),
		newOutwardFace(points, i0, i3, i1, centroid),
		newOutwardFace(points, i1, i3, i2, centroid),
	}

	used := map[int]bool{i0: true, i1: true, i2: true, i3: true}

	// Incrementally add remaining points: any point outside the current
	// hull removes the faces it can see and the hole is patched with new
	// faces fanned from the point to the hole's boundary edges.
	for i := 0; i < n; i++ {
		if used[i] {
			continue
		}
		p := points[i]

		var visible []HullFace
		var remaining []HullFace
		for _, f := range faces {
			if f.Plane.Distance(p) > Epsilon {
				visible = append(visible, f)
			} else {
				remaining = append(remaining, f)
			}
		}
		if len(visible) == 0 {
			continue // p is inside the current hull.
		}

		edges := boundaryEdges(visible)
		for _, e := range edges {
			remaining = append(remaining, newOutwardFace(points, e[0], e[1], i, centroid))
		}
		faces = remaining
		used[i] = true
	}

	return Hull{Points: points, Faces: faces}, true
}

func seedTetrahedron(points []V3) (i0, i1, i2, i3 int, ok bool) {
	n := len(points)
	i0, i1 = 0, 1
	for i2 = 2; i2 < n; i2++ {
		if !points[i2].Aeq(points[i0]) && !points[i2].Aeq(points[i1]) {
			break
		}
	}
	if i2 >= n {
		return 0, 0, 0, 0, false
	}
	normal := points[i1].Sub(points[i0]).Cross(points[i2].Sub(points[i0]))
	for i3 = i2 + 1; i3 < n; i3++ {
		d := normal.Dot(points[i3].Sub(points[i0]))
		if d > Epsilon || d < -Epsilon {
			return i0, i1, i2, i3, true
		}
	}
	return 0, 0, 0, 0, false
}

func newOutwardFace(points []V3, a, b, c int, centroid V3) HullFace {
	plane := PlaneFromPoints(points[a], points[b], points[c])
	if plane.Distance(centroid) > 0 {
		plane = plane.Flip()
		a, b = b, a
	}
	return HullFace{A: a, B: b, C: c, Plane: plane}
}

// boundaryEdges returns the edges of the visible-face set that border the
// remaining hull: edges shared by two visible faces are interior to the
// hole and are dropped.
func boundaryEdges(visible []HullFace) [][2]int {
	type edge struct{ a, b int }
	count := map[edge]int{}
	order := [][2]int{}
	add := func(a, b int) {
		key := edge{a, b}
		rev := edge{b, a}
		if count[rev] > 0 {
			count[rev]--
			return
		}
		count[key]++
		order = append(order, [2]int{a, b})
	}
	for _, f := range visible {
		add(f.A, f.B)
		add(f.B, f.C)
		add(f.C, f.A)
	}
	out := order[:0]
	for _, e := range order {
		if count[edge{e[0], e[1]}] > 0 {
			out = append(out, e)
		}
	}
	return out
}
