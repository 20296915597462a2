package lportal

import "github.com/lawnjelly/lportal/geom"

// addLightPlanes appends, to planes, the half-spaces that restrict the
// view through portal p to the silhouette swept by light from its
// position/direction through p's polygon, plus the portal's own
// supporting plane so geometry behind the portal is excluded.
//
// fromReceiverSide is true when called from the shadow-caster resolver
// (walking from the affected room back toward the light) and false when
// called from the light tracer (walking from the light outward). Edge
// planes are always oriented by the portal centroid, so the swept volume's
// interior is on the n.x+d <= 0 side for either walk and AABB tests keep
// the r_min > 0 means culled convention; only the portal's own supporting
// plane is appended flipped when fromReceiverSide is true.
func addLightPlanes(planes []geom.Plane, p *Portal, light *Light, fromReceiverSide bool) []geom.Plane {
	poly := p.Polygon
	n := len(poly)

	addEdgePlane := func(a, b, apex geom.V3) {
		plane := geom.PlaneFromPoints(a, b, apex)
		// Orient so the swept volume's interior satisfies n.x+d <= 0:
		// the portal centroid, which lies inside the sweep by
		// construction, must be on that side.
		if plane.Distance(p.Centroid) > 0 {
			plane = plane.Flip()
		}
		planes = append(planes, plane)
	}

	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		var apex geom.V3
		switch light.Type {
		case LightDirectional:
			apex = a.Add(light.Direction)
		default: // omni/spot
			apex = light.Position
		}
		addEdgePlane(a, b, apex)
	}

	portalPlane := p.Plane
	if fromReceiverSide {
		portalPlane = portalPlane.Flip()
	}
	planes = append(planes, portalPlane)

	return planes
}

// clipPolygonAgainstPlanes clips poly against every plane in planes in
// turn, short-circuiting as soon as nothing survives.
func clipPolygonAgainstPlanes(poly []geom.V3, planes []geom.Plane) ([]geom.V3, geom.ClipResult) {
	cur := poly
	for _, p := range planes {
		clipped, res := geom.ClipPolygon(cur, p)
		if res == geom.ClipOutside {
			return nil, geom.ClipOutside
		}
		cur = clipped
	}
	return cur, geom.ClipInside
}

// aabbVisible reports whether aabb can be seen through every plane in
// planes: if any plane's r_min > 0 the box is entirely outside that
// half-space and therefore culled.
func aabbVisible(aabb geom.AABB, planes []geom.Plane) bool {
	for _, p := range planes {
		rMin, _ := aabb.ProjectRangeInPlane(p)
		if rMin > 0 {
			return false
		}
	}
	return true
}
