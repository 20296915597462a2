package lportal

import "strings"

// Name prefixes that classify a scene-graph node, per the authoring
// contract: a room's subtree may contain portal/bound/ignore nodes
// distinguished purely by name. Portals and bounds are only built from a
// room's immediate children; deeper ones are skipped, not indexed.
const (
	prefixRoom   = "room_"
	prefixPortal = "portal_"
	prefixBound  = "bound_"
	prefixIgnore = "ignore_"
)

// NameStartsWith is a plain prefix test.
func NameStartsWith(name, prefix string) bool {
	return strings.HasPrefix(name, prefix)
}

// FindNameAfter returns the substring of name following prefix, up to the
// next '_'-delimited separator or the end of the string. Room/portal/bound
// names may carry a disambiguating suffix (e.g. "room_hall_01"); only the
// first segment after the prefix is the short name used for matching and
// display.
func FindNameAfter(name, prefix string) string {
	rest := strings.TrimPrefix(name, prefix)
	if i := strings.IndexByte(rest, '_'); i >= 0 {
		return rest[:i]
	}
	return rest
}

// IsRoom reports whether n is a room: a Spatial whose name begins room_.
func IsRoom(h Host, n NodeID) bool {
	return h.Kind(n) == KindSpatial && NameStartsWith(h.Name(n), prefixRoom)
}

// IsPortal reports whether n is a portal mesh: a Mesh whose name begins portal_.
func IsPortal(h Host, n NodeID) bool {
	return h.Kind(n) == KindMesh && NameStartsWith(h.Name(n), prefixPortal)
}

// IsBound reports whether n is a bound mesh: a Mesh whose name begins bound_.
func IsBound(h Host, n NodeID) bool {
	return h.Kind(n) == KindMesh && NameStartsWith(h.Name(n), prefixBound)
}

// IsIgnore reports whether n is an ignore node: any node named ignore_*.
// No type restriction applies, unlike room/portal/bound.
func IsIgnore(h Host, n NodeID) bool {
	return NameStartsWith(h.Name(n), prefixIgnore)
}

// IsLight reports whether n is a light node.
func IsLight(h Host, n NodeID) bool {
	return h.Kind(n) == KindLight
}
