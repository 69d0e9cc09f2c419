package projection

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Icosagnomonic unfolds an icosahedron onto the plane, Fuller style, with
// each face drawn as a gnomonic projection centered on the face. The
// gnomonic image of a face is mapped affinely onto its layout triangle, so
// face edges meet the layout edges exactly.
type Icosagnomonic struct {
	base
	layoutW, layoutH float64
	baseW, baseH     float64
	offset           r2.Point

	triangles []icosaTriangle
	// finder buckets triangle indices by half-base column and row.
	finder [icosaFindCols][icosaFindRows][]int
}

// icosaTriangle is one face of the unfolded layout. A non-nil clip restricts
// the face to the part of the layout it owns along a seam.
type icosaTriangle struct {
	planar    [3]r2.Point
	spherical [3]s2.Point
	clip      []r2.Point

	// Tangent plane at the face center: center, basis, and the gnomonic
	// images of the three vertices.
	center  r3.Vector
	e1, e2  r3.Vector
	tangent [3]r2.Point
}

// icosaEdgeTolerance is the barycentric slack granted to points that
// rounding puts just outside their face.
const icosaEdgeTolerance = 1e-9

// icosaRatio is the layout's height over its width.
var icosaRatio = icosaLayoutHigh * math.Sqrt(3) / 2 / icosaLayoutWide

func NewIcosagnomonic(opts Options) *Icosagnomonic {
	p := &Icosagnomonic{base: newBase(opts, false)}

	w, h := float64(p.width), float64(p.height)
	if w*icosaRatio > h {
		p.layoutW, p.layoutH = h/icosaRatio, h
	} else {
		p.layoutW, p.layoutH = w, w*icosaRatio
	}
	p.baseW = p.layoutW / icosaLayoutWide
	p.baseH = p.layoutH / icosaLayoutHigh

	// Keep the whole layout on the image whatever the center.
	p.offset = r2.Point{
		X: clampf(p.centerX-p.layoutW/2, 0, w-p.layoutW),
		Y: clampf(p.centerY-p.layoutH/2, 0, h-p.layoutH),
	}

	scale := func(q r2.Point) r2.Point {
		return r2.Point{X: q.X * p.baseW, Y: q.Y * p.baseH}
	}
	p.triangles = make([]icosaTriangle, 0, len(icosaTriangles))
	for i, tri := range icosaTriangles {
		idx := [3]int{tri.v1, tri.v2, tri.v3}
		var (
			planar    [3]r2.Point
			spherical [3]s2.Point
			col, row  [3]int
		)
		for k, li := range idx {
			l := icosaLayout[li]
			planar[k] = scale(l.p)
			spherical[k] = icosaVertex(l.v)
			col[k] = int(l.p.X * 2)
			row[k] = int(l.p.Y)
		}

		var clip []r2.Point
		if tri.clip >= 0 {
			path := icosaClipPaths[tri.clip]
			clip = make([]r2.Point, len(path))
			for k, q := range path {
				clip[k] = scale(q)
			}
		}
		p.triangles = append(p.triangles, newIcosaTriangle(planar, spherical, clip))

		// Each triangle spans two half-base columns and one row, clip aside.
		fx := posmin(col[0], col[1], col[2])
		fy := posmin(row[0], row[1], row[2])
		p.finder[fx][fy] = append(p.finder[fx][fy], i)
		p.finder[fx+1][fy] = append(p.finder[fx+1][fy], i)
	}
	return p
}

// icosaVertex returns icosahedron vertex i as a unit vector.
func icosaVertex(i int) s2.Point {
	v := icosaVertices[i]
	return s2.PointFromLatLng(s2.LatLngFromDegrees(v[0], v[1]))
}

// posmin is the smallest non-negative value of a, b and c, or 0.
func posmin(a, b, c int) int {
	switch {
	case a < b && a < c && a >= 0:
		return a
	case b < c && b >= 0:
		return b
	case c >= 0:
		return c
	}
	return 0
}

func clampf(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func newIcosaTriangle(planar [3]r2.Point, spherical [3]s2.Point, clip []r2.Point) icosaTriangle {
	t := icosaTriangle{planar: planar, spherical: spherical, clip: clip}
	t.center = s2.PlanarCentroid(spherical[0], spherical[1], spherical[2]).Normalize()
	t.e1 = t.center.Ortho()
	t.e2 = t.center.Cross(t.e1)
	for i, v := range spherical {
		// Vertices are within 40° of the center, always on the near side.
		t.tangent[i], _ = t.toTangent(v.Vector)
	}
	return t
}

// toTangent is the gnomonic projection onto the face's tangent plane. It
// fails for the hemisphere facing away from the face.
func (t *icosaTriangle) toTangent(v r3.Vector) (r2.Point, bool) {
	d := v.Dot(t.center)
	if d <= 0 {
		return r2.Point{}, false
	}
	return r2.Point{X: v.Dot(t.e1) / d, Y: v.Dot(t.e2) / d}, true
}

func (t *icosaTriangle) fromTangent(g r2.Point) s2.Point {
	v := t.center.Add(t.e1.Mul(g.X)).Add(t.e2.Mul(g.Y))
	return s2.Point{Vector: v.Normalize()}
}

// barycentric returns the weights of p with respect to triangle abc.
func barycentric(p, a, b, c r2.Point) [3]float64 {
	u, v := b.Sub(a), c.Sub(a)
	den := u.Cross(v)
	s := p.Sub(a).Cross(v) / den
	r := u.Cross(p.Sub(a)) / den
	return [3]float64{1 - s - r, s, r}
}

func weigh(l [3]float64, pts [3]r2.Point) r2.Point {
	return pts[0].Mul(l[0]).Add(pts[1].Mul(l[1])).Add(pts[2].Mul(l[2]))
}

func minWeight(l [3]float64) float64 {
	return math.Min(l[0], math.Min(l[1], l[2]))
}

// sphericalSameSide reports whether p1 and p2 lie on the same side of the
// great circle through l1 and l2; a point on the circle counts for both.
func sphericalSameSide(p1, p2, l1, l2 s2.Point) bool {
	n := l1.Cross(l2.Vector)
	return n.Dot(p1.Vector)*n.Dot(p2.Vector) >= 0
}

func inSphericalTriangle(p, a, b, c s2.Point) bool {
	return sphericalSameSide(p, a, b, c) && sphericalSameSide(p, b, a, c) && sphericalSameSide(p, c, a, b)
}

// windingNumber of the closed polygon around p; non-zero means inside.
func windingNumber(poly []r2.Point, p r2.Point) int {
	wn := 0
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		side := (b.X-a.X)*(p.Y-a.Y) - (p.X-a.X)*(b.Y-a.Y)
		if a.Y <= p.Y {
			if b.Y > p.Y && side > 0 {
				wn++
			}
		} else if b.Y <= p.Y && side < 0 {
			wn--
		}
	}
	return wn
}

// polygonDistance is the distance from p to the nearest edge of the closed
// polygon.
func polygonDistance(poly []r2.Point, p r2.Point) float64 {
	best := math.Inf(1)
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		ab := b.Sub(a)
		s := 0.0
		if n2 := ab.Dot(ab); n2 > 0 {
			s = math.Max(0, math.Min(1, p.Sub(a).Dot(ab)/n2))
		}
		best = math.Min(best, p.Sub(a.Add(ab.Mul(s))).Norm())
	}
	return best
}

// inClip reports whether p lies in the part of the layout the triangle
// owns. slack widens the clip polygon by that many layout pixels.
func (t *icosaTriangle) inClip(p r2.Point, slack float64) bool {
	if t.clip == nil || windingNumber(t.clip, p) != 0 {
		return true
	}
	return slack > 0 && polygonDistance(t.clip, p) <= slack
}

// containsLL reports whether the face owns p: spherical containment,
// narrowed by the clip polygon for seam triangles.
func (t *icosaTriangle) containsLL(p s2.Point) bool {
	if !inSphericalTriangle(p, t.spherical[0], t.spherical[1], t.spherical[2]) {
		return false
	}
	if t.clip == nil {
		return true
	}
	q, ok := t.toPlane(p)
	return ok && t.inClip(q, 0)
}

// toPlane maps a sphere point to layout coordinates through the face's
// tangent plane. The result is only meaningful for points of this face.
func (t *icosaTriangle) toPlane(p s2.Point) (r2.Point, bool) {
	g, ok := t.toTangent(p.Vector)
	if !ok {
		return r2.Point{}, false
	}
	l := barycentric(g, t.tangent[0], t.tangent[1], t.tangent[2])
	return weigh(l, t.planar), true
}

func (t *icosaTriangle) toSphere(l [3]float64) s2.LatLng {
	return s2.LatLngFromPoint(t.fromTangent(weigh(l, t.tangent)))
}

func (p *Icosagnomonic) PixelToSpherical(x, y float64) (Surface, bool) {
	q := r2.Point{X: x, Y: y}.Sub(p.offset)
	fx := int(q.X / (p.baseW / 2))
	fy := int(q.Y / p.baseH)
	if fx < 0 || fy < 0 || fx >= icosaFindCols || fy >= icosaFindRows {
		return Surface{}, false
	}

	// A point strictly inside an owned region wins outright. Otherwise take
	// the closest face within the edge tolerance.
	var (
		near   *icosaTriangle
		nearL  [3]float64
		margin = -icosaEdgeTolerance
	)
	slack := icosaEdgeTolerance * p.baseW
	for _, i := range p.finder[fx][fy] {
		t := &p.triangles[i]
		l := barycentric(q, t.planar[0], t.planar[1], t.planar[2])
		m := minWeight(l)
		if m > 0 && t.inClip(q, 0) {
			ll := t.toSphere(l)
			return p.surface(ll.Lat.Radians(), ll.Lng.Radians(), 1)
		}
		if m >= margin && t.inClip(q, slack) {
			near, nearL, margin = t, l, m
		}
	}
	if near == nil {
		return Surface{}, false
	}
	ll := near.toSphere(nearL)
	return p.surface(ll.Lat.Radians(), ll.Lng.Radians(), 1)
}

func (p *Icosagnomonic) SphericalToPixel(lat, lon float64) (float64, float64, bool) {
	lat, lon = p.viewFromBody(lat, lon)
	pt := s2.PointFromLatLng(s2.LatLng{Lat: s1.Angle(lat), Lng: s1.Angle(lon)})

	// The spherical faces tile the sphere, so some face always contains pt
	// and the layout, which fits the image, always has a pixel for it.
	// Between the two halves of a seam face rounding can reject both clip
	// tests; the first containing face then takes the point.
	var (
		fallback r2.Point
		found    bool
	)
	for i := range p.triangles {
		t := &p.triangles[i]
		if !inSphericalTriangle(pt, t.spherical[0], t.spherical[1], t.spherical[2]) {
			continue
		}
		q, ok := t.toPlane(pt)
		if !ok {
			continue
		}
		if t.inClip(q, 0) {
			q = q.Add(p.offset)
			return q.X, q.Y, true
		}
		if !found {
			fallback, found = q, true
		}
	}
	if !found {
		return 0, 0, false
	}
	q := fallback.Add(p.offset)
	return q.X, q.Y, true
}

// Faces returns the outline of every layout triangle in image pixels.
func (p *Icosagnomonic) Faces() [][3]r2.Point {
	out := make([][3]r2.Point, len(p.triangles))
	for i, t := range p.triangles {
		for k, v := range t.planar {
			out[i][k] = v.Add(p.offset)
		}
	}
	return out
}
