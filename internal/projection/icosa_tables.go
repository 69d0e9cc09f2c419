package projection

import "github.com/golang/geo/r2"

// Layout of the unfolded icosahedron, in units of one triangle base (x) and
// one triangle height (y).
const (
	icosaLayoutWide = 5.25
	icosaLayoutHigh = 3

	icosaFindCols = 12
	icosaFindRows = 3
)

// icosaVertices are the icosahedron vertices as (lat, lon) in degrees.
var icosaVertices = [...][2]float64{
	{+64.700000, 10.536200},   //  0
	{+2.300882, -5.245390},    //  1
	{+10.447378, 58.157710},   //  2
	{+39.100000, 122.300000},  //  3
	{+50.103201, -143.478490}, //  4
	{+23.717925, -67.132330},  //  5
	{-39.100000, -57.700000},  //  6
	{-50.103200, 36.521500},   //  7
	{-23.717925, 112.867670},  //  8
	{-2.300900, 174.754600},   //  9
	{-10.447345, -121.842290}, // 10
	{-64.700000, -169.463800}, // 11
	{+70.750433, 26.020416},   // 12
	{+60.846374, 43.157248},   // 13
	{+0.000000, 0.000000},     // 14
}

// icosaLayout places layout points on the plane and ties each to an
// icosahedron vertex.
var icosaLayout = [...]struct {
	p r2.Point
	v int
}{
	{r2.Point{X: 0.5, Y: 0}, 7},  //  0
	{r2.Point{X: 1.5, Y: 0}, 1},  //  1
	{r2.Point{X: 2.5, Y: 0}, 5},  //  2
	{r2.Point{X: 3.5, Y: 0}, 1},  //  3
	{r2.Point{X: 4.5, Y: 0}, 1},  //  4
	{r2.Point{X: 0, Y: 1}, 7},    //  5
	{r2.Point{X: 1, Y: 1}, 2},    //  6
	{r2.Point{X: 2, Y: 1}, 0},    //  7
	{r2.Point{X: 3, Y: 1}, 5},    //  8
	{r2.Point{X: 4, Y: 1}, 6},    //  9
	{r2.Point{X: 5, Y: 1}, 7},    // 10
	{r2.Point{X: -.5, Y: 2}, 7},  // 11
	{r2.Point{X: 0.5, Y: 2}, 8},  // 12
	{r2.Point{X: 1.5, Y: 2}, 3},  // 13
	{r2.Point{X: 2.5, Y: 2}, 4},  // 14
	{r2.Point{X: 3.5, Y: 2}, 10}, // 15
	{r2.Point{X: 4.5, Y: 2}, 11}, // 16
	{r2.Point{X: 5.5, Y: 2}, 8},  // 17
	{r2.Point{X: 0, Y: 3}, 11},   // 18
	{r2.Point{X: 1, Y: 3}, 9},    // 19
	{r2.Point{X: 2, Y: 3}, 9},    // 20
	{r2.Point{X: 3, Y: 3}, 9},    // 21
	{r2.Point{X: 4, Y: 3}, 9},    // 22
	{r2.Point{X: 5, Y: 3}, 9},    // 23
	{r2.Point{X: 1, Y: 3}, 8},    // 24: same place as 19, other vertex
}

// icosaTriangles lists layout point indices per triangle and the clip
// polygon applied to it, or -1.
var icosaTriangles = [...]struct {
	v1, v2, v3 int
	clip       int
}{
	{0, 1, 6, -1},    //  0
	{1, 6, 7, -1},    //  1
	{1, 2, 7, -1},    //  2
	{3, 8, 9, -1},    //  3
	{4, 9, 10, -1},   //  4
	{5, 6, 12, -1},   //  5
	{6, 12, 13, -1},  //  6
	{6, 7, 13, -1},   //  7
	{7, 13, 14, -1},  //  8
	{7, 8, 14, -1},   //  9
	{8, 14, 15, -1},  // 10
	{8, 9, 15, -1},   // 11
	{9, 10, 16, -1},  // 12
	{9, 15, 16, -1},  // 13
	{10, 16, 17, 3},  // 14
	{11, 12, 18, 2},  // 15
	{12, 18, 19, 4},  // 16
	{12, 13, 19, 0},  // 17
	{13, 14, 20, -1}, // 18
	{13, 24, 20, 1},  // 19
	{14, 15, 21, -1}, // 20
	{15, 16, 22, -1}, // 21
	{16, 17, 23, 5},  // 22
}

// icosaClipPaths are the seam clip polygons in layout units. Each is
// implicitly closed.
var icosaClipPaths = [...][]r2.Point{
	{{X: 0.5, Y: 2}, {X: 1, Y: 3}, {X: 1, Y: 2 + 1/3.}, {X: 1.5, Y: 2}},
	{{X: 1.5, Y: 2}, {X: 1.5, Y: 2 + 2/3.}, {X: 2, Y: 3}},
	{{X: 0, Y: 2}, {X: 0.25, Y: 2.5}, {X: 0.5, Y: 2}},
	{{X: 5, Y: 1}, {X: 5.25, Y: 1.5}, {X: 5, Y: 2}, {X: 4.5, Y: 2}},
	{{X: 0.5, Y: 2}, {X: 0.25, Y: 2.5}, {X: 0.3, Y: 3}, {X: 1, Y: 3}},
	{{X: 4.5, Y: 2}, {X: 5, Y: 2}, {X: 4.65, Y: 2.3}},
}
