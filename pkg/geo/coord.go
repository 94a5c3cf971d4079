// Package geo provides the integer point type used to locate affiliations
// and the orderings defined over it.
//
// Points are ordered by their distance from the origin, truncated to an
// integer, then by Y and finally by X. The truncation is deliberate: points
// whose distances share the same integer part fall back to the Y/X
// tie-break, which keeps the ordering a total order over integer points.
package geo

import (
	"fmt"
	"math"
)

// NoValue marks an unset coordinate component.
const NoValue = math.MinInt

// Coord is a point on the integer plane. Coord is comparable and can be used
// directly as a map key.
type Coord struct {
	X int `json:"x" toml:"x"`
	Y int `json:"y" toml:"y"`
}

// NoCoord is returned by lookups that find nothing.
var NoCoord = Coord{X: NoValue, Y: NoValue}

// IsValid reports whether c is not the NoCoord sentinel.
func (c Coord) IsValid() bool { return c != NoCoord }

// String formats c as "(x,y)", or "(--,--)" for NoCoord.
func (c Coord) String() string {
	if !c.IsValid() {
		return "(--,--)"
	}
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// OriginDistance returns the Euclidean distance of c from (0,0), truncated
// toward zero. The result is never negative, even at the limits of the int
// range.
func (c Coord) OriginDistance() float64 {
	return math.Floor(math.Hypot(float64(c.X), float64(c.Y)))
}

// Less reports whether a sorts before b: smaller truncated origin distance
// first, then smaller Y, then smaller X.
func Less(a, b Coord) bool {
	return Compare(a, b) < 0
}

// Compare returns -1, 0 or +1 following the same ordering as [Less].
// It returns 0 only when a == b.
func Compare(a, b Coord) int {
	da, db := a.OriginDistance(), b.OriginDistance()
	switch {
	case da < db:
		return -1
	case da > db:
		return 1
	case a.Y < b.Y:
		return -1
	case a.Y > b.Y:
		return 1
	case a.X < b.X:
		return -1
	case a.X > b.X:
		return 1
	}
	return 0
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Coord) float64 {
	dx := float64(a.X) - float64(b.X)
	dy := float64(a.Y) - float64(b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
