// Package pwl approximates functions with integer piecewise-linear
// lookup tables.
//
// A table is a list of {x, y} points sorted by ascending x. Y(x)
// interpolates linearly between the two points surrounding x and
// extrapolates with the first or last segment when x lies outside the
// table. All arithmetic is 32-bit integer math; segment slopes use
// truncating division unless precomputed slopes are supplied.
package pwl

// Point is one table entry.
type Point struct {
	X int32
	Y int32
}

// Table is an immutable piecewise-linear lookup table.
type Table struct {
	points []Point
	slopes []int32
}

// New builds a table from points sorted by ascending X. Sortedness is
// the caller's responsibility, as is avoiding duplicate X values (a
// duplicate makes the segment slope divide by zero).
func New(points []Point) Table {
	return Table{points: points}
}

// NewWithSlopes builds a table with precomputed segment slopes
// (dY/dX between each point and the next), saving one division per
// lookup. len(slopes) must be len(points)-1.
func NewWithSlopes(points []Point, slopes []int32) Table {
	if len(slopes) != len(points)-1 {
		panic("pwl: need exactly one slope per segment")
	}

	return Table{points: points, slopes: slopes}
}

// Len returns the number of points in the table.
func (t Table) Len() int {
	return len(t.points)
}

// Y returns the linear approximation of the table's function at x.
// Tables with fewer than two points cannot describe a line and always
// return 0.
func (t Table) Y(x int32) int32 {
	if len(t.points) < 2 {
		return 0
	}

	seg := t.segment(x)
	lo := t.points[seg]
	hi := t.points[seg+1]

	var slope int32
	if t.slopes != nil {
		slope = t.slopes[seg]
	} else {
		slope = (hi.Y - lo.Y) / (hi.X - lo.X)
	}

	return slope*(x-lo.X) + lo.Y
}

// segment picks the index of the segment whose span covers x, clamping
// to the first or last segment when x is out of range.
func (t Table) segment(x int32) int {
	for i, p := range t.points {
		if p.X > x {
			if i == 0 {
				return 0
			}

			return i - 1
		}
	}

	return len(t.points) - 2
}
