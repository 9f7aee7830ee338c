package geometry

import (
	"testing"

	"go.viam.com/test"
)

func TestPointInt(t *testing.T) {
	p := NewPointInt(3, 4)
	test.That(t, p.ToFloat(), test.ShouldResemble, Point2D{X: 3, Y: 4})
	test.That(t, p.Add(PointInt{X: 1, Y: -2}), test.ShouldResemble, PointInt{X: 4, Y: 2})
	test.That(t, p.DistanceSq(PointInt{X: 0, Y: 0}), test.ShouldEqual, 25)
}

func TestPoint2D(t *testing.T) {
	p := NewPoint2D(1, 2)
	test.That(t, p.Distance(Point2D{X: 4, Y: 6}), test.ShouldEqual, 5.0)
	test.That(t, p.Add(Point2D{X: 1, Y: 1}), test.ShouldResemble, Point2D{X: 2, Y: 3})
	test.That(t, p.Scale(2), test.ShouldResemble, Point2D{X: 2, Y: 4})
}

func TestRectInt(t *testing.T) {
	r := NewRectInt(2, 3, 10, 5)
	test.That(t, r.Dx(), test.ShouldEqual, 10)
	test.That(t, r.Dy(), test.ShouldEqual, 5)
	test.That(t, r.Contains(PointInt{X: 2, Y: 3}), test.ShouldBeTrue)
	test.That(t, r.Contains(PointInt{X: 12, Y: 3}), test.ShouldBeFalse)

	tests := []struct {
		name  string
		other RectInt
		want  RectInt
		empty bool
	}{
		{"inside", NewRectInt(4, 4, 2, 2), NewRectInt(4, 4, 2, 2), false},
		{"overlap", NewRectInt(0, 0, 5, 5), NewRectInt(2, 3, 3, 2), false},
		{"disjoint", NewRectInt(20, 20, 5, 5), NewRectInt(20, 20, -8, -12), true},
	}
	for _, tc := range tests {
		got := r.Intersect(tc.other)
		test.That(t, got, test.ShouldResemble, tc.want)
		test.That(t, got.Empty(), test.ShouldEqual, tc.empty)
	}

	// a window fully inside the image intersects to itself
	img := NewRectInt(0, 0, 32, 32)
	window := NewRectInt(8, 8, 16, 16)
	test.That(t, window.Intersect(img), test.ShouldResemble, window)

	// a clipped window does not
	clipped := NewRectInt(-2, 8, 16, 16)
	test.That(t, clipped.Intersect(img) == clipped, test.ShouldBeFalse)
}
