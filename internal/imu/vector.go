package imu

import (
	"fmt"
	"math"
)

// Vector is a triaxial value indexed by axis 0/1/2.
type Vector [3]float64

// Axes lists the axis indices in output order.
var Axes = [3]int{0, 1, 2}

func (v Vector) X() float64 { return v[0] }
func (v Vector) Y() float64 { return v[1] }
func (v Vector) Z() float64 { return v[2] }

// At returns the component for axis 0, 1 or 2.
func (v Vector) At(axis int) float64 {
	return v[axis]
}

// Magnitude is the Euclidean norm.
func (v Vector) Magnitude() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Reading is one raw integer sample as produced by the sensor.
type Reading [3]int

// Vector converts the raw counts to floating point.
func (r Reading) Vector() Vector {
	return Vector{float64(r[0]), float64(r[1]), float64(r[2])}
}

func (r Reading) String() string {
	return fmt.Sprintf("%d %d %d", r[0], r[1], r[2])
}
