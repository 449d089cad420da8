package kinematic

// This package includes the planar vector math used by the simulation.

import (
	"math"
)

// Vector is a 2D vector. It serves as both a position and a per-tick input.
type Vector struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// NewVector returns a vector with the given components.
func NewVector(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Add returns the sum of v and other.
func (v Vector) Add(other Vector) Vector {
	return Vector{X: v.X + other.X, Y: v.Y + other.Y}
}

// Scale returns v multiplied by s.
func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s}
}

// Clamp bounds each component of v to [min, max] of the matching axis.
func (v Vector) Clamp(min, max Vector) Vector {
	return Vector{
		X: Clamp(v.X, min.X, max.X),
		Y: Clamp(v.Y, min.Y, max.Y),
	}
}

// Clamp bounds x to [min, max]. NaN clamps to min.
func Clamp(x, min, max float64) float64 {
	if math.IsNaN(x) || x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

// Displacement returns v advanced by velocity over time.
func Displacement(position Vector, velocity Vector, time float64) Vector {
	return position.Add(velocity.Scale(time))
}
