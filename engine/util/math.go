package util

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

func Abs(x float32) float32 {
	return float32(math.Abs(float64(x)))
}

func Tan(x float32) float32 {
	return float32(math.Tan(float64(x)))
}

func ToRadian(angle float32) float32 {
	return mgl32.DegToRad(angle)
}

func Mix64(a, b float32, factor float64) float32 {
	return float32(float64(a)*(1.0-factor) + factor*float64(b))
}

func Clamp(value, min, max float64) float64 {
	return math.Min(math.Max(value, min), max)
}

func Lerp3(one, two mgl32.Vec3, factor float64) mgl32.Vec3 {
	return mgl32.Vec3{Mix64(one.X(), two.X(), factor), Mix64(one.Y(), two.Y(), factor), Mix64(one.Z(), two.Z(), factor)}
}

// ProjectOnPlane removes the component of v along normal.
func ProjectOnPlane(v, normal mgl32.Vec3) mgl32.Vec3 {
	sqrLen := normal.Dot(normal)
	if sqrLen < 1e-12 {
		return v
	}
	return v.Sub(normal.Mul(v.Dot(normal) / sqrLen))
}

// SafeNormalize returns false for vectors too short to have a direction.
func SafeNormalize(v mgl32.Vec3) (mgl32.Vec3, bool) {
	length := v.Len()
	if length < 1e-6 {
		return mgl32.Vec3{}, false
	}
	return v.Mul(1 / length), true
}

func Horizontal(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X(), 0, v.Z()}
}

func InRange(x, min, max float32) bool {
	return x >= min && x <= max
}
