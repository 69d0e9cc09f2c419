package mathutil

import "math"

// RotX returns a 3×3 rotation matrix around the X axis. Angle in radians.
func RotX(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

// RotY returns a 3×3 rotation matrix around the Y axis.
func RotY(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

// RotZ returns a 3×3 rotation matrix around the Z axis.
func RotZ(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// FrameXYZ returns the coordinate transform for a frame rotated by ax about
// X, then ay about the new Y, then az about the new Z.
// Rz(-az) @ Ry(-ay) @ Rx(-ax)
func FrameXYZ(ax, ay, az float64) Mat3 {
	if ax == 0 && ay == 0 && az == 0 {
		return Mat3Identity()
	}
	return Mat3Mul(Mat3Mul(RotZ(-az), RotY(-ay)), RotX(-ax))
}

// FrameZYX is FrameXYZ with the axis order reversed: Rx(-ax) @ Ry(-ay) @ Rz(-az).
// FrameZYX(-ax, -ay, -az) is the inverse of FrameXYZ(ax, ay, az).
func FrameZYX(ax, ay, az float64) Mat3 {
	if ax == 0 && ay == 0 && az == 0 {
		return Mat3Identity()
	}
	return Mat3Mul(Mat3Mul(RotX(-ax), RotY(-ay)), RotZ(-az))
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}
