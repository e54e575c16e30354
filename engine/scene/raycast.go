package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// raySphere returns the distance along a normalized ray to the first intersection with a
// sphere. Hits behind the origin are ignored; an origin inside the sphere reports the exit point.
func raySphere(origin, dir, center mgl32.Vec3, radius float32) (float32, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := float32(math.Sqrt(float64(disc)))
	if t := -b - sq; t >= 0 {
		return t, true
	}
	if t := -b + sq; t >= 0 {
		return t, true
	}
	return 0, false
}
