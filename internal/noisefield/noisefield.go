// Package noisefield implements the ember background color function.
//
// The Go code mirrors shaders/noisefield.frag.glsl statement for statement in
// float32 so the CPU renderer and the tests see the same field the GPU draws.
package noisefield

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Field parameters. They are baked into the fragment shader as constants too.
const (
	Details           float32 = 6.0
	DisplacementForce float32 = 0.1
	ColorShift        float32 = 0.6
	Octaves                   = 5
	Speed             float32 = 0.15

	warpScale  float32 = 1.1
	warpDrift  float32 = 0.05
	finalScale float32 = 5.0
	finalDrift float32 = 0.1
	fadeTop    float32 = 0.4
)

var (
	deepRed     = mgl32.Vec3{0.1, 0, 0}
	redOrange   = mgl32.Vec3{0.6, 0.1, 0}
	brightEmber = mgl32.Vec3{0.9, 0.5, 0.1}
	glowTint    = mgl32.Vec3{1.0, 0.6, 0.2}
)

func fract(x float32) float32 {
	return x - floor(x)
}

func floor(x float32) float32 {
	return float32(math.Floor(float64(x)))
}

func mix(a, b, t float32) float32 {
	return a + (b-a)*t
}

func mixVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return mgl32.Vec3{mix(a[0], b[0], t), mix(a[1], b[1], t), mix(a[2], b[2], t)}
}

func smoothstep(edge0, edge1, x float32) float32 {
	t := mgl32.Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// Rand is the lattice hash: fract(sin(dot(p, (1, 300))) * 43758.5453123).
func Rand(p mgl32.Vec2) float32 {
	d := p.Dot(mgl32.Vec2{1.0, 300.0})
	return fract(float32(math.Sin(float64(d))) * 43758.5453123)
}

// Noise is 2D value noise over the integer lattice.
func Noise(p mgl32.Vec2) float32 {
	i := mgl32.Vec2{floor(p[0]), floor(p[1])}
	f := mgl32.Vec2{p[0] - i[0], p[1] - i[1]}

	a := Rand(i)
	b := Rand(i.Add(mgl32.Vec2{1, 0}))
	c := Rand(i.Add(mgl32.Vec2{0, 1}))
	d := Rand(i.Add(mgl32.Vec2{1, 1}))

	ux := f[0] * f[0] * (3 - 2*f[0])
	uy := f[1] * f[1] * (3 - 2*f[1])

	return mix(a, b, ux) + (c-a)*uy*(1-ux) + (d-b)*ux*uy
}

// FBM sums Octaves layers of Noise, doubling frequency and halving amplitude.
func FBM(p mgl32.Vec2) float32 {
	var v float32
	a := float32(0.5)
	for range Octaves {
		v += a * Noise(p)
		p = p.Mul(2)
		a *= 0.5
	}
	return v
}

// VerticalFade is 1 at the bottom edge and reaches 0 at y = 0.4.
func VerticalFade(y float32) float32 {
	return 1 - smoothstep(0, fadeTop, y)
}

// Evaluate returns the color at coord, a [0,1]x[0,1] position with y growing
// upwards. aspect is width/height of the target. The result is not clamped;
// glow peaks may exceed 1.
func Evaluate(coord mgl32.Vec2, aspect, elapsed, intensity float32) mgl32.Vec3 {
	uv := coord.Sub(mgl32.Vec2{0.5, 0.5})
	uv[0] *= aspect

	// Subtracting the drift samples lower rows over time, so the pattern rises.
	p := mgl32.Vec2{uv[0], uv[1] - elapsed*Speed}.Mul(Details)

	l1 := FBM(p)
	l2 := FBM(addScalar(p, l1*warpScale+elapsed*warpDrift))

	displaced := uv.Add(mgl32.Vec2{l1, l2}.Mul(DisplacementForce))
	final := FBM(addScalar(displaced.Mul(finalScale), elapsed*finalDrift))

	y := coord[1]
	base := mixVec3(deepRed, redOrange, min(y*1.5, 1))
	col := mixVec3(base, brightEmber, final*ColorShift)

	fi := intensity * VerticalFade(y)
	col = col.Mul(fi)

	glow := max(0, final-0.5) * 2
	glow = glow * glow * glow
	return col.Add(glowTint.Mul(glow * fi * 0.5))
}

func addScalar(v mgl32.Vec2, s float32) mgl32.Vec2 {
	return mgl32.Vec2{v[0] + s, v[1] + s}
}
