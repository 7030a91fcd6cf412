package mesh

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// Teapot outline in the classic Newell coordinates: r is the distance to the
// vertical axis and z the height, body radius 2 and total height 3.15.
// Each entry is a cubic Bézier segment.
var (
	lidProfile = [][4]pt{
		{{0, 3.15}, {0.8, 3.15}, {0, 2.85}, {0.2, 2.7}},    // knob
		{{0.2, 2.7}, {0.4, 2.55}, {1.3, 2.55}, {1.3, 2.4}}, // lid
	}
	bodyProfile = [][4]pt{
		{{1.4, 2.4}, {1.3375, 2.53125}, {1.4375, 2.53125}, {1.5, 2.4}}, // rim
		{{1.5, 2.4}, {1.75, 1.875}, {2, 1.35}, {2, 0.9}},               // upper body
		{{2, 0.9}, {2, 0.45}, {1.5, 0.225}, {1.5, 0.15}},               // lower body
		{{1.5, 0.15}, {1.5, 0}, {1, 0}, {0, 0}},                        // bottom
	}
	// Spout and handle centerlines in the x-z plane (y=0).
	spoutPath = [][4]pt{
		{{1.7, 0.9}, {2.6, 0.9}, {2.3, 1.95}, {3.0, 2.4}},
	}
	handlePath = [][4]pt{
		{{-1.6, 1.875}, {-2.3, 1.875}, {-2.7, 1.875}, {-2.7, 1.65}},
		{{-2.7, 1.65}, {-2.7, 1.425}, {-2.5, 0.975}, {-2.0, 0.75}},
	}
)

// Height range of the outline, used to center the teapot vertically.
const (
	newellRadius = 2
	newellMidZ   = 1.5
)

// Teapot returns a teapot whose body radius is size, spout along +X, handle
// along -X and lid along +Y. The vertical range is [-0.75, 0.825]*size, the
// same placement as the GLUT teapot. slices is the number of subdivisions
// around the vertical axis and must be at least 8.
func Teapot(size float32, slices int) (*Mesh, error) {
	if !validSize(size) {
		return nil, errBadSize
	} else if slices < 8 {
		return nil, errors.New("teapot requires at least 8 slices")
	}
	scale := size / newellRadius
	// Newell z is up; output Y is up and Newell y maps to -Z.
	b := builder{
		xf: func(p ms3.Vec) ms3.Vec {
			return ms3.Vec{X: p.X * scale, Y: (p.Z - newellMidZ) * scale, Z: -p.Y * scale}
		},
		rot: func(n ms3.Vec) ms3.Vec {
			return ms3.Vec{X: n.X, Y: n.Z, Z: -n.Y}
		},
	}
	segDivs := max(4, slices/4)
	b.lathe(sampleProfile(lidProfile, segDivs), slices)
	b.lathe(sampleProfile(bodyProfile, segDivs), slices)
	tubeSlices := max(8, slices/2)
	b.tube(sampleProfile(spoutPath, 2*segDivs), tubeSlices, func(t float32) (a, c float32) {
		r := 0.45 + (0.15-0.45)*t // narrows towards the tip.
		return r, r
	})
	b.tube(sampleProfile(handlePath, segDivs), tubeSlices, func(t float32) (a, c float32) {
		return 0.15, 0.3 // flat handle, wider across.
	})
	return &b.m, nil
}

type pt struct{ r, z float32 }

type sample struct {
	p, tangent pt
	t          float32 // normalized path parameter in [0,1].
}

func bezier(c [4]pt, t float32) (p, d pt) {
	u := 1 - t
	b0, b1, b2, b3 := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	p = pt{
		r: b0*c[0].r + b1*c[1].r + b2*c[2].r + b3*c[3].r,
		z: b0*c[0].z + b1*c[1].z + b2*c[2].z + b3*c[3].z,
	}
	d0, d1, d2 := 3*u*u, 6*u*t, 3*t*t
	d = pt{
		r: d0*(c[1].r-c[0].r) + d1*(c[2].r-c[1].r) + d2*(c[3].r-c[2].r),
		z: d0*(c[1].z-c[0].z) + d1*(c[2].z-c[1].z) + d2*(c[3].z-c[2].z),
	}
	return p, d
}

// sampleProfile samples each segment divs times. Shared segment endpoints
// are emitted twice so creases keep their own normals.
func sampleProfile(segs [][4]pt, divs int) []sample {
	samples := make([]sample, 0, len(segs)*(divs+1))
	total := float32(len(segs) * divs)
	for si, seg := range segs {
		for i := 0; i <= divs; i++ {
			t := float32(i) / float32(divs)
			p, d := bezier(seg, t)
			if math32.Hypot(d.r, d.z) < 1e-6 {
				// Zero derivative at a repeated control point, nudge inwards.
				_, d = bezier(seg, math32.Abs(t-1e-3))
			}
			samples = append(samples, sample{
				p:       p,
				tangent: d,
				t:       float32(si*divs+i) / total,
			})
		}
	}
	return samples
}

// lathe revolves the profile around the vertical axis.
func (b *builder) lathe(profile []sample, slices int) {
	start := uint32(len(b.m.Vertices))
	cols := slices + 1
	for _, s := range profile {
		tl := math32.Hypot(s.tangent.r, s.tangent.z)
		// Outward normal of a profile traversed outwards and downwards.
		nr, nz := -s.tangent.z/tl, s.tangent.r/tl
		for c := 0; c < cols; c++ {
			theta := 2 * math32.Pi * float32(c%slices) / float32(slices)
			sin, cos := math32.Sincos(theta)
			b.vertex(
				ms3.Vec{X: s.p.r * cos, Y: s.p.r * sin, Z: s.p.z},
				ms3.Vec{X: nr * cos, Y: nr * sin, Z: nz},
			)
		}
	}
	b.grid(start, len(profile), cols)
}

// tube sweeps an elliptical cross section along a path in the x-z plane.
// radii returns the in-plane and out of plane semi-axes for the normalized path parameter.
func (b *builder) tube(path []sample, slices int, radii func(t float32) (a, c float32)) {
	start := uint32(len(b.m.Vertices))
	cols := slices + 1
	binormal := ms3.Vec{Y: 1}
	for _, s := range path {
		center := ms3.Vec{X: s.p.r, Z: s.p.z}
		tangent := ms3.Unit(ms3.Vec{X: s.tangent.r, Z: s.tangent.z})
		normal := ms3.Cross(binormal, tangent)
		a, c := radii(s.t)
		for k := 0; k < cols; k++ {
			phi := 2 * math32.Pi * float32(k%slices) / float32(slices)
			sin, cos := math32.Sincos(phi)
			pos := ms3.Add(center, ms3.Add(ms3.Scale(a*cos, normal), ms3.Scale(c*sin, binormal)))
			nrm := ms3.Add(ms3.Scale(cos/a, normal), ms3.Scale(sin/c, binormal))
			b.vertex(pos, nrm)
		}
	}
	b.grid(start, len(path), cols)
}
