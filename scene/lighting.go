package scene

import "github.com/go-gl/mathgl/mgl32"

// Light is a positional light defined in eye coordinates.
type Light struct {
	Position mgl32.Vec3
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3
}

// Material describes the glazed porcelain surface. The diffuse term is the
// surface color (texture or preset).
type Material struct {
	Ambient   mgl32.Vec3
	Specular  mgl32.Vec3
	Shininess float32
}

// Lighting gathers all constant render parameters.
type Lighting struct {
	ClearColor mgl32.Vec3
	// GlobalAmbient is the scene ambient light independent of light sources.
	GlobalAmbient mgl32.Vec3
	Lights        [2]Light
	Material      Material
	// TexGenScale maps object x and y to texture s and t.
	TexGenScale float32
	// TeapotSize is the teapot's nominal size, its widest body radius.
	TeapotSize float32
}

// DefaultLighting returns a white key light and a dim fill light over a dark
// gray background, with a glossy porcelain material.
func DefaultLighting() Lighting {
	return Lighting{
		ClearColor:    mgl32.Vec3{0.15, 0.15, 0.15},
		GlobalAmbient: mgl32.Vec3{0.2, 0.2, 0.2},
		Lights: [2]Light{
			{
				Position: mgl32.Vec3{10, 10, 10},
				Diffuse:  mgl32.Vec3{1, 1, 1},
				Specular: mgl32.Vec3{1, 1, 1},
			},
			{
				Position: mgl32.Vec3{-10, -5, 5},
				Diffuse:  mgl32.Vec3{0.3, 0.3, 0.3},
			},
		},
		Material: Material{
			Ambient:   mgl32.Vec3{0.8, 0.8, 0.8},
			Specular:  mgl32.Vec3{1, 1, 1},
			Shininess: 120,
		},
		TexGenScale: 0.4,
		TeapotSize:  1.2,
	}
}
