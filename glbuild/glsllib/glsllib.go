// Package glsllib contains GLSL functions shared by generated programs.
package glsllib

import (
	_ "embed"
)

//go:embed blinnphong.glsl
var blinnPhongSrc string

// BlinnPhong returns the lighting function:
//
//	vec3 blinnPhong(vec3 N, vec3 V, vec3 eyePos, vec3 lightPos, vec3 lightDiffuse, vec3 lightSpecular, vec3 diffuseColor, vec3 specularColor, float shininess)
func BlinnPhong() string { return blinnPhongSrc }

//go:embed motif.glsl
var motifSrc string

// MotifPattern returns the motif pattern function:
//
//	float motifPattern(vec2 p, float petals, float ring, float radial)
func MotifPattern() string { return motifSrc }
