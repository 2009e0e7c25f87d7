//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"math"
)

// meshUniformSize is the byte size of the mesh uniform buffer.
// Layout: mvp (mat4x4<f32>) = 64 bytes + st (mat4x4<f32>) = 64 bytes.
const meshUniformSize = 128

// Matrix is a 4x4 float32 matrix in column-major order, the memory layout
// of a WGSL mat4x4<f32>.
type Matrix [16]float32

// IdentityMatrix returns the 4x4 identity.
func IdentityMatrix() Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// FlipVMatrix returns the texture transform mapping v to 1-v. Mesh texture
// coordinates grow upwards while texture rows grow downwards, so this is
// the transform for an upright image.
func FlipVMatrix() Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, -1, 0, 0,
		0, 0, 1, 0,
		0, 1, 0, 1,
	}
}

// Uniforms holds the per-mesh shader parameters. Matches MeshUniforms in
// rounded_mesh.wgsl.
type Uniforms struct {
	// MVP transforms mesh positions to clip space.
	MVP Matrix

	// ST transforms texture coordinates before sampling.
	ST Matrix
}

// DefaultUniforms returns an identity MVP and a V-flipping texture
// transform.
func DefaultUniforms() Uniforms {
	return Uniforms{MVP: IdentityMatrix(), ST: FlipVMatrix()}
}

// bytes serializes u into the 128-byte uniform buffer layout.
func (u Uniforms) bytes() []byte {
	buf := make([]byte, meshUniformSize)
	off := 0
	for _, m := range [...]*Matrix{&u.MVP, &u.ST} {
		for _, v := range m {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
			off += 4
		}
	}
	return buf
}
