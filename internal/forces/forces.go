// Package forces computes the deterministic external and steric forces on a
// blob suspension: buoyant gravity, a screened (Yukawa) repulsion from the
// wall, and a pairwise screened repulsion between blobs.
package forces

import "math"

// Model holds the force-law parameters for a monodisperse suspension.
// The wall repulsion derives from the potential
//
//	U = eps_w * a * exp(-(h-a)/b_w) / (h-a)
//
// and the blob-blob repulsion from
//
//	U = eps * exp(-r/b) / r
//
// with h the blob height, r the center distance, a the blob radius and
// b the Debye (screening) length.
type Model struct {
	BlobRadius float64
	BlobMass   float64
	Gravity    float64

	RepulsionStrength float64 // blob-blob eps
	DebyeLength       float64

	WallRepulsionStrength float64 // wall eps_w
	WallDebyeLength       float64
}

// Total returns the force on every blob, flat N x 3 layout matching
// positions. The input is not mutated.
func (m *Model) Total(positions []float64) []float64 {
	n := len(positions) / 3
	f := make([]float64, 3*n)

	for i := 0; i < n; i++ {
		fx, fy, fz := m.OneBlob(positions[i*3+2])
		f[i*3+0] += fx
		f[i*3+1] += fy
		f[i*3+2] += fz
	}

	m.accumulatePairs(f, positions)
	return f
}

// OneBlob returns the external force on a single blob at height h:
// gravity plus the wall repulsion. A blob with h = BlobRadius touches the
// wall and the repulsion diverges; like the mobility operator, this is a
// precondition violation, not a handled case.
func (m *Model) OneBlob(h float64) (fx, fy, fz float64) {
	fz = -m.Gravity * m.BlobMass

	gap := h - m.BlobRadius
	b := m.WallDebyeLength
	fz += m.WallRepulsionStrength * (gap/b + 1.0) * math.Exp(-gap/b) / (gap * gap)
	return 0, 0, fz
}

// BlobBlob returns the force on the blob at the origin exerted by a blob at
// displacement (rx, ry, rz).
func (m *Model) BlobBlob(rx, ry, rz float64) (fx, fy, fz float64) {
	rNorm := math.Sqrt(rx*rx + ry*ry + rz*rz)
	c := -((m.RepulsionStrength / m.DebyeLength) + (m.RepulsionStrength / rNorm)) *
		math.Exp(-rNorm/m.DebyeLength) / (rNorm * rNorm)
	return c * rx, c * ry, c * rz
}

// accumulatePairs adds the blob-blob forces over the i<j triangle, applying
// each pair force to both blobs with opposite sign.
func (m *Model) accumulatePairs(f, positions []float64) {
	if m.RepulsionStrength == 0 {
		return
	}
	n := len(positions) / 3
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			rx := positions[j*3+0] - positions[i*3+0]
			ry := positions[j*3+1] - positions[i*3+1]
			rz := positions[j*3+2] - positions[i*3+2]

			fx, fy, fz := m.BlobBlob(rx, ry, rz)
			f[i*3+0] += fx
			f[i*3+1] += fy
			f[i*3+2] += fz
			f[j*3+0] -= fx
			f[j*3+1] -= fy
			f[j*3+2] -= fz
		}
	}
}
