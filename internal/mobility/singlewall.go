package mobility

import (
	"math"
	"runtime"
)

const fourThirds = 4.0 / 3.0

// rowChunk is the number of outer-loop rows a worker claims at a time.
// Rows get cheaper as i grows (the inner loop runs N-i-1 times), so
// scheduling must be dynamic; small chunks keep the tail balanced.
const rowChunk = 8

// SingleWallMobilityTransTimesForce computes u = M*F for N blobs of
// hydrodynamic radius a in a fluid of viscosity eta above a wall at z = 0.
//
// positions and forces are flat row-major N x 3 arrays (x0,y0,z0,x1,...);
// N is inferred from len(positions)/3. The returned velocities use the same
// layout and alias neither input. box is reserved for periodic images and
// currently ignored.
//
// Inputs are not validated here: eta <= 0, a <= 0, blobs at or below the
// wall, or coincident blobs yield NaN/Inf in the output. Use [SingleWall]
// for a checked entry point.
func SingleWallMobilityTransTimesForce(positions, forces []float64, eta, a float64, box [3]float64) []float64 {
	_ = box // TODO: add periodic images in x and y
	n := len(positions) / 3
	u := make([]float64, 3*n)
	reduceRows(u, n, runtime.GOMAXPROCS(0), func(acc []float64, lo, hi int) {
		transTimesForceRows(acc, positions, forces, eta, a, lo, hi)
	})
	return u
}

// transTimesForceRows accumulates into u the velocity contributions of rows
// [lo,hi): the self term of each blob i plus the pairwise terms for all
// j > i. The pair block is computed once and applied to both blobs, so u
// must be private to the caller when rows are processed concurrently.
func transTimesForceRows(u, positions, forces []float64, eta, a float64, lo, hi int) {
	n := len(positions) / 3
	inva := 1.0 / a
	norm := 1.0 / (8.0 * math.Pi * eta * a)

	for i := lo; i < hi; i++ {
		// Self mobility: image-system expansion in a/z, truncated at
		// fifth order. Drag parallel to the wall differs from
		// perpendicular; there are no x/y/z cross terms.
		invZ := a / positions[i*3+2]
		invZ3 := invZ * invZ * invZ
		invZ5 := invZ3 * invZ * invZ

		selfPar := fourThirds - (9.0*invZ-2.0*invZ3+invZ5)/12.0
		selfPerp := fourThirds - (9.0*invZ-4.0*invZ3+invZ5)/6.0

		u[i*3+0] += selfPar * forces[i*3+0] * norm
		u[i*3+1] += selfPar * forces[i*3+1] * norm
		u[i*3+2] += selfPerp * forces[i*3+2] * norm

		for j := i + 1; j < n; j++ {
			// Separation scaled by the blob radius.
			drx := inva * (positions[i*3+0] - positions[j*3+0])
			dry := inva * (positions[i*3+1] - positions[j*3+1])
			drz := inva * (positions[i*3+2] - positions[j*3+2])

			r2 := drx*drx + dry*dry + drz*drz
			r := math.Sqrt(r2)
			// No zero-distance guard: coincident blobs are a
			// precondition violation.
			invr := 1.0 / r
			invr2 := invr * invr

			var mxx, mxy, mxz, myy, myz, mzz float64
			if r > 2 {
				// Free-space Rotne-Prager tensor.
				c1 := 1.0 + 2.0/(3.0*r2)
				c2 := (1.0 - 2.0*invr2) * invr2
				mxx = (c1 + c2*drx*drx) * invr
				mxy = (c2 * drx * dry) * invr
				mxz = (c2 * drx * drz) * invr
				myy = (c1 + c2*dry*dry) * invr
				myz = (c2 * dry * drz) * invr
				mzz = (c1 + c2*drz*drz) * invr
			} else {
				// Regularized form for overlapping blobs, finite
				// and continuous with the far field at r = 2.
				c1 := fourThirds * (1.0 - 0.28125*r) // 9/32 = 0.28125
				c2 := fourThirds * 0.09375 * invr    // 3/32 = 0.09375
				mxx = c1 + c2*drx*drx
				mxy = c2 * drx * dry
				mxz = c2 * drx * drz
				myy = c1 + c2*dry*dry
				myz = c2 * dry * drz
				mzz = c1 + c2*drz*drz
			}
			myx := mxy
			mzx := mxz
			mzy := myz

			// Wall correction: method-of-reflections solution for a
			// Stokeslet near a no-slip plane, evaluated along the
			// image separation vector (heights summed, not
			// subtracted).
			drz = (positions[i*3+2] + positions[j*3+2]) / a
			hj := positions[j*3+2] / a

			hHat := hj / drz
			invR := 1.0 / math.Sqrt(drx*drx+dry*dry+drz*drz)
			ex := drx * invR
			ey := dry * invR
			ez := drz * invR
			ez2 := ez * ez
			invR3 := invR * invR * invR
			invR5 := invR3 * invR * invR

			t1 := (1.0 - hHat) * ez2
			fact1 := -(3.0*(1.0+2.0*hHat*t1)*invR +
				2.0*(1.0-3.0*ez2)*invR3 -
				2.0*(1.0-5.0*ez2)*invR5) / 3.0
			fact2 := -(3.0*(1.0-6.0*hHat*t1)*invR -
				6.0*(1.0-5.0*ez2)*invR3 +
				10.0*(1.0-7.0*ez2)*invR5) / 3.0
			fact3 := ez * (3.0*hHat*(1.0-6.0*t1)*invR -
				6.0*(1.0-5.0*ez2)*invR3 +
				10.0*(2.0-7.0*ez2)*invR5) * 2.0 / 3.0
			fact4 := ez * (3.0*hHat*invR - 10.0*invR5) * 2.0 / 3.0
			fact5 := -(3.0*hHat*hHat*ez2*invR + 3.0*ez2*invR3 +
				(2.0-15.0*ez2)*invR5) * 4.0 / 3.0

			// The x/z and z/x corrections differ (fact3 vs fact4):
			// the block stops being symmetric here and the full
			// operator stays symmetric only because the same block
			// is applied transposed below.
			mxx += fact1 + fact2*ex*ex
			mxy += fact2 * ex * ey
			mxz += fact2*ex*ez + fact3*ex
			myx += fact2 * ey * ex
			myy += fact1 + fact2*ey*ey
			myz += fact2*ey*ez + fact3*ey
			mzx += fact2*ez*ex + fact4*ex
			mzy += fact2*ez*ey + fact4*ey
			mzz += fact1 + fact2*ez2 + fact3*ez + fact4*ez + fact5

			fjx, fjy, fjz := forces[j*3+0], forces[j*3+1], forces[j*3+2]
			u[i*3+0] += (mxx*fjx + mxy*fjy + mxz*fjz) * norm
			u[i*3+1] += (myx*fjx + myy*fjy + myz*fjz) * norm
			u[i*3+2] += (mzx*fjx + mzy*fjy + mzz*fjz) * norm

			// Same block, transposed, gives blob j's response to the
			// force on blob i.
			fix, fiy, fiz := forces[i*3+0], forces[i*3+1], forces[i*3+2]
			u[j*3+0] += (mxx*fix + myx*fiy + mzx*fiz) * norm
			u[j*3+1] += (mxy*fix + myy*fiy + mzy*fiz) * norm
			u[j*3+2] += (mxz*fix + myz*fiy + mzz*fiz) * norm
		}
	}
}
