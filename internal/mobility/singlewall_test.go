package mobility

import (
	"math"
	"math/rand"
	"testing"
)

const blobRadius = 0.656

// denseOperator assembles the full 3N x 3N matrix column by column from
// canonical unit forces. Only used by tests; the production path never
// forms the matrix.
func denseOperator(positions []float64, eta, a float64) [][]float64 {
	dim := len(positions)
	m := make([][]float64, dim)
	for i := range m {
		m[i] = make([]float64, dim)
	}
	for col := 0; col < dim; col++ {
		f := make([]float64, dim)
		f[col] = 1.0
		u := SingleWallMobilityTransTimesForce(positions, f, eta, a, [3]float64{})
		for row := 0; row < dim; row++ {
			m[row][col] = u[row]
		}
	}
	return m
}

func TestSingleBlobReducesToSelfTerm(t *testing.T) {
	a := blobRadius
	positions := []float64{0.3, -0.2, 2 * a}
	forces := []float64{1.0, 1.0, 1.0}

	u := SingleWallMobilityTransTimesForce(positions, forces, 1.2, a, [3]float64{})

	// Self term evaluated by hand: invZ = a/z = 0.5.
	invZ := a / positions[2]
	invZ3 := invZ * invZ * invZ
	invZ5 := invZ3 * invZ * invZ
	norm := 1.0 / (8.0 * math.Pi * 1.2 * a)
	wantPar := (4.0/3.0 - (9.0*invZ-2.0*invZ3+invZ5)/12.0) * norm
	wantPerp := (4.0/3.0 - (9.0*invZ-4.0*invZ3+invZ5)/6.0) * norm

	if math.Abs(u[0]-wantPar) > 1e-15 || math.Abs(u[1]-wantPar) > 1e-15 {
		t.Errorf("parallel self mobility: got (%.17g, %.17g), want %.17g", u[0], u[1], wantPar)
	}
	if math.Abs(u[2]-wantPerp) > 1e-15 {
		t.Errorf("perpendicular self mobility: got %.17g, want %.17g", u[2], wantPerp)
	}
	if u[0] <= u[2] {
		t.Errorf("wall drag anisotropy inverted: parallel %v <= perpendicular %v", u[0], u[2])
	}
}

// Pinned against a double-precision reference evaluation of the same
// operator: two blobs one radius apart at height 5a, unit x-force on the
// first.
func TestTwoBlobRegression(t *testing.T) {
	a := blobRadius
	eta := 1e-3
	positions := []float64{
		0, 0, 5 * a,
		a, 0, 5 * a,
	}
	forces := []float64{1, 0, 0, 0, 0, 0}

	u := SingleWallMobilityTransTimesForce(positions, forces, eta, a, [3]float64{})

	want := []float64{
		71.8526340641703, 0, 0,
		56.78638249220026, 0, 0.8414730593610151,
	}
	for k := range want {
		if math.Abs(u[k]-want[k]) > 1e-9 {
			t.Errorf("u[%d] = %.15g, want %.15g", k, u[k], want[k])
		}
	}
}

func TestOperatorSymmetry(t *testing.T) {
	a := blobRadius
	// Mix of overlapping (r < 2) and well separated (r > 2) pairs at
	// different heights, so both branches and the wall correction are
	// exercised.
	positions := []float64{
		0, 0, 1.5 * a,
		1.2 * a, 0.3 * a, 2 * a,
		5 * a, -3 * a, 4 * a,
		-2 * a, 6 * a, 1.1 * a,
	}

	m := denseOperator(positions, 0.9, a)
	for i := range m {
		for j := range m {
			diff := math.Abs(m[i][j] - m[j][i])
			scale := math.Abs(m[i][j]) + math.Abs(m[j][i]) + 1e-30
			if diff/scale > 1e-13 {
				t.Errorf("M[%d][%d] = %.17g but M[%d][%d] = %.17g", i, j, m[i][j], j, i, m[j][i])
			}
		}
	}
}

func TestBranchContinuity(t *testing.T) {
	a := blobRadius
	forces := []float64{1.0, 0.5, -0.3, 0, 0, 0}
	const delta = 1e-11

	// Center separation straddling r = 2 from both sides.
	var u [2][]float64
	for k, d := range []float64{2 * a * (1 + delta), 2 * a * (1 - delta)} {
		positions := []float64{
			0, 0, 5 * a,
			d, 0, 5 * a,
		}
		u[k] = SingleWallMobilityTransTimesForce(positions, forces, 1e-3, a, [3]float64{})
	}

	for k := range u[0] {
		diff := math.Abs(u[0][k] - u[1][k])
		scale := math.Abs(u[0][k]) + math.Abs(u[1][k])
		if scale == 0 {
			continue
		}
		if diff/scale > 1e-10 {
			t.Errorf("component %d jumps across r=2: %.17g vs %.17g", k, u[0][k], u[1][k])
		}
	}
}

func TestPositiveSemidefinite(t *testing.T) {
	a := blobRadius
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 40; trial++ {
		n := 1 + rng.Intn(8)
		positions := make([]float64, 3*n)
		for i := 0; i < n; i++ {
			positions[i*3+0] = (rng.Float64()*20 - 10) * a
			positions[i*3+1] = (rng.Float64()*20 - 10) * a
			positions[i*3+2] = (1.05 + rng.Float64()*19) * a
		}

		// f'Mf >= 0 for random force vectors; the quadratic form of a
		// PSD operator cannot go negative beyond roundoff.
		for s := 0; s < 25; s++ {
			f := make([]float64, 3*n)
			for k := range f {
				f[k] = rng.NormFloat64()
			}
			u := SingleWallMobilityTransTimesForce(positions, f, 1.0, a, [3]float64{})
			q, nf := 0.0, 0.0
			for k := range f {
				q += u[k] * f[k]
				nf += f[k] * f[k]
			}
			if q < -1e-12*nf {
				t.Fatalf("trial %d: negative quadratic form %g (|f|^2 = %g)", trial, q, nf)
			}
		}
	}
}

func TestViscosityScaling(t *testing.T) {
	a := blobRadius
	positions := []float64{0, 0, 3 * a, 2 * a, a, 5 * a}
	forces := []float64{1, -2, 3, 0.5, 0, -1}

	u1 := SingleWallMobilityTransTimesForce(positions, forces, 1e-3, a, [3]float64{})
	u2 := SingleWallMobilityTransTimesForce(positions, forces, 2e-3, a, [3]float64{})

	for k := range u1 {
		if math.Abs(u1[k]-2*u2[k]) > 1e-12*math.Abs(u1[k]) {
			t.Errorf("component %d: eta doubled but velocity went %.17g -> %.17g", k, u1[k], u2[k])
		}
	}
}

func TestFarFieldDecay(t *testing.T) {
	a := blobRadius
	eta := 1e-3
	h := 1000 * a
	forces := []float64{1, 0, 0, 0, 0, 0}

	cross := func(d float64) float64 {
		positions := []float64{0, 0, h, d, 0, h}
		u := SingleWallMobilityTransTimesForce(positions, forces, eta, a, [3]float64{})
		return u[3]
	}

	// Far from the wall the cross mobility decays like the unbounded
	// Stokeslet, ~1/d.
	ratio := cross(50*a) / cross(100*a)
	if ratio < 1.9 || ratio > 2.1 {
		t.Errorf("cross mobility ratio at d vs 2d = %v, want ~2 (1/d decay)", ratio)
	}
}

func TestWallCorrectionVanishesAtHeight(t *testing.T) {
	a := blobRadius
	eta := 1e-3
	forces := []float64{1, 0, 0, 0, 0, 0}

	// Free-space Rotne-Prager xx coefficient at separation 10a.
	r := 10.0
	c1 := 1.0 + 2.0/(3.0*r*r)
	c2 := (1.0 - 2.0/(r*r)) / (r * r)
	free := (c1 + c2*r*r) / r / (8.0 * math.Pi * eta * a)

	prev := math.Inf(1)
	for _, h := range []float64{20 * a, 200 * a, 2000 * a} {
		positions := []float64{0, 0, h, 10 * a, 0, h}
		u := SingleWallMobilityTransTimesForce(positions, forces, eta, a, [3]float64{})
		relDiff := math.Abs(u[3]-free) / free
		if relDiff >= prev {
			t.Errorf("wall correction grew with height h=%v: %v >= %v", h/a, relDiff, prev)
		}
		prev = relDiff
	}
	if prev > 2e-3 {
		t.Errorf("wall correction at h=2000a still %v of free-space value", prev)
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	a := blobRadius
	rng := rand.New(rand.NewSource(13))
	n := 100
	positions := make([]float64, 3*n)
	forces := make([]float64, 3*n)
	for i := 0; i < n; i++ {
		positions[i*3+0] = (rng.Float64()*40 - 20) * a
		positions[i*3+1] = (rng.Float64()*40 - 20) * a
		positions[i*3+2] = (1.2 + rng.Float64()*10) * a
		for k := 0; k < 3; k++ {
			forces[i*3+k] = rng.NormFloat64()
		}
	}

	serial := &SingleWall{Eta: 1e-3, Radius: a, Workers: 1}
	parallel := &SingleWall{Eta: 1e-3, Radius: a, Workers: 8}

	us, err := serial.TransTimesForce(positions, forces)
	if err != nil {
		t.Fatal(err)
	}
	up, err := parallel.TransTimesForce(positions, forces)
	if err != nil {
		t.Fatal(err)
	}

	for k := range us {
		diff := math.Abs(us[k] - up[k])
		scale := math.Abs(us[k]) + 1e-30
		if diff/scale > 1e-12 {
			t.Errorf("component %d: serial %.17g vs parallel %.17g", k, us[k], up[k])
		}
	}
}

func TestInputsNotMutated(t *testing.T) {
	a := blobRadius
	positions := []float64{0, 0, 2 * a, a, a, 3 * a}
	forces := []float64{1, 2, 3, 4, 5, 6}
	wantPos := append([]float64(nil), positions...)
	wantF := append([]float64(nil), forces...)

	SingleWallMobilityTransTimesForce(positions, forces, 1.0, a, [3]float64{})

	for k := range positions {
		if positions[k] != wantPos[k] {
			t.Fatalf("positions[%d] mutated: %v -> %v", k, wantPos[k], positions[k])
		}
		if forces[k] != wantF[k] {
			t.Fatalf("forces[%d] mutated: %v -> %v", k, wantF[k], forces[k])
		}
	}
}

func TestValidate(t *testing.T) {
	a := blobRadius
	good := []float64{0, 0, 2 * a}

	tests := []struct {
		name      string
		m         *SingleWall
		positions []float64
		forces    []float64
	}{
		{"length mismatch", NewSingleWall(1.0, a), good, []float64{1, 0, 0, 0, 0, 0}},
		{"not multiple of 3", NewSingleWall(1.0, a), []float64{1, 2}, []float64{1, 2}},
		{"zero eta", NewSingleWall(0, a), good, []float64{1, 0, 0}},
		{"negative eta", NewSingleWall(-1, a), good, []float64{1, 0, 0}},
		{"zero radius", NewSingleWall(1.0, 0), good, []float64{1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.m.TransTimesForce(tt.positions, tt.forces); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}

	m := NewSingleWall(1.0, a)
	if _, err := m.TransTimesForce(good, []float64{1, 0, 0}); err != nil {
		t.Errorf("valid input rejected: %v", err)
	}
}
