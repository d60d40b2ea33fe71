package model

import (
	"math/cmplx"

	"github.com/katalvlaran/layercake/core"
	"github.com/katalvlaran/layercake/material"
)

// csswap returns sqrt(1-x^2) on the complex plane; post-critical angles
// (x > 1) come out imaginary rather than NaN.
func csswap(x float64) complex128 {
	return cmplx.Sqrt(complex(1.0-x*x, 0))
}

// PsvSurfaceIndex selects the scatter-matrix element of PsvSurface for an
// (incoming mode, outgoing mode) pair.
func PsvSurfaceIndex(inMode, outMode core.Mode) (i, j int) {
	if inMode == core.S {
		i = 1
	}
	if outMode == core.S {
		j = 1
	}

	return i, j
}

// PsvSurface is the complex amplitude scatter matrix for reflection and
// conversion at the free surface, after Aki & Richards. p is the local
// flat ray parameter [s/m]. The matrix is ordered
//
//	[[ PP, PS ],
//	 [ SP, SS ]]
func PsvSurface(m material.Material, p float64) [2][2]complex128 {
	vp, vs := m.Vp, m.Vs

	sinphi := p * vp
	sinlam := p * vs
	cosphi := csswap(sinphi)
	coslam := csswap(sinlam)

	vspTerm := complex(1.0/(vs*vs)-2.0*p*p, 0)
	pccTerm := complex(4.0*p*p, 0) * cosphi / complex(vp, 0) * coslam / complex(vs, 0)
	denom := vspTerm*vspTerm + pccTerm

	return [2][2]complex128{
		{(-vspTerm*vspTerm + pccTerm) / denom,
			complex(4.0*p, 0) * coslam / complex(vp, 0) * vspTerm / denom},
		{complex(4.0*p, 0) * cosphi / complex(vs, 0) * vspTerm / denom,
			(vspTerm*vspTerm - pccTerm) / denom},
	}
}

// PsvSurfaceEnergy is PsvSurface with energy normalization: squared
// amplitudes weighted by the vertical impedance ratio.
func PsvSurfaceEnergy(m material.Material, p float64) [2][2]float64 {
	scatter := PsvSurface(m, p)
	vp, vs, rho := m.Vp, m.Vs, m.Rho

	const eps = 1e-16
	normvec := [2]complex128{
		complex(vp*rho, 0)*csswap(p*vp) + eps,
		complex(vs*rho, 0)*csswap(p*vs) + eps,
	}

	var out [2][2]float64
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			s := scatter[i][j]
			out[i][j] = real(s*cmplx.Conj(s)) * real(normvec[i]/normvec[j])
		}
	}

	return out
}

// PsvSolidIndex selects the scatter-matrix element of PsvSolid for an
// (incoming direction, outgoing direction, incoming mode, outgoing mode)
// combination.
func PsvSolidIndex(inDirection, outDirection core.Direction, inMode, outMode core.Mode) (i, j int) {
	if outDirection == core.Down {
		i = 2
	}
	if outMode == core.S {
		i++
	}
	if inDirection == core.Up {
		j = 2
	}
	if inMode == core.S {
		j++
	}

	return i, j
}

// PsvSolid is the complex amplitude scatter matrix for a solid-solid
// interface, after Aki & Richards: the 4x4 boundary-condition system is
// solved directly. p is the local flat ray parameter [s/m]. The matrix is
// ordered (1 above, 2 below)
//
//	[[P1P1, S1P1, P2P1, S2P1],
//	 [P1S1, S1S1, P2S1, S2S1],
//	 [P1P2, S1P2, P2P2, S2P2],
//	 [P1S2, S1S2, P2S2, S2S2]]
func PsvSolid(above, below material.Material, p float64) [4][4]complex128 {
	vp1, vs1, rho1 := above.Vp, above.Vs, above.Rho
	vp2, vs2, rho2 := below.Vp, below.Vs, below.Rho

	cosphi1 := csswap(p * vp1)
	coslam1 := csswap(p * vs1)
	cosphi2 := csswap(p * vp2)
	coslam2 := csswap(p * vs2)

	m := [4][4]complex128{
		{complex(-vp1*p, 0), -coslam1, complex(vp2*p, 0), coslam2},
		{cosphi1, complex(-vs1*p, 0), cosphi2, complex(-vs2*p, 0)},
		{complex(2.0*rho1*vs1*vs1*p, 0) * cosphi1,
			complex(rho1*vs1*(1.0-2.0*vs1*vs1*p*p), 0),
			complex(2.0*rho2*vs2*vs2*p, 0) * cosphi2,
			complex(rho2*vs2*(1.0-2.0*vs2*vs2*p*p), 0)},
		{complex(-rho1*vp1*(1.0-2.0*vs1*vs1*p*p), 0),
			complex(2.0*rho1*vs1*vs1*p, 0) * coslam1,
			complex(rho2*vp2*(1.0-2.0*vs2*vs2*p*p), 0),
			complex(-2.0*rho2*vs2*vs2*p, 0) * coslam2},
	}

	n := m
	for j := 0; j < 4; j++ {
		n[0][j] = -n[0][j]
		n[3][j] = -n[3][j]
	}

	return solve4(m, n)
}

// PsvSolidEnergy is PsvSolid with energy normalization. A vanishing shear
// velocity (fluid layer) is replaced with a tiny surrogate to keep the
// impedance weights finite.
func PsvSolidEnergy(above, below material.Material, p float64) [4][4]float64 {
	scatter := PsvSolid(above, below, p)

	vp1, vs1, rho1 := above.Vp, above.Vs, above.Rho
	vp2, vs2, rho2 := below.Vp, below.Vs, below.Rho
	if vs1 == 0 {
		vs1 = vp1 * 1e-16
	}
	if vs2 == 0 {
		vs2 = vp2 * 1e-16
	}

	const eps = 1e-16
	normvec := [4]complex128{
		complex(vp1*rho1, 0) * (csswap(p*vp1) + eps),
		complex(vs1*rho1, 0) * (csswap(p*vs1) + eps),
		complex(vp2*rho2, 0) * (csswap(p*vp2) + eps),
		complex(vs2*rho2, 0) * (csswap(p*vs2) + eps),
	}

	var out [4][4]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			s := scatter[i][j]
			out[i][j] = real(s*cmplx.Conj(s)) * real(normvec[i]/normvec[j])
		}
	}

	return out
}

// solve4 computes M^-1 * N for 4x4 complex matrices by Gaussian
// elimination with partial pivoting on the augmented system.
func solve4(m, n [4][4]complex128) [4][4]complex128 {
	// Augment: aug = [M | N], 4x8.
	var aug [4][8]complex128
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			aug[i][j] = m[i][j]
			aug[i][j+4] = n[i][j]
		}
	}

	for col := 0; col < 4; col++ {
		// Pivot on the largest remaining modulus in this column.
		pivot := col
		for row := col + 1; row < 4; row++ {
			if cmplx.Abs(aug[row][col]) > cmplx.Abs(aug[pivot][col]) {
				pivot = row
			}
		}
		if pivot != col {
			aug[col], aug[pivot] = aug[pivot], aug[col]
		}

		inv := 1.0 / aug[col][col]
		for j := col; j < 8; j++ {
			aug[col][j] *= inv
		}
		for row := 0; row < 4; row++ {
			if row == col || aug[row][col] == 0 {
				continue
			}
			factor := aug[row][col]
			for j := col; j < 8; j++ {
				aug[row][j] -= factor * aug[col][j]
			}
		}
	}

	var out [4][4]complex128
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = aug[i][j+4]
		}
	}

	return out
}
