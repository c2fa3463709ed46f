package horn

// Matrix is the 2x2 complex transfer (ABCD) matrix relating pressure and
// volume velocity at one end of an acoustic two-port to the other:
//
//	(p_in, U_in)^T = M * (p_out, U_out)^T
//
// "in" is always the throat-facing side of whatever the matrix describes,
// "out" the mouth-facing side, so that cascading segments throat-to-mouth
// is plain matrix multiplication (§4.3).
type Matrix struct {
	A, B, C, D complex128
}

// Identity is the transfer matrix of a zero-length segment.
var Identity = Matrix{A: 1, D: 1}

// Mul composes this matrix with a following one: if m describes segment 1
// and other describes segment 2 (mouth-ward of segment 1), m.Mul(other)
// is the matrix of the two in series, throat-to-mouth.
func (m Matrix) Mul(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.C,
		B: m.A*other.B + m.B*other.D,
		C: m.C*other.A + m.D*other.C,
		D: m.C*other.B + m.D*other.D,
	}
}

// Det returns AD-BC, which reciprocity requires to equal 1 for any lossless
// passive acoustic two-port (§8 property 1).
func (m Matrix) Det() complex128 {
	return m.A*m.D - m.B*m.C
}

// ThroatImpedance returns Z_throat = (A*Z_mouth+B)/(C*Z_mouth+D), the
// impedance seen at the "in" port of m when its "out" port is terminated
// in zMouth (§4.3).
func (m Matrix) ThroatImpedance(zMouth complex128) complex128 {
	return (m.A*zMouth + m.B) / (m.C*zMouth + m.D)
}

// MouthVolumeVelocity returns U_mouth given U_throat and a mouth
// termination zMouth: U_mouth = U_throat / (C*Z_mouth + D) (§4.3).
func (m Matrix) MouthVolumeVelocity(uThroat complex128, zMouth complex128) complex128 {
	return uThroat / (m.C*zMouth + m.D)
}
