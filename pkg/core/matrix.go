package core

import (
	"errors"
	"fmt"
	"math"
)

// MatrixTolerance is the per-entry tolerance used by Matrix4.Equals
const MatrixTolerance = 1e-4

// ErrSingularMatrix is returned when a matrix has no inverse
var ErrSingularMatrix = errors.New("singular matrix")

// Matrix4 is a row-major 4x4 matrix. Points and vectors are columns:
// p' = M * p, with the translation held in column 3.
type Matrix4 [4][4]float64

// NewMatrix4 creates a matrix from its rows
func NewMatrix4(rows [4][4]float64) Matrix4 {
	return Matrix4(rows)
}

// Identity4 returns the 4x4 identity matrix
func Identity4() Matrix4 {
	return Matrix4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// At returns the entry at row i, column j
func (m Matrix4) At(i, j int) float64 {
	return m[i][j]
}

// Mul returns the product a * b
func Mul(a, b Matrix4) Matrix4 {
	var r Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j] + a[i][2]*b[2][j] + a[i][3]*b[3][j]
		}
	}
	return r
}

// Multiply returns m * other
func (m Matrix4) Multiply(other Matrix4) Matrix4 {
	return Mul(m, other)
}

// Transpose returns the transposed matrix
func (m Matrix4) Transpose() Matrix4 {
	var r Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// Determinant3 returns the determinant of the upper-left 3x3 block
func (m Matrix4) Determinant3() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Inverse computes the inverse with Gauss-Jordan elimination.
// A zero pivot is replaced by the first nonzero entry below it in the same
// column; when there is none the matrix is singular.
func (m Matrix4) Inverse() (Matrix4, error) {
	work := m
	inv := Identity4()

	for k := 0; k < 4; k++ {
		if work[k][k] == 0 {
			l := k + 1
			for l < 4 && work[l][k] == 0 {
				l++
			}
			if l == 4 {
				return Matrix4{}, fmt.Errorf("invert: no pivot in column %d: %w", k, ErrSingularMatrix)
			}
			work[k], work[l] = work[l], work[k]
			inv[k], inv[l] = inv[l], inv[k]
		}

		pivot := work[k][k]
		for j := 0; j < 4; j++ {
			work[k][j] /= pivot
			inv[k][j] /= pivot
		}

		for i := 0; i < 4; i++ {
			if i == k {
				continue
			}
			factor := work[i][k]
			for j := 0; j < 4; j++ {
				work[i][j] -= factor * work[k][j]
				inv[i][j] -= factor * inv[k][j]
			}
		}
	}

	return inv, nil
}

// Equals reports whether every entry differs by at most MatrixTolerance
func (m Matrix4) Equals(other Matrix4) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(m[i][j]-other[i][j]) > MatrixTolerance {
				return false
			}
		}
	}
	return true
}
