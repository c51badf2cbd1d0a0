package domain

import "fmt"

// Matrix is a square, row-major table indexed by location index.
// Values are kilometres for distance matrices and minutes for time matrices.
type Matrix struct {
	n      int
	values []float64
}

func NewMatrix(n int) Matrix {
	if n < 0 {
		n = 0
	}
	return Matrix{n: n, values: make([]float64, n*n)}
}

// MatrixFromRows copies rows into a Matrix; rows must be square.
func MatrixFromRows(rows [][]float64) (Matrix, error) {
	m := NewMatrix(len(rows))
	for i, row := range rows {
		if len(row) != len(rows) {
			return Matrix{}, fmt.Errorf("matrix from rows: row %d has %d columns, want %d", i, len(row), len(rows))
		}
		copy(m.values[i*m.n:(i+1)*m.n], row)
	}
	return m, nil
}

func (m Matrix) Size() int { return m.n }

// At returns the value for the pair (from, to).
// Out-of-range indices are a data integrity failure, not a panic.
func (m Matrix) At(from, to int) (float64, error) {
	if from < 0 || from >= m.n || to < 0 || to >= m.n {
		return 0, fmt.Errorf("%w: matrix index (%d,%d) outside %dx%d", ErrDataIntegrity, from, to, m.n, m.n)
	}
	return m.values[from*m.n+to], nil
}

// Set is only used while a matrix is being built.
func (m Matrix) Set(from, to int, v float64) {
	m.values[from*m.n+to] = v
}

// Rows returns a copy of the matrix as nested slices.
func (m Matrix) Rows() [][]float64 {
	out := make([][]float64, m.n)
	for i := 0; i < m.n; i++ {
		row := make([]float64, m.n)
		copy(row, m.values[i*m.n:(i+1)*m.n])
		out[i] = row
	}
	return out
}

// Map returns a new matrix with f applied to every value.
func (m Matrix) Map(f func(float64) float64) Matrix {
	out := NewMatrix(m.n)
	for i, v := range m.values {
		out.values[i] = f(v)
	}
	return out
}

// Matrices pairs the distance and time matrices built for one location set.
type Matrices struct {
	Distance Matrix
	Time     Matrix
}
