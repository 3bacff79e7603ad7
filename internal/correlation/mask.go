package correlation

// Mask marks the cells of a square matrix to hide
type Mask [][]bool

// UpperTriangleMask hides the diagonal and everything above it, leaving the
// strict lower triangle visible
func UpperTriangleMask(n int) Mask {
	mask := make(Mask, n)
	for i := range mask {
		mask[i] = make([]bool, n)
		for j := i; j < n; j++ {
			mask[i][j] = true
		}
	}
	return mask
}

// Masked reports whether cell (i, j) is hidden
func (m Mask) Masked(i, j int) bool {
	return m[i][j]
}

// Size returns the side length of the mask
func (m Mask) Size() int {
	return len(m)
}
