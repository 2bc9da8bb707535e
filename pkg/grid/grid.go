package grid

// GetGridCoords converts a row-major linear index into (x, y) for a grid
// that is cols wide.
func GetGridCoords(index, cols int) (x, y int) {
	return index % cols, index / cols
}

// Wrap folds v into [0, size), also for negative values.
func Wrap(v, size int) int {
	return ((v % size) + size) % size
}
