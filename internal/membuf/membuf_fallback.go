//go:build !unix

package membuf

// alloc falls back to heap memory where anonymous mappings are unavailable.
func alloc(size int) ([]byte, func() error, error) {
	return make([]byte, size), func() error { return nil }, nil
}
