package filter

import (
	"math"
	"sync"
)

// Gaussian2D generates a height x width isotropic Gaussian kernel for the
// given sigma, row-major. The kernel is normalized so all values sum to 1.0.
//
// Cell (y, x) is exp(-0.5 * (dx² + dy²) / sigma²), where dx and dy are the
// offsets from the geometric center ((width-1)/2, (height-1)/2). Even
// dimensions give a fractional center.
func Gaussian2D(sigma float64, height, width int) []float64 {
	kernel := make([]float64, height*width)

	cy := float64(height-1) / 2
	cx := float64(width-1) / 2
	sigmaSq := sigma * sigma
	sum := float64(0)

	for y := 0; y < height; y++ {
		dy := float64(y) - cy
		for x := 0; x < width; x++ {
			dx := float64(x) - cx
			val := math.Exp(-0.5 * (dx*dx + dy*dy) / sigmaSq)
			kernel[y*width+x] = val
			sum += val
		}
	}

	if sum > 0 {
		for i := range kernel {
			kernel[i] /= sum
		}
	}

	return kernel
}

// Flip returns the kernel rotated by 180 degrees, i.e. flipped along both
// axes: out[i][j] = k[h-1-i][w-1-j]. For a row-major layout this is the
// reversed slice, so the dimensions are not needed.
func Flip(kernel []float64) []float64 {
	n := len(kernel)
	out := make([]float64, n)
	for i, v := range kernel {
		out[n-1-i] = v
	}
	return out
}

// kernelKey identifies a cached Gaussian kernel.
type kernelKey struct {
	sigma  float64
	height int
	width  int
}

// kernelCache holds recently generated Gaussian kernels. When full, the
// entry inserted first is dropped.
type kernelCache struct {
	mu      sync.RWMutex
	kernels map[kernelKey][]float64
	order   []kernelKey // insertion order, oldest first
	limit   int
}

var defaultKernelCache = newKernelCache(64)

// newKernelCache creates a cache holding at most limit kernels.
func newKernelCache(limit int) *kernelCache {
	return &kernelCache{
		kernels: make(map[kernelKey][]float64, limit),
		order:   make([]kernelKey, 0, limit),
		limit:   max(limit, 1),
	}
}

func (c *kernelCache) lookup(key kernelKey) ([]float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	kernel, ok := c.kernels[key]
	return kernel, ok
}

// get returns the kernel for the given parameters, generating it on a miss.
func (c *kernelCache) get(sigma float64, height, width int) []float64 {
	key := kernelKey{sigma: sigma, height: height, width: width}
	if kernel, ok := c.lookup(key); ok {
		return kernel
	}

	generated := Gaussian2D(sigma, height, width)

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another caller may have stored it while we were generating.
	if kernel, ok := c.kernels[key]; ok {
		return kernel
	}
	for len(c.order) >= c.limit {
		delete(c.kernels, c.order[0])
		c.order = c.order[1:]
	}
	c.kernels[key] = generated
	c.order = append(c.order, key)
	return generated
}

// len returns the number of cached kernels.
func (c *kernelCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.kernels)
}

// CachedGaussian2D returns a cached Gaussian kernel. The returned slice is
// shared and must not be modified.
func CachedGaussian2D(sigma float64, height, width int) []float64 {
	return defaultKernelCache.get(sigma, height, width)
}
