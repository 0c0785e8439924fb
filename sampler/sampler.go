package sampler

import (
	"math/rand"
)

// Sampler fills dst with len(dst) distinct row indices drawn from [0, n)
// and reports whether such a sample exists. Implementations need not be
// safe for concurrent use; the estimation loop serializes all draws.
type Sampler interface {
	Sample(dst []int, n int) bool
}

// Uniform draws minimal samples uniformly without replacement using a
// partial Fisher-Yates shuffle over a reusable index pool. Construct it
// with NewUniform; the zero value has no random source.
type Uniform struct {
	rand *rand.Rand
	pool []int
}

// NewUniform creates a Uniform sampler. The same seed reproduces the same
// sequence of samples.
func NewUniform(seed int64) *Uniform {
	return &Uniform{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
	}
}

// Sample implements Sampler.
func (u *Uniform) Sample(dst []int, n int) bool {
	k := len(dst)
	if k == 0 || k > n {
		return false
	}

	if cap(u.pool) < n {
		u.pool = make([]int, n)
	}
	u.pool = u.pool[:n]

	for i := range u.pool {
		u.pool[i] = i
	}

	for i := 0; i < k; i++ {
		j := i + u.rand.Intn(n-i)
		u.pool[i], u.pool[j] = u.pool[j], u.pool[i]
		dst[i] = u.pool[i]
	}

	return true
}
