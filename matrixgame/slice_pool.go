package matrixgame

import (
	"sync"
)

var floatSlicePool = sync.Pool{
	New: func() interface{} {
		return make([]float64, 0)
	},
}

// allocFloatSlice returns a zeroed slice of length n.
func allocFloatSlice(n int) []float64 {
	s := floatSlicePool.Get().([]float64)
	if cap(s) < n {
		return make([]float64, n)
	}

	s = s[:n]
	for i := range s {
		s[i] = 0
	}

	return s
}

func freeFloatSlice(s []float64) {
	if cap(s) > 0 {
		floatSlicePool.Put(s[:0])
	}
}
