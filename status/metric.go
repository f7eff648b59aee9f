package status

import (
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"unicode/utf8"
)

// MetricMap lazily allocates one cell per key
// Writers cache the returned pointer; lookups after the first never allocate
type MetricMap[T any] struct {
	cells sync.Map // string -> *T
	count atomic.Int64
}

// NewMetricMap creates an empty MetricMap
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{}
}

// Get returns the cell for key, creating it on first use
func (m *MetricMap[T]) Get(key string) *T {
	if v, ok := m.cells.Load(key); ok {
		return v.(*T)
	}
	v, loaded := m.cells.LoadOrStore(key, new(T))
	if !loaded {
		m.count.Add(1)
	}
	return v.(*T)
}

// Range visits cells in key order
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	var keys []string
	m.cells.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		return true
	})
	slices.Sort(keys)
	for _, k := range keys {
		if v, ok := m.cells.Load(k); ok {
			fn(k, v.(*T))
		}
	}
}

// Count returns the number of cells
func (m *MetricMap[T]) Count() int {
	return int(m.count.Load())
}

// AtomicFloat is a float64 cell; the zero value reads 0
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Store(v float64) { f.bits.Store(math.Float64bits(v)) }
func (f *AtomicFloat) Load() float64   { return math.Float64frombits(f.bits.Load()) }

// Add applies delta with a CAS loop and returns the result
func (f *AtomicFloat) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		next := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}

// MaxStringLen bounds stored strings in bytes
const MaxStringLen = 32

// AtomicString is a short string cell; the zero value reads ""
type AtomicString struct {
	v atomic.Value
}

// Store saves s cut to MaxStringLen on a rune boundary
func (s *AtomicString) Store(str string) {
	if len(str) > MaxStringLen {
		cut := MaxStringLen
		for cut > 0 && !utf8.RuneStart(str[cut]) {
			cut--
		}
		str = str[:cut]
	}
	s.v.Store(str)
}

func (s *AtomicString) Load() string {
	str, _ := s.v.Load().(string)
	return str
}
