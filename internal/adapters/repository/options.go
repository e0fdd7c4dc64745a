// Package repository defines the standings store interface and its
// in-memory implementation.
package repository

// StoreOption applies a configuration option to the StandingsStore.
type StoreOption func(*StandingsStore)

// WithLargerIsBetter controls score ordering. When false, lower scores
// rank first, which suits error metrics such as RMSE.
func WithLargerIsBetter(larger bool) StoreOption {
	return func(s *StandingsStore) {
		s.larger = larger
	}
}
