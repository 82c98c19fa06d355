package store

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/meltforce/fitlog/internal/models"
)

const (
	DefaultInitialCapacity = 4
	DefaultMinCapacity     = 4
)

var (
	// ErrAllocation is returned when the allocator refuses a backing array.
	ErrAllocation = errors.New("allocation failed")
	// ErrEmpty is returned by read operations on a store with no workouts.
	ErrEmpty = errors.New("no workouts recorded")
	// ErrNotFound is returned when a search matches nothing.
	ErrNotFound = errors.New("no matching workouts")
	// ErrInvalidOptions is returned by New for negative capacities.
	ErrInvalidOptions = errors.New("invalid store options")
)

// Allocator returns a backing array with exactly n slots, or an error.
type Allocator func(n int) ([]models.Workout, error)

// Options configures a WorkoutStore.
type Options struct {
	InitialCapacity int
	MinCapacity     int
	// MaxCapacity caps the default allocator. Zero means unlimited.
	MaxCapacity int
	// Alloc overrides the default allocator.
	Alloc Allocator
}

// LimitAllocator returns an Allocator that refuses requests above limit slots.
// A limit of zero allows any size.
func LimitAllocator(limit int) Allocator {
	return func(n int) ([]models.Workout, error) {
		if limit > 0 && n > limit {
			return nil, fmt.Errorf("%w: %d slots requested, limit is %d", ErrAllocation, n, limit)
		}
		return make([]models.Workout, n), nil
	}
}

// WorkoutStore is an ordered collection of workouts. The backing array is
// managed by hand: len(items) is the capacity, count is the logical size.
// Insertion order is kept until one of the sort methods is called.
type WorkoutStore struct {
	items []models.Workout
	count int
	min   int
	alloc Allocator
	log   *slog.Logger
}

// New allocates a store with opts.InitialCapacity slots, raised to the
// minimum capacity if smaller.
func New(opts Options, log *slog.Logger) (*WorkoutStore, error) {
	if opts.InitialCapacity < 0 || opts.MinCapacity < 0 || opts.MaxCapacity < 0 {
		return nil, fmt.Errorf("%w: capacities must not be negative", ErrInvalidOptions)
	}
	if opts.MinCapacity == 0 {
		opts.MinCapacity = DefaultMinCapacity
	}
	if opts.InitialCapacity < opts.MinCapacity {
		opts.InitialCapacity = opts.MinCapacity
	}
	if opts.Alloc == nil {
		opts.Alloc = LimitAllocator(opts.MaxCapacity)
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	items, err := opts.Alloc(opts.InitialCapacity)
	if err != nil {
		return nil, fmt.Errorf("allocating initial storage: %w", err)
	}
	if len(items) < opts.InitialCapacity {
		return nil, fmt.Errorf("allocating initial storage: %w: got %d slots, asked for %d",
			ErrAllocation, len(items), opts.InitialCapacity)
	}
	log.Debug("store initialized", "capacity", len(items), "min_capacity", opts.MinCapacity)

	return &WorkoutStore{
		items: items,
		min:   opts.MinCapacity,
		alloc: opts.Alloc,
		log:   log,
	}, nil
}

// Len returns the number of stored workouts.
func (s *WorkoutStore) Len() int { return s.count }

// Cap returns the number of allocated slots.
func (s *WorkoutStore) Cap() int { return len(s.items) }

// At returns the workout at position i. It panics if i is out of range.
func (s *WorkoutStore) At(i int) models.Workout {
	if i < 0 || i >= s.count {
		panic(fmt.Sprintf("store: index %d out of range [0:%d]", i, s.count))
	}
	return s.items[i]
}

// resize moves the workouts into a fresh array of newCap slots, never fewer
// than the minimum capacity. On failure the current array is kept.
func (s *WorkoutStore) resize(newCap int) error {
	if newCap < s.min {
		newCap = s.min
	}
	items, err := s.alloc(newCap)
	if err != nil {
		return err
	}
	if len(items) < newCap {
		return fmt.Errorf("%w: allocator returned %d slots, asked for %d", ErrAllocation, len(items), newCap)
	}
	copy(items, s.items[:s.count])

	s.log.Debug("store resized", "from", len(s.items), "to", len(items), "count", s.count)
	s.items = items
	return nil
}

// Insert appends w. When the store is full the capacity doubles first; if
// that allocation fails the store is left as it was and the error is
// returned. After the append the store halves when fewer than a quarter of
// the slots are in use.
func (s *WorkoutStore) Insert(w models.Workout) error {
	if s.count == len(s.items) {
		if err := s.resize(len(s.items) * 2); err != nil {
			return fmt.Errorf("growing store: %w", err)
		}
	}

	s.items[s.count] = w
	s.count++

	if capacity := len(s.items); s.count < capacity/4 && capacity > s.min {
		if err := s.resize(capacity / 2); err != nil {
			// The record is stored and the old array is still valid.
			s.log.Warn("store shrink failed", "capacity", capacity, "count", s.count, "error", err)
		}
	}
	return nil
}

// List returns a copy of every workout in current order.
func (s *WorkoutStore) List() ([]models.Workout, error) {
	if s.count == 0 {
		return nil, ErrEmpty
	}
	out := make([]models.Workout, s.count)
	copy(out, s.items[:s.count])
	return out, nil
}

// Release drops the backing array. The store is empty afterwards.
func (s *WorkoutStore) Release() {
	s.items = nil
	s.count = 0
}
