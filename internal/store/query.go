package store

import "github.com/meltforce/fitlog/internal/models"

// SortByDuration orders the workouts by ascending duration using selection
// sort. The sort is not stable.
func (s *WorkoutStore) SortByDuration() {
	w := s.items[:s.count]
	for i := 0; i < len(w)-1; i++ {
		minIdx := i
		for j := i + 1; j < len(w); j++ {
			if w[j].DurationMinutes < w[minIdx].DurationMinutes {
				minIdx = j
			}
		}
		if minIdx != i {
			w[i], w[minIdx] = w[minIdx], w[i]
		}
	}
}

// SortByCalories orders the workouts by ascending calories burned using
// bubble sort.
func (s *WorkoutStore) SortByCalories() {
	w := s.items[:s.count]
	for i := 0; i < len(w)-1; i++ {
		for j := 0; j < len(w)-i-1; j++ {
			if w[j].CaloriesBurned > w[j+1].CaloriesBurned {
				w[j], w[j+1] = w[j+1], w[j]
			}
		}
	}
}

// SearchByType returns every workout whose type equals query exactly, in
// store order. It returns ErrEmpty for an empty store and ErrNotFound when
// nothing matches.
func (s *WorkoutStore) SearchByType(query string) ([]models.Workout, error) {
	if s.count == 0 {
		return nil, ErrEmpty
	}
	var matches []models.Workout
	for _, w := range s.items[:s.count] {
		if w.Type == query {
			matches = append(matches, w)
		}
	}
	if len(matches) == 0 {
		return nil, ErrNotFound
	}
	return matches, nil
}

// SearchByDuration binary-searches for a workout lasting target minutes and
// returns its index. The store must already be sorted by duration; the order
// is not checked. With duplicates any matching index may be returned.
func (s *WorkoutStore) SearchByDuration(target int) (int, bool) {
	low, high := 0, s.count-1
	for low <= high {
		mid := low + (high-low)/2
		switch d := s.items[mid].DurationMinutes; {
		case d == target:
			return mid, true
		case d < target:
			low = mid + 1
		default:
			high = mid - 1
		}
	}
	return -1, false
}
