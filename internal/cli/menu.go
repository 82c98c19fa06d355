package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/meltforce/fitlog/internal/models"
	"github.com/meltforce/fitlog/internal/store"
)

const (
	choiceAdd = iota + 1
	choiceList
	choiceSortDuration
	choiceSortCalories
	choiceSearchType
	choiceSearchDuration
	choiceExit
)

const menuText = `
Main Menu:
1. Add New Workout
2. Display All Workouts
3. Sort Workouts by Duration
4. Sort Workouts by Calories Burned
5. Search Workouts by Type
6. Search Workout by Duration
7. Exit
Enter your choice: `

// maxTokenLen bounds how many bytes of one input token are kept. The rest
// of an oversized token is read and discarded.
const maxTokenLen = 256

// errBadNumber marks a token that should have been an integer.
var errBadNumber = errors.New("not a number")

// Menu reads whitespace-separated tokens from in, dispatches them to the
// store and writes results to out.
type Menu struct {
	store *store.WorkoutStore
	in    *bufio.Reader
	out   io.Writer
	log   *slog.Logger
}

// New creates a Menu driving st. A nil logger discards log output.
func New(st *store.WorkoutStore, in io.Reader, out io.Writer, log *slog.Logger) *Menu {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Menu{store: st, in: bufio.NewReader(in), out: out, log: log}
}

// Run prints the menu and handles choices until the user exits or input
// ends. It returns an error only when reading input fails.
func (m *Menu) Run() error {
	m.println("Welcome to the Personal Fitness Tracker!")

	for {
		fmt.Fprint(m.out, menuText)

		tok, err := m.next()
		if errors.Is(err, io.EOF) {
			m.println()
			m.log.Info("input closed, exiting")
			return nil
		}
		if err != nil {
			return err
		}

		choice, convErr := strconv.Atoi(tok)
		if convErr != nil {
			choice = 0
		}
		m.log.Debug("menu choice", "input", tok)

		switch choice {
		case choiceAdd:
			err = m.addWorkout()
		case choiceList:
			m.displayAll()
		case choiceSortDuration:
			m.store.SortByDuration()
			m.println("Workouts sorted by duration.")
			m.displayAll()
		case choiceSortCalories:
			m.store.SortByCalories()
			m.println("Workouts sorted by calories burned.")
			m.displayAll()
		case choiceSearchType:
			err = m.searchByType()
		case choiceSearchDuration:
			err = m.searchByDuration()
		case choiceExit:
			m.println("Exiting...")
			return nil
		default:
			m.println("Invalid choice. Please try again.")
		}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			m.println()
			m.log.Info("input closed, exiting")
			return nil
		case errors.Is(err, errBadNumber):
			m.println("Invalid input.")
		default:
			return err
		}
	}
}

func (m *Menu) println(a ...any) {
	fmt.Fprintln(m.out, a...)
}

// next returns the next whitespace-separated input token, cut to
// maxTokenLen bytes, or io.EOF at end of input.
func (m *Menu) next() (string, error) {
	var tok []byte
	for {
		r, _, err := m.in.ReadRune()
		if errors.Is(err, io.EOF) {
			if len(tok) > 0 {
				return string(tok), nil
			}
			return "", io.EOF
		}
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		if unicode.IsSpace(r) {
			if len(tok) > 0 {
				return string(tok), nil
			}
			continue
		}
		if len(tok)+utf8.RuneLen(r) <= maxTokenLen {
			tok = utf8.AppendRune(tok, r)
		}
	}
}

func (m *Menu) nextInt() (int, error) {
	tok, err := m.next()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errBadNumber, tok)
	}
	return n, nil
}

func (m *Menu) readWorkout() (models.Workout, error) {
	var w models.Workout
	var err error

	fmt.Fprint(m.out, "Enter workout date (DD MM YYYY): ")
	for _, p := range []*int{&w.Date.Day, &w.Date.Month, &w.Date.Year} {
		if *p, err = m.nextInt(); err != nil {
			return w, err
		}
	}

	fmt.Fprint(m.out, "Enter workout type: ")
	typ, err := m.next()
	if err != nil {
		return w, err
	}
	w.Type = models.TruncateType(typ)

	fmt.Fprint(m.out, "Enter workout duration (in minutes): ")
	if w.DurationMinutes, err = m.nextInt(); err != nil {
		return w, err
	}

	fmt.Fprint(m.out, "Enter calories burned: ")
	if w.CaloriesBurned, err = m.nextInt(); err != nil {
		return w, err
	}
	return w, nil
}

func (m *Menu) addWorkout() error {
	w, err := m.readWorkout()
	if err != nil {
		return err
	}
	if err := m.store.Insert(w); err != nil {
		m.log.Error("insert failed", "error", err, "count", m.store.Len(), "capacity", m.store.Cap())
		m.println("Failed to add workout.")
		return nil
	}
	m.log.Debug("workout added", "type", w.Type, "count", m.store.Len(), "capacity", m.store.Cap())
	m.println("Workout added successfully.")
	return nil
}

func (m *Menu) displayAll() {
	all, err := m.store.List()
	if err != nil {
		m.println("No workouts recorded yet.")
		return
	}
	m.println()
	m.println("All Recorded Workouts:")
	for i, w := range all {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, w)
	}
}

func (m *Menu) searchByType() error {
	fmt.Fprint(m.out, "Enter workout type to search: ")
	tok, err := m.next()
	if err != nil {
		return err
	}
	query := models.TruncateType(tok)

	fmt.Fprintf(m.out, "Workouts of type '%s':\n", query)
	matches, err := m.store.SearchByType(query)
	if err != nil {
		m.println("No workouts found of type:", query)
		return nil
	}
	for _, w := range matches {
		m.println(w)
	}
	return nil
}

func (m *Menu) searchByDuration() error {
	fmt.Fprint(m.out, "Enter duration to search for: ")
	target, err := m.nextInt()
	if err != nil {
		return err
	}

	m.store.SortByDuration()
	idx, ok := m.store.SearchByDuration(target)
	if !ok {
		fmt.Fprintf(m.out, "No workout found with duration %d minutes.\n", target)
		return nil
	}
	m.println("Workout found:")
	m.println(m.store.At(idx))
	return nil
}
