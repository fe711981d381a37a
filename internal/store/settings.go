package store

import (
	"time"

	apperrors "eventplanner/internal/errors"
)

// SettingsState is the settings slice.
type SettingsState struct {
	DarkMode   bool
	LastExport time.Time
	Err        string
}

type (
	// SettingsLoaded replaces the settings with persisted preferences.
	SettingsLoaded struct{ Prefs Prefs }
	// DarkModeSet switches dark mode.
	DarkModeSet struct{ On bool }
	// ExportMarked records when data was last exported.
	ExportMarked struct{ At time.Time }
)

func (SettingsLoaded) action() {}
func (DarkModeSet) action()    {}
func (ExportMarked) action()   {}

// ReduceSettings applies a to s.
func ReduceSettings(s SettingsState, a Action) SettingsState {
	switch a := a.(type) {
	case Failed:
		s.Err = a.Err
	case SettingsLoaded:
		s.DarkMode = a.Prefs.DarkMode
		s.LastExport = a.Prefs.LastExport
		s.Err = ""
	case DarkModeSet:
		s.DarkMode = a.On
	case ExportMarked:
		s.LastExport = a.At
	}
	return s
}

func (s SettingsState) prefs() Prefs {
	return Prefs{DarkMode: s.DarkMode, LastExport: s.LastExport}
}

// Settings holds the two persisted UI flags.
type Settings struct {
	*slice[SettingsState]
	prefs Preferences
}

func newSettings(prefs Preferences, emit func(Change)) *Settings {
	return &Settings{
		slice: newSlice(SliceSettings, SettingsState{}, ReduceSettings, emit),
		prefs: prefs,
	}
}

// State returns a snapshot of the slice.
func (s *Settings) State() SettingsState { return s.snapshot() }

// Load reads persisted preferences into the slice.
func (s *Settings) Load() Result {
	prefs, err := s.prefs.Load()
	if err != nil {
		return s.fail("load preferences", apperrors.Wrap(apperrors.ErrInternalServer, err))
	}
	s.dispatch(SettingsLoaded{Prefs: prefs})
	return succeed("")
}

// ToggleDarkMode flips dark mode and persists it.
func (s *Settings) ToggleDarkMode() Result {
	return s.SetDarkMode(!s.snapshot().DarkMode)
}

// SetDarkMode switches dark mode and persists it.
func (s *Settings) SetDarkMode(on bool) Result {
	return s.apply("save dark mode", DarkModeSet{On: on})
}

// MarkExported records an export at t and persists it.
func (s *Settings) MarkExported(t time.Time) Result {
	return s.apply("save export time", ExportMarked{At: t})
}

// apply persists the state a would produce, then dispatches it, so the
// slice never shows a value that was not saved.
func (s *Settings) apply(op string, a Action) Result {
	next := ReduceSettings(s.snapshot(), a)
	if err := s.prefs.Save(next.prefs()); err != nil {
		return s.fail(op, apperrors.Wrap(apperrors.ErrInternalServer, err))
	}
	s.dispatch(a)
	return succeed("")
}
