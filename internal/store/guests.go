package store

import (
	"context"
	"slices"
	"strings"

	apperrors "eventplanner/internal/errors"
	"eventplanner/internal/gateway"
	"eventplanner/internal/models"
	"eventplanner/internal/validator"
)

// GuestState is the guests slice: the guests of the current event.
type GuestState struct {
	Guests     []models.Guest
	RSVPFilter string
	Loading    bool
	Err        string
}

// InitialGuestState is the state of a fresh store.
func InitialGuestState() GuestState { return GuestState{RSVPFilter: FilterAll} }

type (
	// GuestsLoaded replaces the guest list.
	GuestsLoaded struct{ Guests []models.Guest }
	// GuestAdded appends a created guest.
	GuestAdded struct{ Guest models.Guest }
	// GuestPatched merges a patch into the guest with ID.
	GuestPatched struct {
		ID    string
		Patch GuestPatch
	}
	// GuestRemoved drops the guest with ID.
	GuestRemoved struct{ ID string }
	// GuestsCleared empties the list, e.g. when leaving an event.
	GuestsCleared struct{}
	// RSVPFilterSet sets the RSVP filter, FilterAll to disable it.
	RSVPFilterSet struct{ Status string }
)

func (GuestsLoaded) action()  {}
func (GuestAdded) action()    {}
func (GuestPatched) action()  {}
func (GuestRemoved) action()  {}
func (GuestsCleared) action() {}
func (RSVPFilterSet) action() {}

// ReduceGuests applies a to s.
func ReduceGuests(s GuestState, a Action) GuestState {
	switch a := a.(type) {
	case LoadStarted:
		s.Loading = true
	case Failed:
		s.Err = a.Err
		s.Loading = false
	case GuestsLoaded:
		s.Guests = slices.Clone(a.Guests)
		s.Loading = false
		s.Err = ""
	case GuestAdded:
		s.Guests = append(slices.Clip(s.Guests), a.Guest)
	case GuestPatched:
		i := slices.IndexFunc(s.Guests, func(g models.Guest) bool { return g.ID == a.ID })
		if i < 0 {
			return s
		}
		s.Guests = slices.Clone(s.Guests)
		s.Guests[i] = a.Patch.Apply(s.Guests[i])
	case GuestRemoved:
		s.Guests = slices.DeleteFunc(slices.Clone(s.Guests), func(g models.Guest) bool { return g.ID == a.ID })
	case GuestsCleared:
		s.Guests = nil
	case RSVPFilterSet:
		s.RSVPFilter = a.Status
	}
	return s
}

// FilterGuests returns the guests whose RSVP status equals the filter,
// in list order. FilterAll returns every guest.
func FilterGuests(s GuestState) []models.Guest {
	if s.RSVPFilter == "" || s.RSVPFilter == FilterAll {
		return slices.Clone(s.Guests)
	}
	out := make([]models.Guest, 0, len(s.Guests))
	for _, g := range s.Guests {
		if string(g.RSVPStatus) == s.RSVPFilter {
			out = append(out, g)
		}
	}
	return out
}

// Guests manages the guest list of the current event.
type Guests struct {
	*slice[GuestState]
	gw gateway.Gateway
}

func newGuests(gw gateway.Gateway, emit func(Change)) *Guests {
	return &Guests{
		slice: newSlice(SliceGuests, InitialGuestState(), ReduceGuests, emit),
		gw:    gw,
	}
}

// State returns a copy of the slice state. Changing it does not affect
// the store.
func (g *Guests) State() GuestState {
	s := g.snapshot()
	s.Guests = slices.Clone(s.Guests)
	return s
}

// Filtered returns the guests matching the RSVP filter.
func (g *Guests) Filtered() []models.Guest { return FilterGuests(g.snapshot()) }

// Count returns the number of guests, ignoring the filter.
func (g *Guests) Count() int { return len(g.snapshot().Guests) }

// AttendingCount returns the number of guests who accepted.
func (g *Guests) AttendingCount() int {
	n := 0
	for _, guest := range g.snapshot().Guests {
		if guest.RSVPStatus == models.RSVPAttending {
			n++
		}
	}
	return n
}

// Load replaces the guest list with the guests of eventID.
func (g *Guests) Load(ctx context.Context, eventID string) Result {
	g.dispatch(LoadStarted{})

	guests, err := g.eventGuests(ctx, eventID)
	if err != nil {
		return g.fail("load guests", err)
	}

	g.dispatch(GuestsLoaded{Guests: guests})
	return succeed("")
}

// Create invites a guest. It reads every guest of the event first and
// refuses an email already on the list, compared case-insensitively. The
// read and the write are separate calls, so two concurrent invitations of
// the same email can both succeed.
func (g *Guests) Create(ctx context.Context, in GuestInput, eventID, userID string) Result {
	if err := validator.Struct(in); err != nil {
		return failure(err)
	}

	existing, err := g.eventGuests(ctx, eventID)
	if err != nil {
		return g.fail("create guest", err)
	}
	email := strings.TrimSpace(in.Email)
	for _, other := range existing {
		if strings.EqualFold(strings.TrimSpace(other.Email), email) {
			return g.fail("create guest", apperrors.ErrDuplicateGuest)
		}
	}

	status := in.RSVPStatus
	if status == "" {
		status = models.RSVPPending
	}
	guest := models.Guest{
		EventID:    eventID,
		UserID:     userID,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      email,
		RSVPStatus: status,
	}
	id, err := g.gw.Create(ctx, models.CollectionGuests, &guest)
	if err != nil {
		return g.fail("create guest", err)
	}
	guest.ID, guest.GuestID = id, id

	g.dispatch(GuestAdded{Guest: guest})
	return succeed(id)
}

// Update sends a partial update and merges it into the local record.
func (g *Guests) Update(ctx context.Context, id string, patch GuestPatch) Result {
	if err := validator.Struct(patch); err != nil {
		return failure(err)
	}
	fields := patch.Fields()
	if len(fields) == 0 {
		return failure(apperrors.WithMessage(apperrors.ErrInvalidInput, "Nothing to update"))
	}

	if err := g.gw.Update(ctx, models.CollectionGuests, id, fields); err != nil {
		return g.fail("update guest", err)
	}

	g.dispatch(GuestPatched{ID: id, Patch: patch})
	return succeed(id)
}

// Remove deletes a guest.
func (g *Guests) Remove(ctx context.Context, id string) Result {
	if err := g.gw.Delete(ctx, models.CollectionGuests, id); err != nil {
		return g.fail("delete guest", err)
	}

	g.dispatch(GuestRemoved{ID: id})
	return succeed(id)
}

// Clear empties the local guest list.
func (g *Guests) Clear() { g.dispatch(GuestsCleared{}) }

// SetRSVPFilter filters by RSVP status; FilterAll shows every guest.
func (g *Guests) SetRSVPFilter(status string) Result {
	if err := validator.Struct(rsvpFilterInput{Status: status}); err != nil {
		return failure(err)
	}
	g.dispatch(RSVPFilterSet{Status: status})
	return succeed("")
}

func (g *Guests) eventGuests(ctx context.Context, eventID string) ([]models.Guest, error) {
	var guests []models.Guest
	err := g.gw.Query(ctx, models.CollectionGuests, &guests, []gateway.Filter{gateway.Eq("event_id", eventID)}, nil)
	return guests, err
}
