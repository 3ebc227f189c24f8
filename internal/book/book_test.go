package book

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smileynet/rolodex/internal/contact"
)

// fakeClock is a settable time source.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBook(t *testing.T) (*Book, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)}
	return New(WithClock(clock.Now)), clock
}

func names(cs []contact.Contact) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func strPtr(s string) *string { return &s }

func TestAdd(t *testing.T) {
	b, clock := newTestBook(t)

	c, err := b.Add("Anna", contact.Input{Phone: "123-456-7890", Email: "anna@example.com", Group: "friends"})
	require.NoError(t, err)

	assert.Equal(t, "1234567890", c.Phone)
	assert.Equal(t, contact.GroupFriends, c.Group)
	assert.True(t, c.Created.Equal(clock.Now()))
	assert.True(t, c.Updated.Equal(c.Created))

	got, ok := b.Get("Anna")
	require.True(t, ok)
	assert.Equal(t, c, got)
	assert.Equal(t, 1, b.Len())
}

func TestAdd_DuplicateNeverOverwrites(t *testing.T) {
	// Given a stored contact
	b, clock := newTestBook(t)
	orig, err := b.Add("Bob", contact.Input{Phone: "1234567890", Group: "Work"})
	require.NoError(t, err)
	clock.Advance(time.Hour)

	// When the same name is added again
	_, err = b.Add("Bob", contact.Input{Phone: "9999999999", Group: "Family"})

	// Then ErrDuplicateName is reported and the record is untouched
	require.ErrorIs(t, err, ErrDuplicateName)
	got, _ := b.Get("Bob")
	assert.Equal(t, orig, got)
	assert.Equal(t, 1, b.Len())
}

func TestAdd_ValidationFailureLeavesBookEmpty(t *testing.T) {
	b, _ := newTestBook(t)

	_, err := b.Add("Carl", contact.Input{Phone: "12345"})

	require.ErrorIs(t, err, contact.ErrInvalid)
	assert.Equal(t, 0, b.Len())
}

func TestAdd_NameIsCaseSensitiveKey(t *testing.T) {
	b, _ := newTestBook(t)

	_, err := b.Add("anna", contact.Input{Phone: "1234567890"})
	require.NoError(t, err)
	_, err = b.Add("Anna", contact.Input{Phone: "1234567890"})
	require.NoError(t, err)

	assert.Equal(t, 2, b.Len())
}

func TestUpdate(t *testing.T) {
	b, clock := newTestBook(t)
	orig, err := b.Add("Dana", contact.Input{Phone: "1234567890", Email: "dana@example.com", Group: "Work"})
	require.NoError(t, err)
	clock.Advance(time.Minute)

	got, err := b.Update("Dana", contact.Patch{Phone: strPtr("+1 (555) 123-4567")})
	require.NoError(t, err)

	assert.Equal(t, "15551234567", got.Phone)
	assert.Equal(t, orig.Email, got.Email)
	assert.Equal(t, orig.Group, got.Group)
	assert.True(t, got.Created.Equal(orig.Created))
	assert.True(t, got.Updated.After(orig.Updated))
}

func TestUpdate_NoChangeStillRefreshesUpdated(t *testing.T) {
	b, clock := newTestBook(t)
	orig, err := b.Add("Eve", contact.Input{Phone: "1234567890"})
	require.NoError(t, err)
	clock.Advance(time.Second)

	got, err := b.Update("Eve", contact.Patch{})
	require.NoError(t, err)

	assert.True(t, got.Updated.After(orig.Updated))
}

func TestUpdate_NotFoundLeavesBookUnchanged(t *testing.T) {
	b, _ := newTestBook(t)
	_, err := b.Add("Finn", contact.Input{Phone: "1234567890"})
	require.NoError(t, err)
	before := b.List()

	_, err = b.Update("Ghost", contact.Patch{Phone: strPtr("0987654321")})

	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, before, b.List())
}

func TestUpdate_RejectedPatchLeavesRecord(t *testing.T) {
	b, clock := newTestBook(t)
	orig, err := b.Add("Gus", contact.Input{Phone: "1234567890", Address: "Somewhere"})
	require.NoError(t, err)
	clock.Advance(time.Hour)

	_, err = b.Update("Gus", contact.Patch{Address: strPtr("Elsewhere"), Email: strPtr("not-an-email")})

	require.ErrorIs(t, err, contact.ErrInvalid)
	got, _ := b.Get("Gus")
	assert.Equal(t, orig, got)
}

func TestDelete(t *testing.T) {
	b, _ := newTestBook(t)
	for _, n := range []string{"A1", "B2", "C3"} {
		_, err := b.Add(n, contact.Input{Phone: "1234567890"})
		require.NoError(t, err)
	}

	removed, err := b.Delete("B2")
	require.NoError(t, err)
	assert.Equal(t, "B2", removed.Name)

	_, ok := b.Get("B2")
	assert.False(t, ok)
	assert.Equal(t, []string{"A1", "C3"}, names(b.List()))

	_, err = b.Delete("B2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_ThenReAddGoesToEnd(t *testing.T) {
	b, _ := newTestBook(t)
	for _, n := range []string{"A1", "B2"} {
		_, err := b.Add(n, contact.Input{Phone: "1234567890"})
		require.NoError(t, err)
	}

	_, err := b.Delete("A1")
	require.NoError(t, err)
	_, err = b.Add("A1", contact.Input{Phone: "1234567890"})
	require.NoError(t, err)

	assert.Equal(t, []string{"B2", "A1"}, names(b.List()))
}

func TestSearch(t *testing.T) {
	b, _ := newTestBook(t)
	for _, n := range []string{"Anna", "Bob", "Marianne"} {
		_, err := b.Add(n, contact.Input{Phone: "1234567890"})
		require.NoError(t, err)
	}

	tests := []struct {
		term string
		want []string
	}{
		{term: "", want: []string{"Anna", "Bob", "Marianne"}},
		{term: "an", want: []string{"Anna", "Marianne"}},
		{term: "AN", want: []string{"Anna", "Marianne"}},
		{term: "bob", want: []string{"Bob"}},
		{term: "zed", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, names(b.Search(tt.term)))
		})
	}
}

func TestList_InsertionOrder(t *testing.T) {
	b, _ := newTestBook(t)
	order := []string{"Zoe", "Adam", "Mia"}
	for _, n := range order {
		_, err := b.Add(n, contact.Input{Phone: "1234567890"})
		require.NoError(t, err)
	}

	assert.Equal(t, order, names(b.List()))
}

func TestRestore(t *testing.T) {
	b, _ := newTestBook(t)
	stamp := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	c := contact.Contact{Name: "Old", Phone: "1234567890", Group: contact.GroupFamily, Created: stamp, Updated: stamp}

	require.NoError(t, b.Restore(c))
	got, ok := b.Get("Old")
	require.True(t, ok)
	assert.Equal(t, c, got)

	assert.ErrorIs(t, b.Restore(c), ErrDuplicateName)
	assert.ErrorIs(t, b.Restore(contact.Contact{}), contact.ErrInvalid)
}

func TestStatistics(t *testing.T) {
	// Given three Work contacts and one Family contact
	b, clock := newTestBook(t)
	for _, n := range []string{"W1", "W2", "W3"} {
		_, err := b.Add(n, contact.Input{Phone: "1234567890", Group: "Work"})
		require.NoError(t, err)
	}
	_, err := b.Add("F1", contact.Input{Phone: "1234567890", Group: "Family"})
	require.NoError(t, err)

	// When statistics are computed
	s := b.Statistics()

	// Then every group is reported, sorted, zero-filled
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, []GroupCount{
		{Group: contact.GroupFamily, Count: 1},
		{Group: contact.GroupFriends, Count: 0},
		{Group: contact.GroupOther, Count: 0},
		{Group: contact.GroupWork, Count: 3},
	}, s.ByGroup)
	assert.Equal(t, 3, s.Count(contact.GroupWork))
	assert.Equal(t, 4, s.RecentlyUpdated)

	// And contacts age out of the recent window
	clock.Advance(8 * 24 * time.Hour)
	_, err = b.Update("W1", contact.Patch{})
	require.NoError(t, err)
	assert.Equal(t, 1, b.Statistics().RecentlyUpdated)
}

func TestStatistics_Empty(t *testing.T) {
	b, _ := newTestBook(t)

	s := b.Statistics()

	assert.Equal(t, 0, s.Total)
	assert.Len(t, s.ByGroup, 4)
	for _, gc := range s.ByGroup {
		assert.Zero(t, gc.Count, gc.Group)
	}
}

func TestWithRecentWindow(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)}
	b := New(WithClock(clock.Now), WithRecentWindow(time.Hour))
	_, err := b.Add("Hal", contact.Input{Phone: "1234567890"})
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)

	assert.Equal(t, 0, b.Statistics().RecentlyUpdated)
}

func TestWithRecentWindow_IgnoresNonPositive(t *testing.T) {
	assert.Equal(t, RecentWindow, New(WithRecentWindow(0)).Recent())
	assert.Equal(t, time.Hour, New(WithRecentWindow(time.Hour)).Recent())
}

func TestClone(t *testing.T) {
	b, _ := newTestBook(t)
	for _, n := range []string{"Zed", "Amy"} {
		_, err := b.Add(n, contact.Input{Phone: "1234567890"})
		require.NoError(t, err)
	}

	c := b.Clone()
	_, err := b.Delete("Zed")
	require.NoError(t, err)

	// The clone keeps its own order and records
	assert.Equal(t, []string{"Zed", "Amy"}, names(c.List()))
	assert.Equal(t, []string{"Amy"}, names(b.List()))
}
