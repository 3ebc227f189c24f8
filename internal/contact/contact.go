// Package contact defines the address-book record and the pure functions that
// validate, normalize, and format its fields.
package contact

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TimeLayout is the layout used for Created and Updated wherever they are
// written out (store file, CSV export, listings).
const TimeLayout = "2006-01-02 15:04:05"

// Group is the fixed category a contact belongs to.
type Group string

const (
	GroupFamily  Group = "Family"
	GroupFriends Group = "Friends"
	GroupOther   Group = "Other"
	GroupWork    Group = "Work"
)

// Groups returns every group, sorted by name.
func Groups() []Group {
	return []Group{GroupFamily, GroupFriends, GroupOther, GroupWork}
}

// NormalizeGroup title-cases raw and returns the matching group.
// Anything outside the enumeration, including "", is GroupOther.
func NormalizeGroup(raw string) Group {
	title := cases.Title(language.English).String(strings.TrimSpace(raw))
	for _, g := range Groups() {
		if string(g) == title {
			return g
		}
	}
	return GroupOther
}

// Contact is one address-book record. Name is the unique key.
// Email and Address are optional; "" means absent.
type Contact struct {
	Name    string
	Phone   string // digits only
	Email   string
	Address string
	Group   Group
	Created time.Time
	Updated time.Time
}

// Input is the raw, unvalidated field input for a new contact.
type Input struct {
	Phone   string
	Email   string
	Address string
	Group   string
}

// Patch describes a partial update. A nil field leaves the current value
// unchanged; a non-nil empty Email or Address clears the field.
type Patch struct {
	Phone   *string
	Email   *string
	Address *string
	Group   *string
}

// IsEmpty reports whether the patch supplies no fields at all.
func (p Patch) IsEmpty() bool {
	return p.Phone == nil && p.Email == nil && p.Address == nil && p.Group == nil
}

// New validates in and builds a contact stamped with now.
func New(name string, in Input, now time.Time) (Contact, error) {
	if strings.TrimSpace(name) == "" {
		return Contact{}, &ValidationError{Field: FieldName, Value: name, Reason: "cannot be empty"}
	}
	phone, ok := ValidatePhone(in.Phone)
	if !ok {
		return Contact{}, phoneError(in.Phone)
	}
	email := strings.TrimSpace(in.Email)
	if !ValidateEmail(email) {
		return Contact{}, emailError(email)
	}

	now = now.Truncate(time.Second)
	return Contact{
		Name:    name,
		Phone:   phone,
		Email:   email,
		Address: strings.TrimSpace(in.Address),
		Group:   NormalizeGroup(in.Group),
		Created: now,
		Updated: now,
	}, nil
}

// Apply validates every supplied field of p and returns the updated copy of c.
// On error c is returned untouched. Updated is refreshed on success even when
// no value changes.
func (c Contact) Apply(p Patch, now time.Time) (Contact, error) {
	next := c

	if p.Phone != nil {
		phone, ok := ValidatePhone(*p.Phone)
		if !ok {
			return c, phoneError(*p.Phone)
		}
		next.Phone = phone
	}
	if p.Email != nil {
		email := strings.TrimSpace(*p.Email)
		if !ValidateEmail(email) {
			return c, emailError(email)
		}
		next.Email = email
	}
	if p.Address != nil {
		next.Address = strings.TrimSpace(*p.Address)
	}
	if p.Group != nil {
		next.Group = NormalizeGroup(*p.Group)
	}

	now = now.Truncate(time.Second)
	// Keep Updated monotonic if the clock moved backwards.
	if now.After(c.Updated) {
		next.Updated = now
	}
	return next, nil
}
