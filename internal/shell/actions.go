package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/smileynet/rolodex/internal/contact"
	"github.com/smileynet/rolodex/internal/export"
)

// addContact prompts for a new contact. Phone and email are asked again until
// they are valid. Choosing an existing name offers to update it instead.
func (s *Shell) addContact(ctx context.Context) (bool, error) {
	Banner(s.out, s.styles, "ADD NEW CONTACT")

	var name string
	for {
		var err error
		name, err = s.ask(ctx, "Enter contact name: ")
		if err != nil {
			return false, err
		}
		if name == "" {
			s.fail("Name cannot be empty!")
			continue
		}
		if _, exists := s.book.Get(name); !exists {
			break
		}
		s.warn("Contact '%s' already exists!", name)
		yes, err := s.confirm(ctx, "Update instead? (y/n): ")
		if err != nil {
			return false, err
		}
		if yes {
			return s.updateContact(ctx, name)
		}
	}

	phone, err := s.askUntil(ctx, "Enter phone number: ", false, func(v string) bool {
		_, ok := contact.ValidatePhone(v)
		return ok
	}, fmt.Sprintf("Invalid! Enter %d-%d digits (e.g., 1234567890)", contact.MinPhoneDigits, contact.MaxPhoneDigits))
	if err != nil {
		return false, err
	}
	email, err := s.askUntil(ctx, "Enter email (optional): ", true, contact.ValidateEmail, "Invalid email format!")
	if err != nil {
		return false, err
	}
	address, err := s.ask(ctx, "Enter address (optional): ")
	if err != nil {
		return false, err
	}
	group, err := s.ask(ctx, fmt.Sprintf("Enter group (%s): ", groupChoices()))
	if err != nil {
		return false, err
	}

	c, err := s.book.Add(name, contact.Input{Phone: phone, Email: email, Address: address, Group: group})
	if err != nil {
		s.fail("Could not add '%s': %v", name, err)
		return false, nil
	}
	s.ok("Contact '%s' added successfully!", c.Name)
	return true, nil
}

// updateContact edits an existing contact. A blank answer keeps the current
// value. When name is empty it is asked for first.
func (s *Shell) updateContact(ctx context.Context, name string) (bool, error) {
	if name == "" {
		Banner(s.out, s.styles, "UPDATE CONTACT")
		var err error
		if name, err = s.ask(ctx, "Enter contact name to update: "); err != nil {
			return false, err
		}
	}
	current, ok := s.book.Get(name)
	if !ok {
		s.fail("Contact '%s' not found!", name)
		return false, nil
	}

	s.printf("\nUpdating contact: %s\n", s.styles.Label.Render(name))
	s.printf("%s\n", s.styles.Muted.Render("Leave blank to keep the current value."))

	var patch contact.Patch
	phone, err := s.askUntil(ctx, fmt.Sprintf("New phone [%s]: ", contact.FormatPhone(current.Phone)), true,
		func(v string) bool {
			_, ok := contact.ValidatePhone(v)
			return ok
		}, "Invalid phone number!")
	if err != nil {
		return false, err
	}
	if phone != "" {
		patch.Phone = &phone
	}
	email, err := s.askUntil(ctx, fmt.Sprintf("New email [%s]: ", current.Email), true, contact.ValidateEmail, "Invalid email format!")
	if err != nil {
		return false, err
	}
	if email != "" {
		patch.Email = &email
	}
	address, err := s.ask(ctx, fmt.Sprintf("New address [%s]: ", current.Address))
	if err != nil {
		return false, err
	}
	if address != "" {
		patch.Address = &address
	}
	group, err := s.ask(ctx, fmt.Sprintf("New group [%s]: ", current.Group))
	if err != nil {
		return false, err
	}
	if group != "" {
		patch.Group = &group
	}

	// Blank answers keep every field but still stamp the update time.
	if _, err := s.book.Update(name, patch); err != nil {
		s.fail("Could not update '%s': %v", name, err)
		return false, nil
	}
	s.ok("Contact '%s' updated successfully!", name)
	return true, nil
}

// deleteContact removes a contact after showing it and asking for confirmation.
func (s *Shell) deleteContact(ctx context.Context) (bool, error) {
	Banner(s.out, s.styles, "DELETE CONTACT")
	name, err := s.ask(ctx, "Enter contact name to delete: ")
	if err != nil {
		return false, err
	}
	c, ok := s.book.Get(name)
	if !ok {
		s.fail("Contact '%s' not found!", name)
		return false, nil
	}

	s.printf("\nContact to delete:\n")
	RenderContact(s.out, s.styles, 1, c, true)
	yes, err := s.confirm(ctx, fmt.Sprintf("Are you sure you want to delete '%s'? (y/n): ", name))
	if err != nil {
		return false, err
	}
	if !yes {
		s.printf("Deletion cancelled.\n")
		return false, nil
	}
	if _, err := s.book.Delete(name); err != nil {
		s.fail("Could not delete '%s': %v", name, err)
		return false, nil
	}
	s.ok("Contact '%s' deleted successfully!", name)
	return true, nil
}

func (s *Shell) searchContacts(ctx context.Context) error {
	Banner(s.out, s.styles, "SEARCH CONTACTS")
	term, err := s.ask(ctx, "Enter name to search: ")
	if err != nil {
		return err
	}
	RenderResults(s.out, s.styles, s.book.Search(term))
	return nil
}

func (s *Shell) exportCSV() {
	path, err := s.exporter.CSV(s.book)
	switch {
	case errors.Is(err, export.ErrNothingToExport):
		s.fail("No contacts to export!")
	case err != nil:
		s.log.Warn("export failed", zap.Error(err))
		s.fail("Error exporting to CSV: %v", err)
	default:
		s.ok("Contacts exported to '%s'", path)
	}
}

// askUntil repeats prompt until valid accepts the answer. With optional set a
// blank answer is accepted as is.
func (s *Shell) askUntil(ctx context.Context, prompt string, optional bool, valid func(string) bool, invalid string) (string, error) {
	for {
		v, err := s.ask(ctx, prompt)
		if err != nil {
			return "", err
		}
		if (optional && v == "") || valid(v) {
			return v, nil
		}
		s.fail("%s", invalid)
	}
}

func groupChoices() string {
	names := make([]string, 0, len(contact.Groups()))
	for _, g := range contact.Groups() {
		names = append(names, string(g))
	}
	return strings.Join(names, "/")
}
