package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/smileynet/rolodex"
	"github.com/smileynet/rolodex/internal/book"
	"github.com/smileynet/rolodex/internal/contact"
	"github.com/smileynet/rolodex/internal/dashboard"
	"github.com/smileynet/rolodex/internal/export"
	"github.com/smileynet/rolodex/internal/shell"
)

// ShellCmd runs the numbered interactive menu.
type ShellCmd struct{}

// Run executes the shell command.
func (s *ShellCmd) Run(g *Globals, con *console) error {
	a, err := open(g, con)
	if err != nil {
		return err
	}
	defer a.close()

	if a.loaded {
		_, _ = fmt.Fprintf(con.out, "Loaded %d contact(s) from %s\n", a.book.Len(), a.store.Path())
	} else {
		_, _ = fmt.Fprintln(con.out, "No existing contacts found. Starting fresh.")
	}

	sh := shell.New(a.book, a.store, a.exporter,
		shell.WithInput(con.in),
		shell.WithOutput(con.out),
		shell.WithStyles(a.styles),
		shell.WithLogger(a.log),
	)
	return sh.Run(con.ctx)
}

// AddCmd adds one contact.
type AddCmd struct {
	Name    string `arg:"" help:"Contact name."`
	Phone   string `required:"" short:"p" help:"Phone number, 10-15 digits; punctuation is ignored."`
	Email   string `short:"e" help:"Email address."`
	Address string `short:"a" help:"Postal address."`
	Group   string `short:"g" help:"Family, Friends, Work or Other." default:"Other"`
}

// Run executes the add command.
func (c *AddCmd) Run(g *Globals, con *console) error {
	a, err := open(g, con)
	if err != nil {
		return err
	}
	defer a.close()

	name := strings.TrimSpace(c.Name)
	added, err := a.book.Add(name, contact.Input{Phone: c.Phone, Email: c.Email, Address: c.Address, Group: c.Group})
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	if err := a.save(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(con.out, a.styles.Success.Render(fmt.Sprintf("Contact '%s' added successfully!", added.Name)))
	return nil
}

// UpdateCmd changes the supplied fields of one contact. Omitted flags keep
// the current value; an empty --email or --address clears the field.
type UpdateCmd struct {
	Name    string  `arg:"" help:"Contact name."`
	Phone   *string `short:"p" help:"New phone number."`
	Email   *string `short:"e" help:"New email address (empty clears it)."`
	Address *string `short:"a" help:"New postal address (empty clears it)."`
	Group   *string `short:"g" help:"New group."`
}

// Run executes the update command.
func (c *UpdateCmd) Run(g *Globals, con *console) error {
	patch := contact.Patch{Phone: c.Phone, Email: c.Email, Address: c.Address, Group: c.Group}
	if patch.IsEmpty() {
		return errNothingToChange
	}

	a, err := open(g, con)
	if err != nil {
		return err
	}
	defer a.close()

	name := strings.TrimSpace(c.Name)
	if _, err := a.book.Update(name, patch); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if err := a.save(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(con.out, a.styles.Success.Render(fmt.Sprintf("Contact '%s' updated successfully!", name)))
	return nil
}

// DeleteCmd removes one contact, asking first unless --yes is given.
type DeleteCmd struct {
	Name string `arg:"" help:"Contact name."`
	Yes  bool   `short:"y" help:"Do not ask for confirmation."`
}

// Run executes the delete command.
func (c *DeleteCmd) Run(g *Globals, con *console) error {
	a, err := open(g, con)
	if err != nil {
		return err
	}
	defer a.close()

	name := strings.TrimSpace(c.Name)
	target, ok := a.book.Get(name)
	if !ok {
		return fmt.Errorf("delete: %w: %q", book.ErrNotFound, name)
	}

	if !c.Yes {
		_, _ = fmt.Fprintln(con.out, "Contact to delete:")
		shell.RenderContact(con.out, a.styles, 1, target, true)
		_, _ = fmt.Fprintf(con.out, "Are you sure you want to delete '%s'? (y/n): ", name)
		answer, _ := bufio.NewReader(con.in).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			_, _ = fmt.Fprintln(con.out, "Deletion cancelled.")
			return fmt.Errorf("delete: %w", errAborted)
		}
	}

	if _, err := a.book.Delete(name); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if err := a.save(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(con.out, a.styles.Success.Render(fmt.Sprintf("Contact '%s' deleted successfully!", name)))
	return nil
}

// ShowCmd prints one contact in full.
type ShowCmd struct {
	Name string `arg:"" help:"Contact name."`
}

// Run executes the show command.
func (c *ShowCmd) Run(g *Globals, con *console) error {
	a, err := open(g, con)
	if err != nil {
		return err
	}
	defer a.close()

	name := strings.TrimSpace(c.Name)
	found, ok := a.book.Get(name)
	if !ok {
		return fmt.Errorf("show: %w: %q", book.ErrNotFound, name)
	}
	shell.RenderContact(con.out, a.styles, 1, found, true)
	return nil
}

// ListCmd prints every contact in insertion order.
type ListCmd struct{}

// Run executes the list command.
func (l *ListCmd) Run(g *Globals, con *console) error {
	a, err := open(g, con)
	if err != nil {
		return err
	}
	defer a.close()

	shell.RenderAll(con.out, a.styles, a.book.List())
	return nil
}

// SearchCmd prints contacts whose name contains a term, ignoring case.
type SearchCmd struct {
	Term string `arg:"" help:"Part of a name."`
}

// Run executes the search command.
func (s *SearchCmd) Run(g *Globals, con *console) error {
	a, err := open(g, con)
	if err != nil {
		return err
	}
	defer a.close()

	shell.RenderResults(con.out, a.styles, a.book.Search(s.Term))
	return nil
}

// ExportCmd writes the book to a timestamped CSV file.
type ExportCmd struct {
	Dir string `short:"d" help:"Output directory (overrides export.dir)." placeholder:"DIR"`
}

// Run executes the export command.
func (e *ExportCmd) Run(g *Globals, con *console) error {
	a, err := open(g, con)
	if err != nil {
		return err
	}
	defer a.close()

	exporter := a.exporter
	if e.Dir != "" {
		exporter = export.NewExporter(e.Dir, a.log)
	}
	path, err := exporter.CSV(a.book)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(con.out, a.styles.Success.Render(fmt.Sprintf("Contacts exported to '%s'", path)))
	return nil
}

// StatsCmd prints totals, per-group counts and recent updates.
type StatsCmd struct{}

// Run executes the stats command.
func (s *StatsCmd) Run(g *Globals, con *console) error {
	a, err := open(g, con)
	if err != nil {
		return err
	}
	defer a.close()

	shell.RenderStats(con.out, a.styles, a.book.Statistics(), a.book.Recent())
	return nil
}

// BrowseCmd opens the interactive contact table. Without a terminal, or with
// plain output, it prints the list instead.
type BrowseCmd struct{}

// Run executes the browse command.
func (b *BrowseCmd) Run(g *Globals, con *console) error {
	a, err := open(g, con)
	if err != nil {
		return err
	}
	defer a.close()

	if plainOutput(a.cfg, con.out) {
		shell.RenderAll(con.out, a.styles, a.book.List())
		return nil
	}
	return dashboard.Run(con.ctx, a.book, a.store, con.in, con.out)
}

// InitCmd writes the annotated default config.
type InitCmd struct {
	Path  string `arg:"" optional:"" default:".rolodex/config.yaml" help:"Where to write the config file."`
	Force bool   `short:"f" help:"Overwrite an existing file."`
}

// Run executes the init command.
func (i *InitCmd) Run(con *console) error {
	if _, err := os.Stat(i.Path); err == nil && !i.Force {
		return fmt.Errorf("%w: %s", errConfigExists, i.Path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("init: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(i.Path), 0o755); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if err := os.WriteFile(i.Path, rolodex.DefaultConfig(), 0o644); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	_, _ = fmt.Fprintf(con.out, "Wrote default config to %s\n", i.Path)
	return nil
}
