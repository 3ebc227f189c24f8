// Package shell runs the numbered-menu interactive session over an address book.
//
// The shell reads one line per prompt. Input is consumed on a separate
// goroutine so an interrupt can end the session while a prompt is waiting.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/smileynet/rolodex/internal/book"
)

// Saver persists the whole book.
type Saver interface {
	Save(b *book.Book) error
}

// Exporter writes the book to a CSV file and returns its path.
type Exporter interface {
	CSV(b *book.Book) (string, error)
}

var errInterrupted = errors.New("shell: interrupted")

// Shell is one interactive session. Create it with New.
type Shell struct {
	book     *book.Book
	saver    Saver
	exporter Exporter

	in     io.Reader
	out    io.Writer
	styles Styles
	log    *zap.Logger

	lines <-chan string
}

// Option configures a Shell.
type Option func(*Shell)

// WithInput sets where answers are read from. Defaults to os.Stdin.
func WithInput(r io.Reader) Option {
	return func(s *Shell) { s.in = r }
}

// WithOutput sets where prompts and results are written. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Shell) { s.out = w }
}

// WithStyles overrides the output styles. Defaults to PlainStyles.
func WithStyles(st Styles) Option {
	return func(s *Shell) { s.styles = st }
}

// WithLogger sets the logger for recovered failures and save errors.
func WithLogger(log *zap.Logger) Option {
	return func(s *Shell) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a Shell over b. Every change is persisted through saver.
func New(b *book.Book, saver Saver, exporter Exporter, opts ...Option) *Shell {
	s := &Shell{
		book:     b,
		saver:    saver,
		exporter: exporter,
		in:       os.Stdin,
		out:      os.Stdout,
		styles:   PlainStyles(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run shows the menu until the user chooses Save & Exit, input ends, or ctx is
// cancelled. Ending by interrupt or end of input still saves the book; both
// count as a normal exit and return nil.
func (s *Shell) Run(ctx context.Context) error {
	readCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.lines = readLines(readCtx, s.in)
	Banner(s.out, s.styles, "WELCOME TO CONTACT MANAGEMENT SYSTEM")

	for {
		s.menu()
		choice, err := s.ask(ctx, "Enter your choice (1-8): ")
		if err != nil {
			return s.stop(err)
		}
		exit, err := s.dispatch(ctx, choice)
		if err != nil {
			return s.stop(err)
		}
		if exit {
			return nil
		}
	}
}

func (s *Shell) menu() {
	Banner(s.out, s.styles, "CONTACT MANAGEMENT SYSTEM")
	for _, item := range []string{
		"1. Add New Contact",
		"2. Search Contact",
		"3. Update Contact",
		"4. Delete Contact",
		"5. View All Contacts",
		"6. Export to CSV",
		"7. View Statistics",
		"8. Save & Exit",
	} {
		s.printf("%s\n", item)
	}
	s.printf("%s\n", strings.Repeat("-", ruleWidth))
}

// dispatch runs one menu choice. A panicking action is reported and the
// session carries on.
func (s *Shell) dispatch(ctx context.Context, choice string) (exit bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("menu action failed",
				zap.String("choice", choice),
				zap.Any("panic", r),
				zap.StackSkip("stack", 2),
			)
			s.fail("An error occurred: %v", r)
			exit, err = false, nil
		}
	}()

	var changed bool
	switch choice {
	case "1":
		changed, err = s.addContact(ctx)
	case "2":
		err = s.searchContacts(ctx)
	case "3":
		changed, err = s.updateContact(ctx, "")
	case "4":
		changed, err = s.deleteContact(ctx)
	case "5":
		RenderAll(s.out, s.styles, s.book.List())
	case "6":
		s.exportCSV()
	case "7":
		RenderStats(s.out, s.styles, s.book.Statistics(), s.book.Recent())
	case "8":
		if s.save() {
			s.ok("Contacts saved successfully!")
		}
		Banner(s.out, s.styles, "Thank you for using Contact Management System!")
		return true, nil
	default:
		s.fail("Invalid choice! Please enter 1-8.")
	}
	if changed {
		s.save()
	}
	return false, err
}

// stop finishes a session that ended without Save & Exit.
func (s *Shell) stop(err error) error {
	switch {
	case errors.Is(err, errInterrupted):
		s.warn("\nProgram interrupted. Saving contacts...")
		s.save()
		s.printf("Goodbye!\n")
		return nil
	case errors.Is(err, io.EOF):
		s.warn("\nEnd of input. Saving contacts...")
		s.save()
		return nil
	default:
		return err
	}
}

func (s *Shell) save() bool {
	if err := s.saver.Save(s.book); err != nil {
		s.log.Error("save failed", zap.Error(err))
		s.fail("Error saving contacts: %v", err)
		return false
	}
	return true
}

// ask prints prompt and waits for one trimmed line of input.
func (s *Shell) ask(ctx context.Context, prompt string) (string, error) {
	s.printf("%s", prompt)
	if ctx.Err() != nil {
		return "", errInterrupted
	}
	select {
	case <-ctx.Done():
		return "", errInterrupted
	case line, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

// confirm asks a yes/no question; only "y" or "yes" count as yes.
func (s *Shell) confirm(ctx context.Context, prompt string) (bool, error) {
	answer, err := s.ask(ctx, prompt)
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

// readLines sends each line of r until r ends or ctx is done.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case ch <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

func (s *Shell) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func (s *Shell) ok(format string, args ...any) {
	s.printf("%s\n", s.styles.Success.Render(fmt.Sprintf(format, args...)))
}

func (s *Shell) warn(format string, args ...any) {
	s.printf("%s\n", s.styles.Warning.Render(fmt.Sprintf(format, args...)))
}

func (s *Shell) fail(format string, args ...any) {
	s.printf("%s\n", s.styles.Error.Render(fmt.Sprintf(format, args...)))
}
