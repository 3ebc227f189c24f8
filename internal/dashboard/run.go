package dashboard

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/rolodex/internal/book"
)

// IsTTY reports whether w is connected to a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Run shows the browser until the user quits or ctx is cancelled, then saves
// b once more so a delete whose background save was still pending is kept.
// Cancellation is a normal exit.
func Run(ctx context.Context, b *book.Book, saver Saver, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(NewModel(b, saver),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	_, runErr := p.Run()
	if ctx.Err() != nil {
		runErr = nil
	}
	if err := saver.Save(b); err != nil {
		return err
	}
	return runErr
}
