package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/smileynet/rolodex/internal/book"
	"github.com/smileynet/rolodex/internal/config"
	"github.com/smileynet/rolodex/internal/contact"
	"github.com/smileynet/rolodex/internal/dashboard"
	"github.com/smileynet/rolodex/internal/export"
	"github.com/smileynet/rolodex/internal/logging"
	"github.com/smileynet/rolodex/internal/shell"
	"github.com/smileynet/rolodex/internal/state"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals are flags shared by every command.
type Globals struct {
	Config   string `help:"Extra config file, applied over the user and project layers." placeholder:"PATH"`
	Store    string `help:"Contacts file (.json, or .yaml/.yml for YAML)." short:"s" placeholder:"PATH"`
	Plain    bool   `help:"Force plain text output even if stdout is a TTY."`
	LogLevel string `help:"Log level: debug, info, warn or error." placeholder:"LEVEL"`
}

// CLI is the top-level command structure for rolodex.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	Shell   ShellCmd         `cmd:"" default:"1" help:"Run the interactive menu (default)."`
	Add     AddCmd           `cmd:"" help:"Add a contact."`
	Update  UpdateCmd        `cmd:"" help:"Update fields of a contact."`
	Delete  DeleteCmd        `cmd:"" help:"Delete a contact."`
	Show    ShowCmd          `cmd:"" help:"Show one contact."`
	List    ListCmd          `cmd:"" help:"List all contacts."`
	Search  SearchCmd        `cmd:"" help:"Search contacts by name."`
	Export  ExportCmd        `cmd:"" help:"Export all contacts to a CSV file."`
	Stats   StatsCmd         `cmd:"" help:"Show contact statistics."`
	Browse  BrowseCmd        `cmd:"" help:"Browse contacts in an interactive table."`
	Init    InitCmd          `cmd:"" help:"Write an annotated default config file."`
}

// console carries the process context and standard streams to commands.
type console struct {
	ctx    context.Context
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// app is everything a command needs once config and the book are loaded.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	store    *state.FileStore
	book     *book.Book
	loaded   bool
	exporter *export.Exporter
	styles   shell.Styles
}

// loadConfig loads layered config from user and project paths, the --config
// file, env overrides, and finally the global flags.
func loadConfig(g *Globals) (*config.Config, error) {
	paths := []string{
		os.ExpandEnv("$HOME/.config/rolodex/config.yaml"),
		".rolodex/config.yaml",
	}
	if g.Config != "" {
		if _, err := os.Stat(g.Config); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		paths = append(paths, g.Config)
	}
	cfg, err := config.LoadLayered(paths...)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	// Apply CLI flag overrides.
	if g.Store != "" {
		cfg.Store.Path = g.Store
	}
	if g.Plain {
		cfg.UI.Plain = true
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// open builds the logger, store and exporter and loads the book. An unreadable
// store file is reported on errOut and the book starts empty.
func open(g *Globals, con *console) (*app, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)
	if err != nil {
		return nil, err
	}

	store := state.NewFileStore(cfg.Store.Path, log)
	window := time.Duration(cfg.Stats.RecentDays) * 24 * time.Hour
	b, loaded, err := store.Load(book.WithRecentWindow(window))
	if err != nil {
		_, _ = fmt.Fprintf(con.errOut, "warning: could not read %s: %v\nStarting with an empty address book.\n", store.Path(), err)
	}

	return &app{
		cfg:      cfg,
		log:      log,
		store:    store,
		book:     b,
		loaded:   loaded,
		exporter: export.NewExporter(cfg.Export.Dir, log),
		styles:   shell.NewStyles(con.out, plainOutput(cfg, con.out)),
	}, nil
}

func (a *app) close() {
	_ = a.log.Sync()
}

// save persists the book after a one-shot change.
func (a *app) save() error {
	return a.store.Save(a.book)
}

func plainOutput(cfg *config.Config, w io.Writer) bool {
	return cfg.UI.Plain || !dashboard.IsTTY(w)
}

// errAborted means the user declined a confirmation.
var errAborted = errors.New("aborted")

// errNothingToChange means update was run without any field flag.
var errNothingToChange = errors.New("update: nothing to change (use --phone, --email, --address or --group)")

// errConfigExists means init would overwrite an existing file.
var errConfigExists = errors.New("init: config file already exists (use --force to overwrite)")

// Exit codes.
const (
	exitSuccess = 0
	exitRefused = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	// Refused operations: the request was understood but not carried out.
	for _, target := range []error{
		book.ErrNotFound,
		book.ErrDuplicateName,
		contact.ErrInvalid,
		export.ErrNothingToExport,
		errAborted,
		errNothingToChange,
		errConfigExists,
	} {
		if errors.Is(err, target) {
			return exitRefused
		}
	}
	return exitSetup
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("rolodex"),
		kong.Description("A local contact address book."),
		kong.UsageOnError(),
		kong.Vars{"version": version + " " + commit + " " + date},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	con := &console{ctx: ctx, in: os.Stdin, out: os.Stdout, errOut: os.Stderr}
	err := kctx.Run(&cli.Globals, con)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
