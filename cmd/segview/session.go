package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"segview.dev/segview/config"
	"segview.dev/segview/logging"
	"segview.dev/segview/segview"
	"segview.dev/segview/snapshot"
	"segview.dev/segview/storage/locations"
)

// session holds what a command needs: the resolved configuration, the
// snapshot location and, for most commands, the opened store.
type session struct {
	ctx     *cli.Context
	out     io.Writer
	printer *message.Printer
	colors  palette
	cfg     *config.Config
	loc     locations.Location
	store   *segview.Store
}

func withSession(action func(*session) error, openStore bool) cli.ActionFunc {
	return func(c *cli.Context) error {
		s, err := newSession(c, openStore)
		if err != nil {
			return err
		}
		return action(s)
	}
}

func newSession(c *cli.Context, openStore bool) (*session, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logging.SetLevel(level)

	loc, err := locations.New(c.Context, cfg.Snapshot, cfg.LocationOptions())
	if err != nil {
		return nil, err
	}

	s := &session{
		ctx:     c,
		out:     c.App.Writer,
		printer: message.NewPrinter(language.English),
		colors:  newPalette(c.App.Writer),
		cfg:     cfg,
		loc:     loc,
	}
	if !openStore {
		return s, nil
	}

	document := cfg.Document
	if document == "" {
		if document, err = snapshot.Latest(c.Context, loc); err != nil {
			return nil, err
		}
	}
	slog.Debug("opening snapshot", "uri", loc.URI(document))
	if s.store, err = snapshot.Open(c.Context, loc, document); err != nil {
		return nil, err
	}
	return s, nil
}

// loadConfig reads the config file, if any, and lets flags override it.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := &config.Config{}
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if c.IsSet("snapshot") {
		cfg.Snapshot = c.String("snapshot")
	}
	if c.IsSet("document") {
		cfg.Document = c.String("document")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	if err := cfg.Resolve(config.NewParams()); err != nil {
		return nil, fmt.Errorf("resolving config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

type palette struct {
	header func(format string, a ...any) string
	ok     func(format string, a ...any) string
	bad    func(format string, a ...any) string
}

// newPalette colors output only when w is a terminal.
func newPalette(w io.Writer) palette {
	plain := palette{header: fmt.Sprintf, ok: fmt.Sprintf, bad: fmt.Sprintf}
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return plain
	}

	header := color.New(color.Bold)
	good := color.New(color.FgGreen)
	bad := color.New(color.FgRed, color.Bold)
	for _, c := range []*color.Color{header, good, bad} {
		c.EnableColor()
	}
	return palette{
		header: header.SprintfFunc(),
		ok:     good.SprintfFunc(),
		bad:    bad.SprintfFunc(),
	}
}
