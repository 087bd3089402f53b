package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/MKhiriev/notes-keeper/internal/adapter"
	"github.com/MKhiriev/notes-keeper/internal/config"
	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/internal/service"
	"github.com/MKhiriev/notes-keeper/models"
)

var (
	errUnknownCommand = errors.New("unknown command")
	errMissingNoteID  = errors.New("-id must be a positive note id")
	errMissingUserID  = errors.New("-user must be a positive user id")
)

const usage = `usage: notes-client [-address host:port] [-token jwt] <command> [flags]

commands:
  token   -user ID                          mint a development token
  list    [-page N] [-limit N]              list your notes
  create  -title T [-description D]         create a note
  show    -id ID                            show a note
  star    -id ID                            toggle the starred flag
  update  -id ID [-title T] [-description D] [-starred true|false]
  delete  -id ID                            delete a note
  version                                   print client and server versions
  health                                    check the server
`

type cli struct {
	cfg       *config.ClientConfig
	buildInfo models.AppBuildInfo

	stdout io.Writer
	stderr io.Writer

	logger *logger.Logger
}

type command func(ctx context.Context, notes adapter.NotesAdapter, args []string) error

func (c *cli) run(ctx context.Context, args []string) error {
	global := flag.NewFlagSet("notes-client", flag.ContinueOnError)
	global.SetOutput(c.stderr)
	global.Usage = func() { _, _ = fmt.Fprint(c.stderr, usage) }
	global.StringVar(&c.cfg.Adapter.HTTPAddress, "address", c.cfg.Adapter.HTTPAddress, "notes API address")
	global.StringVar(&c.cfg.Adapter.Token, "token", c.cfg.Adapter.Token, "bearer token")

	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		global.Usage()
		return flag.ErrHelp
	}

	name, rest := global.Arg(0), global.Args()[1:]

	// token is minted locally and needs no API connection
	if name == "token" {
		return c.token(ctx, rest)
	}

	commands := map[string]command{
		"list":    c.list,
		"create":  c.create,
		"show":    c.show,
		"star":    c.star,
		"update":  c.update,
		"delete":  c.delete,
		"version": c.version,
		"health":  c.health,
	}

	cmd, ok := commands[name]
	if !ok {
		global.Usage()
		return fmt.Errorf("%w: %q", errUnknownCommand, name)
	}

	notes, err := adapter.NewHTTPNotesAdapter(c.cfg.Adapter, c.logger)
	if err != nil {
		return err
	}

	return cmd(ctx, notes, rest)
}

func (c *cli) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

func (c *cli) token(ctx context.Context, args []string) error {
	fs := c.flagSet("token")
	userID := fs.Int64("user", 0, "user id put into the token subject")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *userID <= 0 {
		return errMissingUserID
	}

	identity := service.NewIdentityService(config.App{
		TokenSignKey:  c.cfg.App.TokenSignKey,
		TokenIssuer:   c.cfg.App.TokenIssuer,
		TokenDuration: c.cfg.App.TokenDuration,
	}, c.logger)

	token, err := identity.CreateToken(ctx, *userID)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.stdout, token.SignedString)
	return err
}

func (c *cli) list(ctx context.Context, notes adapter.NotesAdapter, args []string) error {
	fs := c.flagSet("list")
	page := fs.Int("page", 0, "page number, 1-based")
	limit := fs.Int("limit", 0, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := notes.ListNotes(ctx, models.ListNotesRequest{Page: *page, Limit: *limit})
	if err != nil {
		return err
	}

	return c.print(resp)
}

func (c *cli) create(ctx context.Context, notes adapter.NotesAdapter, args []string) error {
	fs := c.flagSet("create")
	title := fs.String("title", "", "note title")
	description := fs.String("description", "", "note description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	note, err := notes.CreateNote(ctx, models.NoteForm{Title: *title, Description: *description})
	if err != nil {
		return err
	}

	return c.print(note)
}

func (c *cli) show(ctx context.Context, notes adapter.NotesAdapter, args []string) error {
	noteID, err := c.parseNoteID("show", args)
	if err != nil {
		return err
	}

	note, err := notes.GetNote(ctx, noteID)
	if err != nil {
		return err
	}

	return c.print(note)
}

func (c *cli) star(ctx context.Context, notes adapter.NotesAdapter, args []string) error {
	noteID, err := c.parseNoteID("star", args)
	if err != nil {
		return err
	}

	note, err := notes.ToggleStar(ctx, noteID)
	if err != nil {
		return err
	}

	return c.print(note)
}

func (c *cli) update(ctx context.Context, notes adapter.NotesAdapter, args []string) error {
	fs := c.flagSet("update")
	noteID := fs.Int64("id", 0, "note id")
	var update models.NoteUpdate
	fs.Func("title", "new title", func(v string) error {
		update.Title = &v
		return nil
	})
	fs.Func("description", "new description", func(v string) error {
		update.Description = &v
		return nil
	})
	fs.Func("starred", "new starred flag", func(v string) error {
		starred, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		update.IsStarred = &starred
		return nil
	})
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *noteID <= 0 {
		return errMissingNoteID
	}

	note, err := notes.UpdateNote(ctx, *noteID, update)
	if err != nil {
		return err
	}

	return c.print(note)
}

func (c *cli) delete(ctx context.Context, notes adapter.NotesAdapter, args []string) error {
	noteID, err := c.parseNoteID("delete", args)
	if err != nil {
		return err
	}

	deleted, err := notes.DeleteNote(ctx, noteID)
	if err != nil {
		return err
	}

	return c.print(models.DeleteResult{Success: true, Deleted: deleted})
}

func (c *cli) version(ctx context.Context, notes adapter.NotesAdapter, _ []string) error {
	c.buildInfo.Print(c.stdout)

	serverVersion, err := notes.Version(ctx)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(c.stdout, "Server version: %s\n", serverVersion)
	return err
}

func (c *cli) health(ctx context.Context, notes adapter.NotesAdapter, _ []string) error {
	if err := notes.Health(ctx); err != nil {
		return err
	}

	_, err := fmt.Fprintln(c.stdout, "ok")
	return err
}

func (c *cli) parseNoteID(name string, args []string) (int64, error) {
	fs := c.flagSet(name)
	noteID := fs.Int64("id", 0, "note id")
	if err := fs.Parse(args); err != nil {
		return 0, err
	}
	if *noteID <= 0 {
		return 0, errMissingNoteID
	}

	return *noteID, nil
}

func (c *cli) print(v any) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
