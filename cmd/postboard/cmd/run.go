package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/go-drift/postboard/pkg/core"
	"github.com/go-drift/postboard/pkg/engine"
	"github.com/go-drift/postboard/pkg/log"
	"github.com/go-drift/postboard/pkg/networking"
	"github.com/go-drift/postboard/pkg/posts"
)

type runFlags struct {
	Dir       string        `arg:"--dir" help:"directory holding postboard.yaml (default: project root)"`
	BaseURL   string        `arg:"--base-url" help:"posts API base URL (default from config)"`
	Timeout   time.Duration `arg:"--timeout" help:"per-request timeout (default from config)"`
	Width     int           `arg:"--width" help:"frame width in columns"`
	NoColor   bool          `arg:"--no-color" help:"disable ANSI colour"`
	NoClear   bool          `arg:"--no-clear" help:"append frames instead of redrawing the screen"`
	DebugAddr string        `arg:"--debug-addr" help:"serve the widget tree and frame trace on this address"`
}

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Run the post board",
		Long: `Run the post board against a posts API.

The form and the post list are drawn as a terminal frame that is redrawn
whenever state changes. Drive it by typing commands on stdin:

  title <text>   set the title field
  body <text>    set the body field
  add            submit the draft
  refresh        reload the list with the refresh limit (retry on error)
  retry          reload the list after an error
  help           list these commands
  quit           exit`,
		Usage: "postboard run [--base-url URL] [--width N] [--no-color] [--debug-addr ADDR]",
		Flags: func() any { return &runFlags{Width: engine.DefaultColumns} },
		Run:   runRun,
	})
}

func runRun(args []string) error {
	flags := runFlags{Width: engine.DefaultColumns}
	if err := parseFlags("postboard run", &flags, args); err != nil {
		return err
	}
	cfg, err := resolveConfig(flags.Dir)
	if err != nil {
		return err
	}
	if flags.BaseURL != "" {
		cfg.BaseURL = flags.BaseURL
	}
	if flags.Timeout > 0 {
		cfg.Timeout = flags.Timeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	client, err := posts.NewClient(cfg.BaseURL,
		posts.WithTimeout(cfg.Timeout),
		posts.WithUserAgent("postboard/"+Version),
	)
	if err != nil {
		return err
	}
	log.I.F("using posts API at %s", client.BaseURL())

	eng := engine.New(networking.NetworkingApp{
		Client:       client,
		InitialLimit: cfg.InitialLimit,
		RefreshLimit: cfg.RefreshLimit,
	}, engine.Options{
		Columns:       flags.Width,
		Color:         !flags.NoColor,
		ClearScreen:   !flags.NoClear,
		Output:        stdout,
		TraceCapacity: 120,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return eng.Run(ctx) })
	g.Go(func() error { return readCommands(ctx, eng, stdin) })
	if flags.DebugAddr != "" {
		g.Go(func() error { return serveDebug(ctx, flags.DebugAddr, engine.DebugHandler(eng)) })
	}
	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

var errQuit = errors.New("quit")

// command is one parsed input line. A nil action means there is nothing to
// send to the engine.
type command struct {
	name   string
	action engine.Action
}

// parseCommand maps an input line to an engine action. It returns errQuit
// for quit and exit.
func parseCommand(line string) (command, error) {
	line = strings.TrimSpace(line)
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	switch name {
	case "":
		return command{}, nil
	case "title":
		return command{name: name, action: engine.EnterText(networking.TitleFieldID, rest)}, nil
	case "body":
		return command{name: name, action: engine.EnterText(networking.BodyFieldID, rest)}, nil
	case "add":
		return command{name: name, action: engine.TapButton(networking.AddLabel)}, nil
	case "refresh":
		return command{name: name, action: refreshOrRetry()}, nil
	case "retry":
		return command{name: name, action: engine.TapButton(networking.RetryLabel)}, nil
	case "help", "?":
		return command{name: "help"}, nil
	case "quit", "exit", "q":
		return command{}, errQuit
	}
	return command{}, fmt.Errorf("unknown command %q (type help)", name)
}

// refreshOrRetry refreshes the post list. The error view has no list to
// refresh, so there it taps Retry instead.
func refreshOrRetry() engine.Action {
	refresh := engine.Refresh()
	retry := engine.TapButton(networking.RetryLabel)
	return func(root core.Element) bool {
		return refresh(root) || retry(root)
	}
}

// readCommands feeds stdin lines to the engine until ctx ends or quit is
// typed. End of input leaves the board running until it is interrupted.
func readCommands(ctx context.Context, eng *engine.Engine, r io.Reader) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				log.D.Ln("input closed")
				<-ctx.Done()
				return nil
			}
			if err := handleLine(ctx, eng, line); err != nil {
				if errors.Is(err, errQuit) {
					return err
				}
				fmt.Fprintln(stderr, err)
			}
		}
	}
}

func handleLine(ctx context.Context, eng *engine.Engine, line string) error {
	cmd, err := parseCommand(line)
	if err != nil {
		return err
	}
	if cmd.name == "help" {
		fmt.Fprintln(stderr, "commands: title <text>, body <text>, add, refresh, retry, help, quit")
		return nil
	}
	if cmd.action == nil {
		return nil
	}
	ok, err := eng.Send(ctx, cmd.action)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: nothing to act on right now", cmd.name)
	}
	log.T.F("handled %q", line)
	return nil
}

// serveDebug serves handler on addr until ctx is cancelled.
func serveDebug(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.I.F("debug server listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return fmt.Errorf("debug server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
