// Package console is the interactive text front-end of the agenda.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"agenda/internal/auth"
	"agenda/internal/service"
	"agenda/internal/throttle"
)

// errQuit ends the loop after the q command.
var errQuit = errors.New("quit")

type state int

const (
	anyState state = iota
	loggedOut
	loggedIn
)

type command struct {
	state state
	run   func(ctx context.Context) error
}

// Console reads commands line by line and runs them against the service. It is
// not safe for concurrent use; Run owns it until it returns.
type Console struct {
	svc     *service.Service
	limiter *throttle.RateLimiter
	in      io.Reader
	out     io.Writer
	base    *zap.SugaredLogger
	log     *zap.SugaredLogger

	lines   <-chan string
	session *auth.Session
	cmds    map[string]command
}

func New(svc *service.Service, limiter *throttle.RateLimiter, in io.Reader, out io.Writer, log *zap.SugaredLogger) *Console {
	c := &Console{
		svc:     svc,
		limiter: limiter,
		in:      in,
		out:     out,
		base:    log.Named("console"),
	}
	c.log = c.base
	c.cmds = map[string]command{
		"l":   {loggedOut, c.logIn},
		"r":   {loggedOut, c.register},
		"q":   {anyState, func(context.Context) error { return errQuit }},
		"h":   {anyState, c.help},
		"o":   {loggedIn, c.logOut},
		"dc":  {loggedIn, c.deleteAccount},
		"lu":  {loggedIn, c.listUsers},
		"cm":  {loggedIn, c.createMeeting},
		"amp": {loggedIn, c.addParticipator},
		"rmp": {loggedIn, c.removeParticipator},
		"rqm": {loggedIn, c.quitMeeting},
		"la":  {loggedIn, c.listAll},
		"las": {loggedIn, c.listSponsored},
		"lap": {loggedIn, c.listParticipated},
		"qm":  {loggedIn, c.queryByTitle},
		"qt":  {loggedIn, c.queryByTime},
		"dm":  {loggedIn, c.deleteMeeting},
		"da":  {loggedIn, c.deleteAllMeetings},
		"ex":  {loggedIn, c.export},
	}
	return c
}

// Run loops until q, end of input or ctx cancellation. Domain errors are printed
// and the loop goes on; only input failures are returned.
func (c *Console) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.lines = readLines(ctx, c.in)

	c.manual()
	for {
		fmt.Fprint(c.out, c.prompt())
		line, err := c.readLine(ctx)
		if err != nil {
			return c.stop(err)
		}
		err = c.execute(ctx, strings.ToLower(line))
		switch {
		case err == nil:
		case errors.Is(err, errQuit), errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
			return c.stop(err)
		default:
			fmt.Fprintf(c.out, "\n[%s] %v\n\n", kind(err), err)
		}
	}
}

func (c *Console) stop(err error) error {
	if errors.Is(err, errQuit) || errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		c.log.Infow("console closed", "reason", err.Error())
		return nil
	}
	return err
}

func (c *Console) execute(ctx context.Context, op string) error {
	if op == "" {
		return nil
	}
	cmd, ok := c.cmds[op]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, op)
	}
	switch {
	case cmd.state == loggedIn && c.session == nil:
		return fmt.Errorf("%w: command (%s) requires a 'Log In' state", ErrPermission, op)
	case cmd.state == loggedOut && c.session != nil:
		return fmt.Errorf("%w: command (%s) requires a 'Log Out' state", ErrPermission, op)
	}
	return cmd.run(ctx)
}

func (c *Console) prompt() string {
	if c.session != nil {
		return "agenda@" + c.session.UserName + " :~# "
	}
	return "agenda :~$ "
}

// readLines feeds trimmed input lines to the loop goroutine, which is the only
// one touching the store.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case ch <- strings.TrimSpace(sc.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

func (c *Console) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

// args collects n space separated tokens, possibly over several lines.
func (c *Console) args(ctx context.Context, prompt string, n int) ([]string, error) {
	out := make([]string, 0, n)
	for len(out) < n {
		c.tag(prompt)
		line, err := c.readLine(ctx)
		if err != nil {
			return nil, err
		}
		got := strings.Fields(line)
		if left := n - len(out); len(got) > left {
			return nil, fmt.Errorf("%w: %d args left, while receive %d", ErrWrongArgNum, left, len(got))
		}
		out = append(out, got...)
	}
	return out, nil
}

func (c *Console) tag(s string) {
	fmt.Fprintf(c.out, "[%s] ", s)
}

// format prints the argument names a command expects.
func (c *Console) format(prompt string, names ...string) {
	c.tag(prompt)
	for _, n := range names {
		c.tag(n)
	}
	fmt.Fprintln(c.out)
}

func (c *Console) succeed(prompt string) {
	c.tag(prompt)
	fmt.Fprint(c.out, "succeed!\n\n")
}

func (c *Console) help(context.Context) error {
	fmt.Fprintln(c.out)
	c.manual()
	return nil
}

func (c *Console) manual() {
	fmt.Fprintln(c.out, strings.Repeat("-", 37)+"Agenda"+strings.Repeat("-", 37))
	fmt.Fprintln(c.out, "Action :")
	if c.session == nil {
		fmt.Fprint(c.out, loggedOutManual)
	} else {
		fmt.Fprint(c.out, loggedInManual)
	}
	fmt.Fprintln(c.out, strings.Repeat("-", 80))
	fmt.Fprintln(c.out)
}

const loggedOutManual = `l    - log in Agenda by user name and password
r    - register an Agenda account
q    - quit Agenda
`

const loggedInManual = `o    - log out Agenda
dc   - delete Agenda account
lu   - list all Agenda user
cm   - create a meeting
amp  - add a participator to a meeting
rmp  - remove a participator from a meeting
rqm  - quit meeting
la   - list all meetings
las  - list all sponsor meetings
lap  - list all participator meetings
qm   - query meeting by title
qt   - query meeting by time interval
dm   - delete meeting by title
da   - delete all meetings
ex   - export my meetings to an .ics file
q    - quit Agenda
`
