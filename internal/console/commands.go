package console

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"agenda/internal/auth"
	"agenda/internal/calendar"
	"agenda/internal/date"
	"agenda/internal/model"
)

const dateHint = "(yyyy-mm-dd/hh:mm)"

func (c *Console) logIn(ctx context.Context) error {
	const prompt = "log in"
	fmt.Fprintln(c.out)
	c.format(prompt, "username", "password")
	a, err := c.args(ctx, prompt, 2)
	if err != nil {
		return err
	}
	name, password := a[0], a[1]

	if !c.limiter.Allow(name) {
		c.log.Warnw("login throttled", "user", name)
		c.tag(prompt)
		fmt.Fprint(c.out, "too many login attempts\n\n")
		return nil
	}
	if err := c.svc.UserLogIn(name, password); err != nil {
		return err
	}
	c.limiter.Reset(name)
	c.start(name, password)
	c.succeed(prompt)
	c.manual()
	return nil
}

func (c *Console) register(ctx context.Context) error {
	const prompt = "register"
	fmt.Fprintln(c.out)
	c.format(prompt, "username", "password", "email", "phone")
	a, err := c.args(ctx, prompt, 4)
	if err != nil {
		return err
	}
	if err := c.svc.UserRegister(a[0], a[1], a[2], a[3]); err != nil {
		return err
	}
	c.start(a[0], a[1])
	c.succeed(prompt)
	c.manual()
	return nil
}

func (c *Console) start(name, password string) {
	c.session = auth.NewSession(name, password)
	c.log = c.base.With("session", c.session.ID, "user", name)
	c.log.Infow("session started")
}

func (c *Console) end() {
	c.log.Infow("session ended", "duration", time.Since(c.session.Started).String())
	c.session = nil
	c.log = c.base
}

func (c *Console) logOut(context.Context) error {
	c.end()
	fmt.Fprintln(c.out)
	c.manual()
	return nil
}

func (c *Console) deleteAccount(context.Context) error {
	if err := c.svc.DeleteUser(c.session.UserName, c.session.Password); err != nil {
		return err
	}
	c.end()
	fmt.Fprintln(c.out)
	c.succeed("delete agenda account")
	return nil
}

func (c *Console) listUsers(context.Context) error {
	fmt.Fprintln(c.out)
	c.tag("list all users")
	fmt.Fprint(c.out, "\n\n")

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "name\temail\tphone")
	for _, u := range c.svc.ListAllUsers() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", u.Name, u.Email, u.Phone)
	}
	tw.Flush()
	fmt.Fprintln(c.out)
	return nil
}

func (c *Console) createMeeting(ctx context.Context) error {
	const prompt = "create meeting"
	fmt.Fprintln(c.out)
	c.format(prompt, "the number of participators")
	c.tag(prompt)
	line, err := c.readLine(ctx)
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(line)
	switch {
	case err != nil || n < 0:
		c.tag(prompt)
		fmt.Fprint(c.out, "the number of participators must be an integer!\n\n")
		return nil
	case n == 0:
		c.tag(prompt)
		fmt.Fprint(c.out, "the number of participators can't be zero!\n\n")
		return nil
	}

	participants := make([]string, 0, n)
	for len(participants) < n {
		c.format(prompt, "please enter the participator "+strconv.Itoa(len(participants)+1))
		c.tag(prompt)
		p, err := c.readLine(ctx)
		if err != nil {
			return err
		}
		if p != "" {
			participants = append(participants, p)
		}
	}

	c.format(prompt, "title", "start time"+dateHint, "end time"+dateHint)
	a, err := c.args(ctx, prompt, 3)
	if err != nil {
		return err
	}
	if err := c.svc.CreateMeeting(c.session.UserName, a[0], a[1], a[2], participants); err != nil {
		return err
	}
	c.succeed(prompt)
	return nil
}

func (c *Console) addParticipator(ctx context.Context) error {
	const prompt = "add participator"
	fmt.Fprintln(c.out)
	c.format(prompt, "meeting title", "participator username")
	a, err := c.args(ctx, prompt, 2)
	if err != nil {
		return err
	}
	if err := c.svc.AddMeetingParticipator(c.session.UserName, a[0], a[1]); err != nil {
		return err
	}
	c.succeed(prompt)
	return nil
}

func (c *Console) removeParticipator(ctx context.Context) error {
	const prompt = "remove participator"
	fmt.Fprintln(c.out)
	c.format(prompt, "meeting title", "participator username")
	a, err := c.args(ctx, prompt, 2)
	if err != nil {
		return err
	}
	if err := c.svc.RemoveMeetingParticipator(c.session.UserName, a[0], a[1]); err != nil {
		return err
	}
	c.succeed(prompt)
	return nil
}

func (c *Console) quitMeeting(ctx context.Context) error {
	const prompt = "quit meeting"
	fmt.Fprintln(c.out)
	c.format(prompt, "meeting title")
	a, err := c.args(ctx, prompt, 1)
	if err != nil {
		return err
	}
	if err := c.svc.QuitMeeting(c.session.UserName, a[0]); err != nil {
		return err
	}
	c.succeed(prompt)
	return nil
}

func (c *Console) listAll(context.Context) error {
	c.list("list all meetings", c.svc.ListAllMeetings(c.session.UserName))
	return nil
}

func (c *Console) listSponsored(context.Context) error {
	c.list("list all sponsor meetings", c.svc.ListAllSponsorMeetings(c.session.UserName))
	return nil
}

func (c *Console) listParticipated(context.Context) error {
	c.list("list all participator meetings", c.svc.ListAllParticipateMeetings(c.session.UserName))
	return nil
}

func (c *Console) queryByTitle(ctx context.Context) error {
	const prompt = "query meeting"
	fmt.Fprintln(c.out)
	c.format(prompt, "title")
	a, err := c.args(ctx, prompt, 1)
	if err != nil {
		return err
	}
	c.list(prompt, c.svc.MeetingsByTitle(c.session.UserName, a[0]))
	return nil
}

func (c *Console) queryByTime(ctx context.Context) error {
	const prompt = "query meetings"
	fmt.Fprintln(c.out)
	c.format(prompt, "start time"+dateHint, "end time"+dateHint)
	a, err := c.args(ctx, prompt, 2)
	if err != nil {
		return err
	}
	ms, err := c.svc.MeetingsBetween(c.session.UserName, a[0], a[1])
	if err != nil {
		return err
	}
	c.list(prompt, ms)
	return nil
}

func (c *Console) deleteMeeting(ctx context.Context) error {
	const prompt = "delete meeting"
	fmt.Fprintln(c.out)
	c.format(prompt, "title")
	a, err := c.args(ctx, prompt, 1)
	if err != nil {
		return err
	}
	if err := c.svc.DeleteMeeting(c.session.UserName, a[0]); err != nil {
		return err
	}
	c.succeed(prompt)
	return nil
}

func (c *Console) deleteAllMeetings(context.Context) error {
	fmt.Fprintln(c.out)
	n, err := c.svc.DeleteAllMeetings(c.session.UserName)
	if err != nil {
		return err
	}
	c.tag("delete all meetings")
	fmt.Fprintf(c.out, "%d deleted, succeed!\n\n", n)
	return nil
}

func (c *Console) export(ctx context.Context) error {
	const prompt = "export meetings"
	fmt.Fprintln(c.out)
	c.format(prompt, "file path(.ics)")
	a, err := c.args(ctx, prompt, 1)
	if err != nil {
		return err
	}
	path := a[0]

	ms := c.svc.ListAllMeetings(c.session.UserName)
	if len(ms) == 0 {
		c.tag(prompt)
		fmt.Fprint(c.out, "None\n\n")
		return nil
	}

	// encode fully before touching an existing file
	var buf bytes.Buffer
	if err := calendar.Export(&buf, ms, c.svc.ListAllUsers(), time.Now()); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	c.log.Infow("meetings exported", "path", path, "count", len(ms))
	c.tag(prompt)
	fmt.Fprintf(c.out, "%d meetings written to %s\n\n", len(ms), path)
	return nil
}

func (c *Console) list(title string, ms []model.Meeting) {
	fmt.Fprintln(c.out)
	c.tag(title)
	fmt.Fprint(c.out, "\n\n")
	if len(ms) == 0 {
		fmt.Fprint(c.out, "None\n\n")
		return
	}
	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "title\tsponsor\tstart time\tend time\tparticipators")
	for _, m := range ms {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", m.Title, m.Sponsor,
			date.Format(m.Start), date.Format(m.End), strings.Join(m.Participants, "&"))
	}
	tw.Flush()
	fmt.Fprintln(c.out)
}
