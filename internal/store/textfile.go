package store

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"agenda/internal/date"
	"agenda/internal/model"
)

var ErrMalformed = errors.New("malformed record")

var (
	userLine    = regexp.MustCompile(`^"(.+)","(.+)","(.+)","(.+)"$`)
	meetingLine = regexp.MustCompile(`^"(.+)","(.*)","(.+)","(.+)","(.+)"$`)
)

// TextFile persists users and meetings as quoted, comma separated lines.
// Fields are not escaped, so '"' in any field or '&' in a user name breaks the format.
type TextFile struct {
	UsersPath    string
	MeetingsPath string
}

func NewTextFile(dir, usersFile, meetingsFile string) *TextFile {
	return &TextFile{
		UsersPath:    filepath.Join(dir, usersFile),
		MeetingsPath: filepath.Join(dir, meetingsFile),
	}
}

func (f *TextFile) Load(_ context.Context) ([]model.User, []model.Meeting, error) {
	var users []model.User
	err := scanLines(f.UsersPath, func(n int, line string) error {
		m := userLine.FindStringSubmatch(line)
		if m == nil {
			return fmt.Errorf("%w: %s:%d", ErrMalformed, f.UsersPath, n)
		}
		users = append(users, model.User{Name: m[1], Password: m[2], Email: m[3], Phone: m[4]})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	var meetings []model.Meeting
	err = scanLines(f.MeetingsPath, func(n int, line string) error {
		m := meetingLine.FindStringSubmatch(line)
		if m == nil {
			return fmt.Errorf("%w: %s:%d", ErrMalformed, f.MeetingsPath, n)
		}
		start, err := date.Parse(m[3])
		if err != nil {
			return fmt.Errorf("%w: %s:%d: %v", ErrMalformed, f.MeetingsPath, n, err)
		}
		end, err := date.Parse(m[4])
		if err != nil {
			return fmt.Errorf("%w: %s:%d: %v", ErrMalformed, f.MeetingsPath, n, err)
		}
		meetings = append(meetings, model.Meeting{
			Sponsor:      m[1],
			Participants: splitParticipants(m[2]),
			Start:        start,
			End:          end,
			Title:        m[5],
		})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return users, meetings, nil
}

func (f *TextFile) Save(_ context.Context, users []model.User, meetings []model.Meeting) error {
	err := writeLines(f.UsersPath, len(users), func(i int) string {
		u := users[i]
		return quote(u.Name, u.Password, u.Email, u.Phone)
	})
	if err != nil {
		return err
	}
	return writeLines(f.MeetingsPath, len(meetings), func(i int) string {
		m := meetings[i]
		return quote(m.Sponsor, strings.Join(m.Participants, "&"),
			date.Format(m.Start), date.Format(m.End), m.Title)
	})
}

func splitParticipants(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "&")
}

func quote(fields ...string) string {
	return `"` + strings.Join(fields, `","`) + `"`
}

// missing file = empty table
func scanLines(path string, fn func(n int, line string) error) error {
	fh, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer fh.Close()

	sc := bufio.NewScanner(fh)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == "" {
			continue
		}
		if err := fn(n, line); err != nil {
			return err
		}
	}
	return sc.Err()
}

// write to a sibling temp file, then rename over the target
func writeLines(path string, count int, line func(i int) string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for i := 0; i < count; i++ {
		if _, err := w.WriteString(line(i) + "\n"); err != nil {
			tmp.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
