package model

import "errors"

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrUserNotFound    = errors.New("user not found")
	ErrUserRepeat      = errors.New("user repeat")
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrTitleRepeat     = errors.New("title repeat")
	ErrTimeConflict    = errors.New("time conflict")
	ErrEmptyDeletion   = errors.New("empty deletion")
	ErrInvalidArgument = errors.New("invalid argument")
)

var kinds = []struct {
	err   error
	title string
}{
	{ErrInvalidDate, "Invalid Date"},
	{ErrUserNotFound, "User Not Found"},
	{ErrUserRepeat, "User Repeat"},
	{ErrMeetingNotFound, "Meeting Not Found"},
	{ErrTitleRepeat, "Title Repeat"},
	{ErrTimeConflict, "Time Conflict"},
	{ErrEmptyDeletion, "Empty Deletion"},
	{ErrInvalidArgument, "Invalid Argument"},
}

// Kind returns the display title of a domain error, or "" for anything else.
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.title
		}
	}
	return ""
}
