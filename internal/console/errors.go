package console

import (
	"errors"

	"agenda/internal/model"
)

var (
	ErrPermission     = errors.New("permission error")
	ErrUnknownCommand = errors.New("unknown command")
	ErrWrongArgNum    = errors.New("wrong argument number")
)

func kind(err error) string {
	switch {
	case errors.Is(err, ErrPermission):
		return "Permission Error"
	case errors.Is(err, ErrUnknownCommand):
		return "Unknown Command"
	case errors.Is(err, ErrWrongArgNum):
		return "Wrong Argument Number"
	}
	if k := model.Kind(err); k != "" {
		return k
	}
	return "Error"
}
