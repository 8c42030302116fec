package state

import (
	"strings"
)

type CommandType string

const (
	CmdPace   CommandType = "/pace"
	CmdStatus CommandType = "/status"
	CmdNone   CommandType = "" // Not a recognized command
)

// Command is a parsed slash-command.
type Command struct {
	Type CommandType
	Name string   // lower-cased leading token as typed, e.g. "/quit"
	Args []string // remaining lower-cased tokens
}

// Arg returns the i-th argument or "" if there is none.
func (c Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// ParseCommand splits raw input into a command name and arguments.
// Input is trimmed and lower-cased; unrecognized names yield CmdNone.
func ParseCommand(input string) Command {
	fields := strings.Fields(lower(input))
	if len(fields) == 0 {
		return Command{Type: CmdNone}
	}

	known := map[string]CommandType{
		"/pace":   CmdPace,
		"/status": CmdStatus,
	}

	cmd := Command{Name: fields[0], Args: fields[1:]}
	if t, ok := known[fields[0]]; ok {
		cmd.Type = t
	}
	return cmd
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
