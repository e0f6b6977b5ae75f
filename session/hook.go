package session

import (
	"context"
	"os"
	"os/exec"
	"strconv"

	"github.com/kballard/go-shellquote"

	"github.com/ayoisaiah/cogload/internal/models"
)

// RunHook runs the configured post-session command with the session
// details in its environment. An empty command does nothing.
func RunHook(ctx context.Context, command string, s *models.Session) error {
	cmdSlice, err := shellquote.Split(command)
	if err != nil {
		return errHookParse.Wrap(err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	var actual string
	if s.ActualCost != nil {
		actual = strconv.FormatFloat(*s.ActualCost, 'f', -1, 64)
	}

	cmd := exec.CommandContext(ctx, cmdSlice[0], cmdSlice[1:]...)
	cmd.Env = append(
		os.Environ(),
		"COGLOAD_SESSION_ID="+s.ID,
		"COGLOAD_EVENT_ID="+s.EventID,
		"COGLOAD_ACTUAL_COST="+actual,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}
