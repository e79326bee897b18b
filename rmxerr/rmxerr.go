// Package rmxerr carries errors through the bubbletea update loop.
package rmxerr

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

type (
	ErrMsg struct {
		Err error
	}
)

func (m ErrMsg) Error() string {
	return m.Err.Error()
}

func (m ErrMsg) Unwrap() error {
	return m.Err
}

// Cmd reports err, prefixed with op, as an ErrMsg.
func Cmd(op string, err error) tea.Cmd {
	return func() tea.Msg {
		return ErrMsg{Err: fmt.Errorf("%s: %w", op, err)}
	}
}
