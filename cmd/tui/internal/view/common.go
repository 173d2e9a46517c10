package view

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const opTimeout = 5 * time.Second

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// OpCtx returns a context with the standard timeout for service calls.
func OpCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}
