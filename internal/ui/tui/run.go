package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alivecomputer/setup/internal/provisioning"
)

// RunBuild shows the progress view while run builds the World into world.
// run receives a context and the observer that feeds the view. Quitting the
// view cancels that context, so the remaining steps end as commands to
// paste; RunBuild always waits for the result.
func RunBuild(
	ctx context.Context,
	world string,
	inner provisioning.Observer,
	run func(context.Context, provisioning.Observer) *provisioning.Result,
	opts ...tea.ProgramOption,
) (*provisioning.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewBuildModel(world).WithCancel(cancel), opts...)

	results := make(chan *provisioning.Result, 1)
	go func() {
		result := run(ctx, NewObserver(p, inner))
		results <- result
		p.Send(DoneMsg{Result: result})
	}()

	_, err := p.Run()
	result := <-results
	if err != nil {
		return result, fmt.Errorf("TUI error: %w", err)
	}
	return result, nil
}
