package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dayone/internal/cli"
	"github.com/julianstephens/dayone/internal/logger"
	"github.com/julianstephens/dayone/internal/models"
	"github.com/julianstephens/dayone/internal/progression"
	"github.com/julianstephens/dayone/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	var (
		p   *tea.Program
		eng *progression.Engine
	)
	send := func(msg tea.Msg) { p.Send(msg) }
	hooks := cli.MergeHooks(
		tui.EngineHooks(send),
		ctx.NotifyHooks(func() models.UserProfile { return eng.Snapshot().User }),
	)

	eng, err := ctx.OpenEngine(ctx.Settings.Delay, hooks)
	if err != nil {
		return err
	}
	defer eng.Close()

	p = tea.NewProgram(tui.NewModel(eng, send), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("TUI exited with error", "error", err)
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}
