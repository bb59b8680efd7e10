package cli

import (
	"github.com/spf13/cobra"
)

func newOrderCmd(app *App) *cobra.Command {
	var moves []string

	cmd := &cobra.Command{
		Use:   "order <paths...>",
		Short: "Show the merge order of a batch of files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := loadSet(cmd, app, args, moves)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, set.Order())
		},
	}

	cmd.Flags().StringArrayVar(&moves, "move", nil, "Move a file one step: name:up or name:down (repeatable, applied in order)")
	return cmd
}
