package cli

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newMergeCmd(app *App) *cobra.Command {
	var out string
	var moves []string

	cmd := &cobra.Command{
		Use:   "merge <paths...>",
		Short: "Print the merged text of a batch of files",
		Long: strings.TrimSpace(`
Reads every path as one batch (directories contribute their matching files),
sorts by name, applies any --move steps and writes the contents joined by a
newline. If any file cannot be read nothing is written.
`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := loadSet(cmd, app, args, moves)
			if err != nil {
				return writeErr(cmd, err)
			}
			text := set.MergedText()

			if strings.TrimSpace(out) == "" || out == "-" {
				_, err := io.WriteString(cmd.OutOrStdout(), text)
				return err
			}
			if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().StringArrayVar(&moves, "move", nil, "Move a file one step: name:up or name:down (repeatable, applied in order)")
	return cmd
}
