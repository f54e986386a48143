package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mixsplit/internal/logging"
	"mixsplit/internal/split"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var showTracks bool

	cmd := &cobra.Command{
		Use:   "inspect [DIR...]",
		Short: "Show the recordings and tracks found in directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs := args
			if len(dirs) == 0 {
				dirs = []string{"."}
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			paths, err := split.Discover(dirs)
			if err != nil {
				return err
			}
			recordings, err := split.Load(paths)
			if err != nil {
				return err
			}
			logger.Debug("inspected recordings", logging.Int("count", len(recordings)))

			out := cmd.OutOrStdout()
			if len(recordings) == 0 {
				fmt.Fprintln(out, "No recordings found")
				return nil
			}
			fmt.Fprintln(out, recordingTable(recordings))
			if showTracks {
				for _, rec := range recordings {
					fmt.Fprintln(out)
					fmt.Fprintln(out, trackTable(rec))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showTracks, "tracks", false, "Also list the track mapping of every recording")
	return cmd
}
