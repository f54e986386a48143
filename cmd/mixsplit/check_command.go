package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mixsplit/internal/deps"
	"mixsplit/internal/services/browser"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that the external tools are available",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			opener := browser.New(cfg.Browser.Command, nil).Command()
			statuses := deps.NewChecker().Check(cmd.Context(), deps.Tools(cfg.FFmpegBinary(), opener))

			out := cmd.OutOrStdout()
			for _, line := range renderDependencyReport(statuses, shouldColorize(out)) {
				fmt.Fprintln(out, line)
			}

			if missing := deps.Missing(statuses); len(missing) > 0 {
				return errors.New("missing required dependencies: " + strings.Join(missing, ", "))
			}
			return nil
		},
	}
}
