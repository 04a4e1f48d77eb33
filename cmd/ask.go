package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask MiraAI one styling question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				return errors.New("question is empty")
			}

			composer, err := app.newComposer(cmd.Context(), nil)
			if err != nil {
				return err
			}

			reply, err := runAskSpinner(cmd.Context(), cmd.ErrOrStderr(), func(ctx context.Context) (string, error) {
				return composer.Respond(ctx, question), nil
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), reply)
			return err
		},
	}
}
