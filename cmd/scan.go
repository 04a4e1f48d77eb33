package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/mira/internal/application"
	"github.com/bnema/mira/internal/domain"
	"github.com/spf13/cobra"
)

func newScanCmd(app *app) *cobra.Command {
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan garments in front of the camera into the wardrobe",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if duration < 0 {
				return errors.New("duration must not be negative")
			}

			ctx := cmd.Context()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			rig, err := app.newCameraRig(ctx)
			if err != nil {
				return err
			}
			defer app.closeCameraRig(rig)

			out := cmd.OutOrStdout()
			saved := 0
			rig.listen(application.ItemSavedFunc(func(_ context.Context, item domain.Item) error {
				saved++
				_, err := fmt.Fprintf(out, "saved %s\n", item.Describe())
				return err
			}))

			if err := rig.run(ctx); err != nil {
				return err
			}

			_, err = fmt.Fprintf(out, "items saved: %d\n", saved)
			return err
		},
	}

	cmd.Flags().DurationVar(&duration, "duration", 0, "Stop after this long (0 runs until interrupted)")

	return cmd
}
