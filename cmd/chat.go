package cmd

import (
	"context"
	"fmt"

	"github.com/bnema/mira/internal/adapters/render/chat"
	"github.com/bnema/mira/internal/application"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const cameraOffNotice = "Camera unavailable, continuing without it."

func newChatCmd(app *app) *cobra.Command {
	var noCamera bool
	var mute bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with MiraAI while the camera watches your outfit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			rig := app.startCameraRig(ctx, cmd, noCamera)
			if rig != nil {
				defer app.closeCameraRig(rig)
			}

			composer, err := app.newComposer(ctx, rig.liveSource())
			if err != nil {
				return err
			}

			speaker, closeSpeaker, err := app.newSpeaker(ctx, mute)
			if err != nil {
				return err
			}
			defer closeSpeaker()

			session := application.NewSession(composer, application.SessionOptions{
				Speaker:  speaker,
				Reporter: app.reporter,
				Logger:   app.log,
			})
			defer session.Close()

			session.Greet()

			opts := chat.Options{Summary: app.wardrobe.Summarize}
			if rig != nil {
				opts.Live = rig.annotator
				rig.listen(session)
			}

			g, gctx := errgroup.WithContext(ctx)
			if rig != nil {
				g.Go(func() error {
					if err := rig.run(gctx); err != nil {
						app.log.Error("camera loop", "error", err)
						app.reporter.Capture(gctx, err)
						session.Notify(cameraOffNotice)
					}
					return nil
				})
			}
			g.Go(func() error {
				defer cancel()
				return chat.Run(gctx, session, opts, cmd.InOrStdin(), cmd.OutOrStdout())
			})

			return g.Wait()
		},
	}

	cmd.Flags().BoolVar(&noCamera, "no-camera", false, "Chat without the camera and object detector")
	cmd.Flags().BoolVar(&mute, "mute", false, "Do not speak replies aloud")

	return cmd
}

// startCameraRig wires the frame path unless disabled. Failures are reported
// and leave the caller text only.
func (a *app) startCameraRig(ctx context.Context, cmd *cobra.Command, disabled bool) *cameraRig {
	if disabled {
		return nil
	}

	rig, err := a.newCameraRig(ctx)
	if err != nil {
		a.log.Error("camera disabled", "error", err)
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "camera disabled: %v\n", err)
		return nil
	}

	return rig
}

func (a *app) closeCameraRig(rig *cameraRig) {
	if err := rig.close(); err != nil {
		a.log.Warn("close camera", "error", err)
	}
}

// liveSource returns a nil interface for a nil rig so the composer leaves the
// live line out.
func (r *cameraRig) liveSource() application.LiveStatusSource {
	if r == nil {
		return nil
	}
	return r.annotator
}
