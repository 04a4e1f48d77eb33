package cmd

import (
	"context"
	"fmt"

	"github.com/bnema/mira/internal/application"
	"github.com/bnema/mira/internal/domain"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newVoiceCmd(app *app) *cobra.Command {
	var noCamera bool

	cmd := &cobra.Command{
		Use:   "voice",
		Short: "Talk to MiraAI hands-free; say stop, exit or quit to end",
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

			voice, closeVoice, err := app.newVoice(ctx)
			if err != nil {
				return err
			}
			defer closeVoice()

			out := cmd.OutOrStdout()
			session := application.NewSession(composer, application.SessionOptions{
				Speaker:  voice,
				Reporter: app.reporter,
				Logger:   app.log,
			})
			defer session.Close()

			loop := application.NewVoiceLoop(voice, voice, session, application.VoiceLoopOptions{
				ListenTimeout: app.settings.Voice.ListenTimeout,
				PhraseLimit:   app.settings.Voice.PhraseLimit,
				Logger:        app.log,
			})

			g, gctx := errgroup.WithContext(ctx)
			if rig != nil {
				rig.listen(application.ItemSavedListeners{
					session,
					application.ItemSavedFunc(func(_ context.Context, item domain.Item) error {
						_, err := fmt.Fprintln(out, domain.ItemSavedSentence(item))
						return err
					}),
				})
				g.Go(func() error {
					if err := rig.run(gctx); err != nil {
						app.log.Error("camera loop", "error", err)
						app.reporter.Capture(gctx, err)
						_, _ = fmt.Fprintln(cmd.ErrOrStderr(), cameraOffNotice)
					}
					return nil
				})
			}
			g.Go(func() error {
				defer cancel()
				return loop.Run(gctx)
			})

			if err := g.Wait(); err != nil {
				return err
			}

			for _, turn := range session.History() {
				if _, err := fmt.Fprintf(out, "%s: %s\n", speakerName(turn.Role), turn.Content); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&noCamera, "no-camera", false, "Talk without the camera and object detector")

	return cmd
}

func speakerName(role domain.Role) string {
	if role == domain.RoleUser {
		return "You"
	}
	return "MiraAI"
}
