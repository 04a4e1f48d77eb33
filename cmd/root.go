package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd, app := buildRootCmd()
	if app != nil {
		defer app.close()
	}

	return rootCmd.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd, _ := buildRootCmd()
	return rootCmd
}

func buildRootCmd() (*cobra.Command, *app) {
	rootCmd := &cobra.Command{
		Use:           "mira",
		Short:         "MiraAI: a live AI fashion stylist in your terminal",
		Long:          "mira watches your outfit through the webcam, keeps a virtual wardrobe of the garments it sees, and gives styling advice by text or voice.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd, nil
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newChatCmd(app),
		newVoiceCmd(app),
		newAskCmd(app),
		newScanCmd(app),
		newWardrobeCmd(app),
		newCredentialsCmd(app),
		newConfigCmd(app),
	)

	return rootCmd, app
}
