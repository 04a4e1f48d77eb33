package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/bnema/mira/internal/domain"
	"github.com/spf13/cobra"
)

func newCredentialsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage the Gemini and ElevenLabs API keys",
	}

	cmd.AddCommand(newCredentialsSetCmd(app), newCredentialsDeleteCmd(app), newCredentialsStatusCmd(app))

	return cmd
}

func newCredentialsSetCmd(app *app) *cobra.Command {
	var value string

	cmd := &cobra.Command{
		Use:   "set <gemini|elevenlabs>",
		Short: "Store an API key in the secret store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			credential, err := domain.CredentialByName(args[0])
			if err != nil {
				return err
			}

			if err := app.credentials.Set(cmd.Context(), credential, value); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "stored %s credential\n", credential.Name)
			return err
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "API key value")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newCredentialsDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <gemini|elevenlabs>",
		Short: "Remove an API key from the secret store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			credential, err := domain.CredentialByName(args[0])
			if err != nil {
				return err
			}

			if err := app.credentials.Delete(cmd.Context(), credential); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s credential\n", credential.Name)
			return err
		},
	}
}

func newCredentialsStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where each API key is resolved from",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, status := range app.credentials.Status(cmd.Context()) {
				requirement := "optional"
				if status.Credential.Required {
					requirement = "required"
				}
				backend := status.Backend
				if backend == "" {
					backend = "-"
				}
				if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", status.Credential.Name, status.Credential.EnvVar, status.Source, requirement, backend); err != nil {
					return err
				}
			}
			return w.Flush()
		},
	}
}
