package cli

import (
	"fmt"
	"log/slog"

	"github.com/DiversioTeam/ClassQuiz/internal/bootstrap"
	"github.com/DiversioTeam/ClassQuiz/internal/classquiz"
	"github.com/DiversioTeam/ClassQuiz/internal/config"
	"github.com/spf13/cobra"
)

// NewBootstrapCmd seeds the shared dev/test accounts so every teammate's
// stack has the same users. Safe to rerun.
func NewBootstrapCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap-users",
		Short: "Create the shared dev/test accounts on a local instance",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			slog.Info("using ClassQuiz API", "base_url", cfg.ClassQuiz.BaseURL)

			client := classquiz.New(cfg.ClassQuiz.BaseURL)
			users := bootstrap.DefaultUsers(cfg.ClassQuiz.Password)
			if err := bootstrap.EnsureUsers(cmd.Context(), client, users, cmd.OutOrStdout()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Done. Dev/test users are available (or already existed).")
			return nil
		},
	}
}
