package cli

import (
	"fmt"

	"github.com/DiversioTeam/ClassQuiz/internal/config"
	"github.com/DiversioTeam/ClassQuiz/internal/export"
	"github.com/DiversioTeam/ClassQuiz/internal/infra/dockercli"
	"github.com/DiversioTeam/ClassQuiz/internal/infra/redisstore"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewExportCmd builds the rescue command that reads final standings for a
// live game straight from Redis, for when the web UI cannot show them.
func NewExportCmd(configPath *string) *cobra.Command {
	var viaDocker bool

	cmd := &cobra.Command{
		Use:   "export-results <game-pin>",
		Short: "Export final standings for a live game directly from Redis",
		Long: "Reads game:{pin}, the player score hash, and every per-question answer log\n" +
			"from Redis and prints a scoreboard table you can paste into notes or slides.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			var store export.Store
			if !viaDocker && cfg.Redis.Addr != "" {
				client := redis.NewClient(&redis.Options{
					Addr:     cfg.Redis.Addr,
					Password: cfg.Redis.Password,
					DB:       cfg.Redis.DB,
				})
				defer client.Close()
				store = redisstore.New(client)
			} else {
				store = dockercli.New(cfg.Compose.Command, cfg.Compose.Service)
			}

			report, err := export.New(store).Export(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&viaDocker, "via-docker", false,
		"read through docker compose exec redis-cli even when a Redis address is configured")
	return cmd
}
