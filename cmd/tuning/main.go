package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/younghak9905/2-hertz-ai/ai"
	"github.com/younghak9905/2-hertz-ai/internal/profile"
	"github.com/younghak9905/2-hertz-ai/internal/version"
	"github.com/younghak9905/2-hertz-ai/server"
	"github.com/younghak9905/2-hertz-ai/store"
	"github.com/younghak9905/2-hertz-ai/store/db"
	"github.com/younghak9905/2-hertz-ai/tuning"
)

var rootCmd = &cobra.Command{
	Use:   "tuning",
	Short: "Matching score engine and similarity index service.",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// .env is optional; environment variables win either way.
		_ = godotenv.Load()
		return nil
	},
	Run: func(_ *cobra.Command, _ []string) {
		instanceProfile, err := loadProfile()
		if err != nil {
			slog.Error("invalid configuration", "error", err)
			os.Exit(1)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		storeInstance, tuningService, err := buildServices(ctx, instanceProfile)
		if err != nil {
			slog.Error("failed to initialize services", "error", err)
			os.Exit(1)
		}

		s, err := server.NewServer(ctx, instanceProfile, storeInstance, tuningService)
		if err != nil {
			slog.Error("failed to create server", "error", err)
			os.Exit(1)
		}

		c := make(chan os.Signal, 1)
		// SIGTERM is the graceful shutdown signal for most supervisors,
		// eg. Kubernetes.
		signal.Notify(c, terminationSignals...)

		if err := s.Start(ctx); err != nil {
			slog.Error("failed to start server", "error", err)
			cancel()
		}

		go func() {
			<-c
			s.Shutdown(ctx)
			cancel()
		}()

		<-ctx.Done()
	},
}

var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Rebuild every similarity entry of a category partition from the current population.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		instanceProfile, err := loadProfile()
		if err != nil {
			return err
		}

		category, err := store.ParseCategory(viper.GetString("category"))
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		storeInstance, tuningService, err := buildServices(ctx, instanceProfile)
		if err != nil {
			return err
		}
		defer func() {
			if err := storeInstance.Close(); err != nil {
				slog.Error("failed to close store", "error", err)
			}
		}()

		written, err := tuningService.RecomputeAll(ctx, category)
		if err != nil {
			return err
		}
		fmt.Printf("recomputed %d similarity entries in %s\n", written, category.Collection())
		return nil
	},
}

func loadProfile() (*profile.Profile, error) {
	instanceProfile := &profile.Profile{
		Mode:    viper.GetString("mode"),
		Addr:    viper.GetString("addr"),
		Port:    viper.GetInt("port"),
		Driver:  viper.GetString("driver"),
		DSN:     viper.GetString("dsn"),
		Version: version.GetCurrentVersion(viper.GetString("mode")),
	}
	profile.FromEnv(instanceProfile)
	if err := instanceProfile.Validate(); err != nil {
		return nil, err
	}
	return instanceProfile, nil
}

func buildServices(ctx context.Context, instanceProfile *profile.Profile) (*store.Store, *tuning.Service, error) {
	dbDriver, err := db.NewDBDriver(instanceProfile)
	if err != nil {
		return nil, nil, err
	}

	storeInstance := store.New(dbDriver, instanceProfile)
	if err := storeInstance.Migrate(ctx); err != nil {
		return nil, nil, err
	}

	aiConfig := ai.NewConfigFromProfile(instanceProfile)
	if err := aiConfig.Validate(); err != nil {
		return nil, nil, err
	}
	embeddingService, err := ai.NewEmbeddingService(&aiConfig.Embedding)
	if err != nil {
		return nil, nil, err
	}

	tuningService, err := tuning.NewService(instanceProfile, storeInstance, embeddingService)
	if err != nil {
		return nil, nil, err
	}
	return storeInstance, tuningService, nil
}

func init() {
	viper.SetDefault("mode", "dev")
	viper.SetDefault("driver", "postgres")
	viper.SetDefault("port", 8000)

	rootCmd.PersistentFlags().String("mode", "dev", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 8000, "port of server")
	rootCmd.PersistentFlags().String("driver", "postgres", "database driver (postgres, sqlite, memory)")
	rootCmd.PersistentFlags().String("dsn", "", "database source name(aka. DSN)")
	recomputeCmd.Flags().String("category", "", `similarity partition: "", "friend", or "couple"`)

	for _, key := range []string{"mode", "addr", "port", "driver", "dsn"} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key)); err != nil {
			panic(err)
		}
	}
	if err := viper.BindPFlag("category", recomputeCmd.Flags().Lookup("category")); err != nil {
		panic(err)
	}

	viper.SetEnvPrefix("tuning")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	rootCmd.AddCommand(recomputeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
