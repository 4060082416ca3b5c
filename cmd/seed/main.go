package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"flighttracker-service/internal/infrastructure/config"
	"flighttracker-service/internal/infrastructure/persistence"
	"flighttracker-service/internal/interface/repository"
	"flighttracker-service/internal/usecase"
	"flighttracker-service/pkg/logger"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd(ctx).Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd(ctx context.Context) *cobra.Command {
	root := &cobra.Command{
		Use:          "seed",
		Short:        "Load flights and price observations into MongoDB",
		SilenceUsage: true,
	}

	root.AddCommand(sampleCmd(ctx))
	root.AddCommand(importCmd(ctx))
	return root
}

func sampleCmd(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Seed the built-in sample flights",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(ctx, cmd, usecase.SampleData())
		},
	}
}

func importCmd(ctx context.Context) *cobra.Command {
	var (
		file   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import flights and observations from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			flights, err := parseImportFile(f)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}

			if dryRun {
				observations := 0
				for _, sf := range flights {
					observations += len(sf.Observations)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d flights, %d observations\n", file, len(flights), observations)
				return nil
			}
			return runSeed(ctx, cmd, flights)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the JSON file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the file without writing")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runSeed(ctx context.Context, cmd *cobra.Command, flights []usecase.SeedFlight) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()

	client, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword, log)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	db := persistence.GetDatabase(client, cfg.MongoDB)
	seeder := usecase.NewDataSeeder(
		repository.NewMongoFlightRepository(db, log),
		repository.NewMongoObservationRepository(db, log),
		log,
	)

	result, err := seeder.Seed(ctx, flights)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "flights: %d created, %d existing; observations: %d inserted, %d skipped\n",
		result.FlightsCreated, result.FlightsExisting, result.ObservationsInserted, result.ObservationsSkipped)
	return nil
}
