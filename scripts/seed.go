// Seeds a Postgres database with the demo fixture set. Run with
// STORAGE_BACKEND=postgres and the usual DB_* variables; RESET_DB=true
// truncates the tables first.
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/clinicore/clinic-backend/internal/adapters/database"
	"github.com/clinicore/clinic-backend/internal/infrastructure/clients/postgres"
	"github.com/clinicore/clinic-backend/internal/infrastructure/observability"
	"github.com/clinicore/clinic-backend/internal/seed"
	"github.com/clinicore/clinic-backend/pkg/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	observability.InitLogger("clinic-seed", cfg.Server.Environment)
	logger := observability.GetLogger()

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		logger.Info().Msg("RESET_DB=true, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				diagnoses,
				notifications,
				messages,
				appointments,
				users
			CASCADE`)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to truncate tables")
		}
	}

	stores := seed.Stores{
		Users:         database.NewUserAdapter(pgClient),
		Appointments:  database.NewAppointmentAdapter(pgClient),
		Messages:      database.NewMessageAdapter(pgClient),
		Notifications: database.NewNotificationAdapter(pgClient),
		Diagnoses:     database.NewDiagnosisAdapter(pgClient),
	}

	if err := seed.Load(ctx, stores); err != nil {
		logger.Fatal().Err(err).Msg("seeding failed")
	}
	logger.Info().Msg("seeding complete")
}
