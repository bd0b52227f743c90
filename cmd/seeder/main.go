// Command seeder loads the category taxonomy and sample POIs into MongoDB.
package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"poirec-server/logging"
	"poirec-server/services"
	"poirec-server/store"
)

func main() {
	// A missing .env is fine; flags and the environment still apply.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "seeder",
		Usage: "Seed the POI database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "mongo-uri",
				Usage:   "MongoDB connection string",
				EnvVars: []string{"MONGODB_URI"},
				Value:   "mongodb://localhost:27017",
			},
			&cli.StringFlag{
				Name:    "database",
				Usage:   "MongoDB database name",
				EnvVars: []string{"MONGODB_DATABASE"},
				Value:   "poi_db",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Connection timeout",
				Value: 10 * time.Second,
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: func(c *cli.Context) error {
			logging.Init(logging.Config{Level: c.String("log-level"), Format: "console"})
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Usage:  "Insert the categories and POIs of a seed file that are not stored yet",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Path to the JSON seed file",
						EnvVars: []string{"SEED_FILE"},
						Value:   "./data/seed.json",
					},
				},
			},
			{
				Name:   "indexes",
				Usage:  "Create the collection indexes",
				Action: indexesCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logging.Fatal().Err(err).Msg("Seeder failed")
	}
}

func indexesCommand(c *cli.Context) error {
	client, err := store.Connect(c.Context, c.String("mongo-uri"), c.Duration("timeout"))
	if err != nil {
		return err
	}
	defer client.Disconnect(c.Context)

	if err := store.EnsureIndexes(c.Context, client.Database(c.String("database"))); err != nil {
		return err
	}
	logging.Info().Msg("Indexes created")
	return nil
}

func seedCommand(c *cli.Context) error {
	client, err := store.Connect(c.Context, c.String("mongo-uri"), c.Duration("timeout"))
	if err != nil {
		return err
	}
	defer client.Disconnect(c.Context)

	db := client.Database(c.String("database"))
	if err := store.EnsureIndexes(c.Context, db); err != nil {
		return err
	}

	categories := store.NewMongoCategoryStore(db)
	pois := services.NewPoiService(store.NewMongoPOIStore(db), categories, 0)
	return services.Seed(c.Context, c.String("file"), categories, pois)
}
