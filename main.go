package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	config "github.com/mwangikb/event-planner-go/config"
	routes "github.com/mwangikb/event-planner-go/routes"
	store "github.com/mwangikb/event-planner-go/store"
	utils "github.com/mwangikb/event-planner-go/utils"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	cfg.Logger = config.NewLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		cfg.Logger.Fatal().Err(err).Msg("could not connect to mongodb")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		cfg.Logger.Fatal().Err(err).Msg("mongodb ping failed")
	}
	db := client.Database(cfg.DBName)

	cfg.Events = store.NewMongoEventStore(db)

	sessions := store.NewMongoSessionStore(db)
	if err := sessions.EnsureIndexes(ctx); err != nil {
		cfg.Logger.Fatal().Err(err).Msg("could not ensure session indexes")
	}
	cfg.Sessions = sessions

	blob, err := utils.NewCloudinaryBlobStore(cfg.CloudName, cfg.CloudAPIKey, cfg.CloudSecret, cfg.CloudFolder, cfg.Logger)
	if err != nil {
		cfg.Logger.Fatal().Err(err).Msg("could not configure cloudinary")
	}
	cfg.Blob = blob

	if cfg.AuthDisabled {
		cfg.Logger.Warn().Msg("session gate disabled, all writes are open")
	}

	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowCredentials = true
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	if len(cfg.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))

	routes.SetupRoutes(r, cfg)

	cfg.Logger.Info().Str("port", cfg.Port).Msg("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		cfg.Logger.Fatal().Err(err).Msg("server exited")
	}
}
