package app

import (
	"database/sql"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/neo-social/neo_server/internal/config"
	"github.com/neo-social/neo_server/internal/handlers"
	handler_analytics "github.com/neo-social/neo_server/internal/handlers/analytics"
	"github.com/neo-social/neo_server/internal/lineage"
	"github.com/neo-social/neo_server/internal/middlewares"
	"github.com/neo-social/neo_server/internal/ranking"
	"github.com/neo-social/neo_server/internal/services"
	"github.com/neo-social/neo_server/internal/store"
	"github.com/neo-social/neo_server/internal/store/analytics"
	"github.com/neo-social/neo_server/migrations"
)

type Application struct {
	Logger                     *log.Logger
	Config                     *config.Config
	RedisClient                *redis.Client
	Graph                      *lineage.Graph
	db                         *sql.DB
	MiddlewareHandler          *middlewares.MiddlewareHandler
	UserHandler                *handlers.UserHandler
	VideoHandler               *handlers.VideoHandler
	FeedHandler                *handlers.FeedHandler
	RemixHandler               *handlers.RemixHandler
	RoyaltyHandler             *handlers.RoyaltyHandler
	LikeHandler                *handlers.LikeHandler
	FollowHandler              *handlers.FollowHandler
	DashboardHandler           *handlers.DashboardHandler
	HealthHandler              *handlers.HealthHandler
	AnalyticsEngagementHandler *handler_analytics.AnalyticsEngagementHandler
}

func NewApplication() (*Application, error) {
	logger := log.New(os.Stdout, "LOGGING: ", log.Ldate|log.Ltime)

	cfg := config.Load()

	pgDB, err := store.ConnectPGDB(cfg.DatabaseURL)
	if err != nil {
		logger.Println("Error connecting to db")
		return nil, err
	}

	err = store.MigrateFS(pgDB, migrations.FS, ".")
	if err != nil {
		logger.Println("PANIC: Postgresql migration failed, exiting...")
		return nil, err
	}

	logger.Println("Database migrated...")

	dbConn, err := store.ConnectClickhouse()
	if err != nil {
		logger.Println("Error connecting to clickhouse")
		return nil, err
	}

	err = store.MigrateClickhouse()
	if err != nil {
		logger.Println("PANIC: Clickhouse migration failed, exiting...")
		return nil, err
	}

	redisClient, err := store.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		logger.Println("Error connecting to redis")
		return nil, err
	}

	userStore := store.NewPostgresUserStore(pgDB)
	videoStore := store.NewPostgresVideoStore(pgDB)
	lineageStore := store.NewPostgresLineageStore(pgDB)
	likeStore := store.NewPostgresLikeStore(pgDB)
	followStore := store.NewPostgresFollowStore(pgDB)
	dashboardStore := store.NewPostgresDashboardStore(pgDB)
	scoreStore := store.NewRedisScoreStore(redisClient, cfg.ScoreSnapshotTTL)
	engagementStore := analytics.NewClickhouseEngagementStore(dbConn)

	graph, err := loadLineageGraph(videoStore, lineageStore, cfg.MaxLineageDepth, logger)
	if err != nil {
		logger.Println("Error loading lineage graph")
		return nil, err
	}
	distributor := lineage.NewDistributor(graph)

	weights := ranking.Weights{
		Like:          cfg.WeightLike,
		Remix:         cfg.WeightRemix,
		RecencyBonus:  cfg.RecencyBonus,
		RecencyWindow: cfg.RecencyWindow,
	}

	generator := services.NewRemixGenerator(logger, "")

	middlewares.RegisterMetrics()
	middlewareHandler := middlewares.NewMiddlewareHandler(logger, cfg.AllowedOrigins)

	userHandler := handlers.NewUserHandler(userStore, logger)
	videoHandler := handlers.NewVideoHandler(videoStore, engagementStore, graph, logger)
	feedHandler := handlers.NewFeedHandler(videoStore, followStore, scoreStore, weights, logger)
	remixHandler := handlers.NewRemixHandler(videoStore, lineageStore, engagementStore, graph, generator, cfg.DefaultRoyaltyPct, logger)
	royaltyHandler := handlers.NewRoyaltyHandler(distributor, logger)
	likeHandler := handlers.NewLikeHandler(likeStore, videoStore, engagementStore, logger)
	followHandler := handlers.NewFollowHandler(followStore, logger)
	dashboardHandler := handlers.NewDashboardHandler(dashboardStore, logger)
	healthHandler := handlers.NewHealthHandler(pgDB, redisClient)
	analyticsEngagementHandler := handler_analytics.NewAnalyticsEngagementHandler(engagementStore, logger)

	app := &Application{
		Logger:                     logger,
		Config:                     cfg,
		RedisClient:                redisClient,
		Graph:                      graph,
		db:                         pgDB,
		MiddlewareHandler:          middlewareHandler,
		UserHandler:                userHandler,
		VideoHandler:               videoHandler,
		FeedHandler:                feedHandler,
		RemixHandler:               remixHandler,
		RoyaltyHandler:             royaltyHandler,
		LikeHandler:                likeHandler,
		FollowHandler:              followHandler,
		DashboardHandler:           dashboardHandler,
		HealthHandler:              healthHandler,
		AnalyticsEngagementHandler: analyticsEngagementHandler,
	}

	return app, nil

}

// loadLineageGraph rebuilds the in-memory graph from the persisted video
// and edge sets. The graph is the authoritative invariant checker at
// runtime; storage is the authoritative record between restarts.
func loadLineageGraph(videoStore store.VideoStore, lineageStore store.LineageStore, maxDepth int, logger *log.Logger) (*lineage.Graph, error) {
	graph := lineage.NewGraph(maxDepth)

	videoIDs, err := videoStore.GetAllVideoIDs()
	if err != nil {
		return nil, err
	}
	for _, id := range videoIDs {
		graph.AddVideo(id)
	}

	edges, err := lineageStore.GetAllEdges()
	if err != nil {
		return nil, err
	}
	for _, edge := range edges {
		err := graph.AddEdge(edge.ParentVideoID, edge.ChildVideoID, edge.RoyaltyPercentage, edge.Created_At)
		if err != nil {
			// A persisted edge violating an invariant means corrupt data.
			// Skip it and keep serving; royalty walks stay guarded by
			// the depth limit.
			logger.Printf("Skipping invalid persisted edge %s -> %s: %v",
				edge.ParentVideoID, edge.ChildVideoID, err)
		}
	}

	return graph, nil
}
