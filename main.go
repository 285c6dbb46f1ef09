package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-mazegen/api"
	api_i "github.com/beka-birhanu/vinom-mazegen/api/i"
	"github.com/beka-birhanu/vinom-mazegen/api/identity"
	"github.com/beka-birhanu/vinom-mazegen/api/mazeapi"
	"github.com/beka-birhanu/vinom-mazegen/config"
	logger "github.com/beka-birhanu/vinom-mazegen/infrastruture/log"
	"github.com/beka-birhanu/vinom-mazegen/infrastruture/repo"
	"github.com/beka-birhanu/vinom-mazegen/infrastruture/snapshotstore"
	"github.com/beka-birhanu/vinom-mazegen/infrastruture/token"
	"github.com/beka-birhanu/vinom-mazegen/service"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient        *mongo.Client
	redisClient        *redis.Client
	userRepo           i.UserRepo
	mazeRepo           i.MazeRepo
	snapshotStore      i.SnapshotStore
	jwtTokenizer       i.Tokenizer
	authService        i.Authenticator
	mazeSessionManager i.MazeSessionManager
	authController     api_i.Controller
	mazeController     api_i.Controller
	router             *api.Router
	appLogger          i.Logger
)

func fatal(msg string) {
	appLogger.Error(msg)
	os.Exit(1)
}

func newLogger(name, color string) i.Logger {
	l, err := logger.New(name, color, os.Stdout)
	if err != nil {
		fatal(fmt.Sprintf("Creating %s logger: %v", name, err))
	}
	return l
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	var err error
	mongoClient, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		fatal(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		fatal(fmt.Sprintf("MongoDB ping failed: %v", err))
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		fatal(fmt.Sprintf("Redis ping failed: %v", err))
	}
	appLogger.Info("Connected to Redis")
}

func initRepos(client *mongo.Client) {
	userRepo = repo.NewUserRepo(client, config.Envs.DBName, "users")
	mazeRepo = repo.NewMazeRepo(client, config.Envs.DBName, "mazes")
	appLogger.Info("Repositories initialized")
}

func initSnapshotStore(client *redis.Client) {
	var err error
	snapshotStore, err = snapshotstore.NewRedisSnapshotStore(client, config.Envs.SnapshotTTLSeconds)
	if err != nil {
		fatal(fmt.Sprintf("Creating snapshot store: %v", err))
	}
	appLogger.Info("Snapshot store initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(userRepo, jwtTokenizer)
	if err != nil {
		fatal(fmt.Sprintf("Creating auth service: %v", err))
	}
	appLogger.Info("Auth service initialized")
}

func initMazeSessionManager() {
	var err error
	mazeSessionManager, err = service.NewMazeSessionManager(&service.MazeSessionConfig{
		MazeRepo:        mazeRepo,
		Snapshots:       snapshotStore,
		Logger:          newLogger("MAZE-SESSION", config.ColorCyan),
		MaxDimension:    config.Envs.MazeMaxDimension,
		ExportEveryStep: config.Envs.ExportEveryStep,
	})
	if err != nil {
		fatal(fmt.Sprintf("Creating maze session manager: %v", err))
	}
	appLogger.Info("Maze session manager initialized")
}

func initControllers() {
	authController = identity.NewIdentityServer(authService)

	var err error
	mazeController, err = mazeapi.NewMazeController(mazeSessionManager, mazeapi.Defaults{
		Cols: config.Envs.MazeDefaultCols,
		Rows: config.Envs.MazeDefaultRows,
	})
	if err != nil {
		fatal(fmt.Sprintf("Creating maze controller: %v", err))
	}
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, mazeController},
		AuthorizationMiddleware: identity.Authorize(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initRedis(ctx)
	defer redisClient.Close()

	initRepos(mongoClient)
	initSnapshotStore(redisClient)
	initJWTTokenizer()
	initAuthService()
	initMazeSessionManager()
	initControllers()
	initRouter(jwtTokenizer)

	if err := router.Run(); err != nil {
		fatal(fmt.Sprintf("Starting server: %v", err))
	}
}
