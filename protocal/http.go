package protocal

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"talkpro/configs"
	httpAdapter "talkpro/internal/adapters/input/http"
	"talkpro/internal/adapters/output/catalog"
	lineAdapter "talkpro/internal/adapters/output/line"
	"talkpro/internal/adapters/output/memory"
	"talkpro/internal/adapters/output/postgres"
	"talkpro/internal/application"
	"talkpro/internal/ports/output"
	"talkpro/pkg/database_driver/gorm"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

const (
	defaultPort       = "9089"
	defaultLLMTimeout = 120 * time.Second
	defaultSQLitePath = "./data/talkpro.db"
)

// ServeHTTP func
func ServeHTTP(env string) error {
	configs.InitViper("./configs", env)
	cfg := configs.GetViper()
	SetupLogger(cfg.App)
	logrus.Infof("Starting talkpro (env=%s, llm=%s)", cfg.App.Env, cfg.LLM.Provider)

	app := fiber.New(fiber.Config{AppName: "talkpro"})
	app.Use(fiberrecover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + httpAdapter.HeaderUserID,
	}))

	db, repo, err := OpenHistory(cfg)
	if err != nil {
		return err
	}

	llmClient, err := NewLLMClient(cfg.LLM)
	if err != nil {
		return err
	}
	llmTimeout := time.Duration(cfg.LLM.Timeout) * time.Second
	if cfg.LLM.Timeout <= 0 {
		llmTimeout = defaultLLMTimeout
	}

	// Wire up the hexagonal architecture layers
	// Output adapters
	seedCatalog := catalog.LoadFileCatalog(cfg.Catalog.Path)
	sessionStore := memory.NewMemorySessionStore(time.Duration(cfg.Session.Timeout) * time.Minute)
	// Application services (use cases)
	protocol := application.NewProtocol(llmClient, seedCatalog, llmTimeout)
	interviewSrv := application.NewInterviewService(protocol, sessionStore, repo)
	historySrv := application.NewHistoryService(repo)
	catalogSrv := application.NewCatalogService(seedCatalog)
	channel := application.NewInterviewChannel(interviewSrv, catalogSrv)
	// Input adapter (HTTP + WebSocket handler)
	hdl := httpAdapter.New(interviewSrv, historySrv, catalogSrv, channel)

	app.Get("/swagger/*", swagger.HandlerDefault) // default
	httpAdapter.RegisterRoutes(app, hdl)

	// Wire up LINE hexagonal architecture
	if cfg.Line.Enabled {
		lineClient, err := lineAdapter.NewLineClientAdapter(cfg.Line.ChannelToken)
		if err != nil {
			logrus.Fatalf("Failed to create LINE client: %v", err)
		}
		lineWebhookSrv := application.NewLineWebhookService(lineClient, interviewSrv, catalogSrv)
		lineWebhookHdl := httpAdapter.NewLineWebhookHandler(lineWebhookSrv, cfg.Line.ChannelSecret)

		webhook := app.Group("/webhook")
		{
			webhook.Post("/line", lineWebhookHdl.HandleWebhook)
		}
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		logrus.Println("Gracefull shut down ...")
		if err := app.Shutdown(); err != nil {
			logrus.Println("Error when shutdown server: ", err)
		}
	}()

	port := cfg.App.Port
	if port == "" {
		port = defaultPort
	}
	logrus.Println("Listening on port: ", port)
	err = app.Listen(":" + port)

	interviewSrv.Wait()
	if db != nil {
		gorm.Disconnect(db.Gorm)
	}
	return err
}

// OpenHistory func - Connects the archive database selected by database.driver.
// With driver none both results are nil and history is disabled.
func OpenHistory(cfg *configs.Config) (*gorm.DB, output.SessionRepository, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch strings.ToLower(cfg.Database.Driver) {
	case "none":
		logrus.Warnln("History is disabled (database.driver=none)")
		return nil, nil, nil
	case "postgres":
		db, err = gorm.ConnectToPostgreSQL(
			cfg.Postgres.Host,
			cfg.Postgres.Port,
			cfg.Postgres.Username,
			cfg.Postgres.Password,
			cfg.Postgres.DbName,
			cfg.Postgres.SSLMode,
		)
	default:
		path := cfg.Database.SQLitePath
		if path == "" {
			path = defaultSQLitePath
		}
		db, err = gorm.ConnectToSQLite(path)
	}
	if err != nil {
		return nil, nil, err
	}

	return db, postgres.NewSessionRepository(db.Gorm), nil
}

// SetupLogger func - debug level when app.debug, JSON lines in production
func SetupLogger(app configs.App) {
	logrus.SetOutput(os.Stdout)
	if app.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
	if app.Env == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
