package main

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/rakasatria/folio/config"
	"github.com/rakasatria/folio/internal/api/handlers"
	"github.com/rakasatria/folio/internal/api/middleware"
	"github.com/rakasatria/folio/internal/api/routes"
	"github.com/rakasatria/folio/internal/cache"
	"github.com/rakasatria/folio/internal/chat"
	"github.com/rakasatria/folio/internal/logger"
	"github.com/rakasatria/folio/internal/mailer"
	"github.com/rakasatria/folio/internal/models"
	mongorepo "github.com/rakasatria/folio/internal/repositories/mongo"
	pgrepo "github.com/rakasatria/folio/internal/repositories/postgres"
	"github.com/rakasatria/folio/internal/registry"
	"github.com/rakasatria/folio/internal/services"
	"github.com/rakasatria/folio/internal/storage"
	"github.com/rakasatria/folio/internal/workers"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()

	ownerID := os.Getenv("OWNER_ID")
	if ownerID == "" {
		log.Fatal("OWNER_ID environment variable is not set")
	}

	// Init PostgreSQL
	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := config.MigratePostgres(); err != nil {
		log.Fatalf("PostgreSQL migrate error: %v", err)
	}
	log.Info("PostgreSQL connected")

	// Init MongoDB
	if err := config.InitMongo(); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	if err := config.EnsureMongoIndexes(); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}
	log.Info("MongoDB connected")

	// Init Redis
	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	log.Info("Redis connected")

	ctx := context.Background()

	mongoName := os.Getenv("MONGO_DB")
	if mongoName == "" {
		mongoName = "folio"
	}
	mongoDB := config.MongoClient.Database(mongoName)

	// Repositories
	projectRepo := pgrepo.NewEntityRepo[models.Project](config.PostgresDB)
	skillRepo := pgrepo.NewEntityRepo[models.Skill](config.PostgresDB)
	statRepo := pgrepo.NewEntityRepo[models.Stat](config.PostgresDB)
	experienceRepo := pgrepo.NewEntityRepo[models.Experience](config.PostgresDB)
	educationRepo := pgrepo.NewEntityRepo[models.Education](config.PostgresDB)
	contactRepo := pgrepo.NewEntityRepo[models.ContactMessage](config.PostgresDB)
	personalInfoRepo := pgrepo.NewPersonalInfoRepo(config.PostgresDB)
	messageRepo := mongorepo.NewMessageRepo(mongoDB)

	// Services
	svcs := registry.Services{
		Projects:     services.NewProjectService(ownerID, projectRepo),
		PersonalInfo: services.NewPersonalInfoService(ownerID, personalInfoRepo),
		Skills:       services.NewResourceService[models.Skill, *models.Skill]("skill", ownerID, skillRepo),
		Stats:        services.NewResourceService[models.Stat, *models.Stat]("stat", ownerID, statRepo),
		Experiences:  services.NewResourceService[models.Experience, *models.Experience]("experience", ownerID, experienceRepo),
		Educations:   services.NewResourceService[models.Education, *models.Education]("education", ownerID, educationRepo),
		Contacts:     services.NewContactService(ownerID, contactRepo, config.RedisClient),
	}
	reg := registry.New(svcs)

	chatSvc := services.NewChatService(messageRepo)

	// Object storage
	bucket := os.Getenv("GCS_BUCKET")
	if bucket == "" {
		log.Fatal("GCS_BUCKET environment variable is not set")
	}
	store, err := storage.NewGCSStore(ctx, bucket)
	if err != nil {
		log.Fatalf("GCS init error: %v", err)
	}
	uploadSvc := services.NewUploadService(store)

	rc := cache.NewRedisCache(config.RedisClient)

	// Chat hub
	hub := chat.NewHub(chatSvc, chat.NewRedisBroker(config.RedisClient), log)
	stopHub, err := hub.Run(ctx)
	if err != nil {
		log.Fatalf("chat hub error: %v", err)
	}
	defer stopHub()

	// Contact notifier workers
	m, err := mailer.NewSMTPMailerFromEnv()
	if err != nil {
		log.WithError(err).Warn("SMTP not configured, contact notifications disabled")
	} else {
		pool := &workers.ContactNotifierPool{
			Redis:  config.RedisClient,
			Mailer: m,
			Logger: log,
		}
		if err := pool.Start(ctx); err != nil {
			log.Fatalf("contact notifier error: %v", err)
		}
	}

	// HTTP
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Public: handlers.NewPublicHandler(
			svcs.Projects, svcs.PersonalInfo,
			svcs.Skills, svcs.Stats, svcs.Experiences, svcs.Educations,
			svcs.Contacts, rc,
		),
		Auth:        handlers.NewAuthHandler(ownerID),
		Admin:       handlers.NewAdminHandler(reg, rc, log),
		Upload:      handlers.NewUploadHandler(uploadSvc),
		ChatWS:      handlers.NewChatWSHandler(hub),
		DashboardWS: handlers.NewDashboardWSHandler(reg, log),
	})

	origins := []string{"*"}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins = strings.Split(v, ",")
	}
	handler := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("listening")
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
