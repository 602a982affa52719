package container

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devcamper-api/config"
	"github.com/oksasatya/devcamper-api/internal/application"
	"github.com/oksasatya/devcamper-api/internal/domain/repository"
	"github.com/oksasatya/devcamper-api/internal/infrastructure/postgres"
	"github.com/oksasatya/devcamper-api/pkg/helpers"
)

// Infra is what cmd/main.go builds before the container. Photos, Search and
// Redis may be nil when the backing service is not configured.
type Infra struct {
	DB     postgres.DB
	Redis  *redis.Client
	Mail   application.Mailer
	Photos application.PhotoStore
	Search application.BootcampIndex
}

// Container holds the constructed components the router wires into modules.
type Container struct {
	Config *config.Config
	Logger logrus.FieldLogger
	Redis  *redis.Client
	DB     postgres.DB

	// DBPing is nil when DB cannot be pinged (mocks).
	DBPing func(ctx context.Context) error

	JWT   *helpers.JWTManager
	Users repository.UserRepository

	Auth      *application.AuthService
	Reset     *application.ResetService
	Bootcamps *application.BootcampService
	Courses   *application.CourseService
	Reviews   *application.ReviewService
}

func New(cfg *config.Config, logger logrus.FieldLogger, infra Infra) *Container {
	jwt := helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTExpire)
	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.IsProduction(), cfg.CookieTTL())
	hasher := helpers.NewBcryptHasher(cfg.BcryptCost)
	sessions := application.NewSessionIssuer(jwt, cookies)

	users := postgres.NewUserRepository(infra.DB)
	bootcamps := application.NewBootcampService(
		postgres.NewBootcampRepository(infra.DB),
		infra.Photos,
		infra.Search,
		cfg.MaxFileUpload,
		logger,
	)

	c := &Container{
		Config: cfg,
		Logger: logger,
		Redis:  infra.Redis,
		DB:     infra.DB,
		JWT:    jwt,
		Users:  users,
		Auth:   application.NewAuthService(users, hasher, sessions, logger),
		Reset: application.NewResetService(users, hasher, sessions, infra.Mail, application.ResetConfig{
			TTL:                cfg.ResetTokenTTL,
			BaseURL:            cfg.ResetPasswordURL,
			AllowedHosts:       cfg.AllowedHostList(),
			ConcealUnknownMail: cfg.ResetConcealUnknownEmail,
			AppName:            cfg.AppName,
		}, logger),
		Bootcamps: bootcamps,
		Courses:   application.NewCourseService(postgres.NewCourseRepository(infra.DB), bootcamps, logger),
		Reviews:   application.NewReviewService(postgres.NewReviewRepository(infra.DB), bootcamps, logger),
	}
	if p, ok := infra.DB.(interface{ Ping(context.Context) error }); ok {
		c.DBPing = p.Ping
	}
	return c
}
