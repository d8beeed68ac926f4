package main

import (
	"context"
	"time"

	"github.com/Abraxas-365/hiretrack/iam/user/userapi"
	"github.com/Abraxas-365/hiretrack/iam/user/userinfra"
	"github.com/Abraxas-365/hiretrack/iam/user/usersrv"
	"github.com/Abraxas-365/hiretrack/pkg/config"
	"github.com/Abraxas-365/hiretrack/pkg/fsx"
	"github.com/Abraxas-365/hiretrack/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/hiretrack/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/hiretrack/pkg/iam/auth"
	"github.com/Abraxas-365/hiretrack/pkg/logx"
	"github.com/Abraxas-365/hiretrack/pkg/mailx"
	"github.com/Abraxas-365/hiretrack/recruitment/employee/employeeapi"
	"github.com/Abraxas-365/hiretrack/recruitment/employee/employeeinfra"
	"github.com/Abraxas-365/hiretrack/recruitment/employee/employeesrv"
	"github.com/Abraxas-365/hiretrack/recruitment/lead/leadapi"
	"github.com/Abraxas-365/hiretrack/recruitment/lead/leadinfra"
	"github.com/Abraxas-365/hiretrack/recruitment/lead/leadsrv"
	"github.com/Abraxas-365/hiretrack/recruitment/resume"
	"github.com/Abraxas-365/hiretrack/recruitment/resume/resumeapi"
	"github.com/Abraxas-365/hiretrack/recruitment/resume/resumeinfra"
	"github.com/Abraxas-365/hiretrack/recruitment/resume/resumesrv"
	"github.com/Abraxas-365/hiretrack/recruitment/resume/worker"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	Mailer     mailx.Sender
	MailQueue  resume.MailQueue

	// Services
	TokenService    auth.TokenService
	UserService     *usersrv.Service
	ResumeService   *resumesrv.Service
	EmployeeService *employeesrv.Service
	LeadService     *leadsrv.Service

	// API Handlers
	UserHandlers     *userapi.UserHandlers
	ResumeHandlers   *resumeapi.ResumeHandlers
	EmployeeHandlers *employeeapi.EmployeeHandlers
	LeadHandlers     *leadapi.LeadHandlers

	// Middleware
	AuthMiddleware *auth.TokenMiddleware

	MailWorker *worker.MailWorker
}

// NewContainer initializes the dependency injection container
func NewContainer(cfg *config.Config) *Container {
	c := &Container{Config: cfg}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	cfg := c.Config

	// 1. Database Connection
	db, err := sqlx.Connect("postgres", cfg.DB.DSN())
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Mail queue, Redis backed when configured
	if cfg.Redis.Enabled() {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
			logx.Warnf("Failed to connect to Redis: %v", err)
		}
		c.MailQueue = resumeinfra.NewRedisMailQueue(c.Redis, cfg.Redis.QueueName)
	} else {
		logx.Warn("REDIS_ADDR is not set, mail retries are kept in memory")
		c.MailQueue = resumeinfra.NewMemoryMailQueue()
	}

	// 3. File storage
	switch cfg.Storage.Driver {
	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(cfg.Storage.Region))
		if err != nil {
			logx.Fatalf("unable to load SDK config, %v", err)
		}
		c.FileSystem = fsxs3.NewS3FileSystem(s3.NewFromConfig(awsCfg), cfg.Storage.Bucket, cfg.Storage.Prefix)
	default:
		local, err := fsxlocal.NewLocalFileSystem(cfg.Storage.LocalDir)
		if err != nil {
			logx.Fatalf("Failed to prepare upload directory: %v", err)
		}
		c.FileSystem = local
	}

	// 4. Outbound mail
	c.Mailer = mailx.New(mailx.Config{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		User:     cfg.Mail.User,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
		Company:  cfg.Mail.Company,
	})

	// 5. Tokens
	secret := cfg.JWT.Secret
	if secret == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		secret = "super-secret-key-please-change-me-in-production"
	}
	c.TokenService = auth.NewJWTService(secret, cfg.JWT.TTL, cfg.JWT.Issuer)
	c.AuthMiddleware = auth.NewTokenMiddleware(c.TokenService)
}

func (c *Container) initServices() {
	cfg := c.Config

	// --- Repositories ---
	userRepo := userinfra.NewPostgresUserRepository(c.DB)
	resumeRepo := resumeinfra.NewPostgresResumeRepository(c.DB)
	employeeRepo := employeeinfra.NewPostgresEmployeeRepository(c.DB)
	leadRepo := leadinfra.NewPostgresLeadRepository(c.DB)

	// --- Domain Services ---
	c.UserService = usersrv.NewService(userRepo, c.TokenService, auth.NewBcryptHasher(cfg.Password.BcryptCost))
	c.ResumeService = resumesrv.NewService(resumeRepo, c.FileSystem, c.Mailer, c.MailQueue, resumesrv.Config{
		Company:  cfg.Mail.Company,
		Location: cfg.Export.Location(),
	})
	c.EmployeeService = employeesrv.NewService(employeeRepo)
	c.LeadService = leadsrv.NewService(leadRepo, resumeRepo)

	// --- Handlers ---
	c.UserHandlers = userapi.NewUserHandlers(c.UserService)
	c.ResumeHandlers = resumeapi.NewResumeHandlers(c.ResumeService)
	c.EmployeeHandlers = employeeapi.NewEmployeeHandlers(c.EmployeeService)
	c.LeadHandlers = leadapi.NewLeadHandlers(c.LeadService)

	// --- Background ---
	c.MailWorker = worker.NewMailWorker(c.ResumeService, c.MailQueue, cfg.Worker.Count)
}

// RedisHealthy reports false when Redis is configured but unreachable
func (c *Container) RedisHealthy(ctx context.Context) bool {
	if c.Redis == nil {
		return true
	}
	return c.Redis.Ping(ctx).Err() == nil
}

// QueueStats reports the number of ready and delayed mail retries
func (c *Container) QueueStats(ctx context.Context) map[string]any {
	ready, err := c.MailQueue.GetQueueSize(ctx)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	delayed, err := c.MailQueue.GetDelayedQueueSize(ctx)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return map[string]any{"ready_jobs": ready, "delayed_jobs": delayed}
}

// Close releases the infrastructure clients
func (c *Container) Close() {
	if err := c.Mailer.Close(); err != nil {
		logx.Warnf("Failed to close mailer: %v", err)
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	_ = c.DB.Close()
}
