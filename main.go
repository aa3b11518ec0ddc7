// @title           Works MIS API
// @version         1.0
// @description     Irrigation work packages with component milestone allocation and validation.

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @schemes http https
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"worksmis/docs"
	"worksmis/handlers"
	"worksmis/milestone"
	"worksmis/models"
	"worksmis/repository"
	"worksmis/services"
	"worksmis/storage"
	"worksmis/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func CORSConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{
		"http://localhost:9000",
		"http://localhost:8080",
		"http://localhost:3000",
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding", "Accept", "Origin",
		"X-Requested-With", "Authorization", "User-Agent", "Cache-Control",
		"Access-Control-Request-Method", "Access-Control-Request-Headers",
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD", "PATCH"}
	corsConfig.ExposeHeaders = []string{
		"Content-Length", "Content-Type", "Content-Disposition", "X-Total-Count",
	}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}

var cronRunning int32

func safeGo(
	ctx context.Context,
	wg *sync.WaitGroup,
	name string,
	fn func(context.Context) error,
	logger *zap.Logger,
) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Cron job panicked", zap.String("job", name), zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			}
		}()

		if err := fn(ctx); err != nil {
			logger.Error("Cron job failed", zap.String("job", name), zap.Error(err))
		} else {
			logger.Info("Cron job completed successfully", zap.String("job", name))
		}
	}()
}

// runReconciliationAudit re-checks every stored component's milestones.
func runReconciliationAudit(works *repository.WorkPackageRepository, logger *zap.Logger) {
	if !atomic.CompareAndSwapInt32(&cronRunning, 0, 1) {
		logger.Warn("Previous audit still running. Skipping this run.")
		return
	}
	defer atomic.StoreInt32(&cronRunning, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Minute)
	defer cancel()

	var wg sync.WaitGroup
	safeGo(ctx, &wg, "MilestoneReconciliationAudit", func(ctx context.Context) error {
		stats, err := works.ReconcileAll(ctx)
		if err != nil {
			return err
		}
		logger.Info("Milestone reconciliation audit finished",
			zap.Int("checked", stats.Checked),
			zap.Int("mismatched", stats.Mismatched),
			zap.Int("drifted", stats.Drifted),
			zap.Int("updated", stats.Updated),
		)
		return nil
	}, logger)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn("Audit timeout reached, job cancelled")
	}
}

func swaggerHandler() gin.HandlerFunc {
	ui := ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"))
	return func(c *gin.Context) {
		if c.Param("any") == "/doc.json" {
			doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
			if err != nil {
				c.String(http.StatusInternalServerError, `{"error":"swagger doc not found"}`)
				return
			}
			c.Header("Content-Type", "application/json")
			c.String(http.StatusOK, doc)
			return
		}
		ui(c)
	}
}

func main() {
	cfg, envLoaded, err := storage.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := utils.InitLogger()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	if !envLoaded {
		logger.Warn("No .env file found, using process environment")
	}

	utils.SetJWTSecret(cfg.JWTSecret)

	db, err := storage.InitDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	gdb, err := storage.InitGormDB(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize GORM", zap.Error(err))
	}

	if cfg.AdminEmail != "" {
		created, err := repository.SeedAdmin(context.Background(), gdb, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			logger.Fatal("Failed to seed admin user", zap.Error(err))
		}
		if created {
			logger.Info("Seeded admin user", zap.String("email", cfg.AdminEmail))
		}
	}

	periods := milestone.PeriodMapByName(cfg.PeriodMap)
	works := repository.NewWorkPackageRepository(db, gdb, logger)
	units := repository.NewUnitRepository(db, gdb)

	var notifier handlers.WorkPackageNotifier
	if es := services.NewEmailService(cfg); es != nil {
		notifier = es
	} else {
		logger.Info("SMTP not configured, work package emails disabled")
	}

	c := cron.New(
		cron.WithLogger(cron.VerbosePrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))),
	)
	if _, err := c.AddFunc(cfg.AuditSchedule, func() { runReconciliationAudit(works, logger) }); err != nil {
		logger.Fatal("Failed to schedule reconciliation audit", zap.String("schedule", cfg.AuditSchedule), zap.Error(err))
	}
	c.Start()

	r := gin.Default()
	r.Use(cors.New(CORSConfig()))

	// ==================== 1. AUTH ====================
	r.POST("/api/login", handlers.LoginHandler(func(ctx context.Context, email string) (*models.UserGorm, error) {
		return repository.GetUserByEmail(ctx, gdb, email)
	}))

	// ==================== 2. MILESTONE CALCULATOR ====================
	r.GET("/api/milestones/periods", handlers.GetPeriodOptions(periods))
	r.POST("/api/milestones/auto-distribute", handlers.AutoDistributeMilestones(periods))
	r.POST("/api/milestones/validate", handlers.ValidateMilestones(periods))

	api := r.Group("/api", handlers.AuthMiddleware())

	// ==================== 3. WORK PACKAGES ====================
	api.POST("/works", handlers.CreateWorkPackage(works, units, periods, notifier))
	api.GET("/works", handlers.GetAllWorkPackages(works))
	api.GET("/works/:id", handlers.GetWorkPackage(works))
	api.DELETE("/works/:id", handlers.DeleteWorkPackage(works))
	api.POST("/works/:id/components", handlers.AddComponentsAndMilestones(works, units, periods))
	api.GET("/works/:id/components", handlers.GetWorkComponents(works))

	// ==================== 4. EXPORTS ====================
	api.GET("/works/:id/export_excel", handlers.ExportWorkPackageExcel(works))
	api.GET("/works/:id/pdf", handlers.GenerateWorkPackagePDF(works, cfg.PublicBaseURL))
	api.GET("/works/:id/qr", handlers.GenerateWorkPackageQR(works, cfg.PublicBaseURL))

	// ==================== 5. UNITS ====================
	api.POST("/units", handlers.CreateUnit(units))
	api.GET("/units", handlers.GetUnits(units))
	api.GET("/units/:id", handlers.GetUnitByID(units))
	api.PUT("/units/:id", handlers.UpdateUnit(units))
	api.DELETE("/units/:id", handlers.DeleteUnit(units))

	// ==================== 6. SWAGGER ====================
	r.GET("/swagger/*any", swaggerHandler())

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Port),
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("Server listening", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	select {
	case <-c.Stop().Done():
	case <-ctx.Done():
	}

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := closeGorm(gdb); err != nil {
		logger.Warn("Closing GORM connection", zap.Error(err))
	}
	logger.Info("Server exiting")
}

func closeGorm(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("gorm sql handle: %w", err)
	}
	return sqlDB.Close()
}
