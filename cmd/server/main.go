package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	attendanceapp "github.com/classdesk/backend/internal/application/attendance"
	billingapp "github.com/classdesk/backend/internal/application/billing"
	performanceapp "github.com/classdesk/backend/internal/application/performance"
	reportingapp "github.com/classdesk/backend/internal/application/reporting"
	studentapp "github.com/classdesk/backend/internal/application/student"
	"github.com/classdesk/backend/internal/infrastructure/cache"
	"github.com/classdesk/backend/internal/infrastructure/config"
	"github.com/classdesk/backend/internal/infrastructure/logger"
	"github.com/classdesk/backend/internal/infrastructure/persistence"
	"github.com/classdesk/backend/internal/interfaces/http/handler"
	"github.com/classdesk/backend/internal/interfaces/http/middleware"
	"github.com/classdesk/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ClassDesk Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Report cache: Redis when configured, in-memory otherwise
	cacheFactory := cache.NewReportCacheFactory(cfg.Redis, cfg.Cache.SummaryTTL, cache.WithLogger(log))
	var reportCache cache.ReportCache
	if cfg.Cache.Backend == "redis" {
		reportCache, err = cacheFactory.CreateCache()
		if err != nil {
			log.Fatal("Failed to create report cache", zap.Error(err))
		}
	} else {
		reportCache = cacheFactory.CreateInMemoryCache()
	}
	defer func() {
		if err := reportCache.Close(); err != nil {
			log.Error("Error closing report cache", zap.Error(err))
		}
	}()
	log.Info("Report cache ready",
		zap.String("backend", cfg.Cache.Backend),
		zap.Duration("summary_ttl", cfg.Cache.SummaryTTL),
	)

	// Initialize repositories
	studentRepo := persistence.NewGormStudentRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	attendanceRepo := persistence.NewGormAttendanceRepository(db.DB)
	examRepo := persistence.NewGormExamRepository(db.DB)
	performanceRecordRepo := persistence.NewGormPerformanceRecordRepository(db.DB)

	// Initialize application services
	studentService := studentapp.NewStudentService(studentRepo, reportCache)
	paymentService := billingapp.NewPaymentService(paymentRepo, studentRepo, db, reportCache)
	attendanceService := attendanceapp.NewService(attendanceRepo)
	performanceService := performanceapp.NewService(examRepo, performanceRecordRepo)
	reportService := reportingapp.NewReportService(
		studentRepo, attendanceRepo, examRepo, paymentRepo,
		reportCache, cfg.Cache.SummaryTTL,
	)

	// Initialize HTTP handlers
	studentHandler := handler.NewStudentHandler(studentService)
	catalogHandler := handler.NewCatalogHandler(studentService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	performanceHandler := handler.NewPerformanceHandler(performanceService)
	reportHandler := handler.NewReportHandler(reportService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Configure request validation to report JSON field names
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health and readiness endpoints (outside API versioning)
	engine.GET("/health", healthHandler(db, log))
	engine.GET("/ready", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Student domain (enrollment, fee plans, ledgers)
	studentRoutes := router.NewDomainGroup("students", "/students")
	studentRoutes.POST("", studentHandler.Create)
	studentRoutes.GET("", studentHandler.List)
	studentRoutes.GET("/:id", studentHandler.Get)
	studentRoutes.PUT("/:id", studentHandler.Update)
	studentRoutes.DELETE("/:id", studentHandler.Delete)
	studentRoutes.GET("/:id/ledger", studentHandler.GetLedger)
	// Installment plan management
	studentRoutes.GET("/:id/installments", studentHandler.GetInstallments)
	studentRoutes.PUT("/:id/installments", studentHandler.ReplaceInstallments)
	studentRoutes.POST("/:id/installments/rebuild", studentHandler.RebuildInstallments)
	studentRoutes.POST("/:id/installments/append", studentHandler.AppendInstallment)
	// Payments nested under the student
	studentRoutes.POST("/:id/payments", paymentHandler.RecordPayment)
	studentRoutes.GET("/:id/payments", paymentHandler.ListByStudent)
	// Attendance and exam results per student
	studentRoutes.GET("/:id/attendance", attendanceHandler.ListByStudent)
	studentRoutes.GET("/:id/performance", performanceHandler.ListResultsByStudent)

	// Payment domain (cross-student queries)
	paymentRoutes := router.NewDomainGroup("payments", "/payments")
	paymentRoutes.GET("", paymentHandler.List)
	paymentRoutes.GET("/recent", paymentHandler.Recent)
	paymentRoutes.GET("/:id", paymentHandler.Get)

	// Attendance domain
	attendanceRoutes := router.NewDomainGroup("attendance", "/attendance")
	attendanceRoutes.POST("/bulk", attendanceHandler.BulkMark)
	attendanceRoutes.GET("", attendanceHandler.List)
	attendanceRoutes.GET("/by-date", attendanceHandler.ListByDate)
	attendanceRoutes.DELETE("/:id", attendanceHandler.Delete)

	// Exam scheduling and results
	examRoutes := router.NewDomainGroup("exams", "/exams")
	examRoutes.POST("", performanceHandler.CreateExam)
	examRoutes.GET("", performanceHandler.ListExams)
	examRoutes.GET("/:id", performanceHandler.GetExam)
	examRoutes.PUT("/:id/reschedule", performanceHandler.RescheduleExam)
	examRoutes.DELETE("/:id", performanceHandler.DeleteExam)

	// Exam results as their own collection
	performanceRoutes := router.NewDomainGroup("performance", "/performance")
	performanceRoutes.POST("", performanceHandler.RecordResult)
	performanceRoutes.GET("", performanceHandler.ListResults)
	performanceRoutes.DELETE("/:id", performanceHandler.DeleteResult)

	// Reports
	reportRoutes := router.NewDomainGroup("reports", "/reports")
	reportRoutes.GET("/summary", reportHandler.FeeSummary)
	reportRoutes.GET("/attendance", reportHandler.AttendanceSummary)
	reportRoutes.GET("/dashboard", reportHandler.Dashboard)
	reportRoutes.GET("/reminders", reportHandler.Reminders)

	// Fixed academic catalog
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.GET("/categories", catalogHandler.ListCategories)
	catalogRoutes.GET("/courses", catalogHandler.ListCourses)
	catalogRoutes.GET("/category-change", catalogHandler.CategoryChange)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	// Register all domain groups
	r.Register(studentRoutes).
		Register(paymentRoutes).
		Register(attendanceRoutes).
		Register(examRoutes).
		Register(performanceRoutes).
		Register(reportRoutes).
		Register(catalogRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
