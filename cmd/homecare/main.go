package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/homecare-scheduler/internal/application"
	"github.com/example/homecare-scheduler/internal/config"
	httptransport "github.com/example/homecare-scheduler/internal/http"
	"github.com/example/homecare-scheduler/internal/notify"
	"github.com/example/homecare-scheduler/internal/persistence/sqlite"
	"github.com/example/homecare-scheduler/internal/scheduling"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	pool, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close database", "error", cerr)
		}
	}()

	if err := pool.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	now := time.Now

	employeeRepo := sqlite.NewEmployeeRepository(pool)
	recipientRepo := sqlite.NewCareRecipientRepository(pool)
	appointmentRepo := sqlite.NewAppointmentRepository(pool)
	availabilityRepo := sqlite.NewAvailabilityRepository(pool)
	notificationRepo := sqlite.NewNotificationRepository(pool)
	templateRepo := sqlite.NewTemplateRepository(pool)

	policy := application.SchedulingPolicy{
		Triggers: scheduling.TriggerPolicy{
			ConfirmationLead: time.Duration(cfg.Policy.ConfirmationLead),
			ReminderLead:     time.Duration(cfg.Policy.ReminderLead),
		},
		DefaultDeliveryMethod: cfg.Policy.DefaultDeliveryMethod,
	}

	schedulingService := application.NewSchedulingService(
		appointmentRepo, employeeRepo, recipientRepo, availabilityRepo, notificationRepo,
		policy, idGenerator, now,
	).WithLogger(logger)
	employeeService := application.NewEmployeeService(employeeRepo, idGenerator, now).WithLogger(logger)
	recipientService := application.NewCareRecipientService(recipientRepo, idGenerator, now).WithLogger(logger)
	availabilityService := application.NewAvailabilityService(availabilityRepo, employeeRepo, idGenerator, now).WithLogger(logger)
	notificationService := application.NewNotificationService(notificationRepo, employeeRepo, policy, idGenerator, now).WithLogger(logger)
	templateService := application.NewTemplateService(templateRepo, idGenerator, now).WithLogger(logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Appointments:   httptransport.NewAppointmentHandler(schedulingService, logger),
		Employees:      httptransport.NewEmployeeHandler(employeeService, schedulingService, logger),
		CareRecipients: httptransport.NewCareRecipientHandler(recipientService, logger),
		Availability:   httptransport.NewAvailabilityHandler(availabilityService, logger),
		Notifications:  httptransport.NewNotificationHandler(notificationService, logger),
		Templates:      httptransport.NewTemplateHandler(templateService, logger),
		Middleware:     []func(http.Handler) http.Handler{httptransport.RequestLogger(logger)},
	})

	sweeper := notify.NewSweeper(
		appointmentRepo, notificationRepo,
		policy.Triggers, policy.DefaultDeliveryMethod,
		idGenerator, now, logger,
	)
	go func() {
		if err := sweeper.Run(ctx, cfg.Policy.SweepSchedule); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("notification sweeper stopped", "error", err)
		}
	}()

	pump := notify.NewPump(notificationRepo, notify.NewLogDispatcher(logger), now, logger)
	go func() {
		if err := pump.Run(ctx, cfg.Policy.SweepSchedule); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("notification pump stopped", "error", err)
		}
	}()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("home care scheduling API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
