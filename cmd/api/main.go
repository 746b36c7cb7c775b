package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"barber-booking/backend/internal/config"
	"barber-booking/backend/internal/domain/availability"
	"barber-booking/backend/internal/domain/booking"
	"barber-booking/backend/internal/domain/news"
	"barber-booking/backend/internal/domain/profile"
	"barber-booking/backend/internal/domain/reservation"
	"barber-booking/backend/internal/domain/schedule"
	"barber-booking/backend/internal/domain/stats"
	"barber-booking/backend/internal/firebase"
	apihttp "barber-booking/backend/internal/http"
	"barber-booking/backend/internal/logger"
	"barber-booking/backend/internal/session"
	"barber-booking/backend/internal/timeslot"
)

func main() {
	cfg := config.Load()
	log := logger.Init(cfg.IsProduction())
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := firebase.NewApp(ctx, cfg)
	if err != nil {
		log.Fatal("firebase app init failed", zap.Error(err))
	}
	authClient, err := firebase.NewAuthClient(ctx, app)
	if err != nil {
		log.Fatal("firebase auth client init failed", zap.Error(err))
	}
	fs, err := firebase.NewFirestoreClient(ctx, app)
	if err != nil {
		log.Fatal("firestore init failed", zap.Error(err))
	}
	defer func() { _ = fs.Close() }()

	grid, err := timeslot.NewGrid(cfg.OpenTime, cfg.CloseTime, cfg.SlotMinutes)
	if err != nil {
		log.Fatal("invalid slot grid config", zap.Error(err))
	}
	engine := availability.NewEngine(grid, cfg.Closed(), cfg.HorizonDays, log)

	// Repositories
	resvRepo := reservation.NewRepo(fs)
	scheduleRepo := schedule.NewRepo(fs)
	profileRepo := profile.NewRepo(fs)
	newsRepo := news.NewRepo(fs)

	// Services
	bookingSvc := booking.NewService(resvRepo, scheduleRepo, engine, log)
	scheduleSvc := schedule.NewService(scheduleRepo, grid)
	profileSvc := profile.NewService(profileRepo)
	newsSvc := news.NewService(newsRepo)
	statsSvc := stats.NewService(resvRepo, scheduleSvc)

	// Live view state, fed by store snapshot streams.
	hub := session.NewHub()
	coord := session.NewCoordinator(engine, hub, cfg.OfferedDates, log)
	coord.Start(ctx, session.Streams{
		Reservations: resvRepo.Watch(ctx),
		BlockedDays:  scheduleRepo.WatchDays(ctx),
		BlockedSlots: scheduleRepo.WatchSlots(ctx),
		News:         newsRepo.WatchLatest(ctx),
	})

	// Rate limiting is optional; without Redis the API runs unlimited.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, rate limiting degraded", zap.Error(err))
		} else {
			log.Info("redis rate limiter enabled", zap.String("addr", cfg.RedisAddr))
		}
	}

	router := apihttp.NewRouter(apihttp.RouterDeps{
		Cfg:         cfg,
		AuthClient:  authClient,
		BookingSvc:  bookingSvc,
		ScheduleSvc: scheduleSvc,
		ProfileSvc:  profileSvc,
		NewsSvc:     newsSvc,
		StatsSvc:    statsSvc,
		Coordinator: coord,
		Hub:         hub,
		Redis:       rdb,
		Log:         log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	go func() {
		log.Info("API listening",
			zap.String("port", cfg.Port),
			zap.String("project", cfg.ProjectID),
			zap.Strings("slots", grid.Labels()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	_ = srv.Shutdown(ctxShutdown)

	cancel()
	coord.Wait()
}
