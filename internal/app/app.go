package app

import (
	"net/http"

	"trip-planner-go/internal/cache"
	"trip-planner-go/internal/config"
	"trip-planner-go/internal/db"
	accommodationdomain "trip-planner-go/internal/domain/accommodation"
	activitydomain "trip-planner-go/internal/domain/activity"
	attachmentdomain "trip-planner-go/internal/domain/attachment"
	invitedomain "trip-planner-go/internal/domain/invite"
	itinerarydomain "trip-planner-go/internal/domain/itinerary"
	stopdomain "trip-planner-go/internal/domain/stop"
	userdomain "trip-planner-go/internal/domain/user"
	accommodationrepo "trip-planner-go/internal/repository/postgres/accommodation"
	activityrepo "trip-planner-go/internal/repository/postgres/activity"
	attachmentrepo "trip-planner-go/internal/repository/postgres/attachment"
	inviterepo "trip-planner-go/internal/repository/postgres/invite"
	itineraryrepo "trip-planner-go/internal/repository/postgres/itinerary"
	stoprepo "trip-planner-go/internal/repository/postgres/stop"
	userrepo "trip-planner-go/internal/repository/postgres/user"
	"trip-planner-go/internal/session"
	"trip-planner-go/internal/storage/local"
	"trip-planner-go/internal/transport/httpserver"
	"trip-planner-go/internal/transport/httpserver/handler"
	"trip-planner-go/pkg/logger"

	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(dbConn, log); err != nil {
		return nil, err
	}

	objectStore, err := local.NewStore(cfg.Storage.Dir, cfg.Storage.PublicBase)
	if err != nil {
		return nil, err
	}

	queryCache := cache.New(cfg.Cache.StaleTime)
	sessions := session.NewManager(session.NewMemoryStore())

	itineraries := itinerarydomain.NewService(itineraryrepo.NewPostgres(dbConn), queryCache)
	stops := stopdomain.NewService(stoprepo.NewPostgres(dbConn), queryCache)
	accommodations := accommodationdomain.NewService(accommodationrepo.NewPostgres(dbConn), queryCache)
	activities := activitydomain.NewService(activityrepo.NewPostgres(dbConn), queryCache)
	invites := invitedomain.NewService(inviterepo.NewPostgres(dbConn), queryCache, log)
	attachments := attachmentdomain.NewService(attachmentrepo.NewPostgres(dbConn), objectStore, queryCache, log, cfg.Storage.MaxFileSize)
	profiles := userdomain.NewService(userrepo.NewPostgres(dbConn))

	handlers := handler.New(itineraries, stops, accommodations, activities, invites, attachments, sessions, log)
	router := httpserver.NewRouter(cfg, handlers, profiles, log)
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
