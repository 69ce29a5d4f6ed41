package main

import (
	"context"
	"net/http"
	"psiagenda/cmd/internal/config"
	"psiagenda/cmd/internal/domain/mongodb"
	mongorepo "psiagenda/cmd/internal/domain/mongodb/repository"
	"psiagenda/cmd/internal/domain/sqlite"
	sqliterepo "psiagenda/cmd/internal/domain/sqlite/repository"
	"psiagenda/cmd/internal/routes"
	"psiagenda/cmd/internal/service"
	"psiagenda/cmd/internal/utils/validators"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration: ", err)
	}
	log.SetLevel(cfg.LogLevel)

	validate := validators.New()

	apptRepo, err := openRepository(cfg)
	if err != nil {
		log.Fatal("failed to initialize database: ", err)
	}

	// Getting services
	apptService := service.NewAppointmentService(apptRepo, validate)

	// Getting routes
	apptRoutes := routes.NewAppointmentDefault(apptService)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	api := e.Group(cfg.APIPrefix)
	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	// Appointments
	apptRoutes.Register(api, cfg.AuthSecret)

	log.Infof("listening on :%s%s", cfg.Port, cfg.APIPrefix)
	err = e.Start(":" + cfg.Port)
	if err != nil && err != http.ErrServerClosed {
		e.Logger.Fatal(err)
	}
}

func openRepository(cfg *config.Config) (service.AppointmentRepository, error) {
	if cfg.UsesMongo() {
		db, err := mongodb.Init(context.Background(), cfg.DatabaseURI, cfg.DatabaseName)
		if err != nil {
			return nil, err
		}
		log.Infof("using mongodb database %s", cfg.DatabaseName)
		return mongorepo.NewAppointmentRepository(db), nil
	}

	db, err := sqlite.Init(cfg.DatabaseURI)
	if err != nil {
		return nil, err
	}
	log.Infof("using sqlite database %s", cfg.DatabaseURI)
	return sqliterepo.NewAppointmentRepository(db), nil
}
