package main

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Vextroyer/mange/internal/admin"
	"github.com/Vextroyer/mange/internal/auth"
	"github.com/Vextroyer/mange/internal/billing"
	"github.com/Vextroyer/mange/internal/company"
	"github.com/Vextroyer/mange/internal/config"
	"github.com/Vextroyer/mange/internal/database"
	"github.com/Vextroyer/mange/internal/equipment"
	"github.com/Vextroyer/mange/internal/export"
	"github.com/Vextroyer/mange/internal/httputil"
	"github.com/Vextroyer/mange/internal/models"
	"github.com/Vextroyer/mange/internal/repository"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg := config.Load()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}

	repo := repository.New(db, log.Logger)
	engine := billing.NewEngine(repo)
	exporters := export.Default()

	app := fiber.New(fiber.Config{
		ErrorHandler: httputil.ErrorHandler(log.Logger),
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("OK") })

	api := app.Group("/api")

	// Public. Must be registered before the token middleware below; fiber
	// matches routes in registration order.
	api.Post("/user/login/", auth.LoginHandler(repo))
	api.Post("/user/register-admin/", auth.RegisterAdminHandler(repo))

	// Everything below requires a valid token. Mutation of companies and
	// equipment, and all user/group management, additionally require the
	// Admin group.
	protected := api.Group("")
	protected.Use(auth.TokenMiddleware(repo))
	requireAdmin := auth.RequireGroup(models.AdminGroup)

	protected.Get("/user/me", auth.MeHandler())

	// Companies
	protected.Post("/company/", requireAdmin, company.CreateCompanyHandler(repo))
	protected.Get("/company/", company.ListCompaniesHandler(repo))
	protected.Get("/company/:id", company.GetCompanyHandler(repo))
	protected.Put("/company/:id", requireAdmin, company.UpdateCompanyHandler(repo))
	protected.Patch("/company/:id", requireAdmin, company.UpdateCompanyHandler(repo))
	protected.Delete("/company/:id", requireAdmin, company.DeleteCompanyHandler(repo))

	// Billing and consumption reports
	protected.Post("/company/:id/liquidate", billing.LiquidateHandler(repo, engine))
	protected.Get("/company/:id/alerts", billing.AlertsHandler(repo, engine))
	protected.Get("/company/:id/consumption/total", billing.TotalConsumptionHandler(repo, engine))
	protected.Get("/company/:id/consumption/average", billing.AverageConsumptionHandler(repo, engine))
	protected.Get("/company/:id/consumption/predict", billing.PredictConsumptionHandler(repo, engine))

	// Bills are append-only: created through liquidation, read-only here.
	// The fixed paths must be registered before /bill/:id.
	protected.Get("/bill/", billing.ListBillsHandler(repo))
	protected.Get("/bill/over-consumption", billing.OverConsumptionHandler(engine))
	protected.Get("/bill/compare", billing.CompareConsumptionHandler(engine))
	protected.Get("/bill/:id", billing.GetBillHandler(repo))

	// Areas
	protected.Post("/area/", requireAdmin, company.CreateAreaHandler(repo))
	protected.Get("/area/", company.ListAreasHandler(repo))
	protected.Get("/area/:id", company.GetAreaHandler(repo))
	protected.Put("/area/:id", requireAdmin, company.UpdateAreaHandler(repo))
	protected.Patch("/area/:id", requireAdmin, company.UpdateAreaHandler(repo))
	protected.Delete("/area/:id", requireAdmin, company.DeleteAreaHandler(repo))

	// Equipment
	protected.Post("/equipment/", requireAdmin, equipment.CreateEquipmentHandler(repo))
	protected.Get("/equipment/", equipment.ListEquipmentHandler(repo))
	protected.Get("/equipment/:id", equipment.GetEquipmentHandler(repo))
	protected.Put("/equipment/:id", requireAdmin, equipment.UpdateEquipmentHandler(repo))
	protected.Patch("/equipment/:id", requireAdmin, equipment.UpdateEquipmentHandler(repo))
	protected.Delete("/equipment/:id", requireAdmin, equipment.DeleteEquipmentHandler(repo))

	// Users and groups
	protected.Post("/user/", requireAdmin, admin.CreateUserHandler(repo))
	protected.Get("/user/", requireAdmin, admin.ListUsersHandler(repo))
	protected.Get("/user/:id", requireAdmin, admin.GetUserHandler(repo))
	protected.Put("/user/:id", requireAdmin, admin.UpdateUserHandler(repo))
	protected.Patch("/user/:id", requireAdmin, admin.UpdateUserHandler(repo))
	protected.Delete("/user/:id", requireAdmin, admin.DeleteUserHandler(repo))
	protected.Post("/group/", requireAdmin, admin.CreateGroupHandler(repo))
	protected.Get("/group/", requireAdmin, admin.ListGroupsHandler(repo))
	protected.Get("/group/:id", requireAdmin, admin.GetGroupHandler(repo))
	protected.Put("/group/:id", requireAdmin, admin.UpdateGroupHandler(repo))
	protected.Patch("/group/:id", requireAdmin, admin.UpdateGroupHandler(repo))
	protected.Delete("/group/:id", requireAdmin, admin.DeleteGroupHandler(repo))
	protected.Post("/group/:id/users", requireAdmin, admin.AddMemberHandler(repo))

	// Report exporters
	protected.Get("/plugin/", export.ListExportersHandler(exporters))
	protected.Post("/plugin/:name/", export.ExportHandler(exporters))

	log.Info().Str("port", cfg.HTTPPort).Msg("api listening")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal().Err(err).Msg("server exit")
	}
}
