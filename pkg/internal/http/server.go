package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/devtales-app/backend/pkg/internal/auth"
	"github.com/devtales-app/backend/pkg/internal/http/admin"
	"github.com/devtales-app/backend/pkg/internal/http/api"
)

// IReader verifies bearer tokens; set during boot, nil disables auth paths.
var IReader *auth.TokenReader

type App struct {
	app *fiber.App
}

func NewServer() *App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		ServerHeader:          "DevTales.Backend",
		AppName:               "DevTales.Backend",
		ProxyHeader:           fiber.HeaderXForwardedFor,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		BodyLimit:             viper.GetInt("hard_body_limit"),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowCredentials: false,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Use(authMiddleware)

	api.MapAPIs(app, "/api")
	admin.MapControllers(app, "/admin")

	return &App{app}
}

// Fiber returns the underlying router, mostly for tests.
func (v *App) Fiber() *fiber.App {
	return v.app
}

func (v *App) Listen() {
	if err := v.app.Listen(viper.GetString("bind")); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting server...")
	}
}
