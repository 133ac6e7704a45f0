package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/distrisur/gestion-api/internal/application/auth"
	"github.com/distrisur/gestion-api/internal/application/comandas"
	"github.com/distrisur/gestion-api/internal/application/documentos"
	"github.com/distrisur/gestion-api/internal/infrastructure/postgres"
	httpRouter "github.com/distrisur/gestion-api/internal/interfaces/http"
	"github.com/distrisur/gestion-api/pkg/config"
	"github.com/distrisur/gestion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	docRepo := postgres.NewDocumentoRepository(pool)
	reservaRepo := postgres.NewReservaRepository(pool)
	productoRepo := postgres.NewProductoRepository(pool)
	proveedorRepo := postgres.NewProveedorRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	comandaRepo := postgres.NewComandaRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)

	docTxRunner := postgres.NewDocumentoTxRunner(pool)
	comandaTxRunner := postgres.NewComandaTxRunner(pool)

	ttl := time.Duration(cfg.Reservas.TTLMinutos) * time.Minute
	crearDocumentoUC := documentos.NewCrearDocumentoUseCase(docTxRunner, proveedorRepo, productoRepo)
	documentoUC := documentos.NewDocumentoUseCase(docRepo, productoRepo)
	reservarNumeroUC := documentos.NewReservarNumeroUseCase(docRepo, reservaRepo, ttl)
	crearComandaUC := comandas.NewCrearComandaUseCase(comandaTxRunner, clienteRepo, productoRepo)
	comandaUC := comandas.NewComandaUseCase(comandaRepo)
	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestión API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CrearDocumento: crearDocumentoUC,
		DocumentoUC:    documentoUC,
		ReservarNumero: reservarNumeroUC,
		CrearComanda:   crearComandaUC,
		ComandaUC:      comandaUC,
		AuthUC:         authUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	// Barrido periódico de reservas vencidas. Las reservas también se filtran
	// por vencimiento al leerlas, así que el barrido solo recupera espacio.
	sweepCtx, cancelSweep := context.WithCancel(ctx)
	defer cancelSweep()
	go func() {
		interval := time.Duration(cfg.Reservas.SweepIntervalMinutos) * time.Minute
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				n, err := reservaRepo.LiberarExpiradas(sweepCtx, time.Now())
				if err != nil {
					log.Error().Err(err).Msg("barrido de reservas vencidas")
					continue
				}
				if n > 0 {
					log.Info().Int64("liberadas", n).Msg("reservas vencidas liberadas")
				}
			}
		}
	}()

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
