package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/distrisur/gestion-api/internal/application/auth"
	"github.com/distrisur/gestion-api/internal/application/comandas"
	"github.com/distrisur/gestion-api/internal/application/documentos"
	"github.com/distrisur/gestion-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CrearDocumento *documentos.CrearDocumentoUseCase
	DocumentoUC    *documentos.DocumentoUseCase
	ReservarNumero *documentos.ReservarNumeroUseCase
	CrearComanda   *comandas.CrearComandaUseCase
	ComandaUC      *comandas.ComandaUseCase
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Documentos (protegido)
	docs := protected.Group("/documentos")
	docHandler := NewDocumentoHandler(deps.CrearDocumento, deps.DocumentoUC, deps.ReservarNumero)
	docs.Post("/", docHandler.Create)
	docs.Post("/reservar-numero", docHandler.ReservarNumero)
	docs.Get("/", docHandler.List)
	docs.Get("/:id", docHandler.GetByID)
	docs.Put("/:id", docHandler.Update)
	docs.Delete("/:id", RequireRole(entity.RolAdmin, entity.RolDeposito), docHandler.Deactivate)

	// Comandas (protegido)
	cmds := protected.Group("/comandas")
	comandaHandler := NewComandaHandler(deps.CrearComanda, deps.ComandaUC)
	cmds.Post("/", comandaHandler.Create)
	cmds.Get("/", comandaHandler.List)
	cmds.Get("/:id", comandaHandler.GetByID)
	cmds.Delete("/:id", RequireRole(entity.RolAdmin), comandaHandler.Deactivate)
}
