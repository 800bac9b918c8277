package controller

import (
	"equibot-be/internal/dto"
	"equibot-be/internal/pkg/apperror"
	"equibot-be/internal/pkg/serverutils"
	"equibot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IIngestController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
	ListLocal(ctx *fiber.Ctx) error
	ListRemote(ctx *fiber.Ctx) error
	DeleteTenant(ctx *fiber.Ctx) error
	DeleteDocument(ctx *fiber.Ctx) error
	DeleteTenantRemote(ctx *fiber.Ctx) error
	DeleteDocumentRemote(ctx *fiber.Ctx) error
}

type ingestController struct {
	service service.IIngestService
}

func NewIngestController(service service.IIngestService) IIngestController {
	return &ingestController{service: service}
}

func (c *ingestController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ingest/v1")
	h.Post("", c.Ingest)
	h.Get(":tenantId", c.ListLocal)
	h.Get(":tenantId/remote", c.ListRemote)
	h.Delete(":tenantId", c.DeleteTenant)
	h.Delete(":tenantId/remote", c.DeleteTenantRemote)
	h.Delete(":tenantId/:docId", c.DeleteDocument)
	h.Delete(":tenantId/:docId/remote", c.DeleteDocumentRemote)
}

func (c *ingestController) Ingest(ctx *fiber.Ctx) error {
	var req dto.IngestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewInvalidInput("request body must be valid JSON")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Ingest(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

// ListLocal serves the registry's view. It may diverge from the remote index
// after a partial ingestion failure; that divergence is observable on purpose.
func (c *ingestController) ListLocal(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.ListLocal(ctx.Params("tenantId")))
}

func (c *ingestController) ListRemote(ctx *fiber.Ctx) error {
	docs, err := c.service.ListRemote(ctx.Context(), ctx.Params("tenantId"))
	if err != nil {
		return err
	}
	return ctx.JSON(docs)
}

func (c *ingestController) DeleteTenant(ctx *fiber.Ctx) error {
	c.service.DeleteTenant(ctx.Params("tenantId"))
	return ctx.JSON(dto.DeleteResponse{Status: "deleted"})
}

func (c *ingestController) DeleteDocument(ctx *fiber.Ctx) error {
	c.service.DeleteDocument(ctx.Params("tenantId"), ctx.Params("docId"))
	return ctx.JSON(dto.DeleteResponse{Status: "deleted"})
}

func (c *ingestController) DeleteTenantRemote(ctx *fiber.Ctx) error {
	if err := c.service.DeleteTenantRemote(ctx.Context(), ctx.Params("tenantId")); err != nil {
		return err
	}
	return ctx.JSON(dto.DeleteResponse{Status: "deleted"})
}

func (c *ingestController) DeleteDocumentRemote(ctx *fiber.Ctx) error {
	if err := c.service.DeleteDocumentRemote(ctx.Context(), ctx.Params("tenantId"), ctx.Params("docId")); err != nil {
		return err
	}
	return ctx.JSON(dto.DeleteResponse{Status: "deleted"})
}
