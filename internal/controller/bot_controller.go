package controller

import (
	"equibot-be/internal/dto"
	"equibot-be/internal/pkg/apperror"
	"equibot-be/internal/pkg/serverutils"
	"equibot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBotController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
}

type botController struct {
	service service.IBotService
}

func NewBotController(service service.IBotService) IBotController {
	return &botController{service: service}
}

func (c *botController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/bot/v1")
	h.Post("", c.Ask)
}

func (c *botController) Ask(ctx *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewInvalidInput("request body must be valid JSON")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Ask(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
