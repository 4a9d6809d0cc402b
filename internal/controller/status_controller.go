package controller

import (
	"ats-scheduler-be/internal/dto"
	"ats-scheduler-be/internal/pkg/serverutils"
	"ats-scheduler-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const defaultOutcomeLimit = 20

type IStatusController interface {
	RegisterRoutes(r fiber.Router, sweepAuth fiber.Handler)
	UpdateStatus(ctx *fiber.Ctx) error
	ListOutcomes(ctx *fiber.Ctx) error
	RunSweep(ctx *fiber.Ctx) error
}

type statusController struct {
	statusService service.IStatusService
}

func NewStatusController(statusService service.IStatusService) IStatusController {
	return &statusController{
		statusService: statusService,
	}
}

func (c *statusController) RegisterRoutes(r fiber.Router, sweepAuth fiber.Handler) {
	h := r.Group("/status/v1")
	h.Post("/update", c.UpdateStatus)
	h.Get("/outcomes", c.ListOutcomes)

	sweep := r.Group("/sweep/v1")
	sweep.Use(sweepAuth)
	sweep.Post("/reminders", c.RunSweep)
}

func (c *statusController) UpdateStatus(ctx *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.statusService.UpdateStatus(ctx.Context(), req.Email, req.Status)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update status", res))
}

func (c *statusController) ListOutcomes(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", defaultOutcomeLimit)

	res, err := c.statusService.ListOutcomes(ctx.Context(), limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list outcomes", res))
}

func (c *statusController) RunSweep(ctx *fiber.Ctx) error {
	res, err := c.statusService.RunReminderSweep(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success run reminder sweep", res))
}
