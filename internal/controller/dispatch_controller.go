package controller

import (
	"ats-scheduler-be/internal/dto"
	"ats-scheduler-be/internal/entity"
	"ats-scheduler-be/internal/pkg/serverutils"
	"ats-scheduler-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDispatchController interface {
	RegisterRoutes(r fiber.Router)
	SendInvitation(ctx *fiber.Ctx) error
	SendReminder(ctx *fiber.Ctx) error
}

type dispatchController struct {
	dispatchService service.IDispatchService
}

func NewDispatchController(dispatchService service.IDispatchService) IDispatchController {
	return &dispatchController{
		dispatchService: dispatchService,
	}
}

func (c *dispatchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dispatch/v1")
	h.Post("/invitation", c.SendInvitation)
	h.Post("/reminder", c.SendReminder)
}

func (c *dispatchController) SendInvitation(ctx *fiber.Ctx) error {
	var req dto.SendInvitationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	record := &entity.InvitationRecord{
		CandidateName:     req.CandidateName,
		CandidateEmail:    req.CandidateEmail,
		PostTitle:         req.PostTitle,
		InterviewDate:     req.InterviewDate,
		InterviewTime:     req.InterviewTime,
		InterviewDuration: req.InterviewDuration,
		InterviewLocation: req.InterviewLocation,
	}

	outcome, err := c.dispatchService.SendInvitation(ctx.Context(), record)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send invitation", dto.SendInvitationResponse{
		Success:   true,
		OutcomeId: outcome.Id,
	}))
}

func (c *dispatchController) SendReminder(ctx *fiber.Ctx) error {
	var req dto.SendReminderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	count, err := c.dispatchService.SendReminder(ctx.Context(), req.Email)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send reminder", dto.SendReminderResponse{
		Success:       true,
		ReminderCount: count,
	}))
}
