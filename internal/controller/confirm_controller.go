package controller

import (
	"fmt"

	"ats-scheduler-be/internal/dto"
	"ats-scheduler-be/internal/pkg/apperror"
	"ats-scheduler-be/internal/pkg/logger"
	"ats-scheduler-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// The confirmation endpoint is opened from an email client, so it answers
// with standalone HTML pages rather than JSON.
type IConfirmController interface {
	RegisterRoutes(r fiber.Router)
	Confirm(ctx *fiber.Ctx) error
}

type confirmController struct {
	statusService service.IStatusService
	log           logger.ILogger
}

func NewConfirmController(statusService service.IStatusService, log logger.ILogger) IConfirmController {
	return &confirmController{
		statusService: statusService,
		log:           log,
	}
}

func (c *confirmController) RegisterRoutes(r fiber.Router) {
	r.Get("/confirm", c.Confirm)
}

func (c *confirmController) Confirm(ctx *fiber.Ctx) error {
	token := ctx.Query("token")
	email := ctx.Query("email")

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)

	if token == "" || email == "" {
		return ctx.Status(fiber.StatusBadRequest).SendString(invalidLinkPage())
	}

	outcome, err := c.statusService.Confirm(ctx.Context(), email, token)
	if err != nil {
		switch {
		case apperror.IsPrecondition(err):
			return ctx.Status(fiber.StatusBadRequest).SendString(alreadyConfirmedPage())
		case apperror.IsNotFound(err):
			return ctx.Status(fiber.StatusBadRequest).SendString(invalidLinkPage())
		default:
			c.log.Error("Confirm", "Confirmation failed", map[string]interface{}{
				"email": email,
				"error": err.Error(),
			})
			return ctx.Status(fiber.StatusInternalServerError).SendString(errorPage())
		}
	}

	return ctx.SendString(successPage(outcome))
}

func invalidLinkPage() string {
	return `<!DOCTYPE html>
<html>
<head>
  <title>Erreur de confirmation</title>
  <style>
    body { font-family: Arial, sans-serif; text-align: center; padding: 50px; }
    .error { color: #dc2626; }
  </style>
</head>
<body>
  <h1 class="error">❌ Lien de confirmation invalide</h1>
  <p>Le lien de confirmation est invalide ou a expiré.</p>
</body>
</html>`
}

func alreadyConfirmedPage() string {
	return `<!DOCTYPE html>
<html>
<head>
  <title>Confirmation déjà effectuée</title>
  <style>
    body { font-family: Arial, sans-serif; text-align: center; padding: 50px; }
    .warning { color: #f59e0b; }
  </style>
</head>
<body>
  <h1 class="warning">⚠️ Confirmation déjà effectuée</h1>
  <p>Vous avez déjà confirmé votre présence à cet entretien.</p>
</body>
</html>`
}

func errorPage() string {
	return `<!DOCTYPE html>
<html>
<head>
  <title>Erreur</title>
  <style>
    body { font-family: Arial, sans-serif; text-align: center; padding: 50px; }
    .error { color: #dc2626; }
  </style>
</head>
<body>
  <h1 class="error">❌ Erreur</h1>
  <p>Une erreur est survenue lors de la confirmation. Veuillez réessayer.</p>
</body>
</html>`
}

func successPage(outcome *dto.OutcomeResponse) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <title>Confirmation réussie</title>
  <style>
    body {
      font-family: Arial, sans-serif;
      text-align: center;
      padding: 50px;
      background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%);
      color: white;
    }
    .success {
      background: white;
      color: #059669;
      padding: 40px;
      border-radius: 12px;
      box-shadow: 0 4px 12px rgba(0,0,0,0.1);
      max-width: 500px;
      margin: 0 auto;
    }
    h1 { margin: 0 0 20px 0; }
    p { margin: 10px 0; color: #4b5563; }
    .details {
      background: #f3f4f6;
      padding: 20px;
      border-radius: 8px;
      margin-top: 20px;
      text-align: left;
    }
  </style>
</head>
<body>
  <div class="success">
    <h1>✅ Confirmation réussie !</h1>
    <p>Merci %s !</p>
    <p>Votre présence à l'entretien pour le poste de <strong>%s</strong> est bien confirmée.</p>
    <div class="details">
      <p><strong>📅 Date :</strong> %s</p>
      <p><strong>🕐 Heure :</strong> %s</p>
    </div>
    <p style="margin-top: 20px; font-size: 14px;">Vous recevrez un email de rappel la veille de l'entretien.</p>
  </div>
</body>
</html>`,
		outcome.CandidateName,
		outcome.PostTitle,
		outcome.InterviewDate,
		outcome.InterviewTime,
	)
}
