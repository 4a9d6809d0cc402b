package mailer

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ats-scheduler-be/internal/entity"
)

// GoogleCalendarLink builds a prefilled calendar event URL for the interview.
// Date is DD/MM/YYYY and clock is HH:MM; a date that does not parse yields
// an empty link rather than a broken one.
func GoogleCalendarLink(title, date, clock, duration string) string {
	start, err := time.Parse("02/01/2006 15:04", date+" "+clock)
	if err != nil {
		return ""
	}

	minutes := 30
	if fields := strings.Fields(duration); len(fields) > 0 {
		if n, err := strconv.Atoi(fields[0]); err == nil {
			minutes = n
		}
	}
	end := start.Add(time.Duration(minutes) * time.Minute)

	format := func(t time.Time) string {
		return t.UTC().Format("20060102T150405Z")
	}

	return fmt.Sprintf(
		"https://calendar.google.com/calendar/render?action=TEMPLATE&text=%s&dates=%s/%s",
		url.QueryEscape(title), format(start), format(end),
	)
}

// InvitationHTML wraps the generated (or fallback) body and the interview
// details into the branded invitation document.
func InvitationHTML(record *entity.InvitationRecord, body, confirmURL, calendarURL string) string {
	calendarRow := ""
	if calendarURL != "" {
		calendarRow = fmt.Sprintf(`
              <p style="margin: 15px 0 0 0; font-size: 15px;">
                <a href="%s" style="color: #4f46e5;">Ajouter à Google Agenda</a>
              </p>`, calendarURL)
	}

	return strings.TrimSpace(fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f5f7fa;">
  <table role="presentation" style="width: 100%%; border-collapse: collapse;">
    <tr>
      <td align="center" style="padding: 40px 0;">
        <table role="presentation" style="width: 600px; border-collapse: collapse; background-color: #ffffff; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1); border-radius: 8px; overflow: hidden;">

          <tr>
            <td style="background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); padding: 40px 30px; text-align: center;">
              <h1 style="margin: 0; color: #ffffff; font-size: 28px; font-weight: 600;">
                Convocation à un entretien
              </h1>
            </td>
          </tr>

          <tr>
            <td style="padding: 40px 30px;">
              <p style="margin: 0 0 25px 0; font-size: 16px; line-height: 1.6; color: #333333; white-space: pre-line;">%s</p>

              <table role="presentation" style="width: 100%%; border-collapse: collapse; background-color: #eef2ff; border-radius: 8px; margin: 30px 0;">
                <tr>
                  <td style="padding: 25px;">
                    <h2 style="margin: 0 0 20px 0; color: #4f46e5; font-size: 18px; font-weight: 600;">
                      Détails de l'entretien
                    </h2>

                    <p style="margin: 0; font-size: 15px; line-height: 1.8; color: #555555;">
                      <strong>Poste :</strong> %s<br>
                      <strong>Date :</strong> %s<br>
                      <strong>Heure :</strong> %s<br>
                      <strong>Durée :</strong> %s<br>
                      <strong>Modalité :</strong> %s
                    </p>%s
                  </td>
                </tr>
              </table>

              <table role="presentation" style="width: 100%%; border-collapse: collapse; margin: 30px 0;">
                <tr>
                  <td align="center">
                    <a href="%s"
                       style="display: inline-block; padding: 15px 40px; background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); color: #ffffff; text-decoration: none; border-radius: 6px; font-size: 16px; font-weight: 600;">
                      Confirmer ma présence
                    </a>
                  </td>
                </tr>
              </table>

              <p style="margin: 20px 0 0 0; font-size: 15px; line-height: 1.6; color: #666666;">
                Cordialement,<br>
                <strong style="color: #4f46e5;">L'équipe RH BNJ Teammaker</strong>
              </p>
            </td>
          </tr>

          <tr>
            <td style="background-color: #f8f9fa; padding: 30px; text-align: center; border-top: 1px solid #e9ecef;">
              <p style="margin: 0; font-size: 12px; color: #999999;">
                Email automatique envoyé par BNJ Teammaker
              </p>
            </td>
          </tr>

        </table>
      </td>
    </tr>
  </table>
</body>
</html>`,
		body,
		record.PostTitle,
		record.InterviewDate,
		record.InterviewTime,
		record.InterviewDuration,
		record.InterviewLocation,
		calendarRow,
		confirmURL,
	))
}

// ReminderHTML renders the follow-up email from the stored outcome fields.
func ReminderHTML(outcome *entity.DispatchOutcome, confirmURL string) string {
	return strings.TrimSpace(fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f5f7fa;">
  <table role="presentation" style="width: 100%%; border-collapse: collapse;">
    <tr>
      <td align="center" style="padding: 40px 0;">
        <table role="presentation" style="width: 600px; border-collapse: collapse; background-color: #ffffff; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1); border-radius: 8px; overflow: hidden;">

          <tr>
            <td style="background: linear-gradient(135deg, #f59e0b 0%%, #d97706 100%%); padding: 40px 30px; text-align: center;">
              <h1 style="margin: 0; color: #ffffff; font-size: 28px; font-weight: 600;">
                Rappel - Confirmation d'entretien
              </h1>
            </td>
          </tr>

          <tr>
            <td style="padding: 40px 30px;">
              <p style="margin: 0 0 20px 0; font-size: 16px; line-height: 1.6; color: #333333;">
                Bonjour <strong>%s</strong>,
              </p>

              <p style="margin: 0 0 25px 0; font-size: 16px; line-height: 1.6; color: #333333;">
                Nous n'avons pas encore reçu votre confirmation pour l'entretien concernant le poste de <strong>%s</strong>.
              </p>

              <table role="presentation" style="width: 100%%; border-collapse: collapse; background-color: #fff7ed; border-radius: 8px; margin: 30px 0;">
                <tr>
                  <td style="padding: 25px;">
                    <h2 style="margin: 0 0 20px 0; color: #f59e0b; font-size: 18px; font-weight: 600;">
                      Rappel des détails
                    </h2>

                    <p style="margin: 0; font-size: 15px; line-height: 1.8; color: #555555;">
                      <strong>Date :</strong> %s<br>
                      <strong>Heure :</strong> %s<br>
                      <strong>Durée :</strong> %s<br>
                      <strong>Modalité :</strong> %s
                    </p>
                  </td>
                </tr>
              </table>

              <table role="presentation" style="width: 100%%; border-collapse: collapse; margin: 30px 0;">
                <tr>
                  <td align="center">
                    <a href="%s"
                       style="display: inline-block; padding: 15px 40px; background: linear-gradient(135deg, #f59e0b 0%%, #d97706 100%%); color: #ffffff; text-decoration: none; border-radius: 6px; font-size: 16px; font-weight: 600;">
                      Confirmer maintenant
                    </a>
                  </td>
                </tr>
              </table>

              <p style="margin: 25px 0 0 0; font-size: 15px; line-height: 1.6; color: #666666;">
                Merci de nous confirmer votre disponibilité dès que possible.
              </p>

              <p style="margin: 20px 0 0 0; font-size: 15px; line-height: 1.6; color: #666666;">
                Cordialement,<br>
                <strong style="color: #f59e0b;">L'équipe RH BNJ Teammaker</strong>
              </p>
            </td>
          </tr>

          <tr>
            <td style="background-color: #f8f9fa; padding: 30px; text-align: center; border-top: 1px solid #e9ecef;">
              <p style="margin: 0; font-size: 12px; color: #999999;">
                Ceci est un rappel automatique envoyé par BNJ Teammaker
              </p>
            </td>
          </tr>

        </table>
      </td>
    </tr>
  </table>
</body>
</html>`,
		outcome.CandidateName,
		outcome.PostTitle,
		outcome.InterviewDate,
		outcome.InterviewTime,
		outcome.InterviewDuration,
		outcome.InterviewLocation,
		confirmURL,
	))
}
