package services

import (
	"fmt"
	"html"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"supply-portal/config"
	"supply-portal/models"
)

// MailService renders and dispatches the two order notifications: the
// purchasing copy with internal storage codes and the requester copy
// without them.
type MailService struct {
	dialer  *gomail.Dialer
	cfg     *config.Config
	timeout time.Duration
}

func NewMailService(cfg *config.Config) *MailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	return &MailService{dialer: dialer, cfg: cfg, timeout: cfg.RequestTimeout}
}

// SendOrderNotifications dispatches both mails. Any failure comes back as
// a NotificationError; the caller decides that the already-persisted
// order survives it.
func (s *MailService) SendOrderNotifications(order *models.Order) error {
	purchasing := gomail.NewMessage()
	purchasing.SetHeader("From", s.cfg.SMTPFrom)
	purchasing.SetHeader("To", s.cfg.PurchasingMail)
	purchasing.SetHeader("Subject", fmt.Sprintf("Nova comanda de material - %s", order.Department))
	purchasing.SetBody("text/html", PurchasingBody(order))

	requester := gomail.NewMessage()
	requester.SetHeader("From", s.cfg.SMTPFrom)
	requester.SetHeader("To", order.Email)
	requester.SetHeader("Subject", fmt.Sprintf("Confirmació de comanda %s", order.ID))
	requester.SetBody("text/html", RequesterBody(order))

	if err := s.send(purchasing, requester); err != nil {
		return &models.NotificationError{Err: err}
	}
	return nil
}

func (s *MailService) send(messages ...*gomail.Message) error {
	errc := make(chan error, 1)
	go func() {
		errc <- s.dialer.DialAndSend(messages...)
	}()

	select {
	case err := <-errc:
		return err
	case <-time.After(s.timeout):
		return fmt.Errorf("mail dispatch timed out after %s", s.timeout)
	}
}

// PurchasingBody lists every item including SAP, AS400 and storage
// location codes so the warehouse can pick directly from it.
func PurchasingBody(order *models.Order) string {
	var rows strings.Builder
	for _, item := range order.Items {
		rows.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td style=\"text-align:center;\">%d</td></tr>",
			html.EscapeString(item.CodSAP),
			html.EscapeString(item.Descripcion),
			html.EscapeString(item.CodAS400),
			html.EscapeString(item.Ubicacion),
			item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 700px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        table { width: 100%%; border-collapse: collapse; margin: 20px 0; }
        th, td { border: 1px solid #ddd; padding: 8px; font-size: 13px; }
        th { background-color: #1d4ed8; color: white; text-align: left; }
        .meta { background-color: #eff6ff; padding: 15px; border-radius: 8px; margin-bottom: 20px; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <h2>Nova comanda de material</h2>
        <div class="meta">
            <p><strong>Comanda:</strong> %s</p>
            <p><strong>Sol·licitant:</strong> %s (%s)</p>
            <p><strong>Departament:</strong> %s</p>
            <p><strong>Centre de cost:</strong> %s</p>
            <p><strong>Lloc de lliurament:</strong> %s</p>
            <p><strong>Observacions:</strong> %s</p>
        </div>
        <table>
            <tr><th>Codi SAP</th><th>Descripció</th><th>Codi AS400</th><th>Ubicació</th><th>Quantitat</th></tr>
            %s
        </table>
        <div class="footer">
            <p>Missatge generat automàticament pel portal de comandes de material.</p>
        </div>
    </div>
</body>
</html>
	`,
		html.EscapeString(order.ID),
		html.EscapeString(order.FullName),
		html.EscapeString(order.Email),
		html.EscapeString(order.Department),
		html.EscapeString(order.CostCenter),
		html.EscapeString(order.DeliveryLocation),
		html.EscapeString(order.Comments),
		rows.String())
}

// RequesterBody confirms the submission to the user. Storage locations
// are internal and stay out of this copy; the order id is included so
// the user can reference or print it.
func RequesterBody(order *models.Order) string {
	var rows strings.Builder
	for _, item := range order.Items {
		rows.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td>%s</td><td style=\"text-align:center;\">%d</td></tr>",
			html.EscapeString(item.CodSAP),
			html.EscapeString(item.Descripcion),
			item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        table { width: 100%%; border-collapse: collapse; margin: 20px 0; }
        th, td { border: 1px solid #ddd; padding: 8px; font-size: 13px; }
        th { background-color: #1d4ed8; color: white; text-align: left; }
        .order-box { background-color: #eff6ff; padding: 15px; border-radius: 8px; margin: 20px 0; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <h2>Comanda registrada</h2>
        <p>Hola %s,</p>
        <p>La teva comanda de material s'ha registrat correctament.</p>
        <div class="order-box">
            <p><strong>Número de comanda:</strong> %s</p>
            <p><strong>Lloc de lliurament:</strong> %s</p>
        </div>
        <table>
            <tr><th>Codi SAP</th><th>Descripció</th><th>Quantitat</th></tr>
            %s
        </table>
        <p>El departament de compres processarà la comanda tan aviat com sigui possible.</p>
        <div class="footer">
            <p>Missatge generat automàticament. No responguis aquest correu.</p>
        </div>
    </div>
</body>
</html>
	`,
		html.EscapeString(order.FullName),
		html.EscapeString(order.ID),
		html.EscapeString(order.DeliveryLocation),
		rows.String())
}
