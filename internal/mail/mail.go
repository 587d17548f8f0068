package mail

import (
	"fmt"
	"log"

	gomail "github.com/wneessen/go-mail"

	"mealcart_back_end/internal/models"
)

// Mailer sends the payment confirmation to the order's delivery email.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewMailer(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (m *Mailer) SendPaymentConfirmation(order *models.Order) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(order.DeliveryDetails.Email); err != nil {
		return err
	}
	msg.Subject("Your order is confirmed")
	msg.SetBodyString(gomail.TypeTextHTML, confirmationHTML(order))

	client, err := gomail.NewClient(m.host,
		gomail.WithPort(m.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthLogin),
		gomail.WithUsername(m.username),
		gomail.WithPassword(m.password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Printf("mail: sending payment confirmation for order %s", order.ID.Hex())
	return client.DialAndSend(msg)
}

func confirmationHTML(order *models.Order) string {
	itemsHTML := ""
	for _, item := range order.CartItems {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d</td>
			</tr>`, item.Name, item.Quantity)
	}

	var total string
	if order.TotalAmount != nil {
		total = fmt.Sprintf("$%.2f", float64(*order.TotalAmount)/100)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Order confirmation</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Thanks for your order, %s!</h2>
		<p>Your payment went through and the restaurant has been notified.</p>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Item</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Qty</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>
		<p>Delivery fee: $%.2f</p>
		<p style="font-weight: bold;">Total charged: %s</p>
		<p>Delivering to: %s, %s</p>
	</div>
</body>
</html>`,
		order.DeliveryDetails.Name,
		itemsHTML,
		float64(order.DeliveryPrice)/100,
		total,
		order.DeliveryDetails.AddressLine1,
		order.DeliveryDetails.City,
	)
}
