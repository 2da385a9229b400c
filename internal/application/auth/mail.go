package auth

import (
	"fmt"
	"html"
)

// otpMailBody renders the verification mail. Kept as plain string assembly:
// the copy is short and the only dynamic pieces are escaped inline.
func otpMailBody(name, page, code string) string {
	greeting := "Hello!"
	if name != "" {
		greeting = fmt.Sprintf("Hello, %s!", html.EscapeString(name))
	}

	welcome := ""
	if page == "signup" {
		welcome = `<p>Thank you for registering with our service. We're excited to have you on board!</p>`
	}

	return fmt.Sprintf(`<body style="margin:0;padding:0;background-color:#f6f6f6;font-family:Arial,sans-serif;">
  <table role="presentation" width="100%%" style="max-width:600px;margin:0 auto;background:#ffffff;">
    <tr><td style="padding:20px 30px;">
      <h1 style="color:#333333;">%s</h1>
      %s
      <p style="color:#666666;">Please find your verification code below. It expires in 5 minutes.</p>
      <p style="background-color:#007bff;color:#ffffff;padding:12px 45px;display:inline-block;font-weight:bold;border-radius:5px;">%s</p>
      <p style="color:#666666;">If you did not request this code, you can ignore this email.</p>
      <p style="color:#999999;font-size:12px;">&copy; Skyfuel. All rights reserved.</p>
    </td></tr>
  </table>
</body>`, greeting, welcome, code)
}
