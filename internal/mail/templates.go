package mail

import (
	"bytes"
	htmltpl "html/template"
	texttpl "text/template"
)

var verificationHTML = htmltpl.Must(htmltpl.New("verify").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Welcome, {{.Name}}</h2>
  <p>Please confirm your email address to activate your account.</p>
  <p><a href="{{.Link}}" style="background:#1f4e79;color:#fff;padding:10px 18px;text-decoration:none;border-radius:4px;">Verify email</a></p>
  <p>The link expires in {{.ExpiresIn}}.</p>
  <p style="font-size:12px;color:#777;">If you did not create an account, ignore this message.</p>
</body>
</html>`))

var verificationText = texttpl.Must(texttpl.New("verify").Parse(`Welcome, {{.Name}}

Please confirm your email address to activate your account:
{{.Link}}

The link expires in {{.ExpiresIn}}.
If you did not create an account, ignore this message.
`))

type VerificationData struct {
	Name      string
	Link      string
	ExpiresIn string
}

func VerificationMessage(to string, data VerificationData) (Message, error) {
	var html, text bytes.Buffer
	if err := verificationHTML.Execute(&html, data); err != nil {
		return Message{}, err
	}
	if err := verificationText.Execute(&text, data); err != nil {
		return Message{}, err
	}
	return Message{
		To:      to,
		Subject: "Verify your email address",
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}

// NotificationMessage is the plain email copy of an in-app notification.
func NotificationMessage(to, title, body string) Message {
	return Message{
		To:      to,
		Subject: title,
		Text:    body + "\n",
	}
}
