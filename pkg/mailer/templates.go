package mailer

// ValidationData feeds the validation-email template
type ValidationData struct {
	FirstName      string
	ValidationCode string
	AppName        string
}

// emailTemplates holds the embedded HTML mail bodies
const emailTemplates = `
{{define "validation-email"}}
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Account validation</title>
</head>
<body style="font-family: sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1>{{.AppName}}</h1>
    <p>Hello {{.FirstName}},</p>
    <p>Thanks for registering. Use the code below to validate your account:</p>
    <p style="font-size: 22px; font-weight: bold; letter-spacing: 1px;">{{.ValidationCode}}</p>
    <p>If you did not create this account, you can ignore this email.</p>
</body>
</html>
{{end}}
`
