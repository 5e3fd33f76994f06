// internal/notification/templates.go

package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

const baseEmailTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            background: linear-gradient(135deg, #c0392b 0%, #8e44ad 100%);
            color: white;
            padding: 30px;
            text-align: center;
            border-radius: 10px 10px 0 0;
        }
        .content {
            background: white;
            padding: 30px;
            border: 1px solid #e0e0e0;
            border-radius: 0 0 10px 10px;
        }
        .button {
            display: inline-block;
            padding: 12px 30px;
            background: linear-gradient(135deg, #c0392b 0%, #8e44ad 100%);
            color: white;
            text-decoration: none;
            border-radius: 5px;
            margin: 20px 0;
        }
        .footer {
            text-align: center;
            padding: 20px;
            color: #666;
            font-size: 14px;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.Title}}</h1>
    </div>
    <div class="content">
        <p>Namaste {{.Name}},</p>
        <p>{{.Body}}</p>
        {{if .ActionURL}}<p><a class="button" href="{{.ActionURL}}">{{.ActionLabel}}</a></p>{{end}}
    </div>
    <div class="footer">
        <p>Sambandh Matrimony</p>
    </div>
</body>
</html>
`

var emailTmpl = template.Must(template.New("email").Parse(baseEmailTemplate))

type emailTemplateData struct {
	Title       string
	Name        string
	Body        string
	ActionURL   string
	ActionLabel string
}

func renderEmail(data *emailTemplateData) (string, error) {
	var buf bytes.Buffer
	if err := emailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func interestReceivedContent(recipientName, senderName, baseURL string) (title, body string, data *emailTemplateData) {
	title = "Someone is interested in your profile"
	body = fmt.Sprintf("%s has expressed interest in your profile. Visit your interests page to view their profile and respond.", senderName)
	data = &emailTemplateData{
		Title:       title,
		Name:        recipientName,
		Body:        body,
		ActionURL:   baseURL + "/interests",
		ActionLabel: "View Interest",
	}
	return title, body, data
}

func interestAcceptedContent(recipientName, accepterName, baseURL string) (title, body string, data *emailTemplateData) {
	title = "Your interest was accepted"
	body = fmt.Sprintf("%s has accepted your interest. You can now start a conversation.", accepterName)
	data = &emailTemplateData{
		Title:       title,
		Name:        recipientName,
		Body:        body,
		ActionURL:   baseURL + "/chat",
		ActionLabel: "Start Chatting",
	}
	return title, body, data
}

func subscriptionActivatedContent(recipientName, planName string, expiresAt time.Time, baseURL string) (title, body string, data *emailTemplateData) {
	title = fmt.Sprintf("Your %s subscription is active", planName)
	body = fmt.Sprintf("Your %s plan is now active and valid until %s. Enjoy your premium benefits.",
		planName, expiresAt.Format("2 January 2006"))
	data = &emailTemplateData{
		Title:       title,
		Name:        recipientName,
		Body:        body,
		ActionURL:   baseURL + "/subscription",
		ActionLabel: "View Subscription",
	}
	return title, body, data
}

func welcomeContent(recipientName, baseURL string) (title, body string, data *emailTemplateData) {
	title = "Welcome to Sambandh"
	body = "Your account is ready. Complete your profile to start receiving match suggestions."
	data = &emailTemplateData{
		Title:       title,
		Name:        recipientName,
		Body:        body,
		ActionURL:   baseURL + "/profile/setup",
		ActionLabel: "Complete Profile",
	}
	return title, body, data
}
