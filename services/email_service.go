package services

import (
	"bytes"
	"fmt"
	"html/template"
	"mime"
	"net/smtp"
	"strings"
	"time"

	"worksmis/milestone"
	"worksmis/models"
	"worksmis/storage"

	"golang.org/x/net/html"
)

// convertHTMLToText converts HTML content to plain text for the text/plain alternative.
func convertHTMLToText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}

	var text strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if s := strings.Join(strings.Fields(n.Data), " "); s != "" {
				if cur := text.String(); cur != "" && !strings.HasSuffix(cur, "\n") && !strings.HasSuffix(cur, " ") {
					text.WriteString(" ")
				}
				text.WriteString(s)
			}
		case html.ElementNode:
			switch n.Data {
			case "style", "script", "head":
				return
			case "p", "div", "br", "h1", "h2", "h3", "h4", "h5", "h6", "table", "tr":
				text.WriteString("\n")
			case "li":
				text.WriteString("- ")
			case "td", "th":
				text.WriteString(" | ")
			}
		}

		for child := n.FirstChild; child != nil; child = child.NextSibling {
			extractText(child)
		}
	}
	extractText(doc)

	result := text.String()
	for strings.Contains(result, "\n\n\n") {
		result = strings.ReplaceAll(result, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(result)
}

var workCreatedTemplate = template.Must(template.New("work_created").Parse(`<html><body>
<h2>Work package {{.Ref}} created</h2>
<p>{{.WorkName}} ({{.Scheme}}) was registered by {{.CreatedBy}} on {{.Date}}.</p>
<p>Period: {{.Period}} months, {{.Count}} milestone(s).</p>
<table>
<tr><th>Component</th><th>Unit</th><th>Total</th><th>Milestones</th></tr>
{{range .Components}}<tr><td>{{.Name}}</td><td>{{.Unit}}</td><td>{{.Total}}</td><td>{{.Details}}</td></tr>
{{end}}</table>
{{if .Link}}<p><a href="{{.Link}}">Open work package</a></p>{{end}}
</body></html>`))

type emailComponent struct {
	Name, Unit, Total, Details string
}

type workCreatedData struct {
	Ref, WorkName, Scheme, CreatedBy, Date, Link string

	Period, Count int
	Components    []emailComponent
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService sends work package notifications over SMTP.
type EmailService struct {
	host       string
	port       string
	user       string
	pass       string
	from       string
	recipients []string
	baseURL    string
	send       sendFunc
}

// NewEmailService returns nil when SMTP or recipients are not configured.
func NewEmailService(cfg *storage.Config) *EmailService {
	if cfg.SMTPHost == "" || len(cfg.NotifyEmails) == 0 {
		return nil
	}
	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &EmailService{
		host:       cfg.SMTPHost,
		port:       cfg.SMTPPort,
		user:       cfg.SMTPUser,
		pass:       cfg.SMTPPassword,
		from:       from,
		recipients: cfg.NotifyEmails,
		baseURL:    cfg.PublicBaseURL,
		send:       smtp.SendMail,
	}
}

func (es *EmailService) renderWorkCreated(wp models.WorkPackageGorm, comps []milestone.Component) (string, string, error) {
	data := workCreatedData{
		Ref:       wp.ReferenceCode,
		WorkName:  wp.WorkName,
		Scheme:    wp.SchemeName,
		CreatedBy: wp.CreatedBy,
		Date:      time.Now().Format("02-01-2006"),
		Period:    wp.PeriodMonths,
		Count:     wp.MilestoneCount,
	}
	if es.baseURL != "" {
		data.Link = fmt.Sprintf("%s/api/works/%d", es.baseURL, wp.ID)
	}
	for _, c := range comps {
		data.Components = append(data.Components, emailComponent{
			Name:    c.Name,
			Unit:    c.Unit,
			Total:   c.Total.StringFixed(2),
			Details: milestone.FormatDetails(c),
		})
	}

	var buf bytes.Buffer
	if err := workCreatedTemplate.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("failed to render email: %w", err)
	}
	subject := fmt.Sprintf("Work package %s created: %s", wp.ReferenceCode, wp.WorkName)
	return subject, buf.String(), nil
}

var headerBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// encodeSubject folds line breaks out of the subject and Q-encodes non-ASCII text.
func encodeSubject(subject string) string {
	return mime.QEncoding.Encode("utf-8", headerBreaks.Replace(subject))
}

// buildMessage assembles a multipart/alternative message with text and HTML parts.
func (es *EmailService) buildMessage(subject, htmlBody string) []byte {
	boundary := fmt.Sprintf("worksmis-%d", time.Now().UnixNano())
	headers := []string{
		"From: " + es.from,
		"To: " + strings.Join(es.recipients, ", "),
		"Subject: " + encodeSubject(subject),
		"MIME-Version: 1.0",
		"Content-Type: multipart/alternative; boundary=" + boundary,
		"",
		"--" + boundary,
		"Content-Type: text/plain; charset=UTF-8",
		"",
		convertHTMLToText(htmlBody),
		"--" + boundary,
		"Content-Type: text/html; charset=UTF-8",
		"",
		htmlBody,
		"--" + boundary + "--",
	}
	return []byte(strings.Join(headers, "\r\n") + "\r\n")
}

// WorkPackageCreated emails the configured recipients a summary of the new work package.
func (es *EmailService) WorkPackageCreated(wp models.WorkPackageGorm, comps []milestone.Component) error {
	subject, body, err := es.renderWorkCreated(wp, comps)
	if err != nil {
		return err
	}

	var auth smtp.Auth
	if es.user != "" {
		auth = smtp.PlainAuth("", es.user, es.pass, es.host)
	}
	addr := es.host + ":" + es.port
	if err := es.send(addr, auth, es.from, es.recipients, es.buildMessage(subject, body)); err != nil {
		return fmt.Errorf("failed to send email to %v: %w", es.recipients, err)
	}
	return nil
}
