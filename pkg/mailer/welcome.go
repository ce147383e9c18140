package mailer

import (
	"bytes"
	"html/template"
)

// Swedish welcome mail sent after a creator's payment succeeds; mirrors
// the product's onboarding copy.
const welcomeSubject = "Välkommen till Valoris 🎉"

var welcomeTmpl = template.Must(template.New(TemplateWelcome).Parse(`
<div style="font-family:system-ui">
  <h2>Välkommen {{.Name}}!</h2>
  <p>Ditt konto är nu <strong>aktivt efter betalning</strong>.</p>
  <p>Du kan logga in direkt här:</p>
  <p>
    <a href="{{.LoginURL}}" style="display:inline-block;padding:10px 16px;background:#111;color:#fff;border-radius:8px;text-decoration:none">
      Logga in
    </a>
  </p>
  <p style="margin-top:16px;color:#666">/Valoris</p>
</div>
`))

// RenderWelcome renders the welcome template from job data.
func RenderWelcome(data map[string]any) (subject, html string, err error) {
	var buf bytes.Buffer
	if err := welcomeTmpl.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return welcomeSubject, buf.String(), nil
}
