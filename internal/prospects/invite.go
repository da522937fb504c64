package prospects

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"

	"github.com/angelmondragon/partnerhub-backend/pkg/db/models"
	"github.com/angelmondragon/partnerhub-backend/pkg/email"
)

const inviteSubject = "You're invited to the Partner Hub portal"

var inviteHTML = template.Must(template.New("invite").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1a1a1a;">
<p>Hi {{.ContactName}},</p>
<p>We'd love to have {{.CompanyName}} join our partner network. Create your portal account to start your application:</p>
<p><a href="{{.Link}}">Open the Partner Hub</a></p>
<p>If the button does not work, paste this link into your browser:<br>{{.Link}}</p>
</body>
</html>`))

type inviteData struct {
	ContactName string
	CompanyName string
	Link        string
}

// buildInvite renders the portal invitation for prospect. The sign-up link
// carries the prospect id and email so the portal can prefill the form.
func buildInvite(prospect *models.Prospect, baseURL string) (email.Message, error) {
	link, err := inviteLink(baseURL, prospect)
	if err != nil {
		return email.Message{}, err
	}
	data := inviteData{
		ContactName: prospect.ContactName,
		CompanyName: prospect.CompanyName,
		Link:        link,
	}
	var buf bytes.Buffer
	if err := inviteHTML.Execute(&buf, data); err != nil {
		return email.Message{}, fmt.Errorf("render invite: %w", err)
	}
	text := fmt.Sprintf("Hi %s,\n\nWe'd love to have %s join our partner network. Create your portal account here:\n%s\n",
		data.ContactName, data.CompanyName, link)
	return email.Message{
		To:      prospect.Email,
		Subject: inviteSubject,
		HTML:    buf.String(),
		Text:    text,
	}, nil
}

func inviteLink(baseURL string, prospect *models.Prospect) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid invite url %q", baseURL)
	}
	q := u.Query()
	q.Set("prospect", prospect.ID.String())
	q.Set("email", prospect.Email)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
