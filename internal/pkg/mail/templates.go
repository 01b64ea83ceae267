package mail

import (
	"bytes"
	"fmt"
	"html/template"
)

// ClaimStatusData fills the claim status notification template.
type ClaimStatusData struct {
	HostName    string
	VehicleName string
	BookingCode string
	ClaimType   string
	Status      string
	Reason      string
}

var claimStatusTpl = template.Must(template.New("claim_status").Parse(`<!DOCTYPE html>
<html>
<body style="font-family:sans-serif;background:#f5f5f5;padding:20px">
<div style="max-width:600px;margin:0 auto;background:#fff;border-radius:8px;padding:24px">
  <h2 style="color:#333">Claim update for {{.VehicleName}}</h2>
  <p>Hi {{.HostName}},</p>
  <p>The {{.ClaimType}} claim on booking <strong>{{.BookingCode}}</strong> is now
  <strong>{{.Status}}</strong>.</p>
  {{if .Reason}}<p>Notes: {{.Reason}}</p>{{end}}
  <p>While a claim is open the vehicle cannot be edited, reactivated or removed.</p>
</div>
</body>
</html>`))

// SendClaimStatus emails a host about a claim status change.
func (s *Sender) SendClaimStatus(to string, data ClaimStatusData) error {
	var buf bytes.Buffer
	if err := claimStatusTpl.Execute(&buf, data); err != nil {
		return err
	}
	return s.Send(Message{
		To:      []string{to},
		Subject: fmt.Sprintf("Your claim on booking %s is %s", data.BookingCode, data.Status),
		HTML:    buf.String(),
	})
}
