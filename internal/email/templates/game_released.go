// internal/email/templates/game_released.go
package templates

import (
	"html/template"
	"strings"
	"time"
)

const gameReleasedHTML = `<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background-color:#f4f4f7;font-family:Arial,Helvetica,sans-serif;">
  <table role="presentation" width="100%" cellpadding="0" cellspacing="0">
    <tr>
      <td align="center" style="padding:32px 16px;">
        <table role="presentation" width="560" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:8px;overflow:hidden;">
          <tr>
            <td style="background:#1f2430;padding:24px;text-align:center;">
              <span style="color:#ffffff;font-size:20px;font-weight:bold;">Game Release Tracker</span>
            </td>
          </tr>
          <tr>
            <td style="padding:32px;">
              <p style="font-size:16px;color:#333;">Hi {{.Username}},</p>
              <p style="font-size:16px;color:#333;">
                Good news — a game on your wishlist is out:
              </p>
              <p style="font-size:22px;color:#1f2430;font-weight:bold;margin:24px 0;">
                {{.GameTitle}}
              </p>
              <p style="font-size:14px;color:#666;">Released {{.ReleaseDate}}.</p>
              <p style="font-size:14px;color:#666;">
                Open the app to see where you can get it.
              </p>
            </td>
          </tr>
          <tr>
            <td style="padding:16px 32px;border-top:1px solid #eee;">
              <p style="font-size:12px;color:#999;">
                You are receiving this because notifications are enabled on your account.
                &copy; {{.Year}} Game Release Tracker
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`

var gameReleasedTmpl = template.Must(template.New("game_released").Parse(gameReleasedHTML))

type GameReleasedData struct {
	Username    string
	GameTitle   string
	ReleaseDate string
	Year        int
}

func RenderGameReleased(data GameReleasedData) (string, error) {
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}

	var buf strings.Builder
	err := gameReleasedTmpl.Execute(&buf, data)
	return buf.String(), err
}
