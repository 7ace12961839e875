package handlers

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pulse-inc/pulse/internal/shared/constants"
)

// callbackMessage is what the popup posts to its opener.
type callbackMessage struct {
	Type  string `json:"type"`
	Code  string `json:"code,omitempty"`
	State string `json:"state,omitempty"`
	Error string `json:"error,omitempty"`
}

type callbackPage struct {
	Nonce   string
	Title   string
	Message string
	Detail  string
	Success bool
	Origins []string
	Payload callbackMessage
}

var callbackTemplate = template.Must(template.New("callback").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style nonce="{{.Nonce}}">
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; display: flex; justify-content: center; align-items: center; min-height: 100vh; margin: 0; background: #fafafa; color: #111; }
        .card { text-align: center; padding: 40px; background: #fff; border: 1px solid #e4e4e7; border-radius: 16px; max-width: 380px; width: 90%; }
        .hint { font-size: 14px; color: #71717a; line-height: 1.5; }
        .error h1 { color: #dc2626; }
    </style>
</head>
<body>
    <div class="card{{if not .Success}} error{{end}}">
        <h1>{{.Title}}</h1>
        <p class="hint">{{.Message}}</p>
        {{if .Detail}}<p class="hint">{{.Detail}}</p>{{end}}
        <p class="hint">This window will close automatically.</p>
    </div>
    <script nonce="{{.Nonce}}">
        (function () {
            var message = {{.Payload}};
            var origins = {{.Origins}};
            if (window.opener) {
                origins.forEach(function (origin) {
                    try { window.opener.postMessage(message, origin); } catch (e) {}
                });
            }
            setTimeout(function () { try { window.close(); } catch (e) {} }, 1500);
        })();
    </script>
</body>
</html>
`))

// Callback godoc
// @Summary Slack OAuth callback relay
// @Description Relays code and state (or the provider error) to the opener window via postMessage
// @Tags slack
// @Produce html
// @Param code query string false "Authorization code"
// @Param state query string false "CSRF state"
// @Param error query string false "Provider error"
// @Success 200 {string} string "HTML page"
// @Router /api/slack/callback [get]
func (h *SlackHandler) Callback(c *gin.Context) {
	page := callbackPage{
		Nonce:   uuid.NewString(),
		Origins: h.allowedOrigins,
		Payload: callbackMessage{Type: constants.CallbackMessageType},
	}
	if page.Origins == nil {
		page.Origins = []string{}
	}

	code := c.Query("code")
	state := c.Query("state")
	providerErr := c.Query("error")

	switch {
	case providerErr != "":
		h.logger.Warnw("slack authorization returned an error", "error", providerErr)
		h.failPage(&page, providerErr, c.Query("error_description"))
	case code == "":
		h.failPage(&page, string(constants.OAuthErrorMissingCode), "")
	case state == "":
		h.failPage(&page, string(constants.OAuthErrorMissingState), "")
	default:
		page.Success = true
		page.Title = "Slack Authorized"
		page.Message = "Finishing the connection in the original window."
		page.Payload.Code = code
		page.Payload.State = state
	}

	var buf bytes.Buffer
	if err := callbackTemplate.Execute(&buf, page); err != nil {
		h.logger.Errorw("failed to render oauth callback page", "error", err)
		c.String(http.StatusInternalServerError, constants.ErrMsgInternalServerError)
		return
	}

	c.Header("Content-Security-Policy", "default-src 'none'; script-src 'nonce-"+page.Nonce+"'; style-src 'nonce-"+page.Nonce+"'")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *SlackHandler) failPage(page *callbackPage, code, description string) {
	page.Success = false
	page.Title = "Connection Failed"
	page.Message = constants.OAuthErrorMessage(code)
	page.Payload.Error = code
	if description != "" && h.sanitizer != nil {
		page.Detail = h.sanitizer.StripTags(description)
	}
}
