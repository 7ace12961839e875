package slack

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pulse-inc/pulse/internal/application/integration/connectflow"
	"github.com/pulse-inc/pulse/internal/shared/goroutine"
	"github.com/pulse-inc/pulse/internal/shared/logger"
)

// CallbackPath is where the loopback listener expects the Slack redirect.
const CallbackPath = "/slack/callback"

var donePage = template.Must(template.New("done").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Pulse</title></head>
<body><p>{{.}}</p><p>You can close this window.</p></body></html>`))

// LoopbackPopup stands in for the browser popup on the command line: it
// opens the consent page in the system browser and receives the redirect on
// a 127.0.0.1 listener.
type LoopbackPopup struct {
	listener  net.Listener
	server    *http.Server
	callbacks chan connectflow.Callback
	once      sync.Once
	closed    atomic.Bool
	logger    logger.Interface

	// OpenBrowser launches the consent page. Defaults to the platform opener.
	OpenBrowser func(url string) error
}

// NewLoopbackPopup listens on addr, e.g. "127.0.0.1:8765" or "127.0.0.1:0".
func NewLoopbackPopup(addr string, log logger.Interface) (*LoopbackPopup, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	p := &LoopbackPopup{
		listener:    ln,
		callbacks:   make(chan connectflow.Callback, 1),
		logger:      log,
		OpenBrowser: openBrowser,
	}

	mux := http.NewServeMux()
	mux.HandleFunc(CallbackPath, p.handleCallback)
	p.server = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	return p, nil
}

// RedirectURI is the address Slack must redirect to. It has to be registered
// in the Slack app settings.
func (p *LoopbackPopup) RedirectURI() string {
	return "http://" + p.listener.Addr().String() + CallbackPath
}

func (p *LoopbackPopup) Open(_ context.Context, authURL string) error {
	goroutine.SafeGo(p.logger, "slack-loopback", func() {
		if err := p.server.Serve(p.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			p.logger.Errorw("loopback listener stopped", "error", err)
			p.closed.Store(true)
		}
	})

	if err := p.OpenBrowser(authURL); err != nil {
		return err
	}
	return nil
}

func (p *LoopbackPopup) Callbacks() <-chan connectflow.Callback {
	return p.callbacks
}

func (p *LoopbackPopup) Closed() bool {
	return p.closed.Load()
}

func (p *LoopbackPopup) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.server.Shutdown(ctx); err != nil {
		return err
	}
	// Serve never ran when Open was not called.
	_ = p.listener.Close()
	return nil
}

func (p *LoopbackPopup) handleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	cb := connectflow.Callback{
		Code:  q.Get("code"),
		State: q.Get("state"),
		Error: q.Get("error"),
	}

	delivered := false
	p.once.Do(func() {
		p.callbacks <- cb
		delivered = true
	})

	message := "Slack authorization received."
	switch {
	case !delivered:
		message = "This connect attempt already completed."
	case cb.Error != "":
		message = "Slack authorization was not granted."
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := donePage.Execute(w, message); err != nil {
		p.logger.Warnw("failed to render loopback page", "error", err)
	}
}

func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
