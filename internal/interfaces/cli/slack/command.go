package slack

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulse-inc/pulse/internal/application/integration/connectflow"
	"github.com/pulse-inc/pulse/internal/shared/constants"
	"github.com/pulse-inc/pulse/internal/shared/logger"
)

var (
	apiURL    string
	listen    string
	timeout   time.Duration
	noBrowser bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slack",
		Short: "Connect the workspace to Slack through a running server",
	}

	defaultAPI := os.Getenv("PULSE_API_URL")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:3001"
	}
	cmd.PersistentFlags().StringVar(&apiURL, "api", defaultAPI, "Base URL of the Pulse server")

	connect := &cobra.Command{
		Use:   "connect",
		Short: "Run the Slack consent flow and store the grant on the server",
		Long: `Opens the Slack consent page in the browser and waits for the redirect on a
loopback listener. The printed redirect URI must be registered in the Slack app.`,
		RunE: runConnect,
	}
	connect.Flags().StringVar(&listen, "listen", "127.0.0.1:8765", "Loopback address for the OAuth redirect")
	connect.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "How long to wait for consent")
	connect.Flags().BoolVar(&noBrowser, "no-browser", false, "Print the consent URL instead of opening a browser")

	status := &cobra.Command{
		Use:   "status",
		Short: "Report whether the server holds a live Slack grant",
		RunE:  runStatus,
	}

	cmd.AddCommand(connect, status)
	return cmd
}

func runConnect(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("slack-cli")
	out := cmd.OutOrStdout()

	popup, err := NewLoopbackPopup(listen, log)
	if err != nil {
		return err
	}
	if noBrowser {
		popup.OpenBrowser = func(url string) error {
			fmt.Fprintf(out, "Open this URL to authorize:\n\n  %s\n\n", url)
			return nil
		}
	}
	fmt.Fprintf(out, "Waiting for Slack on %s\n", popup.RedirectURI())

	client := NewAPIClient(apiURL, nil)
	flow := connectflow.New(connectflow.Config{
		Provider:    constants.ProviderSlack,
		RedirectURI: popup.RedirectURI(),
	}, client, popup, client, nil, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := flow.Run(ctx)
	if err != nil {
		if errors.Is(err, connectflow.ErrPopupBlocked) {
			return fmt.Errorf("%w; rerun with --no-browser", err)
		}
		return err
	}

	team := result.TeamID
	if result.TeamName != "" {
		team = fmt.Sprintf("%s (%s)", result.TeamName, result.TeamID)
	}
	fmt.Fprintf(out, "Connected to %s as %s\n", team, result.UserID)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	connected, err := NewAPIClient(apiURL, nil).Status(cmd.Context())
	if err != nil {
		return err
	}
	if connected {
		fmt.Fprintln(cmd.OutOrStdout(), "Slack: connected")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Slack: not connected")
	}
	return nil
}
