package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/flashtoast/handler"
	"github.com/dmitrymomot/flashtoast/pkg/logger"
	"github.com/dmitrymomot/flashtoast/pkg/toast"
	"github.com/dmitrymomot/flashtoast/pkg/toastui"
)

type sendOptions struct {
	server   string
	token    string
	message  string
	level    string
	duration string
	exit     time.Duration
	timeout  time.Duration
}

func sendCmd() *cobra.Command {
	opts := sendOptions{
		server:  "http://localhost:8080",
		level:   toast.LevelInfo.String(),
		exit:    300 * time.Millisecond,
		timeout: 10 * time.Second,
	}

	cmd := &cobra.Command{
		Use:   "send <message>",
		Short: "Queue a toast on a running server and play it back",
		Long: `Send a toast through the server's JSON API and play the toasts
returned with the response through the client display runtime,
printing every phase change until the stack is empty.

Examples:
  flashtoast send "Saved"
  flashtoast send "Disk almost full" --level=warning --duration=2s
  flashtoast send "Again" --token=<X-Session-Token from a previous run>`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.message = args[0]
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runSend(ctx, cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.server, "server", opts.server, "Server base URL")
	cmd.Flags().StringVar(&opts.token, "token", "", "Session token to reuse")
	cmd.Flags().StringVarP(&opts.level, "level", "l", opts.level, "Toast level: success, error, info or warning")
	cmd.Flags().StringVarP(&opts.duration, "duration", "d", "", "Display time, e.g. 3s (default from the server)")
	cmd.Flags().DurationVar(&opts.exit, "exit", opts.exit, "Exit transition length")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "Request timeout")

	return cmd
}

func runSend(ctx context.Context, out io.Writer, opts sendOptions) error {
	payload, err := json.Marshal(map[string]string{
		"message":  opts.message,
		"level":    opts.level,
		"duration": opts.duration,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(opts.server, "/")+"/api/toasts", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if opts.token != "" {
		req.Header.Set(sessionHeader, opts.token)
	}

	client := &http.Client{Timeout: opts.timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	var body handler.JSONResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("unexpected response (%s): %w", resp.Status, err)
	}
	if body.Error != nil {
		return fmt.Errorf("%s: %s", body.Error.Code, body.Error.Message)
	}
	if token := resp.Header.Get(sessionHeader); token != "" {
		fmt.Fprintf(out, "session token: %s\n", token)
	}

	serverCfg, err := toast.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load toast config: %w", err)
	}
	ctx, store := toastui.NewProvider(ctx, toastui.FromServerConfig(serverCfg),
		toastui.WithLogger(slog.Default()),
		toastui.WithConfigOptions(toastui.WithExitDuration(opts.exit)),
	)
	defer store.Close()

	return play(ctx, out, body.Props)
}

// play feeds props to the store in ctx and prints each phase change until
// the stack is empty again.
func play(ctx context.Context, out io.Writer, props map[string]any) error {
	store := toastui.Use(ctx)

	sub := store.Subscribe(ctx)
	defer sub.Close()

	n := store.HandleNavigation(toastui.Navigation{ID: uuid.NewString(), Props: props})
	if n == 0 {
		fmt.Fprintln(out, "no toasts")
		return nil
	}

	seen := map[string]toastui.Phase{}
	for msg := range sub.Receive(ctx) {
		items := msg.Data.Items
		for i := len(items) - 1; i >= 0; i-- {
			item := items[i]
			if seen[item.ID] == item.Phase {
				continue
			}
			seen[item.ID] = item.Phase
			fmt.Fprintf(out, "%-8s %-7s %s\n", item.Phase, item.Level, item.Message)
		}
		for id := range seen {
			if !slices.ContainsFunc(items, func(it toastui.Item) bool { return it.ID == id }) {
				fmt.Fprintf(out, "%-8s %s\n", toastui.PhaseRemoved, id)
				delete(seen, id)
			}
		}
		if len(items) == 0 {
			fmt.Fprintf(out, "\033[32m✓\033[0m %d toast(s) shown\n", n)
			return nil
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	slog.Default().Warn("toast stream closed early", logger.Component("send"))
	return nil
}
