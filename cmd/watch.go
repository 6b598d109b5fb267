package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"stock-reconciler/core/reconcile"
	"stock-reconciler/core/stream"
	"stock-reconciler/core/upstream"

	"github.com/spf13/cobra"
)

var (
	// Flags for watch commands
	serverURL string
	apiKey    string
)

// watchCmd follows a reconciliation stream served by a running instance.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow a reconciliation stream from a running server",
	Long: `Open a reconciliation stream on a running server and print the events as they arrive.

Examples:
  watch spot 1234567 2345678 --server http://localhost:8080
  watch full --import nyce-2026-10-01.csv --api-key secret`,
}

var watchSpotCmd = &cobra.Command{
	Use:   "spot SKU [SKU...]",
	Short: "Watch a spot reconciliation",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var keys []string
		for _, arg := range args {
			keys = append(keys, reconcile.SplitKeys(arg)...)
		}
		q := url.Values{"skus": {strings.Join(keys, ",")}}
		return runWatch(cmd.Context(), "/inventory/spot/stream", q)
	},
}

var watchFullCmd = &cobra.Command{
	Use:   "full",
	Short: "Watch a full reconciliation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		if importName != "" {
			q.Set("import", importName)
		}
		return runWatch(cmd.Context(), "/inventory/full/stream", q)
	},
}

func init() {
	watchCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Base URL of the running server")
	watchCmd.PersistentFlags().StringVar(&apiKey, "api-key", os.Getenv("SERVER_API_KEY"), "API key sent in the X-API-Key header")
	watchCmd.PersistentFlags().BoolVarP(&quietOutput, "quiet", "q", false, "Hide results with severity ok")
	watchFullCmd.Flags().StringVar(&importName, "import", "", "Stored import file name to use as the secondary warehouse")

	watchCmd.AddCommand(watchSpotCmd, watchFullCmd)
	RootCmd.AddCommand(watchCmd)
}

func runWatch(parent context.Context, path string, query url.Values) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	target := strings.TrimRight(serverURL, "/") + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	// Streams run for as long as the reconciliation does, so only the
	// transport phases are bounded.
	client := &http.Client{Transport: upstream.NewTransport(0)}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &upstream.StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	err = consumeStream(resp.Body, newConsoleSink(os.Stdout, quietOutput))
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// errRunFailed marks a stream that ended with a fatal error event.
var errRunFailed = errors.New("reconciliation failed")

// consumeStream prints every event of a stream until its terminal event.
func consumeStream(r io.Reader, sink *consoleSink) error {
	events := stream.NewReader(r)
	for {
		e, err := events.Next()
		if err == io.EOF {
			return fmt.Errorf("stream closed before the run finished")
		}
		if err != nil {
			return err
		}

		switch e.Type {
		case stream.TypeProgress:
			_ = sink.Progress(e.Message, e.Current, e.Total)
		case stream.TypeResult:
			if e.Result != nil {
				_ = sink.Result(*e.Result)
			}
		case stream.TypeSummary:
			if e.Summary != nil {
				_ = sink.Summary(*e.Summary)
			}
		case stream.TypeError:
			if e.Fatal {
				sink.fail(e.Message)
				return fmt.Errorf("%w: %s", errRunFailed, e.Message)
			}
			_ = sink.SoftError(e.Message)
		case stream.TypeComplete:
			sink.complete(e.Results, e.Total, e.Errors)
			return nil
		}
	}
}
