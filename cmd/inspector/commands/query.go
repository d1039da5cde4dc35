package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shodan-inspector/internal/relay"
)

// ExitError carries the HTTP status the relay or the upstream answered with.
type ExitError struct {
	Status int
	Detail any
}

func (e *ExitError) Error() string {
	if s, ok := e.Detail.(string); ok {
		return fmt.Sprintf("%d: %s", e.Status, s)
	}
	b, _ := json.Marshal(e.Detail)
	return fmt.Sprintf("%d: %s", e.Status, b)
}

// query --ip <ip> --key <key>: one lookup, JSON to stdout.
func queryCmd() *cobra.Command {
	var req relay.Request
	var compact bool
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Look up a single host and print the Shodan JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := newRelay().Query(cmd.Context(), req)
			if err != nil {
				var se interface {
					StatusCode() int
					Detail() any
				}
				if errors.As(err, &se) {
					return &ExitError{Status: se.StatusCode(), Detail: se.Detail()}
				}
				return err
			}
			if !compact {
				var buf bytes.Buffer
				if err := json.Indent(&buf, out, "", "  "); err == nil {
					out = buf.Bytes()
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&req.IP, "ip", "", "IP address to look up")
	cmd.Flags().StringVar(&req.Key, "key", "", "Shodan API key (env SHODAN_API_KEY)")
	cmd.Flags().BoolVar(&compact, "compact", false, "print the upstream body unformatted")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		if req.Key == "" {
			req.Key = os.Getenv("SHODAN_API_KEY")
		}
	}
	return cmd
}
