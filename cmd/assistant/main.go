package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"studyhub-backend/internal/assistant"
	"studyhub-backend/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		serverURL string
		token     string
		timeout   time.Duration
		logLevel  string
	)

	cmd := &cobra.Command{
		Use:   "assistant",
		Short: "Chat with the study assistant from the terminal",
		Long: "Starts an interactive assistant session against a running server.\n" +
			"Type a question and press enter; /quit leaves the session.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(logLevel, true, cmd.ErrOrStderr())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			client := assistant.NewClient(serverURL, token, timeout)
			session := assistant.NewSession(client)
			return runREPL(ctx, session, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", envOr("STUDYHUB_SERVER", "http://localhost:8080"), "base URL of the StudyHub server")
	cmd.Flags().StringVar(&token, "token", os.Getenv("STUDYHUB_TOKEN"), "bearer token when the server requires one")
	cmd.Flags().DurationVar(&timeout, "timeout", assistant.DefaultTimeout, "per-request timeout")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level")

	return cmd
}

// runREPL prints the transcript as it grows: every submitted line becomes a
// user turn followed by the assistant's reply or the fallback turn.
func runREPL(ctx context.Context, session *assistant.Session, in io.Reader, out, errOut io.Writer) error {
	for _, turn := range session.Turns() {
		printTurn(out, turn)
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "you> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		}

		turn, err := session.Send(ctx, line)
		switch {
		case err == nil:
			printTurn(out, turn)
		case errors.Is(err, assistant.ErrAIUnavailable):
			fmt.Fprintf(errOut, "! %s\n", assistant.FailureNotice)
			printTurn(out, turn)
		default:
			fmt.Fprintf(errOut, "! %v\n", err)
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

func printTurn(out io.Writer, turn assistant.Turn) {
	label := "assistant"
	if turn.IsUser() {
		label = "you"
	}
	fmt.Fprintf(out, "%s> %s\n", label, turn.Content)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
