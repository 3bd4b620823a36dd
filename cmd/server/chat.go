package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"realestate-agent/internal/agent"
	"realestate-agent/internal/session"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newChatCommand(a *app) *cobra.Command {
	var sessionID, language string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the assistant from the terminal",
		Long: `chat runs the assistant locally with in-memory sessions and no database.
Type /reset to forget the conversation, /lang <code> to force a language and /quit to leave.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			orchestrator, err := a.orchestrator(ctx, session.NewMemoryStore(a.cfg.Session.Retention))
			if err != nil {
				return err
			}
			if sessionID == "" {
				sessionID = uuid.NewString()
			}
			return runREPL(ctx, orchestrator, cmd.InOrStdin(), cmd.OutOrStdout(), sessionID, language)
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session id to use (default random)")
	cmd.Flags().StringVar(&language, "language", agent.AutoLanguage, "Reply language: auto, english, arabic or tamil")
	return cmd
}

// replAssistant is the part of the orchestrator the REPL drives
type replAssistant interface {
	Handle(ctx context.Context, req agent.Request) agent.Result
	ClearSession(ctx context.Context, sessionID string) error
}

func runREPL(ctx context.Context, assistant replAssistant, in io.Reader, out io.Writer, sessionID, language string) error {
	fmt.Fprintf(out, "Session %s. Type /quit to exit.\n", sessionID)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit" || line == "/exit":
			return nil
		case line == "/reset":
			if err := assistant.ClearSession(ctx, sessionID); err != nil {
				return err
			}
			fmt.Fprintln(out, "Conversation cleared.")
			continue
		case strings.HasPrefix(line, "/lang"):
			language = strings.TrimSpace(strings.TrimPrefix(line, "/lang"))
			if language == "" {
				language = agent.AutoLanguage
			}
			fmt.Fprintf(out, "Language: %s\n", language)
			continue
		}

		res := assistant.Handle(ctx, agent.Request{
			SessionID: sessionID,
			Message:   line,
			Language:  language,
		})
		fmt.Fprintf(out, "[%s/%s]\n%s\n\n", res.Language, res.Source, res.Response)
	}
}
