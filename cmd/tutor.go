package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lsatarcade/internal/tutor"
	"github.com/abhisek/lsatarcade/internal/ui/theme"
)

func newTutorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tutor",
		Short: "Chat with the LSAT tutor",
		Long: `Start a tutoring conversation. The whole history is sent with every turn.

Commands: /reset clears the conversation, /quit leaves. With --message the
tutor answers once and exits.`,
		RunE: runTutor,
	}
	cmd.Flags().StringP("message", "m", "", "Ask a single question and exit")
	return cmd
}

func runTutor(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	svc := buildServices(ctx, cmd, slog.Default())

	if msg, _ := cmd.Flags().GetString("message"); strings.TrimSpace(msg) != "" {
		reply := svc.tutor.Reply(ctx, []tutor.Message{{Role: tutor.RoleUser, Content: msg}})
		fmt.Fprintln(out, reply)
		return nil
	}

	fmt.Fprintln(out, theme.Title.Render("LSAT Tutor")+" "+theme.Hint.Render(fmt.Sprintf("(%s) /reset, /quit", svc.mode)))

	var history []tutor.Message
	in := newInput(cmd.InOrStdin(), out)
	for {
		line, ok, err := in.Line(ctx, "you>")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/reset":
			history = nil
			fmt.Fprintln(out, theme.Hint.Render("(conversation cleared)"))
			continue
		}

		history = append(history, tutor.Message{Role: tutor.RoleUser, Content: line})
		reply := svc.tutor.Reply(ctx, history)
		history = append(history, tutor.Message{Role: tutor.RoleAssistant, Content: reply})

		fmt.Fprintln(out, theme.TutorName.Render("tutor>")+" "+reply)
	}
}
