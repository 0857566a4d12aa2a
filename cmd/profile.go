package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lsatarcade/internal/profile"
	"github.com/abhisek/lsatarcade/internal/store"
	"github.com/abhisek/lsatarcade/internal/ui/components"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show level, XP, streak, lives and coins",
		RunE:  runProfileShow,
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard the local profile and attempt history",
		RunE:  runProfileReset,
	}
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	refillCmd := &cobra.Command{
		Use:   "refill",
		Short: "Refill lives",
		RunE:  runProfileRefill,
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recent answers",
		RunE:  runProfileHistory,
	}
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
	historyCmd.Flags().String("topic", "", "Only attempts on this topic")
	historyCmd.Flags().String("only", "", "Only correct or wrong attempts")

	cmd.AddCommand(resetCmd, refillCmd, historyCmd)
	return cmd
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	p, err := profile.NewRepo(st.KV(), slog.Default()).Load(ctx)
	if err != nil {
		return err
	}
	stats, err := st.Attempts().Stats(ctx)
	if err != nil {
		return err
	}

	width := components.ContentWidth(terminalWidth())
	fmt.Fprintln(out, components.StatusLine(p))
	fmt.Fprintln(out, components.XPBar(p.XP, profile.XPToNext(p.Level), width).View())
	fmt.Fprintf(out, "Lives:       %d/%d\n", p.Lives, profile.MaxLives)
	lastPlayed := "never"
	if p.LastPlayed != nil {
		lastPlayed = *p.LastPlayed
	}
	fmt.Fprintf(out, "Last played: %s\n", lastPlayed)
	if stats.Total > 0 {
		fmt.Fprintf(out, "Answered:    %d (%d correct, %.0f%%)\n", stats.Total, stats.Correct, stats.Accuracy()*100)
	} else {
		fmt.Fprintln(out, "Answered:    0")
	}
	return nil
}

func runProfileReset(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		fmt.Fprint(out, "Reset profile and history? [y/N]: ")
		in := bufio.NewScanner(cmd.InOrStdin())
		if !in.Scan() || !strings.EqualFold(strings.TrimSpace(in.Text()), "y") {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := profile.NewRepo(st.KV(), slog.Default()).Reset(ctx); err != nil {
		return err
	}
	if err := st.Attempts().Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, "Profile reset.")
	return nil
}

func runProfileRefill(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	p, err := profile.NewRepo(st.KV(), slog.Default()).Update(ctx, profile.Profile.Refill)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), components.StatusLine(p))
	return nil
}

func runProfileHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	limit, _ := cmd.Flags().GetInt("limit")
	topic, _ := cmd.Flags().GetString("topic")
	only, _ := cmd.Flags().GetString("only")

	opts := store.QueryOpts{Limit: limit, Topic: strings.TrimSpace(topic)}
	switch strings.ToLower(strings.TrimSpace(only)) {
	case "":
	case "correct", "right":
		opts.Correct = new(bool)
		*opts.Correct = true
	case "wrong", "incorrect":
		opts.Correct = new(bool)
	default:
		return fmt.Errorf("--only must be correct or wrong, got %q", only)
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	recs, err := st.Attempts().Query(ctx, opts)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(out, "No attempts recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "%-5s  %-16s  %-20s  %-6s  %-6s  %-7s  %s\n",
		"#", "Time", "Topic", "Pick", "Answer", "Source", "OK")
	fmt.Fprintln(out, strings.Repeat("─", 76))
	for _, r := range recs {
		ok := "✓"
		if !r.Correct {
			ok = "✗"
		}
		fmt.Fprintf(out, "%-5d  %-16s  %-20s  %-6s  %-6s  %-7s  %s\n",
			r.Sequence,
			r.Timestamp.Local().Format("2006-01-02 15:04"),
			truncate(r.Topic, 20),
			r.Picked,
			r.Answer,
			r.Source,
			ok,
		)
	}
	return nil
}
