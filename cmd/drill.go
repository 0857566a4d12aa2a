package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/abhisek/lsatarcade/internal/drill"
	"github.com/abhisek/lsatarcade/internal/profile"
	"github.com/abhisek/lsatarcade/internal/store"
	"github.com/abhisek/lsatarcade/internal/ui/components"
	"github.com/abhisek/lsatarcade/internal/ui/theme"
)

func newDrillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drill",
		Short: "Answer practice questions and earn XP",
		Long: `Generate practice questions and answer them at the prompt.

Correct answers earn XP and coins; wrong answers cost a life. Progress is
saved to the local profile after every answer. Use --json to print drills
without playing.`,
		RunE: runDrill,
	}
	addDrillFlags(cmd)
	return cmd
}

func addDrillFlags(cmd *cobra.Command) {
	cmd.Flags().String("topic", "", "Question topic (default logical_reasoning)")
	cmd.Flags().IntP("count", "n", 1, "Number of questions")
	cmd.Flags().Bool("json", false, "Print drills as JSON instead of playing")
}

func runDrill(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	logger := slog.Default()

	topic, _ := cmd.Flags().GetString("topic")
	count, _ := cmd.Flags().GetInt("count")
	asJSON, _ := cmd.Flags().GetBool("json")
	if count < 1 {
		return fmt.Errorf("--count must be at least 1")
	}

	svc := buildServices(ctx, cmd, logger)

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		for range count {
			if err := enc.Encode(svc.drills.Generate(ctx, topic)); err != nil {
				return fmt.Errorf("encode drill: %w", err)
			}
		}
		return nil
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	repo := profile.NewRepo(st.KV(), logger)
	attempts := st.Attempts()
	p, err := repo.Load(ctx)
	if err != nil {
		return err
	}

	width := components.ContentWidth(terminalWidth())
	in := newInput(cmd.InOrStdin(), out)

	fmt.Fprintln(out, theme.Title.Render("Lesson • "+topicTitle(topic)))
	fmt.Fprintln(out, components.StatusLine(p))

	var answered, correct int
	for i := 1; i <= count; i++ {
		if p.OutOfLives() {
			fmt.Fprintln(out, theme.Incorrect.Render("Out of lives.")+" "+
				theme.Hint.Render("Run `lsatarcade profile refill` to keep playing."))
			break
		}

		round := profile.NewRound(svc.drills.Generate(ctx, topic))
		if count > 1 {
			fmt.Fprintf(out, "\n── Question %d/%d ──\n", i, count)
		} else {
			fmt.Fprintln(out)
		}
		letter, more, err := in.Pick(ctx, round, width)
		if err != nil {
			return err
		}
		if !more {
			break
		}
		if letter == "" {
			fmt.Fprintln(out, theme.Hint.Render("(skipped)"))
			continue
		}

		var outcome profile.Outcome
		p, outcome, err = round.Submit(p, letter, time.Now())
		if err != nil {
			return fmt.Errorf("score answer: %w", err)
		}
		if err := repo.Save(ctx, p); err != nil {
			return err
		}
		if _, err := attempts.Append(ctx, store.AttemptData{
			Topic:    topicOrDefault(topic),
			Question: round.Drill.Question,
			Picked:   outcome.Picked,
			Answer:   outcome.Answer,
			Correct:  outcome.Correct,
			Source:   svc.source,
		}); err != nil {
			logger.WarnContext(ctx, "attempt_not_recorded", slog.String("error", err.Error()))
		}

		answered++
		if outcome.Correct {
			correct++
		}
		fmt.Fprintln(out, components.DrillCard(round, width))
		fmt.Fprintln(out, components.StatusLine(p))
	}

	if count > 1 && answered > 0 {
		fmt.Fprintf(out, "\n── Summary: %d/%d correct ──\n", correct, answered)
	}
	return nil
}

func topicOrDefault(topic string) string {
	if t := strings.TrimSpace(topic); t != "" {
		return t
	}
	return drill.DefaultTopic
}

// topicTitle turns "logical_reasoning" into "Logical Reasoning".
func topicTitle(topic string) string {
	words := strings.Fields(strings.ReplaceAll(topicOrDefault(topic), "_", " "))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// terminalWidth asks the terminal on stdout, then $COLUMNS, defaulting to 80.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return 80
}
