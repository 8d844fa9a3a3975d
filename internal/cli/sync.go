package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/DiversioTeam/ClassQuiz/internal/classquiz"
	"github.com/DiversioTeam/ClassQuiz/internal/config"
	"github.com/DiversioTeam/ClassQuiz/internal/domain"
	"github.com/DiversioTeam/ClassQuiz/internal/quizsync"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// syncOptions carries the flags shared by every sync job. Flag values win
// over config file values, which win over the documented defaults.
type syncOptions struct {
	configPath *string
	baseURL    string
	email      string
	password   string
	quizID     string
	quizTitle  string
}

// NewSyncCmd groups the quiz-content maintenance jobs that run through the
// editor API.
func NewSyncCmd(configPath *string) *cobra.Command {
	opts := &syncOptions{configPath: configPath}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Maintain quiz content through the editor API",
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.baseURL, "base-url", "", "ClassQuiz base URL (overrides config)")
	flags.StringVar(&opts.email, "email", "", "login email (overrides config)")
	flags.StringVar(&opts.password, "password", "", "login password (overrides config)")
	flags.StringVar(&opts.quizID, "quiz-id", "", "quiz UUID to update; if omitted, the quiz is located by title")
	flags.StringVar(&opts.quizTitle, "quiz-title", "", "quiz title to search for when --quiz-id is not given")

	cmd.AddCommand(newSyncConnectionTestCmd(opts))
	cmd.AddCommand(newSyncAppendQuestionsCmd(opts))
	cmd.AddCommand(newSyncTrickyTimersCmd(opts))
	return cmd
}

// login builds the API client and performs the two-step PASSWORD login.
func (o *syncOptions) login(ctx context.Context) (*classquiz.Client, error) {
	cfg, err := config.Load(*o.configPath)
	if err != nil {
		return nil, err
	}
	if o.baseURL != "" {
		cfg.ClassQuiz.BaseURL = o.baseURL
	}
	if o.email != "" {
		cfg.ClassQuiz.Email = o.email
	}
	if o.password != "" {
		cfg.ClassQuiz.Password = o.password
	}

	slog.Info("using ClassQuiz API", "base_url", cfg.ClassQuiz.BaseURL, "email", cfg.ClassQuiz.Email)
	client := classquiz.New(cfg.ClassQuiz.BaseURL)
	if err := client.Login(ctx, cfg.ClassQuiz.Email, cfg.ClassQuiz.Password); err != nil {
		return nil, err
	}
	return client, nil
}

// title returns the quiz title to operate on.
func (o *syncOptions) title(fallback string) string {
	if o.quizTitle != "" {
		return o.quizTitle
	}
	return fallback
}

// resolveQuizID returns the explicit --quiz-id (validated as a UUID) or
// looks the quiz up by title.
func (o *syncOptions) resolveQuizID(ctx context.Context, client *classquiz.Client, defaultTitle string) (string, error) {
	if o.quizID != "" {
		if _, err := uuid.Parse(o.quizID); err != nil {
			return "", fmt.Errorf("--quiz-id %q is not a valid UUID: %w", o.quizID, err)
		}
		return o.quizID, nil
	}
	return client.FindQuizIDByTitle(ctx, o.title(defaultTitle))
}

func newSyncConnectionTestCmd(opts *syncOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "connection-test",
		Short: "Ensure the Connection Test Quiz exists and normalize its code formatting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			client, err := opts.login(ctx)
			if err != nil {
				return err
			}

			title := opts.title(quizsync.ConnectionTestTitle)
			quizID, err := opts.resolveQuizID(ctx, client, title)
			if errors.Is(err, domain.ErrQuizNotFound) {
				fmt.Fprintf(out, "No quiz named %q found; creating a new one.\n", title)
				quizID, err = client.CreateQuiz(ctx, quizsync.ConnectionTestQuiz())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Created Connection Test Quiz with id %s\n", quizID)
			} else if err != nil {
				return err
			}

			quiz, err := client.GetQuiz(ctx, quizID)
			if err != nil {
				return err
			}

			changed, err := quizsync.NormalizeQuestionTexts(&quiz, quizsync.ConnectionTestNormalizedTexts())
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintln(out, "No question text changes needed; quiz already normalized.")
				return nil
			}

			if err := client.UpdateQuiz(ctx, quizID, quiz); err != nil {
				return err
			}
			fmt.Fprintf(out, "Quiz %s updated with normalized question formatting.\n", quizID)
			return nil
		},
	}
}

func newSyncAppendQuestionsCmd(opts *syncOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "append-questions",
		Short: "Append the hard alias/container questions to the Session 1 quiz",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			client, err := opts.login(ctx)
			if err != nil {
				return err
			}
			quizID, err := opts.resolveQuizID(ctx, client, quizsync.SessionOneTitle)
			if err != nil {
				return err
			}

			quiz, err := client.GetQuiz(ctx, quizID)
			if err != nil {
				return err
			}

			if !quizsync.AppendMissingQuestions(&quiz, quizsync.SessionOneHardQuestions()) {
				fmt.Fprintln(out, "No new questions to add; quiz already contains all markers.")
				return nil
			}

			if err := client.UpdateQuiz(ctx, quizID, quiz); err != nil {
				return err
			}
			fmt.Fprintf(out, "Quiz %s updated successfully with new hard questions.\n", quizID)
			return nil
		},
	}
}

func newSyncTrickyTimersCmd(opts *syncOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tricky-timers",
		Short: "Give the hard Session 1 questions an extended time limit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			client, err := opts.login(ctx)
			if err != nil {
				return err
			}
			quizID, err := opts.resolveQuizID(ctx, client, quizsync.SessionOneTitle)
			if err != nil {
				return err
			}

			quiz, err := client.GetQuiz(ctx, quizID)
			if err != nil {
				return err
			}

			markers := quizsync.Markers(quizsync.SessionOneHardQuestions())
			if !quizsync.MarkTrickyTimers(&quiz, markers, quizsync.TrickyTimeSeconds) {
				fmt.Fprintln(out, "No timer changes needed; tricky questions already at desired time.")
				return nil
			}

			if err := client.UpdateQuiz(ctx, quizID, quiz); err != nil {
				return err
			}
			fmt.Fprintf(out, "Quiz %s updated with new timers for tricky questions.\n", quizID)
			return nil
		},
	}
}
