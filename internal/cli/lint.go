package cli

import (
	"fmt"
	"os"

	"github.com/DiversioTeam/ClassQuiz/internal/lint"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// NewLintCmd checks quiz markdown files for the house style. Files lint
// concurrently; output stays in argument order.
func NewLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint <quiz.md> [more files...]",
		Short: "Check quiz markdown files for the title + code + answers style",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([][]lint.Issue, len(args))
			failures := make([]error, len(args))

			var g errgroup.Group
			for i, path := range args {
				i, path := i, path
				g.Go(func() error {
					issues, err := lint.File(path)
					if err != nil {
						failures[i] = err
						return nil
					}
					results[i] = issues
					return nil
				})
			}
			_ = g.Wait()

			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()
			total := 0
			for i, path := range args {
				if failures[i] != nil {
					if os.IsNotExist(failures[i]) {
						fmt.Fprintf(errOut, "%s: not found\n", path)
					} else {
						fmt.Fprintf(errOut, "%s: %v\n", path, failures[i])
					}
					continue
				}
				for _, issue := range results[i] {
					fmt.Fprintln(errOut, issue)
				}
				if len(results[i]) == 0 {
					fmt.Fprintf(out, "%s: OK\n", path)
				} else {
					fmt.Fprintf(errOut, "%s: %d warning(s)\n", path, len(results[i]))
					total += len(results[i])
				}
			}

			if total > 0 {
				return fmt.Errorf("%d style warning(s) found", total)
			}
			return nil
		},
	}
}
