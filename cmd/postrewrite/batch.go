package main

import (
	"fmt"
	"os"

	postrewriter "github.com/dazhiyu0235/post-rewriter"
	"github.com/dazhiyu0235/post-rewriter/rewrite"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	defer f.Close()

	tasks, err := rewrite.ParseTasks(f, deps.Rewriter.Logger)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postrewriter.ErrorMessage(err))
		return err
	}
	if len(tasks) == 0 {
		return fmt.Errorf("no tasks found in %s", c.File)
	}

	result, err := deps.Rewriter.RunBatch(deps.Ctx, tasks, c.DryRun)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postrewriter.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Processed %d tasks: %d succeeded, %d failed, %d skipped\n",
		result.Total, result.Succeeded, result.Failed, result.Skipped)
	if result.Failed > 0 {
		return fmt.Errorf("%d of %d tasks failed", result.Failed, result.Total)
	}
	return nil
}
