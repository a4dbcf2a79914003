package main

import (
	"fmt"

	postrewriter "github.com/dazhiyu0235/post-rewriter"
)

// Run executes the update command.
func (c *UpdateCmd) Run(deps *Dependencies) error {
	if err := deps.Rewriter.UpdateArticle(deps.Ctx, c.Target, c.DryRun); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postrewriter.ErrorMessage(err))
		return err
	}

	if c.DryRun {
		fmt.Fprintf(deps.Stdout, "Dry run: %s not updated\n", c.Target)
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Updated %s\n", c.Target)
	return nil
}
