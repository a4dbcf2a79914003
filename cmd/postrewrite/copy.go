package main

import (
	"fmt"

	postrewriter "github.com/dazhiyu0235/post-rewriter"
)

// Run executes the copy command.
func (c *CopyCmd) Run(deps *Dependencies) error {
	if err := deps.Rewriter.CopyContent(deps.Ctx, c.Target, c.Source, c.Keyword, c.DryRun); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postrewriter.ErrorMessage(err))
		return err
	}

	if c.DryRun {
		fmt.Fprintf(deps.Stdout, "Dry run: %s not updated\n", c.Target)
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Copied %s into %s\n", c.Source, c.Target)
	return nil
}
