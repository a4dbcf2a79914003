package main

import (
	"fmt"

	postrewriter "github.com/dazhiyu0235/post-rewriter"
)

// Run executes the info command.
func (c *InfoCmd) Run(deps *Dependencies) error {
	info, err := deps.Rewriter.ArticleInfo(deps.Ctx, c.Target)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postrewriter.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "ID:      %d\n", info.Post.ID)
	fmt.Fprintf(deps.Stdout, "Slug:    %s\n", info.Post.Slug)
	fmt.Fprintf(deps.Stdout, "Title:   %s\n", info.Post.Title)
	fmt.Fprintf(deps.Stdout, "Length:  %d bytes\n", info.ContentLength)
	fmt.Fprintf(deps.Stdout, "Images:  %d\n", len(info.Images))
	for _, img := range info.Images {
		valid := "ok"
		if !img.Valid() {
			valid = "invalid src"
		}
		fmt.Fprintf(deps.Stdout, "  %s (%s)\n", img.Src, valid)
	}
	return nil
}
