package postrewriter

// DefaultBoilerplateMarkers are the phrases that mark the start of
// trailing non-article content (author bios, comment sections, related
// post widgets). Truncators check them in this order and cut before the
// first one that matches.
func DefaultBoilerplateMarkers() []string {
	return []string{
		"Wrapping Up",
		"Read Next",
		"Conclusion",
		"Final Thoughts",
		"In Summary",
		"To Conclude",
		"Bottom Line",
		"Related Posts",
		"More Reading",
		"Further Reading",
		"Check Out",
		"Don't Miss",
		"Popular Posts",
		"Recent Posts",
		"About the Author",
		"Author Bio",
		"Comments",
		"Leave a Reply",
		"Share this",
		"Follow us",
	}
}
