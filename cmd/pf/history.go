package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

func runHistory() {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	limit := fs.Int("n", 20, "Number of posts to list")
	full := fs.Bool("full", false, "Print full post content instead of a preview")
	fs.Parse(os.Args[1:])

	st := openHistory()
	defer st.Close()

	// With an ID argument, show that post and its revision trail.
	if fs.NArg() > 0 {
		showPost(fs.Arg(0))
		return
	}

	entries, err := st.RecentPosts(*limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if len(entries) == 0 {
		fmt.Println("No saved posts yet. Run the postforge TUI to create some.")
		return
	}

	for _, e := range entries {
		fmt.Printf("%s  %s  %s\n", e.ID, e.UpdatedAt.Format("2006-01-02 15:04"), e.Title)
		fmt.Printf("    topic: %s\n", e.Topic)
		if *full {
			fmt.Println(indent(e.Content, "    "))
		} else {
			fmt.Printf("    %s\n", truncate(strings.ReplaceAll(e.Content, "\n", " "), 100))
		}
		fmt.Println()
	}
}

func showPost(id string) {
	st := openHistory()
	defer st.Close()

	e, err := st.GetPost(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: post %q not found\n", id)
		os.Exit(1)
	}

	fmt.Printf("%s (%s)\n", e.Title, e.ID)
	fmt.Printf("topic: %s\ncreated: %s\nupdated: %s\n\n",
		e.Topic, e.CreatedAt.Format("2006-01-02 15:04"), e.UpdatedAt.Format("2006-01-02 15:04"))
	fmt.Println(e.Content)

	revs, err := st.Revisions(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if len(revs) == 0 {
		return
	}

	fmt.Printf("\n--- %d revisions ---\n", len(revs))
	for _, r := range revs {
		fmt.Printf("#%d %s  %q\n", r.Seq, r.CreatedAt.Format("15:04:05"), r.Instruction)
	}
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}
