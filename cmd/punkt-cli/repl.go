package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/urfave/cli/v2"

	punkt "github.com/jamesainslie/go-punkt"
)

func replCommand() *cli.Command {
	return &cli.Command{
		Name:   "repl",
		Usage:  "segment and tokenize text interactively",
		Flags:  modelFlags(),
		Action: runREPL,
	}
}

// replModes are the output modes, switched by typing their name with a
// leading colon.
var replModes = []prompt.Suggest{
	{Text: ":sentences", Description: "print one sentence per line"},
	{Text: ":words", Description: "print the words of each sentence"},
	{Text: ":explain", Description: "print every boundary decision"},
	{Text: "quit", Description: "leave"},
}

func runREPL(c *cli.Context) error {
	seg, err := openSegmenter(c)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, "Type text to segment; :words, :explain or :sentences to switch output, quit to leave.")
	r := &repl{seg: seg, out: c.App.Writer, mode: ":sentences"}
	history := []string{}

	for {
		in := prompt.Input("punkt> ", completer,
			prompt.OptionTitle("punkt repl"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionHistory(history),
			prompt.OptionMaxSuggestion(4),
		)
		if strings.TrimSpace(in) == "quit" || c.Context.Err() != nil {
			return nil
		}
		history = append(history, in)
		if err := r.eval(c.Context, in); err != nil {
			fmt.Fprintf(c.App.ErrWriter, "error: %v\n", err)
		}
	}
}

func completer(d prompt.Document) []prompt.Suggest {
	w := d.GetWordBeforeCursor()
	if !strings.HasPrefix(w, ":") && !strings.HasPrefix(w, "q") {
		return nil
	}
	return prompt.FilterHasPrefix(replModes, w, true)
}

type repl struct {
	seg  *punkt.Segmenter
	out  io.Writer
	mode string
}

// eval handles one input line: a mode switch or text to process.
func (r *repl) eval(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	for _, m := range replModes {
		if strings.HasPrefix(m.Text, ":") && line == m.Text {
			r.mode = line
			fmt.Fprintf(r.out, "mode %s\n", line)
			return nil
		}
	}

	switch r.mode {
	case ":explain":
		decisions, err := r.seg.Explain(ctx, line)
		if err != nil {
			return err
		}
		for _, d := range decisions {
			fmt.Fprintf(r.out, "%-12q break=%-5v %s\n", d.Token.Text, d.Break, d.Reason)
		}
		return nil
	}

	sentences, err := r.seg.Segment(ctx, line)
	if err != nil {
		return err
	}
	for i, s := range sentences {
		if r.mode == ":words" {
			s = strings.Join(r.seg.TokenizeWords(s), " | ")
		}
		fmt.Fprintf(r.out, "%d: %s\n", i+1, s)
	}
	return nil
}
