package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

func segmentCommand() *cli.Command {
	return &cli.Command{
		Name:      "segment",
		Usage:     "split text into sentences, one per line",
		ArgsUsage: "[TEXT]",
		Flags: append(modelFlags(),
			&cli.BoolFlag{Name: "spans", Usage: "prefix each sentence with its byte range"},
			&cli.BoolFlag{Name: "complete", Usage: "only report whether the text ends a sentence"},
		),
		Action: runSegment,
	}
}

func runSegment(c *cli.Context) error {
	seg, err := openSegmenter(c)
	if err != nil {
		return err
	}
	text, err := inputText(c)
	if err != nil {
		return err
	}
	out := c.App.Writer

	if c.Bool("complete") {
		complete, err := seg.IsComplete(c.Context, text)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, complete)
		return nil
	}

	spans, err := seg.SegmentSpans(c.Context, text)
	if err != nil {
		return err
	}
	for _, sp := range spans {
		sent := sp.Trimmed()
		if sent == "" {
			continue
		}
		if c.Bool("spans") {
			fmt.Fprintf(out, "%d\t%d\t", sp.Start, sp.End)
		}
		fmt.Fprintln(out, sent)
	}
	return nil
}

func tokenizeCommand() *cli.Command {
	return &cli.Command{
		Name:      "tokenize",
		Usage:     "split text into sentences and words, one sentence per line",
		ArgsUsage: "[TEXT]",
		Flags:     modelFlags(),
		Action: func(c *cli.Context) error {
			seg, err := openSegmenter(c)
			if err != nil {
				return err
			}
			text, err := inputText(c)
			if err != nil {
				return err
			}
			sentences, err := seg.Segment(c.Context, text)
			if err != nil {
				return err
			}
			for _, s := range sentences {
				fmt.Fprintln(c.App.Writer, strings.Join(seg.TokenizeWords(s), " "))
			}
			return nil
		},
	}
}

func explainCommand() *cli.Command {
	return &cli.Command{
		Name:      "explain",
		Usage:     "show the boundary decision for every candidate token",
		ArgsUsage: "[TEXT]",
		Flags:     modelFlags(),
		Action: func(c *cli.Context) error {
			seg, err := openSegmenter(c)
			if err != nil {
				return err
			}
			text, err := inputText(c)
			if err != nil {
				return err
			}
			decisions, err := seg.Explain(c.Context, text)
			if err != nil {
				return err
			}
			for _, d := range decisions {
				verdict := "continue"
				if d.Break {
					verdict = "break"
				}
				fmt.Fprintf(c.App.Writer, "%d\t%-12q\t%-8s\t%s\n", d.Token.Start, d.Token.Text, verdict, d.Reason)
			}
			return nil
		},
	}
}

func modelsCommand() *cli.Command {
	return &cli.Command{
		Name:  "models",
		Usage: "list the models in the configured store",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			s, closeStore, err := cfg.OpenStore()
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			names, err := s.List(c.Context)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(c.App.Writer, name)
			}
			return nil
		},
	}
}
