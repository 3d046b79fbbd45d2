package update

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Answer is one of the four accepted prompt responses.
type Answer int

const (
	AnswerNo Answer = iota
	AnswerYes
	AnswerAll
	AnswerQuit
)

// Prompter asks the operator about each pending upgrade. The all and
// quit answers are sticky: once given they are replayed for every
// remaining package in the run without prompting again.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	sticky *Answer
}

// NewPrompter creates a prompter reading answers from in and writing
// prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask prompts for one package and returns the operator's answer,
// short-circuiting to the sticky answer when one has been given.
// Unrecognized input re-prompts; EOF counts as quit.
func (p *Prompter) Ask(pkg PackageUpdate) (Answer, error) {
	if p.sticky != nil {
		return *p.sticky, nil
	}

	for {
		fmt.Fprintf(p.out, "Upgrade %s to %s? [Y]es, [N]o, [A]ll, [Q]uit ", pkg.Name, pkg.Latest)

		line, err := p.in.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				return AnswerQuit, nil
			}
			return AnswerQuit, fmt.Errorf("reading answer: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return AnswerYes, nil
		case "n", "no":
			return AnswerNo, nil
		case "a", "all":
			all := AnswerAll
			p.sticky = &all
			return AnswerAll, nil
		case "q", "quit":
			quit := AnswerQuit
			p.sticky = &quit
			return AnswerQuit, nil
		}
	}
}

// Confirm asks a standalone yes/no question, used for the auto +
// editables safety check. Only an explicit yes returns true.
func Confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
