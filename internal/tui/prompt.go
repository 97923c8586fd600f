package tui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks simple line-based questions on a terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter builds a Prompter reading answers from in and rendering
// questions to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask renders a question and returns the trimmed answer, falling back
// to def on empty input.
func (p *Prompter) Ask(question, def string) (string, error) {
	label := question
	if def != "" {
		label = fmt.Sprintf("%s [%s]", question, def)
	}
	fmt.Fprint(p.out, PromptStyle.Render(label+": "))
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	answer := strings.TrimSpace(line)
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	answer, err := p.Ask(fmt.Sprintf("%s (%s)", question, hint), "")
	if err != nil {
		return def, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return def, nil
}
