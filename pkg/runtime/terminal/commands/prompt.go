package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Prompter handles the two interactive moments of a run: scope
// selection and the permission-gate confirmation.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Scope asks for the region to assess, defaulting to the profile's
// configured region.
func (p *Prompter) Scope(defaultRegion string) string {
	if defaultRegion == "" {
		defaultRegion = "us-east-1"
	}
	fmt.Fprintf(p.out, "Region to assess [%s]: ", defaultRegion)
	answer := p.read()
	if answer == "" {
		return defaultRegion
	}
	return answer
}

// ConfirmShortfall asks whether to continue despite incomplete
// capability coverage. Default is no: declining aborts the run.
func (p *Prompter) ConfirmShortfall(availablePct int) bool {
	warn := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(p.out, "%s Only %d%% of required capabilities are available. Continue anyway? [y/N]: ",
		warn("WARNING:"), availablePct)
	answer := strings.ToLower(p.read())
	return answer == "y" || answer == "yes"
}

func (p *Prompter) read() string {
	if !p.in.Scan() {
		return ""
	}
	return strings.TrimSpace(p.in.Text())
}
