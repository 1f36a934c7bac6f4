package cli

import (
	"fmt"
	"strings"

	"github.com/agentx-labs/initkit/internal/branding"
	"github.com/agentx-labs/initkit/internal/platform"
)

func (a *app) jsonMode() bool { return a.format == formatJSON }

func (a *app) printJSON(v any) error {
	data, err := platform.MarshalJSON(v)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	_, err = a.out.Write(data)
	return err
}

func (a *app) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *app) warn(msg string) {
	fmt.Fprintln(a.errOut, "[warn] "+msg)
}

// printResult writes a summary line followed by the error and warning
// lists.
func (a *app) printResult(summary string, errs, warnings []string) {
	if summary != "" {
		a.println(summary)
	}
	a.printList("Errors:", errs)
	a.printList("Warnings:", warnings)
}

func (a *app) printList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	a.println("\n" + title)
	for _, item := range items {
		a.println("- " + item)
	}
}

func (a *app) printNotices(notices []string) {
	for _, n := range notices {
		a.println("[auto] " + n)
	}
}

// emit prints v as JSON in json mode and otherwise runs text.
func (a *app) emit(v any, text func()) error {
	if a.jsonMode() {
		return a.printJSON(v)
	}
	text()
	return nil
}

// command renders a suggested follow-up invocation.
func command(args ...string) string {
	return branding.CLIName() + " " + strings.Join(args, " ")
}

func orNone(s, none string) string {
	if s == "" {
		return none
	}
	return s
}
