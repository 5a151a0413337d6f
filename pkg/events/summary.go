package events

import (
	"fmt"
	"strings"
)

type Summary struct {
	Errors   []Event
	Warnings []Event

	Full []Event
}

func (s Summary) String() string {
	var b strings.Builder

	write := func(title string, events []Event) {
		if len(events) == 0 {
			return
		}
		fmt.Fprintf(&b, "%s (%d):\n", title, len(events))
		for _, e := range events {
			line := e.Message
			if e.Source != "" {
				line = e.Source + ": " + line
			}
			if e.Error != nil {
				fmt.Fprintf(&b, "- %s (%s)\n", line, e.Error.Error())
			} else {
				fmt.Fprintf(&b, "- %s\n", line)
			}
		}
	}

	write("Errors", s.Errors)
	write("Warnings", s.Warnings)

	return strings.TrimSuffix(b.String(), "\n")
}
