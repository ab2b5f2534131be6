package errors

import (
	stderrors "errors"
	"strings"
)

// messenger is implemented by errors that can describe their own link of a chain
// without repeating the cause.
type messenger interface {
	Message() string
}

// Chain returns the message of every link in err's causal chain, outermost
// first, ending with the root cause. Each entry describes one link only: the
// cause's text is stripped from wrappers built with fmt.Errorf("...: %w").
func Chain(err error) []string {
	var links []string
	for err != nil {
		next := stderrors.Unwrap(err)
		links = append(links, linkMessage(err, next))
		err = next
	}
	return links
}

func linkMessage(err, next error) string {
	if m, ok := err.(messenger); ok && m.Message() != "" {
		return m.Message()
	}
	msg := err.Error()
	if next == nil {
		return msg
	}
	if trimmed, ok := strings.CutSuffix(msg, ": "+next.Error()); ok && trimmed != "" {
		return trimmed
	}
	return msg
}

// FormatChain renders err for display: the outermost error on the first line
// prefixed with "Error: ", then one "\tCaused by: " line per cause in order,
// ending with the root cause.
func FormatChain(err error) string {
	links := Chain(err)
	if len(links) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(links[0])
	for _, cause := range links[1:] {
		b.WriteString("\n\tCaused by: ")
		b.WriteString(cause)
	}
	return b.String()
}
