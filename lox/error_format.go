package lox

import (
	"fmt"
	"strconv"
	"strings"
)

func formatCodeFrame(source string, line int) string {
	if source == "" || line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}

	lineText := strings.TrimRight(lines[line-1], "\r")
	if strings.TrimSpace(lineText) == "" {
		return ""
	}
	lineLabel := strconv.Itoa(line)

	return fmt.Sprintf(
		"  --> line %d\n %s | %s",
		line,
		lineLabel,
		lineText,
	)
}
