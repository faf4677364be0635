package lox

import (
	"fmt"
	"io"
	"regexp"

	"github.com/sanity-io/litter"
)

var dumpOptions = litter.Options{
	StripPackageNames: true,
	FieldExclusions:   regexp.MustCompile(`^source$`),
}

// DumpProgram writes a Go-literal rendering of the program's syntax tree.
// The source text is left out.
func DumpProgram(w io.Writer, program *Program) error {
	_, err := io.WriteString(w, dumpOptions.Sdump(program)+"\n")
	return err
}

// DumpTokens writes one token per line, comments included.
func DumpTokens(w io.Writer, tokens []Token) error {
	for _, tok := range tokens {
		if _, err := fmt.Fprintln(w, tok.String()); err != nil {
			return err
		}
	}
	return nil
}
