package render

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// codeFormatter emits inline styles so the page needs no generated
// stylesheet beyond the base one.
var codeFormatter = chromahtml.New(chromahtml.WithClasses(false))

// Code renders a code cell source with syntax highlighting for the given
// language. Unknown languages highlight through the fallback lexer; if
// tokenising or formatting fails the escaped source renders instead.
func Code(source, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("github")
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return preBlock(source)
	}
	var buf bytes.Buffer
	if err := codeFormatter.Format(&buf, style, iterator); err != nil {
		return preBlock(source)
	}
	return fmt.Sprintf("<div class='codehilite'>%s</div>", buf.String())
}
