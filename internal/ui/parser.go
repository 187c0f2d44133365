package ui

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ParseCSS parses a stylesheet. Only single .class and #id selectors are kept; rules with other
// selectors and everything inside at-rules are skipped. Later rules override earlier ones for
// the same property.
func ParseCSS(r io.Reader) (*Stylesheet, error) {
	p := css.NewParser(parse.NewInput(r), false)
	sheet := &Stylesheet{}
	var cur *Rule
	atDepth := 0
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("ui: parse css: %w", err)
			}
			return sheet, nil
		case css.BeginAtRuleGrammar:
			atDepth++
		case css.EndAtRuleGrammar:
			atDepth--
		case css.BeginRulesetGrammar:
			sel := strings.TrimSpace(joinTokens(p.Values()))
			if atDepth == 0 && isSimpleSelector(sel) {
				cur = &Rule{Selector: sel, Props: make(map[string]string)}
			}
		case css.DeclarationGrammar:
			if cur != nil {
				cur.Props[strings.ToLower(string(data))] = strings.TrimSpace(joinTokens(p.Values()))
			}
		case css.EndRulesetGrammar:
			if cur != nil {
				sheet.Rules = append(sheet.Rules, *cur)
				cur = nil
			}
		}
	}
}

// ParseCSSString parses a stylesheet held in memory.
func ParseCSSString(content string) (*Stylesheet, error) {
	return ParseCSS(strings.NewReader(content))
}

func joinTokens(toks []css.Token) string {
	var b bytes.Buffer
	for _, t := range toks {
		b.Write(t.Data)
	}
	return b.String()
}

func isSimpleSelector(sel string) bool {
	if len(sel) < 2 || (sel[0] != '.' && sel[0] != '#') {
		return false
	}
	return !strings.ContainsAny(sel[1:], " .#>+~:,[")
}
