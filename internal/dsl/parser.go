package dsl

import (
	"fmt"
	"go/parser"
	"strconv"
	"strings"

	"github.com/viant/parsly"

	"view-generator/internal/diagnostic"
	"view-generator/internal/schema"
)

// errAbort unwinds the parser after the first syntax error.
type errAbort struct{}

type parseState struct {
	cursor  *parsly.Cursor
	file    *File
	diags   *diagnostic.Diagnostics
	pending []Annotation
}

// Parse parses a declaration body. On any error it returns a nil File and
// the diagnostics describing the failure.
func Parse(name string, src []byte) (*File, *diagnostic.Diagnostics) {
	p := &parseState{
		cursor: parsly.NewCursor(name, src, 0),
		file:   &File{Name: name},
		diags:  &diagnostic.Diagnostics{},
	}

	if !p.run() {
		return nil, p.diags
	}

	p.checkDuplicates()

	if p.diags.HasErrors() {
		return nil, p.diags
	}

	return p.file, p.diags
}

func (p *parseState) run() (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, abort := r.(errAbort); !abort {
				panic(r)
			}

			ok = false
		}
	}()

	for {
		p.skipTrivia()

		if p.atEOF() {
			break
		}

		start := p.cursor.Pos
		matched := p.cursor.MatchOne(atMatcher)
		if matched.Code == atToken {
			p.parseAnnotation(start)
			continue
		}

		kw, span := p.expectIdent("'fragment', 'view' or '@'")

		switch kw {
		case "fragment":
			p.parseFragment(span)
		case "view":
			p.parseView(span)
		default:
			p.fail(span, diagnostic.CodeSyntax, fmt.Sprintf("expected 'fragment', 'view' or '@', found %q", kw))
		}
	}

	if len(p.pending) > 0 {
		p.fail(p.pending[0].Span, diagnostic.CodeDanglingAnnotation, "annotation is not followed by a view")
	}

	return true
}

func (p *parseState) parseAnnotation(start int) {
	target, span := p.expectIdent("annotation target")

	var t Target

	switch target {
	case "owned":
		t = TargetOwned
	case "ref":
		t = TargetRef
	case "mut":
		t = TargetMut
	case "variant":
		t = TargetVariant
	default:
		p.fail(span, diagnostic.CodeSyntax, fmt.Sprintf("unknown annotation target %q (want owned, ref, mut or variant)", target))
	}

	text := p.expectString()
	ann := Annotation{Target: t, Text: text, Span: diagnostic.Span{Offset: start, Len: p.cursor.Pos - start}}

	if t == TargetVariant {
		p.file.Variant = append(p.file.Variant, ann)
		return
	}

	p.pending = append(p.pending, ann)
}

func (p *parseState) parseFragment(kwSpan diagnostic.Span) {
	name, span := p.expectIdent("fragment name")
	frag := &Fragment{Name: name, Span: span}

	if len(p.pending) > 0 {
		p.fail(p.pending[0].Span, diagnostic.CodeDanglingAnnotation, "annotations attach to views, not fragments")
	}

	p.expect(lbraceMatcher)

	p.parseList(func() {
		p.skipTrivia()

		start := p.cursor.Pos
		if p.cursor.MatchOne(spreadMatcher).Code == spreadToken {
			inner, innerSpan := p.expectIdent("fragment name")
			p.fail(diagnostic.Span{Offset: start, Len: innerSpan.End() - start}, diagnostic.CodeNestedSpread,
				fmt.Sprintf("fragment %s cannot include fragment %s", name, inner))
		}

		frag.Fields = append(frag.Fields, p.parseField())
	})

	frag.Span = diagnostic.Span{Offset: kwSpan.Offset, Len: span.End() - kwSpan.Offset}
	p.file.Fragments = append(p.file.Fragments, frag)
}

func (p *parseState) parseView(kwSpan diagnostic.Span) {
	name, span := p.expectIdent("view name")
	view := &View{Name: name, Span: diagnostic.Span{Offset: kwSpan.Offset, Len: span.End() - kwSpan.Offset}}

	for _, ann := range p.pending {
		switch ann.Target {
		case TargetOwned:
			view.Owned = append(view.Owned, ann)
		case TargetRef:
			view.Ref = append(view.Ref, ann)
		case TargetMut:
			view.Mut = append(view.Mut, ann)
		}
	}

	p.pending = nil

	if p.peek(lbracketMatcher) {
		p.expect(lbracketMatcher)

		for {
			param, paramSpan := p.expectIdent("type parameter name")
			view.Params = append(view.Params, Param{Name: param, Span: paramSpan})

			if !p.peek(commaMatcher) {
				break
			}

			p.expect(commaMatcher)
		}

		p.expect(rbracketMatcher)
	}

	p.expect(lbraceMatcher)

	p.parseList(func() {
		p.skipTrivia()

		start := p.cursor.Pos
		if p.cursor.MatchOne(spreadMatcher).Code == spreadToken {
			frag, fragSpan := p.expectIdent("fragment name")
			view.Items = append(view.Items, Item{
				Spread: frag,
				Span:   diagnostic.Span{Offset: start, Len: fragSpan.End() - start},
			})

			return
		}

		field := p.parseField()
		view.Items = append(view.Items, Item{Field: field, Span: field.Span})
	})

	p.file.Views = append(p.file.Views, view)
}

// parseList parses comma separated elements up to the closing brace.
// A trailing comma is allowed.
func (p *parseState) parseList(element func()) {
	for {
		if p.peek(rbraceMatcher) {
			p.expect(rbraceMatcher)
			return
		}

		element()

		if p.peek(commaMatcher) {
			p.expect(commaMatcher)
			continue
		}

		p.expect(rbraceMatcher)

		return
	}
}

func (p *parseState) parseField() *FieldSpec {
	first, span := p.expectIdent("field name or pattern")
	spec := &FieldSpec{Name: first, Span: span}

	switch {
	case p.peek(colonMatcher):
		p.expect(colonMatcher)
		spec.Type, spec.TypeSpan = p.parseType()
	case p.peek(dotMatcher):
		p.expect(dotMatcher)

		sel, _ := p.expectIdent("variant arm name")
		spec.Mode = ModeVariant
		spec.Arm = first + "." + sel
		p.parseBinding(spec)
	case p.peek(lparenMatcher):
		if mode, ok := modeForKeyword(first); ok {
			spec.Mode = mode
		} else {
			spec.Mode = ModeVariant
			spec.Arm = first
		}

		p.parseBinding(spec)
	}

	spec.Span = diagnostic.Span{Offset: span.Offset, Len: p.cursor.Pos - span.Offset}

	p.skipTrivia()

	pos := p.cursor.Pos

	kw := p.cursor.MatchOne(identifierMatcher)
	if kw.Code != identifierToken {
		p.cursor.Pos = pos
		return spec
	}

	if word := kw.Text(p.cursor); word != "if" {
		p.fail(diagnostic.Span{Offset: pos, Len: len(word)}, diagnostic.CodeSyntax,
			fmt.Sprintf("expected ',', '}' or 'if', found %q", word))
	}

	spec.Guard, spec.GuardSpan = p.parseGuard()

	return spec
}

// parseBinding parses "(Field [: Type])" after a pattern keyword or arm.
func (p *parseState) parseBinding(spec *FieldSpec) {
	p.expect(lparenMatcher)

	name, _ := p.expectIdent("field name")
	spec.Name = name

	if p.peek(colonMatcher) {
		p.expect(colonMatcher)
		spec.Type, spec.TypeSpan = p.parseType()
	}

	p.expect(rparenMatcher)
}

func (p *parseState) parseType() (string, diagnostic.Span) {
	p.skipTrivia()

	start := p.cursor.Pos
	matched := p.cursor.MatchOne(typeExprMatcher)
	text := ""

	if matched.Code == typeExprToken {
		text = matched.Text(p.cursor)
	}

	span := diagnostic.Span{Offset: start, Len: len(text)}
	if strings.TrimSpace(text) == "" {
		p.fail(span, diagnostic.CodeSyntax, "expected a type")
	}

	canonical, err := schema.Canonical(text)
	if err != nil {
		p.fail(span, diagnostic.CodeInvalidType, err.Error())
	}

	return canonical, span
}

func (p *parseState) parseGuard() (string, diagnostic.Span) {
	p.skipTrivia()

	start := p.cursor.Pos
	matched := p.cursor.MatchOne(guardExprMatcher)
	text := ""

	if matched.Code == guardExprToken {
		text = matched.Text(p.cursor)
	}

	span := diagnostic.Span{Offset: start, Len: len(text)}
	if strings.TrimSpace(text) == "" {
		p.fail(span, diagnostic.CodeSyntax, "expected a guard expression after 'if'")
	}

	if _, err := parser.ParseExpr(text); err != nil {
		p.fail(span, diagnostic.CodeInvalidGuard, fmt.Sprintf("guard is not a valid Go expression: %v", err))
	}

	return text, span
}

func (p *parseState) expectString() string {
	p.skipTrivia()

	start := p.cursor.Pos

	matched := p.cursor.MatchAny(stringMatcher, rawStringMatcher)
	switch matched.Code {
	case stringToken, rawStringToken:
		lit := matched.Text(p.cursor)

		text, err := strconv.Unquote(lit)
		if err != nil {
			p.fail(diagnostic.Span{Offset: start, Len: len(lit)}, diagnostic.CodeSyntax, "malformed string literal")
		}

		return text
	}

	p.cursor.Pos = start
	p.fail(diagnostic.Span{Offset: start, Len: 1}, diagnostic.CodeSyntax, "expected a string literal")

	return ""
}

func (p *parseState) expectIdent(what string) (string, diagnostic.Span) {
	p.skipTrivia()

	start := p.cursor.Pos

	matched := p.cursor.MatchOne(identifierMatcher)
	if matched.Code != identifierToken {
		p.cursor.Pos = start
		p.fail(diagnostic.Span{Offset: start, Len: 1}, diagnostic.CodeSyntax,
			fmt.Sprintf("expected %s, found %s", what, p.describeNext()))
	}

	text := matched.Text(p.cursor)

	return text, diagnostic.Span{Offset: start, Len: len(text)}
}

func (p *parseState) expect(token *parsly.Token) {
	p.skipTrivia()

	start := p.cursor.Pos
	if p.cursor.MatchOne(token).Code != token.Code {
		p.cursor.Pos = start
		p.fail(diagnostic.Span{Offset: start, Len: 1}, diagnostic.CodeSyntax,
			fmt.Sprintf("expected '%s', found %s", token.Name, p.describeNext()))
	}
}

// peek reports whether token comes next, without consuming it.
func (p *parseState) peek(token *parsly.Token) bool {
	p.skipTrivia()

	start := p.cursor.Pos
	matched := p.cursor.MatchOne(token)
	p.cursor.Pos = start

	return matched.Code == token.Code
}

func (p *parseState) skipTrivia() {
	p.cursor.MatchOne(triviaMatcher)
}

func (p *parseState) atEOF() bool {
	return p.cursor.Pos >= p.cursor.InputSize
}

func (p *parseState) describeNext() string {
	if p.atEOF() {
		return "end of input"
	}

	return strconv.Quote(string(p.cursor.Input[p.cursor.Pos]))
}

func (p *parseState) fail(span diagnostic.Span, code, message string) {
	p.diags.AddError(span, code, message, "", "")
	panic(errAbort{})
}

// checkDuplicates rejects repeated fragment and view names.
func (p *parseState) checkDuplicates() {
	fragments := map[string]bool{}
	for _, f := range p.file.Fragments {
		if fragments[f.Name] {
			p.diags.AddError(f.Span, diagnostic.CodeDuplicateFragment,
				fmt.Sprintf("fragment %s is declared more than once", f.Name), f.Name, "")
		}

		fragments[f.Name] = true
	}

	views := map[string]bool{}
	for _, v := range p.file.Views {
		if views[v.Name] {
			p.diags.AddError(v.Span, diagnostic.CodeDuplicateView,
				fmt.Sprintf("view %s is declared more than once", v.Name), v.Name, "")
		}

		views[v.Name] = true
	}
}
