// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package parse implements Faber's recursive-descent parser: classic
// token-array-plus-cursor state, Pratt-style operator-precedence
// expression parsing, and dedicated per-construct parsers for every
// control-flow statement. Grounded in
// original_source/fons/nanus-py/parser.py, which this file follows
// method-for-method; the structural idiom (cursor/peek/advance/error
// helpers) mirrors the teacher's parser2/parser.go and token/g1.go.
package parse

import (
	"github.com/faberlang/faber/internal/ast"
	"github.com/faberlang/faber/internal/diag"
	"github.com/faberlang/faber/internal/token"
)

// precedence is the fixed operator-precedence table (spec.md §4.2).
var precedence = map[string]int{
	"=": 1, "+=": 1, "-=": 1, "*=": 1, "/=": 1,
	"vel": 2, "??": 2,
	"aut": 3, "||": 3,
	"et": 4, "&&": 4,
	"==": 5, "!=": 5, "===": 5, "!==": 5,
	"<": 6, ">": 6, "<=": 6, ">=": 6, "inter": 6, "intra": 6,
	"+": 7, "-": 7,
	"*": 8, "/": 8, "%": 8,
	"qua": 9, "innatum": 9, "novum": 9,
	"numeratum": 9, "fractatum": 9, "textatum": 9, "bivalentum": 9,
}

var unaryOps = map[string]bool{
	"-": true, "!": true, "~": true, "non": true, "nihil": true, "nonnihil": true,
	"positivum": true, "negativum": true, "nulla": true, "nonnulla": true,
}

var assignOps = map[string]bool{"=": true, "+=": true, "-=": true, "*=": true, "/=": true}

// stmtKeywords is the fixed blacklist _is_statement_keyword draws from:
// tokens that can never start an expression, used to delimit an implicit
// return/throw/print argument list and to reject a unary-operator
// misparse.
var stmtKeywords = map[string]bool{
	"si": true, "sin": true, "secus": true, "dum": true, "fac": true, "ex": true, "de": true, "in": true,
	"elige": true, "discerne": true, "custodi": true,
	"tempta": true, "cape": true, "demum": true, "redde": true, "rumpe": true, "perge": true, "iace": true, "mori": true,
	"scribe": true, "vide": true, "mone": true, "adfirma": true, "functio": true, "genus": true, "pactum": true, "ordo": true,
	"discretio": true, "varia": true, "fixum": true, "figendum": true, "variandum": true,
	"incipit": true, "probandum": true, "proba": true,
	"casu": true, "ceterum": true, "reddit": true, "ergo": true, "tacet": true, "iacit": true, "moritor": true,
	"typus": true, "abstractus": true,
}

// declKeywords is the fixed set _is_declaration_keyword checks, used to
// stop an unknown annotation's argument-skip scan.
var declKeywords = map[string]bool{
	"functio": true, "genus": true, "pactum": true, "ordo": true, "discretio": true, "typus": true,
	"varia": true, "fixum": true, "figendum": true, "variandum": true,
	"incipit": true, "probandum": true, "abstractus": true,
}

// nonExprKeywords is the blacklist _parse_unary consults before admitting
// a unary-operator parse: a keyword that is ALSO in unaryOps (e.g. "si" is
// not, but this set intersects with tokens that can follow a would-be
// unary operator and must NOT be treated as starting an expression).
var nonExprKeywords = map[string]bool{
	"qua": true, "innatum": true, "et": true, "aut": true, "vel": true, "sic": true, "secus": true, "inter": true, "intra": true,
	"perge": true, "rumpe": true, "redde": true, "reddit": true, "iace": true, "mori": true,
	"si": true, "secussi": true, "dum": true, "ex": true, "de": true, "elige": true, "discerne": true, "custodi": true, "tempta": true,
	"functio": true, "genus": true, "pactum": true, "ordo": true, "discretio": true,
	"casu": true, "ceterum": true, "importa": true, "incipit": true, "incipiet": true, "probandum": true, "proba": true,
}

// Parser holds the token array and cursor.
type Parser struct {
	tokens   []token.Token
	pos      int
	filename string
}

// New creates a Parser over the filtered (comment/newline-free) token
// stream produced by lex.Prepare.
func New(filename string, tokens []token.Token) *Parser {
	return &Parser{tokens: tokens, filename: filename}
}

// Parse tokenizes-then-parses is not this function's job; Parse consumes
// an already-filtered token stream and returns the module, or the first
// positioned syntax error encountered.
func Parse(filename string, tokens []token.Token) (mod *ast.Modulus, err error) {
	p := New(filename, tokens)
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(parseAbort); ok {
				err = pe.err
				return
			}
			panic(r)
		}
	}()
	mod = p.parseModule()
	return mod, nil
}

// parseAbort is the panic payload used to unwind to Parse on the first
// syntax error, mirroring the Python parser's exception-based abort
// (spec.md §4.2: "raises a single positioned diagnostic").
type parseAbort struct{ err *diag.Error }

func (p *Parser) fail(loc diag.Locus, format string, args ...interface{}) {
	panic(parseAbort{diag.New(loc, format, args...)})
}

// --- cursor helpers ---

func (p *Parser) peek() token.Token { return p.peekAt(0) }

func (p *Parser) peekAt(offset int) token.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) advance() token.Token {
	t := p.tokens[p.pos]
	p.pos++
	return t
}

func (p *Parser) check(tag token.Tag, lexeme string) bool {
	t := p.peek()
	if t.Tag != tag {
		return false
	}
	if lexeme != "" && t.Lexeme != lexeme {
		return false
	}
	return true
}

// match consumes and returns true if the current token matches; it never
// returns the token itself (callers that need the lexeme re-peek before
// calling match, matching the Python match()'s Optional[Token] style
// being used mostly as a boolean in this port).
func (p *Parser) match(tag token.Tag, lexeme string) bool {
	if p.check(tag, lexeme) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(tag token.Tag, lexeme string) token.Token {
	if p.check(tag, lexeme) {
		return p.advance()
	}
	got := p.peek()
	want := lexeme
	if want == "" {
		want = tag.String()
	}
	p.fail(got.Locus, "expected %s, got '%s'", want, got.Lexeme)
	panic("unreachable")
}

func (p *Parser) expectName() token.Token {
	t := p.peek()
	if t.Tag == token.Identifier || t.Tag == token.Keyword {
		return p.advance()
	}
	p.fail(t.Locus, "expected identifier, got '%s'", t.Lexeme)
	panic("unreachable")
}

func (p *Parser) checkName() bool {
	t := p.peek()
	return t.Tag == token.Identifier || t.Tag == token.Keyword
}

func (p *Parser) isStatementKeyword() bool {
	if !p.check(token.Keyword, "") {
		return false
	}
	return stmtKeywords[p.peek().Lexeme]
}

func (p *Parser) isDeclarationKeyword() bool {
	if !p.check(token.Keyword, "") {
		return false
	}
	return declKeywords[p.peek().Lexeme]
}

// --- module / top-level dispatch ---

func (p *Parser) parseModule() *ast.Modulus {
	var corpus []ast.Stmt
	for !p.check(token.EOF, "") {
		corpus = append(corpus, p.parseStmt())
	}
	return &ast.Modulus{Corpus: corpus, At: diag.Locus{File: p.filename, Line: 1, Col: 1, Index: 0}}
}

func (p *Parser) parseStmt() ast.Stmt {
	publica, futura, externa := false, false, false

	for p.match(token.Punctuator, "@") {
		pub, fut, ext := p.parseAnnotatio()
		publica = publica || pub
		futura = futura || fut
		externa = externa || ext
	}

	if p.match(token.Punctuator, "§") {
		return p.parseSectio()
	}

	tok := p.peek()
	if tok.Tag == token.Keyword {
		switch tok.Lexeme {
		case "varia", "fixum", "figendum", "variandum":
			return p.parseVaria(publica, externa)
		case "ex":
			return p.parseExStmt(publica)
		case "itera":
			return p.parseIteratio(publica)
		case "functio":
			return p.parseFunctio(publica, futura, externa)
		case "abstractus":
			p.advance()
			if p.check(token.Keyword, "genus") {
				return p.parseGenus(publica, true)
			}
			p.fail(p.peek().Locus, "expected 'genus' after 'abstractus'")
		case "genus":
			return p.parseGenus(publica, false)
		case "pactum":
			return p.parsePactum(publica)
		case "ordo":
			return p.parseOrdo(publica)
		case "discretio":
			return p.parseDiscretio(publica)
		case "typus":
			return p.parseTypusAlias(publica)
		case "in":
			return p.parseInStmt()
		case "de":
			return p.parseDeStmt()
		case "si":
			return p.parseSi()
		case "dum":
			return p.parseDum()
		case "fac":
			return p.parseFac()
		case "elige":
			return p.parseElige()
		case "discerne":
			return p.parseDiscerne()
		case "custodi":
			return p.parseCustodi()
		case "tempta":
			return p.parseTempta()
		case "redde":
			return p.parseRedde()
		case "iace", "mori":
			return p.parseIace()
		case "scribe", "vide", "mone":
			return p.parseScribe()
		case "adfirma":
			return p.parseAdfirma()
		case "rumpe":
			return p.parseRumpe()
		case "perge":
			return p.parsePerge()
		case "incipit", "incipiet":
			return p.parseIncipit()
		case "probandum":
			return p.parseProbandum()
		case "proba":
			return p.parseProba()
		}
	}

	if p.check(token.Punctuator, "{") {
		return p.parseMassa()
	}

	return p.parseExpressiaStmt()
}

func (p *Parser) parseSectio() ast.Stmt {
	tok := p.peek()
	if tok.Tag != token.Identifier && tok.Tag != token.Keyword {
		p.fail(tok.Locus, "expected keyword after §")
	}
	keyword := p.advance().Lexeme
	switch keyword {
	case "importa":
		return p.parseSectioImporta()
	case "sectio":
		return p.parseSectioSectio()
	case "ex":
		return p.parseSectioExLegacy()
	default:
		p.fail(tok.Locus, "unknown § keyword: %s", keyword)
		panic("unreachable")
	}
}

func (p *Parser) parseImportTail(locus diag.Locus) ast.Stmt {
	if p.match(token.Operator, "*") {
		var alias *string
		if p.match(token.Keyword, "ut") {
			a := p.expect(token.Identifier, "").Lexeme
			alias = &a
		}
		return &ast.StmtImporta{Pos: ast.Pos{At: locus}, Totum: true, Alias: alias}
	}

	var specs []ast.ImportSpec
	for {
		loc := p.peek().Locus
		imported := p.expect(token.Identifier, "").Lexeme
		local := imported
		if p.match(token.Keyword, "ut") {
			local = p.expect(token.Identifier, "").Lexeme
		}
		specs = append(specs, ast.ImportSpec{Imported: imported, Local: local, At: loc})
		if !p.match(token.Punctuator, ",") {
			break
		}
	}
	return &ast.StmtImporta{Pos: ast.Pos{At: locus}, Specs: specs}
}

func (p *Parser) parseSectioImporta() ast.Stmt {
	locus := p.peek().Locus
	p.expect(token.Keyword, "ex")
	fons := p.expect(token.String, "").Lexeme
	stmt := p.parseImportTail(locus)
	stmt.(*ast.StmtImporta).Fons = fons
	return stmt
}

func (p *Parser) parseSectioSectio() ast.Stmt {
	locus := p.peek().Locus
	p.expect(token.String, "") // section name, ignored
	return &ast.StmtExpressia{
		Pos:  ast.Pos{At: locus},
		Expr: &ast.ExprLittera{Pos: ast.Pos{At: locus}, Species: ast.LitNihil, Valor: "null"},
	}
}

func (p *Parser) parseSectioExLegacy() ast.Stmt {
	locus := p.peek().Locus
	fons := p.expect(token.String, "").Lexeme
	p.expect(token.Keyword, "importa")
	stmt := p.parseImportTail(locus)
	stmt.(*ast.StmtImporta).Fons = fons
	return stmt
}

// parseAnnotatio dispatches an @ annotation, returning (publica, futura, externa).
func (p *Parser) parseAnnotatio() (bool, bool, bool) {
	tok := p.peek()
	if tok.Tag != token.Identifier && tok.Tag != token.Keyword {
		p.fail(tok.Locus, "expected keyword after @")
	}
	keyword := p.advance().Lexeme
	switch keyword {
	case "publica", "publicum":
		return true, false, false
	case "privata", "privatum":
		return false, false, false
	case "futura":
		return false, true, false
	case "externa":
		return false, false, true
	case "innatum", "subsidia", "radix", "verte":
		p.skipAnnotatioArgs()
		return false, false, false
	case "cli", "versio", "descriptio", "optio", "operandus", "imperium", "alias", "imperia", "nomen":
		p.skipAnnotatioArgs()
		return false, false, false
	case "indentum", "tabulae", "latitudo", "ordinatio", "separaGroups", "bracchiae", "methodiSeparatio":
		p.skipAnnotatioArgs()
		return false, false, false
	default:
		p.fail(tok.Locus, "unknown @ keyword: %s", keyword)
		panic("unreachable")
	}
}

func (p *Parser) skipAnnotatioArgs() {
	for !p.check(token.EOF, "") && !p.check(token.Punctuator, "@") && !p.check(token.Punctuator, "§") && !p.isDeclarationKeyword() {
		p.advance()
	}
}

func (p *Parser) parseVaria(publica, externa bool) ast.Stmt {
	locus := p.peek().Locus
	kw := p.advance().Lexeme
	species := ast.Varia
	switch kw {
	case "figendum":
		species = ast.Figendum
	case "fixum":
		species = ast.Fixum
	case "variandum":
		species = ast.Variandum
	}

	var typus ast.Typus
	first := p.expectName().Lexeme
	var nomen string

	switch {
	case p.check(token.Operator, "<"):
		p.advance()
		var args []ast.Typus
		for {
			args = append(args, p.parseTypus())
			if !p.match(token.Punctuator, ",") {
				break
			}
		}
		p.expect(token.Operator, ">")
		var gt ast.Typus = &ast.TypusGenericus{Nomen: first, Args: args}
		if p.match(token.Punctuator, "?") {
			gt = &ast.TypusNullabilis{Inner: gt}
		}
		typus = gt
		nomen = p.expectName().Lexeme
	case p.match(token.Punctuator, "?"):
		typus = &ast.TypusNullabilis{Inner: &ast.TypusNomen{Nomen: first}}
		nomen = p.expectName().Lexeme
	case p.checkName():
		typus = &ast.TypusNomen{Nomen: first}
		nomen = p.expectName().Lexeme
	default:
		nomen = first
	}

	var valor ast.Expr
	if p.match(token.Operator, "=") {
		valor = p.parseExpr(0)
	}

	return &ast.StmtVaria{
		Pos: ast.Pos{At: locus}, Nomen: nomen, Species: species, Typus: typus, Valor: valor,
		Publica: publica, Externa: externa,
	}
}

// parseIteratio consumes the leading 'itera' keyword of an
// 'itera ex EXPR fixum NAME { }' or 'itera de EXPR fixum NAME { }' loop,
// then dispatches to the shared ex/de handlers. parseStmt also reaches
// those handlers directly for the bare 'ex ...'/'de ...' forms.
func (p *Parser) parseIteratio(publica bool) ast.Stmt {
	p.expect(token.Keyword, "itera")
	if p.check(token.Keyword, "de") {
		return p.parseDeStmt()
	}
	return p.parseExStmt(publica)
}

func (p *Parser) parseExStmt(publica bool) ast.Stmt {
	locus := p.peek().Locus
	p.expect(token.Keyword, "ex")
	expr := p.parseExpr(0)

	if p.check(token.Keyword, "fixum") || p.check(token.Keyword, "varia") {
		p.advance()
		binding := p.expect(token.Identifier, "").Lexeme
		corpus := p.parseMassa()
		return &ast.StmtIteratio{Pos: ast.Pos{At: locus}, Binding: binding, Iter: expr, Corpus: corpus, Species: ast.IterEx}
	}

	p.fail(locus, "destructuring not supported")
	panic("unreachable")
}

func (p *Parser) parseFunctio(publica, futura, externa bool) ast.Stmt {
	locus := p.peek().Locus
	p.expect(token.Keyword, "functio")
	asynca := futura

	nomen := p.expectName().Lexeme

	var generics []string
	if p.match(token.Operator, "<") {
		for {
			generics = append(generics, p.expect(token.Identifier, "").Lexeme)
			if !p.match(token.Punctuator, ",") {
				break
			}
		}
		p.expect(token.Operator, ">")
	}

	p.expect(token.Punctuator, "(")
	params := p.parseParams()
	p.expect(token.Punctuator, ")")

	var typusReditus ast.Typus
	if p.match(token.Operator, "->") {
		typusReditus = p.parseTypus()
	}

	var corpus ast.Stmt
	if p.check(token.Punctuator, "{") {
		corpus = p.parseMassa()
	}

	return &ast.StmtFunctio{
		Pos: ast.Pos{At: locus}, Nomen: nomen, Params: params, TypusReditus: typusReditus,
		Corpus: corpus, Asynca: asynca, Publica: publica, Generics: generics, Externa: externa,
	}
}

func (p *Parser) parseParams() []ast.Param {
	var params []ast.Param
	if p.check(token.Punctuator, ")") {
		return params
	}

	for {
		locus := p.peek().Locus
		rest := p.match(token.Keyword, "ceteri")
		optional := p.match(token.Keyword, "si")

		ownership := ""
		switch {
		case p.match(token.Keyword, "ex"):
			ownership = "ex"
		case p.match(token.Keyword, "de"):
			ownership = "de"
		case p.match(token.Keyword, "in"):
			ownership = "in"
		}

		var typus ast.Typus
		var nomen string

		if !p.checkName() {
			p.fail(p.peek().Locus, "expected parameter name")
		}
		first := p.expectName().Lexeme

		switch {
		case p.match(token.Operator, "<"):
			var args []ast.Typus
			for {
				args = append(args, p.parseTypus())
				if !p.match(token.Punctuator, ",") {
					break
				}
			}
			p.expect(token.Operator, ">")
			var gt ast.Typus = &ast.TypusGenericus{Nomen: first, Args: args}
			if p.match(token.Punctuator, "?") {
				gt = &ast.TypusNullabilis{Inner: gt}
			}
			typus = gt
			nomen = p.expectName().Lexeme
		case p.match(token.Punctuator, "?"):
			typus = &ast.TypusNullabilis{Inner: &ast.TypusNomen{Nomen: first}}
			nomen = p.expectName().Lexeme
		case p.checkName():
			typus = &ast.TypusNomen{Nomen: first}
			nomen = p.expectName().Lexeme
		default:
			nomen = first
		}

		if optional && typus != nil {
			if _, ok := typus.(*ast.TypusNullabilis); !ok {
				typus = &ast.TypusNullabilis{Inner: typus}
			}
		}

		var def ast.Expr
		if p.match(token.Operator, "=") {
			def = p.parseExpr(0)
		}

		params = append(params, ast.Param{
			Nomen: nomen, Typus: typus, Default: def, Rest: rest, Optional: optional,
			Ownership: ownership, At: locus,
		})

		if !p.match(token.Punctuator, ",") {
			break
		}
	}

	return params
}

func (p *Parser) parseGenus(publica, abstractus bool) ast.Stmt {
	locus := p.peek().Locus
	p.expect(token.Keyword, "genus")
	nomen := p.expect(token.Identifier, "").Lexeme

	var generics []string
	if p.match(token.Operator, "<") {
		for {
			generics = append(generics, p.expect(token.Identifier, "").Lexeme)
			if !p.match(token.Punctuator, ",") {
				break
			}
		}
		p.expect(token.Operator, ">")
	}

	var implet []string
	if p.match(token.Keyword, "implet") {
		for {
			implet = append(implet, p.expect(token.Identifier, "").Lexeme)
			if !p.match(token.Punctuator, ",") {
				break
			}
		}
	}

	p.expect(token.Punctuator, "{")

	var campi []ast.CampusDecl
	var methodi []ast.Stmt

	for !p.check(token.Punctuator, "}") && !p.check(token.EOF, "") {
		for p.match(token.Punctuator, "@") {
			tok := p.peek()
			if tok.Tag != token.Identifier && tok.Tag != token.Keyword {
				p.fail(tok.Locus, "expected annotation name")
			}
			p.advance()
		}

		visibilitas := "Publica"
		if p.match(token.Keyword, "privata") || p.match(token.Keyword, "privatus") {
			visibilitas = "Privata"
		} else if p.match(token.Keyword, "protecta") || p.match(token.Keyword, "protectus") {
			visibilitas = "Protecta"
		}

		if p.check(token.Keyword, "functio") {
			methodi = append(methodi, p.parseFunctio(false, false, false))
			continue
		}

		loc := p.peek().Locus
		first := p.expectName().Lexeme
		var fieldTypus ast.Typus
		var fieldNomen string

		if p.match(token.Operator, "<") {
			var args []ast.Typus
			for {
				args = append(args, p.parseTypus())
				if !p.match(token.Punctuator, ",") {
					break
				}
			}
			p.expect(token.Operator, ">")
			var gt ast.Typus = &ast.TypusGenericus{Nomen: first, Args: args}
			if p.match(token.Punctuator, "?") {
				gt = &ast.TypusNullabilis{Inner: gt}
			}
			fieldTypus = gt
			fieldNomen = p.expectName().Lexeme
		} else {
			nullable := p.match(token.Punctuator, "?")
			if p.checkName() {
				fieldTypus = &ast.TypusNomen{Nomen: first}
				if nullable {
					fieldTypus = &ast.TypusNullabilis{Inner: fieldTypus}
				}
				fieldNomen = p.expectName().Lexeme
			} else {
				p.fail(loc, "expected field type or name")
			}
		}

		var valor ast.Expr
		if p.match(token.Operator, "=") {
			valor = p.parseExpr(0)
		}

		campi = append(campi, ast.CampusDecl{Nomen: fieldNomen, Typus: fieldTypus, Valor: valor, Visibilitas: visibilitas, At: loc})
	}

	p.expect(token.Punctuator, "}")
	return &ast.StmtGenus{
		Pos: ast.Pos{At: locus}, Nomen: nomen, Campi: campi, Methodi: methodi, Implet: implet,
		Generics: generics, Publica: publica, Abstractus: abstractus,
	}
}

func (p *Parser) parsePactum(publica bool) ast.Stmt {
	locus := p.peek().Locus
	p.expect(token.Keyword, "pactum")
	nomen := p.expect(token.Identifier, "").Lexeme

	var generics []string
	if p.match(token.Operator, "<") {
		for {
			generics = append(generics, p.expect(token.Identifier, "").Lexeme)
			if !p.match(token.Punctuator, ",") {
				break
			}
		}
		p.expect(token.Operator, ">")
	}

	p.expect(token.Punctuator, "{")

	var methodi []ast.PactumMethodus
	for !p.check(token.Punctuator, "}") && !p.check(token.EOF, "") {
		loc := p.peek().Locus
		p.expect(token.Keyword, "functio")
		asynca := p.match(token.Keyword, "asynca")
		name := p.expect(token.Identifier, "").Lexeme
		p.expect(token.Punctuator, "(")
		params := p.parseParams()
		p.expect(token.Punctuator, ")")
		var typusReditus ast.Typus
		if p.match(token.Operator, "->") {
			typusReditus = p.parseTypus()
		}
		methodi = append(methodi, ast.PactumMethodus{Nomen: name, Params: params, TypusReditus: typusReditus, Asynca: asynca, At: loc})
	}

	p.expect(token.Punctuator, "}")
	return &ast.StmtPactum{Pos: ast.Pos{At: locus}, Nomen: nomen, Methodi: methodi, Generics: generics, Publica: publica}
}

func (p *Parser) parseOrdo(publica bool) ast.Stmt {
	locus := p.peek().Locus
	p.expect(token.Keyword, "ordo")
	nomen := p.expect(token.Identifier, "").Lexeme
	p.expect(token.Punctuator, "{")

	var membra []ast.OrdoMembrum
	for !p.check(token.Punctuator, "}") && !p.check(token.EOF, "") {
		loc := p.peek().Locus
		name := p.expect(token.Identifier, "").Lexeme
		var valor *string
		if p.match(token.Operator, "=") {
			tok := p.peek()
			var v string
			if tok.Tag == token.String {
				v = `"` + tok.Lexeme + `"`
			} else {
				v = tok.Lexeme
			}
			valor = &v
			p.advance()
		}
		membra = append(membra, ast.OrdoMembrum{Nomen: name, Valor: valor, At: loc})
		p.match(token.Punctuator, ",")
	}

	p.expect(token.Punctuator, "}")
	return &ast.StmtOrdo{Pos: ast.Pos{At: locus}, Nomen: nomen, Membra: membra, Publica: publica}
}

func (p *Parser) parseDiscretio(publica bool) ast.Stmt {
	locus := p.peek().Locus
	p.expect(token.Keyword, "discretio")
	nomen := p.expect(token.Identifier, "").Lexeme

	var generics []string
	if p.match(token.Operator, "<") {
		for {
			generics = append(generics, p.expect(token.Identifier, "").Lexeme)
			if !p.match(token.Punctuator, ",") {
				break
			}
		}
		p.expect(token.Operator, ">")
	}

	p.expect(token.Punctuator, "{")

	var variantes []ast.VariansDecl
	for !p.check(token.Punctuator, "}") && !p.check(token.EOF, "") {
		loc := p.peek().Locus
		name := p.expect(token.Identifier, "").Lexeme
		var campi []ast.VariansCampus

		if p.match(token.Punctuator, "{") {
			for !p.check(token.Punctuator, "}") && !p.check(token.EOF, "") {
				typNomen := p.expectName().Lexeme
				var fieldTypus ast.Typus

				if p.match(token.Operator, "<") {
					var args []ast.Typus
					for {
						args = append(args, p.parseTypus())
						if !p.match(token.Punctuator, ",") {
							break
						}
					}
					p.expect(token.Operator, ">")
					fieldTypus = &ast.TypusGenericus{Nomen: typNomen, Args: args}
				} else {
					fieldTypus = &ast.TypusNomen{Nomen: typNomen}
				}

				if p.match(token.Punctuator, "?") {
					fieldTypus = &ast.TypusNullabilis{Inner: fieldTypus}
				}

				fieldNomen := p.expectName().Lexeme
				campi = append(campi, ast.VariansCampus{Nomen: fieldNomen, Typus: fieldTypus})

				if !p.match(token.Punctuator, ",") {
					break
				}
			}
			p.expect(token.Punctuator, "}")
		}

		variantes = append(variantes, ast.VariansDecl{Nomen: name, Campi: campi, At: loc})
		p.match(token.Punctuator, ",")
	}

	p.expect(token.Punctuator, "}")
	return &ast.StmtDiscretio{Pos: ast.Pos{At: locus}, Nomen: nomen, Variantes: variantes, Generics: generics, Publica: publica}
}

func (p *Parser) parseTypusAlias(publica bool) ast.Stmt {
	locus := p.peek().Locus
	p.expect(token.Keyword, "typus")
	nomen := p.expect(token.Identifier, "").Lexeme
	p.expect(token.Operator, "=")
	typus := p.parseTypus()
	return &ast.StmtTypusAlias{Pos: ast.Pos{At: locus}, Nomen: nomen, Typus: typus, Publica: publica}
}

func (p *Parser) parseInStmt() ast.Stmt {
	locus := p.peek().Locus
	p.expect(token.Keyword, "in")
	expr := p.parseExpr(0)
	corpus := p.parseMassa()
	return &ast.StmtIn{Pos: ast.Pos{At: locus}, Expr: expr, Corpus: corpus}
}

func (p *Parser) parseDeStmt() ast.Stmt {
	locus := p.peek().Locus
	p.expect(token.Keyword, "de")
	expr := p.parseExpr(0)

	if !p.check(token.Keyword, "fixum") && !p.check(token.Keyword, "varia") {
		p.fail(p.peek().Locus, "expected 'fixum' or 'varia' after 'de' expression")
	}
	p.advance()
	binding := p.expect(token.Identifier, "").Lexeme
	corpus := p.parseMassa()
	return &ast.StmtIteratio{Pos: ast.Pos{At: locus}, Binding: binding, Iter: expr, Corpus: corpus, Species: ast.IterDe}
}

func (p *Parser) parseMassa() ast.Stmt {
	locus := p.peek().Locus
	p.expect(token.Punctuator, "{")
	var corpus []ast.Stmt
	for !p.check(token.Punctuator, "}") && !p.check(token.EOF, "") {
		corpus = append(corpus, p.parseStmt())
	}
	p.expect(token.Punctuator, "}")
	return &ast.StmtMassa{Pos: ast.Pos{At: locus}, Corpus: corpus}
}

// parseBody parses either a brace block or one of the short-form single
// statement bodies: `ergo STMT`, `reddit expr`, `iacit expr`, `moritor
// expr`, `tacet`.
func (p *Parser) parseBody() ast.Stmt {
	locus := p.peek().Locus

	if p.check(token.Punctuator, "{") {
		return p.parseMassa()
	}

	if p.match(token.Identifier, "ergo") {
		stmt := p.parseStmt()
		return &ast.StmtMassa{Pos: ast.Pos{At: locus}, Corpus: []ast.Stmt{stmt}}
	}

	if p.match(token.Keyword, "reddit") {
		valor := p.parseExpr(0)
		return &ast.StmtMassa{Pos: ast.Pos{At: locus}, Corpus: []ast.Stmt{&ast.StmtRedde{Pos: ast.Pos{At: locus}, Valor: valor}}}
	}

	if p.match(token.Identifier, "iacit") {
		arg := p.parseExpr(0)
		return &ast.StmtMassa{Pos: ast.Pos{At: locus}, Corpus: []ast.Stmt{&ast.StmtIace{Pos: ast.Pos{At: locus}, Arg: arg}}}
	}

	if p.match(token.Identifier, "moritor") {
		arg := p.parseExpr(0)
		return &ast.StmtMassa{Pos: ast.Pos{At: locus}, Corpus: []ast.Stmt{&ast.StmtIace{Pos: ast.Pos{At: locus}, Arg: arg, Fatale: true}}}
	}

	if p.match(token.Keyword, "tacet") {
		return &ast.StmtMassa{Pos: ast.Pos{At: locus}}
	}

	return p.parseMassa()
}

func (p *Parser) parseSi() ast.Stmt {
	locus := p.peek().Locus
	p.expect(token.Keyword, "si")
	return p.parseSiBody(locus)
}

func (p *Parser) parseSiBody(locus diag.Locus) ast.Stmt {
	cond := p.parseExpr(0)
	cons := p.parseBody()
	var alt ast.Stmt
	if p.match(token.Keyword, "sin") {
		sinLocus := p.peek().Locus
		alt = p.parseSiBody(sinLocus)
	} else if p.match(token.Keyword, "secus") {
		if p.check(token.Keyword, "si") {
			alt = p.parseSi()
		} else {
			alt = p.parseBody()
		}
	}
	return &ast.StmtSi{Pos: ast.Pos{At: locus}, Cond: cond, Cons: cons, Alt: alt}
}

func (p *Parser) parseDum() ast.Stmt {
	locus := p.peek().Locus
	p.expect(token.Keyword, "dum")
	cond := p.parseExpr(0)
	corpus := p.parseBody()
	return &ast.StmtDum{Pos: ast.Pos{At: locus}, Cond: cond, Corpus: corpus}
}

func (p *Parser) parseFac() ast.Stmt {
	locus := p.peek().Locus
	p.expect(token.Keyword, "fac")
	corpus := p.parseMassa()
	p.expect(token.Keyword, "dum")
	cond := p.parseExpr(0)
	return &ast.StmtFacDum{Pos: ast.Pos{At: locus}, Corpus: corpus, Cond: cond}
}

func (p *Parser) parseElige() ast.Stmt {
	locus := p.peek().Locus
	p.expect(token.Keyword, "elige")
	discrim := p.parseExpr(0)
	p.expect(token.Punctuator, "{")

	var casus []ast.EligeCasus
	var deflt ast.Stmt

	for !p.check(token.Punctuator, "}") && !p.check(token.EOF, "") {
		if p.match(token.Keyword, "ceterum") {
			switch {
			case p.check(token.Punctuator, "{"):
				deflt = p.parseMassa()
			case p.match(token.Keyword, "reddit"):
				redLoc := p.peek().Locus
				valor := p.parseExpr(0)
				deflt = &ast.StmtMassa{Pos: ast.Pos{At: redLoc}, Corpus: []ast.Stmt{&ast.StmtRedde{Pos: ast.Pos{At: redLoc}, Valor: valor}}}
			default:
				p.fail(p.peek().Locus, "expected { or reddit after ceterum")
			}
			continue
		}

		p.expect(token.Keyword, "casu")
		loc := p.peek().Locus
		cond := p.parseExpr(0)
		var corpus ast.Stmt
		switch {
		case p.check(token.Punctuator, "{"):
			corpus = p.parseMassa()
		case p.match(token.Keyword, "reddit"):
			redLoc := p.peek().Locus
			valor := p.parseExpr(0)
			corpus = &ast.StmtMassa{Pos: ast.Pos{At: redLoc}, Corpus: []ast.Stmt{&ast.StmtRedde{Pos: ast.Pos{At: redLoc}, Valor: valor}}}
		default:
			p.fail(p.peek().Locus, "expected { or reddit after casu condition")
		}
		casus = append(casus, ast.EligeCasus{Cond: cond, Corpus: corpus, At: loc})
	}

	p.expect(token.Punctuator, "}")
	return &ast.StmtElige{Pos: ast.Pos{At: locus}, Discrim: discrim, Casus: casus, Default: deflt}
}

func (p *Parser) parseDiscerne() ast.Stmt {
	locus := p.peek().Locus
	p.expect(token.Keyword, "discerne")
	discrim := []ast.Expr{p.parseExpr(0)}
	for p.match(token.Punctuator, ",") {
		discrim = append(discrim, p.parseExpr(0))
	}
	p.expect(token.Punctuator, "{")

	var casus []ast.DiscerneCasus
	for !p.check(token.Punctuator, "}") && !p.check(token.EOF, "") {
		loc := p.peek().Locus

		if p.match(token.Keyword, "ceterum") {
			patterns := []ast.VariansPattern{{Variant: "_", Wildcard: true, At: loc}}
			corpus := p.parseMassa()
			casus = append(casus, ast.DiscerneCasus{Patterns: patterns, Corpus: corpus, At: loc})
			continue
		}

		p.expect(token.Keyword, "casu")
		var patterns []ast.VariansPattern

		for {
			pLoc := p.peek().Locus
			variant := p.expect(token.Identifier, "").Lexeme
			var alias *string
			var bindings []string
			wildcard := variant == "_"

			if p.match(token.Keyword, "ut") {
				a := p.expectName().Lexeme
				alias = &a
			} else if p.match(token.Keyword, "pro") || p.match(token.Keyword, "fixum") {
				for {
					bindings = append(bindings, p.expectName().Lexeme)
					if !p.match(token.Punctuator, ",") {
						break
					}
				}
			}

			patterns = append(patterns, ast.VariansPattern{Variant: variant, Bindings: bindings, Alias: alias, Wildcard: wildcard, At: pLoc})

			if !p.match(token.Punctuator, ",") {
				break
			}
		}

		corpus := p.parseMassa()
		casus = append(casus, ast.DiscerneCasus{Patterns: patterns, Corpus: corpus, At: loc})
	}

	p.expect(token.Punctuator, "}")
	return &ast.StmtDiscerne{Pos: ast.Pos{At: locus}, Discrim: discrim, Casus: casus}
}

func (p *Parser) parseCustodi() ast.Stmt {
	locus := p.peek().Locus
	p.expect(token.Keyword, "custodi")
	p.expect(token.Punctuator, "{")

	var clausulae []ast.CustodiClausula
	for !p.check(token.Punctuator, "}") && !p.check(token.EOF, "") {
		loc := p.peek().Locus
		p.expect(token.Keyword, "si")
		cond := p.parseExpr(0)
		corpus := p.parseMassa()
		clausulae = append(clausulae, ast.CustodiClausula{Cond: cond, Corpus: corpus, At: loc})
	}

	p.expect(token.Punctuator, "}")
	return &ast.StmtCustodi{Pos: ast.Pos{At: locus}, Clausulae: clausulae}
}

func (p *Parser) parseTempta() ast.Stmt {
	locus := p.peek().Locus
	p.expect(token.Keyword, "tempta")
	corpus := p.parseMassa()

	var cape *ast.CapeClausula
	if p.match(token.Keyword, "cape") {
		loc := p.peek().Locus
		param := p.expect(token.Identifier, "").Lexeme
		body := p.parseMassa()
		cape = &ast.CapeClausula{Param: param, Corpus: body, At: loc}
	}

	var demum ast.Stmt
	if p.match(token.Keyword, "demum") {
		demum = p.parseMassa()
	}

	return &ast.StmtTempta{Pos: ast.Pos{At: locus}, Corpus: corpus, Cape: cape, Demum: demum}
}

func (p *Parser) parseRedde() ast.Stmt {
	locus := p.peek().Locus
	p.expect(token.Keyword, "redde")
	var valor ast.Expr
	if !p.check(token.EOF, "") && !p.check(token.Punctuator, "}") && !p.isStatementKeyword() {
		valor = p.parseExpr(0)
	}
	return &ast.StmtRedde{Pos: ast.Pos{At: locus}, Valor: valor}
}

func (p *Parser) parseIace() ast.Stmt {
	locus := p.peek().Locus
	fatale := p.advance().Lexeme == "mori"
	arg := p.parseExpr(0)
	return &ast.StmtIace{Pos: ast.Pos{At: locus}, Arg: arg, Fatale: fatale}
}

func (p *Parser) parseScribe() ast.Stmt {
	locus := p.peek().Locus
	kw := p.advance().Lexeme
	gradus := ast.GradusScribe
	switch kw {
	case "vide":
		gradus = ast.GradusVide
	case "mone":
		gradus = ast.GradusMone
	}
	var args []ast.Expr
	if !p.check(token.EOF, "") && !p.check(token.Punctuator, "}") && !p.isStatementKeyword() {
		for {
			args = append(args, p.parseExpr(0))
			if !p.match(token.Punctuator, ",") {
				break
			}
		}
	}
	return &ast.StmtScribe{Pos: ast.Pos{At: locus}, Args: args, Gradus: gradus}
}

func (p *Parser) parseAdfirma() ast.Stmt {
	locus := p.peek().Locus
	p.expect(token.Keyword, "adfirma")
	cond := p.parseExpr(0)
	var msg ast.Expr
	if p.match(token.Punctuator, ",") {
		msg = p.parseExpr(0)
	}
	return &ast.StmtAdfirma{Pos: ast.Pos{At: locus}, Cond: cond, Msg: msg}
}

func (p *Parser) parseRumpe() ast.Stmt {
	locus := p.peek().Locus
	p.expect(token.Keyword, "rumpe")
	return &ast.StmtRumpe{Pos: ast.Pos{At: locus}}
}

func (p *Parser) parsePerge() ast.Stmt {
	locus := p.peek().Locus
	p.expect(token.Keyword, "perge")
	return &ast.StmtPerge{Pos: ast.Pos{At: locus}}
}

func (p *Parser) parseIncipit() ast.Stmt {
	locus := p.peek().Locus
	kw := p.advance().Lexeme
	asynca := kw == "incipiet"
	corpus := p.parseMassa()
	return &ast.StmtIncipit{Pos: ast.Pos{At: locus}, Corpus: corpus, Asynca: asynca}
}

func (p *Parser) parseProbandum() ast.Stmt {
	locus := p.peek().Locus
	p.expect(token.Keyword, "probandum")
	nomen := p.expect(token.String, "").Lexeme
	p.expect(token.Punctuator, "{")

	var corpus []ast.Stmt
	for !p.check(token.Punctuator, "}") && !p.check(token.EOF, "") {
		corpus = append(corpus, p.parseStmt())
	}

	p.expect(token.Punctuator, "}")
	return &ast.StmtProbandum{Pos: ast.Pos{At: locus}, Nomen: nomen, Corpus: corpus}
}

func (p *Parser) parseProba() ast.Stmt {
	locus := p.peek().Locus
	p.expect(token.Keyword, "proba")
	nomen := p.expect(token.String, "").Lexeme
	corpus := p.parseMassa()
	return &ast.StmtProba{Pos: ast.Pos{At: locus}, Nomen: nomen, Corpus: corpus}
}

func (p *Parser) parseExpressiaStmt() ast.Stmt {
	locus := p.peek().Locus
	expr := p.parseExpr(0)
	return &ast.StmtExpressia{Pos: ast.Pos{At: locus}, Expr: expr}
}

// --- types ---

func (p *Parser) parseTypus() ast.Typus {
	typus := p.parseTypusPrimary()

	if p.match(token.Punctuator, "?") {
		typus = &ast.TypusNullabilis{Inner: typus}
	}

	if p.match(token.Operator, "|") {
		members := []ast.Typus{typus}
		for {
			members = append(members, p.parseTypusPrimary())
			if !p.match(token.Operator, "|") {
				break
			}
		}
		typus = &ast.TypusUnio{Members: members}
	}

	return typus
}

func (p *Parser) parseTypusPrimary() ast.Typus {
	nomen := p.expect(token.Identifier, "").Lexeme

	if p.match(token.Operator, "<") {
		var args []ast.Typus
		for {
			args = append(args, p.parseTypus())
			if !p.match(token.Punctuator, ",") {
				break
			}
		}
		p.expect(token.Operator, ">")
		return &ast.TypusGenericus{Nomen: nomen, Args: args}
	}

	return &ast.TypusNomen{Nomen: nomen}
}

// --- expressions ---

func exprLocus(e ast.Expr) diag.Locus {
	if e == nil {
		return diag.Locus{}
	}
	return e.Locus()
}

func (p *Parser) parseExpr(minPrec int) ast.Expr {
	left := p.parseUnary()

	for {
		tok := p.peek()
		op := tok.Lexeme
		prec, ok := precedence[op]
		if !ok || prec < minPrec {
			break
		}

		p.advance()

		switch op {
		case "qua":
			typus := p.parseTypus()
			left = &ast.ExprQua{Pos: ast.Pos{At: tok.Locus}, Expr: left, Typus: typus}
			continue
		case "innatum":
			typus := p.parseTypus()
			left = &ast.ExprInnatum{Pos: ast.Pos{At: tok.Locus}, Expr: left, Typus: typus}
			continue
		case "novum":
			typus := p.parseTypus()
			left = &ast.ExprPostfixNovum{Pos: ast.Pos{At: tok.Locus}, Expr: left, Typus: typus}
			continue
		case "numeratum", "fractatum", "textatum", "bivalentum":
			var fallback ast.Expr
			if (op == "numeratum" || op == "fractatum") && p.match(token.Keyword, "vel") {
				fallback = p.parseUnary()
			}
			left = &ast.ExprConversio{Pos: ast.Pos{At: tok.Locus}, Expr: left, Species: op, Fallback: fallback}
			continue
		}

		right := p.parseExpr(prec + 1)

		if assignOps[op] {
			left = &ast.ExprAssignatio{Pos: ast.Pos{At: tok.Locus}, Signum: op, Sin: left, Dex: right}
		} else {
			left = &ast.ExprBinaria{Pos: ast.Pos{At: tok.Locus}, Signum: op, Sin: left, Dex: right}
		}
	}

	if p.check(token.Keyword, "usque") || p.check(token.Keyword, "ante") {
		inclusive := p.advance().Lexeme == "usque"
		end := p.parseExpr(7) // additive precedence, binds tighter than comparison/ternary
		left = &ast.ExprAmbitus{Pos: ast.Pos{At: exprLocus(left)}, Start: left, End: end, Inclusive: inclusive}
	}

	if p.match(token.Keyword, "sic") {
		cons := p.parseExpr(0)
		p.expect(token.Keyword, "secus")
		alt := p.parseExpr(0)
		left = &ast.ExprCondicio{Pos: ast.Pos{At: exprLocus(left)}, Cond: left, Cons: cons, Alt: alt}
	}

	return left
}

func (p *Parser) parseUnary() ast.Expr {
	tok := p.peek()

	if tok.Tag == token.Operator || tok.Tag == token.Keyword {
		if unaryOps[tok.Lexeme] {
			next := p.peekAt(1)
			canBeUnary := next.Tag == token.Identifier ||
				(next.Tag == token.Keyword && !nonExprKeywords[next.Lexeme]) ||
				next.Tag == token.Number ||
				next.Tag == token.String ||
				next.Lexeme == "(" || next.Lexeme == "[" || next.Lexeme == "{" ||
				unaryOps[next.Lexeme]

			if canBeUnary {
				p.advance()
				arg := p.parseUnary()
				return &ast.ExprUnaria{Pos: ast.Pos{At: tok.Locus}, Signum: tok.Lexeme, Arg: arg}
			}
		}
	}

	if p.match(token.Keyword, "cede") {
		arg := p.parseUnary()
		return &ast.ExprCede{Pos: ast.Pos{At: tok.Locus}, Arg: arg}
	}

	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()

	for {
		tok := p.peek()

		if p.match(token.Punctuator, "(") {
			args := p.parseArgs()
			p.expect(token.Punctuator, ")")
			expr = &ast.ExprVocatio{Pos: ast.Pos{At: tok.Locus}, Callee: expr, Args: args}
			continue
		}

		if p.match(token.Punctuator, ".") {
			nameTok := p.peek()
			prop := &ast.ExprLittera{Pos: ast.Pos{At: nameTok.Locus}, Species: ast.LitTextus, Valor: p.expectName().Lexeme}
			expr = &ast.ExprMembrum{Pos: ast.Pos{At: tok.Locus}, Obj: expr, Prop: prop}
			continue
		}

		if tok.Lexeme == "!" && p.peekAt(1).Lexeme == "." {
			p.advance()
			p.advance()
			nameTok := p.peek()
			prop := &ast.ExprLittera{Pos: ast.Pos{At: nameTok.Locus}, Species: ast.LitTextus, Valor: p.expectName().Lexeme}
			expr = &ast.ExprMembrum{Pos: ast.Pos{At: tok.Locus}, Obj: expr, Prop: prop, NonNull: true}
			continue
		}

		if tok.Lexeme == "!" && p.peekAt(1).Lexeme == "[" {
			p.advance()
			p.advance()
			prop := p.parseExpr(0)
			p.expect(token.Punctuator, "]")
			expr = &ast.ExprMembrum{Pos: ast.Pos{At: tok.Locus}, Obj: expr, Prop: prop, Computed: true, NonNull: true}
			continue
		}

		if p.match(token.Punctuator, "[") {
			prop := p.parseExpr(0)
			p.expect(token.Punctuator, "]")
			expr = &ast.ExprMembrum{Pos: ast.Pos{At: tok.Locus}, Obj: expr, Prop: prop, Computed: true}
			continue
		}

		break
	}

	return expr
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()

	if p.match(token.Punctuator, "(") {
		expr := p.parseExpr(0)
		p.expect(token.Punctuator, ")")
		return expr
	}

	if p.match(token.Punctuator, "[") {
		var elementa []ast.Expr
		if !p.check(token.Punctuator, "]") {
			for {
				elementa = append(elementa, p.parseExpr(0))
				if !p.match(token.Punctuator, ",") {
					break
				}
			}
		}
		p.expect(token.Punctuator, "]")
		return &ast.ExprSeries{Pos: ast.Pos{At: tok.Locus}, Elementa: elementa}
	}

	if p.match(token.Punctuator, "{") {
		var props []ast.ObiectumProp
		if !p.check(token.Punctuator, "}") {
			for {
				loc := p.peek().Locus
				var key ast.Expr
				computed := false

				switch {
				case p.match(token.Punctuator, "["):
					key = p.parseExpr(0)
					p.expect(token.Punctuator, "]")
					computed = true
				case p.check(token.String, ""):
					strKey := p.advance().Lexeme
					key = &ast.ExprLittera{Pos: ast.Pos{At: loc}, Species: ast.LitTextus, Valor: strKey}
				default:
					name := p.expectName().Lexeme
					key = &ast.ExprLittera{Pos: ast.Pos{At: loc}, Species: ast.LitTextus, Valor: name}
				}

				var valor ast.Expr
				shorthand := false

				if p.match(token.Punctuator, ":") {
					valor = p.parseExpr(0)
				} else {
					shorthand = true
					keyName := ""
					if lit, ok := key.(*ast.ExprLittera); ok {
						keyName = lit.Valor
					}
					valor = &ast.ExprNomen{Pos: ast.Pos{At: loc}, Valor: keyName}
				}

				props = append(props, ast.ObiectumProp{Key: key, Valor: valor, Shorthand: shorthand, Computed: computed, At: loc})

				if !p.match(token.Punctuator, ",") {
					break
				}
			}
		}
		p.expect(token.Punctuator, "}")
		return &ast.ExprObiectum{Pos: ast.Pos{At: tok.Locus}, Props: props}
	}

	if tok.Tag == token.Keyword {
		switch tok.Lexeme {
		case "verum":
			p.advance()
			return &ast.ExprLittera{Pos: ast.Pos{At: tok.Locus}, Species: ast.LitVerum, Valor: "true"}
		case "falsum":
			p.advance()
			return &ast.ExprLittera{Pos: ast.Pos{At: tok.Locus}, Species: ast.LitFalsum, Valor: "false"}
		case "nihil":
			p.advance()
			return &ast.ExprLittera{Pos: ast.Pos{At: tok.Locus}, Species: ast.LitNihil, Valor: "null"}
		case "ego":
			p.advance()
			return &ast.ExprEgo{Pos: ast.Pos{At: tok.Locus}}
		case "novum":
			return p.parseNovum()
		case "finge":
			return p.parseFinge()
		case "clausura":
			return p.parseClausura()
		case "scriptum":
			return p.parseScriptum()
		default:
			p.advance()
			return &ast.ExprNomen{Pos: ast.Pos{At: tok.Locus}, Valor: tok.Lexeme}
		}
	}

	if tok.Tag == token.Number {
		p.advance()
		species := ast.LitNumerus
		for _, c := range tok.Lexeme {
			if c == '.' {
				species = ast.LitFractus
				break
			}
		}
		return &ast.ExprLittera{Pos: ast.Pos{At: tok.Locus}, Species: species, Valor: tok.Lexeme}
	}

	if tok.Tag == token.String {
		p.advance()
		return &ast.ExprLittera{Pos: ast.Pos{At: tok.Locus}, Species: ast.LitTextus, Valor: tok.Lexeme}
	}

	if tok.Tag == token.Identifier {
		p.advance()
		return &ast.ExprNomen{Pos: ast.Pos{At: tok.Locus}, Valor: tok.Lexeme}
	}

	p.fail(tok.Locus, "unexpected token '%s'", tok.Lexeme)
	panic("unreachable")
}

func (p *Parser) parseArgs() []ast.Expr {
	var args []ast.Expr
	if p.check(token.Punctuator, ")") {
		return args
	}

	for {
		args = append(args, p.parseExpr(0))
		if !p.match(token.Punctuator, ",") {
			break
		}
	}

	return args
}

func (p *Parser) parseNovum() ast.Expr {
	locus := p.peek().Locus
	p.expect(token.Keyword, "novum")
	callee := p.parsePrimary()
	var args []ast.Expr
	if p.match(token.Punctuator, "(") {
		args = p.parseArgs()
		p.expect(token.Punctuator, ")")
	}
	var init ast.Expr
	if p.check(token.Punctuator, "{") {
		init = p.parsePrimary()
	}
	return &ast.ExprNovum{Pos: ast.Pos{At: locus}, Callee: callee, Args: args, Init: init}
}

func (p *Parser) parseFinge() ast.Expr {
	locus := p.peek().Locus
	p.expect(token.Keyword, "finge")
	variant := p.expect(token.Identifier, "").Lexeme
	p.expect(token.Punctuator, "{")

	var campi []ast.ObiectumProp
	if !p.check(token.Punctuator, "}") {
		for {
			loc := p.peek().Locus
			name := p.expectName().Lexeme
			key := &ast.ExprLittera{Pos: ast.Pos{At: loc}, Species: ast.LitTextus, Valor: name}
			p.expect(token.Punctuator, ":")
			valor := p.parseExpr(0)
			campi = append(campi, ast.ObiectumProp{Key: key, Valor: valor, At: loc})
			if !p.match(token.Punctuator, ",") {
				break
			}
		}
	}
	p.expect(token.Punctuator, "}")

	var typus ast.Typus
	if p.match(token.Keyword, "qua") {
		typus = p.parseTypus()
	}

	return &ast.ExprFinge{Pos: ast.Pos{At: locus}, Variant: variant, Campi: campi, Typus: typus}
}

func (p *Parser) parseClausura() ast.Expr {
	locus := p.peek().Locus
	p.expect(token.Keyword, "clausura")

	var params []ast.Param
	if p.check(token.Identifier, "") {
		for {
			loc := p.peek().Locus
			nomen := p.expect(token.Identifier, "").Lexeme
			var typus ast.Typus
			if p.match(token.Punctuator, ":") {
				typus = p.parseTypus()
			}
			params = append(params, ast.Param{Nomen: nomen, Typus: typus, At: loc})
			if !p.match(token.Punctuator, ",") {
				break
			}
		}
	}

	clausura := &ast.ExprClausura{Pos: ast.Pos{At: locus}, Params: params}
	if p.check(token.Punctuator, "{") {
		clausura.CorpusStmt = p.parseMassa()
	} else {
		p.expect(token.Punctuator, ":")
		clausura.CorpusExpr = p.parseExpr(0)
	}

	return clausura
}

func (p *Parser) parseScriptum() ast.Expr {
	locus := p.peek().Locus
	p.expect(token.Keyword, "scriptum")
	p.expect(token.Punctuator, "(")
	template := p.expect(token.String, "").Lexeme
	var args []ast.Expr
	for p.match(token.Punctuator, ",") {
		args = append(args, p.parseExpr(0))
	}
	p.expect(token.Punctuator, ")")
	return &ast.ExprScriptum{Pos: ast.Pos{At: locus}, Template: template, Args: args}
}
