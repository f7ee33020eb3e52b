// Package parser implements a recursive descent parser for Yalle.
//
// PARSING STRATEGY:
// We use a combination of:
// 1. Recursive Descent for statements, blocks and type annotations
// 2. Pratt Parsing (precedence climbing) for expressions
//
// ERROR HANDLING STRATEGY:
// Parsing is fail-fast. The first error panics with a *SyntaxError that
// Parse recovers and returns; there is no resynchronization. A lexical error
// is only reported when the parser actually reaches the bad token, so an
// earlier syntax error wins over a later stray character.
//
// Tokens are pulled from the lexer on demand and buffered. The buffer lets
// the parser back up once it has tried reading [T]() and found an array
// literal instead.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hassan/yalle/internal/lexer"
	"github.com/hassan/yalle/internal/parser/ast"
)

// SyntaxError is the error returned for malformed source.
type SyntaxError struct {
	Pos     lexer.Position
	Message string
}

// Error renders the error as "Line L, col C: message".
func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Message
}

// Parser converts a stream of tokens into a syntax tree.
type Parser struct {
	lexer *lexer.Lexer

	// tokens buffers every token read so far; pos indexes current.
	tokens []lexer.Token
	pos    int

	// lexErr is set once the lexer fails. The failing spot is represented
	// in tokens by a TokenInvalid placeholder.
	lexErr *lexer.Error

	// current is the token we're currently examining
	current lexer.Token

	// previous is the last token we consumed
	previous lexer.Token
}

// New creates a parser for source.
func New(source string) *Parser {
	p := &Parser{lexer: lexer.New(source)}
	p.current = p.tokenAt(0)
	return p
}

// Parse parses a complete Yalle program.
func Parse(source string) (*ast.Program, error) {
	return New(source).ParseProgram()
}

// ParseProgram parses statements up to the end of input.
//
// GRAMMAR:
//
//	program = statement* EOF
func (p *Parser) ParseProgram() (program *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			syntaxErr, ok := r.(*SyntaxError)
			if !ok {
				panic(r)
			}
			program, err = nil, syntaxErr
		}
	}()

	program = &ast.Program{Statements: make([]ast.Stmt, 0)}
	for !p.isAtEnd() {
		program.Statements = append(program.Statements, p.parseStatement())
	}
	program.EOF = p.current
	return program, nil
}

// Statements

// parseStatement parses one statement.
//
// GRAMMAR:
//
//	statement = varDecl | funcDecl | typeDecl | "whoa" ";" | returnStmt
//	          | ifStmt | whileStmt | repeatStmt | forStmt | printStmt
//	          | simpleStmt
func (p *Parser) parseStatement() ast.Stmt {
	switch p.current.Type {
	case lexer.TokenTag, lexer.TokenBrand:
		return p.parseVarDecl()
	case lexer.TokenTask:
		return p.parseFuncDecl()
	case lexer.TokenRanch:
		return p.parseTypeDecl()
	case lexer.TokenWhoa:
		keyword := p.advance()
		return &ast.BreakStmt{Keyword: keyword, Semicolon: p.consume(lexer.TokenSemicolon, "Expected ';'")}
	case lexer.TokenRoundup:
		return p.parseReturnStmt()
	case lexer.TokenIffin:
		return p.parseIfStmt()
	case lexer.TokenTill:
		return p.parseWhileStmt()
	case lexer.TokenRepeat:
		return p.parseRepeatStmt()
	case lexer.TokenFor:
		return p.parseForStmt()
	case lexer.TokenHoller:
		keyword := p.advance()
		value := p.parseExpression()
		return &ast.PrintStmt{Keyword: keyword, Value: value, Semicolon: p.consume(lexer.TokenSemicolon, "Expected ';'")}
	default:
		return p.parseSimpleStmt()
	}
}

// parseVarDecl parses a variable declaration.
//
// GRAMMAR:
//
//	varDecl = ("tag" | "brand") identifier (":" type)? "-=" expression ";"
func (p *Parser) parseVarDecl() *ast.VarDecl {
	decl := &ast.VarDecl{Keyword: p.advance()}
	decl.Name = p.parseName()

	if p.match(lexer.TokenColon) {
		decl.Type = p.parseType(false)
	}

	p.consume(lexer.TokenAssign, "Expected '-='")
	decl.Initializer = p.parseExpression()
	decl.Semicolon = p.consume(lexer.TokenSemicolon, "Expected ';'")
	return decl
}

// parseFuncDecl parses a task declaration.
//
// GRAMMAR:
//
//	funcDecl = "task" identifier params (":" type)? block
func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	decl := &ast.FuncDecl{Task: p.advance()}
	decl.Name = p.parseName()
	decl.Params = p.parseParameters()

	if p.match(lexer.TokenColon) {
		decl.ReturnType = p.parseType(false)
	}

	decl.Body = p.parseBlock()
	return decl
}

// parseParameters parses a parameter list in either bracket style.
//
// GRAMMAR:
//
//	params = open (identifier ":" type ("," identifier ":" type)*)? close
//	open   = "(" | "\_"
//	close  = ")" | "_/"
func (p *Parser) parseParameters() []*ast.Parameter {
	closer := p.consumeOpen()

	params := make([]*ast.Parameter, 0)
	if !p.check(closer) {
		for {
			param := &ast.Parameter{Name: p.parseName()}
			p.consume(lexer.TokenColon, "Expected ':'")
			param.Type = p.parseType(false)
			params = append(params, param)

			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}

	p.consumeClose(closer)
	return params
}

// parseTypeDecl parses a ranch declaration.
//
// GRAMMAR:
//
//	typeDecl = "ranch" identifier "-x-x-x-x-" (identifier ":" type)* "-x-x-x-x-"
func (p *Parser) parseTypeDecl() *ast.TypeDecl {
	decl := &ast.TypeDecl{Ranch: p.advance()}
	decl.Name = p.parseName()
	p.consume(lexer.TokenCorral, "Expected '-x-x-x-x-'")

	decl.Fields = make([]*ast.FieldDecl, 0)
	for !p.check(lexer.TokenCorral) {
		field := &ast.FieldDecl{Name: p.parseName()}
		p.consume(lexer.TokenColon, "Expected ':'")
		field.Type = p.parseType(false)
		decl.Fields = append(decl.Fields, field)
	}

	decl.Close = p.advance()
	return decl
}

// parseReturnStmt parses roundup; or roundup expression;.
func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	stmt := &ast.ReturnStmt{Keyword: p.advance()}
	if !p.check(lexer.TokenSemicolon) {
		stmt.Value = p.parseExpression()
	}
	stmt.Semicolon = p.consume(lexer.TokenSemicolon, "Expected ';'")
	return stmt
}

// parseIfStmt parses a conditional statement.
//
// GRAMMAR:
//
//	ifStmt = "iffin" expression block ("otherwise" (block | ifStmt))?
func (p *Parser) parseIfStmt() *ast.IfStmt {
	stmt := &ast.IfStmt{Keyword: p.advance()}
	stmt.Condition = p.parseExpression()
	stmt.Then = p.parseBlock()

	if p.match(lexer.TokenOtherwise) {
		if p.check(lexer.TokenIffin) {
			stmt.Else = p.parseIfStmt()
		} else {
			stmt.Else = p.parseBlock()
		}
	}

	return stmt
}

// parseWhileStmt parses till expression block.
func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	stmt := &ast.WhileStmt{Keyword: p.advance()}
	stmt.Condition = p.parseExpression()
	stmt.Body = p.parseBlock()
	return stmt
}

// parseRepeatStmt parses repeat expression block.
func (p *Parser) parseRepeatStmt() *ast.RepeatStmt {
	stmt := &ast.RepeatStmt{Keyword: p.advance()}
	stmt.Count = p.parseExpression()
	stmt.Body = p.parseBlock()
	return stmt
}

// parseForStmt parses both for forms.
//
// GRAMMAR:
//
//	forStmt = "for" identifier "in" expression block
//	        | "for" identifier "in" expression ("..<" | "...") expression block
func (p *Parser) parseForStmt() ast.Stmt {
	keyword := p.advance()
	iterator := p.parseName()
	p.consume(lexer.TokenIn, "Expected 'in'")
	first := p.parseExpression()

	if p.check(lexer.TokenRangeExclusive) || p.check(lexer.TokenRangeInclusive) {
		op := p.advance()
		high := p.parseExpression()
		return &ast.ForRangeStmt{
			Keyword:  keyword,
			Iterator: iterator,
			Low:      first,
			Operator: op,
			High:     high,
			Body:     p.parseBlock(),
		}
	}

	return &ast.ForStmt{
		Keyword:    keyword,
		Iterator:   iterator,
		Collection: first,
		Body:       p.parseBlock(),
	}
}

// parseSimpleStmt parses the statements that start with an expression.
//
// GRAMMAR:
//
//	simpleStmt = postfix ("++" | "--") ";"
//	           | postfix "-=" expression ";"
//	           | call ";"
func (p *Parser) parseSimpleStmt() ast.Stmt {
	target := p.parsePostfix(p.parsePrimary())

	switch p.current.Type {
	case lexer.TokenPlusPlus, lexer.TokenMinusMinus:
		op := p.advance()
		return &ast.IncDecStmt{Target: target, Operator: op, Semicolon: p.consume(lexer.TokenSemicolon, "Expected ';'")}

	case lexer.TokenAssign:
		op := p.advance()
		value := p.parseExpression()
		return &ast.AssignStmt{Target: target, Operator: op, Value: value, Semicolon: p.consume(lexer.TokenSemicolon, "Expected ';'")}
	}

	if call, ok := target.(*ast.CallExpr); ok {
		return &ast.CallStmt{Call: call, Semicolon: p.consume(lexer.TokenSemicolon, "Expected ';'")}
	}

	p.error("Expected '-=', '++' or '--'")
	return nil
}

// parseBlock parses a braced statement list.
//
// GRAMMAR:
//
//	block = "~~{" statement* "}"
func (p *Parser) parseBlock() *ast.BlockStmt {
	block := &ast.BlockStmt{
		LeftBrace:  p.consume(lexer.TokenBlockOpen, "Expected '~~{'"),
		Statements: make([]ast.Stmt, 0),
	}

	for !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
		block.Statements = append(block.Statements, p.parseStatement())
	}

	block.RightBrace = p.consume(lexer.TokenRightBrace, "Expected '}'")
	return block
}

// Types

// parseType parses a type annotation.
//
// GRAMMAR:
//
//	type = type "?" | "[" type "]" | "(" (type ("," type)*)? ")" "->" type | identifier
//
// Outside expressions ?? after a type means two optional markers, so
// string?? is an optional optional string. Inside an expression (after no)
// ?? is left for the unwrap-else operator.
func (p *Parser) parseType(inExpr bool) ast.TypeExpr {
	var t ast.TypeExpr

	switch p.current.Type {
	case lexer.TokenLeftBracket:
		t = p.parseArrayType(inExpr)

	case lexer.TokenLeftParen:
		fn := &ast.FunctionType{LeftParen: p.advance(), Params: make([]ast.TypeExpr, 0)}
		if !p.check(lexer.TokenRightParen) {
			for {
				fn.Params = append(fn.Params, p.parseType(false))
				if !p.match(lexer.TokenComma) {
					break
				}
			}
		}
		p.consume(lexer.TokenRightParen, "Expected ')'")
		p.consume(lexer.TokenArrow, "Expected '->'")
		fn.Returns = p.parseType(inExpr)
		t = fn

	case lexer.TokenIdentifier:
		t = &ast.NamedType{Name: p.parseName()}

	default:
		p.error("Expected a type")
	}

	for {
		switch {
		case p.check(lexer.TokenQuestion):
			t = &ast.OptionalType{Base: t, Question: p.advance()}
		case p.check(lexer.TokenCoalesce) && !inExpr:
			question := p.advance()
			t = &ast.OptionalType{Base: &ast.OptionalType{Base: t, Question: question}, Question: question}
		default:
			return t
		}
	}
}

func (p *Parser) parseArrayType(inExpr bool) *ast.ArrayType {
	leftBracket := p.consume(lexer.TokenLeftBracket, "Expected '['")
	element := p.parseType(inExpr)
	return &ast.ArrayType{
		LeftBracket:  leftBracket,
		Element:      element,
		RightBracket: p.consume(lexer.TokenRightBracket, "Expected ']'"),
	}
}

// Expressions

// parseExpression parses a full expression, conditional included.
func (p *Parser) parseExpression() ast.Expr {
	return p.parsePrecedence(PrecConditional)
}

// parsePrecedence is the Pratt loop: parse a prefix expression, then keep
// folding in infix and postfix operators that bind at least as tightly as
// precedence.
func (p *Parser) parsePrecedence(precedence Precedence) ast.Expr {
	left := p.parsePrefix()

	for precedence <= getPrecedence(p.current.Type) {
		left = p.parseInfix(left)
	}

	return left
}

// parsePrefix parses a prefix operation or a primary expression.
func (p *Parser) parsePrefix() ast.Expr {
	if isPrefixOperator(p.current.Type) {
		operator := p.advance()
		operand := p.parsePrecedence(PrecUnary)
		return &ast.UnaryExpr{Operator: operator, Operand: operand}
	}
	return p.parsePrimary()
}

// parsePrimary parses the expressions that need no operator.
//
// PRIMARY EXPRESSIONS:
// - Literals: 42, 3.5, "hi", true
// - Identifiers: x, π
// - Empty optional: no int
// - Grouping: (x), \_x_/
// - Arrays: [1, 2], [int]()
func (p *Parser) parsePrimary() ast.Expr {
	switch p.current.Type {
	case lexer.TokenInt:
		return p.parseIntLiteral()
	case lexer.TokenFloat:
		return p.parseFloatLiteral()
	case lexer.TokenString:
		token := p.advance()
		return &ast.LiteralExpr{Token: token, Value: unquote(token.Lexeme)}
	case lexer.TokenTrue, lexer.TokenFalse:
		token := p.advance()
		return &ast.LiteralExpr{Token: token, Value: token.Type == lexer.TokenTrue}
	case lexer.TokenNo:
		no := p.advance()
		return &ast.EmptyOptionalExpr{No: no, Type: p.parseType(true)}
	case lexer.TokenIdentifier:
		return p.parseName()
	case lexer.TokenLeftParen, lexer.TokenLassoOpen:
		closer := p.consumeOpen()
		leftParen := p.previous
		expr := p.parseExpression()
		return &ast.GroupingExpr{LeftParen: leftParen, Expr: expr, RightParen: p.consumeClose(closer)}
	case lexer.TokenLeftBracket:
		if empty, ok := p.tryEmptyArray(); ok {
			return empty
		}
		return p.parseArrayLiteral()
	default:
		p.error("Expected expression")
		return nil
	}
}

// parseInfix parses the operator at current with left as its left operand.
func (p *Parser) parseInfix(left ast.Expr) ast.Expr {
	switch p.current.Type {
	case lexer.TokenQuestion:
		return p.parseConditional(left)
	case lexer.TokenLeftParen, lexer.TokenLassoOpen,
		lexer.TokenLeftBracket,
		lexer.TokenDot, lexer.TokenQuestionDot:
		return p.parsePostfixOp(left)
	default:
		return p.parseBinary(left)
	}
}

// parsePostfix applies every call, index and member access that follows
// left.
func (p *Parser) parsePostfix(left ast.Expr) ast.Expr {
	for getPrecedence(p.current.Type) == PrecCall {
		left = p.parsePostfixOp(left)
	}
	return left
}

func (p *Parser) parsePostfixOp(left ast.Expr) ast.Expr {
	switch p.current.Type {
	case lexer.TokenLeftParen, lexer.TokenLassoOpen:
		return p.parseCall(left)

	case lexer.TokenLeftBracket:
		leftBracket := p.advance()
		index := p.parseExpression()
		return &ast.IndexExpr{
			Object:       left,
			LeftBracket:  leftBracket,
			Index:        index,
			RightBracket: p.consume(lexer.TokenRightBracket, "Expected ']'"),
		}

	default:
		dot := p.advance()
		return &ast.MemberExpr{Object: left, Dot: dot, Member: p.parseName()}
	}
}

func (p *Parser) parseBinary(left ast.Expr) ast.Expr {
	operator := p.advance()
	precedence := getPrecedence(operator.Type)

	// Adjust precedence for right-associative operators
	if isRightAssociative(operator.Type) {
		precedence--
	}

	right := p.parsePrecedence(precedence + 1)

	return &ast.BinaryExpr{
		Left:     left,
		Operator: operator,
		Right:    right,
	}
}

// parseConditional parses test ? then : else. The arms bind tighter than
// the conditional; the else arm may itself be a conditional.
func (p *Parser) parseConditional(condition ast.Expr) ast.Expr {
	question := p.advance()
	then := p.parsePrecedence(PrecCoalesce)
	p.consume(lexer.TokenColon, "Expected ':'")
	otherwise := p.parsePrecedence(PrecConditional)

	return &ast.ConditionalExpr{
		Condition: condition,
		Question:  question,
		Then:      then,
		Else:      otherwise,
	}
}

func (p *Parser) parseCall(callee ast.Expr) ast.Expr {
	closer := p.consumeOpen()
	leftParen := p.previous

	args := make([]ast.Expr, 0)
	if !p.check(closer) {
		for {
			args = append(args, p.parseExpression())
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}

	return &ast.CallExpr{
		Callee:     callee,
		LeftParen:  leftParen,
		Args:       args,
		RightParen: p.consumeClose(closer),
	}
}

// tryEmptyArray attempts [T](). On failure it rewinds to the opening
// bracket so the caller can read an array literal instead.
func (p *Parser) tryEmptyArray() (expr *ast.EmptyArrayExpr, ok bool) {
	mark := p.pos
	defer func() {
		if r := recover(); r != nil {
			if _, isSyntax := r.(*SyntaxError); !isSyntax {
				panic(r)
			}
			p.reset(mark)
			expr, ok = nil, false
		}
	}()

	arrayType := p.parseArrayType(true)
	p.consume(lexer.TokenLeftParen, "Expected '('")
	rightParen := p.consume(lexer.TokenRightParen, "Expected ')'")
	return &ast.EmptyArrayExpr{Type: arrayType, RightParen: rightParen}, true
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	array := &ast.ArrayLiteralExpr{LeftBracket: p.advance()}
	for {
		array.Elements = append(array.Elements, p.parseExpression())
		if !p.match(lexer.TokenComma) {
			break
		}
	}
	array.RightBracket = p.consume(lexer.TokenRightBracket, "Expected ']'")
	return array
}

// Literal parsing

// maxSafeInteger is the largest integer a JavaScript number holds exactly.
const maxSafeInteger = 1<<53 - 1

func (p *Parser) parseIntLiteral() ast.Expr {
	token := p.current
	value, err := strconv.ParseInt(token.Lexeme, 10, 64)
	if err != nil || value > maxSafeInteger {
		p.error(fmt.Sprintf("Integer literal %s is out of range", token.Lexeme))
	}
	p.advance()
	return &ast.LiteralExpr{Token: token, Value: value}
}

func (p *Parser) parseFloatLiteral() ast.Expr {
	token := p.current
	value, err := strconv.ParseFloat(token.Lexeme, 64)
	if err != nil {
		p.error(fmt.Sprintf("Float literal %s is out of range", token.Lexeme))
	}
	p.advance()
	return &ast.LiteralExpr{Token: token, Value: value}
}

// unquote strips the quotes from a string lexeme and resolves its escapes:
// \n \t \r \0 \\ \" \' and \u{hex}. Any other escaped character stands for
// itself.
func unquote(lexeme string) string {
	if len(lexeme) < 2 {
		return ""
	}
	s := []rune(lexeme[1 : len(lexeme)-1])

	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			sb.WriteRune(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '0':
			sb.WriteByte(0)
		case 'u':
			if r, width, ok := codepointEscape(s[i+1:]); ok {
				sb.WriteRune(r)
				i += width
				continue
			}
			sb.WriteRune('u')
		default:
			sb.WriteRune(s[i])
		}
	}
	return sb.String()
}

// codepointEscape reads {hex} at the start of s.
func codepointEscape(s []rune) (rune, int, bool) {
	if len(s) < 3 || s[0] != '{' {
		return 0, 0, false
	}
	end := 1
	for end < len(s) && s[end] != '}' {
		end++
	}
	if end == len(s) {
		return 0, 0, false
	}
	value, err := strconv.ParseUint(string(s[1:end]), 16, 32)
	if err != nil {
		return 0, 0, false
	}
	return rune(value), end + 1, true
}

// Helper methods

func (p *Parser) parseName() *ast.IdentifierExpr {
	token := p.consume(lexer.TokenIdentifier, "Expected an identifier")
	return &ast.IdentifierExpr{Token: token, Name: token.Lexeme}
}

// consumeOpen consumes ( or \_ and returns the token that must close it.
func (p *Parser) consumeOpen() lexer.TokenType {
	switch {
	case p.match(lexer.TokenLeftParen):
		return lexer.TokenRightParen
	case p.match(lexer.TokenLassoOpen):
		return lexer.TokenLassoClose
	}
	p.error("Expected '('")
	return lexer.TokenInvalid
}

func (p *Parser) consumeClose(closer lexer.TokenType) lexer.Token {
	if closer == lexer.TokenLassoClose {
		return p.consume(closer, "Expected '_/'")
	}
	return p.consume(closer, "Expected ')'")
}

// tokenAt returns the i-th token, reading from the lexer as needed. Past
// the end of input or a lexical error it keeps returning the last token.
func (p *Parser) tokenAt(i int) lexer.Token {
	for len(p.tokens) <= i {
		if n := len(p.tokens); n > 0 {
			last := p.tokens[n-1]
			if last.Type == lexer.TokenEOF || last.Type == lexer.TokenInvalid {
				return last
			}
		}

		token, err := p.lexer.NextToken()
		if err != nil {
			lexErr, ok := err.(*lexer.Error)
			if !ok {
				lexErr = &lexer.Error{Pos: token.Position, Message: err.Error()}
			}
			p.lexErr = lexErr
			token = lexer.Token{Type: lexer.TokenInvalid, Position: lexErr.Pos}
		}
		p.tokens = append(p.tokens, token)
	}
	return p.tokens[i]
}

func (p *Parser) advance() lexer.Token {
	p.previous = p.current
	p.pos++
	p.current = p.tokenAt(p.pos)
	return p.previous
}

func (p *Parser) reset(mark int) {
	p.pos = mark
	p.current = p.tokenAt(mark)
	if mark > 0 {
		p.previous = p.tokens[mark-1]
	} else {
		p.previous = lexer.Token{}
	}
}

func (p *Parser) check(tokenType lexer.TokenType) bool {
	return p.current.Type == tokenType
}

func (p *Parser) match(tokenTypes ...lexer.TokenType) bool {
	for _, tokenType := range tokenTypes {
		if p.check(tokenType) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tokenType lexer.TokenType, message string) lexer.Token {
	if p.check(tokenType) {
		return p.advance()
	}
	p.error(message)
	return lexer.Token{}
}

func (p *Parser) isAtEnd() bool {
	return p.current.Type == lexer.TokenEOF
}

// error aborts the parse at the current token. When that token stands for a
// lexical error, the lexer's message is reported instead.
func (p *Parser) error(message string) {
	if p.current.Type == lexer.TokenInvalid && p.lexErr != nil {
		panic(&SyntaxError{Pos: p.lexErr.Pos, Message: p.lexErr.Message})
	}
	panic(&SyntaxError{Pos: p.current.Position, Message: message})
}
