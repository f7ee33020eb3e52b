package ir

// Increment is target++;. Target is an int-typed variable, element or field.
type Increment struct {
	Target Expr
}

func (s *Increment) Kind() NodeKind { return KindIncrement }
func (s *Increment) stmtNode()      {}

// Decrement is target--;.
type Decrement struct {
	Target Expr
}

func (s *Decrement) Kind() NodeKind { return KindDecrement }
func (s *Decrement) stmtNode()      {}

// Assignment is target -= source;.
type Assignment struct {
	Target Expr
	Source Expr
}

func (s *Assignment) Kind() NodeKind { return KindAssignment }
func (s *Assignment) stmtNode()      {}

// BreakStatement is whoa;.
type BreakStatement struct{}

func (s *BreakStatement) Kind() NodeKind { return KindBreakStatement }
func (s *BreakStatement) stmtNode()      {}

// ReturnStatement is roundup e;.
type ReturnStatement struct {
	Expression Expr
}

func (s *ReturnStatement) Kind() NodeKind { return KindReturnStatement }
func (s *ReturnStatement) stmtNode()      {}

// ShortReturnStatement is roundup; with no value.
type ShortReturnStatement struct{}

func (s *ShortReturnStatement) Kind() NodeKind { return KindShortReturnStatement }
func (s *ShortReturnStatement) stmtNode()      {}

// IfStatement is an iffin chain. Alternate is nil, a *Block for a plain
// otherwise, or another *IfStatement for otherwise iffin.
type IfStatement struct {
	Test       Expr
	Consequent []Stmt
	Alternate  Stmt
}

func (s *IfStatement) Kind() NodeKind { return KindIfStatement }
func (s *IfStatement) stmtNode()      {}

// Block is the body of a final otherwise.
type Block struct {
	Statements []Stmt
}

func (s *Block) Kind() NodeKind { return KindBlock }
func (s *Block) stmtNode()      {}

// WhileStatement is till test ~~{ body }.
type WhileStatement struct {
	Test Expr
	Body []Stmt
}

func (s *WhileStatement) Kind() NodeKind { return KindWhileStatement }
func (s *WhileStatement) stmtNode()      {}

// RepeatStatement runs Body Count times.
type RepeatStatement struct {
	Count Expr
	Body  []Stmt
}

func (s *RepeatStatement) Kind() NodeKind { return KindRepeatStatement }
func (s *RepeatStatement) stmtNode()      {}

// ForStatement iterates over the elements of an array.
type ForStatement struct {
	Iterator   *Variable
	Collection Expr
	Body       []Stmt
}

func (s *ForStatement) Kind() NodeKind { return KindForStatement }
func (s *ForStatement) stmtNode()      {}

// ForRangeStatement iterates an int from Low to High, excluding High for
// ..< and including it for ....
type ForRangeStatement struct {
	Iterator *Variable
	Low      Expr
	Op       RangeOperator
	High     Expr
	Body     []Stmt
}

func (s *ForRangeStatement) Kind() NodeKind { return KindForRangeStatement }
func (s *ForRangeStatement) stmtNode()      {}

// PrintStatement is holler e;.
type PrintStatement struct {
	Argument Expr
}

func (s *PrintStatement) Kind() NodeKind { return KindPrintStatement }
func (s *PrintStatement) stmtNode()      {}

// CallStatement is a call whose result is discarded. Call is a
// *FunctionCall or a *ConstructorCall.
type CallStatement struct {
	Call Expr
}

func (s *CallStatement) Kind() NodeKind { return KindCallStatement }
func (s *CallStatement) stmtNode()      {}
