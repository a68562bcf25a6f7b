package ast

import (
	"gor/interpreter-go/pkg/syntax"
)

type NodeType string

const (
	NodeModule                  NodeType = "Module"
	NodeFunction                NodeType = "Function"
	NodeParameter               NodeType = "Parameter"
	NodeIntegerLiteral          NodeType = "IntegerLiteral"
	NodeIdentifier              NodeType = "Identifier"
	NodeUnaryExpression         NodeType = "UnaryExpression"
	NodeBinaryExpression        NodeType = "BinaryExpression"
	NodeParenthesizedExpression NodeType = "ParenthesizedExpression"
)

// Span is a byte range into the source the node was lowered from.
type Span = syntax.Span

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	span Span
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.span }
func (nodeImpl) isNode()              {}
func (n *nodeImpl) setSpan(span Span) { n.span = span }

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

// Module

// Module is the root of a lowered compilation unit. It always has a package
// name; lowering fails before a Module without one can exist.
type Module struct {
	nodeImpl

	Package   Name               `json:"package"`
	Imports   []Name             `json:"imports"`
	Functions map[Name]*Function `json:"functions"`
}

func NewModule(pkg Name, imports []Name, functions map[Name]*Function) *Module {
	if imports == nil {
		imports = make([]Name, 0)
	}
	if functions == nil {
		functions = make(map[Name]*Function)
	}
	return &Module{nodeImpl: newNodeImpl(NodeModule), Package: pkg, Imports: imports, Functions: functions}
}

// Function looks up a declared function by name.
func (m *Module) Function(name string) (*Function, bool) {
	if m == nil {
		return nil, false
	}
	fn, ok := m.Functions[Intern(name)]
	return fn, ok
}

// Functions

type Parameter struct {
	nodeImpl

	Name Name `json:"name"`
}

func NewParameter(name Name) *Parameter {
	return &Parameter{nodeImpl: newNodeImpl(NodeParameter), Name: name}
}

// Function is one function declaration. Body is kept as an owned raw subtree;
// statement lowering happens elsewhere. A nil Body is a declaration without one.
type Function struct {
	nodeImpl

	Name   Name         `json:"name"`
	Params []*Parameter `json:"params"`
	Body   *syntax.Pair `json:"-"`
}

func NewFunction(name Name, params []*Parameter, body *syntax.Pair) *Function {
	if params == nil {
		params = make([]*Parameter, 0)
	}
	return &Function{nodeImpl: newNodeImpl(NodeFunction), Name: name, Params: params, Body: body}
}

// Expressions

type IntegerLiteral struct {
	nodeImpl
	expressionMarker

	Value int64 `json:"value"`
}

func NewIntegerLiteral(value int64) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

// Identifier references a value that only an evaluation context can supply.
type Identifier struct {
	nodeImpl
	expressionMarker

	Name Name `json:"name"`
}

func NewIdentifier(name Name) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator UnaryOperator `json:"operator"`
	Operand  Expression    `json:"operand"`
}

func NewUnaryExpression(operator UnaryOperator, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator BinaryOperator `json:"operator"`
	Left     Expression     `json:"left"`
	Right    Expression     `json:"right"`
}

func NewBinaryExpression(operator BinaryOperator, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

// ParenthesizedExpression keeps explicit grouping visible for diagnostics.
// It has no effect on evaluation.
type ParenthesizedExpression struct {
	nodeImpl
	expressionMarker

	Inner Expression `json:"inner"`
}

func NewParenthesizedExpression(inner Expression) *ParenthesizedExpression {
	return &ParenthesizedExpression{nodeImpl: newNodeImpl(NodeParenthesizedExpression), Inner: inner}
}
