package syntax

// Rule tags a parse-tree node. The constants below are the shapes lowering
// understands; any other tag produced by a parser passes through verbatim.
type Rule string

const (
	RuleModule      Rule = "module"
	RulePackage     Rule = "package"
	RuleName        Rule = "name"
	RuleImport      Rule = "import"
	RuleString      Rule = "string"
	RuleStringInner Rule = "string_inner"
	RuleFunc        Rule = "func"
	RuleParams      Rule = "params"
	RuleParam       Rule = "param"
	RuleBlock       Rule = "block"
	RuleEOI         Rule = "EOI"

	RuleExpression Rule = "expression"
	RuleInt        Rule = "int"
	RuleUnary      Rule = "unary"
	RuleParen      Rule = "paren"

	RuleAdd        Rule = "add"
	RuleSubtract   Rule = "subtract"
	RuleMultiply   Rule = "multiply"
	RuleDivide     Rule = "divide"
	RuleModulo     Rule = "modulo"
	RuleBitAnd     Rule = "bit_and"
	RuleBitOr      Rule = "bit_or"
	RuleBitXor     Rule = "bit_xor"
	RuleBitClear   Rule = "bit_clear"
	RuleShiftLeft  Rule = "shift_left"
	RuleShiftRight Rule = "shift_right"

	RuleNegate     Rule = "negate"
	RulePlus       Rule = "plus"
	RuleComplement Rule = "complement"
)

func (r Rule) String() string { return string(r) }
