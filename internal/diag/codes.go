package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexer
	LexInfo                Code = 1000
	LexUnknownChar         Code = 1001
	LexUnterminatedString  Code = 1002
	LexUnterminatedAtom    Code = 1003
	LexBadNumber           Code = 1004
	LexBadEscape           Code = 1005
	LexUnterminatedHeredoc Code = 1006
	LexTokenTooLong        Code = 1007

	// Parser
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynTokenMissing     Code = 2002
	SynExpectExpression Code = 2003
	SynExpectClause     Code = 2004
	SynExpectDo         Code = 2005
	SynBadKeywordList   Code = 2006
	SynExpectIdentifier Code = 2007
	SynBadMapLiteral    Code = 2008

	// Lowering: forms used in an illegal scope (3000-3099)
	LowInfo              Code = 3000
	LowModuleInFunction  Code = 3001
	LowDefOutsideModule  Code = 3002
	LowNestedDef         Code = 3003
	LowAttrSetInFunction Code = 3004
	LowInvalidGuardExpr  Code = 3005
	LowAttrOutsideModule Code = 3006

	// Lowering: malformed special forms (3100-3199)
	LowMissingDoBlock     Code = 3101
	LowInvalidModuleName  Code = 3102
	LowInvalidDefName     Code = 3103
	LowInvalidAttrValue   Code = 3104
	LowInvalidClauseShape Code = 3105
	LowInvalidTryBranch   Code = 3106
	LowInvalidReceive     Code = 3107
	LowInvalidAttrName    Code = 3108
	LowUnboundWildcard    Code = 3109
	LowInvalidMembership  Code = 3110
	LowMisplacedCons      Code = 3111
	LowInvalidArgs        Code = 3112
	LowInvalidPattern     Code = 3113

	// Lowering: general translation errors (3200-3299)
	LowMacroToFunction   Code = 3201
	LowDynamicLocalFun   Code = 3202
	LowUndefinedFunction Code = 3203
	LowDefKindConflict   Code = 3204

	// Lowering: deprecations and advisory notices (3900-3999)
	LowDeprecatedRange    Code = 3901
	LowUndefinedAttribute Code = 3902

	// I/O
	IOLoadFileError Code = 4001

	// Project / configuration
	ProjInfo          Code = 5000
	ProjBadConfig     Code = 5001
	ProjBadSourcePath Code = 5002
	ProjNoSources     Code = 5003
)

var codeDescription = map[Code]string{
	UnknownCode:            "Unknown error",
	LexInfo:                "Lexical information",
	LexUnknownChar:         "Unknown character",
	LexUnterminatedString:  "Unterminated string",
	LexUnterminatedAtom:    "Unterminated quoted atom",
	LexBadNumber:           "Bad number literal",
	LexBadEscape:           "Bad escape sequence",
	LexUnterminatedHeredoc: "Unterminated heredoc",
	LexTokenTooLong:        "Token too long",
	SynInfo:                "Syntax information",
	SynUnexpectedToken:     "Unexpected token",
	SynTokenMissing:        "Input ended before the form was closed",
	SynExpectExpression:    "Expected expression",
	SynExpectClause:        "Expected clause",
	SynExpectDo:            "Expected do block",
	SynBadKeywordList:      "Malformed keyword list",
	SynExpectIdentifier:    "Expected identifier",
	SynBadMapLiteral:       "Malformed tuple or list literal",
	LowInfo:                "Lowering information",
	LowModuleInFunction:    "Module defined inside a function",
	LowDefOutsideModule:    "Definition outside a module",
	LowNestedDef:           "Definition inside another definition",
	LowAttrSetInFunction:   "Attribute set inside a function",
	LowInvalidGuardExpr:    "Invalid expression in guard",
	LowAttrOutsideModule:   "Attribute used outside a module",
	LowMissingDoBlock:      "Missing do block",
	LowInvalidModuleName:   "Invalid module name",
	LowInvalidDefName:      "Invalid definition name",
	LowInvalidAttrValue:    "Invalid value for attribute",
	LowInvalidClauseShape:  "Malformed clause",
	LowInvalidTryBranch:    "Malformed try branch",
	LowInvalidReceive:      "Malformed receive",
	LowInvalidAttrName:     "Invalid attribute name",
	LowUnboundWildcard:     "Unbound wildcard",
	LowInvalidMembership:   "Invalid membership test",
	LowMisplacedCons:       "Misplaced cons operator",
	LowInvalidArgs:         "Invalid special form arguments",
	LowInvalidPattern:      "Invalid pattern",
	LowMacroToFunction:     "Macro used as a function reference",
	LowDynamicLocalFun:     "Dynamic local function retrieval",
	LowUndefinedFunction:   "Undefined function",
	LowDefKindConflict:     "Conflicting definition kinds",
	LowDeprecatedRange:     "Deprecated range usage",
	LowUndefinedAttribute:  "Undefined module attribute",
	IOLoadFileError:        "I/O load file error",
	ProjInfo:               "Project information",
	ProjBadConfig:          "Malformed project configuration",
	ProjBadSourcePath:      "Bad source path",
	ProjNoSources:          "No source files found",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("LOW%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

// Class maps a code onto the error family users know from the runtime:
// SyntaxError, TokenMissingError, ScopeError, CompileError or Deprecation.
func (c Code) Class() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return "SyntaxError"
	case c == SynTokenMissing:
		return "TokenMissingError"
	case ic >= 2000 && ic < 3000:
		return "SyntaxError"
	case ic >= 3000 && ic < 3100:
		return "ScopeError"
	case ic >= 3100 && ic < 3200:
		return "SyntaxError"
	case ic >= 3200 && ic < 3300:
		return "CompileError"
	case ic >= 3900 && ic < 4000:
		return "Deprecation"
	case ic >= 4000 && ic < 6000:
		return "CompileError"
	}
	return "CompileError"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
