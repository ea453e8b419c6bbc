// Copyright (c) 2026 The Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package syntax

import "github.com/shaderlang/glsl-sema/core/tree"

// VariableName matches a node that is a declared identifier, optionally
// followed by array-bracket suffixes attached as later siblings. The
// schema itself only needs to recognize the identifier; the trailing
// array nodes are siblings the type reconstructor enumerates separately
// (see core/types' arrayIterator equivalent), matching spec's phrasing
// "an identifier possibly followed by array brackets" literally: the
// brackets are not part of the matched node.
var VariableName = Token{Tag: tree.Identifier}

// AnyExpression is the recursive expression union. It is built through
// Lazy factories so each alternative can reference AnyExpression itself
// (call arguments, parenthesized sub-expressions, infix operands) without
// a package-init cycle.
//
// Every production below that participates, directly or transitively, in
// one of these recursive reference cycles is declared here without an
// initializer and assigned in init() instead: Go's package-init
// dependency analysis treats a reference inside a function literal as a
// real dependency edge even though the literal (the Lazy factory) isn't
// actually invoked until a later Match call, so a cyclic group of such
// vars cannot be initialized via plain var initializers. Assigning them
// in init() sidesteps that analysis while producing the exact same values.
var (
	AnyExpression       Union
	Assignment          Extractor
	Conditional         Extractor
	Infix               Extractor
	Prefix              Extractor
	Postfix             Extractor
	Parenthized         Extractor
	ExpressionSequence  ListExtractor
	Argument            Extractor
	ArgumentsList       ListExtractor
	Call                Extractor
	Array               Extractor
	Block               ListExtractor
	Selection           Extractor
	ConditionList       Extractor
	Statement           Union
)

func init() {
	AnyExpression = Union{
		Variants: []UnionVariant{
			{Name: "assignment", Matcher: Lazy{Resolve: func() Matcher { return Assignment }}},
			{Name: "conditional", Matcher: Lazy{Resolve: func() Matcher { return Conditional }}},
			{Name: "infix", Matcher: Lazy{Resolve: func() Matcher { return Infix }}},
			{Name: "prefix", Matcher: Lazy{Resolve: func() Matcher { return Prefix }}},
			{Name: "postfix", Matcher: Lazy{Resolve: func() Matcher { return Postfix }}},
			{Name: "call", Matcher: Lazy{Resolve: func() Matcher { return Call }}},
			{Name: "parenthized", Matcher: Lazy{Resolve: func() Matcher { return Parenthized }}},
			{Name: "expression_sequence", Matcher: Lazy{Resolve: func() Matcher { return ExpressionSequence }}},
			{Name: "identifier", Matcher: Token{Tag: tree.Identifier}},
			{Name: "number", Matcher: Token{Tag: tree.Number}},
		},
	}

	Assignment = Extractor{
		Tag: tree.Assignment,
		Fields: []Field{
			{Name: "left", Schema: Lazy{Resolve: func() Matcher { return AnyExpression }}},
			{Name: "operator", Schema: Token{Tag: tree.Operator}},
			{Name: "right", Schema: Lazy{Resolve: func() Matcher { return AnyExpression }}},
		},
	}

	Conditional = Extractor{
		Tag: tree.Conditional,
		Fields: []Field{
			{Name: "condition", Schema: Lazy{Resolve: func() Matcher { return AnyExpression }}},
			{Name: "then", Schema: Lazy{Resolve: func() Matcher { return AnyExpression }}},
			{Name: "else", Schema: Lazy{Resolve: func() Matcher { return AnyExpression }}},
		},
	}

	Infix = Extractor{
		Tag: tree.Infix,
		Fields: []Field{
			{Name: "left", Schema: Lazy{Resolve: func() Matcher { return AnyExpression }}},
			{Name: "operator", Schema: Token{Tag: tree.Operator}},
			{Name: "right", Schema: Lazy{Resolve: func() Matcher { return AnyExpression }}},
		},
	}

	Prefix = Extractor{
		Tag: tree.Prefix,
		Fields: []Field{
			{Name: "operator", Schema: Token{Tag: tree.Operator}},
			{Name: "operand", Schema: Lazy{Resolve: func() Matcher { return AnyExpression }}},
		},
	}

	Postfix = Extractor{
		Tag: tree.Postfix,
		Fields: []Field{
			{Name: "operand", Schema: Lazy{Resolve: func() Matcher { return AnyExpression }}},
			{Name: "operator", Schema: Union{Variants: []UnionVariant{
				{Name: "operator", Matcher: Token{Tag: tree.Operator}},
				{Name: "array", Matcher: Lazy{Resolve: func() Matcher { return Array }}},
			}}},
		},
	}

	Parenthized = Extractor{
		Tag: tree.Parenthized,
		Fields: []Field{
			{Name: "lparen", Schema: Token{Tag: tree.LParen}},
			{Name: "inner", Schema: Lazy{Resolve: func() Matcher { return AnyExpression }}},
			{Name: "rparen", Schema: Token{Tag: tree.RParen}},
		},
	}

	ExpressionSequence = ListExtractor{
		Tag:  tree.ExpressionSequence,
		Item: Lazy{Resolve: func() Matcher { return AnyExpression }},
	}

	Argument = Extractor{
		Tag: tree.Argument,
		Fields: []Field{
			{Name: "value", Schema: Lazy{Resolve: func() Matcher { return AnyExpression }}},
		},
	}

	ArgumentsList = ListExtractor{
		Tag:  tree.ArgumentsList,
		Item: Argument,
	}

	Call = Extractor{
		Tag: tree.Call,
		Fields: []Field{
			{Name: "name", Schema: Token{Tag: tree.Identifier}},
			{Name: "lparen", Schema: Token{Tag: tree.LParen}},
			{Name: "arguments", Schema: ArgumentsList},
			{Name: "rparen", Schema: Token{Tag: tree.RParen}},
		},
	}

	Array = Extractor{
		Tag: tree.Array,
		Fields: []Field{
			{Name: "lbracket", Schema: Token{Tag: tree.LBracket}},
			{Name: "expression", Schema: Lazy{Resolve: func() Matcher { return AnyExpression }}},
			{Name: "rbracket", Schema: Token{Tag: tree.RBracket}},
		},
	}

	Block = ListExtractor{
		Tag:  tree.Block,
		Item: Lazy{Resolve: func() Matcher { return Statement }},
	}

	Selection = Extractor{
		Tag: tree.Selection,
		Fields: []Field{
			{Name: "condition", Schema: Lazy{Resolve: func() Matcher { return AnyExpression }}},
			{Name: "then", Schema: Lazy{Resolve: func() Matcher { return Block }}},
			{Name: "else", Schema: Lazy{Resolve: func() Matcher { return Block }}},
		},
	}

	ConditionList = Extractor{
		Tag: tree.ConditionList,
		Fields: []Field{
			{Name: "init", Schema: Declaration},
			{Name: "condition", Schema: Lazy{Resolve: func() Matcher { return AnyExpression }}},
			{Name: "update", Schema: Lazy{Resolve: func() Matcher { return AnyExpression }}},
		},
	}

	// Statement is a union over everything that can appear as a direct
	// child of a block: a nested block, a for-loop's condition_list + body
	// pair, a selection, a return statement, a bare declaration, or an
	// expression statement.
	//
	// Only for, if and return constructs are wrapped under the statement
	// tag by the parser; bare declarations and
	// expressions sit directly as block children so the scope resolver's
	// sibling scan can reach them without tripping its block/statement
	// pruning rule. Several wrapped shapes share the statement tag, so their
	// matchers inspect the first child's tag rather than relying on the
	// generic Extractor's tag-only Match.
	Statement = Union{
		Variants: []UnionVariant{
			{Name: "block", Matcher: Lazy{Resolve: func() Matcher { return Block }}},
			{Name: "for", Matcher: firstChildTagIs{tree.ConditionList}},
			{Name: "selection", Matcher: firstChildTagIs{tree.Selection}},
			{Name: "return", Matcher: firstChildTagIs{tree.KeywordReturn}},
			{Name: "declaration", Matcher: Declaration},
			{Name: "expression", Matcher: Lazy{Resolve: func() Matcher { return AnyExpression }}},
		},
	}
}

// LayoutQualifiersList matches the parenthesized, comma-separated
// identifier list inside a layout qualifier, e.g. layout(location = 0).
var LayoutQualifiersList = ListExtractor{
	Tag:  tree.LayoutQualifiersList,
	Item: Token{Tag: tree.Identifier},
}

var LayoutQualifier = Extractor{
	Tag: tree.LayoutQualifier,
	Fields: []Field{
		{Name: "keyword", Schema: Token{Tag: tree.KeywordLayout}},
		{Name: "lparen", Schema: Token{Tag: tree.LParen}},
		{Name: "qualifiers", Schema: LayoutQualifiersList},
		{Name: "rparen", Schema: Token{Tag: tree.RParen}},
	},
}

// qualifierKeywordSchema matches any of the plain type-qualifier keyword
// tokens; it is its own small Matcher rather than a Union of ~25
// single-tag Tokens because the set is exactly the lexer's
// qualifier-keyword table.
type qualifierKeywordSchema struct{}

func (qualifierKeywordSchema) Match(t *tree.Tree, index uint32) bool {
	return tree.IsQualifierKeyword(t.Tag(index))
}

// TypeQualifierList's items are either a plain qualifier keyword token
// or a full layout_qualifier node, matching the parser's qualifierList.
var TypeQualifierList = ListExtractor{
	Tag: tree.TypeQualifierList,
	Item: Union{Variants: []UnionVariant{
		{Name: "layout", Matcher: LayoutQualifier},
		{Name: "keyword", Matcher: qualifierKeywordSchema{}},
	}},
}

var Parameter = Extractor{
	Tag: tree.Parameter,
	Fields: []Field{
		{Name: "qualifiers", Schema: TypeQualifierList},
		{Name: "specifier", Schema: Token{Tag: tree.Identifier}},
		{Name: "name", Schema: VariableName},
	},
}

var ParameterList = ListExtractor{
	Tag:  tree.ParameterList,
	Item: Parameter,
}

var VariableDeclaration = Extractor{
	Tag: tree.VariableDeclaration,
	Fields: []Field{
		{Name: "qualifiers", Schema: TypeQualifierList},
		{Name: "specifier", Schema: Token{Tag: tree.Identifier}},
		{Name: "name", Schema: VariableName},
		{Name: "equals", Schema: Token{Tag: tree.Equals}},
		{Name: "initializer", Schema: Lazy{Resolve: func() Matcher { return AnyExpression }}},
	},
}

var VariableDeclarationList = ListExtractor{
	Tag:  tree.VariableDeclarationList,
	Item: VariableDeclaration,
}

var Declaration = Extractor{
	Tag: tree.Declaration,
	Fields: []Field{
		{Name: "declarators", Schema: VariableDeclarationList},
		{Name: "semicolon", Schema: Token{Tag: tree.Semicolon}},
	},
}

var FieldDeclarationList = ListExtractor{
	Tag:  tree.FieldDeclarationList,
	Item: VariableDeclaration,
}

var StructSpecifier = Extractor{
	Tag: tree.StructSpecifier,
	Fields: []Field{
		{Name: "keyword", Schema: Token{Tag: tree.KeywordStruct}},
		{Name: "name", Schema: Token{Tag: tree.Identifier}},
		{Name: "lbrace", Schema: Token{Tag: tree.LBrace}},
		{Name: "fields", Schema: FieldDeclarationList},
		{Name: "rbrace", Schema: Token{Tag: tree.RBrace}},
	},
}

var BlockDeclaration = Extractor{
	Tag: tree.BlockDeclaration,
	Fields: []Field{
		{Name: "qualifiers", Schema: TypeQualifierList},
		{Name: "type_name", Schema: Token{Tag: tree.Identifier}},
		{Name: "lbrace", Schema: Token{Tag: tree.LBrace}},
		{Name: "fields", Schema: FieldDeclarationList},
		{Name: "rbrace", Schema: Token{Tag: tree.RBrace}},
		{Name: "instance", Schema: VariableName},
		{Name: "semicolon", Schema: Token{Tag: tree.Semicolon}},
	},
}

var FunctionDeclaration = Extractor{
	Tag: tree.FunctionDeclaration,
	Fields: []Field{
		{Name: "qualifiers", Schema: TypeQualifierList},
		{Name: "specifier", Schema: Token{Tag: tree.Identifier}},
		{Name: "name", Schema: Token{Tag: tree.Identifier}},
		{Name: "lparen", Schema: Token{Tag: tree.LParen}},
		{Name: "parameters", Schema: ParameterList},
		{Name: "rparen", Schema: Token{Tag: tree.RParen}},
		{Name: "body", Schema: Lazy{Resolve: func() Matcher { return Block }}},
	},
}

// firstChildTagIs matches a statement node whose first child has the
// given tag, discriminating between the several statement shapes that
// all carry the tree.Statement tag.
type firstChildTagIs struct{ tag tree.Tag }

func (s firstChildTagIs) Match(t *tree.Tree, index uint32) bool {
	if t.Tag(index) != tree.Statement {
		return false
	}
	c := t.Children(index)
	return c.Len() > 0 && t.Tag(c.Start) == s.tag
}

// AnyDeclaration is the union typeOf dispatches on: a function, a
// struct, an interface block (the parent of a block's instance name), a
// parameter, or a plain variable declarator (which also covers each
// field inside an interface block or struct).
var AnyDeclaration = Union{
	Variants: []UnionVariant{
		{Name: "function", Matcher: FunctionDeclaration},
		{Name: "struct_specifier", Matcher: StructSpecifier},
		{Name: "block_declaration", Matcher: BlockDeclaration},
		{Name: "parameter", Matcher: Parameter},
		{Name: "variable", Matcher: VariableDeclaration},
	},
}
