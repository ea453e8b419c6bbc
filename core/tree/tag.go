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

// Package tree defines the flat indexed parse tree that the rest of this
// module consumes. Parsing/tokenization is, in the larger system this
// package belongs to, the job of an external collaborator; the lexer and
// parser here exist so the semantic analysis layers have a concrete,
// testable tree to walk.
package tree

// Tag discriminates node kinds: either a grammar production (nonterminal)
// or a lexeme kind (token). Two pseudo-tags, Invalid and Unknown, mark
// parser recovery nodes and must be skipped by positional matching.
type Tag int

const (
	Invalid Tag = iota
	Unknown

	// Nonterminals.
	File
	FunctionDeclaration
	ParameterList
	Parameter
	Declaration
	VariableDeclarationList
	VariableDeclaration
	BlockDeclaration
	StructSpecifier
	FieldDeclarationList
	Block
	Statement
	ArraySpecifier
	Array
	Call
	ArgumentsList
	Argument
	InitializerList
	TypeQualifierList
	LayoutQualifier
	LayoutQualifiersList
	Assignment
	Infix
	Prefix
	Postfix
	Conditional
	Selection
	Parenthized
	ExpressionSequence
	ConditionList

	// Tokens.
	Identifier
	Number
	Semicolon
	Comma
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Equals
	Dot
	Question
	Colon
	Operator // catch-all for infix/prefix/postfix/assignment operator lexemes

	KeywordConst
	KeywordUniform
	KeywordAttribute
	KeywordVarying
	KeywordBuffer
	KeywordShared
	KeywordCoherent
	KeywordVolatile
	KeywordRestrict
	KeywordReadonly
	KeywordWriteonly
	KeywordIn
	KeywordOut
	KeywordInout
	KeywordPatch
	KeywordSample
	KeywordHighp
	KeywordMediump
	KeywordLowp
	KeywordSmooth
	KeywordFlat
	KeywordNoperspective
	KeywordCentroid
	KeywordInvariant
	KeywordPrecise
	KeywordLayout
	KeywordStruct
	KeywordFor
	KeywordIf
	KeywordElse
	KeywordReturn
	KeywordWhile
)

// IsToken reports whether the tag is a lexeme rather than a grammar
// production. Token nodes never have children.
func (t Tag) IsToken() bool {
	return t >= Identifier
}

// IsQualifierKeyword reports whether tag can appear inside a
// type_qualifier_list.
func IsQualifierKeyword(tag Tag) bool { return qualifierKeywords[tag] }

// qualifierKeywords is the set of tags recognized inside a
// type_qualifier_list.
var qualifierKeywords = map[Tag]bool{
	KeywordConst: true, KeywordUniform: true, KeywordAttribute: true,
	KeywordVarying: true, KeywordBuffer: true, KeywordShared: true,
	KeywordCoherent: true, KeywordVolatile: true, KeywordRestrict: true,
	KeywordReadonly: true, KeywordWriteonly: true, KeywordIn: true,
	KeywordOut: true, KeywordInout: true, KeywordPatch: true,
	KeywordSample: true, KeywordHighp: true, KeywordMediump: true,
	KeywordLowp: true, KeywordSmooth: true, KeywordFlat: true,
	KeywordNoperspective: true, KeywordCentroid: true, KeywordInvariant: true,
	KeywordPrecise: true, KeywordLayout: true,
}

// keywords maps source spellings to their keyword tag.
var keywords = map[string]Tag{
	"const": KeywordConst, "uniform": KeywordUniform, "attribute": KeywordAttribute,
	"varying": KeywordVarying, "buffer": KeywordBuffer, "shared": KeywordShared,
	"coherent": KeywordCoherent, "volatile": KeywordVolatile, "restrict": KeywordRestrict,
	"readonly": KeywordReadonly, "writeonly": KeywordWriteonly, "in": KeywordIn,
	"out": KeywordOut, "inout": KeywordInout, "patch": KeywordPatch,
	"sample": KeywordSample, "highp": KeywordHighp, "mediump": KeywordMediump,
	"lowp": KeywordLowp, "smooth": KeywordSmooth, "flat": KeywordFlat,
	"noperspective": KeywordNoperspective, "centroid": KeywordCentroid,
	"invariant": KeywordInvariant, "precise": KeywordPrecise, "layout": KeywordLayout,
	"struct": KeywordStruct, "for": KeywordFor, "if": KeywordIf, "else": KeywordElse,
	"return": KeywordReturn, "while": KeywordWhile,
}
