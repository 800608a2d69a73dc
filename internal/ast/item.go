package ast

import "vecl/internal/source"

type ItemKind uint8

const (
	ItemFn ItemKind = iota + 1
	ItemConst
)

type Param struct {
	Name string
	Span source.Span
	Type TypeRef
}

// Item is a top-level declaration.
type Item struct {
	Kind     ItemKind
	Span     source.Span
	Name     string
	NameSpan source.Span

	Params []Param  // ItemFn
	Result TypeRef  // ItemFn
	Body   []StmtID // ItemFn

	Type  TypeRef // ItemConst
	Value ExprID  // ItemConst
}

// File is one parsed compilation unit.
type File struct {
	Span  source.Span
	Items []Item
}
