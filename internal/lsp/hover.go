package lsp

import (
	"encoding/json"
	"fmt"
	"strings"

	"vecl/internal/driver"
	"vecl/internal/symbols"
	"vecl/internal/types"
)

func (s *Server) handleHover(msg *rpcMessage) error {
	var params textDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	res, _, ok := s.ensureAnalyzed(params.TextDocument.URI)
	if !ok || res == nil {
		return s.sendResponse(msg.ID, nil)
	}
	t, ok := locate(res, offsetInFile(res.File, params.Position))
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	text := hoverText(res, t)
	if text == "" {
		return s.sendResponse(msg.ID, nil)
	}
	r := rangeOf(res.File, t.span)
	return s.sendResponse(msg.ID, hover{
		Contents: markupContent{Kind: "markdown", Value: "```vecl\n" + text + "\n```"},
		Range:    &r,
	})
}

func hoverText(res *driver.Result, t target) string {
	switch {
	case t.v.IsValid():
		return describeVar(res, t.v)
	case t.fn.IsValid():
		return describeFun(res, t.fn)
	case t.expr != nil && t.expr.Type != types.Invalid:
		return t.expr.Type.String()
	}
	return ""
}

func describeVar(res *driver.Result, id symbols.VarID) string {
	v := res.Table.Var(id)
	typ := res.Typed.VarType(id)
	switch v.Kind {
	case symbols.VarConst:
		if val, ok := res.Typed.ConstValue(id); ok {
			return fmt.Sprintf("const %s: %s = %s", v.Name, typ, val)
		}
		return fmt.Sprintf("const %s: %s", v.Name, typ)
	case symbols.VarParam:
		return fmt.Sprintf("%s: %s (parameter)", v.Name, typ)
	default:
		return fmt.Sprintf("let %s: %s", v.Name, typ)
	}
}

func describeFun(res *driver.Result, id symbols.FunID) string {
	f := res.Table.Fun(id)
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		typ := res.Table.Var(p).Declared
		if f.Builtin == symbols.NotBuiltin {
			typ = res.Typed.VarType(p)
		}
		params[i] = fmt.Sprintf("%s: %s", res.Table.Var(p).Name, typ)
	}
	sig := fmt.Sprintf("fn %s(%s)", f.Name, strings.Join(params, ", "))
	if f.Result != types.Invalid {
		sig += " -> " + f.Result.String()
	}
	return sig
}
