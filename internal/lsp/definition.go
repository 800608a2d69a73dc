package lsp

import (
	"encoding/json"

	"vecl/internal/source"
	"vecl/internal/symbols"
)

func (s *Server) handleDefinition(msg *rpcMessage) error {
	var params textDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	uri := params.TextDocument.URI
	res, _, ok := s.ensureAnalyzed(uri)
	if !ok || res == nil {
		return s.sendResponse(msg.ID, nil)
	}
	t, ok := locate(res, offsetInFile(res.File, params.Position))
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	var decl source.Span
	switch {
	case t.v.IsValid():
		decl = res.Table.Var(t.v).Span
	case t.fn.IsValid():
		if f := res.Table.Fun(t.fn); f.Builtin == symbols.NotBuiltin {
			decl = f.Span
		}
	}
	if decl.Empty() {
		return s.sendResponse(msg.ID, nil)
	}
	return s.sendResponse(msg.ID, location{URI: uri, Range: rangeOf(res.File, decl)})
}
