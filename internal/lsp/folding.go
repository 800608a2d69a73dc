package lsp

import (
	"encoding/json"

	"vecl/internal/ast"
	"vecl/internal/driver"
	"vecl/internal/source"
)

func (s *Server) handleFoldingRange(msg *rpcMessage) error {
	var params documentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	res, _, ok := s.ensureAnalyzed(params.TextDocument.URI)
	if !ok || res == nil || res.AST == nil {
		return s.sendResponse(msg.ID, []foldingRange{})
	}
	return s.sendResponse(msg.ID, foldingRanges(res))
}

// foldingRanges folds function bodies and nested if/while blocks. The
// closing brace line stays visible.
func foldingRanges(res *driver.Result) []foldingRange {
	out := []foldingRange{}
	add := func(sp source.Span) {
		start := positionOf(res.File.Content, int(sp.Start)).Line
		end := positionOf(res.File.Content, int(sp.End)).Line - 1
		if end > start {
			out = append(out, foldingRange{StartLine: start, EndLine: end, Kind: "region"})
		}
	}
	var walk func(ids []ast.StmtID)
	walk = func(ids []ast.StmtID) {
		for _, id := range ids {
			st := res.Builder.Stmt(id)
			if st == nil || (st.Kind != ast.StmtIf && st.Kind != ast.StmtWhile) {
				continue
			}
			add(st.Span)
			walk(st.Then)
			walk(st.Else)
		}
	}
	for i := range res.AST.Items {
		item := &res.AST.Items[i]
		if item.Kind != ast.ItemFn {
			continue
		}
		add(item.Span)
		walk(item.Body)
	}
	return out
}
