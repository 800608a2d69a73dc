package lsp

import (
	"encoding/json"

	"vecl/internal/format"
)

func (s *Server) handleFormatting(msg *rpcMessage) error {
	var params documentFormattingParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	uri := params.TextDocument.URI
	s.mu.Lock()
	doc, ok := s.docs[uri]
	var text string
	if ok {
		text = doc.text
	}
	s.mu.Unlock()
	if !ok {
		return s.sendResponse(msg.ID, []textEdit{})
	}

	opts := format.Options{IndentWidth: params.Options.TabSize, UseTabs: !params.Options.InsertSpaces}
	formatted, err := format.Source(uriToPath(uri), []byte(text), opts)
	if err != nil || string(formatted) == text {
		// с синтаксическими ошибками документ не трогаем
		return s.sendResponse(msg.ID, []textEdit{})
	}
	whole := lspRange{End: positionOf([]byte(text), len(text))}
	return s.sendResponse(msg.ID, []textEdit{{Range: whole, NewText: string(formatted)}})
}
