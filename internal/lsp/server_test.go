package lsp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

const sampleProgram = `const K: real = 2.0;

fn scale(v: vec3) -> vec3 {
    return v * K;
}

fn main() -> int {
    let p = scale(vec3(1.0, 2.0, 3.0));
    printr(p.x);
    return 0;
}
`

const sampleURI = "file:///work/main.vl"

// session frames requests into a single input stream.
type session struct {
	in     bytes.Buffer
	nextID int
}

func (s *session) request(t *testing.T, method string, params any) int {
	t.Helper()
	s.nextID++
	s.write(t, map[string]any{"jsonrpc": "2.0", "id": s.nextID, "method": method, "params": params})
	return s.nextID
}

func (s *session) notify(t *testing.T, method string, params any) {
	t.Helper()
	s.write(t, map[string]any{"jsonrpc": "2.0", "method": method, "params": params})
}

func (s *session) write(t *testing.T, msg any) {
	t.Helper()
	payload, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	if err := writeMessage(&s.in, payload); err != nil {
		t.Fatal(err)
	}
}

func runSession(t *testing.T, s *session) map[string]rpcMessage {
	t.Helper()
	var out bytes.Buffer
	srv := NewServer(&s.in, &out, ServerOptions{Debounce: time.Hour})
	if err := srv.Run(context.Background()); !errors.Is(err, ErrExit) {
		t.Fatalf("Run: %v", err)
	}
	replies := map[string]rpcMessage{}
	r := bufio.NewReader(&out)
	for {
		payload, err := readMessage(r)
		if err != nil {
			break
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatal(err)
		}
		if len(msg.ID) > 0 {
			replies[string(msg.ID)] = msg
		}
	}
	return replies
}

func at(line, char int) map[string]any {
	return map[string]any{
		"textDocument": map[string]any{"uri": sampleURI},
		"position":     map[string]any{"line": line, "character": char},
	}
}

func TestServerSession(t *testing.T) {
	var s session
	initID := s.request(t, "initialize", map[string]any{})
	s.notify(t, "initialized", map[string]any{})
	s.notify(t, "textDocument/didOpen", map[string]any{
		"textDocument": map[string]any{"uri": sampleURI, "languageId": "vecl", "version": 1, "text": sampleProgram},
	})
	hoverVar := s.request(t, "textDocument/hover", at(8, 11))
	hoverCall := s.request(t, "textDocument/hover", at(7, 12))
	hoverConst := s.request(t, "textDocument/hover", at(3, 15))
	defVar := s.request(t, "textDocument/definition", at(8, 11))
	defFun := s.request(t, "textDocument/definition", at(7, 13))
	folding := s.request(t, "textDocument/foldingRange", map[string]any{"textDocument": map[string]any{"uri": sampleURI}})
	unknown := s.request(t, "textDocument/rename", at(0, 0))
	shutdown := s.request(t, "shutdown", nil)
	s.notify(t, "exit", nil)

	replies := runSession(t, &s)
	reply := func(id int) rpcMessage {
		t.Helper()
		msg, ok := replies[strings.TrimSpace(string(mustJSON(t, id)))]
		if !ok {
			t.Fatalf("no reply for request %d", id)
		}
		return msg
	}

	var init initializeResult
	decode(t, reply(initID).Result, &init)
	if !init.Capabilities.HoverProvider || !init.Capabilities.DocumentFormattingProvider {
		t.Fatalf("capabilities: %+v", init.Capabilities)
	}

	for id, want := range map[int]string{
		hoverVar:   "let p: vec3",
		hoverCall:  "fn scale(v: vec3) -> vec3",
		hoverConst: "const K: real",
	} {
		var h hover
		decode(t, reply(id).Result, &h)
		if !strings.Contains(h.Contents.Value, want) {
			t.Errorf("hover %d = %q, want %q", id, h.Contents.Value, want)
		}
	}

	var loc location
	decode(t, reply(defVar).Result, &loc)
	if loc.URI != sampleURI || loc.Range.Start != (position{Line: 7, Character: 8}) {
		t.Fatalf("definition of p: %+v", loc)
	}
	decode(t, reply(defFun).Result, &loc)
	if loc.Range.Start != (position{Line: 2, Character: 3}) {
		t.Fatalf("definition of scale: %+v", loc)
	}

	var folds []foldingRange
	decode(t, reply(folding).Result, &folds)
	if len(folds) != 2 || folds[0] != (foldingRange{StartLine: 2, EndLine: 3, Kind: "region"}) || folds[1].StartLine != 6 || folds[1].EndLine != 9 {
		t.Fatalf("folding ranges: %+v", folds)
	}

	if msg := reply(unknown); msg.Error == nil || msg.Error.Code != codeMethodNotFound {
		t.Fatalf("unknown method reply: %+v", msg)
	}
	if msg := reply(shutdown); msg.Error != nil {
		t.Fatalf("shutdown: %+v", msg.Error)
	}
}

func TestFormattingEdit(t *testing.T) {
	var s session
	s.notify(t, "textDocument/didOpen", map[string]any{
		"textDocument": map[string]any{"uri": sampleURI, "version": 1, "text": "fn main(){return;}"},
	})
	id := s.request(t, "textDocument/formatting", map[string]any{
		"textDocument": map[string]any{"uri": sampleURI},
		"options":      map[string]any{"tabSize": 2, "insertSpaces": true},
	})
	s.request(t, "shutdown", nil)
	s.notify(t, "exit", nil)

	replies := runSession(t, &s)
	var edits []textEdit
	decode(t, replies[string(mustJSON(t, id))].Result, &edits)
	if len(edits) != 1 || edits[0].NewText != "fn main() {\n  return;\n}\n" {
		t.Fatalf("edits: %+v", edits)
	}
	if edits[0].Range.End != (position{Line: 0, Character: 18}) {
		t.Fatalf("edit range: %+v", edits[0].Range)
	}
}

func TestPublishDiagnostics(t *testing.T) {
	var out bytes.Buffer
	srv := NewServer(strings.NewReader(""), &out, ServerOptions{Debounce: time.Hour})
	open, _ := json.Marshal(didOpenTextDocumentParams{TextDocument: textDocumentItem{
		URI: sampleURI, Version: 3, Text: "fn main() -> int {\n    return x;\n}\n",
	}})
	if err := srv.handleDidOpen(&rpcMessage{Method: "textDocument/didOpen", Params: open}); err != nil {
		t.Fatal(err)
	}
	srv.stopTimers()
	if err := srv.publishDiagnostics(sampleURI); err != nil {
		t.Fatal(err)
	}

	payload, err := readMessage(bufio.NewReader(&out))
	if err != nil {
		t.Fatal(err)
	}
	var msg rpcMessage
	decode(t, payload, &msg)
	if msg.Method != "textDocument/publishDiagnostics" {
		t.Fatalf("method = %q", msg.Method)
	}
	var params publishDiagnosticsParams
	decode(t, msg.Params, &params)
	if params.URI != sampleURI || params.Version != 3 || len(params.Diagnostics) == 0 {
		t.Fatalf("params: %+v", params)
	}
	d := params.Diagnostics[0]
	if d.Severity != 1 || d.Source != "vecl" || d.Range.Start != (position{Line: 1, Character: 11}) {
		t.Fatalf("diagnostic: %+v", d)
	}
}

func TestExitWithoutShutdown(t *testing.T) {
	var s session
	s.notify(t, "exit", nil)
	srv := NewServer(&s.in, &bytes.Buffer{}, ServerOptions{})
	if err := srv.Run(context.Background()); !errors.Is(err, ErrExitWithoutShutdown) {
		t.Fatalf("Run: %v", err)
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func decode(t *testing.T, raw []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
}
