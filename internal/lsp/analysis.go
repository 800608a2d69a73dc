package lsp

import (
	"time"

	"vecl/internal/diag"
	"vecl/internal/driver"
)

// scheduleAnalysis (re)arms the debounce timer of uri.
func (s *Server) scheduleAnalysis(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		return
	}
	if doc.timer != nil {
		doc.timer.Stop()
	}
	doc.timer = time.AfterFunc(s.debounce, func() {
		if err := s.publishDiagnostics(uri); err != nil {
			s.logf("publish %s: %v", uri, err)
		}
	})
}

// ensureAnalyzed returns an analysis of the current text of uri, running
// one if the document changed since the last run.
func (s *Server) ensureAnalyzed(uri string) (*driver.Result, int, bool) {
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok {
		s.mu.Unlock()
		return nil, 0, false
	}
	if doc.result != nil && doc.analyzedSeq == doc.seq {
		res, version := doc.result, doc.version
		s.mu.Unlock()
		return res, version, true
	}
	text, seq, version := doc.text, doc.seq, doc.version
	s.mu.Unlock()

	path := uriToPath(uri)
	if path == "" {
		path = uri
	}
	res := s.analyze(s.baseCtx, path, []byte(text))

	s.mu.Lock()
	// правка могла прийти, пока шёл анализ: сохраняем только свежий результат
	if cur, still := s.docs[uri]; still && cur.seq == seq {
		cur.result = res
		cur.analyzedSeq = seq
	}
	s.mu.Unlock()
	return res, version, true
}

func (s *Server) publishDiagnostics(uri string) error {
	res, version, ok := s.ensureAnalyzed(uri)
	if !ok || res == nil {
		return nil
	}
	return s.sendPublish(uri, version, convertDiagnostics(uri, res))
}

func convertDiagnostics(uri string, res *driver.Result) []lspDiagnostic {
	items := res.Bag.Items()
	out := make([]lspDiagnostic, 0, len(items))
	for _, d := range items {
		ld := lspDiagnostic{
			Range:    rangeOf(res.File, d.Primary),
			Severity: severity(d.Severity),
			Code:     d.Code.ID(),
			Source:   "vecl",
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			ld.RelatedInformation = append(ld.RelatedInformation, diagnosticRelatedInformation{
				Location: location{URI: uri, Range: rangeOf(res.File, n.Span)},
				Message:  n.Msg,
			})
		}
		out = append(out, ld)
	}
	return out
}

// severity maps onto LSP DiagnosticSeverity (1 error .. 3 information).
func severity(sev diag.Severity) int {
	switch sev {
	case diag.SevError:
		return 1
	case diag.SevWarning:
		return 2
	default:
		return 3
	}
}
