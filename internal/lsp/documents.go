package lsp

import (
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

type document struct {
	text    string
	version protocol.Integer
}

// documents holds the text of open documents. Handlers may run
// concurrently; one mutex guards the map.
type documents struct {
	mu   sync.Mutex
	docs map[protocol.DocumentUri]document
}

func newDocuments() *documents {
	return &documents{docs: make(map[protocol.DocumentUri]document)}
}

func (d *documents) open(uri protocol.DocumentUri, version protocol.Integer, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.docs[uri] = document{text: text, version: version}
}

// change applies edits to an open document. Changes to unknown documents are
// dropped.
func (d *documents) change(uri protocol.DocumentUri, version protocol.Integer, changes []any) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	doc, ok := d.docs[uri]
	if !ok {
		return false
	}
	d.docs[uri] = document{text: applyChanges(doc.text, changes), version: version}
	return true
}

func (d *documents) close(uri protocol.DocumentUri) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.docs, uri)
}

func (d *documents) get(uri protocol.DocumentUri) (document, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	doc, ok := d.docs[uri]
	return doc, ok
}

func (d *documents) len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.docs)
}
