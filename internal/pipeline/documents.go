package pipeline

import (
	"sort"
	"sync"
	"time"

	"github.com/dgallion1/docstudy/internal/chunker"
	"github.com/dgallion1/docstudy/internal/research"
	"github.com/dgallion1/docstudy/internal/topics"
)

// Document is an ingested document with its detected topics.
type Document struct {
	ID          string         `json:"doc_id"`
	Title       string         `json:"title"`
	Filename    string         `json:"filename"`
	Pages       int            `json:"pages,omitempty"`
	Words       int            `json:"words"`
	ContentHash string         `json:"content_hash"`
	Topics      []topics.Topic `json:"topics"`
	CreatedAt   time.Time      `json:"created_at"`

	Text string `json:"-"`
}

// TopicContent returns topic i and its extracted text.
func (d *Document) TopicContent(i int) (topics.Topic, string, bool) {
	if i < 0 || i >= len(d.Topics) {
		return topics.Topic{}, "", false
	}
	return d.Topics[i], topics.ContentAt(d.Text, d.Topics, i), true
}

// Sections resolves every topic into a titled section for question answering.
func (d *Document) Sections() []research.Section {
	contents := topics.Contents(d.Text, d.Topics)
	out := make([]research.Section, len(d.Topics))
	for i, t := range d.Topics {
		out[i] = research.Section{Title: t.Title, Content: contents[i]}
	}
	return out
}

// DocumentStore is a thread-safe in-memory document registry with TTL
// eviction and lookup by content hash.
type DocumentStore struct {
	mu     sync.Mutex
	docs   map[string]*Document
	byHash map[string]string
	ttl    time.Duration
}

func NewDocumentStore(ttl time.Duration) *DocumentStore {
	return &DocumentStore{
		docs:   make(map[string]*Document),
		byHash: make(map[string]string),
		ttl:    ttl,
	}
}

// Put stores doc. Words is filled in when zero.
func (s *DocumentStore) Put(doc *Document) {
	if doc.Words == 0 {
		doc.Words = chunker.CountWords(doc.Text)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
	if doc.ContentHash != "" {
		s.byHash[doc.ContentHash] = doc.ID
	}
}

func (s *DocumentStore) Get(id string) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[id]
}

// FindByHash returns the document whose text hashes to h, if any.
func (s *DocumentStore) FindByHash(h string) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byHash[h]
	if !ok {
		return nil
	}
	return s.docs[id]
}

// List returns all documents, newest first.
func (s *DocumentStore) List() []*Document {
	s.mu.Lock()
	out := make([]*Document, 0, len(s.docs))
	for _, d := range s.docs {
		out = append(out, d)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Cleanup removes expired documents.
func (s *DocumentStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, doc := range s.docs {
		if now.Sub(doc.CreatedAt) > s.ttl {
			delete(s.docs, id)
			if s.byHash[doc.ContentHash] == id {
				delete(s.byHash, doc.ContentHash)
			}
		}
	}
}

// Delete removes a document. Returns false if it did not exist.
func (s *DocumentStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return false
	}
	delete(s.docs, id)
	if s.byHash[doc.ContentHash] == id {
		delete(s.byHash, doc.ContentHash)
	}
	return true
}
