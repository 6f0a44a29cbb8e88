package document

import (
	"fmt"

	"github.com/dshills/runpad/internal/errs"
)

// ErrIndexOutOfRange is returned for a tab index outside the set.
var ErrIndexOutOfRange = fmt.Errorf("document index %w", errs.ErrOutOfRange)

// Set is the ordered collection of open documents.
// It always holds at least one document and the active index is always valid.
type Set struct {
	docs     []*Document
	active   int
	untitled int
	opts     []Option
}

// NewSet creates a set holding one empty document.
// opts apply to every document the set creates.
func NewSet(opts ...Option) *Set {
	s := &Set{opts: opts}
	s.Create()
	return s
}

// SetOptions replaces the options applied to documents created from now on.
// Documents already in the set are unchanged.
func (s *Set) SetOptions(opts ...Option) {
	s.opts = opts
}

// Create appends a new empty document, makes it active and returns its index.
func (s *Set) Create() int {
	s.untitled++
	return s.add(New("", "", s.untitled, s.opts...))
}

// Open appends a document holding content for path, makes it active
// and returns its index.
func (s *Set) Open(path, content string) int {
	return s.add(New(path, content, 0, s.opts...))
}

// Load reads path from store and opens it.
// The set is unchanged if the read fails.
func (s *Set) Load(store Store, path string) (int, error) {
	content, err := store.Load(path)
	if err != nil {
		return 0, err
	}
	return s.Open(path, content), nil
}

func (s *Set) add(d *Document) int {
	s.docs = append(s.docs, d)
	s.active = len(s.docs) - 1
	return s.active
}

// SetActive makes the document at index active.
func (s *Set) SetActive(index int) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.active = index
	return nil
}

// Close removes the document at index.
//
// If it was active, the document now at that index becomes active, or the
// previous one when the last tab was closed. Closing the only document
// replaces it with a fresh empty one.
func (s *Set) Close(index int) error {
	if err := s.check(index); err != nil {
		return err
	}

	s.docs = append(s.docs[:index], s.docs[index+1:]...)

	switch {
	case len(s.docs) == 0:
		s.active = 0
		s.Create()
	case index < s.active:
		s.active--
	case s.active >= len(s.docs):
		s.active = len(s.docs) - 1
	}
	return nil
}

// Active returns the active document.
func (s *Set) Active() *Document {
	return s.docs[s.active]
}

// ActiveIndex returns the index of the active document.
func (s *Set) ActiveIndex() int {
	return s.active
}

// At returns the document at index.
func (s *Set) At(index int) (*Document, error) {
	if err := s.check(index); err != nil {
		return nil, err
	}
	return s.docs[index], nil
}

// Len returns the number of documents.
func (s *Set) Len() int {
	return len(s.docs)
}

// Documents returns the documents in tab order.
func (s *Set) Documents() []*Document {
	out := make([]*Document, len(s.docs))
	copy(out, s.docs)
	return out
}

func (s *Set) check(index int) error {
	if index < 0 || index >= len(s.docs) {
		return fmt.Errorf("%d of %d: %w", index, len(s.docs), ErrIndexOutOfRange)
	}
	return nil
}
