package domain

import "fmt"

// FetchError marks a feed or image retrieval/parse failure. The failing
// unit of work (that feed or that image) is skipped; processing continues.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch %s: %v", e.Source, e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// GenerationError marks a generative-backend failure or an empty response.
// The candidate item is abandoned; no partial article is ever written.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string { return fmt.Sprintf("generate content: %v", e.Err) }
func (e *GenerationError) Unwrap() error { return e.Err }

// PersistenceError marks a store lookup or write failure for one item.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("store %s: %v", e.Op, e.Err) }
func (e *PersistenceError) Unwrap() error { return e.Err }
