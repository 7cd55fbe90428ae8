package utils

import "strconv"

// Page is one bounded slice of an ordered listing, numbered from 1.
type Page[T any] struct {
	Items    []T
	Number   int
	NumPages int
	Total    int64
	PerPage  int
}

// ResolvePage turns the raw ?page= value into a valid page number.
// Absent or non-numeric values give the first page, anything out of range gives the last one.
// An empty listing still has one (empty) page.
func ResolvePage(raw string, total int64, perPage int) (number, numPages int) {
	if perPage <= 0 {
		perPage = 1
	}
	numPages = int((total + int64(perPage) - 1) / int64(perPage))
	if numPages < 1 {
		numPages = 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1, numPages
	}
	if n < 1 || n > numPages {
		return numPages, numPages
	}
	return n, numPages
}

// NewPage builds page metadata for the raw page value; Items is filled by the caller.
func NewPage[T any](raw string, total int64, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = 1
	}
	number, numPages := ResolvePage(raw, total, perPage)
	return Page[T]{Number: number, NumPages: numPages, Total: total, PerPage: perPage}
}

// Offset is the zero-based index of the first record on this page.
func (p Page[T]) Offset() int {
	return (p.Number - 1) * p.PerPage
}

// StartIndex is the one-based index of the first record on this page.
func (p Page[T]) StartIndex() int {
	if p.Total == 0 {
		return 0
	}
	return p.Offset() + 1
}

func (p Page[T]) HasPrevious() bool { return p.Number > 1 }

func (p Page[T]) HasNext() bool { return p.Number < p.NumPages }

func (p Page[T]) HasOtherPages() bool { return p.HasPrevious() || p.HasNext() }

func (p Page[T]) PreviousNumber() int {
	if !p.HasPrevious() {
		return p.Number
	}
	return p.Number - 1
}

func (p Page[T]) NextNumber() int {
	if !p.HasNext() {
		return p.Number
	}
	return p.Number + 1
}
