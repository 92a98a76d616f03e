package catalog

// Package catalog holds the exhibitions shipped with the app and answers
// lookups by exhibition and artwork ID. Data is immutable after construction.
