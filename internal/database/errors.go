package database

import "errors"

// Lookup outcomes the workflows need to tell apart. ErrNotFound is a
// normal condition for user/team lookups (the row gets created) and a
// fatal one for contest/role/category/problem lookups. A wrapped
// ErrMultipleMatches always means the shared schema holds duplicate
// rows for a supposedly unique key and is never handled per student.
var (
	ErrNotFound        = errors.New("requested row not found")
	ErrMultipleMatches = errors.New("multiple rows match a unique key")
)
