// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
)

// Storage sentinels. Repositories translate driver errors into these so
// services and handlers can branch with errors.Is without knowing the
// driver.
var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
)
