// AngelaMos | 2026
// store.go

package session

import "context"

// Store maps opaque client tokens to user ids. Tokens expire server-side;
// a missing or expired token resolves to (0, false, nil), not an error.
type Store interface {
	Create(ctx context.Context, userID int64) (string, error)
	Resolve(ctx context.Context, token string) (int64, bool, error)
	Destroy(ctx context.Context, token string) error
}
