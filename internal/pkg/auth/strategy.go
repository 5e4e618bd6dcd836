package auth

import (
	"time"

	"github.com/Josema-montano/FastFood-Admin/internal/domain/model"
)

// Strategy issues and verifies staff session tokens. The role travels
// inside the token so the command surface can scope transitions without a
// user lookup on every request.
type Strategy interface {
	IssueToken(userID int64, role model.Role) (string, error)
	ParseToken(token string) (int64, model.Role, error)
	Name() string
}

// Options tunes token issuing behaviour.
type Options struct {
	TTL time.Duration
}
