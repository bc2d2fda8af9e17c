package service

import (
	domainauth "github.com/forkful/menuboard/internal/domain/auth"
)

// RequireOwner is the single authorization primitive. It returns true only
// when the session is authenticated and its identity owns the target
// resource. It fails closed and never errors, so callers uniformly branch
// on the boolean. Denial is an expected, frequent outcome: cheap and free
// of side effects.
func RequireOwner(sess domainauth.Session, resourceOwnerID int64) bool {
	if !sess.IsAuthenticated() {
		return false
	}
	return *sess.IdentityID == resourceOwnerID
}
