package services

import (
	"errors"
	"strings"

	"github.com/yashrajoria/storefront/apperrors"
	"github.com/yashrajoria/storefront/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// repoErr converts a repository error into the service error taxonomy.
// ErrNotFound becomes a NotFound with notFoundMsg; anything unexpected is an
// Internal error whose client message is internalMsg.
func repoErr(err error, notFoundMsg, internalMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound(notFoundMsg)
	default:
		return apperrors.Internal(internalMsg, err)
	}
}

// canonicalID lower-cases a hex ObjectID so it matches ids stored by Hex().
// Anything that is not an ObjectID is returned unchanged.
func canonicalID(id string) string {
	id = strings.TrimSpace(id)
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid.Hex()
	}
	return id
}
