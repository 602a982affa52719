package application

import (
	"fmt"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/pkg/apperror"
)

// EnsureRole fails with FORBIDDEN unless requester holds one of allowed.
func EnsureRole(requester *entity.User, allowed ...entity.Role) error {
	if requester == nil {
		return apperror.Unauthenticated("Not authorized to access this route")
	}
	if !requester.Role.In(allowed...) {
		return apperror.Forbidden(fmt.Sprintf("User role %s is not authorized to access this route", requester.Role))
	}
	return nil
}

// EnsureOwnerOrAdmin fails with FORBIDDEN unless requester owns the resource
// or is an admin.
func EnsureOwnerOrAdmin(requester *entity.User, ownerID string) error {
	if requester == nil {
		return apperror.Unauthenticated("Not authorized to access this route")
	}
	if requester.Role == entity.RoleAdmin || requester.ID == ownerID {
		return nil
	}
	return apperror.Forbidden(fmt.Sprintf("User %s is not authorized to modify this resource", requester.ID))
}
