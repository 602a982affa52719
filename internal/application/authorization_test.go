package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/pkg/apperror"
)

func TestEnsureRole(t *testing.T) {
	user := &entity.User{ID: "u", Role: entity.RoleUser}
	admin := &entity.User{ID: "a", Role: entity.RoleAdmin}

	err := EnsureRole(user, entity.RoleAdmin)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "User role user is not authorized")

	assert.NoError(t, EnsureRole(admin, entity.RoleAdmin))
	assert.NoError(t, EnsureRole(user, entity.RolePublisher, entity.RoleUser))
	assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(EnsureRole(nil, entity.RoleUser)))
}

func TestEnsureOwnerOrAdmin(t *testing.T) {
	tests := []struct {
		name      string
		requester *entity.User
		ownerID   string
		want      apperror.Kind
	}{
		{"owner", &entity.User{ID: "u1", Role: entity.RolePublisher}, "u1", ""},
		{"admin on someone else's", &entity.User{ID: "a1", Role: entity.RoleAdmin}, "u1", ""},
		{"non owner publisher", &entity.User{ID: "u2", Role: entity.RolePublisher}, "u1", apperror.KindForbidden},
		{"non owner user", &entity.User{ID: "u3", Role: entity.RoleUser}, "u1", apperror.KindForbidden},
		{"anonymous", nil, "u1", apperror.KindUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := EnsureOwnerOrAdmin(tt.requester, tt.ownerID)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, apperror.KindOf(err))
		})
	}
}
