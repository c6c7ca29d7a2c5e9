package service

import (
	"errors"
	"testing"

	"file_vault/internal/models"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		id       models.Identity
		required models.Role
		want     error
	}{
		{"admin on admin route", models.Identity{UserID: 1, Role: models.RoleAdmin}, models.RoleAdmin, nil},
		{"admin on user route", models.Identity{UserID: 1, Role: models.RoleAdmin}, models.RoleUser, nil},
		{"user on user route", models.Identity{UserID: 2, Role: models.RoleUser}, models.RoleUser, nil},
		{"user on admin route", models.Identity{UserID: 2, Role: models.RoleUser}, models.RoleAdmin, ErrForbidden},
		{"unknown role", models.Identity{UserID: 3, Role: "guest"}, models.RoleUser, ErrForbidden},
		{"no identity", models.Identity{}, models.RoleUser, ErrUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Authorize(tt.id, tt.required); !errors.Is(err, tt.want) {
				t.Fatalf("Authorize(%+v, %s) = %v; want %v", tt.id, tt.required, err, tt.want)
			}
		})
	}
}
