package service

import "file_vault/internal/models"

// Authorize is the single role predicate behind every protected operation.
// An admin satisfies any requirement; otherwise the roles must match.
func Authorize(id models.Identity, required models.Role) error {
	switch {
	case id.UserID <= 0:
		return ErrUnauthenticated
	case id.Role == models.RoleAdmin:
		return nil
	case id.Role == required:
		return nil
	default:
		return ErrForbidden
	}
}
