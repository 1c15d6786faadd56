package tenant

import (
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stafflink-app/stafflink-backend/internal/models"
)

// Identity is the resolved caller: who they are and what slice of the data
// they may see. It is built once per request and passed down explicitly
// instead of being looked up ad hoc.
type Identity struct {
	UserID    uuid.UUID
	Email     string
	Role      string
	CompanyID *uuid.UUID
	BranchID  *uuid.UUID
}

// IsPlatformAdmin reports the platform operator role, the only one that may
// act across companies.
func (i *Identity) IsPlatformAdmin() bool {
	return i.Role == models.RoleAdmin
}

// IsAdmin reports company-wide visibility.
func (i *Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin || i.Role == models.RoleCompanyAdmin
}

// IsManager reports branch-wide visibility.
func (i *Identity) IsManager() bool {
	return i.Role == models.RoleManager || i.Role == models.RoleAssistantManager
}

func (i *Identity) IsEmployee() bool {
	return i.Role == models.RoleEmployee
}

// Resolve loads the caller's role assignment and builds an Identity. A user
// without a role assignment (or a failed lookup) still gets an authenticated
// identity, just with no elevated capability: privilege checks fail closed
// while basic access keeps working.
func Resolve(db *gorm.DB, userID uuid.UUID, email string) *Identity {
	identity := &Identity{UserID: userID, Email: email}

	var assignment models.UserRole
	err := db.Where("user_id = ?", userID).Order("created_at").First(&assignment).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			slog.Error("role lookup failed", "user_id", userID, "error", err)
		}
		return identity
	}

	identity.Role = assignment.Role
	identity.CompanyID = assignment.CompanyID
	identity.BranchID = assignment.BranchID
	return identity
}
