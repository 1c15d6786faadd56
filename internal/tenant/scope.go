package tenant

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scopes translate an Identity into row filters. The policy is uniform for
// tasks and reports: employees see their own rows, managers their branch,
// admins their company. If the id a scope needs is missing from the identity
// the scope matches nothing: an empty result, never an unscoped query.

// None matches no rows. Used as the safety default when an identity lacks
// the id its role would scope by.
func None(db *gorm.DB) *gorm.DB {
	return db.Where("1 = 0")
}

// ForCompany filters by company_id.
func ForCompany(companyID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// ForBranch filters by branch_id.
func ForBranch(branchID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("branch_id = ?", branchID)
	}
}

// TasksFor scopes a tasks query to what the identity may see.
func TasksFor(identity *Identity) func(db *gorm.DB) *gorm.DB {
	switch {
	case identity.IsAdmin():
		if identity.CompanyID == nil {
			return None
		}
		return ForCompany(*identity.CompanyID)
	case identity.IsManager():
		if identity.BranchID == nil {
			return None
		}
		return ForBranch(*identity.BranchID)
	default:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("assigned_to = ?", identity.UserID)
		}
	}
}

// ReportsFor scopes a daily_reports query to what the identity may see.
func ReportsFor(identity *Identity) func(db *gorm.DB) *gorm.DB {
	switch {
	case identity.IsAdmin():
		if identity.CompanyID == nil {
			return None
		}
		return ForCompany(*identity.CompanyID)
	case identity.IsManager():
		if identity.BranchID == nil {
			return None
		}
		return ForBranch(*identity.BranchID)
	default:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("user_id = ?", identity.UserID)
		}
	}
}

// Thread filters messages to the two-party conversation between a and b,
// in either direction.
func Thread(a, b uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			a, b, b, a,
		)
	}
}
