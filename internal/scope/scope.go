package scope

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForOwner returns a GORM scope that restricts a query to rows owned by the
// given user. Every recipe/tag/ingredient read and write goes through it, so
// other users' rows are indistinguishable from missing ones.
func ForOwner(ownerID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", ownerID)
	}
}
