package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/youssefalsaeed/order-management-system/pkg/enums"
)

// Order is the record produced when a cart is checked out.
type Order struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID         `gorm:"column:user_id;type:uuid;not null" json:"user_id"`
	Status    enums.OrderStatus `gorm:"column:status;not null;default:'pending'" json:"status"`
	Items     []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
