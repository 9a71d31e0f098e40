package models

import (
	"time"

	"github.com/lib/pq"
)

// OrderModel is the persisted order row. The composite index on
// (service_type_id, created_at, id) backs the descending keyset listing.
type OrderModel struct {
	ID string `gorm:"primaryKey;column:id"`

	Namespace     string `gorm:"column:namespace"`
	ProductID     string `gorm:"column:product_id"`
	ServiceType   string `gorm:"column:service_type"`
	ServiceTypeID string `gorm:"column:service_type_id;index:idx_orders_owner_created,priority:1"`

	AuthType   string `gorm:"column:auth_type"`
	AuthTypeID string `gorm:"column:auth_type_id"`

	UserBrowser    string `gorm:"column:user_browser"`
	UserOS         string `gorm:"column:user_os"`
	UserDeviceType string `gorm:"column:user_device_type"`

	Status string `gorm:"column:status"`

	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime:false;index:idx_orders_owner_created,priority:2"`
	VerificationCode string    `gorm:"column:verification_code"`

	ActivatedAt *time.Time     `gorm:"column:activated_at"`
	ActivatedBy string         `gorm:"column:activated_by"`
	RedeemCode  string         `gorm:"column:redeem_code"`
	Tags        pq.StringArray `gorm:"column:tags;type:text[]"`

	RedeemedAt  *time.Time `gorm:"column:redeemed_at"`
	AccessToken string     `gorm:"column:access_token"`

	VoidedAt *time.Time `gorm:"column:voided_at"`
	VoidedBy string     `gorm:"column:voided_by"`

	ReturnedAt *time.Time `gorm:"column:returned_at"`
	ReturnedBy string     `gorm:"column:returned_by"`

	ExpiredAt time.Time `gorm:"column:expired_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
	TTL       time.Time `gorm:"column:ttl;index"`
}

func (OrderModel) TableName() string {
	return "orders"
}
