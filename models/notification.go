package models

import "time"

// Notification thông báo vận hành cho admin: webhook lỗi, vé chưa gửi
// được email, kết quả quét đơn treo.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Description string    `gorm:"type:text" json:"description"`
	Code        string    `gorm:"type:varchar(40)" json:"code"`
	IsRead      bool      `json:"isRead"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
