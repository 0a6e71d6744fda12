package models

import "time"

// Brand là một nhãn hiệu. ParentID khác nil nghĩa là sub-label trực thuộc
// một nhãn cha, doanh thu và phí nền tảng được gộp lên nhãn cha.
type Brand struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	ParentID  *uint     `json:"parentId"`
	Parent    *Brand    `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
