package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Owner is a gym owner account. Staff verifying joins sign in as the owner.
type Owner struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name         string    `gorm:"size:128;not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;not null" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Gyms []Gym `gorm:"foreignKey:OwnerID" json:"gyms,omitempty"`
}

func (Owner) TableName() string { return "owners" }

func (o *Owner) BeforeCreate(tx *gorm.DB) error {
	assignID(&o.ID)
	return nil
}

// Gym is the tenant. Campaigns and members hang off it.
type Gym struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	OwnerID   string    `gorm:"type:varchar(36);not null;index" json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Gym) TableName() string { return "gyms" }

func (g *Gym) BeforeCreate(tx *gorm.DB) error {
	assignID(&g.ID)
	return nil
}

func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
