package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is both the account type and the provenance tag stamped on intake records.
type Role string

const (
	RoleHospital Role = "hospital"
	RoleCamp     Role = "camp"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleHospital, RoleCamp:
		return true
	}
	return false
}

type Region string

const (
	RegionNorth Region = "North"
	RegionSouth Region = "South"
	RegionEast  Region = "East"
	RegionWest  Region = "West"
)

func (r Region) IsValid() bool {
	switch r {
	case RegionNorth, RegionSouth, RegionEast, RegionWest:
		return true
	}
	return false
}

const DefaultCity = "Mumbai"

// User is a moderator account of a field camp or a hospital.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" bson:"-" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" bson:"updated_at" json:"updatedAt"`

	Email           string `gorm:"column:email;type:varchar(255);uniqueIndex;not null" bson:"email" json:"email"`
	PasswordHash    string `gorm:"column:password_hash;type:varchar(255);not null" bson:"password_hash" json:"-"`
	Pincode         string `gorm:"column:pincode;type:varchar(20);not null" bson:"pincode" json:"pincode"`
	City            string `gorm:"column:city;type:varchar(100);not null;default:'Mumbai'" bson:"city" json:"city"`
	Region          Region `gorm:"column:region;type:varchar(10);not null;default:'North'" bson:"region" json:"region"`
	Moderator       string `gorm:"column:moderator;type:varchar(150);not null" bson:"moderator" json:"moderator"`
	ModeratorNumber string `gorm:"column:moderator_number;type:varchar(30);not null" bson:"moderator_number" json:"moderatorNumber"`
	Role            Role   `gorm:"column:role;type:varchar(20);not null;index" bson:"role" json:"role"`

	LastLoginAt *time.Time `gorm:"column:last_login_at" bson:"last_login_at,omitempty" json:"lastLoginAt,omitempty"`
}

func (User) TableName() string {
	return "auth.users"
}

type AuditAction string

const (
	ActionCreate AuditAction = "create"
	ActionRead   AuditAction = "read"
	ActionLogin  AuditAction = "login"
	ActionLogout AuditAction = "logout"
	ActionSignup AuditAction = "signup"
)

type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" bson:"-"`
	OccurredAt time.Time `gorm:"autoCreateTime;index" bson:"occurred_at"`

	// Who. Nil for anonymous intake submissions.
	UserID    *uuid.UUID `gorm:"column:user_id;type:uuid;index" bson:"user_id,omitempty"`
	UserRole  Role       `gorm:"column:user_role;type:varchar(20)" bson:"user_role,omitempty"`
	IPAddress string     `gorm:"column:ip_address;type:varchar(45)" bson:"ip_address"` // Supports IPv6

	// What
	Action       AuditAction `gorm:"column:action;type:varchar(20);not null;index" bson:"action"`
	ResourceType string      `gorm:"column:resource_type;type:varchar(50);not null;index" bson:"resource_type"`
	ResourceID   string      `gorm:"column:resource_id;type:varchar(50);index" bson:"resource_id"`

	RequestID string `gorm:"column:request_id;type:varchar(50);index" bson:"request_id"`
	Changes   string `gorm:"column:changes;type:text" bson:"changes,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit.logs"
}

// Session is what a caller gets back from a successful signup or login.
type Session struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
	User      *User
}

type Claims struct {
	UserID    uuid.UUID `json:"sub"`
	Role      Role      `json:"role"`
	TokenID   string    `json:"jti"`
	ExpiresAt time.Time `json:"exp"`
}
