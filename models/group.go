package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Group struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string        `gorm:"not null;size:100" json:"name"`
	TeamCode  string        `gorm:"uniqueIndex;not null;size:8" json:"teamCode"`
	Members   []GroupMember `gorm:"foreignKey:GroupID" json:"-"`
	CreatedAt time.Time     `json:"createdAt"`
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// MemberNames returns member names in join order.
func (g *Group) MemberNames() []string {
	members := make([]GroupMember, len(g.Members))
	copy(members, g.Members)
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Position < members[j].Position
	})

	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}
	return names
}

// HasMember reports whether name already belongs to the group.
func (g *Group) HasMember(name string) bool {
	for _, m := range g.Members {
		if m.Name == name {
			return true
		}
	}
	return false
}

type GroupMember struct {
	GroupID  uuid.UUID `gorm:"type:uuid;primaryKey;uniqueIndex:idx_group_member_position,priority:1" json:"-"`
	Name     string    `gorm:"primaryKey;size:100" json:"name"`
	Position int       `gorm:"not null;uniqueIndex:idx_group_member_position,priority:2" json:"position"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joinedAt"`
}

// Request structs
type CreateGroupRequest struct {
	Name       string `json:"name" binding:"required"`
	MemberName string `json:"memberName" binding:"required"`
}

type JoinGroupRequest struct {
	TeamCode   string `json:"teamCode" binding:"required"`
	MemberName string `json:"memberName" binding:"required"`
}

// Response structs
type GroupResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	TeamCode  string    `json:"teamCode"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"createdAt"`
}

func (g *Group) ToResponse() GroupResponse {
	return GroupResponse{
		ID:        g.ID,
		Name:      g.Name,
		TeamCode:  g.TeamCode,
		Members:   g.MemberNames(),
		CreatedAt: g.CreatedAt,
	}
}

// SessionResponse is returned by create and join: the group plus a token that
// lets the member write to it.
type SessionResponse struct {
	Group  GroupResponse `json:"group"`
	Member string        `json:"member"`
	Token  string        `json:"token"`
}

type GroupDetailResponse struct {
	Group    GroupResponse     `json:"group"`
	Expenses []ExpenseResponse `json:"expenses"`
}
