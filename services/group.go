package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SriHarshaKodavati/openBill/database"
	"github.com/SriHarshaKodavati/openBill/events"
	"github.com/SriHarshaKodavati/openBill/models"
	"github.com/SriHarshaKodavati/openBill/utils"
)

const (
	maxNameLength    = 100
	teamCodeAttempts = 5
)

// generateTeamCode is swapped in tests to force collisions.
var generateTeamCode = utils.GenerateTeamCode

func cleanName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrMissingFields
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidInput, field, maxNameLength)
	}
	return name, nil
}

// CreateGroup creates a group whose first member is memberName.
func CreateGroup(ctx context.Context, name, memberName string) (*models.Group, error) {
	name, err := cleanName("group name", name)
	if err != nil {
		return nil, err
	}
	memberName, err = cleanName("member name", memberName)
	if err != nil {
		return nil, err
	}

	code, err := uniqueTeamCode(ctx)
	if err != nil {
		return nil, err
	}

	group := models.Group{
		Name:     name,
		TeamCode: code,
		Members:  []models.GroupMember{{Name: memberName, Position: 0}},
	}

	err = database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		return tx.Create(&models.Activity{
			GroupID:     group.ID,
			Actor:       memberName,
			Type:        models.ActivityGroupCreated,
			ReferenceID: group.ID,
			Description: fmt.Sprintf("%s created group \"%s\"", memberName, group.Name),
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}

	slog.InfoContext(ctx, "Group created", "team_code", group.TeamCode, "member", memberName)
	return &group, nil
}

func uniqueTeamCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < teamCodeAttempts; attempt++ {
		code, err := generateTeamCode()
		if err != nil {
			return "", fmt.Errorf("generate team code: %w", err)
		}
		var count int64
		if err := database.DB.WithContext(ctx).Model(&models.Group{}).Where("team_code = ?", code).Count(&count).Error; err != nil {
			return "", fmt.Errorf("check team code: %w", err)
		}
		if count == 0 {
			return code, nil
		}
		slog.WarnContext(ctx, "Team code collision, retrying", "attempt", attempt+1)
	}
	return "", errors.New("could not allocate a unique team code")
}

// FindGroup loads a group and its members by team code.
func FindGroup(ctx context.Context, teamCode string) (*models.Group, error) {
	teamCode = utils.NormalizeTeamCode(teamCode)
	if !utils.ValidTeamCode(teamCode) {
		return nil, ErrGroupNotFound
	}

	if group, ok := getCachedGroup(ctx, teamCode); ok {
		return group, nil
	}

	var group models.Group
	err := database.DB.WithContext(ctx).
		Preload("Members").
		Where("team_code = ?", teamCode).
		First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find group: %w", err)
	}

	setCachedGroup(ctx, &group)
	return &group, nil
}

// JoinGroup adds memberName to the group. Joining under a name that is
// already a member is a no-op, so joined reports whether anything changed.
func JoinGroup(ctx context.Context, teamCode, memberName string) (group *models.Group, joined bool, err error) {
	memberName, err = cleanName("member name", memberName)
	if err != nil {
		return nil, false, err
	}
	if strings.TrimSpace(teamCode) == "" {
		return nil, false, ErrMissingFields
	}

	group, err = FindGroup(ctx, teamCode)
	if err != nil {
		return nil, false, err
	}
	if group.HasMember(memberName) {
		return group, false, nil
	}

	var members []models.GroupMember
	err = database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// joins to one group are serialized so positions stay unique; sqlite
		// already runs on a single connection
		if tx.Dialector.Name() == "postgres" {
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Select("id").
				First(&models.Group{}, "id = ?", group.ID).Error
			if err != nil {
				return err
			}
		}

		if err := tx.Where("group_id = ?", group.ID).Find(&members).Error; err != nil {
			return err
		}
		for _, m := range members {
			if m.Name == memberName {
				return nil
			}
		}

		member := models.GroupMember{
			GroupID:  group.ID,
			Name:     memberName,
			Position: nextPosition(members),
		}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}
		members = append(members, member)
		joined = true

		return tx.Create(&models.Activity{
			GroupID:     group.ID,
			Actor:       memberName,
			Type:        models.ActivityMemberJoined,
			Description: fmt.Sprintf("%s joined the group", memberName),
		}).Error
	})
	if err != nil {
		return nil, false, fmt.Errorf("join group: %w", err)
	}

	invalidateGroup(ctx, group.TeamCode)
	group.Members = members

	if joined {
		slog.InfoContext(ctx, "Member joined", "team_code", group.TeamCode, "member", memberName)
		events.Emit(ctx, events.New(events.TypeMemberJoined, group.TeamCode, memberName, ""))
	}
	return group, joined, nil
}

func nextPosition(members []models.GroupMember) int {
	next := 0
	for _, m := range members {
		if m.Position >= next {
			next = m.Position + 1
		}
	}
	return next
}
