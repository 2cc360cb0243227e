package services

import (
	"context"
	"fmt"

	"github.com/SriHarshaKodavati/openBill/database"
	"github.com/SriHarshaKodavati/openBill/models"
	"github.com/SriHarshaKodavati/openBill/utils"
)

// ListActivity returns one page of the group's feed, newest first.
func ListActivity(ctx context.Context, group *models.Group, page utils.PaginationQuery) ([]models.Activity, error) {
	page.Normalize()

	var activities []models.Activity
	err := database.DB.WithContext(ctx).
		Where("group_id = ?", group.ID).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return activities, nil
}
