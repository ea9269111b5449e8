package seed

import (
	"haven/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInBoard is a permanent condition board created at install time.
type BuiltInBoard struct {
	Name        string
	Description string
}

// BuiltInBoards defines the default set of condition boards.
var BuiltInBoards = []BuiltInBoard{
	{Name: "Diabetes", Description: "Support for living with type 1 and type 2 diabetes."},
	{Name: "Mental Health", Description: "A safe space to talk about anxiety, depression and everything in between."},
	{Name: "Autoimmune", Description: "Lupus, MS, celiac and other autoimmune conditions."},
	{Name: "Chronic Pain", Description: "Coping strategies and understanding for chronic pain."},
	{Name: "Heart Disease", Description: "Cardiac conditions, recovery and prevention."},
	{Name: "Cancer Support", Description: "For patients, survivors and caregivers."},
	{Name: "Arthritis", Description: "Joint health, treatments and daily management."},
	{Name: "Asthma & COPD", Description: "Respiratory conditions and breathing easier."},
}

// Boards upserts the built-in condition boards, keyed by name so repeated
// runs refresh descriptions without duplicating rows.
func Boards(db *gorm.DB) error {
	for _, item := range BuiltInBoards {
		board := models.ConditionBoard{
			Name:        item.Name,
			Description: item.Description,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"description", "updated_at"}),
		}).Create(&board).Error
		if err != nil {
			return err
		}
	}
	return nil
}
