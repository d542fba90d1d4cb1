package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type PlanStatus string

const (
	PlanStatusActive    PlanStatus = "active"
	PlanStatusCompleted PlanStatus = "completed"
	PlanStatusPaused    PlanStatus = "paused"
)

// DailyReadingItem is one contiguous chapter span within a day's reading.
type DailyReadingItem struct {
	Book         string `json:"book"`
	StartChapter int    `json:"startChapter"`
	EndChapter   int    `json:"endChapter"`
}

// DailyReading is the assignment for a single day of a reading plan.
type DailyReading struct {
	DayNumber   int                `json:"dayNumber"`
	Date        time.Time          `json:"date"`
	Readings    []DailyReadingItem `json:"readings"`
	IsCompleted bool               `json:"isCompleted"`
	CompletedAt *time.Time         `json:"completedAt,omitempty"`
}

// DailyReadings is the full schedule, persisted as a JSON column.
type DailyReadings []DailyReading

func (d DailyReadings) Value() (driver.Value, error) {
	if d == nil {
		d = DailyReadings{}
	}
	data, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (d *DailyReadings) Scan(value any) error {
	if value == nil {
		*d = DailyReadings{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into DailyReadings", value)
	}
	if len(data) == 0 {
		*d = DailyReadings{}
		return nil
	}
	return json.Unmarshal(data, d)
}

// ReadingPlan distributes a span of chapters evenly over a number of days.
type ReadingPlan struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	UserID         uint          `gorm:"index" json:"user_id"`
	Name           string        `gorm:"size:100" json:"name"`
	StartBook      string        `gorm:"size:64" json:"startBook"`
	StartChapter   int           `gorm:"default:1" json:"startChapter"`
	EndBook        string        `gorm:"size:64" json:"endBook"`
	EndChapter     int           `json:"endChapter,omitempty"`
	StartDate      time.Time     `json:"startDate"`
	DurationInDays int           `json:"durationInDays"`
	Status         PlanStatus    `gorm:"size:10;default:'active'" json:"status"`
	DailyReadings  DailyReadings `gorm:"type:text" json:"dailyReadings"`

	User User `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ReadingPlan) TableName() string {
	return "reading_plans"
}

// EndDate is the calendar date of the plan's final day.
func (p ReadingPlan) EndDate() time.Time {
	return p.StartDate.AddDate(0, 0, p.DurationInDays-1)
}
