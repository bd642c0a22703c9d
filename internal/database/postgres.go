package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"healthdiary/internal/config"
)

// Day is one diary page per user per calendar date.
type Day struct {
	gorm.Model
	UserID  uint   `gorm:"uniqueIndex:idx_days_user_date"`
	Date    string `gorm:"uniqueIndex:idx_days_user_date;size:10"` // "2006-01-02"
	Tag     string
	Feeling *int
	Weight  *float64
	Summary string
}

type Meal struct {
	gorm.Model
	DayID     uint `gorm:"index"`
	Category  string
	Name      string
	Calories  *float64
	Protein   *float64
	Carbs     *float64
	Fat       *float64
	Status    string `gorm:"default:manual"`
	ImagePath string
	ItemsJSON string // recognized items, JSON-encoded
	Failure   string // recognition failure reason, if any
}

type Exercise struct {
	gorm.Model
	DayID       uint `gorm:"index"`
	Activity    string
	DurationMin *float64
	DistanceKm  *float64
	Calories    *float64
}

type WaterIntake struct {
	gorm.Model
	DayID    uint `gorm:"index"`
	VolumeMl float64
}

type SleepRecord struct {
	gorm.Model
	DayID   uint `gorm:"index"`
	Hours   *float64
	Quality *int
}

type MoodRecord struct {
	gorm.Model
	DayID uint `gorm:"index"`
	Score int
	Note  string
}

type Note struct {
	gorm.Model
	DayID uint `gorm:"index"`
	Text  string
}

func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&Day{}, &Meal{}, &Exercise{}, &WaterIntake{},
		&SleepRecord{}, &MoodRecord{}, &Note{},
	); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	return db, nil
}
