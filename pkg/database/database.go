package database

import (
	"fmt"
	"log"

	"lms_backend/internal/config"
	"lms_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Subject{},
		&model.Stage{},
		&model.Course{},
		&model.PurchaseRecord{},
		&model.WalletTransaction{},
		&model.Post{},
		&model.Question{},
		&model.Answer{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Seed a minimal taxonomy so course authoring works on a fresh install.
	var subjectCount int64
	db.Model(&model.Subject{}).Count(&subjectCount)
	if subjectCount == 0 {
		defaultSubjects := []string{"Mathematics", "Physics", "Chemistry", "Biology", "English"}
		for _, name := range defaultSubjects {
			db.Create(&model.Subject{Name: name})
		}
	}

	var stageCount int64
	db.Model(&model.Stage{}).Count(&stageCount)
	if stageCount == 0 {
		defaultStages := []string{"First Secondary", "Second Secondary", "Third Secondary"}
		for _, name := range defaultStages {
			db.Create(&model.Stage{Name: name})
		}
	}

	return db, nil
}
