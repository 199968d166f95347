package database

import (
	"github.com/JoelBarbosa07/nomina-variable/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init(dsn string) error {
	return Open(postgres.Open(dsn))
}

// Open connects through an explicit dialector so tests can run on sqlite.
func Open(dialector gorm.Dialector) error {
	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	// Auto migrate the schema
	err = DB.AutoMigrate(&models.User{}, &models.JobType{}, &models.WorkReport{})
	if err != nil {
		return err
	}

	// Seed the job type catalog if missing
	if err := seedJobTypes(); err != nil {
		return err
	}

	return nil
}

func seedJobTypes() error {
	catalog := []models.JobType{
		{Tag: "dj", Name: "DJ"},
		{Tag: "promoter", Name: "Promotor"},
		{Tag: "bartender", Name: "Bartender"},
		{Tag: "waiter", Name: "Mesero"},
		{Tag: "security", Name: "Seguridad"},
		{Tag: "photographer", Name: "Fotógrafo"},
		{Tag: models.JobTypeOther, Name: "Otro"},
	}

	for _, jt := range catalog {
		var count int64
		DB.Model(&models.JobType{}).Where("tag = ?", jt.Tag).Count(&count)
		if count > 0 {
			continue
		}
		entry := jt
		if err := DB.Create(&entry).Error; err != nil {
			return err
		}
	}
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
