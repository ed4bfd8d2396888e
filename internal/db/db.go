package db

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/unirideapp/uniride-api/internal/config"
	"github.com/unirideapp/uniride-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.PaymentMethod{},
		&models.Review{},
		&models.Notification{},
		&models.Ride{},
		&models.RidePassenger{},
		&models.RideWaypoint{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	seedAdmin(db, cfg)

	return db
}

// seedAdmin garantiza un administrador inicial: los demás usuarios se
// dan de alta solo por acción de un admin.
func seedAdmin(db *gorm.DB, cfg *config.Config) {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	admin := models.User{
		FirstName:          "Admin",
		LastName:           "UniRide",
		Legajo:             cfg.AdminLegajo,
		DNI:                "00000000",
		Email:              "admin@uniride.edu.ar",
		InstitutionalRoles: []models.InstitutionalRole{models.RoleAdmin},
		PlatformRoles:      []models.PlatformRole{},
		PasswordHash:       string(hashed),
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	log.Printf("seeded initial admin user (legajo %s)", cfg.AdminLegajo)
}
