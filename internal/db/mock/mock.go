package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"dsfs/internal/db"
	applog "dsfs/internal/log"
)

// DemoPassword is the password every seeded account is hashed with.
const DemoPassword = "dsfs-demo"

// New returns an in-memory sqlite database seeded with the demo campus data.
// Every call gets its own database.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	dsn := fmt.Sprintf("file:dsfs-mock-%s?mode=memory&cache=shared", uuid.NewString())
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	if err := Seed(ctx, database); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

// Seed inserts the demo records. Rows whose keys already exist are left
// untouched, so seeding an existing database twice is harmless.
func Seed(ctx context.Context, database *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	password, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := Users()
	for i := range users {
		users[i].PasswordHash = string(password)
	}
	posts := Posts()
	students := Students()
	featured := FeaturedProjects()
	notifications := Notifications()

	batches := []struct {
		name  string
		value any
	}{
		{"users", &users},
		{"posts", &posts},
		{"students", &students},
		{"featured projects", &featured},
		{"notifications", &notifications},
	}

	return database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, batch := range batches {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(batch.value).Error; err != nil {
				return fmt.Errorf("seed %s: %w", batch.name, err)
			}
			applog.Debug(ctx, "seeded fixtures", "table", batch.name)
		}
		return nil
	})
}
