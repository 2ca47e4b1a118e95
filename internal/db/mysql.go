package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQL returns a connected GORM DB instance.
//
// Foreign key constraints are not created on migration: cart lines keep a
// denormalized product reference that may dangle after a product is deleted,
// and readers are expected to skip unresolvable references.
//
// Driver errors are translated so unique key violations surface as
// gorm.ErrDuplicatedKey instead of a raw MySQL 1062 error.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}
