package infra

import (
	"fmt"

	"github.com/adornodavid/aybcosteo-sub001/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection, then applies the idempotent SQL
// patches that GORM tags cannot express (the historico componente CHECK, the
// composite group index). Production schema is applied out of band; the server
// never auto-migrates on boot.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL statements. Each statement uses
// IF NOT EXISTS / existence-check semantics so re-running on an already
// patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Composite index backing the period existence check and the in-month
		// group update: WHERE platillo_id = ? AND menu_id = ? AND fecha BETWEEN.
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'historico')
		    AND NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_historico_grupo') THEN
		    CREATE INDEX idx_historico_grupo
		        ON historico (platillo_id, menu_id, fecha_creacion);
		  END IF;
		END $$`,
		// One row per (menu, platillo) pair.
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'platillosxmenu')
		    AND NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_menu_platillo') THEN
		    CREATE UNIQUE INDEX idx_menu_platillo
		        ON platillosxmenu (menu_id, platillo_id);
		  END IF;
		END $$`,
		// Exactly one of ingrediente_id / receta_id per historico row.
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'historico')
		    AND NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_historico_componente') THEN
		    ALTER TABLE historico ADD CONSTRAINT chk_historico_componente
		        CHECK ((ingrediente_id IS NULL) <> (receta_id IS NULL));
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}

// RunMigrations builds the schema from the models and applies the SQL
// patches. Used by integration tests against a throwaway database; production
// DDL is applied out of band.
func RunMigrations(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return err
	}
	if err := db.AutoMigrate(
		&model.Hotel{},
		&model.Restaurante{},
		&model.Menu{},
		&model.Ingrediente{},
		&model.Receta{},
		&model.Platillo{},
		&model.PlatilloMenu{},
		&model.RecetaPlatillo{},
		&model.IngredientePlatillo{},
		&model.Historico{},
		&model.Usuario{},
	); err != nil {
		return err
	}
	return applySchemaPatches(db)
}
