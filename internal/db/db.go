package db

import (
	"log"
	"time"

	"github.com/barbeariapro/barbearia-api/internal/config"
	"github.com/barbeariapro/barbearia-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
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
		&models.Barbershop{},
		&models.User{},
		&models.Service{},
		&models.WorkingHours{},
		&models.Client{},
		&models.Appointment{},
		&models.Setting{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE barbershops
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	// Serializa reservas concorrentes para a mesma chave
	// (barbeiro, início): exatamente um INSERT vence, os demais
	// recebem unique_violation. Parcial em 'scheduled' para que um
	// cancelamento libere o horário.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_reserved_slot
        ON appointments (barber_id, start_time)
        WHERE status = 'scheduled'
    `)

	// O índice único só cobre inícios iguais. Atendimentos de múltiplos
	// slots podem sobrepor com inícios diferentes, então o banco também
	// exclui intervalos sobrepostos por barbeiro via GiST. Conflito
	// chega como exclusion_violation (23P01).
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        DO $$
        BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
            ) THEN
                ALTER TABLE appointments
                ADD CONSTRAINT appointments_no_overlap
                EXCLUDE USING gist (
                    barber_id WITH =,
                    tstzrange(start_time, end_time) WITH &&
                ) WHERE (status <> 'cancelled');
            END IF;
        END
        $$
    `)

	return db
}
