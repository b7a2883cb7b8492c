package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/projectdesert/backend/internal/logger"
	"github.com/projectdesert/backend/internal/types"
	"github.com/projectdesert/backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "desert", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Asceticism{},
		&types.UserAsceticism{},
		&types.AsceticismLog{},
		&types.AsceticismPackage{},
		&types.PackageItem{},
		&types.Program{},
		&types.ProgramItem{},
		&types.UserProgram{},
		&types.Group{},
		&types.GroupMember{},
		&types.MassReading{},
		&types.DailyReadingNote{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	s.log.Info("Configuring foreign key relationships for postgres tables...")
	// Deleting a commitment cascades its logs; deleting a user cascades
	// commitments, tokens and notes.
	constraints := []struct {
		table      string
		name       string
		column     string
		references string
	}{
		{table: "user_token", name: "fk_user_token_user_id", column: "user_id", references: "user"},
		{table: "user_asceticism", name: "fk_user_asceticism_user_id", column: "user_id", references: "user"},
		{table: "asceticism_log", name: "fk_asceticism_log_user_asceticism_id", column: "user_asceticism_id", references: "user_asceticism"},
		{table: "user_program", name: "fk_user_program_user_id", column: "user_id", references: "user"},
		{table: "group_member", name: "fk_group_member_user_id", column: "user_id", references: "user"},
		{table: "daily_reading_note", name: "fk_daily_reading_note_user_id", column: "user_id", references: "user"},
	}
	for _, c := range constraints {
		if err := s.db.Exec(fmt.Sprintf(
			`ALTER TABLE %q DROP CONSTRAINT IF EXISTS %q`, c.table, c.name,
		)).Error; err != nil {
			return fmt.Errorf("failed to reset %s: %w", c.name, err)
		}
		if err := s.db.Exec(fmt.Sprintf(
			`ALTER TABLE %q ADD CONSTRAINT %q FOREIGN KEY (%q) REFERENCES %q("id") ON DELETE CASCADE`,
			c.table, c.name, c.column, c.references,
		)).Error; err != nil {
			return fmt.Errorf("failed to add %s: %w", c.name, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
