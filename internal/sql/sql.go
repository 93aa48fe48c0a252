package sql

import (
	"embed"
)

// Migrations holds the schema DDL, applied in filename order.
//
//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/delete_summary_batch.sql
var DeleteSummaryBatch string

//go:embed queries/count_summary_batch.sql
var CountSummaryBatch string

//go:embed queries/ensure_migration_table.sql
var EnsureMigrationTable string

//go:embed queries/applied_migrations.sql
var AppliedMigrations string

//go:embed queries/record_migration.sql
var RecordMigration string
