// Copyright (c) nlpvocab Authors.
// Licensed under the MIT License.

/*
Package migration manages the versioned schema of the SQL export tables
(vocabulary_runs and vocabulary_entries) with golang-migrate.

SQL files for PostgreSQL, MySQL and SQLite are embedded with embed.FS and
applied over an already open *sql.DB, so the migrator shares the
connection settings of the SQL sink.

  - Migrator / DefaultMigrator: Up, Down, DownAll, Steps, Force, Version,
    Status, Info and Close.
  - NewMigratorFromGorm builds a migrator from the gorm handle returned by
    store.OpenDatabase.
  - CLI formats migration commands for the "nlpvocab migrate" command.

When the schema is managed here, set database.auto_migrate to false so the
SQL sink does not run gorm AutoMigrate.
*/
package migration
