// Package database is the built-in Plugin that provisions one MySQL
// schema per worker slot before dispatch and drops every schema it
// created on teardown, adapted from a single-shared-database migration
// helper into a per-worker-fixture lifecycle.Plugin.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// Config is the connection and naming configuration this plugin needs.
type Config struct {
	ProjectPath string
	Host        string
	Port        string
	User        string
	Password    string
	// NamePrefix names each worker schema: "<NamePrefix>_<slot>".
	NamePrefix  string
	WorkerCount int
}

func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.Port == "" {
		c.Port = "3306"
	}
	if c.User == "" {
		c.User = "root"
	}
	if c.NamePrefix == "" {
		c.NamePrefix = "torc_test"
	}
	if c.WorkerCount <= 0 {
		c.WorkerCount = 1
	}
	return c
}

// Plugin provisions Config.WorkerCount schemas on Setup and drops every
// schema it created on Teardown; schemas that already existed are left
// alone either way.
type Plugin struct {
	cfg     Config
	created []string
}

// New returns a Plugin for cfg.
func New(cfg Config) *Plugin { return &Plugin{cfg: cfg.withDefaults()} }

func (p *Plugin) Name() string { return "database" }

// SchemaName returns the schema name for worker slot i (1-based), stable
// across Setup and whatever connection string the test runner builds.
func (p *Plugin) SchemaName(slot int) string {
	return fmt.Sprintf("%s_%d", p.cfg.NamePrefix, slot)
}

// Setup loads .env from the project directory (if present) for credential
// overrides, then creates any missing per-slot schema.
func (p *Plugin) Setup(ctx context.Context) error {
	if p.cfg.ProjectPath != "" {
		_ = godotenv.Load(filepath.Join(p.cfg.ProjectPath, ".env"))
	}

	db, err := sql.Open("mysql", p.dsn())
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}

	for slot := 1; slot <= p.cfg.WorkerCount; slot++ {
		name := p.SchemaName(slot)
		exists, err := p.schemaExists(ctx, db, name)
		if err != nil {
			return fmt.Errorf("database: check schema %s: %w", name, err)
		}
		if exists {
			continue
		}
		if err := p.createSchema(ctx, db, name); err != nil {
			return fmt.Errorf("database: create schema %s: %w", name, err)
		}
		p.created = append(p.created, name)
	}
	return nil
}

// Teardown drops every schema Setup created.
func (p *Plugin) Teardown(ctx context.Context) error {
	if len(p.created) == 0 {
		return nil
	}
	db, err := sql.Open("mysql", p.dsn())
	if err != nil {
		return fmt.Errorf("database: connect for teardown: %w", err)
	}
	defer db.Close()

	for _, name := range p.created {
		if !isValidSchemaName(name) {
			continue
		}
		if _, err := db.ExecContext(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", name)); err != nil {
			return fmt.Errorf("database: drop schema %s: %w", name, err)
		}
	}
	return nil
}

func (p *Plugin) dsn() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/", p.cfg.User, p.cfg.Password, p.cfg.Host, p.cfg.Port)
}

func (p *Plugin) schemaExists(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var exists bool
	const q = "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	err := db.QueryRowContext(ctx, q, name).Scan(&exists)
	return exists, err
}

func (p *Plugin) createSchema(ctx context.Context, db *sql.DB, name string) error {
	if !isValidSchemaName(name) {
		return fmt.Errorf("invalid schema name: %s", name)
	}
	_, err := db.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", name))
	return err
}

// isValidSchemaName guards the one place NamePrefix reaches a raw SQL
// identifier, even though it only ever comes from this plugin's own
// config rather than user input.
func isValidSchemaName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	for _, r := range name {
		if !(r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return !strings.ContainsAny(name, "'\";")
}
