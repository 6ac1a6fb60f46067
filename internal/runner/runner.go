package runner

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pankajredekar/productsvc/internal/versioner"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migration interface that all migrations must implement
type Migration interface {
	Version() string
	Name() string
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

// Registry holds all registered migrations
type Registry struct {
	migrations map[string]Migration
}

// NewRegistry creates a new migration registry
func NewRegistry() *Registry {
	return &Registry{
		migrations: make(map[string]Migration),
	}
}

// Register adds m to the registry. Registering a version twice panics, since
// it can only happen through a programming error.
func (r *Registry) Register(m Migration) {
	if _, dup := r.migrations[m.Version()]; dup {
		panic(fmt.Sprintf("migration %s registered twice", m.Version()))
	}
	r.migrations[m.Version()] = m
}

// Get returns a migration by version
func (r *Registry) Get(version string) (Migration, bool) {
	m, ok := r.migrations[version]
	return m, ok
}

// All returns all migrations sorted by version
func (r *Registry) All() []Migration {
	migrations := make([]Migration, 0, len(r.migrations))
	for _, m := range r.migrations {
		migrations = append(migrations, m)
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version() < migrations[j].Version()
	})
	return migrations
}

// Status describes one migration known to the registry or the database.
type Status struct {
	Version   string
	Name      string
	AppliedAt *time.Time
}

// Runner executes migrations
type Runner struct {
	db        *gorm.DB
	registry  *Registry
	versioner *versioner.Versioner
	log       logrus.FieldLogger
}

// NewRunner creates a new migration runner
func NewRunner(db *gorm.DB, registry *Registry, ver *versioner.Versioner, logger logrus.FieldLogger) *Runner {
	return &Runner{
		db:        db,
		registry:  registry,
		versioner: ver,
		log:       logger,
	}
}

// Migrate applies all pending migrations in version order and returns the
// ones it applied. Each migration and its version record commit together.
func (r *Runner) Migrate(ctx context.Context) ([]Migration, error) {
	pending, err := r.Pending(ctx)
	if err != nil {
		return nil, err
	}

	var applied []Migration
	for _, m := range pending {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			return r.versioner.WithDB(tx).RecordApplied(ctx, m.Version(), m.Name())
		})
		if err != nil {
			return applied, fmt.Errorf("failed to apply migration %s: %w", m.Version(), err)
		}
		r.log.WithFields(logrus.Fields{"version": m.Version(), "name": m.Name()}).Info("Applied migration")
		applied = append(applied, m)
	}

	return applied, nil
}

// Rollback rolls back the last n applied migrations, newest first.
func (r *Runner) Rollback(ctx context.Context, n int) ([]Migration, error) {
	versions, err := r.versioner.AppliedVersions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	if len(versions) == 0 {
		return nil, fmt.Errorf("no migrations to rollback")
	}
	if n > len(versions) {
		n = len(versions)
	}

	var rolledBack []Migration
	for i := len(versions) - 1; i >= len(versions)-n; i-- {
		version := versions[i]
		m, ok := r.registry.Get(version)
		if !ok {
			return rolledBack, fmt.Errorf("migration %s not found in registry", version)
		}

		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := m.Down(tx); err != nil {
				return err
			}
			return r.versioner.WithDB(tx).RemoveApplied(ctx, version)
		})
		if err != nil {
			return rolledBack, fmt.Errorf("failed to rollback migration %s: %w", version, err)
		}
		r.log.WithFields(logrus.Fields{"version": version, "name": m.Name()}).Info("Rolled back migration")
		rolledBack = append(rolledBack, m)
	}

	return rolledBack, nil
}

// Pending returns migrations that haven't been applied
func (r *Runner) Pending(ctx context.Context) ([]Migration, error) {
	versions, err := r.versioner.AppliedVersions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	applied := make(map[string]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}

	var pending []Migration
	for _, m := range r.registry.All() {
		if !applied[m.Version()] {
			pending = append(pending, m)
		}
	}
	return pending, nil
}

// Status lists applied migrations (including ones no longer registered)
// followed by pending ones, each group in version order.
func (r *Runner) Status(ctx context.Context) ([]Status, error) {
	records, err := r.versioner.Applied(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	statuses := make([]Status, 0, len(records))
	for _, rec := range records {
		appliedAt := rec.AppliedAt
		statuses = append(statuses, Status{
			Version:   rec.Version,
			Name:      rec.Name,
			AppliedAt: &appliedAt,
		})
	}

	pending, err := r.Pending(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range pending {
		statuses = append(statuses, Status{Version: m.Version(), Name: m.Name()})
	}
	return statuses, nil
}
