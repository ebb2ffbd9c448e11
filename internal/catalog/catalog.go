// Package catalog is the read-only reference data behind the dashboard:
// which satellites exist, which datalink each one transmits and which
// decoder kinds a datalink supports.
//
// The catalog lives in an in-memory sqlite database built from embedded
// migrations at startup, so it can be browsed with the tailsql console
// under /debug/ like any other database.
package catalog

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/groundstation/internal/monitoring"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrUnknownSatellite is returned when a satellite id is not in the catalog.
var ErrUnknownSatellite = errors.New("unknown satellite")

// Decoder is one decoder kind a datalink supports.
type Decoder struct {
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

// Satellite describes one addressable satellite.
type Satellite struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Datalink     string    `json:"datalink"`
	DatalinkName string    `json:"datalink_name"`
	Decoders     []Decoder `json:"decoders"`
}

// Catalog wraps the catalog database.
type Catalog struct {
	db *sql.DB
}

// Open creates the in-memory catalog and applies every migration.
func Open() (*Catalog, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	// Each connection to :memory: is a separate database, so pin the pool
	// to a single connection that is never recycled.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	c := &Catalog{db: db}
	if err := c.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

// Close releases the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) newMigrate() (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(c.db, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.Log = migrateLogger{}
	return m, nil
}

// migrateUp applies all pending migrations. The migrate instance is not
// closed because that would close the shared database handle.
func (c *Catalog) migrateUp() error {
	m, err := c.newMigrate()
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("catalog migration up failed: %w", err)
	}
	return nil
}

// MigrationVersion returns the applied catalog schema version.
func (c *Catalog) MigrationVersion() (version uint, dirty bool, err error) {
	m, err := c.newMigrate()
	if err != nil {
		return 0, false, err
	}
	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// migrateLogger implements migrate.Logger
type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...interface{}) {
	monitoring.Logf("[migrate] "+format, v...)
}

func (migrateLogger) Verbose() bool {
	return false
}

// Satellites returns every satellite in catalog order, with decoders.
func (c *Catalog) Satellites() ([]Satellite, error) {
	rows, err := c.db.Query(`
		SELECT s.satellite_id, s.name, s.datalink_id, d.name
		FROM satellites s
		JOIN datalinks d ON d.datalink_id = s.datalink_id
		ORDER BY s.position, s.satellite_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query satellites: %w", err)
	}
	defer rows.Close()

	var sats []Satellite
	for rows.Next() {
		var s Satellite
		if err := rows.Scan(&s.ID, &s.Name, &s.Datalink, &s.DatalinkName); err != nil {
			return nil, fmt.Errorf("failed to scan satellite: %w", err)
		}
		sats = append(sats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// rows must be closed before the next query on the single connection.
	rows.Close()

	for i := range sats {
		decoders, err := c.Decoders(sats[i].Datalink)
		if err != nil {
			return nil, err
		}
		sats[i].Decoders = decoders
	}
	return sats, nil
}

// Satellite looks up one satellite by id.
func (c *Catalog) Satellite(id string) (Satellite, error) {
	var s Satellite
	err := c.db.QueryRow(`
		SELECT s.satellite_id, s.name, s.datalink_id, d.name
		FROM satellites s
		JOIN datalinks d ON d.datalink_id = s.datalink_id
		WHERE s.satellite_id = ?`, id).Scan(&s.ID, &s.Name, &s.Datalink, &s.DatalinkName)
	if errors.Is(err, sql.ErrNoRows) {
		return Satellite{}, fmt.Errorf("%w: %q", ErrUnknownSatellite, id)
	}
	if err != nil {
		return Satellite{}, fmt.Errorf("failed to query satellite %q: %w", id, err)
	}

	if s.Decoders, err = c.Decoders(s.Datalink); err != nil {
		return Satellite{}, err
	}
	return s, nil
}

// Decoders lists the decoder kinds for a datalink in preference order.
func (c *Catalog) Decoders(datalink string) ([]Decoder, error) {
	rows, err := c.db.Query(`
		SELECT kind, description FROM decoders
		WHERE datalink_id = ?
		ORDER BY position, kind`, datalink)
	if err != nil {
		return nil, fmt.Errorf("failed to query decoders: %w", err)
	}
	defer rows.Close()

	var out []Decoder
	for rows.Next() {
		var d Decoder
		if err := rows.Scan(&d.Kind, &d.Description); err != nil {
			return nil, fmt.Errorf("failed to scan decoder: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// HasDecoder reports whether kind is one of s's decoders.
func (s Satellite) HasDecoder(kind string) bool {
	for _, d := range s.Decoders {
		if d.Kind == kind {
			return true
		}
	}
	return false
}
