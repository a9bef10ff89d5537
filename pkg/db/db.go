package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/sirupsen/logrus"

	"github.com/vilass86/cardgame/internal/config"

	_ "github.com/golang-migrate/migrate/v4/source/file" // file:// migration source
	_ "github.com/lib/pq"                                // postgres driver
)

const maxOpenConns = 25
const connMaxIdleTime = time.Minute * 5

var instance *sql.DB

// Instance returns the shared database handle, connecting on first use
func Instance() *sql.DB {
	if instance == nil {
		if err := LoadInstance(); err != nil {
			panic(err)
		}
	}

	return instance
}

// LoadInstance connects to the database and verifies the connection
func LoadInstance() error {
	dbh, err := sql.Open("postgres", config.Instance().PGDSN)
	if err != nil {
		return err
	}

	dbh.SetMaxOpenConns(maxOpenConns)
	dbh.SetConnMaxIdleTime(connMaxIdleTime)

	if err := dbh.Ping(); err != nil {
		return err
	}

	instance = dbh
	return nil
}

// Migrate runs the migrations
func Migrate() {
	migrationsPath := config.Instance().MigrationsPath
	dbh := Instance()

	logrus.WithField("migrationsPath", migrationsPath).Info("running migrations")
	driver, err := postgres.WithInstance(dbh, &postgres.Config{})
	if err != nil {
		panic(err)
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsPath), "postgres", driver)
	if err != nil {
		panic(err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		panic(err)
	}

	if version, dirty, err := m.Version(); err == nil {
		logrus.WithFields(logrus.Fields{
			"version": version,
			"dirty":   dirty,
		}).Info("migrations up to date")
	}
}

// Scanner is the shared subset of *sql.Row and *sql.Rows
type Scanner interface {
	Scan(...interface{}) error
}
