package postgres

//nolint:revive
import (
	"fmt"
	"net"
	"time"

	"todoapi/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type endpoint struct {
	name     string
	username string
	password string
	host     string
	port     string
	dbName   string
	sslMode  string
}

// New connects the read and write pools. It returns nil when todos are kept in memory.
func New(config *config.Config) *Connection {
	if !config.UsesPostgres() {
		log.Info().Str("driver", config.DB.Driver).Msg("Postgres disabled")

		return nil
	}

	pg := config.DB.Postgres

	write := endpoint{
		name:     "write",
		username: pg.Write.Username,
		password: pg.Write.Password,
		host:     pg.Write.Host,
		port:     pg.Write.Port,
		dbName:   DBName(config, pg.Write.Name),
		sslMode:  pg.Write.SSLMode,
	}

	read := endpoint{
		name:     "read",
		username: pg.Read.Username,
		password: pg.Read.Password,
		host:     pg.Read.Host,
		port:     pg.Read.Port,
		dbName:   DBName(config, pg.Read.Name),
		sslMode:  pg.Read.SSLMode,
	}

	conn := &Connection{
		Write: connect(write, pg.MaxRetry, pg.RetryWaitTime),
	}

	// a missing read replica falls back to the primary
	if read.host == "" {
		conn.Read = conn.Write
	} else {
		conn.Read = connect(read, pg.MaxRetry, pg.RetryWaitTime)
	}

	if conn.Write == nil || conn.Read == nil {
		log.Fatal().Msg("Could not connect to postgres")
	}

	return conn
}

// Close releases both pools.
func (c *Connection) Close() {
	if c == nil {
		return
	}

	if c.Read != nil && c.Read != c.Write {
		if err := c.Read.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close read connection")
		}
	}

	if c.Write != nil {
		if err := c.Write.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close write connection")
		}
	}
}

// DBName returns the database name with prefix if configured
func DBName(config *config.Config, baseName string) string {
	return config.DB.Postgres.Prefix + baseName
}

// DSN builds a postgres URL.
func DSN(username, password, host, port, dbName, sslMode string) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		username,
		password,
		net.JoinHostPort(host, port),
		dbName,
		sslMode,
	)
}

func connect(e endpoint, maxRetry, waitTime int) *sqlx.DB {
	descriptor := DSN(e.username, e.password, e.host, e.port, e.dbName, e.sslMode)

	for retry := range max(maxRetry, 1) {
		sqlDB, err := sqlx.Connect("postgres", descriptor)
		if err == nil {
			log.
				Info().
				Str("name", e.name).
				Str("host", e.host).
				Str("port", e.port).
				Str("dbName", e.dbName).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("name", e.name).
			Str("host", e.host).
			Str("port", e.port).
			Str("dbName", e.dbName).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil
}
