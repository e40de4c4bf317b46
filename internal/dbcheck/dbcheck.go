// Package dbcheck opens a single database connection to prove that a
// connection string works. The connection is always released before Check
// returns, whether or not it succeeded.
package dbcheck

import (
	"context"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/proseby/devkit/internal/logger"
)

// EnvVar is the environment variable holding the connection string.
const EnvVar = "DATABASE_URL"

// Driver identifiers reported in Result.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Result is the outcome of one connectivity check.
type Result struct {
	Driver  string
	Elapsed time.Duration
	Err     error
}

// OK reports whether the connection was established.
func (r Result) OK() bool { return r.Err == nil }

type target struct {
	driver string
	dsn    string
}

// Check connects to the database described by dsn, pings it and closes the
// connection. Failures are returned in Result, never as a panic.
func Check(ctx context.Context, dsn string) Result {
	start := time.Now()
	t, err := resolve(dsn)
	if err != nil {
		return Result{Err: err, Elapsed: time.Since(start)}
	}

	log := logger.G(ctx).WithField("driver", t.driver)
	log.Debug("checking database connectivity")

	switch t.driver {
	case DriverPostgres:
		err = pingPostgres(ctx, t.dsn)
	case DriverSQLite:
		// The sqlite driver creates missing files on open.
		if err = sqliteFileExists(t.dsn); err == nil {
			err = pingSQL(ctx, t.driver, t.dsn)
		}
	default:
		err = pingSQL(ctx, t.driver, t.dsn)
	}

	res := Result{Driver: t.driver, Err: err, Elapsed: time.Since(start)}
	log.WithField("elapsed", res.Elapsed).WithField("ok", res.OK()).Debug("database check finished")
	return res
}

func resolve(dsn string) (target, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return target{}, errors.Errorf("connection string is empty; set %s", EnvVar)
	}

	lower := strings.ToLower(dsn)
	switch {
	case strings.HasPrefix(lower, "mysql://"):
		converted, err := mysqlDSN(dsn)
		if err != nil {
			return target{}, err
		}
		return target{driver: DriverMySQL, dsn: converted}, nil
	case strings.HasPrefix(lower, "sqlite://"):
		return target{driver: DriverSQLite, dsn: dsn[len("sqlite://"):]}, nil
	case strings.HasPrefix(lower, "sqlite:"):
		return target{driver: DriverSQLite, dsn: dsn[len("sqlite:"):]}, nil
	case strings.HasPrefix(lower, "file:"):
		return target{driver: DriverSQLite, dsn: dsn}, nil
	default:
		// postgres:// and postgresql:// URLs as well as key=value DSNs.
		return target{driver: DriverPostgres, dsn: dsn}, nil
	}
}

// mysqlDSN translates a mysql:// URL into the driver's native DSN format.
func mysqlDSN(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.Wrap(err, "invalid mysql connection string")
	}

	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = u.Host
	if u.Port() == "" {
		cfg.Addr = net.JoinHostPort(u.Hostname(), "3306")
	}
	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	if u.User != nil {
		cfg.User = u.User.Username()
		cfg.Passwd, _ = u.User.Password()
	}

	dsn := cfg.FormatDSN()
	if u.RawQuery == "" {
		return dsn, nil
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	parsed, err := mysql.ParseDSN(dsn + sep + u.RawQuery)
	if err != nil {
		return "", errors.Wrap(err, "invalid mysql connection parameters")
	}
	return parsed.FormatDSN(), nil
}

func pingPostgres(ctx context.Context, dsn string) error {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return errors.Wrap(err, "invalid postgres connection string")
	}

	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "failed to connect to postgres")
	}
	defer func() {
		if cerr := conn.Close(context.WithoutCancel(ctx)); cerr != nil {
			logger.G(ctx).WithError(cerr).Debug("closing postgres connection")
		}
	}()

	if err := conn.Ping(ctx); err != nil {
		return errors.Wrap(err, "failed to ping postgres")
	}
	return nil
}

func pingSQL(ctx context.Context, driver, dsn string) error {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s database", driver)
	}
	defer db.Close()

	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		return errors.Wrapf(err, "failed to connect to %s", driver)
	}

	var one int
	if err := db.GetContext(ctx, &one, "SELECT 1"); err != nil {
		return errors.Wrapf(err, "failed to query %s", driver)
	}
	if one != 1 {
		return errors.Errorf("unexpected result from %s: SELECT 1 returned %d", driver, one)
	}
	return nil
}

// sqliteFileExists fails when dsn names an on-disk database that is not
// there. In-memory databases always pass.
func sqliteFileExists(dsn string) error {
	path, query, _ := strings.Cut(dsn, "?")
	if strings.HasPrefix(strings.ToLower(path), "file:") {
		if strings.Contains(query, "mode=memory") {
			return nil
		}
		path = path[len("file:"):]
		if strings.HasPrefix(path, "//") {
			u, err := url.Parse("file:" + path)
			if err != nil {
				return errors.Wrap(err, "invalid sqlite connection string")
			}
			path = u.Path
		}
	}
	if path == "" || path == ":memory:" {
		return nil
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("database file %s does not exist", path)
		}
		return errors.Wrapf(err, "checking database file %s", path)
	}
	return nil
}
