package db

import (
	"context"
	"database/sql"
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"

	"github.com/vergeframework/verge"
	"github.com/vergeframework/verge/internal/config"
)

// mysqlDialect targets MySQL and MariaDB. The one real divergence from
// the other engines is column typing: MySQL cannot key a TEXT column
// without a prefix length, so any text or reference column that backs
// an index is declared VARCHAR(255) instead.
type mysqlDialect struct{}

func (mysqlDialect) Name() string       { return config.EngineMySQL }
func (mysqlDialect) DriverName() string { return "mysql" }

func (mysqlDialect) DSN(cfg config.Database) (string, error) {
	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port))
	mc.DBName = cfg.Name
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.ParseTime = true
	return mc.FormatDSN(), nil
}

func (mysqlDialect) Setup(ctx context.Context, db *sql.DB) error {
	return nil
}

func (mysqlDialect) TableExistsQuery() string {
	return `SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ? AND table_type = 'BASE TABLE')`
}

func (mysqlDialect) IndexExistsQuery() string {
	return `SELECT EXISTS (SELECT 1 FROM information_schema.statistics WHERE table_schema = DATABASE() AND table_name = ? AND index_name = ?)`
}

func (d mysqlDialect) CreateTableSQL(m verge.Model) string {
	return buildCreateTable(d, m, "VARCHAR(255)")
}

func (d mysqlDialect) CreateIndexSQL(m verge.Model, f verge.Field) string {
	return buildCreateIndex(d, m, f)
}

func (mysqlDialect) ColumnType(f verge.Field) string {
	switch f.Kind {
	case verge.KindText:
		if f.WantsIndex() {
			return "VARCHAR(255)"
		}
		return "TEXT"
	case verge.KindNumber:
		return "BIGINT"
	case verge.KindBoolean:
		return "TINYINT(1)"
	case verge.KindDateTime:
		return "DATETIME"
	case verge.KindReference:
		return "VARCHAR(255)"
	default:
		return "TEXT"
	}
}

func (mysqlDialect) QuoteIdent(name string) string {
	return "`" + name + "`"
}
