package binding

import (
	"fmt"
	"strconv"

	_ "github.com/go-sql-driver/mysql"
	"github.com/hhkbp2/freqgen"
	"github.com/hhkbp2/freqgen/generator"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const (
	// The database/sql driver: "mysql" or "sqlite3".
	PropertySQLDriver        = "sql.driver"
	PropertySQLDriverDefault = "mysql"
	// The data source name. When empty for mysql it is built from the
	// mysql.* properties.
	PropertySQLDSN        = "sql.dsn"
	PropertySQLDSNDefault = ""
	// Queries returning (token, weight) rows for every mode.
	PropertySQLBigramQuery        = "sql.bigram.query"
	PropertySQLBigramQueryDefault = "SELECT token, weight FROM bigrams ORDER BY id"
	PropertySQLWordQuery          = "sql.word.query"
	PropertySQLWordQueryDefault   = "SELECT token, weight FROM words ORDER BY id"

	PropertyMysqlHost            = "mysql.host"
	PropertyMysqlHostDefault     = "127.0.0.1"
	PropertyMysqlPort            = "mysql.port"
	PropertyMysqlPortDefault     = "3306"
	PropertyMysqlDatabase        = "mysql.db"
	PropertyMysqlDatabaseDefault = "db"
	PropertyMysqlUser            = "mysql.user"
	PropertyMysqlUserDefault     = "user"
	PropertyMysqlPassword        = "mysql.password"
	PropertyMysqlPasswordDefault = "password"
	PropertyMysqlOptions         = "mysql.options"
	PropertyMysqlOptionsDefault  = "charset=utf8"
)

type tableRow struct {
	Token  string  `db:"token"`
	Weight float64 `db:"weight"`
}

// SQLSource loads frequency tables with a query per mode.
type SQLSource struct {
	driver  string
	dsn     string
	queries map[generator.Mode]string
	db      *sqlx.DB
}

func mysqlSourceName(props freqgen.Properties) (string, error) {
	host := props.GetDefault(PropertyMysqlHost, PropertyMysqlHostDefault)
	propStr := props.GetDefault(PropertyMysqlPort, PropertyMysqlPortDefault)
	port, err := strconv.ParseInt(propStr, 0, 32)
	if err != nil {
		return "", errors.Wrapf(err, "property %s", PropertyMysqlPort)
	}
	database := props.GetDefault(PropertyMysqlDatabase, PropertyMysqlDatabaseDefault)
	user := props.GetDefault(PropertyMysqlUser, PropertyMysqlUserDefault)
	password := props.GetDefault(PropertyMysqlPassword, PropertyMysqlPasswordDefault)
	options := props.GetDefault(PropertyMysqlOptions, PropertyMysqlOptionsDefault)
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s", user, password, host, port, database, options), nil
}

func NewSQLSource(props freqgen.Properties) (*SQLSource, error) {
	driver := props.GetDefault(PropertySQLDriver, PropertySQLDriverDefault)
	dsn := props.GetDefault(PropertySQLDSN, PropertySQLDSNDefault)
	switch driver {
	case "mysql":
		if len(dsn) == 0 {
			var err error
			if dsn, err = mysqlSourceName(props); err != nil {
				return nil, err
			}
		}
	case "sqlite3":
		if len(dsn) == 0 {
			return nil, errors.Wrapf(generator.ErrInvalidArgument, "%s is required for sqlite3", PropertySQLDSN)
		}
	default:
		return nil, errors.Wrapf(generator.ErrInvalidArgument, "unsupported sql driver: %s", driver)
	}
	return &SQLSource{
		driver: driver,
		dsn:    dsn,
		queries: map[generator.Mode]string{
			generator.ModeBigram: props.GetDefault(PropertySQLBigramQuery, PropertySQLBigramQueryDefault),
			generator.ModeWord:   props.GetDefault(PropertySQLWordQuery, PropertySQLWordQueryDefault),
		},
	}, nil
}

// NewSQLSourceFromDB uses an already opened database.
func NewSQLSourceFromDB(db *sqlx.DB, props freqgen.Properties) (*SQLSource, error) {
	object, err := NewSQLSource(props)
	if err != nil {
		return nil, err
	}
	object.db = db
	return object, nil
}

func (self *SQLSource) open() error {
	if self.db != nil {
		return nil
	}
	db, err := sqlx.Open(self.driver, self.dsn)
	if err != nil {
		return errors.Wrapf(err, "open %s database", self.driver)
	}
	self.db = db
	return nil
}

// Load runs the query of mode. Rows go through the same builder as table
// files, so bad rows are dropped and counted.
func (self *SQLSource) Load(mode generator.Mode) (*generator.FrequencyTable, error) {
	query, ok := self.queries[mode]
	if !ok {
		return nil, errors.Wrapf(generator.ErrInvalidArgument, "no query configured for mode %s", mode)
	}
	if err := self.open(); err != nil {
		return nil, err
	}
	rows, err := self.db.Queryx(query)
	if err != nil {
		return nil, errors.Wrapf(err, "query %s table", mode)
	}
	defer rows.Close()
	builder := generator.NewTableBuilder()
	for rows.Next() {
		var r tableRow
		if err := rows.StructScan(&r); err != nil {
			freqgen.Debugf("drop %s row: %s", mode, err)
			builder.Drop()
			continue
		}
		// rejected rows are counted by the builder
		builder.Add(r.Token, r.Weight)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s table", mode)
	}
	return builder.Build()
}

func (self *SQLSource) Close() error {
	if self.db != nil {
		return self.db.Close()
	}
	return nil
}
