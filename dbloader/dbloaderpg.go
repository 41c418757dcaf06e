package dbloader

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"reflect"

	"github.com/lib/pq"
)

type PGLoader struct {
	db     *sql.DB
	schema string
	logger *log.Logger
}

func NewPGLoader(schema string, logger *log.Logger) *PGLoader {
	return &PGLoader{
		db:     nil,
		schema: schema,
		logger: logger,
	}
}

func (loader *PGLoader) Connect(host string, port string, user string, password string, dbname string) error {
	connectionString := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	var err error
	if loader.db, err = sql.Open("postgres", connectionString); err != nil {
		return errors.New("Failed to connect to database " + dbname + " with user " + user + ". Error: " + err.Error())
	}
	if err = loader.db.Ping(); err != nil {
		return errors.New("Failed to ping database " + dbname + ". Error: " + err.Error())
	}

	if err := loader.CreateSchema(loader.schema); err != nil {
		return err
	}
	return loader.Exec("SET search_path TO " + loader.schema + ", public")
}

func (loader *PGLoader) Disconnect() {
	if loader.db != nil {
		loader.db.Close()
		loader.db = nil
	}
}

func (loader *PGLoader) CreateSchema(schema string) error {
	if err := loader.Exec("CREATE SCHEMA IF NOT EXISTS " + schema); err != nil {
		return err
	}
	loader.logger.Printf("Created schema %s", schema)
	return nil
}

func (loader *PGLoader) DropSchema(schema string) error {
	if err := loader.Exec("DROP SCHEMA IF EXISTS " + schema + " CASCADE"); err != nil {
		return err
	}
	loader.logger.Printf("Dropped schema %s", schema)
	return nil
}

func (loader *PGLoader) Exec(sqlText string, args ...any) error {
	if _, err := loader.db.Exec(sqlText, args...); err != nil {
		return errors.New("Failed to execute [" + sqlText + "]. Error: " + err.Error())
	}
	return nil
}

// RunQuery scans every result row into a new value of structType and returns
// a slice of structType values. The result columns must match the struct
// fields in declaration order.
func (loader *PGLoader) RunQuery(sqlText string, structType reflect.Type, args ...any) (interface{}, error) {
	rows, err := loader.db.Query(sqlText, args...)
	if err != nil {
		return nil, errors.New("Failed to run query [" + sqlText + "]. Error: " + err.Error())
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	if len(columns) != structType.NumField() {
		return nil, fmt.Errorf(
			"query [%s] returns %d columns, result struct %s has %d fields",
			sqlText, len(columns), structType.Name(), structType.NumField())
	}

	results := reflect.MakeSlice(reflect.SliceOf(structType), 0, 0)
	for rows.Next() {
		row := reflect.New(structType).Elem()
		dest := make([]any, structType.NumField())
		for idx := 0; idx < structType.NumField(); idx++ {
			dest[idx] = row.Field(idx).Addr().Interface()
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.New("Failed to scan row for query [" + sqlText + "]. Error: " + err.Error())
		}
		results = reflect.Append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results.Interface(), nil
}

// UpsertBatch writes the rows within a single transaction. Either every row
// of the batch is committed or, on the first failing row, the whole
// transaction is rolled back and an error is returned. The caller decides
// whether to continue with the next batch.
func (loader *PGLoader) UpsertBatch(table string, columns []string, keyColumns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	sqlText := UpsertSQL(table, columns, keyColumns)
	tx, err := loader.db.Begin()
	if err != nil {
		return 0, errors.New("Failed to begin transaction for table " + table + ". Error: " + err.Error())
	}

	stmt, err := tx.Prepare(sqlText)
	if err != nil {
		tx.Rollback()
		return 0, errors.New("Failed to prepare [" + sqlText + "]. Error: " + err.Error())
	}

	for _, row := range rows {
		if _, err := stmt.Exec(row...); err != nil {
			stmt.Close()
			tx.Rollback()
			return 0, fmt.Errorf("failed to upsert row into %s: %s", table, describePGError(err))
		}
	}

	stmt.Close()
	if err := tx.Commit(); err != nil {
		return 0, errors.New("Failed to commit batch for table " + table + ". Error: " + err.Error())
	}
	return int64(len(rows)), nil
}

func describePGError(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Sprintf("%s (code %s, detail %s)", pqErr.Message, pqErr.Code, pqErr.Detail)
	}
	return err.Error()
}
