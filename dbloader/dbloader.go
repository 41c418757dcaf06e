package dbloader

import "reflect"

type DBLoader interface {
	Connect(host string, port string, user string, password string, dbname string) error
	Disconnect()
	CreateSchema(schema string) error
	DropSchema(schema string) error
	Exec(sql string, args ...any) error
	RunQuery(sql string, structType reflect.Type, args ...any) (interface{}, error)
	UpsertBatch(table string, columns []string, keyColumns []string, rows [][]any) (int64, error)
}
