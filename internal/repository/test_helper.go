package repository

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdnguyen/debt-ledger/pkg/pg"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testDB struct {
	*pg.DB
	rawDB *gorm.DB
}

func setupTestDB(t *testing.T) *testDB {
	// _fk=1 so the customer -> transactions cascade behaves like postgres
	db, err := gorm.Open(sqlite.Open("file::memory:?_fk=1"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&CustomerEntity{}, &TransactionEntity{})
	require.NoError(t, err)

	pgDB := &pg.DB{}
	pgDBValue := reflect.ValueOf(pgDB).Elem()

	readField := pgDBValue.FieldByName("read")
	writeField := pgDBValue.FieldByName("write")

	readField = reflect.NewAt(readField.Type(), readField.Addr().UnsafePointer()).Elem()
	writeField = reflect.NewAt(writeField.Type(), writeField.Addr().UnsafePointer()).Elem()

	readField.Set(reflect.ValueOf(db))
	writeField.Set(reflect.ValueOf(db))

	return &testDB{
		DB:    pgDB,
		rawDB: db,
	}
}
