package test

import (
	"log"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"todoweb/internal/adapter/database/sqlite"
)

// InitTestDB opens a private in-memory database with every migration applied.
// Each call gets its own name so suites never share rows.
func InitTestDB() *sqlite.DB {
	path := "file:" + uuid.NewString() + "?mode=memory&cache=shared"

	db, err := sqlite.Open(path, zerolog.Nop())

	if err != nil {
		log.Fatal(err)
	}

	return db
}
