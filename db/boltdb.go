package db

import (
	"log"
	"path"

	"github.com/boltdb/bolt"
)

var db *bolt.DB

func InitDB(confDir string) {
	if db != nil {
		_ = db.Close()
	}
	var err error
	db, err = bolt.Open(path.Join(confDir, "bolt.db"), 0600, nil)
	if err != nil {
		log.Fatal(err)
	}
}

func DB() *bolt.DB {
	return db
}
