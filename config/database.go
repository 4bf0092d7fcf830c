package config

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

var envPrefixes = map[string]string{
	"dev":  "DEV",
	"qc":   "QC",
	"prod": "PROD",
}

// buildDSN đọc cấu hình DB theo môi trường (DEV_DB_*, QC_DB_*, PROD_DB_*)
func buildDSN(env string) string {
	prefix, ok := envPrefixes[env]
	if !ok {
		log.Fatalf("Unknown environment: %s", env)
	}

	get := func(key string) string {
		return os.Getenv(prefix + "_DB_" + key)
	}

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require TimeZone=Europe/Paris",
		get("HOST"), get("USER"), get("PASSWORD"), get("NAME"), get("PORT"))
}

func ConnectDB() {
	dsn := buildDSN(os.Getenv("ENV"))

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Fail to connect to db : %v", err)
	}

	log.Println("Successfully connected to db")
}
