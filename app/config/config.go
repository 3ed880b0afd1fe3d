package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"    // driver: postgres
	_ "modernc.org/sqlite"   // driver: sqlite

	"github.com/nbri15/final-dream-tracker/app/models"
)

// Config holds process-wide state shared by handlers and CLIs
type Config struct {
	DB     *sql.DB
	Driver string
}

var AppConfig *Config

// LoadEnv loads a .env file when present; real env vars win otherwise
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}
}

// getEnv reads an environment variable with a fallback
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the configured database. DB_DRIVER selects postgres (default)
// or sqlite; sqlite keeps local development and CI self-contained.
func InitDB() {
	driver := getEnv("DB_DRIVER", "postgres")

	var db *sql.DB
	var err error

	switch driver {
	case "sqlite":
		dsn := getEnv("DB_DSN", "file:dream.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
		db, err = sql.Open("sqlite", dsn)
		if err == nil {
			// sqlite serialises writers; a single connection avoids lock errors
			db.SetMaxOpenConns(1)
		}
	case "postgres":
		dsn := os.Getenv("DB_DSN")
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
				getEnv("DB_HOST", "localhost"),
				getEnv("DB_PORT", "5432"),
				getEnv("DB_USER", "postgres"),
				os.Getenv("DB_PASSWORD"),
				getEnv("DB_NAME", "dream"),
			)
		}
		db, err = sql.Open("postgres", dsn)
		if err == nil {
			db.SetMaxOpenConns(25)
			db.SetMaxIdleConns(5)
		}
	default:
		log.Fatalf("Unsupported DB_DRIVER: %s", driver)
	}

	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatal("Cannot establish database connection:", err)
	}

	AppConfig = &Config{DB: db, Driver: driver}
	log.Printf("Database connected (%s)", driver)
}

// GetDB returns the shared database handle
func GetDB() *sql.DB {
	return AppConfig.DB
}

// DefaultMaxima are the system-wide paper mark ceilings used when no
// TermConfig override exists for a class/year/term slot.
var DefaultMaxima = map[models.ResultField]float64{
	models.FieldArithmetic: 38,
	models.FieldReasoning:  35,
	models.FieldReadingP1:  40,
	models.FieldReadingP2:  40,
	models.FieldSpelling:   40,
	models.FieldGrammar:    40,
}

// BandThresholds are the percentage cut points between attainment bands:
// pct < WTSMax is working towards, pct < OTMax is working at, else exceeding.
type BandThresholds struct {
	WTSMax float64
	OTMax  float64
}

var bandThresholds = map[models.Subject]BandThresholds{
	models.SubjectMaths:   {WTSMax: 55, OTMax: 75},
	models.SubjectReading: {WTSMax: 65, OTMax: 85},
	models.SubjectSpag:    {WTSMax: 65, OTMax: 85},
}

// ThresholdsFor returns the band cut points for a subject, defaulting to
// the maths thresholds for anything unrecognised.
func ThresholdsFor(subject models.Subject) BandThresholds {
	if t, ok := bandThresholds[subject]; ok {
		return t
	}
	return bandThresholds[models.SubjectMaths]
}

// DefaultYearLabel seeds the first academic year on an empty database
const DefaultYearLabel = "2025/26"
