package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	admindomain "github.com/brokertools/marketplace/api/internal/admin/domain"
	mongostore "github.com/brokertools/marketplace/api/internal/infrastructure/mongo"
	"github.com/brokertools/marketplace/api/internal/infrastructure/sqlstore"
	"github.com/brokertools/marketplace/api/internal/platform/logger"
	publicdomain "github.com/brokertools/marketplace/api/internal/public/domain"
	"github.com/brokertools/marketplace/api/internal/scoring"
)

type seedOptions struct {
	envName         string
	vendorCount     int
	dropCollections bool
	randomSeed      int64
}

// applicationWriter is implemented by both the mongo and sql application
// repositories.
type applicationWriter interface {
	Create(ctx context.Context, app admindomain.Application, stats publicdomain.VendorStats, metrics scoring.TrustMetrics) (string, error)
}

func main() {
	opts := parseFlags()

	if err := loadEnvFiles(opts.envName); err != nil {
		log.Fatalf("load env files: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	driver := strings.ToLower(envOrDefault("STORE_DRIVER", "mongo"))
	writer, closeStore, err := openWriter(ctx, driver, opts.dropCollections)
	if err != nil {
		log.Fatalf("open %s store: %v", driver, err)
	}
	defer closeStore()

	rng := rand.New(rand.NewSource(opts.randomSeed))
	seeds := generateVendors(rng, opts.vendorCount, time.Now().UTC())

	counts := map[admindomain.ApplicationStatus]int{}
	for _, s := range seeds {
		if _, err := writer.Create(ctx, s.app, s.stats, s.metrics); err != nil {
			log.Fatalf("insert %s: %v", s.app.CompanyName, err)
		}
		counts[s.app.Status]++
	}

	log.Printf("seed complete: driver=%s vendors=%d pending=%d approved=%d rejected=%d (env=%s seed=%d)",
		driver, len(seeds), counts[admindomain.StatusPending], counts[admindomain.StatusApproved],
		counts[admindomain.StatusRejected], opts.envName, opts.randomSeed)
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.StringVar(&opts.envName, "env", "local", "env file name under ../env (e.g. local, staging); empty to skip")
	flag.IntVar(&opts.vendorCount, "vendors", 25, "number of vendor applications to create")
	flag.BoolVar(&opts.dropCollections, "drop", true, "drop existing applications and assessments first")
	flag.Int64Var(&opts.randomSeed, "seed", time.Now().UnixNano(), "random seed for reproducible data")
	flag.Parse()

	if opts.vendorCount <= 0 {
		log.Fatal("vendors must be at least 1")
	}
	return opts
}

// loadEnvFiles applies shared.env then <env>.env. Later files win.
func loadEnvFiles(envName string) error {
	if strings.TrimSpace(envName) == "" {
		return nil
	}
	base := filepath.Clean(filepath.Join("..", "env"))
	files := []string{
		filepath.Join(base, "shared.env"),
		filepath.Join(base, fmt.Sprintf("%s.env", envName)),
	}
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			log.Printf("WARN: %s not found, skipping", file)
			continue
		}
		if err := godotenv.Overload(file); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func openWriter(ctx context.Context, driver string, drop bool) (applicationWriter, func(), error) {
	switch driver {
	case "mongo":
		return openMongoWriter(ctx, drop)
	case sqlstore.DriverPostgres, sqlstore.DriverSQLite:
		return openSQLWriter(driver, drop)
	default:
		return nil, nil, fmt.Errorf("unsupported STORE_DRIVER %q", driver)
	}
}

func openMongoWriter(ctx context.Context, drop bool) (applicationWriter, func(), error) {
	mongoURI := envOrDefault("MONGO_URI", "mongodb://localhost:27017")
	dbName := envOrDefault("MONGO_DB", "marketplace")
	applications := envOrDefault("APPLICATION_COLLECTION", "vendor_applications")
	assessments := envOrDefault("ASSESSMENT_COLLECTION", "vendor_assessments")

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { _ = client.Disconnect(context.Background()) }
	db := client.Database(dbName)

	if drop {
		for _, name := range []string{applications, assessments} {
			if err := db.Collection(name).Drop(ctx); err != nil {
				log.Printf("WARN: drop collection %s: %v", name, err)
			}
		}
		log.Printf("dropped existing collections")
	}
	if err := mongostore.EnsureIndexes(ctx, db, applications, assessments); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("ensure indexes: %w", err)
	}
	log.Printf("mongo: %s / %s", mongoURI, dbName)
	return mongostore.NewApplicationRepository(db, applications), closeFn, nil
}

func openSQLWriter(driver string, drop bool) (applicationWriter, func(), error) {
	dsn := envOrDefault("SQL_DSN", "file:marketplace.db?_foreign_keys=on")
	db, err := sqlstore.Open(driver, dsn)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { _ = sqlDB.Close() }

	if drop {
		if err := db.Migrator().DropTable(&sqlstore.ApplicationRow{}, &sqlstore.AssessmentRow{}); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("drop tables: %w", err)
		}
		if err := sqlstore.AutoMigrate(db); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		log.Printf("dropped existing tables")
	}
	return sqlstore.NewApplicationRepository(db, logger.NewNop()), closeFn, nil
}
