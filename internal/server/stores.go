package server

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/gorm"

	adminapp "github.com/brokertools/marketplace/api/internal/admin/application"
	"github.com/brokertools/marketplace/api/internal/config"
	"github.com/brokertools/marketplace/api/internal/infrastructure/cache"
	mongostore "github.com/brokertools/marketplace/api/internal/infrastructure/mongo"
	"github.com/brokertools/marketplace/api/internal/infrastructure/sqlstore"
	"github.com/brokertools/marketplace/api/internal/platform/logger"
	publicapp "github.com/brokertools/marketplace/api/internal/public/application"
)

// stores groups the repositories for the configured driver.
type stores struct {
	driver       string
	applications adminapp.ApplicationRepository
	assessments  adminapp.AssessmentRepository
	vendors      publicapp.VendorRepository
	cache        *cache.ListingCache

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func openStores(ctx context.Context, cfg config.Config, log *logger.Logger) (*stores, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	var (
		st  *stores
		err error
	)
	switch cfg.StoreDriver {
	case config.DriverMongo:
		st, err = openMongo(connectCtx, cfg)
	case config.DriverPostgres, config.DriverSQLite:
		st, err = openSQL(cfg, log)
	default:
		err = fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.RedisAddr != "" {
		listingCache, err := cache.Dial(connectCtx, cfg.RedisAddr, cfg.ListingCacheTTL, log)
		if err != nil {
			_ = st.close(ctx)
			return nil, err
		}
		st.cache = listingCache
		storeClose := st.close
		st.close = func(ctx context.Context) error {
			return errors.Join(listingCache.Close(), storeClose(ctx))
		}
	}
	log.Info("stores ready", "driver", st.driver, "listing_cache", st.cache != nil)
	return st, nil
}

func openMongo(ctx context.Context, cfg config.Config) (*stores, error) {
	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	db := client.Database(cfg.MongoDatabase)
	if err := mongostore.EnsureIndexes(ctx, db, cfg.ApplicationCollection, cfg.AssessmentCollection); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo indexes: %w", err)
	}

	return &stores{
		driver:       config.DriverMongo,
		applications: mongostore.NewApplicationRepository(db, cfg.ApplicationCollection),
		assessments:  mongostore.NewAssessmentRepository(db, cfg.AssessmentCollection),
		vendors:      mongostore.NewVendorRepository(db, cfg.ApplicationCollection, cfg.AssessmentCollection),
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		close: client.Disconnect,
	}, nil
}

func openSQL(cfg config.Config, log *logger.Logger) (*stores, error) {
	db, err := sqlstore.Open(cfg.StoreDriver, cfg.SQLDSN)
	if err != nil {
		return nil, err
	}
	return newSQLStores(cfg.StoreDriver, db, log)
}

func newSQLStores(driver string, db *gorm.DB, log *logger.Logger) (*stores, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return &stores{
		driver:       driver,
		applications: sqlstore.NewApplicationRepository(db, log),
		assessments:  sqlstore.NewAssessmentRepository(db, log),
		vendors:      sqlstore.NewVendorRepository(db, log),
		ping:         sqlDB.PingContext,
		close: func(context.Context) error {
			return sqlDB.Close()
		},
	}, nil
}
