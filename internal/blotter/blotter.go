// Package blotter archives tasks, order statuses, and fills to
// postgres for downstream reporting. It is write-only: the execution
// core never reads state back from it.
package blotter

import (
	"fmt"
	"net/url"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"main/internal/model"
)

const (
	defaultHost    = "localhost"
	defaultPort    = 5432
	defaultSSLMode = "disable"
)

// Option defines connection options for the archive database.
type Option struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	Config   *gorm.Config
}

// Blotter wraps the archive connection.
type Blotter struct {
	db *gorm.DB
}

// Open connects and migrates the archive tables.
func Open(opt Option) (*Blotter, error) {
	config := opt.Config
	if config == nil {
		config = &gorm.Config{}
	}

	db, err := gorm.Open(postgres.Open(opt.dsn()), config)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&TaskRecord{}, &OrderStatusRecord{}, &TradeRecord{}); err != nil {
		return nil, err
	}
	return &Blotter{db: db}, nil
}

// Close closes the underlying connection pool.
func (b *Blotter) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveTask archives a task submission.
func (b *Blotter) SaveTask(task *model.Task) error {
	return b.db.Create(newTaskRecord(task)).Error
}

// SaveOrderStatus archives one order status snapshot.
func (b *Blotter) SaveOrderStatus(ind model.OrderStatusInd) error {
	return b.db.Create(newOrderStatusRecord(ind)).Error
}

// SaveTrade archives one fill.
func (b *Blotter) SaveTrade(trade model.Trade) error {
	return b.db.Create(newTradeRecord(trade)).Error
}

func (opt Option) dsn() string {
	host := opt.Host
	if host == "" {
		host = defaultHost
	}
	port := opt.Port
	if port == 0 {
		port = defaultPort
	}
	sslMode := opt.SSLMode
	if sslMode == "" {
		sslMode = defaultSSLMode
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", host, port),
	}
	if opt.User != "" {
		if opt.Password != "" {
			u.User = url.UserPassword(opt.User, opt.Password)
		} else {
			u.User = url.User(opt.User)
		}
	}
	if opt.Database != "" {
		u.Path = "/" + opt.Database
	}
	query := url.Values{}
	query.Set("sslmode", sslMode)
	u.RawQuery = query.Encode()
	return u.String()
}
