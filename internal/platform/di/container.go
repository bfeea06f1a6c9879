// backend/internal/platform/di/container.go
package di

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/TheRipper284/backend/internal/adapters/in/http/handler"
	"github.com/TheRipper284/backend/internal/adapters/in/http/middleware"
	"github.com/TheRipper284/backend/internal/adapters/out/cache"
	"github.com/TheRipper284/backend/internal/adapters/out/db"
	dbcommon "github.com/TheRipper284/backend/internal/adapters/out/db/common"
	"github.com/TheRipper284/backend/internal/adapters/out/mail"
	"github.com/TheRipper284/backend/internal/adapters/out/mq"
	"github.com/TheRipper284/backend/internal/application/usecase"
	"github.com/TheRipper284/backend/internal/platform/config"
	"github.com/TheRipper284/backend/internal/platform/secret"
)

// Container wires adapters into usecases and owns the infra handles.
type Container struct {
	cfg config.Config

	dbConn   *sql.DB
	rdb      *redis.Client
	amqpConn *amqp.Connection
	amqpCh   *amqp.Channel

	Checkout      *usecase.CheckoutUsecase
	OrderQueries  *usecase.OrderQueryUsecase
	Carts         *usecase.CartUsecase
	Notifications *usecase.NotificationUsecase
}

// NewContainer builds the full graph. Postgres is required; Redis,
// RabbitMQ and SendGrid are optional and skipped when unconfigured.
func NewContainer(ctx context.Context, cfg config.Config) (*Container, error) {
	c := &Container{cfg: cfg}

	dsn := cfg.DatabaseURL
	if dsn == "" && cfg.DBURLSecretName != "" {
		fetched, err := secret.Fetch(ctx, cfg.DBURLSecretName)
		if err != nil {
			return nil, fmt.Errorf("di: resolve db url: %w", err)
		}
		dsn = fetched
	}
	if dsn == "" {
		return nil, errors.New("di: DATABASE_URL (or DB_URL_SECRET) is required")
	}

	dbConn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("di: open postgres: %w", err)
	}
	if err := dbConn.PingContext(ctx); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("di: ping postgres: %w", err)
	}
	c.dbConn = dbConn
	log.Printf("[di] postgres connected")

	if cfg.RedisAddr != "" {
		c.rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := c.rdb.Ping(ctx).Err(); err != nil {
			log.Printf("[di] WARN: redis unavailable (%v), serving without cache", err)
			_ = c.rdb.Close()
			c.rdb = nil
		} else {
			log.Printf("[di] redis connected: %s", cfg.RedisAddr)
		}
	}

	var publisher *mq.Publisher
	if cfg.AMQPURL != "" {
		conn, err := amqp.Dial(cfg.AMQPURL)
		if err != nil {
			log.Printf("[di] WARN: rabbitmq unavailable (%v), serving without events", err)
		} else {
			ch, err := conn.Channel()
			if err == nil {
				err = mq.DeclareExchange(ch)
			}
			if err != nil {
				log.Printf("[di] WARN: rabbitmq channel setup failed (%v), serving without events", err)
				_ = conn.Close()
			} else {
				c.amqpConn = conn
				c.amqpCh = ch
				publisher = mq.NewPublisher(ch)
				log.Printf("[di] rabbitmq connected, exchange %q declared", mq.ExchangeName)
			}
		}
	}

	txm := dbcommon.NewTxManager(dbConn)
	carts := db.NewCartRepositoryPG(dbConn)
	products := db.NewProductRepositoryPG(dbConn)
	orders := db.NewOrderRepositoryPG(dbConn)
	notifications := db.NewNotificationRepositoryPG(dbConn)
	users := db.NewUserRepositoryPG(dbConn)

	reader := cache.NewCachedProductReader(products, c.rdb, cfg.CacheTTL)

	checkout := usecase.NewCheckoutUsecase(txm, carts, products, orders, notifications, users)
	queries := usecase.NewOrderQueryUsecase(txm, orders, notifications, users)

	if publisher != nil {
		checkout = checkout.WithEvents(publisher)
		queries = queries.WithEvents(publisher)
	}
	if c.rdb != nil {
		checkout = checkout.WithCache(reader)
	}
	if cfg.SendGridAPIKey != "" {
		mailer := &mail.OrderMailer{
			Client: mail.NewSendGridClient(cfg.SendGridAPIKey),
			From:   cfg.MailFrom,
		}
		checkout = checkout.WithMailer(mailer)
		log.Printf("[di] sendgrid mailer enabled")
	}

	c.Checkout = checkout
	c.OrderQueries = queries
	c.Carts = usecase.NewCartUsecase(carts, products, reader)
	c.Notifications = usecase.NewNotificationUsecase(notifications)

	return c, nil
}

// Router assembles the HTTP surface. Everything under /api requires a
// bearer token; /healthz stays open for probes.
func (c *Container) Router() http.Handler {
	auth := middleware.Auth([]byte(c.cfg.JWTSecret))

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/api/orders", auth(handler.NewOrderHandler(c.Checkout, c.OrderQueries)))
	mux.Handle("/api/orders/", auth(handler.NewOrderHandler(c.Checkout, c.OrderQueries)))
	mux.Handle("/api/carts/", auth(handler.NewCartHandler(c.Carts)))
	mux.Handle("/api/notifications", auth(handler.NewNotificationHandler(c.Notifications)))
	mux.Handle("/api/notifications/", auth(handler.NewNotificationHandler(c.Notifications)))

	return middleware.CORS(c.cfg.CORSOrigin)(middleware.Recover(mux))
}

func (c *Container) Close() error {
	var first error
	if c.amqpCh != nil {
		if err := c.amqpCh.Close(); err != nil && first == nil {
			first = err
		}
	}
	if c.amqpConn != nil {
		if err := c.amqpConn.Close(); err != nil && first == nil {
			first = err
		}
	}
	if c.rdb != nil {
		if err := c.rdb.Close(); err != nil && first == nil {
			first = err
		}
	}
	if c.dbConn != nil {
		if err := c.dbConn.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
