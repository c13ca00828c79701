//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/petflu/service-storefront/internal/application"
	bookingDomain "github.com/petflu/service-storefront/internal/domain/booking"
	"github.com/petflu/service-storefront/internal/domain/catalog"
	"github.com/petflu/service-storefront/internal/events"
	"github.com/petflu/service-storefront/internal/metrics"
	"github.com/petflu/service-storefront/internal/repository"
	"github.com/petflu/service-storefront/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// storefrontStack holds wired-up storefront components sharing one store.
type storefrontStack struct {
	Service         *application.StorefrontService
	Store           *storage.GormStore
	CleanupProducer func()
}

// setupContainers starts PostgreSQL and Kafka testcontainers and returns a connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_storefront",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_storefront sslmode=disable", pgHost, pgPort.Port())

	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, kafkaBrokers, events.TopicStorefrontEvents)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

func testCatalog() *catalog.Catalog {
	return catalog.New(
		[]catalog.Category{{Name: "Acessórios", Items: []catalog.Item{
			{ID: "coleira", Name: "Coleira Ajustável", Price: decimal.RequireFromString("39.90")},
			{ID: "petisco", Name: "Petisco Natural", Price: decimal.RequireFromString("12.50")},
		}}},
		[]catalog.Service{
			{ID: catalog.ServiceBanho, Name: "Banho", BasePrice: decimal.NewFromInt(50)},
			{ID: catalog.ServiceTosa, Name: "Tosa", BasePrice: decimal.NewFromInt(60)},
			{ID: catalog.ServiceBanhoTosa, Name: "Banho & Tosa", BasePrice: decimal.RequireFromString("99.90")},
			{ID: catalog.ServiceTeleBusca, Name: "Tele-busca", BasePrice: decimal.NewFromInt(20)},
		},
	)
}

// setupStorefrontStack wires the storefront service onto Postgres storage and Kafka.
// Each call builds a fresh in-memory session cache, like a process restart.
func setupStorefrontStack(t *testing.T, db *gorm.DB, brokers []string) *storefrontStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	store := storage.NewGormStore(db)
	require.NoError(t, store.Migrate())

	cat := testCatalog()
	m := metrics.New("it", prometheus.NewRegistry())
	cartRepo := repository.NewStoreCartRepository(store)
	bookingRepo := repository.NewStoreBookingRepository(store)
	producer := events.NewProducer(brokers, logger)

	svc := application.NewStorefrontService(
		cat,
		application.NewSessionStore(cartRepo, bookingRepo, time.Minute, time.Minute, m),
		cartRepo,
		bookingRepo,
		bookingDomain.NewStandardPricingStrategy(cat),
		producer,
		m,
		logger,
	)

	return &storefrontStack{
		Service:         svc,
		Store:           store,
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// newSessionID returns an id unique to one test run.
func newSessionID() string {
	return "it-" + uuid.NewString()
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type and subject.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType, subject string, timeout time.Duration) events.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := events.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType && ce.Subject == subject {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	time.Sleep(1 * time.Second)
}
