package repository

import (
	"context"
	"database/sql"
	"log"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var testDB *sql.DB

const testSchema = `
	CREATE TABLE users (
		id BIGSERIAL PRIMARY KEY,
		member_id UUID NOT NULL UNIQUE,
		fullname VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		birthdate DATE NOT NULL,
		age INT NOT NULL,
		phone VARCHAR(50) NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		password VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE model (
		model_id BIGSERIAL PRIMARY KEY,
		model_name VARCHAR(255) NOT NULL,
		model_image VARCHAR(500) NOT NULL DEFAULT ''
	);

	CREATE TABLE products (
		products_id BIGSERIAL PRIMARY KEY,
		product_name VARCHAR(255) NOT NULL,
		products_image VARCHAR(500) NOT NULL DEFAULT '',
		price NUMERIC(10,2) NOT NULL,
		category VARCHAR(100) NOT NULL,
		model_id BIGINT REFERENCES model(model_id)
	);

	CREATE TABLE product_edits (
		edit_id BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL,
		old_product_name VARCHAR(255) NOT NULL,
		new_product_name VARCHAR(255) NOT NULL,
		old_products_image VARCHAR(500) NOT NULL DEFAULT '',
		new_products_image VARCHAR(500) NOT NULL DEFAULT '',
		old_price NUMERIC(10,2) NOT NULL,
		new_price NUMERIC(10,2) NOT NULL,
		old_category VARCHAR(100) NOT NULL,
		new_category VARCHAR(100) NOT NULL,
		old_model_id BIGINT,
		new_model_id BIGINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE deleted_products (
		deleted_id BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL,
		product_name VARCHAR(255) NOT NULL,
		products_image VARCHAR(500) NOT NULL DEFAULT '',
		price NUMERIC(10,2) NOT NULL,
		category VARCHAR(100) NOT NULL,
		model_id BIGINT,
		deleted_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE orders (
		order_id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		fullname VARCHAR(255) NOT NULL,
		address TEXT NOT NULL,
		phone VARCHAR(50) NOT NULL,
		payment_method VARCHAR(100) NOT NULL,
		status VARCHAR(50) NOT NULL DEFAULT 'Pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE order_items (
		item_id BIGSERIAL PRIMARY KEY,
		order_id BIGINT NOT NULL REFERENCES orders(order_id),
		product_id BIGINT NOT NULL,
		quantity INT NOT NULL DEFAULT 1
	);

	CREATE TABLE contact_messages (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		message TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

func setupTestDB() (func(context.Context) error, error) {
	var (
		dbName = "testdb"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:15",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), "5432/tcp")
	if err != nil {
		return dbContainer.Terminate, err
	}

	connStr := "postgres://" + dbUser + ":" + dbPwd + "@" + dbHost + ":" + dbPort.Port() + "/" + dbName + "?sslmode=disable"
	testDB, err = sql.Open("pgx", connStr)
	if err != nil {
		return dbContainer.Terminate, err
	}

	if _, err = testDB.Exec(testSchema); err != nil {
		return dbContainer.Terminate, err
	}

	return dbContainer.Terminate, nil
}

func TestMain(m *testing.M) {
	teardown, err := setupTestDB()
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	m.Run()

	if teardown != nil {
		if err := teardown(context.Background()); err != nil {
			log.Fatalf("could not teardown postgres container: %v", err)
		}
	}
}
