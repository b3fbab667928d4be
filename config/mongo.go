package config

import (
	"context"
	"crypto/tls"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient is shared by every repository. Set by InitMongo.
var MongoClient *mongo.Client

// mongoOptions pins TLS 1.2 when forceTLS12 is set; some Atlas clusters
// reject the handshake newer Go versions offer by default.
func mongoOptions(uri string, forceTLS12 bool) *options.ClientOptions {
	opts := options.Client().ApplyURI(uri).
		SetAppName("jobportal").
		SetServerSelectionTimeout(20 * time.Second).
		SetConnectTimeout(15 * time.Second).
		SetMaxPoolSize(50).
		SetMinPoolSize(2)
	if forceTLS12 {
		opts.SetTLSConfig(&tls.Config{
			MinVersion: tls.VersionTLS12,
			MaxVersion: tls.VersionTLS12,
		})
	}
	return opts
}

// InitMongo connects and pings before publishing MongoClient.
func InitMongo(uri string, forceTLS12 bool) error {
	if uri == "" {
		return errors.New("MONGO_URI environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, mongoOptions(uri, forceTLS12))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return err
	}

	MongoClient = client
	return nil
}
