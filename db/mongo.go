package db

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/CPU-commits/Intranet_BAcademix/settings"
	"github.com/cenkalti/backoff/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Startup only. Request-path calls are never retried.
const CONNECT_MAX_ELAPSED = time.Minute

var settingsData = settings.GetSettings()

func MongoURI() string {
	uri := fmt.Sprintf("%s://", settingsData.MONGO_CONNECTION)
	if settingsData.DB_USER != "" {
		uri += fmt.Sprintf(
			"%s:%s@",
			url.QueryEscape(settingsData.DB_USER),
			url.QueryEscape(settingsData.DB_PASS),
		)
	}
	uri += fmt.Sprintf(
		"%s/?retryWrites=true&w=majority&appName=Cluster0",
		settingsData.MONGO_HOST,
	)
	return uri
}

// Client Connection
func NewConnectionMongo(ctx context.Context) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	opts := options.Client().
		ApplyURI(MongoURI()).
		SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.MaxElapsedTime = CONNECT_MAX_ELAPSED
	ping := func() error {
		return client.Ping(ctx, readpref.Primary())
	}
	if err := backoff.Retry(ping, backoff.WithContext(retryBackoff, ctx)); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}
