package firebase

import (
	"context"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"barber-booking/backend/internal/config"
)

// NewApp builds the Firebase app. Credentials come from
// GOOGLE_APPLICATION_CREDENTIALS (service account json file path) or
// FIREBASE_SERVICE_ACCOUNT_JSON (raw json content); on GCP the application
// default credentials apply.
func NewApp(ctx context.Context, cfg config.Config) (*firebase.App, error) {
	opts := []option.ClientOption{}
	if json := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); json != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(json)))
	}

	appCfg := &firebase.Config{}
	if cfg.ProjectID != "" {
		appCfg.ProjectID = cfg.ProjectID
	}

	if len(opts) > 0 {
		return firebase.NewApp(ctx, appCfg, opts...)
	}
	return firebase.NewApp(ctx, appCfg)
}

func NewAuthClient(ctx context.Context, app *firebase.App) (*auth.Client, error) {
	return app.Auth(ctx)
}

func NewFirestoreClient(ctx context.Context, app *firebase.App) (*firestore.Client, error) {
	return app.Firestore(ctx)
}
