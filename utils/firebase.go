// utils/firebase.go
package utils

import (
	"context"
	"fmt"

	"rosa/config"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// FirebaseInit initializes the Firebase App from the configured service
// account. Without a credentials file the default application credentials
// (or the emulators, when FIRESTORE_EMULATOR_HOST is set) are used.
func FirebaseInit(ctx context.Context) (*firebase.App, error) {
	var opts []option.ClientOption
	if path := config.AppConfig.FirebaseCredentialsFile; path != "" {
		opts = append(opts, option.WithCredentialsFile(path))
	}

	var fbConfig *firebase.Config
	if id := config.AppConfig.FirebaseProjectID; id != "" {
		fbConfig = &firebase.Config{ProjectID: id}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}
	return app, nil
}
