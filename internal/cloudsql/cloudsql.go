// Package cloudsql resolves the PostgreSQL connection string for both local
// development and Cloud Run deployments backed by Cloud SQL.
package cloudsql

import (
	"fmt"
	"os"
	"strings"
)

// ResolveURL returns the connection string to use. DATABASE_URL wins when
// set; otherwise INSTANCE_CONNECTION_NAME plus DB_USER/DB_PASSWORD/DB_NAME
// build a Unix socket connection the way Cloud Run mounts Cloud SQL
// instances (/cloudsql/project:region:instance).
func ResolveURL() (string, error) {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return dbURL, nil
	}

	instance := os.Getenv("INSTANCE_CONNECTION_NAME")
	if instance == "" {
		return "", fmt.Errorf("neither DATABASE_URL nor INSTANCE_CONNECTION_NAME is set")
	}

	user := os.Getenv("DB_USER")
	name := os.Getenv("DB_NAME")
	if user == "" || name == "" {
		return "", fmt.Errorf("DB_USER and DB_NAME must be set when using INSTANCE_CONNECTION_NAME")
	}

	socketPath := fmt.Sprintf("/cloudsql/%s", instance)

	// IAM authentication runs without a password.
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
			socketPath, user, password, name), nil
	}
	return fmt.Sprintf("host=%s user=%s dbname=%s sslmode=disable",
		socketPath, user, name), nil
}

// ConnectionSummary describes the resolved connection for startup logging,
// with any password redacted.
func ConnectionSummary() map[string]string {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return map[string]string{
			"connection_type": "direct",
			"database_url":    redactPassword(dbURL),
		}
	}

	if instance := os.Getenv("INSTANCE_CONNECTION_NAME"); instance != "" {
		return map[string]string{
			"connection_type": "cloud_sql",
			"instance":        instance,
			"user":            os.Getenv("DB_USER"),
			"database":        os.Getenv("DB_NAME"),
		}
	}

	return map[string]string{"connection_type": "none"}
}

func redactPassword(connStr string) string {
	scheme, rest, ok := strings.Cut(connStr, "://")
	if !ok || (scheme != "postgresql" && scheme != "postgres") {
		return connStr
	}
	creds, host, ok := strings.Cut(rest, "@")
	if !ok {
		return connStr
	}
	user, _, ok := strings.Cut(creds, ":")
	if !ok {
		return connStr
	}
	return scheme + "://" + user + ":***@" + host
}
