// Package config loads process settings from the environment, after
// merging an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Mongo struct {
	URL          string
	Database     string
	ChangeStream bool
}

type Broker struct {
	URL      string
	Exchange string
}

type App struct {
	Port        string
	Mongo       Mongo
	Broker      Broker
	SecretKey   string
	TokenTTL    time.Duration
	CORSOrigins []string
	LogLevel    string
	LogPretty   bool
	NotifyPhone string
	BillBaseURL string
	BillTitle   string
	// Memory replaces MongoDB with the in-process store.
	Memory bool
}

// LoadEnvFile merges path into the environment. A missing file is not an
// error; the returned bool reports whether it was found.
func LoadEnvFile(path string) (bool, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	if err := godotenv.Load(path); err != nil {
		return true, fmt.Errorf("loading %s: %w", path, err)
	}
	return true, nil
}

// FromEnv reads every setting, applying defaults.
func FromEnv() (App, error) {
	a := App{
		Port: getenv("PORT", "8000"),
		Mongo: Mongo{
			URL:      getenv("MONGODB_URL", "mongodb://localhost:27017"),
			Database: getenv("MONGODB_DATABASE", "cafe"),
		},
		Broker: Broker{
			URL:      os.Getenv("AMQP_URL"),
			Exchange: getenv("AMQP_EXCHANGE", "orders_topic"),
		},
		SecretKey:   os.Getenv("SECRET_KEY"),
		CORSOrigins: splitList(getenv("CORS_ORIGINS", "http://localhost:9000")),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		NotifyPhone: os.Getenv("NOTIFY_PHONE"),
		BillBaseURL: strings.TrimRight(getenv("BILL_BASE_URL", "http://localhost:8000"), "/"),
		BillTitle:   getenv("BILL_TITLE", "Cafe"),
	}

	var err error
	if a.TokenTTL, err = time.ParseDuration(getenv("TOKEN_TTL", "24h")); err != nil {
		return App{}, fmt.Errorf("TOKEN_TTL: %w", err)
	}
	if a.Mongo.ChangeStream, err = getbool("FEED_CHANGE_STREAM", false); err != nil {
		return App{}, err
	}
	if a.LogPretty, err = getbool("LOG_PRETTY", false); err != nil {
		return App{}, err
	}
	if a.Memory, err = getbool("MEMORY_STORE", false); err != nil {
		return App{}, err
	}
	if a.SecretKey == "" {
		return App{}, errors.New("SECRET_KEY is required")
	}
	return a, nil
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
