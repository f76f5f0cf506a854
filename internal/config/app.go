package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv reads a .env file into the environment if one exists. Variables
// already set take precedence.
func LoadEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func BasePath() string {
	return strings.TrimSuffix(os.Getenv("APP_BASE_PATH"), "/")
}

func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		port = "8080"
	}
	return ":" + strings.TrimPrefix(port, ":")
}

// VerifyWorkers is the number of goroutines a tree verification may use.
func VerifyWorkers() (int, error) {
	workersStr, ok := os.LookupEnv("VERIFY_WORKERS")
	if !ok || workersStr == "" {
		return runtime.NumCPU(), nil
	}
	workers, err := strconv.Atoi(workersStr)
	if err != nil {
		return 0, fmt.Errorf("unable to convert VERIFY_WORKERS to int: %w", err)
	}
	if workers < 1 {
		return 0, fmt.Errorf("VERIFY_WORKERS must be positive, got %d", workers)
	}
	return workers, nil
}

// Development is on when DEVELOPMENT is set to anything but "0" or "".
func Development() bool {
	development := os.Getenv("DEVELOPMENT")
	return development != "" && development != "0"
}
