package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

// resetEnv clears env vars used by parseConfig
func resetEnv() {
	os.Clearenv()
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	configPath := parseFlags()
	expected := "config.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env"}
	configPath := parseFlags()
	expected := "myconfig.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
}

func TestPrintBuildInfo_Output(t *testing.T) {
	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	buildVersion = "v1.0.0"
	buildCommit = "abcd1234"
	buildDate = "2025-09-26"

	printBuildInfo()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	output := buf.String()
	os.Stdout = oldStdout

	if !contains(output, "v1.0.0") ||
		!contains(output, "abcd1234") ||
		!contains(output, "2025-09-26") {
		t.Errorf("printBuildInfo output unexpected:\n%s", output)
	}
}

// Helper function to check substring
func contains(s, substr string) bool {
	return bytes.Contains([]byte(s), []byte(substr))
}

func TestParseConfig_Defaults(t *testing.T) {
	resetEnv()

	appHost, appPort, logLevel,
		storageDriver, storageFilePath,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisAddr, redisPassword, redisDB,
		rateLimit, rateWindowSecond,
		kafkaBrokers, kafkaTopic,
		jwtSecret, jwtExp,
		resetBaseURL, cookieSecure,
		err := parseConfig("nonexistent.env")

	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	// Application
	if appHost != "localhost" || appPort != "8080" || logLevel != "info" {
		t.Errorf("unexpected app config: %v/%v/%v", appHost, appPort, logLevel)
	}

	// Storage
	if storageDriver != "file" || storageFilePath != "data/users.json" {
		t.Errorf("unexpected storage config: %v/%v", storageDriver, storageFilePath)
	}

	// PostgreSQL
	if pgHost != "localhost" || pgPort != 5432 || pgUser != "user" || pgPassword != "password" || pgDB != "database" ||
		pgMaxOpenConns != 16 || pgMaxIdleConns != 8 {
		t.Errorf("unexpected postgres config")
	}

	// Redis and rate limiting
	if redisAddr != "" || redisPassword != "" || redisDB != 0 ||
		rateLimit != 10 || rateWindowSecond != 60 {
		t.Errorf("unexpected redis config")
	}

	// Kafka
	if kafkaBrokers != "" || kafkaTopic != "auth.password-reset" {
		t.Errorf("unexpected kafka config: %v/%v", kafkaBrokers, kafkaTopic)
	}

	// JWT
	if jwtSecret != "my_super_secret_key" || jwtExp != 604800 {
		t.Errorf("unexpected jwt config")
	}

	// Reset link and cookie
	if resetBaseURL != "http://localhost:8080" || cookieSecure {
		t.Errorf("unexpected reset/cookie config: %v/%v", resetBaseURL, cookieSecure)
	}
}

func TestParseConfig_CustomEnv(t *testing.T) {
	resetEnv()
	os.Setenv("APP_HOST", "127.0.0.1")
	os.Setenv("APP_PORT", "9090")
	os.Setenv("APP_LOG_LEVEL", "debug")

	os.Setenv("STORAGE_DRIVER", "postgres")
	os.Setenv("STORAGE_FILE_PATH", "/var/lib/auth/users.json")

	os.Setenv("POSTGRES_HOST", "pg.example.com")
	os.Setenv("POSTGRES_PORT", "5433")
	os.Setenv("POSTGRES_USER", "admin")
	os.Setenv("POSTGRES_PASSWORD", "secret")
	os.Setenv("POSTGRES_DB", "mydb")
	os.Setenv("POSTGRES_MAX_OPEN_CONNS", "20")
	os.Setenv("POSTGRES_MAX_IDLE_CONNS", "10")

	os.Setenv("REDIS_ADDR", "redis.example.com:6380")
	os.Setenv("REDIS_PASSWORD", "redispass")
	os.Setenv("REDIS_DB", "2")
	os.Setenv("RATE_LIMIT", "5")
	os.Setenv("RATE_WINDOW_SECOND", "30")

	os.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	os.Setenv("KAFKA_TOPIC", "auth.resets")

	os.Setenv("JWT_SECRET_KEY", "supersecret")
	os.Setenv("JWT_EXP_SECOND", "300")

	os.Setenv("RESET_BASE_URL", "https://canvas.example.com")
	os.Setenv("COOKIE_SECURE", "true")

	appHost, appPort, logLevel,
		storageDriver, storageFilePath,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisAddr, redisPassword, redisDB,
		rateLimit, rateWindowSecond,
		kafkaBrokers, kafkaTopic,
		jwtSecret, jwtExp,
		resetBaseURL, cookieSecure,
		err := parseConfig("nonexistent.env")

	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	if appHost != "127.0.0.1" || appPort != "9090" || logLevel != "debug" {
		t.Errorf("unexpected app config")
	}
	if storageDriver != "postgres" || storageFilePath != "/var/lib/auth/users.json" {
		t.Errorf("unexpected storage config")
	}
	if pgHost != "pg.example.com" || pgPort != 5433 || pgUser != "admin" || pgPassword != "secret" || pgDB != "mydb" ||
		pgMaxOpenConns != 20 || pgMaxIdleConns != 10 {
		t.Errorf("unexpected postgres config")
	}
	if redisAddr != "redis.example.com:6380" || redisPassword != "redispass" || redisDB != 2 ||
		rateLimit != 5 || rateWindowSecond != 30 {
		t.Errorf("unexpected redis config")
	}
	if kafkaBrokers != "broker1:9092,broker2:9092" || kafkaTopic != "auth.resets" {
		t.Errorf("unexpected kafka config")
	}
	if jwtSecret != "supersecret" || jwtExp != 300 {
		t.Errorf("unexpected jwt config")
	}
	if resetBaseURL != "https://canvas.example.com" || !cookieSecure {
		t.Errorf("unexpected reset/cookie config")
	}
}

func TestParseConfig_InvalidInt(t *testing.T) {
	resetEnv()
	os.Setenv("JWT_EXP_SECOND", "not-a-number")

	_, _, _, _, _, _, _, _, _, _, _, _, _, _, _, _, _, _, _, _, _, _, _, err := parseConfig("nonexistent.env")
	if err == nil {
		t.Fatal("expected error for non-numeric JWT_EXP_SECOND")
	}
}

// Full server lifecycle against the file store: boots, answers the
// register endpoint, then shuts down on context cancellation.
func TestRun_FileStore(t *testing.T) {
	resetEnv()

	storePath := filepath.Join(t.TempDir(), "users.json")
	addr := "127.0.0.1:8087"

	testCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(testCtx,
			"127.0.0.1", "8087", "debug",
			"file", storePath,
			"", 0, "", "", "", 0, 0, // Postgres unused with file driver
			"", "", 0, // Redis disabled
			10, 60, // rate limits
			"", "", // Kafka disabled
			"testsecret", 604800,
			"http://"+addr, false,
		)
	}()

	// Wait for the server to accept requests.
	var resp *http.Response
	var err error
	body := []byte(`{"email":"john@example.com","password":"password123","confirmPassword":"password123"}`)
	for i := 0; i < 50; i++ {
		resp, err = http.Post("http://"+addr+"/api/auth/register", "application/json", bytes.NewReader(body))
		if err == nil {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server did not come up: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Message != "User created successfully" {
		t.Errorf("unexpected message: %s", created.Message)
	}

	cancel()

	select {
	case <-time.After(15 * time.Second):
		t.Fatal("test timed out")
	case err := <-errCh:
		if err != nil {
			t.Fatalf("expected run to succeed, got error: %v", err)
		}
	}
}
