package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Configs struct {
	Env      string
	LogLevel int

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Redis     RedisConfigs
	Spin      SpinConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
}

type RedisConfigs struct {
	Addr string
}

type SpinConfigs struct {
	// MaxReserveRetries bounds the candidate-relist loop after a reward
	// reservation lost the race to a concurrent winner.
	MaxReserveRetries int

	// RetryMaxJitter is the upper bound of the random sleep between
	// reservation retries.
	RetryMaxJitter time.Duration

	// TransactionTimeout bounds one spin transaction.
	TransactionTimeout time.Duration

	// DefaultInitialSpins is the entitlement granted on first contact with a
	// location that does not configure its own allotment.
	DefaultInitialSpins int

	// IdempotencyTTL is how long a completed spin outcome stays replayable
	// by its attempt id.
	IdempotencyTTL time.Duration

	// SnowflakeNodeID distinguishes id generators across instances.
	SnowflakeNodeID int64
}

// Load reads configurations from environment variables. A .env file in the
// working directory is applied first if present.
func Load() Configs {
	godotenv.Load()

	return Configs{
		Env:      getEnv("ENV", "local"),
		LogLevel: getEnvAsInt("LOG_LEVEL", 1),
		Database: DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "luckyspin"),
			User:     getEnv("MYSQL_USER", "root"),
			Password: getEnv("MYSQL_PASSWORD", ""),
		},
		ApiServer: ServerConfigs{
			Host: getEnv("API_HOST", "0.0.0.0"),
			Port: getEnv("API_PORT", "8080"),
		},
		Redis: RedisConfigs{
			Addr: getEnv("REDIS_ADDR", ""),
		},
		Spin: SpinConfigs{
			MaxReserveRetries:   getEnvAsInt("SPIN_MAX_RESERVE_RETRIES", 3),
			RetryMaxJitter:      getEnvAsDuration("SPIN_RETRY_MAX_JITTER", 20*time.Millisecond),
			TransactionTimeout:  getEnvAsDuration("SPIN_TX_TIMEOUT", 3*time.Second),
			DefaultInitialSpins: getEnvAsInt("SPIN_DEFAULT_INITIAL_SPINS", 10),
			IdempotencyTTL:      getEnvAsDuration("SPIN_IDEMPOTENCY_TTL", 24*time.Hour),
			SnowflakeNodeID:     int64(getEnvAsInt("SNOWFLAKE_NODE_ID", 0)),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}

	return n
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}

	return d
}
