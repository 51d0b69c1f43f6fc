package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the server flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-db-max-conns pgx pool size
//	-redis-address redis address for the task list cache
//	-cache-ttl task list cache TTL (e.g. "1m")
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g. "168h")
//	-password-hash-cost bcrypt cost
//	-log-level log level
//	-request-timeout request timeout (e.g. "30s")
//	-shutdown-timeout graceful shutdown timeout (e.g. "10s")
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("go-task-keeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		serverAddress    NetAddress
		databaseDSN      string
		dbMaxConns       int
		redisAddress     string
		cacheTTL         time.Duration
		jsonConfigPath   string
		tokenSignKey     string
		tokenIssuer      string
		tokenDuration    time.Duration
		passwordHashCost int
		logLevel         string
		requestTimeout   time.Duration
		shutdownTimeout  time.Duration
	)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.IntVar(&dbMaxConns, "db-max-conns", 0, "Database pool size")
	fs.StringVar(&redisAddress, "redis-address", "", "Redis address for the task list cache")
	fs.DurationVar(&cacheTTL, "cache-ttl", 0, "Task list cache TTL (e.g. 1m)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g. 168h)")
	fs.IntVar(&passwordHashCost, "password-hash-cost", 0, "bcrypt cost")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g. 30s)")
	fs.DurationVar(&shutdownTimeout, "shutdown-timeout", 0, "Graceful shutdown timeout (e.g. 10s)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:     tokenSignKey,
			TokenIssuer:      tokenIssuer,
			TokenDuration:    tokenDuration,
			PasswordHashCost: passwordHashCost,
			LogLevel:         logLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN:      databaseDSN,
				MaxConns: int32(dbMaxConns),
			},
			Cache: Cache{
				RedisAddress: redisAddress,
				TTL:          cacheTTL,
			},
		},
		Server: Server{
			HTTPAddress:     serverAddress.String(),
			RequestTimeout:  requestTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress, or an empty
// string when nothing was set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host means all interfaces; any other host must be "localhost" or
// a valid IP address.
func (a *NetAddress) Set(s string) error {
	host, portStr, ok := strings.Cut(s, ":")
	if !ok || strings.Contains(portStr, ":") {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
