package main

import "time"

type Config struct {
	Host                 string        `env:"HOST,default=localhost"`
	Port                 int           `env:"PORT,default=8080"`
	AdminPort            int           `env:"ADMIN_PORT,default=8081"`
	LogLevel             string        `env:"LOG_LEVEL,default=INFO"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=16"`
	Lookahead            int           `env:"LOOKAHEAD,default=10"`
	TableCapacity        int           `env:"TABLE_CAPACITY,default=3"`
	StartingBalance      int           `env:"STARTING_BALANCE,default=1000"`
	BetLimit             int           `env:"BET_LIMIT,default=5"`
	BadgerFilepath       string        `env:"BADGER_FILEPATH,required=true"`
	AdminSecretHash      string        `env:"ADMIN_SECRET_HASH,required=true"`
	AdminTokenKey        string        `env:"ADMIN_TOKEN_KEY,required=true"`
	AdminTokenDuration   time.Duration `env:"ADMIN_TOKEN_DURATION,default=24h"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	TelemetryInterval    time.Duration `env:"TELEMETRY_INTERVAL,default=30s"`
	AuditGCInterval      time.Duration `env:"AUDIT_GC_INTERVAL,default=5m"`
}
