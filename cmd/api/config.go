package main

import (
	"fmt"
	"time"
)

type Config struct {
	Host                      string        `env:"HOST,default=localhost"`
	Port                      int           `env:"PORT,default=8080"`
	BadgerFilepath            string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath             string        `env:"BLUGE_FILEPATH,required=true"`
	UploadsDir                string        `env:"UPLOADS_DIR,default=uploads"`
	LogLevel                  string        `env:"LOG_LEVEL,required=true"`
	TokenDuration             time.Duration `env:"TOKEN_DURATION,default=24h"`
	ConnectionBufferSize      int           `env:"CONNECTION_BUFFER_SIZE,required=true"`
	IndexQueueSize            int           `env:"INDEX_QUEUE_SIZE,default=256"`
	RestartInterval           time.Duration `env:"RESTART_INTERVAL,required=true"`
	TelemetryInterval         time.Duration `env:"TELEMETRY_INTERVAL,default=30s"`
	LimitMessages             *int          `env:"LIMIT_MESSAGES"`
	ModerationCharReplacement string        `env:"MODERATION_CHARACTER_REPLACEMENT,required=true"`
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"MODERATION_CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
