package internal

import (
	"campus-chat/domain/chat"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

type Config struct {
	Host           string `env:"HOST,default=localhost"`
	Port           int    `env:"PORT,default=8080"`
	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	LogLevel       string `env:"LOG_LEVEL,default=INFO"`

	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=64"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,default=2s"`
	WriteWait            time.Duration `env:"WRITE_WAIT,default=10s"`
	PongWait             time.Duration `env:"PONG_WAIT,default=60s"`
	MaxMessageSize       int64         `env:"MAX_MESSAGE_SIZE,default=65536"`

	JWTSecret          string        `env:"JWT_SECRET,required=true"`
	AuthTokenDuration  time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	AllowQueryIdentity bool          `env:"ALLOW_QUERY_IDENTITY,default=false"`

	TypingTTL           time.Duration `env:"TYPING_TTL,default=30s"`
	TypingSweepInterval time.Duration `env:"TYPING_SWEEP_INTERVAL,default=5m"`
	DeliveryMaxRetries  int           `env:"DELIVERY_MAX_RETRIES,default=3"`
	DeliveryBackoff     string        `env:"DELIVERY_BACKOFF"`
	RetrySweepInterval  time.Duration `env:"RETRY_SWEEP_INTERVAL,default=30s"`
	MetricInterval      time.Duration `env:"METRIC_INTERVAL,default=15s"`
	ReplySnippetLength  int           `env:"REPLY_SNIPPET_LENGTH,default=200"`
	RestartInterval     time.Duration `env:"RESTART_INTERVAL,default=200ms"`
}

// Backoff parses DELIVERY_BACKOFF, a comma separated list of durations such
// as "1s,5s,15s". An empty value keeps the default schedule.
// The tag cannot carry that default since go-env splits tags on commas.
func Backoff(str string) ([]time.Duration, error) {
	parts := lo.Compact(lo.Map(strings.Split(str, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
	if len(parts) == 0 {
		return chat.DefaultBackoff, nil
	}
	backoff := make([]time.Duration, 0, len(parts))
	for _, part := range parts {
		d, err := time.ParseDuration(part)
		if err != nil {
			return nil, fmt.Errorf("DELIVERY_BACKOFF: %w", err)
		}
		if d < 0 {
			return nil, fmt.Errorf("DELIVERY_BACKOFF must not contain negative durations, got %s", d)
		}
		backoff = append(backoff, d)
	}
	return backoff, nil
}
