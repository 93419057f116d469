package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/ballpark-backend/internal/atbat"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

type Config struct {
	LogLevel   string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string   `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string   `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Redis      Redis    `yaml:"redis"`
	Postgres   Postgres `yaml:"postgres"`
	RosterFile string   `yaml:"roster-file" env:"ROSTER_FILE" env-default:""`
	Engine     Engine   `yaml:"engine"`
	CPU        CPU      `yaml:"cpu"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	// StreamMaxLen caps each game's play-event stream; 0 keeps everything.
	StreamMaxLen int64 `yaml:"stream-max-len" env:"REDIS_STREAM_MAX_LEN" env-default:"10000"`
}

// Postgres is optional: an empty DSN disables the match-history sink.
type Postgres struct {
	DSN string `yaml:"dsn" env:"POSTGRES_DSN" env-default:""`
}

type Engine struct {
	Mode    string `yaml:"mode" env:"ENGINE_MODE" env-default:"fast"`
	Innings int    `yaml:"innings" env:"ENGINE_INNINGS" env-default:"9"`
	// MaxExtraInnings of zero takes the default; a negative value ends tied games at regulation.
	MaxExtraInnings int `yaml:"max-extra-innings" env:"ENGINE_MAX_EXTRA_INNINGS" env-default:"3"`
	MercyInning     int `yaml:"mercy-inning" env:"ENGINE_MERCY_INNING" env-default:"5"`
	MercyRunGap     int `yaml:"mercy-run-gap" env:"ENGINE_MERCY_RUN_GAP" env-default:"10"`
	// Seed 0 uses the crypto source.
	Seed uint64 `yaml:"seed" env:"ENGINE_SEED" env-default:"0"`
}

type CPU struct {
	Difficulty string `yaml:"difficulty" env:"CPU_DIFFICULTY" env-default:"intermediate"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that Engine) Rules() entity.Rules {
	return entity.Rules{
		Innings:         that.Innings,
		MaxExtraInnings: that.MaxExtraInnings,
		MercyInning:     that.MercyInning,
		MercyRunGap:     that.MercyRunGap,
	}
}

func (that Engine) AtBatMode() (atbat.Mode, error) {
	switch mode := atbat.Mode(that.Mode); mode {
	case atbat.ModeFast, atbat.ModePitch:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown engine mode %q", that.Mode)
	}
}

func (that CPU) Level() (entity.Difficulty, error) {
	switch level := entity.Difficulty(that.Difficulty); level {
	case entity.DifficultyBeginner, entity.DifficultyIntermediate, entity.DifficultyAdvanced, entity.DifficultyExpert:
		return level, nil
	default:
		return "", fmt.Errorf("unknown cpu difficulty %q", that.Difficulty)
	}
}
