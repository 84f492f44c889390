package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultGraphQLPath     = "/graphql"
	defaultShutdownTimeout = 10 * time.Second
	defaultMaxQueryDepth   = 10
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"

	// ItemsEncodingComma は注文明細をカンマ区切り文字列として保存します。
	ItemsEncodingComma = "comma"
	// ItemsEncodingJSON は注文明細を JSON 配列文字列として保存します。
	ItemsEncodingJSON = "json"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Order    OrderConfig    `yaml:"order"`
	Books    BooksConfig    `yaml:"books"`
}

// ServerConfig は HTTP (GraphQL) サーバーに関する設定です。
type ServerConfig struct {
	ListenAddr         string        `yaml:"listen_addr"`
	GraphQLPath        string        `yaml:"graphql_path"`
	HealthListenAddr   string        `yaml:"health_listen_addr"`
	MaxQueryDepth      int           `yaml:"max_query_depth"`
	ShutdownTimeout    time.Duration `yaml:"-"`
	ShutdownTimeoutRaw string        `yaml:"shutdown_timeout"`
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。
type DatabaseConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	Name               string        `yaml:"name"`
	SSLMode            string        `yaml:"ssl_mode"`
	MaxOpenConns       int           `yaml:"max_open_conns"`
	MaxIdleConns       int           `yaml:"max_idle_conns"`
	ConnMaxLifetime    time.Duration `yaml:"-"`
	ConnMaxIdleTime    time.Duration `yaml:"-"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time"`
}

// LogConfig はロガーの設定です。
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// OrderConfig は注文エンティティの保存形式に関する設定です。
type OrderConfig struct {
	ItemsEncoding string `yaml:"items_encoding"`
}

// BooksConfig は書籍一覧の読み込み元を指定します。Path が空の場合は組み込みの一覧を使用します。
type BooksConfig struct {
	Path string `yaml:"path"`
}

// Load は指定されたパスから設定ファイルを読み込みます。
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validateAndNormalize() error {
	if err := c.Server.validateAndNormalize(); err != nil {
		return err
	}

	if err := c.Database.validateAndNormalize(); err != nil {
		return err
	}

	if err := c.Log.validateAndNormalize(); err != nil {
		return err
	}

	return c.Order.validateAndNormalize()
}

func (s *ServerConfig) validateAndNormalize() error {
	if s.ListenAddr == "" {
		return fmt.Errorf("config: server.listen_addr must be set")
	}
	if s.GraphQLPath == "" {
		s.GraphQLPath = defaultGraphQLPath
	}
	if !strings.HasPrefix(s.GraphQLPath, "/") {
		return fmt.Errorf("config: server.graphql_path must start with '/'")
	}
	if s.MaxQueryDepth < 0 {
		return fmt.Errorf("config: server.max_query_depth must not be negative")
	}
	if s.MaxQueryDepth == 0 {
		s.MaxQueryDepth = defaultMaxQueryDepth
	}

	timeout, err := parseDurationAllowEmpty(s.ShutdownTimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: server.shutdown_timeout: %w", err)
	}
	if timeout == 0 {
		timeout = defaultShutdownTimeout
	}
	s.ShutdownTimeout = timeout

	return nil
}

func (d *DatabaseConfig) validateAndNormalize() error {
	if d.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if d.Port == 0 {
		return fmt.Errorf("config: database.port must be set")
	}
	if d.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if d.Password == "" {
		return fmt.Errorf("config: database.password must be set")
	}
	if d.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}

	lifetime, err := parseDurationAllowEmpty(d.ConnMaxLifetimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_lifetime: %w", err)
	}
	d.ConnMaxLifetime = lifetime

	idleTime, err := parseDurationAllowEmpty(d.ConnMaxIdleTimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_idle_time: %w", err)
	}
	d.ConnMaxIdleTime = idleTime

	return nil
}

func (l *LogConfig) validateAndNormalize() error {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	switch strings.ToLower(l.Format) {
	case "":
		l.Format = defaultLogFormat
	case "json", "console":
		l.Format = strings.ToLower(l.Format)
	default:
		return fmt.Errorf("config: log.format must be json or console, got %q", l.Format)
	}
	return nil
}

func (o *OrderConfig) validateAndNormalize() error {
	switch strings.ToLower(o.ItemsEncoding) {
	case "":
		o.ItemsEncoding = ItemsEncodingComma
	case ItemsEncodingComma, ItemsEncodingJSON:
		o.ItemsEncoding = strings.ToLower(o.ItemsEncoding)
	default:
		return fmt.Errorf("config: order.items_encoding must be %s or %s, got %q", ItemsEncodingComma, ItemsEncodingJSON, o.ItemsEncoding)
	}
	return nil
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

// DSN は pgx 用の接続文字列を返します。ユーザー名とパスワードはエスケープされます。
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}
