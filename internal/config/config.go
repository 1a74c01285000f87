// Package config contains utilities for loading configs
package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"

	"github.com/matt-dz/silviakaka/internal/password"
)

const (
	defaultConfigFilePath = "/data/silviakaka.yaml"
	appSecretBytes        = 32
	appSecretFilePerms    = 0o600
)

const (
	EnvProd = "PROD"
	EnvDev  = "DEV"
)

type StorageBackend string

const (
	StorageFile     StorageBackend = "file"
	StorageS3       StorageBackend = "s3"
	StoragePostgres StorageBackend = "postgres"
)

func (s StorageBackend) Validate() error {
	switch s {
	case StorageFile, StorageS3, StoragePostgres:
		return nil
	}
	return fmt.Errorf("unknown storage backend: %q", s)
}

type FilterPolicy string

func (f FilterPolicy) Validate() error {
	switch f {
	case "fail", "degrade":
		return nil
	}
	return fmt.Errorf("unknown filter policy: %q", f)
}

type AdminPassword string

func (a AdminPassword) Validate() error {
	return password.Validate(string(a))
}

type AppSecretValue string

func (a *AppSecretValue) Validate() error {
	if a == nil {
		return errors.New("secret should not be nil")
	}
	if len([]byte(*a)) < appSecretBytes {
		return errors.New("secret should be at least 32 bytes")
	}
	return nil
}

func splitFieldList(param string) []string {
	// "A,B,C" or "A B C"
	param = strings.ReplaceAll(param, " ", ",")
	parts := strings.Split(param, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// allOrNothing is a cross-field validator attached to a placeholder field.
// It passes when the listed sibling fields (`validate:"allOrNothing=A B C"`)
// are either all zero or all non-zero. Nil pointers and interfaces count as
// zero. A missing field name or an empty list fails validation.
func allOrNothing(fl validator.FieldLevel) bool {
	parent := fl.Parent()
	if parent.Kind() == reflect.Pointer {
		if parent.IsNil() {
			return true
		}
		parent = parent.Elem()
	}
	if parent.Kind() != reflect.Struct {
		return false
	}

	names := splitFieldList(fl.Param())
	if len(names) == 0 {
		return false
	}

	hasZero := false
	hasNonZero := false
	for _, name := range names {
		f := parent.FieldByName(name)
		if !f.IsValid() {
			return false
		}
		for (f.Kind() == reflect.Pointer || f.Kind() == reflect.Interface) && !f.IsNil() {
			f = f.Elem()
		}

		if f.IsZero() {
			hasZero = true
		} else {
			hasNonZero = true
		}
		if hasZero && hasNonZero {
			return false
		}
	}
	return true
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("allOrNothing", allOrNothing)
	return v
}

func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors) //nolint:errorlint
	if !ok {
		return err
	}

	for _, e := range validationErrs {
		if e.Tag() != "allOrNothing" {
			continue
		}
		// "Config.Storage.S3.Validate" -> "S3"
		parts := strings.Split(e.Namespace(), ".")
		var structName string
		//nolint:mnd
		if len(parts) >= 2 {
			structName = parts[len(parts)-2]
		}

		var fields string
		switch structName {
		case "S3":
			fields = "Endpoint, Bucket, AccessKeyID, and SecretAccessKey"
		case "Database":
			fields = "Port, Host, Database, User, and Password"
		case "Minio":
			fields = "Endpoint, Bucket, AccessKeyID, and SecretAccessKey"
		case "Admin":
			fields = "Username and Password"
		default:
			fields = "all related fields"
		}

		return fmt.Errorf(
			"%s configuration is incomplete: either all fields must be set (%s) or all must be empty",
			structName, fields)
	}
	return err
}

type AppSecret struct {
	Value   *AppSecretValue `yaml:"value" validate:"omitempty,validateFn"`
	Path    string          `yaml:"path" validate:"omitempty,filepath"`
	Version string          `yaml:"version"`
}

// Admin holds the credentials for the admin API. Token is a static bearer
// secret; Username and Password enable JWT login through /api/auth.
type Admin struct {
	Token    string        `yaml:"token" validate:"omitempty,min=16"`
	Username string        `yaml:"username"`
	Password AdminPassword `yaml:"password" validate:"omitempty,validateFn"`

	Validate struct{} `yaml:"-" validate:"allOrNothing=Username Password"`
}

func (a Admin) Enabled() bool {
	return a.Token != "" || a.Username != ""
}

type S3 struct {
	Endpoint        string `yaml:"endpoint" validate:"omitempty,url"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	Key             string `yaml:"key"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`

	Validate struct{} `yaml:"-" validate:"allOrNothing=Endpoint Bucket AccessKeyID SecretAccessKey"`
}

type Database struct {
	Port     uint16 `yaml:"port"`
	Host     string `yaml:"host" validate:"omitempty,hostname_rfc1123"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Document string `yaml:"document"`

	Validate struct{} `yaml:"-" validate:"allOrNothing=Port Host Database User Password"`
}

// URL returns the connection string for pgx.
func (d Database) URL() string {
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.Database,
	}
	return u.String()
}

type Storage struct {
	Backend  StorageBackend `yaml:"backend" validate:"validateFn"`
	Path     string         `yaml:"path" validate:"omitempty,filepath"`
	Watch    bool           `yaml:"watch"`
	S3       S3             `yaml:"s3"`
	Database Database       `yaml:"database"`
}

type Fileserver struct {
	Volume        string `yaml:"volume"`
	URLPrefix     string `yaml:"url_prefix"`
	MaxImageWidth int    `yaml:"max_image_width" validate:"gte=0"`
}

type Minio struct {
	Endpoint        string `yaml:"endpoint" validate:"omitempty,hostname_port"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	UseSSL          bool   `yaml:"use_ssl"`

	Validate struct{} `yaml:"-" validate:"allOrNothing=Endpoint Bucket AccessKeyID SecretAccessKey"`
}

func (m Minio) Enabled() bool {
	return m.Endpoint != ""
}

type Site struct {
	PageSize       int          `yaml:"page_size" validate:"gte=1"`
	FilterPolicy   FilterPolicy `yaml:"filter_policy" validate:"validateFn"`
	TaxonomyPath   string       `yaml:"taxonomy_path" validate:"omitempty,filepath"`
	RebuildHookURL string       `yaml:"rebuild_hook_url" validate:"omitempty,url"`
}

type RateLimit struct {
	RequestsPerMinute int `yaml:"requests_per_minute" validate:"gte=1"`
	Burst             int `yaml:"burst" validate:"gte=1"`
}

type Config struct {
	AppSecret  AppSecret  `yaml:"app_secret"`
	Admin      Admin      `yaml:"admin"`
	Storage    Storage    `yaml:"storage"`
	Fileserver Fileserver `yaml:"fileserver"`
	Minio      Minio      `yaml:"minio"`
	Site       Site       `yaml:"site"`
	RateLimit  RateLimit  `yaml:"rate_limit"`
	Port       uint16     `yaml:"port"`
	HostOrigin string     `yaml:"host_origin" validate:"url"`
	Env        string     `yaml:"env" validate:"omitempty,oneof=DEV PROD"`
	LogLevel   string     `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

func newAppSecret() (string, error) {
	token := make([]byte, appSecretBytes)
	if _, err := rand.Reader.Read(token); err != nil {
		return "", fmt.Errorf("creating app secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(token), nil
}

// loadAppSecret fills AppSecret.Value from the secret file, creating the file
// with a fresh secret on first start.
func loadAppSecret(config *Config) error {
	if config.AppSecret.Value != nil {
		return nil
	}

	secret, err := readAppSecret(config.AppSecret.Path)
	if errors.Is(err, os.ErrNotExist) {
		secret, err = createAppSecret(config.AppSecret.Path)
	}
	if err != nil {
		return err
	}
	val := AppSecretValue(secret)
	config.AppSecret.Value = &val
	return nil
}

func readAppSecret(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return "", fmt.Errorf("checking secret path: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("secret path %q is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading secret file: %w", err)
	}
	return string(data), nil
}

// createAppSecret writes a new secret to path. The file must not exist yet.
func createAppSecret(path string) (string, error) {
	secret, err := newAppSecret()
	if err != nil {
		return "", err
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, appSecretFilePerms)
	if err != nil {
		return "", fmt.Errorf("creating secret file: %w", err)
	}
	defer func() { _ = file.Close() }()
	if _, err := file.WriteString(secret); err != nil {
		return "", fmt.Errorf("writing secret file: %w", err)
	}
	return secret, nil
}

// checkBackend makes sure the selected storage backend is configured.
func checkBackend(config *Config) error {
	switch config.Storage.Backend {
	case StorageS3:
		if config.Storage.S3.Bucket == "" {
			return errors.New("storage backend s3 requires the s3 section to be set")
		}
	case StoragePostgres:
		if config.Storage.Database.Database == "" {
			return errors.New("storage backend postgres requires the database section to be set")
		}
	case StorageFile:
		if config.Storage.Path == "" {
			return errors.New("storage backend file requires a path")
		}
	}
	return nil
}

func finish(config *Config) error {
	if err := newValidator().Struct(config); err != nil {
		return formatValidationError(err)
	}
	if err := checkBackend(config); err != nil {
		return err
	}
	if err := loadAppSecret(config); err != nil {
		return fmt.Errorf("loading app secret: %w", err)
	}
	return nil
}

func loadWithDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseUint16(key, def string) (uint16, error) {
	raw := loadWithDefault(key, def)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid %s (%q): %w", key, raw, err)
	}
	return uint16(v), nil
}

func parseInt(key, def string) (int, error) {
	raw := loadWithDefault(key, def)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s (%q): %w", key, raw, err)
	}
	return v, nil
}

func parseBool(key, def string) (bool, error) {
	raw := loadWithDefault(key, def)
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s (%q): %w", key, raw, err)
	}
	return v, nil
}

func loadConfigFromEnv() (Config, error) {
	conf := Config{
		Env:        loadWithDefault("ENV", EnvDev),
		HostOrigin: loadWithDefault("HOST_ORIGIN", "http://localhost:8080"),
		LogLevel:   loadWithDefault("LOG_LEVEL", "info"),
	}
	var err error

	if conf.Port, err = parseUint16("PORT", "8080"); err != nil {
		return conf, err
	}

	// AppSecret
	conf.AppSecret = AppSecret{
		Path:    loadWithDefault("APP_SECRET_PATH", "/data/secret"),
		Version: loadWithDefault("APP_SECRET_VERSION", "1"),
	}
	if v := AppSecretValue(loadWithDefault("APP_SECRET", "")); v != "" {
		conf.AppSecret.Value = &v
	}

	// Admin
	conf.Admin = Admin{
		Token:    loadWithDefault("ADMIN_TOKEN", ""),
		Username: loadWithDefault("ADMIN_USERNAME", ""),
		Password: AdminPassword(loadWithDefault("ADMIN_PASSWORD", "")),
	}

	// Storage
	conf.Storage = Storage{
		Backend: StorageBackend(loadWithDefault("STORAGE_BACKEND", string(StorageFile))),
		Path:    loadWithDefault("STORAGE_PATH", "/data/recipes.json"),
		S3: S3{
			Endpoint:        loadWithDefault("S3_ENDPOINT", ""),
			Region:          loadWithDefault("S3_REGION", "us-east-1"),
			Bucket:          loadWithDefault("S3_BUCKET", ""),
			Key:             loadWithDefault("S3_KEY", "recipes.json"),
			AccessKeyID:     loadWithDefault("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: loadWithDefault("S3_SECRET_ACCESS_KEY", ""),
		},
		Database: Database{
			Host:     loadWithDefault("DATABASE_HOST", ""),
			Database: loadWithDefault("DATABASE", ""),
			User:     loadWithDefault("DATABASE_USER", ""),
			Password: loadWithDefault("DATABASE_PASSWORD", ""),
			Document: loadWithDefault("DATABASE_DOCUMENT", "recipes"),
		},
	}
	if conf.Storage.Watch, err = parseBool("STORAGE_WATCH", "false"); err != nil {
		return conf, err
	}
	// Only default the port once the database is being configured.
	portDefault := ""
	if conf.Storage.Database.Host != "" || conf.Storage.Database.Database != "" {
		portDefault = "5432"
	}
	if conf.Storage.Database.Port, err = parseUint16("DATABASE_PORT", portDefault); err != nil {
		return conf, err
	}

	// Fileserver
	conf.Fileserver = Fileserver{
		Volume:    loadWithDefault("FILESERVER_VOLUME", "/data/files"),
		URLPrefix: loadWithDefault("FILESERVER_URL_PREFIX", "/images"),
	}
	if conf.Fileserver.MaxImageWidth, err = parseInt("FILESERVER_MAX_IMAGE_WIDTH", "1600"); err != nil {
		return conf, err
	}

	// Minio
	conf.Minio = Minio{
		Endpoint:        loadWithDefault("MINIO_ENDPOINT", ""),
		Bucket:          loadWithDefault("MINIO_BUCKET", ""),
		AccessKeyID:     loadWithDefault("MINIO_ACCESS_KEY_ID", ""),
		SecretAccessKey: loadWithDefault("MINIO_SECRET_ACCESS_KEY", ""),
	}
	if conf.Minio.UseSSL, err = parseBool("MINIO_USE_SSL", "false"); err != nil {
		return conf, err
	}

	// Site
	conf.Site = Site{
		FilterPolicy:   FilterPolicy(loadWithDefault("SITE_FILTER_POLICY", "fail")),
		TaxonomyPath:   loadWithDefault("SITE_TAXONOMY_PATH", ""),
		RebuildHookURL: loadWithDefault("SITE_REBUILD_HOOK_URL", ""),
	}
	if conf.Site.PageSize, err = parseInt("SITE_PAGE_SIZE", "6"); err != nil {
		return conf, err
	}

	// Rate limit
	if conf.RateLimit.RequestsPerMinute, err = parseInt("RATE_LIMIT_PER_MINUTE", "10"); err != nil {
		return conf, err
	}
	if conf.RateLimit.Burst, err = parseInt("RATE_LIMIT_BURST", "5"); err != nil {
		return conf, err
	}

	if err := finish(&conf); err != nil {
		return conf, err
	}
	return conf, nil
}

func setFileDefaults(config *Config) {
	if config.AppSecret.Path == "" {
		config.AppSecret.Path = "/data/secret"
	}
	if config.AppSecret.Version == "" {
		config.AppSecret.Version = "1"
	}
	if config.Env == "" {
		config.Env = EnvDev
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.Port == 0 {
		config.Port = 8080
	}
	if config.HostOrigin == "" {
		config.HostOrigin = "http://localhost:8080"
	}
	if config.Storage.Backend == "" {
		config.Storage.Backend = StorageFile
	}
	if config.Storage.Path == "" {
		config.Storage.Path = "/data/recipes.json"
	}
	if config.Storage.S3.Region == "" {
		config.Storage.S3.Region = "us-east-1"
	}
	if config.Storage.S3.Key == "" {
		config.Storage.S3.Key = "recipes.json"
	}
	// Only set Database.Port default if the database is being configured
	if config.Storage.Database.Port == 0 &&
		(config.Storage.Database.Host != "" || config.Storage.Database.Database != "") {
		config.Storage.Database.Port = 5432
	}
	if config.Storage.Database.Document == "" {
		config.Storage.Database.Document = "recipes"
	}
	if config.Fileserver.Volume == "" {
		config.Fileserver.Volume = "/data/files"
	}
	if config.Fileserver.URLPrefix == "" {
		config.Fileserver.URLPrefix = "/images"
	}
	if config.Fileserver.MaxImageWidth == 0 {
		config.Fileserver.MaxImageWidth = 1600
	}
	if config.Site.PageSize == 0 {
		config.Site.PageSize = 6
	}
	if config.Site.FilterPolicy == "" {
		config.Site.FilterPolicy = "fail"
	}
	if config.RateLimit.RequestsPerMinute == 0 {
		config.RateLimit.RequestsPerMinute = 10
	}
	if config.RateLimit.Burst == 0 {
		config.RateLimit.Burst = 5
	}
}

func loadConfigFromFile(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(contents, &config); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	setFileDefaults(&config)

	if err := finish(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}

func configFileExists(path string) bool {
	f, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return !f.IsDir()
}

// LoadConfig reads the YAML file at CONFIG_PATH when it exists and falls
// back to environment variables otherwise.
func LoadConfig() (Config, error) {
	path := loadWithDefault("CONFIG_PATH", defaultConfigFilePath)
	if configFileExists(path) {
		return loadConfigFromFile(path)
	}
	return loadConfigFromEnv()
}
