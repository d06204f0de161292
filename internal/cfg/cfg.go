package cfg

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/basketwise/recommender/pkg/e"
	"github.com/basketwise/recommender/pkg/logger"
	"github.com/jimlawless/whereami"
)

type Config struct {
	Http      *HTTPConfig
	Db        *PGDBCfg
	Qdrant    *QdrantCfg
	Redis     *RedisCfg
	Gemini    *GeminiCfg
	Minio     *MinIOCfg
	Recommend *RecommendCfg
	Log       *LogCfg
}

type HTTPConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins string // значение заголовка Access-Control-Allow-Origin
}

type PGDBCfg struct {
	Host          string
	Port          string
	User          string
	Password      string
	DBName        string
	SSLMode       string
	RunMigrations bool
	MigrationsDir string
}

// DSN возвращает строку подключения в формате libpq.
func (c *PGDBCfg) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

type QdrantCfg struct {
	Port                 int
	Host                 string
	ApiKey               string
	QdrantCollectionName string // имя коллекции товаров в Qdrant
	UseTLS               bool
	VectorSize           uint64
	PriceField           string // числовое поле payload, по которому строится фильтр цены
}

type RedisCfg struct {
	Enabled      bool
	Addr         string
	Password     string
	User         string
	DB           int
	MaxRetries   int
	DialTimeout  time.Duration
	Timeout      time.Duration
	EmbeddingTTL time.Duration
	NutritionTTL time.Duration
}

// GeminiCfg описывает доступ к моделям эмбеддингов и чата.
// Backend: "gemini" (API key) или "vertex" (проект + регион, ADC).
type GeminiCfg struct {
	Backend        string
	APIKey         string
	Project        string
	Location       string
	EmbeddingModel string
	ChatModel      string
}

type MinIOCfg struct {
	PresignEnabled    bool
	MinioEndpoint     string // S3-совместимая точка доступа (GCS interop, MinIO)
	MinioRootUser     string
	MinioRootPassword string
	MinioUseSSL       bool
	Region            string
	PresignExpiry     time.Duration
}

// RecommendCfg — параметры пайплайна рекомендаций.
type RecommendCfg struct {
	TopK                int
	SimilarityThreshold float64
	Temperature         float32
	CallTimeout         time.Duration
	MaxConcurrentItems  int
	MaxRequestBytes     int64
}

type LogCfg struct {
	Level  string
	Format string
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	db, err := LoadPGDBCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	qdrant, err := loadQdrantCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	gemini, err := loadGeminiCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minio, err := loadMinIOCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	recommend, err := loadRecommendCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:      http,
		Db:        db,
		Qdrant:    qdrant,
		Redis:     redis,
		Gemini:    gemini,
		Minio:     minio,
		Recommend: recommend,
		Log:       LoadLogCfg(),
	}, nil
}

// LoadLogCfg читается отдельно: логгер нужен раньше остальной конфигурации.
func LoadLogCfg() *LogCfg {
	return &LogCfg{
		Level:  getEnvOrDefault("LOG_LEVEL", "info"),
		Format: getEnvOrDefault("LOG_FORMAT", "json"),
	}
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 120 * time.Second // запрос ждёт LLM по каждой позиции корзины
		defaultIdleTimeout  = 60 * time.Second
	)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:           getEnvOrDefault("PORT", getEnvOrDefault("HTTP_PORT", defaultPort)),
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
		IdleTimeout:    idleTimeout,
		AllowedOrigins: getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"),
	}, nil
}

// LoadPGDBCfg нужен отдельно команде migrate, которой не требуются остальные сервисы.
func LoadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost          = "localhost"
		defaultPort          = "5432"
		defaultSSLMode       = "disable"
		defaultMigrationsDir = "db/migrations"
	)

	user, err := requireEnv(log, "POSTGRES_USER")
	if err != nil {
		return nil, err
	}

	password, err := requireEnv(log, "POSTGRES_PASSWORD")
	if err != nil {
		return nil, err
	}

	dbName, err := requireEnv(log, "POSTGRES_DB")
	if err != nil {
		return nil, err
	}

	runMigrations, err := parseBoolEnv("POSTGRES_RUN_MIGRATIONS", true)
	if err != nil {
		log.Errorf(err, "invalid POSTGRES_RUN_MIGRATIONS")
		return nil, err
	}

	return &PGDBCfg{
		Host:          getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:          getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:          user,
		Password:      password,
		DBName:        dbName,
		SSLMode:       getEnvOrDefault("SSL_MODE", defaultSSLMode),
		RunMigrations: runMigrations,
		MigrationsDir: getEnvOrDefault("MIGRATIONS_DIR", defaultMigrationsDir),
	}, nil
}

func loadQdrantCfg(log logger.Logger) (*QdrantCfg, error) {
	const (
		defaultQdrantGRPCPort = 6334
		defaultUseTLS         = false
		defaultVectorSize     = 768 // размерность text-embedding-005
		defaultCollection     = "grocery"
		defaultPriceField     = "price"
	)

	host, err := requireEnv(log, "QDRANT_HOST")
	if err != nil {
		return nil, err
	}

	port, err := parseIntEnv("QDRANT_GRPC_PORT", defaultQdrantGRPCPort)
	if err != nil {
		log.Errorf(err, "invalid QDRANT_GRPC_PORT")
		return nil, err
	}

	useTLS, err := parseBoolEnv("QDRANT_USE_TLS", defaultUseTLS)
	if err != nil {
		log.Errorf(err, "invalid QDRANT_USE_TLS")
		return nil, err
	}

	vectorSize, err := strconv.ParseUint(getEnvOrDefault("VECTOR_SIZE", strconv.Itoa(defaultVectorSize)), 10, 64)
	if err != nil {
		log.Errorf(err, "invalid VECTOR_SIZE")
		return nil, err
	}

	return &QdrantCfg{
		Host:                 host,
		Port:                 port,
		ApiKey:               getEnv("QDRANT__SERVICE__API_KEY"),
		QdrantCollectionName: getEnvOrDefault("COLLECTION_NAME", defaultCollection),
		UseTLS:               useTLS,
		VectorSize:           vectorSize,
		PriceField:           getEnvOrDefault("QDRANT_PRICE_FIELD", defaultPriceField),
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 500 * time.Millisecond
		defaultWriteTimeout = 500 * time.Millisecond
		defaultEmbeddingTTL = 24 * time.Hour
		defaultNutritionTTL = 10 * time.Minute
	)

	enabled, err := parseBoolEnv("CACHE_ENABLED", true)
	if err != nil {
		log.Errorf(err, "invalid CACHE_ENABLED")
		return nil, err
	}

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	embeddingTTL, err := parseDurationEnv("EMBEDDING_TTL", defaultEmbeddingTTL)
	if err != nil {
		log.Errorf(err, "invalid EMBEDDING_TTL")
		return nil, err
	}

	nutritionTTL, err := parseDurationEnv("NUTRITION_TTL", defaultNutritionTTL)
	if err != nil {
		log.Errorf(err, "invalid NUTRITION_TTL")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Enabled:      enabled,
		Addr:         getEnvOrDefault("REDIS_ADDR", defaultAddr),
		Password:     getEnv("REDIS_PASSWORD"),
		User:         getEnv("REDIS_USER"),
		DB:           db,
		MaxRetries:   maxRetries,
		DialTimeout:  dialTimeout,
		Timeout:      timeout,
		EmbeddingTTL: embeddingTTL,
		NutritionTTL: nutritionTTL,
	}, nil
}

func loadGeminiCfg(log logger.Logger) (*GeminiCfg, error) {
	const (
		defaultBackend        = "gemini"
		defaultLocation       = "us-central1"
		defaultEmbeddingModel = "text-embedding-005"
		defaultChatModel      = "gemini-2.0-flash"
	)

	c := &GeminiCfg{
		Backend:        getEnvOrDefault("GENAI_BACKEND", defaultBackend),
		APIKey:         getEnv("GEMINI_API_KEY"),
		Project:        getEnv("GOOGLE_CLOUD_PROJECT"),
		Location:       getEnvOrDefault("GOOGLE_CLOUD_LOCATION", defaultLocation),
		EmbeddingModel: getEnvOrDefault("EMBEDDING_MODEL", defaultEmbeddingModel),
		ChatModel:      getEnvOrDefault("CHAT_MODEL", defaultChatModel),
	}

	switch c.Backend {
	case "gemini":
		if c.APIKey == "" {
			err := e.Wrap("GEMINI_API_KEY", e.ErrMissingEnvVariable)
			log.Errorf(err, "missing GEMINI_API_KEY")
			return nil, err
		}
	case "vertex":
		if c.Project == "" {
			err := e.Wrap("GOOGLE_CLOUD_PROJECT", e.ErrMissingEnvVariable)
			log.Errorf(err, "missing GOOGLE_CLOUD_PROJECT")
			return nil, err
		}
	default:
		err := e.Wrap("GENAI_BACKEND="+c.Backend, e.ErrIncorrectEnvVariable)
		log.Errorf(err, "invalid GENAI_BACKEND")
		return nil, err
	}

	return c, nil
}

func loadMinIOCfg(log logger.Logger) (*MinIOCfg, error) {
	const (
		defaultEndpoint      = "storage.googleapis.com"
		defaultUseSSL        = true
		defaultPresignExpiry = time.Hour
		defaultRegion        = "auto"
	)

	enabled, err := parseBoolEnv("STORAGE_PRESIGN_ENABLED", false)
	if err != nil {
		log.Errorf(err, "invalid STORAGE_PRESIGN_ENABLED")
		return nil, err
	}

	useSSL, err := parseBoolEnv("STORAGE_USE_SSL", defaultUseSSL)
	if err != nil {
		log.Errorf(err, "invalid STORAGE_USE_SSL")
		return nil, err
	}

	expiry, err := parseDurationEnv("STORAGE_PRESIGN_EXPIRY", defaultPresignExpiry)
	if err != nil {
		log.Errorf(err, "invalid STORAGE_PRESIGN_EXPIRY")
		return nil, err
	}

	return &MinIOCfg{
		PresignEnabled:    enabled,
		MinioEndpoint:     getEnvOrDefault("STORAGE_ENDPOINT", defaultEndpoint),
		MinioRootUser:     getEnv("STORAGE_ACCESS_KEY"),
		MinioRootPassword: getEnv("STORAGE_SECRET_KEY"),
		MinioUseSSL:       useSSL,
		Region:            getEnvOrDefault("STORAGE_REGION", defaultRegion),
		PresignExpiry:     expiry,
	}, nil
}

func loadRecommendCfg(log logger.Logger) (*RecommendCfg, error) {
	const (
		defaultTopK                = 10
		defaultSimilarityThreshold = 0.5
		defaultTemperature         = 0.5
		defaultCallTimeout         = 15 * time.Second
		defaultMaxConcurrentItems  = 1
		defaultMaxRequestBytes     = 1 << 20
	)

	topK, err := parseIntEnv("RECOMMEND_TOP_K", defaultTopK)
	if err != nil || topK <= 0 {
		err = e.Wrap("RECOMMEND_TOP_K", e.ErrIncorrectEnvVariable)
		log.Errorf(err, "invalid RECOMMEND_TOP_K")
		return nil, err
	}

	threshold, err := parseFloatEnv("SIMILARITY_THRESHOLD", defaultSimilarityThreshold)
	if err != nil || threshold <= 0 || threshold > 1 {
		err = e.Wrap("SIMILARITY_THRESHOLD", e.ErrIncorrectEnvVariable)
		log.Errorf(err, "invalid SIMILARITY_THRESHOLD")
		return nil, err
	}

	temperature, err := parseFloatEnv("LLM_TEMPERATURE", defaultTemperature)
	if err != nil {
		log.Errorf(err, "invalid LLM_TEMPERATURE")
		return nil, err
	}

	callTimeout, err := parseDurationEnv("RECOMMEND_CALL_TIMEOUT", defaultCallTimeout)
	if err != nil {
		log.Errorf(err, "invalid RECOMMEND_CALL_TIMEOUT")
		return nil, err
	}

	maxConcurrent, err := parseIntEnv("RECOMMEND_MAX_CONCURRENT_ITEMS", defaultMaxConcurrentItems)
	if err != nil || maxConcurrent < 1 {
		err = e.Wrap("RECOMMEND_MAX_CONCURRENT_ITEMS", e.ErrIncorrectEnvVariable)
		log.Errorf(err, "invalid RECOMMEND_MAX_CONCURRENT_ITEMS")
		return nil, err
	}

	return &RecommendCfg{
		TopK:                topK,
		SimilarityThreshold: threshold,
		Temperature:         float32(temperature),
		CallTimeout:         callTimeout,
		MaxConcurrentItems:  maxConcurrent,
		MaxRequestBytes:     defaultMaxRequestBytes,
	}, nil
}

// requireEnv возвращает значение обязательной переменной окружения.
func requireEnv(log logger.Logger, key string) (string, error) {
	v := getEnv(key)
	if v == "" {
		err := e.Wrap(key, e.ErrMissingEnvVariable)
		log.Errorf(err, "missing %s", key)
		return "", err
	}

	return v, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.Wrap(key, e.ErrIncorrectEnvVariable)
	}

	return intValue, nil
}

func parseFloatEnv(key string, defaultValue float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultValue, e.Wrap(key, e.ErrIncorrectEnvVariable)
	}

	return f, nil
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue, e.Wrap(key, e.ErrIncorrectEnvVariable)
	}

	return b, nil
}
