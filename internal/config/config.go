package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends.
const (
	StoreDynamo  = "dynamodb"
	StoreGateway = "gateway"
	StoreMemory  = "memory"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string

	StoreBackend      string
	BootstrapTables   bool
	APIGatewayURL     string
	APIGatewayAPIKey  string
	APIGatewayTimeout time.Duration
	DynamoTables      DynamoTables
	S3BucketName      string

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration

	AdminUsername     string
	AdminPasswordHash string // bcrypt

	OTPFixedCode  string
	OTPTTL        time.Duration
	OTPStore      string // "memory" | "redis"
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SMSProvider string // "log" | "sns"
	SNSRegion   string

	GoogleClientID string

	// Carried for the mobile client; not used by the server itself.
	CognitoUserPoolID     string
	CognitoIdentityPoolID string
	MOSIPBaseURL          string
	MOSIPClientID         string
	MOSIPClientSecret     string
	FirebaseProjectID     string
	FirebaseAPIKey        string
	GoogleVisionAPIKey    string

	AllowedOrigins []string // CORS allowed origins

	// Reverse proxies (ALB, API Gateway) in front of the service. Rate
	// limiting trusts this many X-Forwarded-For hops; 0 keys on the socket peer.
	TrustedProxyHops int
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	ParkingZones  string
	FineCheckers  string
	MCOfficers    string
	VehicleOwners string
	DemoUsers     string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "ap-south-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		StoreBackend:      strings.ToLower(getEnv("STORE_BACKEND", StoreDynamo)),
		BootstrapTables:   getEnvBool("DYNAMO_BOOTSTRAP", true),
		APIGatewayURL:     strings.TrimRight(getEnv("API_GATEWAY_URL", ""), "/"),
		APIGatewayAPIKey:  getEnv("API_GATEWAY_API_KEY", ""),
		APIGatewayTimeout: getEnvDuration("API_GATEWAY_TIMEOUT", 10*time.Second),
		DynamoTables: DynamoTables{
			ParkingZones:  getEnv("DYNAMO_TABLE_PARKING_ZONES", "parking_zones"),
			FineCheckers:  getEnv("DYNAMO_TABLE_FINE_CHECKERS", "fine_checkers"),
			MCOfficers:    getEnv("DYNAMO_TABLE_MC_OFFICERS", "mc_officers"),
			VehicleOwners: getEnv("DYNAMO_TABLE_VEHICLE_OWNERS", "vehicle_owners"),
			DemoUsers:     getEnv("DYNAMO_TABLE_DEMO_USERS", "demo_users"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "mc-parking-documents"),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         getEnvDuration("JWT_EXPIRY", 24*time.Hour),

		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		OTPFixedCode:  getEnv("OTP_FIXED_CODE", "1234"),
		OTPTTL:        getEnvDuration("OTP_TTL", 5*time.Minute),
		OTPStore:      strings.ToLower(getEnv("OTP_STORE", "memory")),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		SMSProvider: strings.ToLower(getEnv("SMS_PROVIDER", "log")),
		SNSRegion:   getEnv("SNS_REGION", "ap-south-1"),

		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),

		CognitoUserPoolID:     getEnv("COGNITO_USER_POOL_ID", ""),
		CognitoIdentityPoolID: getEnv("COGNITO_IDENTITY_POOL_ID", ""),
		MOSIPBaseURL:          getEnv("MOSIP_BASE_URL", ""),
		MOSIPClientID:         getEnv("MOSIP_CLIENT_ID", ""),
		MOSIPClientSecret:     getEnv("MOSIP_CLIENT_SECRET", ""),
		FirebaseProjectID:     getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseAPIKey:        getEnv("FIREBASE_API_KEY", ""),
		GoogleVisionAPIKey:    getEnv("GOOGLE_VISION_API_KEY", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),

		TrustedProxyHops: getEnvInt("TRUSTED_PROXY_HOPS", 0),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvDuration accepts Go duration strings ("5m") or a bare number of seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}
