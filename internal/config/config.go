package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string

	DynamoTables DynamoTables

	S3BucketName  string
	S3PublicBase  string // base URL for public object links, e.g. CloudFront domain
	MaxUploadSize int64  // bytes

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiryHours    int

	OTPTTLMinutes int

	EmailProvider string // "smtp" | "ses" | "noop"
	EmailFrom     string
	EmailFromName string
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SESRegion     string

	SNSRegion  string
	SMSEnabled bool

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each collection.
type DynamoTables struct {
	Verifications          string
	Events                 string
	Registrations          string
	TeacherApplications    string
	TeacherEnrollments     string
	VolunteerOpportunities string
	VolunteerApplications  string
	Content                string
	Resources              string
	Messages               string
	Subscribers            string
	Visits                 string
	Users                  string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		DynamoTables: DynamoTables{
			Verifications:          getEnv("DYNAMO_TABLE_VERIFICATIONS", "verifications"),
			Events:                 getEnv("DYNAMO_TABLE_EVENTS", "events"),
			Registrations:          getEnv("DYNAMO_TABLE_REGISTRATIONS", "registrations"),
			TeacherApplications:    getEnv("DYNAMO_TABLE_TEACHER_APPLICATIONS", "teacher_applications"),
			TeacherEnrollments:     getEnv("DYNAMO_TABLE_TEACHER_ENROLLMENTS", "teacher_enrollments"),
			VolunteerOpportunities: getEnv("DYNAMO_TABLE_VOLUNTEER_OPPORTUNITIES", "volunteer_opportunities"),
			VolunteerApplications:  getEnv("DYNAMO_TABLE_VOLUNTEER_APPLICATIONS", "volunteer_applications"),
			Content:                getEnv("DYNAMO_TABLE_CONTENT", "content"),
			Resources:              getEnv("DYNAMO_TABLE_RESOURCES", "resources"),
			Messages:               getEnv("DYNAMO_TABLE_MESSAGES", "messages"),
			Subscribers:            getEnv("DYNAMO_TABLE_SUBSCRIBERS", "subscribers"),
			Visits:                 getEnv("DYNAMO_TABLE_VISITS", "visits"),
			Users:                  getEnv("DYNAMO_TABLE_USERS", "users"),
		},

		S3BucketName:  getEnv("S3_BUCKET_NAME", "buddha-ceo-media"),
		S3PublicBase:  getEnv("S3_PUBLIC_BASE_URL", ""),
		MaxUploadSize: int64(getEnvInt("MAX_UPLOAD_SIZE_MB", 10)) << 20,

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiryHours:    getEnvInt("JWT_EXPIRY_HOURS", 24),

		OTPTTLMinutes: getEnvInt("OTP_TTL_MINUTES", 10),

		EmailProvider: getEnv("EMAIL_PROVIDER", "smtp"),
		EmailFrom:     getEnv("EMAIL_FROM", "noreply@buddhaceo.org"),
		EmailFromName: getEnv("EMAIL_FROM_NAME", "Buddha CEO Quantum Foundation"),
		SMTPHost:      getEnv("SMTP_HOST", "localhost"),
		SMTPPort:      getEnv("SMTP_PORT", "1025"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SESRegion:     getEnv("SES_REGION", "us-east-1"),

		SNSRegion:  getEnv("SNS_REGION", "us-east-1"),
		SMSEnabled: getEnv("SMS_ENABLED", "false") == "true",

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
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
