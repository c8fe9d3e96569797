package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`
	MaxUploadMB     int64  `envconfig:"MAX_UPLOAD_MB" default:"10"`

	// "postgres" or "memory"
	Backend     string `envconfig:"BACKEND" default:"postgres"`
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// Attachment storage, "s3" or "supabase"
	StorageDriver     string `envconfig:"STORAGE_DRIVER" default:"s3"`
	S3BucketName      string `envconfig:"S3_BUCKET_NAME"`
	S3URLTTLMin       int    `envconfig:"S3_URL_TTL_MIN" default:"10080"`
	SupabaseProjectID string `envconfig:"SUPABASE_PROJECT_ID"`
	SupabaseAPIKey    string `envconfig:"SUPABASE_API_KEY"`
	SupabaseBucket    string `envconfig:"SUPABASE_BUCKET" default:"justificatifs"`

	// Cognito Auth
	CognitoClientID  string `envconfig:"COGNITO_CLIENT_ID"`
	CognitoIssuerURL string `envconfig:"COGNITO_ISSUER_URL"`

	SessionMaxAgeSec int `envconfig:"SESSION_MAX_AGE_SEC" default:"604800"` // 7 days

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes
}
