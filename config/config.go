package config

// AppConfig holds the application configuration
type AppConfig struct {
	DBURL        string
	RedisAddress string
	// SymmetricKey signs session tokens; must be 32 bytes.
	SymmetricKey string
	// UploadDir is where lab-report files land; served under /uploads.
	UploadDir string
	// AllowLegacyPlaintext gates verification of unhashed stored credentials.
	// Migration aid only; accounts are re-hashed on first successful login.
	AllowLegacyPlaintext bool
}

// GetUploadDir returns the upload directory from the config
func (c *AppConfig) GetUploadDir() string {
	return c.UploadDir
}
