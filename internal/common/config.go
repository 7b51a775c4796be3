package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	OCR     OCRConfig
	Invoice InvoiceConfig
	Output  OutputConfig
}

// OCRConfig holds the settings for the rasterize-and-recognize fallback.
type OCRConfig struct {
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Lang     string // default "eng"
	DPI      int    // rasterization DPI, default 300
	MaxPages int    // 0 = no limit

	// Timeout bounds the whole render+recognize stage; it is the only
	// unbounded-cost step in the pipeline.
	Timeout time.Duration
}

// InvoiceConfig holds voucher-level defaults used when building prompts.
type InvoiceConfig struct {
	CompanyName      string
	DefaultVehicleNo string
	DefaultPartyCode string
	ItemMasterDB     string // sqlite path; empty -> built-in seed entries
}

// OutputConfig holds artifact output settings.
type OutputConfig struct {
	Dir string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Pdftoppm:  getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract: getEnv("TESSERACT_BIN", "tesseract"),
			Lang:      getEnv("OCR_LANG", "eng"),
			DPI:       getEnvAsInt("OCR_DPI", 300),
			MaxPages:  getEnvAsInt("OCR_MAX_PAGES", 0),
			Timeout:   getEnvAsDuration("OCR_TIMEOUT", 2*time.Minute),
		},
		Invoice: InvoiceConfig{
			CompanyName:      getEnv("COMPANY_NAME", "TAFE Motors"),
			DefaultVehicleNo: getEnv("DEFAULT_VEHICLE_NO", "TN13AH0050"),
			DefaultPartyCode: getEnv("DEFAULT_PARTY_CODE", "TAFEMDU"),
			ItemMasterDB:     getEnv("ITEM_MASTER_DB", ""),
		},
		Output: OutputConfig{
			Dir: getEnv("OUTPUT_DIR", "output"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.OCR.DPI <= 0 {
		return NewAppError("CONFIG_ERROR", "OCR_DPI must be positive", ErrInvalidInput)
	}
	if c.Output.Dir == "" {
		return NewAppError("CONFIG_ERROR", "OUTPUT_DIR is required", ErrInvalidInput)
	}
	return nil
}
