package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	ReferenceSourceMySQL    = "mysql"
	ReferenceSourceWorkbook = "workbook"
)

type Env struct {
	AppAddr string `envconfig:"APP_ADDR" default:":8080"`
	GinMode string `envconfig:"GIN_MODE"`

	DBUser     string `envconfig:"DB_USER" default:"root"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBAddr     string `envconfig:"DB_ADDR" default:"127.0.0.1:3306"`
	DBName     string `envconfig:"DB_NAME" default:"dealer_pos"`

	JWTSecret string        `envconfig:"JWT_SECRET"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	// Bootstrap admin, created on startup when the users table has no such login.
	AdminUsername string `envconfig:"ADMIN_USERNAME"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	LoginRatePerMin    int      `envconfig:"LOGIN_RATE_PER_MIN" default:"10"`

	ReferenceSource   string        `envconfig:"REFERENCE_SOURCE" default:"mysql"`
	ReferenceWorkbook string        `envconfig:"REFERENCE_WORKBOOK"`
	ReferenceCacheTTL time.Duration `envconfig:"REFERENCE_CACHE_TTL" default:"1h"`

	AccessoryTaxRateRaw string `envconfig:"ACCESSORY_TAX_RATE" default:"0.18"`
	AccessoryFirm1      InvoiceSeries `ignored:"true"`
	AccessoryFirm2      InvoiceSeries `ignored:"true"`

	// AccessoryTaxRate is parsed from AccessoryTaxRateRaw by LoadEnv.
	AccessoryTaxRate decimal.Decimal `ignored:"true"`
}

// InvoiceSeries configures one accessory firm's invoice numbering.
type InvoiceSeries struct {
	Prefix string
	Base   int64
}

// LoadEnv reads the process environment. JWT_SECRET is mandatory unless
// gin runs in debug or test mode.
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, err
	}

	var firm1, firm2 struct {
		Prefix string `envconfig:"PREFIX"`
		Base   int64  `envconfig:"BASE" default:"0"`
	}
	if err := envconfig.Process("ACCESSORY_FIRM1", &firm1); err != nil {
		return Env{}, err
	}
	if err := envconfig.Process("ACCESSORY_FIRM2", &firm2); err != nil {
		return Env{}, err
	}
	env.AccessoryFirm1 = InvoiceSeries{Prefix: orDefault(firm1.Prefix, "AF1-"), Base: firm1.Base}
	env.AccessoryFirm2 = InvoiceSeries{Prefix: orDefault(firm2.Prefix, "AF2-"), Base: firm2.Base}

	rate, err := decimal.NewFromString(strings.TrimSpace(env.AccessoryTaxRateRaw))
	if err != nil {
		return Env{}, fmt.Errorf("ACCESSORY_TAX_RATE: %w", err)
	}
	if rate.IsNegative() {
		return Env{}, errors.New("ACCESSORY_TAX_RATE must not be negative")
	}
	env.AccessoryTaxRate = rate

	env.ReferenceSource = strings.ToLower(strings.TrimSpace(env.ReferenceSource))
	switch env.ReferenceSource {
	case ReferenceSourceMySQL:
	case ReferenceSourceWorkbook:
		if strings.TrimSpace(env.ReferenceWorkbook) == "" {
			return Env{}, errors.New("REFERENCE_WORKBOOK is required when REFERENCE_SOURCE=workbook")
		}
	default:
		return Env{}, fmt.Errorf("unknown REFERENCE_SOURCE %q", env.ReferenceSource)
	}

	if env.JWTSecret == "" && env.GinMode == "release" {
		return Env{}, errors.New("JWT_SECRET must be provided in release mode")
	}
	if env.JWTSecret == "" {
		env.JWTSecret = "dev-secret-change-me"
	}
	return env, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}
