package config

import (
	"strings"
	"testing"
)

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("GIN_MODE", "test")
	t.Setenv("JWT_SECRET", "")

	env, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if env.AppAddr != ":8080" {
		t.Fatalf("AppAddr = %q", env.AppAddr)
	}
	if env.ReferenceSource != ReferenceSourceMySQL {
		t.Fatalf("ReferenceSource = %q", env.ReferenceSource)
	}
	if env.AccessoryTaxRate.String() != "0.18" {
		t.Fatalf("AccessoryTaxRate = %s", env.AccessoryTaxRate)
	}
	if env.AccessoryFirm1.Prefix != "AF1-" || env.AccessoryFirm2.Prefix != "AF2-" {
		t.Fatalf("unexpected prefixes %+v %+v", env.AccessoryFirm1, env.AccessoryFirm2)
	}
	if env.JWTSecret == "" {
		t.Fatalf("dev secret should be filled outside release mode")
	}
}

func TestLoadEnvInvoiceSeries(t *testing.T) {
	t.Setenv("ACCESSORY_FIRM1_PREFIX", "SA/")
	t.Setenv("ACCESSORY_FIRM1_BASE", "1200")
	t.Setenv("ACCESSORY_FIRM2_BASE", "50")

	env, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if env.AccessoryFirm1.Prefix != "SA/" || env.AccessoryFirm1.Base != 1200 {
		t.Fatalf("firm1 = %+v", env.AccessoryFirm1)
	}
	if env.AccessoryFirm2.Base != 50 {
		t.Fatalf("firm2 = %+v", env.AccessoryFirm2)
	}
}

func TestLoadEnvRejectsBadValues(t *testing.T) {
	cases := map[string]map[string]string{
		"negative tax":      {"ACCESSORY_TAX_RATE": "-0.1"},
		"garbage tax":       {"ACCESSORY_TAX_RATE": "abc"},
		"unknown source":    {"REFERENCE_SOURCE": "sheets"},
		"workbook no path":  {"REFERENCE_SOURCE": "workbook", "REFERENCE_WORKBOOK": ""},
		"release no secret": {"GIN_MODE": "release", "JWT_SECRET": ""},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range vars {
				t.Setenv(k, v)
			}
			if _, err := LoadEnv(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestDSN(t *testing.T) {
	dsn := DSN(Env{DBUser: "pos", DBPassword: "pw", DBAddr: "db:3306", DBName: "dealer_pos"})
	if !strings.HasPrefix(dsn, "pos:pw@tcp(db:3306)/dealer_pos?") {
		t.Fatalf("unexpected dsn %q", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Fatalf("dsn missing parseTime: %q", dsn)
	}
}
