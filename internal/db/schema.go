package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Ledger and bookkeeping tables.
const (
	TableSalesRecords = "sales_records"
	TableSequences    = "document_sequences"
	TableUsers        = "users"
)

// Reference tables, one per form list.
const (
	TableSalesStaff        = "sales_staff"
	TableFinanceExecutives = "finance_executives"
	TableFinanciers        = "financiers"
	TablePriceList         = "price_list"
	TableVehicleColors     = "vehicle_colors"
	TableAccessoryBOM      = "accessory_bom"
	TableFirmMaster        = "firm_master"
)

func bomColumns() string {
	var b strings.Builder
	for i := 1; i <= 10; i++ {
		n := strconv.Itoa(i)
		fmt.Fprintf(&b, "\n\tacc%s_name VARCHAR(120) NULL,\n\tacc%s_price VARCHAR(32) NULL,", n, n)
	}
	return b.String()
}

// schemaStatements are idempotent; MySQL runs one statement per Exec.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS sales_records (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	timestamp DATETIME NOT NULL,
	dc_number VARCHAR(16) NOT NULL,
	staff VARCHAR(120) NOT NULL DEFAULT '',
	financier VARCHAR(120) NOT NULL DEFAULT '',
	finance_executive VARCHAR(120) NOT NULL DEFAULT '',
	banker_name VARCHAR(120) NOT NULL DEFAULT '',
	sale_type VARCHAR(16) NOT NULL,
	customer_name VARCHAR(160) NOT NULL,
	customer_phone VARCHAR(32) NOT NULL,
	customer_place VARCHAR(160) NOT NULL DEFAULT '',
	model VARCHAR(120) NOT NULL,
	variant VARCHAR(120) NOT NULL,
	paint_color VARCHAR(80) NOT NULL DEFAULT '',
	orp DECIMAL(14,2) NOT NULL,
	listed_total DECIMAL(14,2) NOT NULL,
	final_cost DECIMAL(14,2) NOT NULL,
	discount DECIMAL(14,2) NOT NULL,
	hp_fee DECIMAL(14,2) NOT NULL DEFAULT 0,
	incentive DECIMAL(14,2) NOT NULL DEFAULT 0,
	booking_amount DECIMAL(14,2) NOT NULL DEFAULT 0,
	down_payment DECIMAL(14,2) NOT NULL DEFAULT 0,
	financed_amount DECIMAL(14,2) NOT NULL DEFAULT 0,
	accessory_invoice_1 BIGINT NOT NULL DEFAULT 0,
	accessory_invoice_2 BIGINT NOT NULL DEFAULT 0,
	KEY idx_sales_records_dc (dc_number)
)`,
	`CREATE TABLE IF NOT EXISTS document_sequences (
	series VARCHAR(32) PRIMARY KEY,
	last_value BIGINT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(120) NOT NULL,
	username VARCHAR(64) NOT NULL UNIQUE,
	password_hash VARCHAR(100) NOT NULL,
	role VARCHAR(16) NOT NULL DEFAULT 'sales',
	status VARCHAR(16) NOT NULL DEFAULT 'active',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE TABLE IF NOT EXISTS sales_staff (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	executive_name VARCHAR(120) NOT NULL UNIQUE
)`,
	`CREATE TABLE IF NOT EXISTS finance_executives (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	finance_executive VARCHAR(120) NOT NULL UNIQUE
)`,
	`CREATE TABLE IF NOT EXISTS financiers (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	finance_company VARCHAR(120) NOT NULL UNIQUE,
	incentive_type VARCHAR(32) NULL,
	incentive_value VARCHAR(32) NULL
)`,
	`CREATE TABLE IF NOT EXISTS price_list (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	model VARCHAR(120) NOT NULL,
	variant VARCHAR(120) NOT NULL,
	orp VARCHAR(32) NOT NULL,
	final_price VARCHAR(32) NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS vehicle_colors (
	model VARCHAR(120) PRIMARY KEY,
	color_list VARCHAR(512) NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS accessory_bom (
	model VARCHAR(120) PRIMARY KEY,` + bomColumns() + `
	updated_at DATETIME NULL
)`,
	`CREATE TABLE IF NOT EXISTS firm_master (
	firm_id INT PRIMARY KEY,
	name VARCHAR(160) NOT NULL,
	address VARCHAR(255) NOT NULL DEFAULT '',
	gstin VARCHAR(20) NOT NULL DEFAULT '',
	phone VARCHAR(32) NOT NULL DEFAULT ''
)`,
}

// EnsureSchema creates any missing table.
func EnsureSchema(ctx context.Context, conn *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// RequiredTables lists every table the service reads or writes.
func RequiredTables() []string {
	return []string{
		TableSalesRecords, TableSequences, TableUsers,
		TableSalesStaff, TableFinanceExecutives, TableFinanciers,
		TablePriceList, TableVehicleColors, TableAccessoryBOM, TableFirmMaster,
	}
}
