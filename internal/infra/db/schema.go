package db

import _ "embed"

// Schema is the DDL for the core tables, embedded so test harnesses can
// bootstrap a database without reaching outside the module.
//
//go:embed schema.sql
var Schema string
