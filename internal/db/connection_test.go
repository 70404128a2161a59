package db

import (
	"path/filepath"
	"testing"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		driver string
		query  string
		want   string
	}{
		{DriverPostgres, "SELECT * FROM runs WHERE id = ? AND source = ?", "SELECT * FROM runs WHERE id = $1 AND source = $2"},
		{DriverSQLite, "SELECT * FROM runs WHERE id = ?", "SELECT * FROM runs WHERE id = ?"},
		{DriverPostgres, "SELECT 1", "SELECT 1"},
	}
	for _, tt := range tests {
		if got := Rebind(tt.driver, tt.query); got != tt.want {
			t.Errorf("Rebind(%q, %q) = %q, want %q", tt.driver, tt.query, got, tt.want)
		}
	}
}

func TestOpenSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	conn, err := Open(DriverSQLite, path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	if conn.Driver != DriverSQLite {
		t.Errorf("Driver = %q", conn.Driver)
	}
	var one int
	if err := conn.DB.QueryRow(conn.Rebind("SELECT ?"), 1).Scan(&one); err != nil || one != 1 {
		t.Errorf("SELECT ? = %d, %v", one, err)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open("mysql", "x"); err == nil {
		t.Errorf("Open() accepted unknown driver")
	}
}
