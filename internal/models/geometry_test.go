package models

import (
	"database/sql/driver"
	"encoding/json"
	"testing"
)

// TestPointImplementsInterfaces verifies Point implements the database interfaces
func TestPointImplementsInterfaces(t *testing.T) {
	var _ driver.Valuer = Point{}

	var p Point
	var scanner interface{} = &p
	if _, ok := scanner.(interface{ Scan(interface{}) error }); !ok {
		t.Error("Point does not implement sql.Scanner interface")
	}
}

// TestPointValue tests the Value method (writing to database)
func TestPointValue(t *testing.T) {
	p := Point{Lat: 40.71659, Lng: -96.61799}

	val, err := p.Value()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var geom struct {
		Type        string     `json:"type"`
		Coordinates [2]float64 `json:"coordinates"`
	}
	if err := json.Unmarshal([]byte(val.(string)), &geom); err != nil {
		t.Fatalf("Value() did not return valid JSON: %v", err)
	}
	if geom.Type != "Point" {
		t.Errorf("expected type=Point, got %v", geom.Type)
	}
	// GeoJSON order is [lng, lat]
	if geom.Coordinates[0] != -96.61799 || geom.Coordinates[1] != 40.71659 {
		t.Errorf("unexpected coordinates %v", geom.Coordinates)
	}
}

// TestPointScan tests the Scan method (reading from database)
func TestPointScan(t *testing.T) {
	tests := []struct {
		name      string
		input     interface{}
		want      Point
		wantError bool
	}{
		{
			name:  "nil value",
			input: nil,
		},
		{
			name:  "GeoJSON bytes",
			input: []byte(`{"type":"Point","coordinates":[-71.0589,42.3601]}`),
			want:  Point{Lat: 42.3601, Lng: -71.0589},
		},
		{
			name:  "GeoJSON string",
			input: `{"type":"Point","coordinates":[-122.6789,45.5155]}`,
			want:  Point{Lat: 45.5155, Lng: -122.6789},
		},
		{
			name:      "invalid JSON",
			input:     []byte(`{invalid}`),
			wantError: true,
		},
		{
			name:      "wrong type",
			input:     []byte(`{"type":"Polygon","coordinates":[]}`),
			wantError: true,
		},
		{
			name:      "unsupported input type",
			input:     42,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Point
			err := p.Scan(tt.input)

			if tt.wantError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.wantError && p != tt.want {
				t.Errorf("got %+v, want %+v", p, tt.want)
			}
		})
	}
}

func TestPointValid(t *testing.T) {
	if !(Point{Lat: 90, Lng: -180}).Valid() {
		t.Error("expected boundary point to be valid")
	}
	if (Point{Lat: 91, Lng: 0}).Valid() {
		t.Error("expected latitude 91 to be invalid")
	}
	if !(Point{}).IsZero() {
		t.Error("expected zero point")
	}
}
