package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"gorm.io/gorm"

	"senior_dispatch/internal/repository"
)

func TestRoutePathRoundTrip(t *testing.T) {
	raw := `{"type":"LineString","coordinates":[[126.97,37.56],[127.01,37.58]]}`

	wkbBytes, err := parseRoutePath(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(wkbBytes) == 0 {
		t.Fatal("parse returned no WKB")
	}

	back, err := routePathGeoJSON(wkbBytes)
	if err != nil {
		t.Fatalf("convert back: %v", err)
	}
	if !strings.Contains(back, `"LineString"`) || !strings.Contains(back, "127.01") {
		t.Fatalf("geojson = %s", back)
	}
}

func TestRoutePathRejects(t *testing.T) {
	for name, raw := range map[string]string{
		"point":        `{"type":"Point","coordinates":[126.97,37.56]}`,
		"single point": `{"type":"LineString","coordinates":[[126.97,37.56]]}`,
		"not json":     `LINESTRING(0 0, 1 1)`,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := parseRoutePath(raw); err == nil {
				t.Fatalf("parseRoutePath(%s) succeeded", raw)
			}
		})
	}

	if b, err := parseRoutePath(""); err != nil || b != nil {
		t.Fatalf("empty path = %v, %v; want nil, nil", b, err)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{repository.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("update driver 3: %w", repository.ErrNotFound), http.StatusNotFound},
		{repository.ErrDriverInUse, http.StatusConflict},
		{repository.ErrBoardingOrderTaken, http.StatusConflict},
		{fmt.Errorf("create driver: %w", gorm.ErrDuplicatedKey), http.StatusConflict},
		{repository.ErrEmptyDriverChain, http.StatusBadRequest},
		{fmt.Errorf("slot 0: %w 4", repository.ErrVehicleOutOfService), http.StatusBadRequest},
		{fmt.Errorf("%w: route name is required", repository.ErrInvalidInput), http.StatusBadRequest},
		{repository.ErrInvalidDate, http.StatusBadRequest},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
