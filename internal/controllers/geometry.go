package controllers

import (
	"encoding/binary"
	"errors"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

var errNotLineString = errors.New("route path must be a LineString")

// parseRoutePath parses a GeoJSON LineString into WKB. An empty string yields nil.
func parseRoutePath(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	var g geom.T
	if err := gjson.Unmarshal([]byte(raw), &g); err != nil {
		return nil, err
	}
	line, ok := g.(*geom.LineString)
	if !ok {
		return nil, errNotLineString
	}
	if line.NumCoords() < 2 {
		return nil, errors.New("route path needs at least two points")
	}
	return wkb.Marshal(line, binary.LittleEndian)
}

// routePathGeoJSON converts stored WKB back into a GeoJSON string.
func routePathGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
