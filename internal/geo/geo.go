package geo

import (
	"math"

	"github.com/KaramelBytes/tabloom-cli/internal/table"
)

// earthRadiusKM is the mean Earth radius used by the haversine formula.
const earthRadiusKM = 6371.0

// DefaultThresholdKM is the default suspect distance threshold.
const DefaultThresholdKM = 25.0

// Suspect is one flagged row with its distance from the dataset centroid.
type Suspect struct {
	RowIndex   int     `json:"row_index"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	DistanceKM float64 `json:"distance_km"`
}

// Result summarizes suspect extraction over one table. Count covers rows with
// valid coordinates only; rows with missing, unparseable, or out-of-range
// coordinates are excluded from both numerator and denominator.
type Result struct {
	Count        int       `json:"count"`
	NormalCount  int       `json:"normal_count"`
	SuspectCount int       `json:"suspect_count"`
	ThresholdKM  float64   `json:"threshold_km"`
	CentroidLat  float64   `json:"centroid_lat"`
	CentroidLon  float64   `json:"centroid_lon"`
	Suspects     []Suspect `json:"suspects"`
}

type coord struct {
	row      int
	lat, lon float64
}

// ExtractSuspects flags coordinate pairs whose great-circle distance from the
// dataset centroid exceeds thresholdKM. A row exactly at the threshold is
// normal.
func ExtractSuspects(t *table.Table, latCol, lonCol string, thresholdKM float64) (*Result, error) {
	lats, err := t.Column(latCol)
	if err != nil {
		return nil, err
	}
	lons, err := t.Column(lonCol)
	if err != nil {
		return nil, err
	}

	var valid []coord
	var sumLat, sumLon float64
	for i := range lats.Cells {
		lat, okLat := lats.Cells[i].Float()
		lon, okLon := lons.Cells[i].Float()
		if !okLat || !okLon || !inRange(lat, lon) {
			continue
		}
		valid = append(valid, coord{row: i, lat: lat, lon: lon})
		sumLat += lat
		sumLon += lon
	}

	res := &Result{ThresholdKM: thresholdKM, Suspects: []Suspect{}}
	if len(valid) == 0 {
		return res, nil
	}
	res.Count = len(valid)
	res.CentroidLat = sumLat / float64(len(valid))
	res.CentroidLon = sumLon / float64(len(valid))

	for _, c := range valid {
		d := HaversineKM(res.CentroidLat, res.CentroidLon, c.lat, c.lon)
		if d > thresholdKM {
			res.SuspectCount++
			res.Suspects = append(res.Suspects, Suspect{RowIndex: c.row, Lat: c.lat, Lon: c.lon, DistanceKM: d})
		} else {
			res.NormalCount++
		}
	}
	return res, nil
}

func inRange(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// HaversineKM computes the great-circle distance between two coordinates.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lon1r := lon1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	lon2r := lon2 * math.Pi / 180

	dlat := lat2r - lat1r
	dlon := lon2r - lon1r
	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}
