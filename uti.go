package saferoute

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

// manhattanCenter is the fixed reference point (Times Square, roughly) that
// every distance-from-center sub-score in the UTI field measures against.
var manhattanCenter = Coord{Lat: 40.7589, Lng: -73.9851}

// utiFeatureWeights are the fixed weights the UTI scalar score's base term
// dot-products against the feature vector, in the fixed order documented on
// UTIFeatures.
var utiFeatureWeights = []float64{0.30, 0.20, 0.10, 0.05, 0.15, 0.10, 0.05, 0.03, 0.01, 0.01}

// UTIFeatures is the length-10 feature vector the UTI field decomposes a
// (lat, lng, timestamp) query into, in the fixed order required by spec.md
// §4.1.
type UTIFeatures struct {
	HistoricalCrimeRate float64
	TimeOfDay           float64
	DayOfWeek           float64
	WeatherCondition    float64
	FootTrafficDensity  float64
	LightingQuality     float64
	TransitDistance     float64
	SocioeconomicIndex  float64
	EventDensity        float64
	PolicePresence      float64
}

// slice returns the feature vector in fixed order for the weighted dot
// product in UTI.
func (f UTIFeatures) slice() []float64 {
	return []float64{
		f.HistoricalCrimeRate, f.TimeOfDay, f.DayOfWeek, f.WeatherCondition,
		f.FootTrafficDensity, f.LightingQuality, f.TransitDistance,
		f.SocioeconomicIndex, f.EventDensity, f.PolicePresence,
	}
}

// ComputeUTIFeatures is the pure, deterministic feature extraction step of
// the UTI field. It reads no clock and no global state: every input is an
// explicit argument. Calling it twice with the same (lat, lng, t) always
// returns the same result (spec.md §8 invariant 8, "UTI purity").
func ComputeUTIFeatures(lat, lng float64, t time.Time) UTIFeatures {
	here := Coord{Lat: lat, Lng: lng}
	dCenter := planarDistance(here, manhattanCenter)

	hour := t.Hour()
	weekday := int(t.Weekday()) // Sunday=0 ... Saturday=6, matches "weekday/6"
	isWeekend := weekday == 0 || weekday == 6
	dayOfYear := t.YearDay()

	historical := math.Min(1, 10*dCenter) + coordHash(lat, lng, 4)/200
	historical = clamp01(historical)

	timeOfDay := float64(hour) / 24
	dayOfWeek := float64(weekday) / 6
	weather := 0.5 + 0.3*math.Sin(2*math.Pi*float64(dayOfYear)/365)

	footTraffic := footTrafficBaseByHour(hour) * math.Max(0.1, 1-5*dCenter)

	var lighting float64
	if hour >= 6 && hour <= 18 {
		lighting = 1.0
	} else {
		lighting = 0.3 + coordHash(lat, lng, 4)/200
	}

	transitDistance := coordHash(lat, lng, 2) / 100

	socioeconomic := math.Max(0.2, 1-3*dCenter) + coordHash(lat, lng, 2)/200
	socioeconomic = clamp01(socioeconomic)

	eventMultiplier := 1.0
	if isWeekend {
		eventMultiplier = 1.5
	}
	eventDensity := clamp01(coordHash(lat, lng, 2) / 300 * eventMultiplier)

	var policeBase float64
	if hour >= 8 && hour <= 20 {
		policeBase = 0.8
	} else {
		policeBase = 0.4
	}
	police := policeBase * math.Max(0.3, 1-2*dCenter)

	return UTIFeatures{
		HistoricalCrimeRate: historical,
		TimeOfDay:           timeOfDay,
		DayOfWeek:           dayOfWeek,
		WeatherCondition:    weather,
		FootTrafficDensity:  footTraffic,
		LightingQuality:     lighting,
		TransitDistance:     transitDistance,
		SocioeconomicIndex:  socioeconomic,
		EventDensity:        eventDensity,
		PolicePresence:      police,
	}
}

// footTrafficBaseByHour buckets the day into rush/business/evening/night
// windows per spec.md §4.1's named base values. The exact hour boundaries
// are an implementation decision (spec.md names the buckets, not their
// edges); see DESIGN.md.
func footTrafficBaseByHour(hour int) float64 {
	switch {
	case (hour >= 7 && hour <= 9) || (hour >= 16 && hour <= 19):
		return 0.8 // rush
	case hour >= 10 && hour <= 15:
		return 0.6 // business
	case hour >= 20 && hour <= 21:
		return 0.4 // evening
	default:
		return 0.1 // night
	}
}

// UTI computes the scalar Urban Threat Index in [0,1] for (lat, lng) at
// time t, combining the feature vector's weighted base score with temporal
// and spatial multipliers. Deterministic and side-effect free.
func UTI(lat, lng float64, t time.Time) float64 {
	features := ComputeUTIFeatures(lat, lng, t)
	base := floats.Dot(features.slice(), utiFeatureWeights)

	temporal := temporalMultiplier(t.Hour())
	spatial := spatialMultiplier(planarDistance(Coord{Lat: lat, Lng: lng}, manhattanCenter))

	return math.Min(1, base*temporal*spatial)
}

func temporalMultiplier(hour int) float64 {
	switch {
	case hour >= 22 || hour <= 5:
		return 1.4 // night
	case hour >= 18 && hour <= 21:
		return 1.2 // evening
	case hour >= 6 && hour <= 8:
		return 1.1 // early
	default:
		return 1.0
	}
}

func spatialMultiplier(dCenter float64) float64 {
	switch {
	case dCenter > 0.1:
		return 1.3
	case dCenter > 0.05:
		return 1.1
	default:
		return 1.0
	}
}
