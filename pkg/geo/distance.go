// Package geo содержит расчёт расстояния между географическими координатами.
package geo

import (
	"math"
)

// Unit единица измерения расстояния
type Unit string

const (
	UnitKilometers Unit = "km"
	UnitMiles      Unit = "mi"
)

// Радиусы Земли по IUGG
const (
	earthRadiusKm = 6371.0088
	earthRadiusMi = 3958.7613
)

// Distance возвращает расстояние по большому кругу между двумя точками
// (формула хаверсинуса), округлённое до одного знака после запятой
func Distance(lat1, lng1, lat2, lng2 float64, unit Unit) float64 {
	if lat1 == lat2 && lng1 == lng2 {
		return 0
	}

	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	radius := earthRadiusKm
	if unit == UnitMiles {
		radius = earthRadiusMi
	}

	return math.Round(radius*c*10) / 10
}
