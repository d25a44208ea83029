// Package units fixes the single unit convention used across lvshield and
// converts foreign units into it at the input boundary.
//
// Internal convention:
//
//	length            millimetre   (mm)
//	volume            cubic mm     (mm³)
//	mass              kilogram     (kg)
//	density           kg per m³    (kg/m³)
//	time              second       (s)
//	specific activity Bq per kg    (Bq/kg)
//
// Every float64 that crosses a package boundary inside lvshield is already
// expressed in these units. Only the command front end and the config loader
// call the Parse* helpers; algorithms never rescale.
package units
