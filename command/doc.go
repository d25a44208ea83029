// Package command is the textual front end of the engine. Each command is
// an entry in a fixed table: a name, its argument count bounds and a typed
// handler. Tokens are parsed and unit-converted here, so the engine only
// ever receives typed values in its internal units.
//
//	/shield/layer/thickness Cu1 5 mm
//	/shield/cavity/halfY 1 cm
//	/shield/time 1 d
//	/shield/decays/compute Cu1 0.1
//	/run/beamOn
//
// Malformed input (unknown command, wrong token count, unparsable number,
// unknown unit) is rejected with ErrUnknownCommand or ErrBadArguments and
// never reaches the engine.
package command
