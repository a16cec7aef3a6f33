// Package logging builds the slog loggers used by iotfwd and owns the
// two-phase logging lifecycle of a run.
//
// A Facility is an explicit handle rather than process-wide state: the
// caller starts it in the bootstrap phase before configuration is known,
// stops it once configuration is loaded, and starts it again in the
// configured phase. Only one phase can be active at a time and Stop releases
// every sink (including the optional JSON log file) so a restart never emits
// records twice.
//
// Records are rendered by a console handler (or slog's JSON handler) and
// stamped with a per-run identifier. LevelCritical extends slog's levels for
// failures that end a command.
package logging
