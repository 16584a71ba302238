// Package storage defines the persistence interfaces for the game
// service.
//
// Sessions live in memory while they run; what persists is the ordered
// event journal of every committed action, which is enough to audit or
// replay a finished game. Implementations (e.g. using bbolt) live in
// subpackages.
package storage
