// Package rotation keeps per-vessel rotation state alive across save/load
// cycles of the host game.
//
// For every live vessel the Store tracks four values, keyed by ObjectID:
//   - Momentum: angular momentum (zero, or a small random tumble for loose
//     objects such as asteroids)
//   - Rotation: orientation quaternion
//   - Direction: unit reference direction, by default towards the main body
//   - Reference: the body or vessel the direction is anchored to
//
// # Lifecycle
//
// A Store starts uninitialized. The host calls Load then Clean at session
// start, after which the Store is ready; Generate covers vessels that
// appear later and Save runs at session end.
//
// # Persistence
//
// State is written to a config text file per save game (see PathsFor):
//
//	TIME = <universal time>
//	MOMENTUM  { <id> = x,y,z }
//	ROTATION  { <id> = x,y,z,w }
//	DIRECTION { <id> = x,y,z }
//	REFERENCE { <id> = <body name> | <vessel id> | NONE }
//
// A file whose TIME is not older than the current universal time comes
// from a future the player reverted away from; Load then falls back to the
// backup file written at the end of the previous session.
//
// # Failure model
//
// Load, Save and Clean never return errors to the host. Missing or
// unreadable files leave the defaults in place and a failed Save leaves the
// previous file untouched; every such case is logged. Only RotateBackup,
// which runs after the host has let go of the session, reports an error.
package rotation
