// Package logging provides leveled logging for the media scan service.
//
// The active level is read once from the environment: LOG_LEVEL selects
// debug, info, warn or error, and DEBUG=true forces debug regardless.
// Messages below the active level are discarded.
package logging
