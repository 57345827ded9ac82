// SPDX-License-Identifier: ISC

package fault

import (
	"github.com/bitmark-inc/logger"
)

// hold a logger channel
var log *logger.L

// setup a log channel for last attempt to log something
func Initialise() error {
	if nil != log {
		return ErrAlreadyInitialised
	}
	log = logger.New("PANIC")
	if nil == log {
		return ErrInvalidLoggerChannel
	}
	return nil
}

// flush any data
func Finalise() {
	if nil != log {
		log.Flush()
	}
}
