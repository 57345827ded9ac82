// SPDX-License-Identifier: ISC

package constants

import (
	"time"
)

// fragment record purge age - a record not completed within this window is
// dropped the next time its owning device is touched
const (
	TrxRecordTimeout = 300 * time.Second
)

// API-pool quarantine thresholds
const (
	ErrorsMax = 5
	CheckMax  = 10
)

// TAPOS manager retry jitter bounds
const (
	TaposSuccessIntervalMin = 5 * time.Minute
	TaposSuccessIntervalMax = 10 * time.Minute
	TaposErrorIntervalMin   = 10 * time.Second
	TaposErrorIntervalMax   = 30 * time.Second
)

// HTTP timeouts
const (
	IngressRequestTimeout = 30 * time.Second
	OutboundHTTPTimeout   = 20 * time.Second
)

// default ELPP port: an uplink's port field must equal this
const (
	DefaultELPPPort = 8
)
