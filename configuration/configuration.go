// SPDX-License-Identifier: ISC

// Package configuration loads the elpp-gateway configuration file: the
// ELPP port, the API pools and expected chain hash per chain, and the
// timeouts and log levels controlling the rest of the process.
package configuration

import (
	"encoding/json"
	"os"
	"time"

	"github.com/bitmark-inc/elpp-gateway/constants"
	"github.com/bitmark-inc/logger"
)

// basic defaults, mirroring field-level defaults the way bitmarkd's own
// configuration package declares them.
const (
	defaultELPPPort        = constants.DefaultELPPPort
	defaultPurgeAge        = constants.TrxRecordTimeout
	defaultIngressTimeout  = constants.IngressRequestTimeout
	defaultOutboundTimeout = constants.OutboundHTTPTimeout

	defaultLogDirectory = "log"
	defaultLogFile      = "elpp-gateway.log"
	defaultLogSize      = 1024 * 1024
	defaultLogCount     = 10
)

var defaultLogLevels = LoglevelMap{
	"main":            "info",
	"ingress":         "info",
	"reassembler":     "info",
	"tapos":           "info",
	"dispatch":        "info",
	logger.DefaultTag: "critical",
}

// LoglevelMap - per-channel log level, passed straight to
// logger.LoadLevels.
type LoglevelMap map[string]string

// ApiHost - one blockchain API host entry as read from the
// configuration file.
type ApiHost struct {
	Method string `json:"method"`
	Host   string `json:"host"`
}

// ChainConfig - one chain's expected identity and API pool. ID is the
// small numeric chain id devices embed in TAPOS/TAPOS-request fragments;
// Name (the map key in Configuration.Chains) is what the rest of the
// gateway - the TAPOS manager and dispatch queues - calls the chain.
type ChainConfig struct {
	ID                uint32    `json:"id"`
	ExpectedChainHash string    `json:"expected_chain_hash"`
	ApiPool           []ApiHost `json:"api_pool"`
}

// Configuration - the gateway's full configuration, as read from a JSON
// file on disk.
type Configuration struct {
	ELPPPort int `json:"elpp_port"`

	Listen string `json:"listen"`

	PurgeAge               time.Duration `json:"-"`
	PurgeAgeSeconds        int           `json:"purge_age_seconds"`
	IngressTimeout         time.Duration `json:"-"`
	IngressTimeoutSeconds  int           `json:"ingress_timeout_seconds"`
	OutboundTimeout        time.Duration `json:"-"`
	OutboundTimeoutSeconds int           `json:"outbound_timeout_seconds"`

	Chains map[string]ChainConfig `json:"chains"`

	Logging struct {
		Directory string      `json:"directory"`
		File      string      `json:"file"`
		Size      int         `json:"size"`
		Count     int         `json:"count"`
		Levels    LoglevelMap `json:"levels"`
	} `json:"logging"`
}

// defaults - a Configuration with every field-level default filled in,
// before the file on disk overrides them.
func defaults() *Configuration {
	c := &Configuration{
		ELPPPort:               defaultELPPPort,
		PurgeAgeSeconds:        int(defaultPurgeAge / time.Second),
		IngressTimeoutSeconds:  int(defaultIngressTimeout / time.Second),
		OutboundTimeoutSeconds: int(defaultOutboundTimeout / time.Second),
		Chains:                 make(map[string]ChainConfig),
	}
	c.Logging.Directory = defaultLogDirectory
	c.Logging.File = defaultLogFile
	c.Logging.Size = defaultLogSize
	c.Logging.Count = defaultLogCount
	c.Logging.Levels = defaultLogLevels
	return c
}

// ParseOptions - read and validate the configuration file at path,
// applying field-level defaults for anything left unset.
func ParseOptions(path string) (*Configuration, error) {
	c := defaults()

	data, err := os.ReadFile(path)
	if nil != err {
		return nil, err
	}
	if err := json.Unmarshal(data, c); nil != err {
		return nil, err
	}

	if 0 == c.ELPPPort {
		c.ELPPPort = defaultELPPPort
	}
	if 0 == c.PurgeAgeSeconds {
		c.PurgeAgeSeconds = int(defaultPurgeAge / time.Second)
	}
	if 0 == c.IngressTimeoutSeconds {
		c.IngressTimeoutSeconds = int(defaultIngressTimeout / time.Second)
	}
	if 0 == c.OutboundTimeoutSeconds {
		c.OutboundTimeoutSeconds = int(defaultOutboundTimeout / time.Second)
	}
	if 0 == len(c.Logging.Levels) {
		c.Logging.Levels = defaultLogLevels
	}
	if "" == c.Logging.Directory {
		c.Logging.Directory = defaultLogDirectory
	}
	if "" == c.Logging.File {
		c.Logging.File = defaultLogFile
	}
	if 0 == c.Logging.Size {
		c.Logging.Size = defaultLogSize
	}
	if 0 == c.Logging.Count {
		c.Logging.Count = defaultLogCount
	}

	c.PurgeAge = time.Duration(c.PurgeAgeSeconds) * time.Second
	c.IngressTimeout = time.Duration(c.IngressTimeoutSeconds) * time.Second
	c.OutboundTimeout = time.Duration(c.OutboundTimeoutSeconds) * time.Second

	return c, nil
}

// ChainNames - the configured chain names, in no particular order.
func (c *Configuration) ChainNames() []string {
	names := make([]string, 0, len(c.Chains))
	for name := range c.Chains {
		names = append(names, name)
	}
	return names
}

// ChainIDNames - a lookup from the numeric chain id devices embed in
// their wire fragments to the chain name used everywhere else in the
// gateway (the TAPOS manager, the dispatch queues).
func (c *Configuration) ChainIDNames() map[uint32]string {
	out := make(map[uint32]string, len(c.Chains))
	for name, chain := range c.Chains {
		out[chain.ID] = name
	}
	return out
}
