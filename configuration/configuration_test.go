// SPDX-License-Identifier: ISC

package configuration_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/elpp-gateway/configuration"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "elpp-gateway.json")
	if err := os.WriteFile(path, []byte(contents), 0600); nil != err {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

func TestParseOptionsAppliesDefaults(t *testing.T) {
	path := writeTempConfig(t, `{"listen": "0.0.0.0:8545"}`)

	c, err := configuration.ParseOptions(path)
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	if 8 != c.ELPPPort {
		t.Errorf("expected default elpp port 8, got %d", c.ELPPPort)
	}
	if 300*time.Second != c.PurgeAge {
		t.Errorf("expected default purge age 300s, got %v", c.PurgeAge)
	}
	if "0.0.0.0:8545" != c.Listen {
		t.Errorf("expected listen to be read from file, got %q", c.Listen)
	}
}

func TestParseOptionsReadsChains(t *testing.T) {
	path := writeTempConfig(t, `{
		"chains": {
			"telos": {
				"expected_chain_hash": "4667b205c6838ef70ff7988f6e8257e8be0e1284a2f59699054a018f743b1d0",
				"api_pool": [
					{"method": "http://", "host": "mainnet.telos.net"},
					{"method": "http://", "host": "telos.caleos.io"}
				]
			}
		}
	}`)

	c, err := configuration.ParseOptions(path)
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	chain, ok := c.Chains["telos"]
	if !ok {
		t.Fatalf("expected a telos chain entry")
	}
	if 2 != len(chain.ApiPool) {
		t.Errorf("expected 2 api pool hosts, got %d", len(chain.ApiPool))
	}
}

func TestParseOptionsMissingFile(t *testing.T) {
	if _, err := configuration.ParseOptions("/nonexistent/elpp-gateway.json"); nil == err {
		t.Errorf("expected an error for a missing file")
	}
}
