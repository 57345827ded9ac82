// SPDX-License-Identifier: ISC

package tapos

import (
	"github.com/bitmark-inc/elpp-gateway/background"
	"github.com/bitmark-inc/elpp-gateway/fault"
)

// Manager - the set of per-chain TAPOS states this gateway maintains,
// and the background processes that keep them fresh.
type Manager struct {
	chains map[string]*ChainState
}

// NewManager - a manager over the given chains. Each key is the chain
// name used in configuration and in the ingress/dispatch chain lookups.
func NewManager(chains map[string]*ChainState) *Manager {
	return &Manager{chains: chains}
}

// Processes - one background.Process per chain, ready to be started
// together with background.Start.
func (m *Manager) Processes() background.Processes {
	processes := make(background.Processes, 0, len(m.chains))
	for chain, state := range m.chains {
		processes = append(processes, newChainLoop(chain, state))
	}
	return processes
}

// Chain - the TAPOS state for chain, or an error if the chain is not
// configured.
func (m *Manager) Chain(chain string) (*ChainState, error) {
	s, ok := m.chains[chain]
	if !ok {
		return nil, fault.ErrUnknownChain
	}
	return s, nil
}

// UpdatePool - replace chain's API pool, e.g. after a configuration file
// reload.
func (m *Manager) UpdatePool(chain string, pool []*ApiPoolEntry) error {
	s, err := m.Chain(chain)
	if nil != err {
		return err
	}
	s.SetPool(pool)
	return nil
}

// Snapshot - a JSON-friendly view of one chain's TAPOS state, for the
// introspection endpoint.
type Snapshot struct {
	Chain          string `json:"chain"`
	Fresh          bool   `json:"fresh"`
	RefBlockNum    uint16 `json:"ref_block_num"`
	RefBlockPrefix uint32 `json:"ref_block_prefix"`
	AcqEpochUnix   int64  `json:"acq_epoch_unix"`
	ApiLast        string `json:"api_last"`
}

// Snapshots - a Snapshot per configured chain.
func (m *Manager) Snapshots() []Snapshot {
	out := make([]Snapshot, 0, len(m.chains))
	for chain, state := range m.chains {
		t, fresh := state.Current()
		apiLast := ""
		if api := state.ApiLast(); nil != api {
			apiLast = api.Method + api.Host
		}
		out = append(out, Snapshot{
			Chain:          chain,
			Fresh:          fresh,
			RefBlockNum:    t.RefBlockNum,
			RefBlockPrefix: t.RefBlockPrefix,
			AcqEpochUnix:   t.AcqEpoch.Unix(),
			ApiLast:        apiLast,
		})
	}
	return out
}
