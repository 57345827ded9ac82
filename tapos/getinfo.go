// SPDX-License-Identifier: ISC

package tapos

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/bitmark-inc/elpp-gateway/constants"
	"github.com/bitmark-inc/elpp-gateway/fault"
)

// getInfoResponse - the fields of /v1/chain/get_info this gateway reads.
type getInfoResponse struct {
	ServerVersionString      string `json:"server_version_string"`
	ChainID                  string `json:"chain_id"`
	LastIrreversibleBlockNum uint32 `json:"last_irreversible_block_num"`
	LastIrreversibleBlockID  string `json:"last_irreversible_block_id"`
}

// fetchGetInfo - GET method+host+"/v1/chain/get_info", validate the
// reported chain id, and derive the reference-block fields a transaction
// needs.
func fetchGetInfo(client *http.Client, api *ApiPoolEntry, expectedChainHash string) (Tapos, string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.OutboundHTTPTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, api.Method+api.Host+"/v1/chain/get_info", nil)
	if nil != err {
		return Tapos{}, "", err
	}

	resp, err := client.Do(req)
	if nil != err {
		return Tapos{}, "", err
	}
	defer resp.Body.Close()

	var body getInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); nil != err {
		return Tapos{}, "", err
	}

	if body.ChainID != expectedChainHash {
		return Tapos{}, "", fault.ErrChainIDMismatch
	}

	blockID, err := hex.DecodeString(body.LastIrreversibleBlockID)
	if nil != err || len(blockID) < 12 {
		return Tapos{}, "", fault.TaposError("malformed last_irreversible_block_id")
	}

	t := Tapos{
		AcqEpoch:       time.Now(),
		RefBlockNum:    uint16(body.LastIrreversibleBlockNum & 0xffff),
		RefBlockPrefix: binary.LittleEndian.Uint32(blockID[8:12]),
	}
	return t, body.ServerVersionString, nil
}
